package src

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// storedProject is the on-disk shape. Review stays raw until decode so the
// store can absorb the legacy shapes older files carry (bare strings,
// nulls, missing categories).
type storedProject struct {
	ID        string            `json:"id"`
	Prompt    string            `json:"prompt"`
	Plan      AppPlan           `json:"plan"`
	Files     map[string]string `json:"files"`
	Review    json.RawMessage   `json:"review"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ProjectStore persists the full project collection as one ordered JSON
// list: loaded wholly, replaced wholly on every save. A mutex serializes
// writers; last save wins.
type ProjectStore struct {
	path string
	mu   sync.Mutex
}

func NewProjectStore(path string) *ProjectStore {
	return &ProjectStore{path: path}
}

func (s *ProjectStore) Path() string { return s.path }

// Load reads every persisted project. A missing file is an empty
// collection, not an error.
func (s *ProjectStore) Load() ([]Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *ProjectStore) loadLocked() ([]Project, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read project store: %w", err)
	}
	var stored []storedProject
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decode project store: %w", err)
	}
	projects := make([]Project, 0, len(stored))
	for _, sp := range stored {
		files := sp.Files
		if files == nil {
			files = map[string]string{}
		}
		projects = append(projects, Project{
			ID:        sp.ID,
			Prompt:    sp.Prompt,
			Plan:      sp.Plan,
			Files:     files,
			Review:    decodeReview(sp.Review),
			CreatedAt: sp.CreatedAt,
		})
	}
	return projects, nil
}

// SaveAll replaces the persisted collection with the given list, in order.
func (s *ProjectStore) SaveAll(projects []Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(projects)
}

func (s *ProjectStore) saveLocked(projects []Project) error {
	stored := make([]storedProject, 0, len(projects))
	for _, p := range projects {
		review, err := json.Marshal(sanitizeReview(p.Review))
		if err != nil {
			return fmt.Errorf("encode review for %s: %w", p.ID, err)
		}
		stored = append(stored, storedProject{
			ID:        p.ID,
			Prompt:    p.Prompt,
			Plan:      p.Plan,
			Files:     p.Files,
			Review:    review,
			CreatedAt: p.CreatedAt,
		})
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("encode project store: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write project store: %w", err)
	}
	return nil
}

// Upsert replaces the project with a matching id, or appends it. The whole
// collection is rewritten either way.
func (s *ProjectStore) Upsert(p Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	projects, err := s.loadLocked()
	if err != nil {
		return err
	}
	replaced := false
	for i := range projects {
		if projects[i].ID == p.ID {
			projects[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		projects = append(projects, p)
	}
	return s.saveLocked(projects)
}

// Get returns a copy of the stored project with the given id.
func (s *ProjectStore) Get(id string) (*Project, error) {
	projects, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			p := projects[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("project %q not found", id)
}

// Delete removes the project with the given id, if present.
func (s *ProjectStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	projects, err := s.loadLocked()
	if err != nil {
		return err
	}
	kept := projects[:0]
	for _, p := range projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	return s.saveLocked(kept)
}
