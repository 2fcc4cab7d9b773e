package src

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// FileDescriptor is one planned file: where it lives and what it is for.
type FileDescriptor struct {
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
}

// AppPlan is the model's structured answer to "what should this project
// contain". FileStructure order is the generation order.
type AppPlan struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Package       string           `json:"package"`
	Permissions   []string         `json:"permissions"`
	Dependencies  []string         `json:"dependencies"`
	FileStructure []FileDescriptor `json:"fileStructure"`
}

// Suggestion is one review finding.
type Suggestion struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Review groups findings by severity bucket. The three slices are always
// non-nil; decodeReview and sanitizeReview enforce that at every boundary.
type Review struct {
	Crashes    []Suggestion `json:"crashes"`
	Experience []Suggestion `json:"experience"`
	Other      []Suggestion `json:"other"`
}

// Project is the aggregate the whole app revolves around. Files is keyed by
// slash-separated path; its key set can drift from the plan while a stream
// is in flight.
type Project struct {
	ID        string            `json:"id"`
	Prompt    string            `json:"prompt"`
	Plan      AppPlan           `json:"plan"`
	Files     map[string]string `json:"files"`
	Review    Review            `json:"review"`
	CreatedAt time.Time         `json:"createdAt"`
}

func NewProject(prompt string, plan AppPlan) *Project {
	return &Project{
		ID:        randomID(),
		Prompt:    prompt,
		Plan:      plan,
		Files:     map[string]string{},
		Review:    emptyReview(),
		CreatedAt: time.Now(),
	}
}

// Title is what lists and headers show for the project.
func (p *Project) Title() string {
	if p.Plan.Name != "" {
		return p.Plan.Name
	}
	if len(p.Prompt) > 48 {
		return p.Prompt[:48] + "…"
	}
	if p.Prompt != "" {
		return p.Prompt
	}
	return p.ID
}

// TreeFiles returns the descriptors the workspace tree is built from: the
// plan's entries plus any streamed file the plan never mentioned.
func (p *Project) TreeFiles() []FileDescriptor {
	planned := make(map[string]bool, len(p.Plan.FileStructure))
	out := make([]FileDescriptor, 0, len(p.Plan.FileStructure)+len(p.Files))
	for _, fd := range p.Plan.FileStructure {
		planned[fd.Path] = true
		out = append(out, fd)
	}
	extras := make([]string, 0, len(p.Files))
	for path := range p.Files {
		if !planned[path] {
			extras = append(extras, path)
		}
	}
	// Extras keep a stable order so repeated renders agree.
	for _, path := range sortedStrings(extras) {
		out = append(out, FileDescriptor{Path: path})
	}
	return out
}

func cloneFiles(files map[string]string) map[string]string {
	out := make(map[string]string, len(files))
	for k, v := range files {
		out[k] = v
	}
	return out
}

func randomID() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return time.Now().Format("20060102150405")
	}
	return hex.EncodeToString(buf)
}
