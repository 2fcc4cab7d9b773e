package src

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

var (
	// ErrNoChanges means a stream finished without opening a single file.
	ErrNoChanges = errors.New("model produced no file changes")
	// ErrProjectBusy means a generation or modification is already running
	// for the project. Requests are rejected, never queued.
	ErrProjectBusy = errors.New("project already has a generation in flight")
)

const failedFilePlaceholder = "// Generation failed for %s: %v\n// Retry with a modify request.\n"

// Generator orchestrates the project lifecycle: plan, per-file drafting,
// modification, review and import. It owns the one-transition-per-project
// rule; everything model-shaped goes through the injected ModelClient.
type Generator struct {
	client ModelClient
	store  *ProjectStore

	mu   sync.Mutex
	busy map[string]bool
}

func NewGenerator(client ModelClient, store *ProjectStore) *Generator {
	return &Generator{client: client, store: store, busy: map[string]bool{}}
}

func (g *Generator) acquire(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy[id] {
		return ErrProjectBusy
	}
	g.busy[id] = true
	return nil
}

func (g *Generator) release(id string) {
	g.mu.Lock()
	delete(g.busy, id)
	g.mu.Unlock()
}

// Generate drafts a new project: plan first, then every planned file in
// order. A file whose stream fails gets a placeholder and generation moves
// on; only plan failure or cancellation aborts the whole draft. The partial
// project survives cancellation.
func (g *Generator) Generate(ctx context.Context, prompt string, onEvent func(StreamEvent)) (*Project, error) {
	plan, err := g.client.Plan(ctx, prompt)
	if err != nil {
		return nil, err
	}
	project := NewProject(prompt, plan)
	if err := g.acquire(project.ID); err != nil {
		return nil, err
	}
	defer g.release(project.ID)

	for _, fd := range plan.FileStructure {
		if err := g.streamInto(ctx, project, func() (FragmentStream, error) {
			return g.client.GenerateFile(ctx, project, fd)
		}, onEvent); err != nil {
			if ctx.Err() != nil {
				_ = g.persist(project)
				return project, ctx.Err()
			}
			project.Files[fd.Path] = fmt.Sprintf(failedFilePlaceholder, fd.Path, err)
		}
	}

	if review, err := g.client.Review(ctx, project, nil); err == nil {
		project.Review = sanitizeReview(review)
	}
	if err := g.persist(project); err != nil {
		return project, err
	}
	return project, nil
}

// Modify runs a whole-project change request. Files and review move
// together: a failed stream, a failed review, or a stream that parsed zero
// files reverts both. Cancellation skips the review and persists whatever
// content already arrived as the new baseline.
func (g *Generator) Modify(ctx context.Context, project *Project, request string, onEvent func(StreamEvent)) ([]string, error) {
	if err := g.acquire(project.ID); err != nil {
		return nil, err
	}
	defer g.release(project.ID)

	before := cloneFiles(project.Files)
	prevReview := project.Review
	revert := func() {
		project.Files = before
		project.Review = prevReview
	}

	err := g.streamInto(ctx, project, func() (FragmentStream, error) {
		return g.client.Modify(ctx, project, request)
	}, onEvent)
	if err != nil {
		if ctx.Err() != nil {
			// Aborted work is the new baseline; keep it durable.
			_ = g.persist(project)
			return ChangedPaths(before, project.Files), err
		}
		revert()
		return nil, err
	}

	changed := ChangedPaths(before, project.Files)
	review, err := g.client.Review(ctx, project, changed)
	if err != nil {
		revert()
		return nil, err
	}
	project.Review = sanitizeReview(review)

	if err := g.persist(project); err != nil {
		return changed, err
	}
	return changed, nil
}

// Import builds a project from an unpacked archive. With a manifest the
// metadata is taken as-is; without one the model infers plan and review
// from the raw files.
func (g *Generator) Import(ctx context.Context, arc *ImportedArchive) (*Project, error) {
	if len(arc.Files) == 0 {
		return nil, ErrNoProjectFiles
	}
	project := &Project{
		ID:        randomID(),
		Files:     cloneFiles(arc.Files),
		Review:    emptyReview(),
		CreatedAt: time.Now(),
	}
	if arc.Manifest != nil {
		project.Prompt = arc.Manifest.Prompt
		project.Plan = arc.Manifest.Plan
		project.Review = decodeReview(arc.Manifest.Review)
		if !arc.Manifest.CreatedAt.IsZero() {
			project.CreatedAt = arc.Manifest.CreatedAt
		}
	} else {
		plan, review, err := g.client.InferProject(ctx, arc.Files)
		if err != nil {
			return nil, fmt.Errorf("infer project: %w", err)
		}
		project.Plan = plan
		project.Review = sanitizeReview(review)
		project.Prompt = plan.Description
	}
	if err := g.persist(project); err != nil {
		return project, err
	}
	return project, nil
}

// streamInto drives one fragment stream through the parser into the
// project. A zero-file stream is an error so callers can treat "the model
// said nothing useful" uniformly.
func (g *Generator) streamInto(ctx context.Context, project *Project, open func() (FragmentStream, error), onEvent func(StreamEvent)) error {
	stream, err := open()
	if err != nil {
		return err
	}
	parser := NewStreamParser()
	apply := func(events []StreamEvent) {
		for _, ev := range events {
			ApplyStreamEvent(project, ev)
			if onEvent != nil {
				onEvent(ev)
			}
		}
	}
	for {
		if err := ctx.Err(); err != nil {
			apply(parser.Finish())
			return err
		}
		frag, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		apply(parser.Feed(frag))
	}
	apply(parser.Finish())
	if parser.FilesOpened() == 0 {
		return ErrNoChanges
	}
	return nil
}

func (g *Generator) persist(project *Project) error {
	if g.store == nil {
		return nil
	}
	if err := g.store.Upsert(*project); err != nil {
		return fmt.Errorf("persist project: %w", err)
	}
	return nil
}
