package src

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vibeworks/appweave/src/ui"
)

type projectItem struct{ p Project }

func (i projectItem) Title() string { return "📦 " + i.p.Title() }
func (i projectItem) Description() string {
	return fmt.Sprintf("%d files · %s", len(i.p.Files), i.p.CreatedAt.Format("2006-01-02 15:04"))
}
func (i projectItem) FilterValue() string { return i.p.Title() }

type newProjectItem struct{}

func (newProjectItem) Title() string       { return "✨ New project" }
func (newProjectItem) Description() string { return "Generate an application from a prompt" }
func (newProjectItem) FilterValue() string { return "new project" }

// streamEventMsg forwards one parser event from the generation goroutine
// into the Update loop.
type streamEventMsg struct {
	ev StreamEvent
}

type generateDoneMsg struct {
	project *Project
	err     error
}

type modifyDoneMsg struct {
	changed []string
	err     error
}

type model struct {
	ctx   context.Context
	gen   *Generator
	store *ProjectStore

	projects []Project
	active   *Project
	mode     ui.Mode

	// Files received from the in-flight stream, rebuilt event by event so
	// the view never touches the generator's project concurrently.
	liveFiles map[string]string

	rows        []TreeRow
	uiRows      []ui.TreeRow
	selectedRow int
	fileTitle   string
	statusLine  string
	errText     string

	list     list.Model
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	isThinking bool
	thinking   string
	width      int
	height     int
	styles     ui.Styles

	cancel  context.CancelFunc
	Program *tea.Program
}

func NewModel(ctx context.Context, gen *Generator, store *ProjectStore) (*model, error) {
	projects, err := store.Load()
	if err != nil {
		return nil, err
	}

	l := list.New(projectListItems(projects), list.NewDefaultDelegate(), 0, 0)
	l.Title = "Projects"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	ta := textarea.New()
	ta.Placeholder = "Describe the application you want..."
	ta.Focus()
	ta.SetHeight(3)

	vp := viewport.New(0, 0)
	vp.SetContent("Select a file in the tree to view it.")

	st := ui.NewStyles()
	s := spinner.New()
	s.Spinner = spinner.Line
	s.Style = st.Thinking

	return &model{
		ctx:      ctx,
		gen:      gen,
		store:    store,
		projects: projects,
		mode:     ui.ModeProjects,
		list:     l,
		textarea: ta,
		viewport: vp,
		spinner:  s,
		styles:   st,
	}, nil
}

func projectListItems(projects []Project) []list.Item {
	items := []list.Item{newProjectItem{}}
	for _, p := range projects {
		items = append(items, projectItem{p})
	}
	return items
}

func (m *model) Init() tea.Cmd { return nil }
