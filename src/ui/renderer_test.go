package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
)

func workspaceState() State {
	vp := viewport.New(80, 20)
	sp := spinner.New()
	return State{
		Mode:         ModeWorkspace,
		ProjectTitle: "Notes App",
		FileTitle:    "src/main.ts",
		Viewport:     vp,
		Spinner:      sp,
		TreeRows: []TreeRow{
			{Depth: 0, Name: "src", Dir: true},
			{Depth: 1, Name: "main.ts"},
			{Depth: 0, Name: "index.html"},
		},
	}
}

func TestRenderContainsHeader(t *testing.T) {
	styles := NewStyles()
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 20)

	state := State{Mode: ModeProjects, List: l}
	output := Render(state, styles)

	if !strings.Contains(output, "Vibeworks") {
		t.Errorf("Expected output to contain the header text")
	}
}

func TestRenderFooterContainsQuit(t *testing.T) {
	styles := NewStyles()
	output := Render(workspaceState(), styles)

	if !strings.Contains(output, "ctrl+c: quit") {
		t.Errorf("Expected footer to contain quit instruction")
	}
}

func TestRenderWorkspaceShowsTree(t *testing.T) {
	styles := NewStyles()
	output := Render(workspaceState(), styles)

	for _, want := range []string{"src/", "main.ts", "index.html"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected workspace tree to contain %q", want)
		}
	}
}

func TestRenderWorkspaceEmptyReview(t *testing.T) {
	styles := NewStyles()
	output := Render(workspaceState(), styles)

	if !strings.Contains(output, "no findings") {
		t.Errorf("Expected empty review pane placeholder")
	}
}

func TestRenderWorkspaceReviewSections(t *testing.T) {
	styles := NewStyles()
	state := workspaceState()
	state.Review = []ReviewSection{
		{Title: "Crashes", Items: []string{"nil deref in save path"}},
		{Title: "Experience", Items: nil},
	}

	output := Render(state, styles)

	if !strings.Contains(output, "Crashes") || !strings.Contains(output, "nil deref in save path") {
		t.Errorf("Expected review pane to show populated sections")
	}
	if strings.Contains(output, "Experience") {
		t.Errorf("Expected empty review sections to be hidden")
	}
}

func TestRenderPromptMode(t *testing.T) {
	styles := NewStyles()
	ta := textarea.New()
	ta.SetWidth(80)

	state := State{Mode: ModePrompt, TextArea: ta}
	output := Render(state, styles)

	if !strings.Contains(output, "Describe the application") {
		t.Errorf("Expected prompt mode to show its title")
	}
}

func TestRenderThinkingState(t *testing.T) {
	styles := NewStyles()
	state := workspaceState()
	state.Mode = ModeGenerating
	state.IsThinking = true
	state.ThinkingText = "generating src/main.ts"

	output := Render(state, styles)

	if !strings.Contains(output, "AppWeave") {
		t.Errorf("Expected thinking indicator to contain 'AppWeave'")
	}
	if !strings.Contains(output, "generating src/main.ts") {
		t.Errorf("Expected thinking indicator to show progress text")
	}
}

func TestNewStyles(t *testing.T) {
	styles := NewStyles()

	if styles.Header.GetPaddingLeft() < 0 {
		t.Errorf("Header style should be initialized")
	}
	if styles.Accent.GetForeground() == nil {
		t.Errorf("Accent style should have a foreground color")
	}
}
