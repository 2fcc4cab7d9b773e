package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
)

// Mode represents the current UI state
type Mode int

const (
	ModeProjects Mode = iota
	ModePrompt
	ModeGenerating
	ModeWorkspace
	ModeModify
)

// TreeRow is one rendered line of the workspace file tree.
type TreeRow struct {
	Depth   int
	Name    string
	Dir     bool
	Pending bool
}

// ReviewSection is one severity bucket of the review pane.
type ReviewSection struct {
	Title string
	Items []string
}

// State contains all the data required to render the UI.
// This decouples the renderer from the main application logic.
type State struct {
	Mode         Mode
	ProjectTitle string
	FileTitle    string
	StatusLine   string
	IsThinking   bool
	ThinkingText string
	ErrorText    string
	Width        int
	Height       int

	TreeRows    []TreeRow
	SelectedRow int
	Review      []ReviewSection

	// Bubble Tea models
	List     list.Model
	TextArea textarea.Model
	Viewport viewport.Model
	Spinner  spinner.Model
}
