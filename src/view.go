package src

import (
	"github.com/vibeworks/appweave/src/ui"
)

func (m *model) View() string {
	return ui.Render(m.uiState(), m.styles)
}

// uiState snapshots the model into the plain struct the renderer consumes.
func (m *model) uiState() ui.State {
	s := ui.State{
		Mode:         m.mode,
		FileTitle:    m.fileTitle,
		StatusLine:   m.statusLine,
		IsThinking:   m.isThinking,
		ThinkingText: m.thinking,
		ErrorText:    m.errText,
		Width:        m.width,
		Height:       m.height,
		TreeRows:     m.uiRows,
		SelectedRow:  m.selectedRow,
		List:         m.list,
		TextArea:     m.textarea,
		Viewport:     m.viewport,
		Spinner:      m.spinner,
	}
	if m.active != nil {
		s.ProjectTitle = m.active.Title()
		s.Review = reviewSections(m.active.Review)
	}
	return s
}

func reviewSections(r Review) []ui.ReviewSection {
	return []ui.ReviewSection{
		{Title: "Crashes", Items: suggestionLines(r.Crashes)},
		{Title: "Experience", Items: suggestionLines(r.Experience)},
		{Title: "Other", Items: suggestionLines(r.Other)},
	}
}

func suggestionLines(in []Suggestion) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, s.Description)
	}
	return out
}
