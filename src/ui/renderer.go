package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const Logo = `
 █████╗ ██████╗ ██████╗ ██╗    ██╗███████╗ █████╗ ██╗   ██╗███████╗
██╔══██╗██╔══██╗██╔══██╗██║    ██║██╔════╝██╔══██╗██║   ██║██╔════╝
███████║██████╔╝██████╔╝██║ █╗ ██║█████╗  ███████║██║   ██║█████╗
██╔══██║██╔═══╝ ██╔═══╝ ██║███╗██║██╔══╝  ██╔══██║╚██╗ ██╔╝██╔══╝
██║  ██║██║     ██║     ╚███╔███╔╝███████╗██║  ██║ ╚████╔╝ ███████╗
╚═╝  ╚═╝╚═╝     ╚═╝      ╚══╝╚══╝ ╚══════╝╚═╝  ╚═╝  ╚═══╝  ╚══════╝
              A P P S  ·  W O V E N  F R O M  W O R D S
`

// Render generates the full UI string based on the provided state.
func Render(s State, styles Styles) string {
	header := renderHeader(styles)
	body := renderBody(s, styles)
	footer := renderFooter(s, styles)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func renderHeader(styles Styles) string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AD8CFF")).Bold(true).
		Background(lipgloss.Color("#000000")).UnsetBackground()
	subtitle := styles.Header.Render("Vibeworks")
	return lipgloss.JoinVertical(lipgloss.Left, logoStyle.Render(Logo), subtitle)
}

func renderFooter(s State, styles Styles) string {
	help := "ctrl+c: quit"
	switch s.Mode {
	case ModeProjects:
		help += " | enter: open | n: new | ↑/↓: navigate"
	case ModePrompt, ModeModify:
		help += " | enter: run | esc: back"
	case ModeGenerating:
		help += " | esc: cancel (keeps partial files)"
	case ModeWorkspace:
		help += " | ↑/↓: tree | enter: view file | m: modify | e: export | esc: projects"
	}
	return styles.Footer.Render(help)
}

func renderBody(s State, styles Styles) string {
	switch s.Mode {
	case ModeProjects:
		return renderProjects(s, styles)
	case ModePrompt:
		return renderPrompt(s, styles, "Describe the application to generate")
	case ModeModify:
		return renderPrompt(s, styles, "Describe the change to make")
	case ModeGenerating:
		return renderGenerating(s, styles)
	case ModeWorkspace:
		return renderWorkspace(s, styles)
	default:
		return ""
	}
}

func renderProjects(s State, styles Styles) string {
	parts := []string{styles.List.Render(s.List.View())}
	if s.ErrorText != "" {
		parts = append(parts, styles.Error.Render(s.ErrorText))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderPrompt(s State, styles Styles, title string) string {
	parts := []string{
		styles.ListHeader.Render(title),
		s.TextArea.View(),
	}
	if s.ErrorText != "" {
		parts = append(parts, styles.Error.Render(s.ErrorText))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderGenerating(s State, styles Styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Subtitle.Render(s.ProjectTitle),
		renderThinking(s, styles),
		lipgloss.JoinHorizontal(lipgloss.Top,
			styles.TreePane.Render(renderTree(s, styles)),
			s.Viewport.View(),
		),
	)
}

func renderWorkspace(s State, styles Styles) string {
	left := styles.TreePane.Render(renderTree(s, styles))
	right := lipgloss.JoinVertical(lipgloss.Left,
		styles.Subtitle.Render(s.FileTitle),
		s.Viewport.View(),
		styles.ReviewPane.Render(renderReview(s, styles)),
	)
	parts := []string{
		styles.Subtitle.Render(s.ProjectTitle),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
	}
	if s.StatusLine != "" {
		parts = append(parts, styles.Success.Render(s.StatusLine))
	}
	if s.ErrorText != "" {
		parts = append(parts, styles.Error.Render(s.ErrorText))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderTree(s State, styles Styles) string {
	if len(s.TreeRows) == 0 {
		return styles.Subtle.Render("(no files yet)")
	}
	var b strings.Builder
	for i, row := range s.TreeRows {
		line := strings.Repeat("  ", row.Depth) + "└─ " + row.Name
		if row.Dir {
			line += "/"
		}
		if row.Pending {
			line += " …"
		}
		switch {
		case i == s.SelectedRow && s.Mode == ModeWorkspace:
			line = styles.ListSelected.Render(line)
		case row.Dir:
			line = styles.Accent.Render(line)
		}
		b.WriteString(line)
		if i < len(s.TreeRows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderReview(s State, styles Styles) string {
	empty := true
	var b strings.Builder
	for _, section := range s.Review {
		if len(section.Items) == 0 {
			continue
		}
		empty = false
		b.WriteString(styles.ListHeader.Render(section.Title) + "\n")
		for _, item := range section.Items {
			b.WriteString(fmt.Sprintf("  • %s\n", item))
		}
	}
	if empty {
		return styles.Subtle.Render("Review: no findings")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderThinking(s State, styles Styles) string {
	if !s.IsThinking {
		return ""
	}
	return styles.Thinking.Render(fmt.Sprintf("AppWeave %s %s", s.Spinner.View(), s.ThinkingText))
}
