package src

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vibeworks/appweave/src/ui"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-16)
		m.textarea.SetWidth(msg.Width - 4)
		m.viewport.Width = msg.Width - 44
		m.viewport.Height = msg.Height - 22
		if m.viewport.Width < 20 {
			m.viewport.Width = 20
		}
		if m.viewport.Height < 5 {
			m.viewport.Height = 5
		}
		return m, nil

	case spinner.TickMsg:
		if !m.isThinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case streamEventMsg:
		m.applyStreamEvent(msg.ev)
		return m, nil

	case generateDoneMsg:
		return m.finishGenerate(msg)

	case modifyDoneMsg:
		return m.finishModify(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	}

	switch m.mode {
	case ui.ModeProjects:
		return m.handleProjectsKey(msg)
	case ui.ModePrompt:
		return m.handlePromptKey(msg)
	case ui.ModeGenerating:
		if msg.String() == "esc" && m.cancel != nil {
			// Cancel keeps whatever files already streamed in.
			m.cancel()
		}
		return m, nil
	case ui.ModeWorkspace:
		return m.handleWorkspaceKey(msg)
	case ui.ModeModify:
		return m.handleModifyKey(msg)
	}
	return m, nil
}

func (m *model) handleProjectsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		switch item := m.list.SelectedItem().(type) {
		case newProjectItem:
			m.enterPrompt()
		case projectItem:
			p := item.p
			m.openProject(&p)
		}
		return m, nil
	case "n":
		m.enterPrompt()
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ui.ModeProjects
		m.errText = ""
		return m, nil
	case "enter":
		prompt := strings.TrimSpace(m.textarea.Value())
		if prompt == "" {
			return m, nil
		}
		m.beginStreaming("planning the application")
		m.startGenerate(prompt)
		return m, m.spinner.Tick
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m *model) handleWorkspaceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ui.ModeProjects
		m.active = nil
		m.statusLine = ""
		m.errText = ""
		return m, nil
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil
	case "down", "j":
		if m.selectedRow < len(m.rows)-1 {
			m.selectedRow++
		}
		return m, nil
	case "enter":
		m.openSelectedFile()
		return m, nil
	case "m":
		m.mode = ui.ModeModify
		m.textarea.Reset()
		m.textarea.Placeholder = "Describe the change you want..."
		m.textarea.Focus()
		m.statusLine = ""
		m.errText = ""
		return m, nil
	case "e":
		m.exportActive()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) handleModifyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ui.ModeWorkspace
		return m, nil
	case "enter":
		request := strings.TrimSpace(m.textarea.Value())
		if request == "" {
			return m, nil
		}
		m.beginStreaming("applying the change")
		m.startModify(request)
		return m, m.spinner.Tick
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m *model) enterPrompt() {
	m.mode = ui.ModePrompt
	m.textarea.Reset()
	m.textarea.Placeholder = "Describe the application you want..."
	m.textarea.Focus()
	m.errText = ""
}

func (m *model) openProject(p *Project) {
	m.active = p
	m.mode = ui.ModeWorkspace
	m.statusLine = ""
	m.errText = ""
	m.rebuildRows(p.TreeFiles(), "")
	m.selectedRow = 0
	m.fileTitle = ""
	m.viewport.SetContent("Select a file in the tree to view it.")
	m.openFirstFile()
}

func (m *model) beginStreaming(text string) {
	m.mode = ui.ModeGenerating
	m.isThinking = true
	m.thinking = text
	m.errText = ""
	m.statusLine = ""
	m.liveFiles = map[string]string{}
	m.rows = nil
	m.viewport.SetContent("")
}

func (m *model) startGenerate(prompt string) {
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	go func() {
		project, err := m.gen.Generate(ctx, prompt, func(ev StreamEvent) {
			m.Program.Send(streamEventMsg{ev})
		})
		m.Program.Send(generateDoneMsg{project, err})
	}()
}

func (m *model) startModify(request string) {
	project := m.active
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	go func() {
		changed, err := m.gen.Modify(ctx, project, request, func(ev StreamEvent) {
			m.Program.Send(streamEventMsg{ev})
		})
		m.Program.Send(modifyDoneMsg{changed, err})
	}()
}

func (m *model) applyStreamEvent(ev StreamEvent) {
	switch ev.Kind {
	case EventFileDelta, EventFileComplete:
		if ev.Path == "" {
			return
		}
		if m.liveFiles == nil {
			m.liveFiles = map[string]string{}
		}
		m.liveFiles[ev.Path] = ev.Content
		m.thinking = "writing " + ev.Path
		m.fileTitle = ev.Path
		m.viewport.SetContent(ev.Content)
		m.viewport.GotoBottom()

		descriptors := make([]FileDescriptor, 0, len(m.liveFiles))
		for _, path := range sortedStrings(fileKeys(m.liveFiles)) {
			descriptors = append(descriptors, FileDescriptor{Path: path})
		}
		pending := ""
		if ev.Kind == EventFileDelta {
			pending = ev.Path
		}
		m.rebuildRows(descriptors, pending)
	case EventStreamEnd:
		m.thinking = "reviewing the result"
	}
}

func (m *model) finishGenerate(msg generateDoneMsg) (tea.Model, tea.Cmd) {
	m.isThinking = false
	m.cancel = nil
	m.liveFiles = nil

	if msg.project == nil {
		m.errText = fmt.Sprintf("Generation failed: %v", msg.err)
		m.mode = ui.ModePrompt
		return m, nil
	}
	m.reloadProjects()
	m.openProject(msg.project)
	if msg.err != nil {
		m.statusLine = "Generation interrupted — partial files kept"
	} else {
		m.statusLine = fmt.Sprintf("Generated %d files", len(msg.project.Files))
	}
	return m, nil
}

func (m *model) finishModify(msg modifyDoneMsg) (tea.Model, tea.Cmd) {
	m.isThinking = false
	m.cancel = nil
	m.liveFiles = nil
	m.mode = ui.ModeWorkspace

	if m.active != nil {
		m.rebuildRows(m.active.TreeFiles(), "")
		m.openFirstFile()
	}
	if msg.err != nil {
		if msg.err == context.Canceled {
			m.statusLine = "Modification interrupted — partial files kept"
		} else {
			m.errText = fmt.Sprintf("Modification failed, project restored: %v", msg.err)
		}
		return m, nil
	}
	m.reloadProjects()
	m.statusLine = fmt.Sprintf("Changed %d files", len(msg.changed))
	return m, nil
}

func (m *model) rebuildRows(files []FileDescriptor, pendingPath string) {
	src := FlattenFileTree(BuildFileTree(files))
	m.rows = src
	uiRows := make([]ui.TreeRow, len(src))
	for i, row := range src {
		uiRows[i] = ui.TreeRow{
			Depth:   row.Depth,
			Name:    row.Name,
			Dir:     row.Dir,
			Pending: !row.Dir && row.Path == pendingPath,
		}
	}
	m.uiRows = uiRows
	if m.selectedRow >= len(m.rows) {
		m.selectedRow = 0
	}
}

func (m *model) openFirstFile() {
	for i, row := range m.rows {
		if !row.Dir {
			m.selectedRow = i
			m.openSelectedFile()
			return
		}
	}
}

func (m *model) openSelectedFile() {
	if m.active == nil || m.selectedRow >= len(m.rows) {
		return
	}
	row := m.rows[m.selectedRow]
	if row.Dir {
		return
	}
	content, ok := m.active.Files[row.Path]
	if !ok {
		content = "(not generated yet)"
	}
	m.fileTitle = row.Path
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

func (m *model) exportActive() {
	if m.active == nil {
		return
	}
	name := fmt.Sprintf("%s.zip", m.active.ID)
	f, err := os.Create(name)
	if err != nil {
		m.errText = fmt.Sprintf("Export failed: %v", err)
		return
	}
	defer f.Close()
	if err := WriteArchive(f, m.active); err != nil {
		m.errText = fmt.Sprintf("Export failed: %v", err)
		return
	}
	m.statusLine = "Exported to " + name
	m.errText = ""
}

func (m *model) reloadProjects() {
	projects, err := m.store.Load()
	if err != nil {
		m.errText = fmt.Sprintf("Reload failed: %v", err)
		return
	}
	m.projects = projects
	m.list.SetItems(projectListItems(projects))
}
