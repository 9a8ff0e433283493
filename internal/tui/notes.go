package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// noteBindings holds form values on the heap so huh's Value() pointers
// stay valid across Bubble Tea model copies.
type noteBindings struct {
	title   string
	content string
}

type notesModel struct {
	deps   Deps
	width  int
	height int

	notes  []noteRow
	cursor int

	formActive bool
	form       *huh.Form
	fb         *noteBindings
}

type noteRow struct {
	id      string
	title   string
	content string
	updated string
}

func newNotesModel(deps Deps) notesModel {
	return notesModel{deps: deps, fb: &noteBindings{}}
}

func (m *notesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m notesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		notes, err := m.deps.Repo.ListNotes(context.Background())
		return notesLoadedMsg{notes: notes, err: err}
	}
}

func (m notesModel) update(msg tea.Msg) (notesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case notesLoadedMsg:
		if msg.err != nil {
			return m, statusCmd("Loading notes failed: "+msg.err.Error(), true)
		}
		m.notes = m.notes[:0]
		for _, n := range msg.notes {
			m.notes = append(m.notes, noteRow{
				id:      n.ID,
				title:   n.Title,
				content: n.Content,
				updated: formatDate(n.UpdatedAt),
			})
		}
		if m.cursor >= len(m.notes) {
			m.cursor = max(0, len(m.notes)-1)
		}
		return m, nil

	case tea.KeyMsg:
		if m.formActive {
			return m.updateForm(msg)
		}

		switch {
		case key.Matches(msg, keys.New):
			m.formActive = true
			m.fb.title = ""
			m.fb.content = ""
			m.form = m.buildForm()
			return m, m.form.Init()
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(m.notes) {
				return m, m.deleteCmd(m.notes[m.cursor].id)
			}
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.notes)-1 {
				m.cursor++
			}
		}
	}

	if m.formActive {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m notesModel) updateForm(msg tea.Msg) (notesModel, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m, m.createCmd(m.fb.title, m.fb.content)
	}
	if m.form.State == huh.StateAborted {
		m.formActive = false
		return m, nil
	}
	return m, cmd
}

func (m notesModel) createCmd(title, content string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.deps.Repo.AddNote(context.Background(), title, content); err != nil {
			return statusMsg{text: "Creating note failed: " + err.Error(), isError: true}
		}
		m.deps.Notify.Success("Note saved")
		return m.refresh()()
	}
}

func (m notesModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		found, err := m.deps.Repo.DeleteNote(context.Background(), id)
		if err != nil {
			return statusMsg{text: "Deleting note failed: " + err.Error(), isError: true}
		}
		if !found {
			return statusMsg{text: "Note already gone", isError: false}
		}
		return m.refresh()()
	}
}

func (m notesModel) buildForm() *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Placeholder("Note title").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Content").
			Placeholder("Write it down...").
			Value(&m.fb.content),
	)).WithWidth(min(m.width-4, 72))
}

func (m notesModel) view(st styles) string {
	if m.formActive {
		return st.activePanel.Render(st.title.Render("New Note") + "\n" + m.form.View())
	}

	var b strings.Builder
	b.WriteString(st.title.Render("Notes") + "\n\n")
	if len(m.notes) == 0 {
		b.WriteString(st.muted.Render("No notes. Press n to create one."))
	}
	for i, n := range m.notes {
		line := st.subtitle.Render(n.updated) + "  " + truncate(n.title, 48)
		if i == m.cursor {
			line = st.selected.Render("› ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
		if i == m.cursor && n.content != "" {
			b.WriteString("    " + st.muted.Render(truncate(n.content, 64)) + "\n")
		}
	}
	return st.panel.Render(b.String())
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return &requiredError{field: field}
		}
		return nil
	}
}

type requiredError struct {
	field string
}

func (e *requiredError) Error() string {
	return e.field + " is required"
}
