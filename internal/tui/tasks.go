package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/severinoia/central/internal/codec"
	"github.com/severinoia/central/internal/model"
)

type taskBindings struct {
	title       string
	description string
	dueDate     string
}

type tasksModel struct {
	deps   Deps
	width  int
	height int

	tasks  []model.Task
	cursor int

	formActive bool
	form       *huh.Form
	fb         *taskBindings
}

func newTasksModel(deps Deps) tasksModel {
	return tasksModel{deps: deps, fb: &taskBindings{}}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m tasksModel) refresh() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.deps.Repo.ListTasks(context.Background())
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		if msg.err != nil {
			return m, statusCmd("Loading tasks failed: "+msg.err.Error(), true)
		}
		m.tasks = msg.tasks
		if m.cursor >= len(m.tasks) {
			m.cursor = max(0, len(m.tasks)-1)
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
			m.fb.description = ""
			m.fb.dueDate = ""
			m.form = m.buildForm()
			return m, m.form.Init()
		case key.Matches(msg, keys.Toggle):
			if m.cursor < len(m.tasks) {
				return m, m.cycleStatusCmd(m.tasks[m.cursor])
			}
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(m.tasks) {
				return m, m.deleteCmd(m.tasks[m.cursor].ID)
			}
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		}
	}

	if m.formActive {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m, m.createCmd(*m.fb)
	}
	if m.form.State == huh.StateAborted {
		m.formActive = false
		return m, nil
	}
	return m, cmd
}

func (m tasksModel) createCmd(fb taskBindings) tea.Cmd {
	return func() tea.Msg {
		var due *codec.Time
		if fb.dueDate != "" {
			parsed, err := time.Parse("2006-01-02", fb.dueDate)
			if err != nil {
				return statusMsg{text: "Invalid due date: " + fb.dueDate, isError: true}
			}
			t := codec.FromTime(parsed)
			due = &t
		}
		if _, err := m.deps.Repo.AddTask(context.Background(), fb.title, fb.description, due); err != nil {
			return statusMsg{text: "Creating task failed: " + err.Error(), isError: true}
		}
		m.deps.Notify.Success("Task saved")
		return m.refresh()()
	}
}

// cycleStatusCmd advances pending → in-progress → completed → pending.
func (m tasksModel) cycleStatusCmd(task model.Task) tea.Cmd {
	next := model.TaskStatusPending
	switch task.Status {
	case model.TaskStatusPending:
		next = model.TaskStatusInProgress
	case model.TaskStatusInProgress:
		next = model.TaskStatusCompleted
	}
	return func() tea.Msg {
		if _, _, err := m.deps.Repo.UpdateTaskStatus(context.Background(), task.ID, next); err != nil {
			return statusMsg{text: "Updating task failed: " + err.Error(), isError: true}
		}
		return m.refresh()()
	}
}

func (m tasksModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.deps.Repo.DeleteTask(context.Background(), id); err != nil {
			return statusMsg{text: "Deleting task failed: " + err.Error(), isError: true}
		}
		return m.refresh()()
	}
}

func (m tasksModel) buildForm() *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Placeholder("What needs doing?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDate),
	)).WithWidth(min(m.width-4, 72))
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := time.Parse("2006-01-02", s)
	return err
}

func (m tasksModel) view(st styles) string {
	if m.formActive {
		return st.activePanel.Render(st.title.Render("New Task") + "\n" + m.form.View())
	}

	var b strings.Builder
	b.WriteString(st.title.Render("Tasks") + "\n\n")
	if len(m.tasks) == 0 {
		b.WriteString(st.muted.Render("No tasks. Press n to create one."))
	}
	for i, t := range m.tasks {
		marker := "[ ]"
		style := st.subtitle
		switch t.Status {
		case model.TaskStatusInProgress:
			marker = "[~]"
			style = st.warning
		case model.TaskStatusCompleted:
			marker = "[x]"
			style = st.success
		}

		line := style.Render(marker) + " " + truncate(t.Title, 44)
		if t.DueDate != nil {
			line += "  " + st.muted.Render("due "+formatOptionalDate(t.DueDate))
		}
		if i == m.cursor {
			line = st.selected.Render("› ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return st.panel.Render(b.String())
}
