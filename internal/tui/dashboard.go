package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/severinoia/central/internal/model"
)

type dashboardModel struct {
	deps Deps

	noteCount    int
	pendingTasks int
	activeChips  int
	dueToday     []model.Task
	recentNotes  []model.Note
}

func newDashboardModel(deps Deps) dashboardModel {
	return dashboardModel{deps: deps}
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		notes, _ := d.deps.Repo.ListNotes(ctx)
		tasks, _ := d.deps.Repo.ListTasks(ctx)
		chips, _ := d.deps.Repo.ListChips(ctx)
		due, _ := d.deps.Repo.TasksDueToday(ctx)

		pending := 0
		for _, t := range tasks {
			if !t.IsCompleted() {
				pending++
			}
		}
		active := 0
		for _, c := range chips {
			if c.Status == model.ChipStatusActive {
				active++
			}
		}

		recent := notes
		if len(recent) > 5 {
			recent = recent[:5]
		}

		return dashboardDataMsg{
			noteCount:    len(notes),
			pendingTasks: pending,
			activeChips:  active,
			dueToday:     due,
			recentNotes:  recent,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if data, ok := msg.(dashboardDataMsg); ok {
		d.noteCount = data.noteCount
		d.pendingTasks = data.pendingTasks
		d.activeChips = data.activeChips
		d.dueToday = data.dueToday
		d.recentNotes = data.recentNotes
	}
	return d, nil
}

func (d dashboardModel) view(st styles, width int) string {
	counts := lipgloss.JoinHorizontal(lipgloss.Top,
		st.panel.Render(st.title.Render(fmt.Sprintf("%d", d.noteCount))+"\n"+st.subtitle.Render("notes")),
		st.panel.Render(st.title.Render(fmt.Sprintf("%d", d.pendingTasks))+"\n"+st.subtitle.Render("open tasks")),
		st.panel.Render(st.title.Render(fmt.Sprintf("%d", d.activeChips))+"\n"+st.subtitle.Render("active chips")),
	)

	due := st.title.Render("Due today") + "\n"
	if len(d.dueToday) == 0 {
		due += st.muted.Render("nothing due")
	}
	for _, t := range d.dueToday {
		due += st.highlight.Render("• ") + truncate(t.Title, 40) + "\n"
	}

	notes := st.title.Render("Recent notes") + "\n"
	if len(d.recentNotes) == 0 {
		notes += st.muted.Render("no notes yet")
	}
	for _, n := range d.recentNotes {
		notes += st.subtitle.Render(formatDate(n.UpdatedAt)) + " " + truncate(n.Title, 40) + "\n"
	}

	lists := lipgloss.JoinHorizontal(lipgloss.Top,
		st.panel.Render(due),
		st.panel.Render(notes),
	)

	return lipgloss.JoinVertical(lipgloss.Left, counts, lists)
}
