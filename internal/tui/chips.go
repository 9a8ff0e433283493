package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/severinoia/central/internal/chip"
	"github.com/severinoia/central/internal/model"
)

type chipBindings struct {
	name  string
	phone string
}

type chipsModel struct {
	deps   Deps
	width  int
	height int

	chips   []model.ChipInstance
	cursor  int
	heating map[string]bool
	spin    spinner.Model
	qrCode  string

	formActive bool
	form       *huh.Form
	fb         *chipBindings
}

func newChipsModel(deps Deps) chipsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return chipsModel{
		deps:    deps,
		heating: make(map[string]bool),
		spin:    sp,
		fb:      &chipBindings{},
	}
}

func (m *chipsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m chipsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		chips, err := m.deps.Repo.ListChips(context.Background())
		return chipsLoadedMsg{chips: chips, err: err}
	}
}

func (m chipsModel) update(msg tea.Msg) (chipsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chipsLoadedMsg:
		if msg.err != nil {
			return m, statusCmd("Loading chips failed: "+msg.err.Error(), true)
		}
		m.chips = msg.chips
		if m.cursor >= len(m.chips) {
			m.cursor = max(0, len(m.chips)-1)
		}
		return m, nil

	case chipHeatedMsg:
		delete(m.heating, msg.chipID)
		if msg.err != nil {
			switch {
			case errors.Is(msg.err, chip.ErrAlreadyHeating), errors.Is(msg.err, chip.ErrAlreadyActive):
				return m, statusCmd(msg.err.Error(), false)
			case errors.Is(msg.err, chip.ErrNoCredentials):
				return m, statusCmd("Configure the Evolution API in Settings first", true)
			}
			m.deps.Notify.Error("Heating failed: " + msg.err.Error())
			return m, m.refresh()
		}
		m.qrCode = msg.qrCode
		m.deps.Notify.Success("Chip is active")
		return m, m.refresh()

	case spinner.TickMsg:
		if len(m.heating) > 0 {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.formActive {
			return m.updateForm(msg)
		}

		switch {
		case key.Matches(msg, keys.New):
			m.formActive = true
			m.fb.name = ""
			m.fb.phone = ""
			m.form = m.buildForm()
			return m, m.form.Init()
		case key.Matches(msg, keys.Heat):
			if m.cursor < len(m.chips) {
				target := m.chips[m.cursor]
				if m.heating[target.ID] {
					return m, nil
				}
				m.heating[target.ID] = true
				m.qrCode = ""
				return m, tea.Batch(m.spin.Tick, m.heatCmd(target.ID))
			}
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(m.chips) {
				return m, m.deleteCmd(m.chips[m.cursor].ID)
			}
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.chips)-1 {
				m.cursor++
			}
		}
	}

	if m.formActive {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m chipsModel) updateForm(msg tea.Msg) (chipsModel, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m, m.createCmd(m.fb.name, m.fb.phone)
	}
	if m.form.State == huh.StateAborted {
		m.formActive = false
		return m, nil
	}
	return m, cmd
}

func (m chipsModel) createCmd(name, phone string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.deps.Repo.AddChip(context.Background(), name, phone); err != nil {
			return statusMsg{text: "Creating chip failed: " + err.Error(), isError: true}
		}
		m.deps.Notify.Success("Chip registered")
		return m.refresh()()
	}
}

func (m chipsModel) heatCmd(id string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.deps.Chips.Heat(context.Background(), id)
		out := chipHeatedMsg{chipID: id, err: err}
		if result != nil {
			out.qrCode = result.QRCode
		}
		return out
	}
}

func (m chipsModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.deps.Repo.DeleteChip(context.Background(), id); err != nil {
			return statusMsg{text: "Deleting chip failed: " + err.Error(), isError: true}
		}
		return m.refresh()()
	}
}

func (m chipsModel) buildForm() *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Placeholder("Instance name").
			Value(&m.fb.name).
			Validate(validateRequired("Name")),
		huh.NewInput().
			Title("Phone").
			Placeholder("5511999990000").
			Value(&m.fb.phone).
			Validate(validateRequired("Phone")),
	)).WithWidth(min(m.width-4, 60))
}

func (m chipsModel) view(st styles) string {
	if m.formActive {
		return st.activePanel.Render(st.title.Render("New Chip") + "\n" + m.form.View())
	}

	var b strings.Builder
	b.WriteString(st.title.Render("Chips") + "\n\n")
	if len(m.chips) == 0 {
		b.WriteString(st.muted.Render("No chips. Press n to register one."))
	}
	for i, c := range m.chips {
		status := st.muted.Render(c.Status)
		switch c.Status {
		case model.ChipStatusHeating:
			status = st.warning.Render(c.Status)
		case model.ChipStatusActive:
			status = st.success.Render(c.Status)
		}
		if m.heating[c.ID] {
			status = st.warning.Render(m.spin.View() + "heating")
		}

		line := truncate(c.Name, 24) + "  " + st.subtitle.Render(c.Phone) + "  " + status
		if i == m.cursor {
			line = st.selected.Render("› ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if m.qrCode != "" {
		b.WriteString("\n" + st.subtitle.Render("Scan to connect:") + "\n" + m.qrCode + "\n")
	}
	return st.panel.Render(b.String())
}
