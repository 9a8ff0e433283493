// Package tui is the terminal front end: a tabbed Bubble Tea app over
// the repository, chat, chip, and migration services.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/severinoia/central/internal/ai"
	"github.com/severinoia/central/internal/chat"
	"github.com/severinoia/central/internal/chip"
	"github.com/severinoia/central/internal/migrate"
	"github.com/severinoia/central/internal/model"
	"github.com/severinoia/central/internal/notify"
	"github.com/severinoia/central/internal/repo"
	"github.com/severinoia/central/internal/settings"
)

// Deps carries the services the TUI drives.
type Deps struct {
	Repo     *repo.Repository
	Settings *settings.Store
	Chat     *chat.Store
	AI       *ai.Client
	Chips    *chip.Controller
	Migrate  *migrate.Engine
	Notify   *notify.Notifier
	Log      zerolog.Logger
}

// App is the root Bubble Tea model.
type App struct {
	deps   Deps
	width  int
	height int

	activeView viewState
	showHelp   bool
	st         styles

	dashboard dashboardModel
	notes     notesModel
	tasks     tasksModel
	chips     chipsModel
	chat      chatModel
	settings  settingsModel

	help   help.Model
	status string
	isErr  bool
}

// NewApp builds the root model. The theme comes from settings; failures
// fall back to the dark palette.
func NewApp(deps Deps) App {
	theme := model.ThemeDark
	if current, err := deps.Settings.Get(); err == nil {
		theme = current.Theme
	}

	h := help.New()
	h.ShowAll = false

	return App{
		deps:       deps,
		activeView: viewDashboard,
		st:         newStyles(paletteFor(theme)),
		dashboard:  newDashboardModel(deps),
		notes:      newNotesModel(deps),
		tasks:      newTasksModel(deps),
		chips:      newChipsModel(deps),
		chat:       newChatModel(deps),
		settings:   newSettingsModel(deps),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.loadData(),
		a.chat.Init(),
		waitForNotification(a.deps.Notify),
	)
}

func waitForNotification(n *notify.Notifier) tea.Cmd {
	return func() tea.Msg {
		return notificationMsg(<-n.C())
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4
		a.notes.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.chips.setSize(a.width, contentHeight)
		a.chat.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// A capturing child (form or chat input) sees the key first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewNotes
			return a, a.notes.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewTasks
			return a, a.tasks.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewChips
			return a, a.chips.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewChat
			return a, a.chat.refresh()
		case key.Matches(msg, keys.Tab6):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.NextTab):
			a.activeView = (a.activeView + 1) % viewCount
			return a, a.refreshCurrentView()
		}

	case statusMsg:
		a.status = msg.text
		a.isErr = msg.isError
		return a, nil

	case notificationMsg:
		a.status = msg.Message
		a.isErr = msg.Level == notify.LevelError
		return a, waitForNotification(a.deps.Notify)

	case themeChangedMsg:
		a.st = newStyles(paletteFor(msg.theme))
		return a, a.settings.refresh()

	case migrationDoneMsg:
		if msg.report.Succeeded() {
			a.status = "Migration complete, remote backend enabled"
			a.isErr = false
		} else {
			a.status = "Migration failed: " + joinStrings(msg.report.FailedCollections())
			a.isErr = true
		}
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, cmd
	}

	return a.routeMessage(msg)
}

// routeMessage delivers async results to the view that requested them,
// even if the user has switched tabs since. Everything else goes to the
// active view.
func (a App) routeMessage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.(type) {
	case dashboardDataMsg:
		a.dashboard, cmd = a.dashboard.update(msg)
	case notesLoadedMsg:
		a.notes, cmd = a.notes.update(msg)
	case tasksLoadedMsg:
		a.tasks, cmd = a.tasks.update(msg)
	case chipsLoadedMsg, chipHeatedMsg:
		a.chips, cmd = a.chips.update(msg)
	case chatTabsMsg, chatReplyMsg:
		a.chat, cmd = a.chat.update(msg)
	case settingsLoadedMsg:
		a.settings, cmd = a.settings.update(msg)
	case spinner.TickMsg:
		var cmds []tea.Cmd
		a.chips, cmd = a.chips.update(msg)
		cmds = append(cmds, cmd)
		a.chat, cmd = a.chat.update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)
	default:
		return a.updateActiveView(msg)
	}
	return a, cmd
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewNotes:
		a.notes, cmd = a.notes.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewChips:
		a.chips, cmd = a.chips.update(msg)
	case viewChat:
		a.chat, cmd = a.chat.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewNotes:
		return a.notes.formActive
	case viewTasks:
		return a.tasks.formActive
	case viewChips:
		return a.chips.formActive
	case viewChat:
		return a.chat.inputFocused()
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewNotes:
		return a.notes.refresh()
	case viewTasks:
		return a.tasks.refresh()
	case viewChips:
		return a.chips.refresh()
	case viewChat:
		return a.chat.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view(a.st, a.width)
	case viewNotes:
		content = a.notes.view(a.st)
	case viewTasks:
		content = a.tasks.view(a.st)
	case viewChips:
		content = a.chips.view(a.st)
	case viewChat:
		content = a.chat.view(a.st)
	case viewSettings:
		content = a.settings.view(a.st)
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, a.st.activeTab.Render(name))
		} else {
			tabs = append(tabs, a.st.inactiveTab.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
	title := a.st.title.Render("severino")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}

	return a.st.header.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spaces(gap), tabRow),
	)
}

func (a App) renderFooter() string {
	if a.showHelp {
		return a.st.footer.Render(a.help.View(keys))
	}
	line := a.help.View(keys)
	if a.status != "" {
		style := a.st.muted
		if a.isErr {
			style = a.st.errorText
		}
		line = style.Render(a.status) + "  " + line
	}
	return a.st.footer.Render(line)
}

func spaces(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}

func joinStrings(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
