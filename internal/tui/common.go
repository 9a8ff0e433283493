package tui

import (
	"github.com/severinoia/central/internal/codec"
	"github.com/severinoia/central/internal/migrate"
	"github.com/severinoia/central/internal/model"
	"github.com/severinoia/central/internal/notify"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewNotes
	viewTasks
	viewChips
	viewChat
	viewSettings

	viewCount
)

var viewNames = []string{"Dashboard", "Notes", "Tasks", "Chips", "Chat", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type notificationMsg notify.Notification

type dashboardDataMsg struct {
	noteCount    int
	pendingTasks int
	activeChips  int
	dueToday     []model.Task
	recentNotes  []model.Note
}

type notesLoadedMsg struct {
	notes []model.Note
	err   error
}

type tasksLoadedMsg struct {
	tasks []model.Task
	err   error
}

type chipsLoadedMsg struct {
	chips []model.ChipInstance
	err   error
}

type chipHeatedMsg struct {
	chipID string
	qrCode string
	err    error
}

type chatReplyMsg struct {
	tabID string
	reply string
	err   error
}

type settingsLoadedMsg struct {
	settings model.Settings
	err      error
}

type migrationDoneMsg struct {
	report migrate.Report
}

type themeChangedMsg struct {
	theme string
}

// --- Helpers ---

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

func formatDate(t codec.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func formatOptionalDate(t *codec.Time) string {
	if t == nil {
		return "-"
	}
	return formatDate(*t)
}
