package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/severinoia/central/internal/model"
)

// palette is the color set for one theme.
type palette struct {
	primary   lipgloss.Color
	accent    lipgloss.Color
	muted     lipgloss.Color
	subtle    lipgloss.Color
	fg        lipgloss.Color
	success   lipgloss.Color
	warning   lipgloss.Color
	errorCol  lipgloss.Color
	highlight lipgloss.Color
}

func paletteFor(theme string) palette {
	if theme == model.ThemeLight {
		return palette{
			primary:   lipgloss.Color("#5A54D6"),
			accent:    lipgloss.Color("#D6456B"),
			muted:     lipgloss.Color("#8A8A8A"),
			subtle:    lipgloss.Color("#C8C8D0"),
			fg:        lipgloss.Color("#2A2A35"),
			success:   lipgloss.Color("#1E8E4F"),
			warning:   lipgloss.Color("#B57614"),
			errorCol:  lipgloss.Color("#C0392B"),
			highlight: lipgloss.Color("#3B6FD4"),
		}
	}
	return palette{
		primary:   lipgloss.Color("#6C63FF"),
		accent:    lipgloss.Color("#FF6B6B"),
		muted:     lipgloss.Color("#666666"),
		subtle:    lipgloss.Color("#414868"),
		fg:        lipgloss.Color("#C0CAF5"),
		success:   lipgloss.Color("#2ECC71"),
		warning:   lipgloss.Color("#F39C12"),
		errorCol:  lipgloss.Color("#E74C3C"),
		highlight: lipgloss.Color("#7AA2F7"),
	}
}

// styles are derived from the active palette once per theme change.
type styles struct {
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	panel       lipgloss.Style
	activePanel lipgloss.Style
	title       lipgloss.Style
	subtitle    lipgloss.Style
	selected    lipgloss.Style
	muted       lipgloss.Style
	success     lipgloss.Style
	warning     lipgloss.Style
	errorText   lipgloss.Style
	highlight   lipgloss.Style
	header      lipgloss.Style
	footer      lipgloss.Style
}

func newStyles(p palette) styles {
	return styles{
		activeTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(p.primary).
			Padding(0, 2),
		inactiveTab: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.subtle).
			Padding(1, 2),
		activePanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2),
		title:     lipgloss.NewStyle().Bold(true).Foreground(p.fg),
		subtitle:  lipgloss.NewStyle().Foreground(p.muted),
		selected:  lipgloss.NewStyle().Bold(true).Foreground(p.highlight),
		muted:     lipgloss.NewStyle().Foreground(p.muted),
		success:   lipgloss.NewStyle().Foreground(p.success),
		warning:   lipgloss.NewStyle().Foreground(p.warning),
		errorText: lipgloss.NewStyle().Foreground(p.errorCol),
		highlight: lipgloss.NewStyle().Foreground(p.highlight),
		header:    lipgloss.NewStyle().Padding(0, 1),
		footer:    lipgloss.NewStyle().Foreground(p.muted).Padding(0, 1),
	}
}

func statusStyle(s styles, level string) lipgloss.Style {
	switch level {
	case "success":
		return s.success
	case "warning":
		return s.warning
	case "error":
		return s.errorText
	}
	return s.muted
}
