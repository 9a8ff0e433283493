package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/severinoia/central/internal/model"
)

type settingsBindings struct {
	webhookURL          string
	openAIKey           string
	evolutionURL        string
	evolutionKey        string
	theme               string
	language            string
	notifications       bool
	autoSave            bool
	userID              string
	confirmMigration    bool
}

type settingsModel struct {
	deps   Deps
	width  int
	height int

	current model.Settings

	formActive bool
	migrating  bool
	form       *huh.Form
	// migrationForm is non-nil while the confirm dialog is open.
	migrationForm *huh.Form
	fb            *settingsBindings
}

func newSettingsModel(deps Deps) settingsModel {
	return settingsModel{deps: deps, fb: &settingsBindings{}}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		current, err := m.deps.Settings.Get()
		return settingsLoadedMsg{settings: current, err: err}
	}
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		if msg.err != nil {
			return m, statusCmd("Loading settings failed: "+msg.err.Error(), true)
		}
		m.current = msg.settings
		return m, nil

	case migrationDoneMsg:
		m.migrating = false
		return m, m.refresh()

	case tea.KeyMsg:
		if m.migrationForm != nil {
			return m.updateMigrationForm(msg)
		}
		if m.formActive {
			return m.updateForm(msg)
		}

		switch msg.String() {
		case "e", "enter":
			m.formActive = true
			m.fb.webhookURL = m.current.WebhookURL
			m.fb.openAIKey = m.current.OpenAIAPIKey
			m.fb.evolutionURL = m.current.WebhookEvolutionURL
			m.fb.evolutionKey = m.current.EvolutionAPIKey
			m.fb.theme = m.current.Theme
			m.fb.language = m.current.Language
			m.fb.notifications = m.current.EnableNotifications
			m.fb.autoSave = m.current.AutoSave
			m.fb.userID = m.current.UserID
			m.form = m.buildForm()
			return m, m.form.Init()
		case "m":
			if m.deps.Migrate == nil {
				return m, statusCmd("No remote backend configured", true)
			}
			if m.current.UseRemote {
				return m, statusCmd("Already using the remote backend", false)
			}
			if m.migrating {
				return m, statusCmd("Migration already running", false)
			}
			m.fb.confirmMigration = false
			m.fb.userID = m.current.UserID
			m.migrationForm = m.buildMigrationForm()
			return m, m.migrationForm.Init()
		}
	}

	if m.migrationForm != nil {
		return m.updateMigrationForm(msg)
	}
	if m.formActive {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m, m.saveCmd(*m.fb)
	}
	if m.form.State == huh.StateAborted {
		m.formActive = false
		return m, nil
	}
	return m, cmd
}

func (m settingsModel) updateMigrationForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	mdl, cmd := m.migrationForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.migrationForm = f
	}

	if m.migrationForm.State == huh.StateCompleted {
		confirmed := m.fb.confirmMigration
		userID := strings.TrimSpace(m.fb.userID)
		m.migrationForm = nil
		if !confirmed {
			return m, nil
		}
		if userID == "" {
			return m, statusCmd("A user id is required to migrate", true)
		}
		m.migrating = true
		return m, m.migrateCmd(userID)
	}
	if m.migrationForm.State == huh.StateAborted {
		m.migrationForm = nil
		return m, nil
	}
	return m, cmd
}

func (m settingsModel) saveCmd(fb settingsBindings) tea.Cmd {
	return func() tea.Msg {
		patch := model.SettingsPatch{
			WebhookURL:          &fb.webhookURL,
			OpenAIAPIKey:        &fb.openAIKey,
			WebhookEvolutionURL: &fb.evolutionURL,
			EvolutionAPIKey:     &fb.evolutionKey,
			Theme:               &fb.theme,
			Language:            &fb.language,
			EnableNotifications: &fb.notifications,
			AutoSave:            &fb.autoSave,
			UserID:              &fb.userID,
		}
		updated, err := m.deps.Settings.Update(patch)
		if err != nil {
			return statusMsg{text: "Saving settings failed: " + err.Error(), isError: true}
		}
		m.deps.Notify.Success("Settings saved")
		return themeChangedMsg{theme: updated.Theme}
	}
}

func (m settingsModel) migrateCmd(userID string) tea.Cmd {
	return func() tea.Msg {
		report := m.deps.Migrate.Run(context.Background(), userID)
		return migrationDoneMsg{report: report}
	}
}

func (m settingsModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Chat webhook URL").
				Placeholder("https://...").
				Value(&m.fb.webhookURL),
			huh.NewInput().
				Title("OpenAI API key").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.openAIKey),
			huh.NewInput().
				Title("Evolution API URL").
				Placeholder("https://evolution.example.com").
				Value(&m.fb.evolutionURL),
			huh.NewInput().
				Title("Evolution API key").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.evolutionKey),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Dark", model.ThemeDark),
					huh.NewOption("Light", model.ThemeLight),
				).
				Value(&m.fb.theme),
			huh.NewSelect[string]().
				Title("Language").
				Options(
					huh.NewOption("Português", model.LanguagePT),
					huh.NewOption("English", model.LanguageEN),
				).
				Value(&m.fb.language),
			huh.NewConfirm().
				Title("Notifications").
				Value(&m.fb.notifications),
			huh.NewConfirm().
				Title("Auto save").
				Value(&m.fb.autoSave),
			huh.NewInput().
				Title("User id").
				Placeholder("Remote account id").
				Value(&m.fb.userID),
		),
	).WithWidth(min(m.width-4, 72))
}

func (m settingsModel) buildMigrationForm() *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("User id").
			Placeholder("Remote account id").
			Value(&m.fb.userID),
		huh.NewConfirm().
			Title("Copy all local data to the remote backend?").
			Description("Local data is kept. Running a migration twice duplicates remote rows.").
			Value(&m.fb.confirmMigration),
	)).WithWidth(min(m.width-4, 64))
}

func (m settingsModel) view(st styles) string {
	if m.migrationForm != nil {
		return st.activePanel.Render(st.title.Render("Migrate to remote") + "\n" + m.migrationForm.View())
	}
	if m.formActive {
		return st.activePanel.Render(st.title.Render("Settings") + "\n" + m.form.View())
	}

	mask := func(s string) string {
		if s == "" {
			return st.muted.Render("not set")
		}
		return strings.Repeat("•", 8)
	}
	orDefault := func(s string) string {
		if s == "" {
			return st.muted.Render("not set")
		}
		return s
	}
	onOff := func(v bool) string {
		if v {
			return st.success.Render("on")
		}
		return st.muted.Render("off")
	}

	backend := "local"
	if m.current.UseRemote {
		backend = "remote"
	}

	var b strings.Builder
	b.WriteString(st.title.Render("Settings") + "\n\n")
	fmt.Fprintf(&b, "%s %s\n", st.subtitle.Render("Chat webhook:"), orDefault(m.current.WebhookURL))
	fmt.Fprintf(&b, "%s %s\n", st.subtitle.Render("OpenAI key:"), mask(m.current.OpenAIAPIKey))
	fmt.Fprintf(&b, "%s %s\n", st.subtitle.Render("Evolution URL:"), orDefault(m.current.WebhookEvolutionURL))
	fmt.Fprintf(&b, "%s %s\n", st.subtitle.Render("Evolution key:"), mask(m.current.EvolutionAPIKey))
	fmt.Fprintf(&b, "%s %s\n", st.subtitle.Render("Theme:"), m.current.Theme)
	fmt.Fprintf(&b, "%s %s\n", st.subtitle.Render("Language:"), m.current.Language)
	fmt.Fprintf(&b, "%s %s\n", st.subtitle.Render("Notifications:"), onOff(m.current.EnableNotifications))
	fmt.Fprintf(&b, "%s %s\n", st.subtitle.Render("Auto save:"), onOff(m.current.AutoSave))
	fmt.Fprintf(&b, "%s %s\n", st.subtitle.Render("Backend:"), st.highlight.Render(backend))
	if m.migrating {
		b.WriteString("\n" + st.warning.Render("Migration running..."))
	}
	b.WriteString("\n" + st.muted.Render("e edit · m migrate to remote"))

	return st.panel.Render(b.String())
}
