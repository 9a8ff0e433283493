package model

// Theme constants.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Language constants.
const (
	LanguagePT = "pt"
	LanguageEN = "en"
)

// Settings is the per-user configuration singleton. There is exactly one
// live instance per user context; it is created with defaults on first
// access and only ever merged, never replaced. The API keys are held in
// the credential store and are never written to the snapshot file.
type Settings struct {
	// OpenAIAPIKey authenticates calls to the chat completion webhook.
	OpenAIAPIKey string `json:"-"`

	// WebhookURL is the endpoint of the chat completion service.
	WebhookURL string `json:"webhook_url"`

	// EvolutionAPIKey authenticates calls to the WhatsApp automation API.
	EvolutionAPIKey string `json:"-"`

	// WebhookEvolutionURL is the base URL of the Evolution automation API.
	WebhookEvolutionURL string `json:"webhook_evolution_url"`

	Theme               string `json:"theme"`
	Language            string `json:"language"`
	EnableNotifications bool   `json:"enable_notifications"`
	AutoSave            bool   `json:"auto_save"`

	// UseRemote routes reads and writes to the remote backend instead of
	// the local stores. Flipped by the migration engine after a fully
	// successful migration.
	UseRemote bool `json:"use_remote"`

	// UserID identifies the authenticated user for remote operations.
	UserID string `json:"user_id"`
}

// DefaultSettings returns the settings materialized on first access.
func DefaultSettings() Settings {
	return Settings{
		Theme:               ThemeDark,
		Language:            LanguagePT,
		EnableNotifications: true,
		AutoSave:            true,
	}
}

// SettingsPatch is a shallow-merge update to Settings. Nil fields are
// left untouched.
type SettingsPatch struct {
	OpenAIAPIKey        *string
	WebhookURL          *string
	EvolutionAPIKey     *string
	WebhookEvolutionURL *string
	Theme               *string
	Language            *string
	EnableNotifications *bool
	AutoSave            *bool
	UseRemote           *bool
	UserID              *string
}

// Apply merges the patch into s, field by field.
func (p SettingsPatch) Apply(s *Settings) {
	if p.OpenAIAPIKey != nil {
		s.OpenAIAPIKey = *p.OpenAIAPIKey
	}
	if p.WebhookURL != nil {
		s.WebhookURL = *p.WebhookURL
	}
	if p.EvolutionAPIKey != nil {
		s.EvolutionAPIKey = *p.EvolutionAPIKey
	}
	if p.WebhookEvolutionURL != nil {
		s.WebhookEvolutionURL = *p.WebhookEvolutionURL
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.EnableNotifications != nil {
		s.EnableNotifications = *p.EnableNotifications
	}
	if p.AutoSave != nil {
		s.AutoSave = *p.AutoSave
	}
	if p.UseRemote != nil {
		s.UseRemote = *p.UseRemote
	}
	if p.UserID != nil {
		s.UserID = *p.UserID
	}
}
