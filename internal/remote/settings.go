package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/severinoia/central/internal/model"
)

// settingsRow mirrors the settings table. API keys are never stored in
// the remote backend.
type settingsRow struct {
	WebhookURL          string `db:"webhook_url"`
	WebhookEvolutionURL string `db:"webhook_evolution_url"`
	Theme               string `db:"theme"`
	Language            string `db:"language"`
	EnableNotifications int    `db:"enable_notifications"`
	AutoSave            int    `db:"auto_save"`
	UseRemote           int    `db:"use_remote"`
}

// UpsertSettings inserts or replaces the user's settings row.
func (s *Store) UpsertSettings(ctx context.Context, userID string, st model.Settings) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (
			user_id, webhook_url, webhook_evolution_url,
			theme, language, enable_notifications, auto_save, use_remote
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			webhook_url = excluded.webhook_url,
			webhook_evolution_url = excluded.webhook_evolution_url,
			theme = excluded.theme,
			language = excluded.language,
			enable_notifications = excluded.enable_notifications,
			auto_save = excluded.auto_save,
			use_remote = excluded.use_remote`,
		userID, st.WebhookURL, st.WebhookEvolutionURL,
		st.Theme, st.Language,
		boolToInt(st.EnableNotifications), boolToInt(st.AutoSave),
		boolToInt(st.UseRemote),
	)
	if err != nil {
		return fmt.Errorf("upserting settings for %s: %w", userID, err)
	}
	return nil
}

// GetSettings retrieves the user's settings row.
func (s *Store) GetSettings(ctx context.Context, userID string) (model.Settings, bool, error) {
	var row settingsRow
	err := s.db.GetContext(ctx, &row, `
		SELECT webhook_url, webhook_evolution_url, theme, language,
			enable_notifications, auto_save, use_remote
		FROM settings WHERE user_id = ?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Settings{}, false, nil
	}
	if err != nil {
		return model.Settings{}, false, fmt.Errorf("getting settings for %s: %w", userID, err)
	}

	return model.Settings{
		WebhookURL:          row.WebhookURL,
		WebhookEvolutionURL: row.WebhookEvolutionURL,
		Theme:               row.Theme,
		Language:            row.Language,
		EnableNotifications: row.EnableNotifications != 0,
		AutoSave:            row.AutoSave != 0,
		UseRemote:           row.UseRemote != 0,
		UserID:              userID,
	}, true, nil
}
