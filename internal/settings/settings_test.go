package settings

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/severinoia/central/internal/credential"
	"github.com/severinoia/central/internal/localstore"
	"github.com/severinoia/central/internal/model"
)

func newTestStore(t *testing.T) (*Store, *localstore.MemKV, *credential.MemStore) {
	t.Helper()
	kv := localstore.NewMemKV()
	creds := credential.NewMemStore()
	return NewStore(kv, creds, zerolog.Nop()), kv, creds
}

func TestFirstAccessMaterializesDefaults(t *testing.T) {
	store, _, _ := newTestStore(t)

	current, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, current.Theme)
	assert.Equal(t, model.LanguagePT, current.Language)
	assert.True(t, current.EnableNotifications)
	assert.True(t, current.AutoSave)
	assert.False(t, current.UseRemote)
}

func TestUpdateIsShallowMerge(t *testing.T) {
	store, _, _ := newTestStore(t)

	theme := model.ThemeLight
	updated, err := store.Update(model.SettingsPatch{Theme: &theme})
	require.NoError(t, err)

	assert.Equal(t, model.ThemeLight, updated.Theme)
	assert.Equal(t, model.LanguagePT, updated.Language, "unset patch fields keep their values")
	assert.True(t, updated.AutoSave)
}

func TestSecretsGoToCredentialStoreNotSnapshot(t *testing.T) {
	store, kv, creds := newTestStore(t)

	key := "sk-secret"
	url := "https://hooks.example.com/chat"
	_, err := store.Update(model.SettingsPatch{OpenAIAPIKey: &key, WebhookURL: &url})
	require.NoError(t, err)

	stored, err := creds.Get(credential.KeyOpenAI)
	require.NoError(t, err)
	assert.Equal(t, "sk-secret", stored)

	data, err := kv.Get("settings")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.NotContains(t, string(data), "sk-secret", "API keys never land in the snapshot")
	assert.Contains(t, string(data), url)
}

func TestSettingsSurviveReloadWithSecretsRehydrated(t *testing.T) {
	kv := localstore.NewMemKV()
	creds := credential.NewMemStore()
	store := NewStore(kv, creds, zerolog.Nop())

	key := "evo-key"
	theme := model.ThemeLight
	_, err := store.Update(model.SettingsPatch{EvolutionAPIKey: &key, Theme: &theme})
	require.NoError(t, err)

	reloaded := NewStore(kv, creds, zerolog.Nop())
	current, err := reloaded.Get()
	require.NoError(t, err)
	assert.Equal(t, model.ThemeLight, current.Theme)
	assert.Equal(t, "evo-key", current.EvolutionAPIKey)
}

func TestCorruptSnapshotFallsBackToDefaults(t *testing.T) {
	kv := localstore.NewMemKV()
	require.NoError(t, kv.Put("settings", []byte("{broken")))

	store := NewStore(kv, credential.NewMemStore(), zerolog.Nop())
	current, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, current.Theme)
}

func TestSnapshotUsesSettingsEnvelope(t *testing.T) {
	store, kv, _ := newTestStore(t)

	lang := model.LanguageEN
	_, err := store.Update(model.SettingsPatch{Language: &lang})
	require.NoError(t, err)

	data, err := kv.Get("settings")
	require.NoError(t, err)

	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &env))
	require.Contains(t, env, "settings")

	var s model.Settings
	require.NoError(t, json.Unmarshal(env["settings"], &s))
	assert.Equal(t, model.LanguageEN, s.Language)
}

func TestUseRemoteFollowsFlag(t *testing.T) {
	store, _, _ := newTestStore(t)

	useRemote, err := store.UseRemote()
	require.NoError(t, err)
	assert.False(t, useRemote)

	flag := true
	uid := "user-1"
	_, err = store.Update(model.SettingsPatch{UseRemote: &flag, UserID: &uid})
	require.NoError(t, err)

	useRemote, err = store.UseRemote()
	require.NoError(t, err)
	assert.True(t, useRemote)
}
