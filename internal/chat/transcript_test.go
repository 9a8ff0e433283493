package chat

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/severinoia/central/internal/localstore"
	"github.com/severinoia/central/internal/model"
)

func newTestStore(t *testing.T) (*Store, *localstore.MemKV) {
	t.Helper()
	kv := localstore.NewMemKV()
	return NewStore(kv, zerolog.Nop()), kv
}

func TestStartsWithOneTab(t *testing.T) {
	store, _ := newTestStore(t)

	tabs, err := store.Tabs()
	require.NoError(t, err)
	require.Len(t, tabs, 1)
	assert.Equal(t, "Chat 1", tabs[0].Title)

	active, err := store.ActiveTab()
	require.NoError(t, err)
	assert.Equal(t, tabs[0].ID, active.ID)
}

func TestAddTabBecomesActive(t *testing.T) {
	store, _ := newTestStore(t)

	tab, err := store.AddTab("")
	require.NoError(t, err)
	assert.Equal(t, "Chat 2", tab.Title)

	active, err := store.ActiveTab()
	require.NoError(t, err)
	assert.Equal(t, tab.ID, active.ID)

	named, err := store.AddTab("planning")
	require.NoError(t, err)
	assert.Equal(t, "planning", named.Title)
}

func TestRemoveLastTabRefused(t *testing.T) {
	store, _ := newTestStore(t)

	tabs, err := store.Tabs()
	require.NoError(t, err)

	err = store.RemoveTab(tabs[0].ID)
	assert.ErrorIs(t, err, ErrLastTab)

	tabs, err = store.Tabs()
	require.NoError(t, err)
	assert.Len(t, tabs, 1)
}

func TestRemoveActiveTabActivatesPreviousSibling(t *testing.T) {
	store, _ := newTestStore(t)
	second, err := store.AddTab("second")
	require.NoError(t, err)
	third, err := store.AddTab("third")
	require.NoError(t, err)

	require.NoError(t, store.RemoveTab(third.ID))

	active, err := store.ActiveTab()
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
}

func TestRemoveFirstActiveTabActivatesFirstRemaining(t *testing.T) {
	store, _ := newTestStore(t)
	tabs, err := store.Tabs()
	require.NoError(t, err)
	first := tabs[0]

	second, err := store.AddTab("second")
	require.NoError(t, err)
	require.NoError(t, store.SetActive(first.ID))

	require.NoError(t, store.RemoveTab(first.ID))

	active, err := store.ActiveTab()
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
}

func TestRemoveInactiveTabKeepsActive(t *testing.T) {
	store, _ := newTestStore(t)
	tabs, _ := store.Tabs()
	first := tabs[0]
	second, err := store.AddTab("second")
	require.NoError(t, err)

	require.NoError(t, store.RemoveTab(first.ID))

	active, err := store.ActiveTab()
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
}

func TestAppendAndClearMessages(t *testing.T) {
	store, _ := newTestStore(t)
	tabs, _ := store.Tabs()
	id := tabs[0].ID

	msg, err := store.AppendMessage(id, model.ChatRoleUser, "hello")
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())

	require.NoError(t, store.MarkInitialized(id))

	active, err := store.ActiveTab()
	require.NoError(t, err)
	require.Len(t, active.Messages, 1)
	assert.True(t, active.Initialized)

	require.NoError(t, store.ClearMessages(id))

	active, err = store.ActiveTab()
	require.NoError(t, err)
	assert.Empty(t, active.Messages)
	assert.False(t, active.Initialized, "clearing must replay the welcome sequence")
}

func TestUnknownTabErrors(t *testing.T) {
	store, _ := newTestStore(t)

	assert.ErrorIs(t, store.SetActive("missing"), ErrTabNotFound)
	assert.ErrorIs(t, store.RenameTab("missing", "x"), ErrTabNotFound)
	assert.ErrorIs(t, store.ClearMessages("missing"), ErrTabNotFound)
	_, err := store.AppendMessage("missing", model.ChatRoleUser, "hi")
	assert.ErrorIs(t, err, ErrTabNotFound)
}

func TestTabsSurviveReload(t *testing.T) {
	kv := localstore.NewMemKV()
	store := NewStore(kv, zerolog.Nop())

	tab, err := store.AddTab("persisted")
	require.NoError(t, err)
	_, err = store.AppendMessage(tab.ID, model.ChatRoleAssistant, "welcome")
	require.NoError(t, err)

	reloaded := NewStore(kv, zerolog.Nop())
	tabs, err := reloaded.Tabs()
	require.NoError(t, err)
	require.Len(t, tabs, 2)
	assert.Equal(t, "persisted", tabs[1].Title)
	require.Len(t, tabs[1].Messages, 1)

	active, err := reloaded.ActiveTab()
	require.NoError(t, err)
	assert.Equal(t, tab.ID, active.ID)
}

func TestCorruptSnapshotFallsBackToFreshTab(t *testing.T) {
	kv := localstore.NewMemKV()
	require.NoError(t, kv.Put("chat_tabs", []byte("{not json")))

	store := NewStore(kv, zerolog.Nop())
	tabs, err := store.Tabs()
	require.NoError(t, err)
	require.Len(t, tabs, 1)
	assert.Equal(t, "Chat 1", tabs[0].Title)
}
