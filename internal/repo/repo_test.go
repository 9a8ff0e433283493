package repo

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/severinoia/central/internal/credential"
	"github.com/severinoia/central/internal/localstore"
	"github.com/severinoia/central/internal/model"
	"github.com/severinoia/central/internal/remote"
	"github.com/severinoia/central/internal/settings"
)

type fixture struct {
	repo     *Repository
	local    *localstore.Stores
	remote   *remote.Store
	settings *settings.Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	kv := localstore.NewMemKV()
	local := localstore.NewStores(kv, zerolog.Nop())
	st := settings.NewStore(kv, credential.NewMemStore(), zerolog.Nop())

	remoteStore, err := remote.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { remoteStore.Close() })

	return fixture{
		repo:     New(local, remoteStore, st),
		local:    local,
		remote:   remoteStore,
		settings: st,
	}
}

func (f fixture) enableRemote(t *testing.T, userID string) {
	t.Helper()
	flag := true
	_, err := f.settings.Update(model.SettingsPatch{UseRemote: &flag, UserID: &userID})
	require.NoError(t, err)
}

func TestWritesGoLocalByDefault(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.repo.AddNote(ctx, "local note", "body")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	localNotes, err := f.local.Notes.List()
	require.NoError(t, err)
	require.Len(t, localNotes, 1)

	remoteNotes, err := f.remote.ListNotes(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, remoteNotes, "nothing reaches the remote backend while the flag is off")
}

func TestWritesGoRemoteAfterFlagFlip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.enableRemote(t, "u1")

	created, err := f.repo.AddNote(ctx, "remote note", "body")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID, "remote adds stamp an id too")
	assert.False(t, created.CreatedAt.IsZero())

	remoteNotes, err := f.remote.ListNotes(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, remoteNotes, 1)
	assert.Equal(t, "remote note", remoteNotes[0].Title)

	localNotes, err := f.local.Notes.List()
	require.NoError(t, err)
	assert.Empty(t, localNotes, "local stores stay untouched in remote mode")
}

func TestReadsFollowTheSameRoute(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.repo.AddNote(ctx, "only local", "")
	require.NoError(t, err)

	f.enableRemote(t, "u1")
	notes, err := f.repo.ListNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes, "remote mode reads the remote backend, which is empty")
}

func TestUpdateRoutesPatchRemotely(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.enableRemote(t, "u1")

	created, err := f.repo.AddTask(ctx, "task", "", nil)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusPending, created.Status)

	updated, found, err := f.repo.UpdateTaskStatus(ctx, created.ID, model.TaskStatusCompleted)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, model.TaskStatusCompleted, updated.Status)

	got, found, err := f.remote.GetTask(ctx, "u1", created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, model.TaskStatusCompleted, got.Status)
}

func TestUpdateUnknownIDReportsNotFoundInBothModes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	title := "x"
	_, found, err := f.repo.UpdateNote(ctx, "ghost", localstore.NotePatch{Title: &title})
	require.NoError(t, err)
	assert.False(t, found)

	f.enableRemote(t, "u1")
	_, found, err = f.repo.UpdateNote(ctx, "ghost", localstore.NotePatch{Title: &title})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestChipLifecycleThroughFacade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.repo.AddChip(ctx, "sales", "5511999990000")
	require.NoError(t, err)
	assert.Equal(t, model.ChipStatusInactive, created.Status)

	updated, found, err := f.repo.UpdateChipStatus(ctx, created.ID, model.ChipStatusHeating)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, model.ChipStatusHeating, updated.Status)

	got, found, err := f.repo.GetChip(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, model.ChipStatusHeating, got.Status)
}

func TestRemoteFlagWithoutBackendStaysLocal(t *testing.T) {
	kv := localstore.NewMemKV()
	local := localstore.NewStores(kv, zerolog.Nop())
	st := settings.NewStore(kv, credential.NewMemStore(), zerolog.Nop())
	r := New(local, nil, st)
	ctx := context.Background()

	flag := true
	uid := "u1"
	_, err := st.Update(model.SettingsPatch{UseRemote: &flag, UserID: &uid})
	require.NoError(t, err)

	_, err = r.AddNote(ctx, "still local", "")
	require.NoError(t, err)

	notes, err := local.Notes.List()
	require.NoError(t, err)
	assert.Len(t, notes, 1, "without a remote store the facade keeps routing locally")
}
