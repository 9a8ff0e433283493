package migrate

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/severinoia/central/internal/credential"
	"github.com/severinoia/central/internal/localstore"
	"github.com/severinoia/central/internal/model"
	"github.com/severinoia/central/internal/settings"
)

// fakeBackend counts inserts per collection and can be told to fail a
// collection after accepting a number of records.
type fakeBackend struct {
	inserted map[string]int
	// failAfter[name] = n fails the (n+1)th insert for that collection.
	failAfter map[string]int
	settings  map[string]model.Settings
	users     map[string]bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		inserted:  make(map[string]int),
		failAfter: make(map[string]int),
		settings:  make(map[string]model.Settings),
		users:     make(map[string]bool),
	}
}

func (f *fakeBackend) insert(name, userID string) error {
	f.users[userID] = true
	if limit, ok := f.failAfter[name]; ok && f.inserted[name] >= limit {
		return errors.New("backend rejected the record")
	}
	f.inserted[name]++
	return nil
}

func (f *fakeBackend) InsertNote(_ context.Context, userID string, _ model.Note) error {
	return f.insert("notes", userID)
}
func (f *fakeBackend) InsertTask(_ context.Context, userID string, _ model.Task) error {
	return f.insert("tasks", userID)
}
func (f *fakeBackend) InsertLink(_ context.Context, userID string, _ model.UsefulLink) error {
	return f.insert("useful_links", userID)
}
func (f *fakeBackend) InsertIdea(_ context.Context, userID string, _ model.Idea) error {
	return f.insert("ideas", userID)
}
func (f *fakeBackend) InsertPrompt(_ context.Context, userID string, _ model.Prompt) error {
	return f.insert("prompts", userID)
}
func (f *fakeBackend) InsertChip(_ context.Context, userID string, _ model.ChipInstance) error {
	return f.insert("chip_instances", userID)
}
func (f *fakeBackend) InsertClient(_ context.Context, userID string, _ model.Client) error {
	return f.insert("clients", userID)
}
func (f *fakeBackend) InsertFinancialRecord(_ context.Context, userID string, _ model.FinancialRecord) error {
	return f.insert("financial_records", userID)
}
func (f *fakeBackend) UpsertSettings(_ context.Context, userID string, s model.Settings) error {
	f.settings[userID] = s
	return nil
}

type fixture struct {
	local    *localstore.Stores
	settings *settings.Store
	backend  *fakeBackend
	engine   *Engine
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	kv := localstore.NewMemKV()
	local := localstore.NewStores(kv, zerolog.Nop())
	st := settings.NewStore(kv, credential.NewMemStore(), zerolog.Nop())
	backend := newFakeBackend()
	return fixture{
		local:    local,
		settings: st,
		backend:  backend,
		engine:   New(local, backend, st, zerolog.Nop()),
	}
}

func (f fixture) seed(t *testing.T) {
	t.Helper()
	for i := 0; i < 3; i++ {
		_, err := f.local.Notes.Add("note", "")
		require.NoError(t, err)
	}
	_, err := f.local.Tasks.Add("task", "", nil)
	require.NoError(t, err)
	_, err = f.local.Chips.Add("chip", "5511999990000")
	require.NoError(t, err)
	_, err = f.local.Clients.Add(model.Client{Name: "Acme"})
	require.NoError(t, err)
	_, err = f.local.Finance.Add(model.FinancialRecord{Amount: 10, Type: model.RecordTypeIncome})
	require.NoError(t, err)
}

func TestRunCopiesEveryCollectionAndFlipsFlag(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	report := f.engine.Run(context.Background(), "u1")

	require.True(t, report.Succeeded(), "failures: %v", report.FailedCollections())
	assert.Equal(t, 3, f.backend.inserted["notes"])
	assert.Equal(t, 1, f.backend.inserted["tasks"])
	assert.Equal(t, 1, f.backend.inserted["chip_instances"])
	assert.Equal(t, 1, f.backend.inserted["clients"])
	assert.Equal(t, 1, f.backend.inserted["financial_records"])
	assert.Equal(t, 8, report.TotalMigrated(), "seven records plus the settings row")
	assert.Contains(t, f.backend.settings, "u1")

	current, err := f.settings.Get()
	require.NoError(t, err)
	assert.True(t, current.UseRemote, "full success flips the routing flag")
	assert.Equal(t, "u1", current.UserID)
}

func TestEmptyCollectionsMigrateCleanly(t *testing.T) {
	f := newFixture(t)

	report := f.engine.Run(context.Background(), "u1")

	assert.True(t, report.Succeeded())
	assert.Equal(t, 1, report.TotalMigrated(), "only the settings row moves")
}

func TestFailedCollectionDoesNotStopTheRun(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	f.backend.failAfter["notes"] = 1

	report := f.engine.Run(context.Background(), "u1")

	assert.False(t, report.Succeeded())
	assert.Equal(t, []string{"notes"}, report.FailedCollections())
	assert.Equal(t, 1, f.backend.inserted["notes"], "the failing collection stops at the bad record")
	assert.Equal(t, 1, f.backend.inserted["tasks"], "later collections still run")
	assert.Equal(t, 1, f.backend.inserted["clients"])

	current, err := f.settings.Get()
	require.NoError(t, err)
	assert.False(t, current.UseRemote, "a partial migration must not flip the flag")
}

func TestLocalDataIsKeptAfterMigration(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	report := f.engine.Run(context.Background(), "u1")
	require.True(t, report.Succeeded())

	notes, err := f.local.Notes.List()
	require.NoError(t, err)
	assert.Len(t, notes, 3, "migration copies, it never deletes")
}

func TestReplayDuplicatesRemoteRows(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	first := f.engine.Run(context.Background(), "u1")
	require.True(t, first.Succeeded())
	second := f.engine.Run(context.Background(), "u1")
	require.True(t, second.Succeeded())

	assert.Equal(t, 6, f.backend.inserted["notes"], "no deduplication on replay")
}
