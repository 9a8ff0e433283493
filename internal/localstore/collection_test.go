package localstore

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/severinoia/central/internal/codec"
	"github.com/severinoia/central/internal/model"
)

func newNoteTestStore(t *testing.T) (*NoteStore, *MemKV) {
	t.Helper()
	kv := NewMemKV()
	return NewNoteStore(kv, zerolog.Nop()), kv
}

func TestAddStampsIdentityAndPrepends(t *testing.T) {
	store, _ := newNoteTestStore(t)

	first, err := store.Add("first", "one")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.True(t, first.CreatedAt.Equal(first.UpdatedAt), "fresh records carry created_at == updated_at")

	second, err := store.Add("second", "two")
	require.NoError(t, err)

	notes, err := store.List()
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID, "newest record comes first")
	assert.Equal(t, first.ID, notes[1].ID)
}

func TestUpdateBumpsUpdatedAtOnly(t *testing.T) {
	store, _ := newNoteTestStore(t)
	created, err := store.Add("title", "content")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	title := "renamed"
	updated, found, err := store.Update(created.ID, NotePatch{Title: &title})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "content", updated.Content, "unset patch fields stay untouched")
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt.Time))
}

func TestUpdateUnknownIDLeavesCollectionUnchanged(t *testing.T) {
	store, _ := newNoteTestStore(t)
	created, err := store.Add("title", "content")
	require.NoError(t, err)

	title := "ghost"
	_, found, err := store.Update("no-such-id", NotePatch{Title: &title})
	require.NoError(t, err)
	assert.False(t, found)

	notes, err := store.List()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, created, notes[0])
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, _ := newNoteTestStore(t)
	created, err := store.Add("title", "content")
	require.NoError(t, err)

	found, err := store.Delete(created.ID)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = store.Delete(created.ID)
	require.NoError(t, err)
	assert.False(t, found, "second delete reports nothing removed")
}

func TestMissingSnapshotIsEmptyCollection(t *testing.T) {
	store, _ := newNoteTestStore(t)
	notes, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestSnapshotIsEnvelopeNotBareArray(t *testing.T) {
	store, kv := newNoteTestStore(t)
	_, err := store.Add("title", "content")
	require.NoError(t, err)

	data, err := kv.Get("notes")
	require.NoError(t, err)
	require.NotNil(t, data)

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &envelope))
	require.Contains(t, envelope, "notes")

	var items []model.Note
	require.NoError(t, json.Unmarshal(envelope["notes"], &items))
	assert.Len(t, items, 1)
}

func TestStateSurvivesReload(t *testing.T) {
	kv := NewMemKV()
	store := NewNoteStore(kv, zerolog.Nop())
	created, err := store.Add("persisted", "content")
	require.NoError(t, err)

	reloaded := NewNoteStore(kv, zerolog.Nop())
	notes, err := reloaded.List()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, created.ID, notes[0].ID)
	assert.True(t, created.CreatedAt.Equal(notes[0].CreatedAt))
}

func TestCorruptRecordIsDroppedNotFatal(t *testing.T) {
	kv := NewMemKV()
	snapshot := `{"notes": [
		{"id": "good", "title": "ok", "content": "", "created_at": "2026-01-02T10:00:00Z", "updated_at": "2026-01-02T10:00:00Z"},
		{"id": "bad", "title": "broken", "created_at": "not-a-date", "updated_at": "2026-01-02T10:00:00Z"}
	]}`
	require.NoError(t, kv.Put("notes", []byte(snapshot)))

	store := NewNoteStore(kv, zerolog.Nop())
	notes, err := store.List()
	require.NoError(t, err)
	require.Len(t, notes, 1, "record with unparseable timestamp is dropped")
	assert.Equal(t, "good", notes[0].ID)
}

func TestListRecentlyUpdatedOrders(t *testing.T) {
	store, _ := newNoteTestStore(t)
	older, err := store.Add("older", "")
	require.NoError(t, err)
	_, err = store.Add("newer", "")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	content := "edited"
	_, _, err = store.Update(older.ID, NotePatch{Content: &content})
	require.NoError(t, err)

	notes, err := store.ListRecentlyUpdated()
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, older.ID, notes[0].ID, "the edited note surfaces first")
}

func TestTaskDefaultsAndQueries(t *testing.T) {
	kv := NewMemKV()
	store := NewTaskStore(kv, zerolog.Nop())

	plain, err := store.Add("no due date", "", nil)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusPending, plain.Status, "status defaults to pending")
	assert.Nil(t, plain.DueDate)

	today := codec.Now()
	due, err := store.Add("due today", "", &today)
	require.NoError(t, err)

	tomorrow := codec.FromTime(time.Now().Add(24 * time.Hour))
	_, err = store.Add("due tomorrow", "", &tomorrow)
	require.NoError(t, err)

	dueToday, err := store.DueToday()
	require.NoError(t, err)
	require.Len(t, dueToday, 1)
	assert.Equal(t, due.ID, dueToday[0].ID)

	_, _, err = store.UpdateStatus(due.ID, model.TaskStatusCompleted)
	require.NoError(t, err)

	completed, err := store.ListByStatus(model.TaskStatusCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, due.ID, completed[0].ID)
}

func TestChipDefaultsAndAlphabeticalOrder(t *testing.T) {
	kv := NewMemKV()
	store := NewChipStore(kv, zerolog.Nop())

	zulu, err := store.Add("zulu", "551100000001")
	require.NoError(t, err)
	assert.Equal(t, model.ChipStatusInactive, zulu.Status, "chips start inactive")

	_, err = store.Add("Alpha", "551100000002")
	require.NoError(t, err)
	_, err = store.Add("mike", "551100000003")
	require.NoError(t, err)

	chips, err := store.ListAlphabetical()
	require.NoError(t, err)
	require.Len(t, chips, 3)
	assert.Equal(t, "Alpha", chips[0].Name)
	assert.Equal(t, "mike", chips[1].Name)
	assert.Equal(t, "zulu", chips[2].Name)
}

func TestFinanceTotalsCountCompletedOnly(t *testing.T) {
	kv := NewMemKV()
	store := NewFinanceStore(kv, zerolog.Nop())

	add := func(amount float64, kind, status string) {
		t.Helper()
		_, err := store.Add(model.FinancialRecord{
			Description: "entry",
			Amount:      amount,
			Type:        kind,
			Status:      status,
		})
		require.NoError(t, err)
	}

	add(1000, model.RecordTypeIncome, model.RecordStatusCompleted)
	add(250, model.RecordTypeExpense, model.RecordStatusCompleted)
	add(9999, model.RecordTypeIncome, model.RecordStatusPending)
	add(9999, model.RecordTypeExpense, model.RecordStatusCancelled)

	income, expense, err := store.Totals()
	require.NoError(t, err)
	assert.Equal(t, 1000.0, income)
	assert.Equal(t, 250.0, expense)
}

func TestFinanceListByClient(t *testing.T) {
	kv := NewMemKV()
	store := NewFinanceStore(kv, zerolog.Nop())

	_, err := store.Add(model.FinancialRecord{ClientID: "c1", Amount: 10, Type: model.RecordTypeIncome})
	require.NoError(t, err)
	_, err = store.Add(model.FinancialRecord{ClientID: "c2", Amount: 20, Type: model.RecordTypeIncome})
	require.NoError(t, err)

	records, err := store.ListByClient("c1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "c1", records[0].ClientID)

	none, err := store.ListByClient("deleted-client")
	require.NoError(t, err)
	assert.Empty(t, none, "weak reference lookups may return nothing")
}

func TestClientDefaultsAndContactQueries(t *testing.T) {
	kv := NewMemKV()
	store := NewClientStore(kv, zerolog.Nop())

	created, err := store.Add(model.Client{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, model.ClientStatusProspect, created.Status)
	assert.Equal(t, model.ClientCategoryIndividual, created.Category)

	yesterday := codec.FromTime(time.Now().Add(-24 * time.Hour))
	_, err = store.Add(model.Client{Name: "Overdue", NextContactDate: &yesterday})
	require.NoError(t, err)

	nextWeek := codec.FromTime(time.Now().Add(7 * 24 * time.Hour))
	_, err = store.Add(model.Client{Name: "Later", NextContactDate: &nextWeek})
	require.NoError(t, err)

	due, err := store.DueForContact()
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Overdue", due[0].Name)

	prospects, err := store.ListByStatus(model.ClientStatusProspect)
	require.NoError(t, err)
	assert.Len(t, prospects, 3)
}
