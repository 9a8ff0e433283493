package remote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/severinoia/central/internal/codec"
	"github.com/severinoia/central/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNoteRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	note := model.Note{
		ID:        "n1",
		Title:     "remote note",
		Content:   "body",
		CreatedAt: codec.Now(),
		UpdatedAt: codec.Now(),
	}
	require.NoError(t, s.InsertNote(ctx, "u1", note))

	got, found, err := s.GetNote(ctx, "u1", "n1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "remote note", got.Title)
	assert.Equal(t, "body", got.Content)

	note.Title = "renamed"
	updated, err := s.UpdateNote(ctx, "u1", note)
	require.NoError(t, err)
	assert.True(t, updated)

	got, _, err = s.GetNote(ctx, "u1", "n1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)

	deleted, err := s.DeleteNote(ctx, "u1", "n1")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, found, err = s.GetNote(ctx, "u1", "n1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRowsAreScopedByUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	note := model.Note{ID: "n1", Title: "mine", CreatedAt: codec.Now(), UpdatedAt: codec.Now()}
	require.NoError(t, s.InsertNote(ctx, "u1", note))

	_, found, err := s.GetNote(ctx, "u2", "n1")
	require.NoError(t, err)
	assert.False(t, found, "another user's id never resolves")

	other, err := s.ListNotes(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)

	// The same id can exist independently for both users.
	require.NoError(t, s.InsertNote(ctx, "u2", model.Note{
		ID: "n1", Title: "theirs", CreatedAt: codec.Now(), UpdatedAt: codec.Now(),
	}))
	mine, _, err := s.GetNote(ctx, "u1", "n1")
	require.NoError(t, err)
	assert.Equal(t, "mine", mine.Title)
}

func TestUpdateMissingRowReportsNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	found, err := s.UpdateNote(ctx, "u1", model.Note{
		ID: "ghost", CreatedAt: codec.Now(), UpdatedAt: codec.Now(),
	})
	require.NoError(t, err)
	assert.False(t, found)

	deleted, err := s.DeleteNote(ctx, "u1", "ghost")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListNotesNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := codec.FromTime(time.Now().Add(-time.Hour))
	newer := codec.Now()
	require.NoError(t, s.InsertNote(ctx, "u1", model.Note{ID: "old", Title: "old", CreatedAt: older, UpdatedAt: older}))
	require.NoError(t, s.InsertNote(ctx, "u1", model.Note{ID: "new", Title: "new", CreatedAt: newer, UpdatedAt: newer}))

	notes, err := s.ListNotes(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "new", notes[0].ID)
	assert.Equal(t, "old", notes[1].ID)
}

func TestTaskNullableDueDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertTask(ctx, "u1", model.Task{
		ID: "t1", Title: "no due", Status: model.TaskStatusPending, CreatedAt: codec.Now(),
	}))

	due := codec.Now()
	require.NoError(t, s.InsertTask(ctx, "u1", model.Task{
		ID: "t2", Title: "due", Status: model.TaskStatusPending, DueDate: &due, CreatedAt: codec.Now(),
	}))

	got, found, err := s.GetTask(ctx, "u1", "t1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Nil(t, got.DueDate)

	got, _, err = s.GetTask(ctx, "u1", "t2")
	require.NoError(t, err)
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.SameDay(due))
}

func TestChipListCollatesByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"zulu", "Alpha", "mike"} {
		require.NoError(t, s.InsertChip(ctx, "u1", model.ChipInstance{
			ID: name, Name: name, Status: model.ChipStatusInactive, CreatedAt: codec.Now(),
		}))
	}

	chips, err := s.ListChips(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, chips, 3)
	assert.Equal(t, "Alpha", chips[0].Name)
	assert.Equal(t, "mike", chips[1].Name)
	assert.Equal(t, "zulu", chips[2].Name)
}

func TestClientRoundTripWithContactDates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	next := codec.Now()
	client := model.Client{
		ID:              "c1",
		Name:            "Acme",
		Status:          model.ClientStatusLead,
		Category:        model.ClientCategoryCompany,
		Value:           1500,
		NextContactDate: &next,
		CreatedAt:       codec.Now(),
		UpdatedAt:       codec.Now(),
	}
	require.NoError(t, s.InsertClient(ctx, "u1", client))

	got, found, err := s.GetClient(ctx, "u1", "c1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, model.ClientStatusLead, got.Status)
	assert.Equal(t, 1500.0, got.Value)
	require.NotNil(t, got.NextContactDate)
	assert.Nil(t, got.LastContactDate)
}

func TestFinancialRecordRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	record := model.FinancialRecord{
		ID:          "f1",
		ClientID:    "c1",
		Description: "retainer",
		Amount:      2000,
		Type:        model.RecordTypeIncome,
		Status:      model.RecordStatusCompleted,
		Date:        codec.Now(),
		CreatedAt:   codec.Now(),
		UpdatedAt:   codec.Now(),
	}
	require.NoError(t, s.InsertFinancialRecord(ctx, "u1", record))

	got, found, err := s.GetFinancialRecord(ctx, "u1", "f1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2000.0, got.Amount)
	assert.Equal(t, model.RecordTypeIncome, got.Type)
}

func TestSettingsUpsertAndFetch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, found, err := s.GetSettings(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, found)

	st := model.DefaultSettings()
	st.WebhookURL = "https://hooks.example.com/chat"
	st.OpenAIAPIKey = "sk-should-not-be-stored"
	require.NoError(t, s.UpsertSettings(ctx, "u1", st))

	got, found, err := s.GetSettings(ctx, "u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "https://hooks.example.com/chat", got.WebhookURL)
	assert.Empty(t, got.OpenAIAPIKey, "secrets never round-trip through the remote backend")

	// Upsert replaces the existing row.
	st.Theme = model.ThemeLight
	require.NoError(t, s.UpsertSettings(ctx, "u1", st))
	got, _, err = s.GetSettings(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.ThemeLight, got.Theme)
}

func TestSchemaMigrationsAreIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.runMigrations(), "re-running migrations on a current schema is a no-op")
}
