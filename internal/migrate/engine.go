// Package migrate implements the one-shot, user-triggered copy of every
// local collection snapshot into the remote backend. The procedure is
// best-effort: a failing collection is reported and the rest still run.
// It does not deduplicate — running it twice creates duplicate remote
// rows — and it never deletes local data.
package migrate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/severinoia/central/internal/localstore"
	"github.com/severinoia/central/internal/model"
	"github.com/severinoia/central/internal/settings"
)

// Backend is the subset of the remote adapter the engine writes to.
type Backend interface {
	InsertNote(ctx context.Context, userID string, n model.Note) error
	InsertTask(ctx context.Context, userID string, t model.Task) error
	InsertLink(ctx context.Context, userID string, l model.UsefulLink) error
	InsertIdea(ctx context.Context, userID string, i model.Idea) error
	InsertPrompt(ctx context.Context, userID string, p model.Prompt) error
	InsertChip(ctx context.Context, userID string, c model.ChipInstance) error
	InsertClient(ctx context.Context, userID string, c model.Client) error
	InsertFinancialRecord(ctx context.Context, userID string, r model.FinancialRecord) error
	UpsertSettings(ctx context.Context, userID string, s model.Settings) error
}

// CollectionResult is the outcome for one collection kind.
type CollectionResult struct {
	Name     string
	Migrated int
	Err      error
}

// Report aggregates the outcome of a migration run.
type Report struct {
	Results []CollectionResult
}

// Succeeded reports whether every collection migrated without error.
// Only then is the UseRemote flag flipped.
func (r Report) Succeeded() bool {
	for _, res := range r.Results {
		if res.Err != nil {
			return false
		}
	}
	return true
}

// FailedCollections names the collections that had errors.
func (r Report) FailedCollections() []string {
	var failed []string
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res.Name)
		}
	}
	return failed
}

// TotalMigrated sums the records copied across all collections.
func (r Report) TotalMigrated() int {
	total := 0
	for _, res := range r.Results {
		total += res.Migrated
	}
	return total
}

// Engine performs the local-to-remote migration.
type Engine struct {
	local    *localstore.Stores
	backend  Backend
	settings *settings.Store
	log      zerolog.Logger
}

// New builds a migration engine.
func New(local *localstore.Stores, backend Backend, st *settings.Store, log zerolog.Logger) *Engine {
	return &Engine{
		local:    local,
		backend:  backend,
		settings: st,
		log:      log.With().Str("component", "migrate").Logger(),
	}
}

// Run copies every local collection snapshot into the backend, tagged
// with userID. Snapshots are taken at invocation; records within a
// collection are inserted in snapshot order. On full success the
// settings UseRemote flag is flipped to true.
func (e *Engine) Run(ctx context.Context, userID string) Report {
	var report Report

	report.Results = append(report.Results, migrateCollection(
		ctx, "notes", e.local.Notes.Snapshot,
		func(ctx context.Context, n model.Note) error {
			return e.backend.InsertNote(ctx, userID, n)
		}))
	report.Results = append(report.Results, migrateCollection(
		ctx, "tasks", e.local.Tasks.Snapshot,
		func(ctx context.Context, t model.Task) error {
			return e.backend.InsertTask(ctx, userID, t)
		}))
	report.Results = append(report.Results, migrateCollection(
		ctx, "useful_links", e.local.Links.Snapshot,
		func(ctx context.Context, l model.UsefulLink) error {
			return e.backend.InsertLink(ctx, userID, l)
		}))
	report.Results = append(report.Results, migrateCollection(
		ctx, "ideas", e.local.Ideas.Snapshot,
		func(ctx context.Context, i model.Idea) error {
			return e.backend.InsertIdea(ctx, userID, i)
		}))
	report.Results = append(report.Results, migrateCollection(
		ctx, "prompts", e.local.Prompts.Snapshot,
		func(ctx context.Context, p model.Prompt) error {
			return e.backend.InsertPrompt(ctx, userID, p)
		}))
	report.Results = append(report.Results, migrateCollection(
		ctx, "chip_instances", e.local.Chips.Snapshot,
		func(ctx context.Context, c model.ChipInstance) error {
			return e.backend.InsertChip(ctx, userID, c)
		}))
	report.Results = append(report.Results, migrateCollection(
		ctx, "clients", e.local.Clients.Snapshot,
		func(ctx context.Context, c model.Client) error {
			return e.backend.InsertClient(ctx, userID, c)
		}))
	report.Results = append(report.Results, migrateCollection(
		ctx, "financial_records", e.local.Finance.Snapshot,
		func(ctx context.Context, r model.FinancialRecord) error {
			return e.backend.InsertFinancialRecord(ctx, userID, r)
		}))
	report.Results = append(report.Results, e.migrateSettings(ctx, userID))

	for _, res := range report.Results {
		if res.Err != nil {
			e.log.Warn().
				Err(res.Err).
				Str("collection", res.Name).
				Int("migrated", res.Migrated).
				Msg("collection migration failed")
		}
	}

	if report.Succeeded() {
		useRemote := true
		uid := userID
		if _, err := e.settings.Update(model.SettingsPatch{
			UseRemote: &useRemote,
			UserID:    &uid,
		}); err != nil {
			// Flag flip failure counts as a failed migration; data was
			// copied but routing stays local.
			report.Results = append(report.Results, CollectionResult{
				Name: "settings_flag",
				Err:  fmt.Errorf("enabling remote routing: %w", err),
			})
		}
	}

	return report
}

// migrateCollection snapshots one collection and replays it as inserts.
// The first failing insert stops this collection; the caller moves on
// to the next one.
func migrateCollection[T any](
	ctx context.Context,
	name string,
	snapshot func() ([]T, error),
	insert func(context.Context, T) error,
) CollectionResult {
	result := CollectionResult{Name: name}

	items, err := snapshot()
	if err != nil {
		result.Err = fmt.Errorf("reading %s snapshot: %w", name, err)
		return result
	}

	for _, item := range items {
		if err := insert(ctx, item); err != nil {
			result.Err = fmt.Errorf("inserting into %s: %w", name, err)
			return result
		}
		result.Migrated++
	}

	return result
}

func (e *Engine) migrateSettings(ctx context.Context, userID string) CollectionResult {
	result := CollectionResult{Name: "settings"}

	current, err := e.settings.Get()
	if err != nil {
		result.Err = fmt.Errorf("reading settings: %w", err)
		return result
	}

	if err := e.backend.UpsertSettings(ctx, userID, current); err != nil {
		result.Err = fmt.Errorf("upserting settings: %w", err)
		return result
	}
	result.Migrated = 1
	return result
}
