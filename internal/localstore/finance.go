package localstore

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/severinoia/central/internal/codec"
	"github.com/severinoia/central/internal/model"
)

// FinanceStore owns the financial records collection.
type FinanceStore struct {
	c *Collection[model.FinancialRecord]
}

// NewFinanceStore creates the financial records store backed by kv.
func NewFinanceStore(kv KV, log zerolog.Logger) *FinanceStore {
	return &FinanceStore{c: NewCollection("financial_records", kv, log,
		func(r *model.FinancialRecord) {
			if r.ID == "" {
				r.ID = uuid.New().String()
			}
			if r.CreatedAt.IsZero() {
				now := codec.Now()
				r.CreatedAt = now
				r.UpdatedAt = now
			}
			if r.Date.IsZero() {
				r.Date = codec.Now()
			}
			if r.Status == "" {
				r.Status = model.RecordStatusPending
			}
		},
		func(r *model.FinancialRecord) { r.UpdatedAt = codec.Now() },
	)}
}

// List returns all records, most recently created first.
func (s *FinanceStore) List() ([]model.FinancialRecord, error) {
	return s.c.List()
}

// ListByClient returns records referencing the given client. The
// reference is weak; zero results is a normal outcome.
func (s *FinanceStore) ListByClient(clientID string) ([]model.FinancialRecord, error) {
	records, err := s.c.List()
	if err != nil {
		return nil, err
	}
	out := records[:0:0]
	for _, r := range records {
		if r.ClientID == clientID {
			out = append(out, r)
		}
	}
	return out, nil
}

// Totals sums completed income and expense amounts.
func (s *FinanceStore) Totals() (income, expense float64, err error) {
	records, err := s.c.List()
	if err != nil {
		return 0, 0, err
	}
	for _, r := range records {
		if r.Status != model.RecordStatusCompleted {
			continue
		}
		switch r.Type {
		case model.RecordTypeIncome:
			income += r.Amount
		case model.RecordTypeExpense:
			expense += r.Amount
		}
	}
	return income, expense, nil
}

// Add creates a new financial record.
func (s *FinanceStore) Add(record model.FinancialRecord) (model.FinancialRecord, error) {
	return s.c.Add(record)
}

// FinancePatch is a partial update to a financial record.
type FinancePatch struct {
	Description *string
	Amount      *float64
	Type        *string
	Status      *string
	Date        *codec.Time
}

// Apply merges the patch into r.
func (p FinancePatch) Apply(r *model.FinancialRecord) {
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Amount != nil {
		r.Amount = *p.Amount
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
}

// Update applies the patch to the record with the given id.
func (s *FinanceStore) Update(id string, p FinancePatch) (model.FinancialRecord, bool, error) {
	return s.c.Update(id, func(r *model.FinancialRecord) { p.Apply(r) })
}

// Delete removes a record, reporting whether one existed.
func (s *FinanceStore) Delete(id string) (bool, error) {
	return s.c.Remove(id)
}

// Snapshot returns the current state for migration.
func (s *FinanceStore) Snapshot() ([]model.FinancialRecord, error) {
	return s.c.Snapshot()
}
