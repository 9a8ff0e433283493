package model

import "github.com/severinoia/central/internal/codec"

// Financial record types.
const (
	RecordTypeIncome  = "income"
	RecordTypeExpense = "expense"
)

// Financial record statuses.
const (
	RecordStatusPending   = "pending"
	RecordStatusCompleted = "completed"
	RecordStatusCancelled = "cancelled"
)

// FinancialRecord is an income or expense entry. ClientID is a weak
// reference: deleting the client does not remove its records, and a
// lookup by client may return nothing.
type FinancialRecord struct {
	ID          string     `json:"id" db:"id"`
	ClientID    string     `json:"client_id" db:"client_id"`
	Description string     `json:"description" db:"description"`
	Amount      float64    `json:"amount" db:"amount"`
	Type        string     `json:"type" db:"type"`
	Status      string     `json:"status" db:"status"`
	Date        codec.Time `json:"date" db:"date"`
	CreatedAt   codec.Time `json:"created_at" db:"created_at"`
	UpdatedAt   codec.Time `json:"updated_at" db:"updated_at"`
}

func (r FinancialRecord) RecordID() string { return r.ID }
