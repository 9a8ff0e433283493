package model

import "github.com/severinoia/central/internal/codec"

// Chip lifecycle states. A chip starts inactive, enters heating while the
// automation call is in flight, and becomes active on success. A failed
// heating attempt returns the chip to inactive so the user can retry.
const (
	ChipStatusInactive = "inactive"
	ChipStatusHeating  = "heating"
	ChipStatusActive   = "active"
)

// ChipInstance is a WhatsApp automation identity managed through the
// Evolution API.
type ChipInstance struct {
	ID        string     `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Phone     string     `json:"phone" db:"phone"`
	Status    string     `json:"status" db:"status"`
	CreatedAt codec.Time `json:"created_at" db:"created_at"`
}

func (c ChipInstance) RecordID() string { return c.ID }
