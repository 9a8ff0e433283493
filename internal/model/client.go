package model

import "github.com/severinoia/central/internal/codec"

// Client relationship stages.
const (
	ClientStatusProspect    = "prospect"
	ClientStatusLead        = "lead"
	ClientStatusNegotiation = "negotiation"
	ClientStatusClient      = "client"
	ClientStatusInactive    = "inactive"
)

// Client categories.
const (
	ClientCategoryIndividual = "individual"
	ClientCategoryCompany    = "company"
	ClientCategoryPartner    = "partner"
)

// Client is an entry on the relationship board. The optional contact-date
// fields drive follow-up reminders.
type Client struct {
	ID              string      `json:"id" db:"id"`
	Name            string      `json:"name" db:"name"`
	Company         string      `json:"company,omitempty" db:"company"`
	Email           string      `json:"email,omitempty" db:"email"`
	Phone           string      `json:"phone,omitempty" db:"phone"`
	Status          string      `json:"status" db:"status"`
	Category        string      `json:"category" db:"category"`
	Notes           string      `json:"notes,omitempty" db:"notes"`
	Value           float64     `json:"value,omitempty" db:"value"`
	NextContactDate *codec.Time `json:"next_contact_date,omitempty" db:"next_contact_date"`
	LastContactDate *codec.Time `json:"last_contact_date,omitempty" db:"last_contact_date"`
	CreatedAt       codec.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       codec.Time  `json:"updated_at" db:"updated_at"`
}

func (c Client) RecordID() string { return c.ID }
