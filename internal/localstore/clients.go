package localstore

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/severinoia/central/internal/codec"
	"github.com/severinoia/central/internal/model"
)

// ClientStore owns the client board collection.
type ClientStore struct {
	c *Collection[model.Client]
}

// NewClientStore creates the clients store backed by kv.
func NewClientStore(kv KV, log zerolog.Logger) *ClientStore {
	return &ClientStore{c: NewCollection("clients", kv, log,
		func(cl *model.Client) {
			if cl.ID == "" {
				cl.ID = uuid.New().String()
			}
			if cl.CreatedAt.IsZero() {
				now := codec.Now()
				cl.CreatedAt = now
				cl.UpdatedAt = now
			}
			if cl.Status == "" {
				cl.Status = model.ClientStatusProspect
			}
			if cl.Category == "" {
				cl.Category = model.ClientCategoryIndividual
			}
		},
		func(cl *model.Client) { cl.UpdatedAt = codec.Now() },
	)}
}

// List returns all clients, most recently created first.
func (s *ClientStore) List() ([]model.Client, error) {
	return s.c.List()
}

// ListByStatus returns clients in the given relationship stage.
func (s *ClientStore) ListByStatus(status string) ([]model.Client, error) {
	clients, err := s.c.List()
	if err != nil {
		return nil, err
	}
	out := clients[:0:0]
	for _, cl := range clients {
		if cl.Status == status {
			out = append(out, cl)
		}
	}
	return out, nil
}

// DueForContact returns clients whose next contact date falls on or
// before today.
func (s *ClientStore) DueForContact() ([]model.Client, error) {
	clients, err := s.c.List()
	if err != nil {
		return nil, err
	}
	now := codec.Now()
	out := clients[:0:0]
	for _, cl := range clients {
		if cl.NextContactDate == nil {
			continue
		}
		if cl.NextContactDate.SameDay(now) || cl.NextContactDate.Before(now.Time) {
			out = append(out, cl)
		}
	}
	return out, nil
}

// Add creates a new client entry.
func (s *ClientStore) Add(client model.Client) (model.Client, error) {
	return s.c.Add(client)
}

// ClientPatch is a partial update to a client.
type ClientPatch struct {
	Name            *string
	Company         *string
	Email           *string
	Phone           *string
	Status          *string
	Category        *string
	Notes           *string
	Value           *float64
	NextContactDate *codec.Time
	LastContactDate *codec.Time
}

// Apply merges the patch into cl.
func (p ClientPatch) Apply(cl *model.Client) {
	if p.Name != nil {
		cl.Name = *p.Name
	}
	if p.Company != nil {
		cl.Company = *p.Company
	}
	if p.Email != nil {
		cl.Email = *p.Email
	}
	if p.Phone != nil {
		cl.Phone = *p.Phone
	}
	if p.Status != nil {
		cl.Status = *p.Status
	}
	if p.Category != nil {
		cl.Category = *p.Category
	}
	if p.Notes != nil {
		cl.Notes = *p.Notes
	}
	if p.Value != nil {
		cl.Value = *p.Value
	}
	if p.NextContactDate != nil {
		cl.NextContactDate = p.NextContactDate
	}
	if p.LastContactDate != nil {
		cl.LastContactDate = p.LastContactDate
	}
}

// Update applies the patch to the client with the given id.
func (s *ClientStore) Update(id string, p ClientPatch) (model.Client, bool, error) {
	return s.c.Update(id, func(cl *model.Client) { p.Apply(cl) })
}

// Delete removes a client. Financial records referencing it are left in
// place; the reference is non-owning.
func (s *ClientStore) Delete(id string) (bool, error) {
	return s.c.Remove(id)
}

// Snapshot returns the current state for migration.
func (s *ClientStore) Snapshot() ([]model.Client, error) {
	return s.c.Snapshot()
}
