package localstore

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/severinoia/central/internal/codec"
	"github.com/severinoia/central/internal/model"
)

// ChipStore owns the chip instances collection.
type ChipStore struct {
	c *Collection[model.ChipInstance]
}

// NewChipStore creates the chips store backed by kv.
func NewChipStore(kv KV, log zerolog.Logger) *ChipStore {
	return &ChipStore{c: NewCollection("chip_instances", kv, log,
		func(ch *model.ChipInstance) {
			if ch.ID == "" {
				ch.ID = uuid.New().String()
			}
			if ch.CreatedAt.IsZero() {
				ch.CreatedAt = codec.Now()
			}
			if ch.Status == "" {
				ch.Status = model.ChipStatusInactive
			}
		},
		nil,
	)}
}

// List returns all chips, most recently created first.
func (s *ChipStore) List() ([]model.ChipInstance, error) {
	return s.c.List()
}

// ListAlphabetical returns all chips sorted by name, case-insensitive.
func (s *ChipStore) ListAlphabetical() ([]model.ChipInstance, error) {
	chips, err := s.c.List()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(chips, func(i, j int) bool {
		return strings.ToLower(chips[i].Name) < strings.ToLower(chips[j].Name)
	})
	return chips, nil
}

// Get looks up a chip by id.
func (s *ChipStore) Get(id string) (model.ChipInstance, bool, error) {
	return s.c.Get(id)
}

// Add registers a new chip in inactive status.
func (s *ChipStore) Add(name, phone string) (model.ChipInstance, error) {
	return s.c.Add(model.ChipInstance{Name: name, Phone: phone})
}

// UpdateStatus moves a chip to the given lifecycle status.
func (s *ChipStore) UpdateStatus(id, status string) (model.ChipInstance, bool, error) {
	return s.c.Update(id, func(ch *model.ChipInstance) {
		ch.Status = status
	})
}

// Delete removes a chip, reporting whether one existed.
func (s *ChipStore) Delete(id string) (bool, error) {
	return s.c.Remove(id)
}

// Snapshot returns the current state for migration.
func (s *ChipStore) Snapshot() ([]model.ChipInstance, error) {
	return s.c.Snapshot()
}
