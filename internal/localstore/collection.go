// Package localstore implements the local-first collection stores. Each
// collection keeps an insertion-ordered (most recent first) in-memory
// slice mirrored to the key-value snapshot file after every mutation, so
// state survives restarts without a server round-trip.
package localstore

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Record is implemented by every entity held in a collection.
type Record interface {
	RecordID() string
}

// Collection is the generic engine behind every entity store. Mutations
// run to completion under a single mutex; back-to-back calls linearize
// in invocation order with last-write-wins on overlapping fields.
type Collection[T Record] struct {
	name string
	kv   KV
	log  zerolog.Logger

	// prepare assigns an id and stamps timestamps on Add.
	prepare func(*T)
	// touch re-stamps updated_at on Update; nil for entities without one.
	touch func(*T)

	mu     sync.Mutex
	items  []T
	loaded bool
}

// NewCollection creates a collection named name, persisted under the
// same key in kv.
func NewCollection[T Record](
	name string,
	kv KV,
	log zerolog.Logger,
	prepare func(*T),
	touch func(*T),
) *Collection[T] {
	return &Collection[T]{
		name:    name,
		kv:      kv,
		log:     log.With().Str("collection", name).Logger(),
		prepare: prepare,
		touch:   touch,
	}
}

// load reads the persisted snapshot into memory. A missing key is an
// empty collection. A record that fails to decode (including a timestamp
// that does not parse) is dropped with a warning; one bad record must
// not block access to the rest.
func (c *Collection[T]) load() error {
	if c.loaded {
		return nil
	}

	data, err := c.kv.Get(c.name)
	if err != nil {
		return fmt.Errorf("loading collection %s: %w", c.name, err)
	}
	if data == nil {
		c.items = nil
		c.loaded = true
		return nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("decoding envelope for %s: %w", c.name, err)
	}

	raws := []json.RawMessage{}
	if arr, ok := envelope[c.name]; ok {
		if err := json.Unmarshal(arr, &raws); err != nil {
			return fmt.Errorf("decoding %s array: %w", c.name, err)
		}
	}

	items := make([]T, 0, len(raws))
	for i, raw := range raws {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			c.log.Warn().
				Err(err).
				Int("index", i).
				Msg("dropping corrupt record")
			continue
		}
		items = append(items, item)
	}

	c.items = items
	c.loaded = true
	return nil
}

// persist writes the full collection back as an envelope object holding
// the named array. The envelope, not a bare array, keeps the snapshot
// format versionable.
func (c *Collection[T]) persist() error {
	items := c.items
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(map[string]any{c.name: items})
	if err != nil {
		return fmt.Errorf("encoding collection %s: %w", c.name, err)
	}
	return c.kv.Put(c.name, data)
}

// List returns a copy of the collection in stored order.
func (c *Collection[T]) List() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(); err != nil {
		return nil, err
	}

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out, nil
}

// Get looks up a single record by id.
func (c *Collection[T]) Get(id string) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if err := c.load(); err != nil {
		return zero, false, err
	}
	for _, item := range c.items {
		if item.RecordID() == id {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Add prepares the record (fresh id and timestamps unless supplied),
// prepends it, persists, and returns the stored record.
func (c *Collection[T]) Add(item T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if err := c.load(); err != nil {
		return zero, err
	}

	if c.prepare != nil {
		c.prepare(&item)
	}

	c.items = append([]T{item}, c.items...)
	if err := c.persist(); err != nil {
		return zero, err
	}
	return item, nil
}

// Update applies apply to the record with the given id, re-stamps its
// updated_at where the entity has one, and persists. A missing id is
// reported as found=false, not an error.
func (c *Collection[T]) Update(id string, apply func(*T)) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if err := c.load(); err != nil {
		return zero, false, err
	}

	for i := range c.items {
		if c.items[i].RecordID() != id {
			continue
		}
		apply(&c.items[i])
		if c.touch != nil {
			c.touch(&c.items[i])
		}
		if err := c.persist(); err != nil {
			return zero, false, err
		}
		return c.items[i], true, nil
	}

	return zero, false, nil
}

// Remove deletes the record with the given id and reports whether one
// was actually removed.
func (c *Collection[T]) Remove(id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(); err != nil {
		return false, err
	}

	for i := range c.items {
		if c.items[i].RecordID() != id {
			continue
		}
		c.items = append(c.items[:i:i], c.items[i+1:]...)
		if err := c.persist(); err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}

// Snapshot returns a copy of the collection as it stands right now,
// detached from later mutations. The migration engine reads these.
func (c *Collection[T]) Snapshot() ([]T, error) {
	return c.List()
}

// Name returns the collection's envelope key.
func (c *Collection[T]) Name() string {
	return c.name
}
