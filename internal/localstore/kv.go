package localstore

import (
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"
)

// KV is the key-value storage behind the collection stores. Get returns
// (nil, nil) for a missing key; absence is not an error at this layer.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

var snapshotsBucket = []byte("snapshots")

// BoltKV persists snapshots in a bbolt database file.
type BoltKV struct {
	db *bbolt.DB
}

// OpenBolt opens (or creates) the snapshot database at path.
func OpenBolt(path string) (*BoltKV, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(snapshotsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating snapshots bucket: %w", err)
	}

	return &BoltKV{db: db}, nil
}

// Close closes the underlying database.
func (b *BoltKV) Close() error {
	return b.db.Close()
}

func (b *BoltKV) Get(key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(snapshotsBucket).Get([]byte(key))
		if data != nil {
			out = make([]byte, len(data))
			copy(out, data)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %q: %w", key, err)
	}
	return out, nil
}

func (b *BoltKV) Put(key string, value []byte) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotsBucket).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("writing snapshot %q: %w", key, err)
	}
	return nil
}

func (b *BoltKV) Delete(key string) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotsBucket).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("deleting snapshot %q: %w", key, err)
	}
	return nil
}

// MemKV is an in-memory KV used by tests and ephemeral runs.
type MemKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemKV returns an empty in-memory KV.
func NewMemKV() *MemKV {
	return &MemKV{data: make(map[string][]byte)}
}

func (m *MemKV) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemKV) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

func (m *MemKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
