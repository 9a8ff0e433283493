// Package settings holds the single per-user Settings record. The
// record is materialized with defaults on first access and only ever
// shallow-merged afterwards. API keys live in the credential store, not
// in the snapshot file.
package settings

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/severinoia/central/internal/credential"
	"github.com/severinoia/central/internal/localstore"
	"github.com/severinoia/central/internal/model"
)

const snapshotKey = "settings"

// Store owns the Settings singleton.
type Store struct {
	kv    localstore.KV
	creds credential.Store
	log   zerolog.Logger

	mu      sync.Mutex
	current model.Settings
	loaded  bool
}

// NewStore creates the settings store over kv, with secrets in creds.
func NewStore(kv localstore.KV, creds credential.Store, log zerolog.Logger) *Store {
	return &Store{
		kv:    kv,
		creds: creds,
		log:   log.With().Str("store", "settings").Logger(),
	}
}

// envelope keeps the persisted form wrapped like every other snapshot.
type envelope struct {
	Settings model.Settings `json:"settings"`
}

func (s *Store) load() error {
	if s.loaded {
		return nil
	}

	s.current = model.DefaultSettings()

	data, err := s.kv.Get(snapshotKey)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if data != nil {
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			// A corrupt settings snapshot falls back to defaults rather
			// than blocking startup.
			s.log.Warn().Err(err).Msg("dropping corrupt settings snapshot")
		} else {
			s.current = env.Settings
		}
	}

	if key, err := s.creds.Get(credential.KeyOpenAI); err == nil {
		s.current.OpenAIAPIKey = key
	} else {
		s.log.Warn().Err(err).Msg("reading openai key from credential store")
	}
	if key, err := s.creds.Get(credential.KeyEvolution); err == nil {
		s.current.EvolutionAPIKey = key
	} else {
		s.log.Warn().Err(err).Msg("reading evolution key from credential store")
	}

	s.loaded = true
	return nil
}

// Get returns the settings, materializing defaults on first use.
func (s *Store) Get() (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return model.Settings{}, err
	}
	return s.current, nil
}

// Update shallow-merges the patch into the settings and persists. The
// live record is never replaced wholesale.
func (s *Store) Update(patch model.SettingsPatch) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return model.Settings{}, err
	}

	patch.Apply(&s.current)

	if patch.OpenAIAPIKey != nil {
		if err := s.creds.Set(credential.KeyOpenAI, *patch.OpenAIAPIKey); err != nil {
			return model.Settings{}, fmt.Errorf("storing openai key: %w", err)
		}
	}
	if patch.EvolutionAPIKey != nil {
		if err := s.creds.Set(credential.KeyEvolution, *patch.EvolutionAPIKey); err != nil {
			return model.Settings{}, fmt.Errorf("storing evolution key: %w", err)
		}
	}

	if err := s.persist(); err != nil {
		return model.Settings{}, err
	}
	return s.current, nil
}

func (s *Store) persist() error {
	data, err := json.Marshal(envelope{Settings: s.current})
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return s.kv.Put(snapshotKey, data)
}

// UseRemote reports whether data operations should target the remote
// backend. The repository facade is the only caller; the branch lives
// in one place.
func (s *Store) UseRemote() (bool, error) {
	current, err := s.Get()
	if err != nil {
		return false, err
	}
	return current.UseRemote, nil
}
