// Package chat owns the conversation tabs: an ordered list of
// independent transcripts with one active tab. Every mutation persists
// the whole tab set, same as the collection stores.
package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/severinoia/central/internal/codec"
	"github.com/severinoia/central/internal/localstore"
	"github.com/severinoia/central/internal/model"
)

const snapshotKey = "chat_tabs"

var (
	// ErrLastTab reports an attempt to remove the only remaining tab.
	// There is always at least one open conversation.
	ErrLastTab = errors.New("chat: cannot remove the last tab")

	// ErrTabNotFound reports an unknown tab id.
	ErrTabNotFound = errors.New("chat: tab not found")
)

// Store manages the chat tabs.
type Store struct {
	kv  localstore.KV
	log zerolog.Logger

	mu       sync.Mutex
	tabs     []model.ChatTab
	activeID string
	loaded   bool
}

// NewStore creates a chat store over kv.
func NewStore(kv localstore.KV, log zerolog.Logger) *Store {
	return &Store{
		kv:  kv,
		log: log.With().Str("store", "chat").Logger(),
	}
}

type snapshot struct {
	Tabs     []model.ChatTab `json:"tabs"`
	ActiveID string          `json:"active_id"`
}

type envelope struct {
	Chat snapshot `json:"chat_tabs"`
}

func (s *Store) load() error {
	if s.loaded {
		return nil
	}

	data, err := s.kv.Get(snapshotKey)
	if err != nil {
		return fmt.Errorf("loading chat tabs: %w", err)
	}

	if data != nil {
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.log.Warn().Err(err).Msg("dropping corrupt chat snapshot")
		} else {
			s.tabs = env.Chat.Tabs
			s.activeID = env.Chat.ActiveID
		}
	}

	// There is always at least one tab, and the active id always points
	// at an existing tab.
	if len(s.tabs) == 0 {
		s.tabs = []model.ChatTab{{
			ID:        uuid.New().String(),
			Title:     "Chat 1",
			CreatedAt: codec.Now(),
		}}
		s.activeID = s.tabs[0].ID
	}
	if s.indexOf(s.activeID) < 0 {
		s.activeID = s.tabs[0].ID
	}

	s.loaded = true
	return nil
}

func (s *Store) persist() error {
	data, err := json.Marshal(envelope{Chat: snapshot{Tabs: s.tabs, ActiveID: s.activeID}})
	if err != nil {
		return fmt.Errorf("encoding chat tabs: %w", err)
	}
	return s.kv.Put(snapshotKey, data)
}

func (s *Store) indexOf(id string) int {
	for i, tab := range s.tabs {
		if tab.ID == id {
			return i
		}
	}
	return -1
}

// Tabs returns the tabs in creation order.
func (s *Store) Tabs() ([]model.ChatTab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}
	out := make([]model.ChatTab, len(s.tabs))
	copy(out, s.tabs)
	return out, nil
}

// ActiveTab returns the currently active tab.
func (s *Store) ActiveTab() (model.ChatTab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return model.ChatTab{}, err
	}
	return s.tabs[s.indexOf(s.activeID)], nil
}

// AddTab opens a new conversation and makes it active. An empty title
// gets a numbered default.
func (s *Store) AddTab(title string) (model.ChatTab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return model.ChatTab{}, err
	}

	if title == "" {
		title = fmt.Sprintf("Chat %d", len(s.tabs)+1)
	}
	tab := model.ChatTab{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: codec.Now(),
	}
	s.tabs = append(s.tabs, tab)
	s.activeID = tab.ID

	if err := s.persist(); err != nil {
		return model.ChatTab{}, err
	}
	return tab, nil
}

// RemoveTab closes a conversation. Removing the last remaining tab is
// refused. When the active tab is removed, activation moves to its
// previous sibling, or to the first tab if there is none.
func (s *Store) RemoveTab(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}

	if len(s.tabs) == 1 {
		return ErrLastTab
	}
	i := s.indexOf(id)
	if i < 0 {
		return ErrTabNotFound
	}

	s.tabs = append(s.tabs[:i:i], s.tabs[i+1:]...)
	if s.activeID == id {
		if i > 0 {
			s.activeID = s.tabs[i-1].ID
		} else {
			s.activeID = s.tabs[0].ID
		}
	}
	return s.persist()
}

// RenameTab sets a tab's title.
func (s *Store) RenameTab(id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}

	i := s.indexOf(id)
	if i < 0 {
		return ErrTabNotFound
	}
	s.tabs[i].Title = title
	return s.persist()
}

// SetActive switches the active tab.
func (s *Store) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}

	if s.indexOf(id) < 0 {
		return ErrTabNotFound
	}
	s.activeID = id
	return s.persist()
}

// AppendMessage adds a message to a tab's transcript, stamping id and
// timestamp.
func (s *Store) AppendMessage(tabID, role, content string) (model.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return model.ChatMessage{}, err
	}

	i := s.indexOf(tabID)
	if i < 0 {
		return model.ChatMessage{}, ErrTabNotFound
	}

	msg := model.ChatMessage{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		CreatedAt: codec.Now(),
	}
	s.tabs[i].Messages = append(s.tabs[i].Messages, msg)

	if err := s.persist(); err != nil {
		return model.ChatMessage{}, err
	}
	return msg, nil
}

// MarkInitialized records that a tab's welcome sequence has played.
func (s *Store) MarkInitialized(tabID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}

	i := s.indexOf(tabID)
	if i < 0 {
		return ErrTabNotFound
	}
	s.tabs[i].Initialized = true
	return s.persist()
}

// ClearMessages empties a tab's transcript and resets its initialized
// flag so the welcome sequence plays again.
func (s *Store) ClearMessages(tabID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}

	i := s.indexOf(tabID)
	if i < 0 {
		return ErrTabNotFound
	}
	s.tabs[i].Messages = nil
	s.tabs[i].Initialized = false
	return s.persist()
}
