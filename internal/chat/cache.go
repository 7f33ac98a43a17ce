// Package chat holds the MarIA assistant session and the per-user
// transcript cache behind it.
package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/mana2/mana-cli/internal/logger"
	"github.com/mana2/mana-cli/internal/models"
)

// Store is the persistent layer behind Cache.
type Store interface {
	LoadTranscript(ctx context.Context, userID int) (models.ChatState, bool, error)
	SaveTranscript(ctx context.Context, userID int, state models.ChatState) error
	DeleteTranscript(ctx context.Context, userID int) error
}

// DefaultState is the state of a user who has never chatted.
func DefaultState() models.ChatState {
	return models.ChatState{Messages: []models.ChatMessage{}}
}

// Cache keeps chat transcripts in memory in front of an optional
// persistent Store. Values handed out are copies.
type Cache struct {
	mu     sync.Mutex
	states map[int]models.ChatState
	store  Store
}

// NewCache returns a cache backed by store; a nil store keeps transcripts
// in memory only.
func NewCache(store Store) *Cache {
	return &Cache{states: make(map[int]models.ChatState), store: store}
}

// Get returns the transcript for userID from memory, then from the store,
// falling back to the default state. Store failures are logged, not returned.
func (c *Cache) Get(ctx context.Context, userID int) models.ChatState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getLocked(ctx, userID).Clone()
}

func (c *Cache) getLocked(ctx context.Context, userID int) models.ChatState {
	if st, ok := c.states[userID]; ok {
		return st
	}
	if c.store != nil {
		st, found, err := c.store.LoadTranscript(ctx, userID)
		if err != nil {
			logger.Warn("Failed to load chat transcript", "user_id", userID, "error", err)
		} else if found {
			if st.Messages == nil {
				st.Messages = []models.ChatMessage{}
			}
			c.states[userID] = st
			return st
		}
	}
	return DefaultState()
}

// Save replaces the transcript for userID. The memory copy is always
// updated; the returned error reports a persistence failure.
func (c *Cache) Save(ctx context.Context, userID int, state models.ChatState) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveLocked(ctx, userID, state.Clone())
}

func (c *Cache) saveLocked(ctx context.Context, userID int, state models.ChatState) error {
	c.states[userID] = state
	if c.store == nil {
		return nil
	}
	if err := c.store.SaveTranscript(ctx, userID, state); err != nil {
		return fmt.Errorf("failed to persist chat transcript: %w", err)
	}
	return nil
}

// Update applies fn to the current transcript and saves the result.
func (c *Cache) Update(ctx context.Context, userID int, fn func(*models.ChatState)) (models.ChatState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.getLocked(ctx, userID).Clone()
	fn(&st)
	err := c.saveLocked(ctx, userID, st)
	return st.Clone(), err
}

// Clear removes the transcript for userID from both layers.
func (c *Cache) Clear(ctx context.Context, userID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.states, userID)
	if c.store == nil {
		return nil
	}
	if err := c.store.DeleteTranscript(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete chat transcript: %w", err)
	}
	return nil
}

// MemoryStore is a Store kept in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	states map[int]models.ChatState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[int]models.ChatState)}
}

func (m *MemoryStore) LoadTranscript(_ context.Context, userID int) (models.ChatState, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[userID]
	if !ok {
		return models.ChatState{}, false, nil
	}
	return st.Clone(), true, nil
}

func (m *MemoryStore) SaveTranscript(_ context.Context, userID int, state models.ChatState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[userID] = state.Clone()
	return nil
}

func (m *MemoryStore) DeleteTranscript(_ context.Context, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, userID)
	return nil
}
