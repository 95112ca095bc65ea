// Package draft persists wizard sessions between requests. Autosave is
// best-effort: a missing or corrupt snapshot means "no draft", never a
// blocking error.
package draft

import (
	"context"
	"encoding/json"
	"sync"

	"estatedesk/models"
	"estatedesk/utils"

	"go.uber.org/zap"
)

// Store is the draft persistence contract. Load returns (nil, nil) when no
// usable snapshot exists under the key.
type Store interface {
	Save(ctx context.Context, key string, sess *models.WizardSession) error
	Load(ctx context.Context, key string) (*models.WizardSession, error)
	Clear(ctx context.Context, key string) error
}

// encodeSession serializes a session snapshot. Empty draft fields are omitted
// via the models' omitempty tags.
func encodeSession(sess *models.WizardSession) ([]byte, error) {
	return json.Marshal(sess)
}

// decodeSession deserializes a snapshot. Corrupt data is treated as no draft.
func decodeSession(key string, data []byte) *models.WizardSession {
	var sess models.WizardSession
	if err := json.Unmarshal(data, &sess); err != nil {
		utils.GetLogger().Warn("Discarding corrupt draft snapshot",
			zap.String("key", key), zap.Error(err))
		return nil
	}
	return &sess
}

// MemoryStore is an in-process Store. It backs tests and redis-less runs,
// and keeps snapshots in serialized form so it exercises the same round-trip
// as the Redis store.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryStore creates an empty in-memory draft store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

func (s *MemoryStore) Save(ctx context.Context, key string, sess *models.WizardSession) error {
	data, err := encodeSession(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items[key] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, key string) (*models.WizardSession, error) {
	s.mu.RLock()
	data, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return decodeSession(key, data), nil
}

func (s *MemoryStore) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	return nil
}
