package store

import (
	"context"
	"encoding/json"
	"sync"

	"guildPointsBot/models"
)

// MemoryStore is the in-process backend, used for local development and
// the service tests. Data does not survive a restart.
type MemoryStore struct {
	mu       sync.Mutex
	docs     map[string][]byte
	feedback []models.Feedback
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, guildID, name string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.docs[docKey(guildID, name)]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (m *MemoryStore) Set(_ context.Context, guildID, name string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return storeErr("set", guildID, name, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[docKey(guildID, name)] = payload
	return nil
}

func (m *MemoryStore) AppendFeedback(_ context.Context, fb models.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedback = append(m.feedback, fb)
	return nil
}

// Feedback returns a copy of the appended feedback records.
func (m *MemoryStore) Feedback() []models.Feedback {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Feedback, len(m.feedback))
	copy(out, m.feedback)
	return out
}
