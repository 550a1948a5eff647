package clientstate

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore is a process-local Store without expiry, for tests and single-node
// development without Redis.
type MemoryStore struct {
	mu     sync.Mutex
	tokens map[string]string
	codes  map[string]string
	drafts map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens: map[string]string{},
		codes:  map[string]string{},
		drafts: map[string]map[string]string{},
	}
}

func (m *MemoryStore) VerificationToken(_ context.Context, sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens[sessionID], nil
}

func (m *MemoryStore) SetVerificationToken(ctx context.Context, sessionID, token string) error {
	if token == "" {
		return m.ClearVerificationToken(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens[sessionID] != token {
		delete(m.codes, sessionID)
	}
	m.tokens[sessionID] = token
	return nil
}

func (m *MemoryStore) ClearVerificationToken(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, sessionID)
	delete(m.codes, sessionID)
	return nil
}

func (m *MemoryStore) LastSubmittedCode(_ context.Context, sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[sessionID], nil
}

func (m *MemoryStore) SetLastSubmittedCode(_ context.Context, sessionID, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if code == "" {
		delete(m.codes, sessionID)
		return nil
	}
	m.codes[sessionID] = code
	return nil
}

func (m *MemoryStore) Draft(_ context.Context, visitorID, form string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]string{}
	maps.Copy(out, m.drafts[draftKey(visitorID, form)])
	return out, nil
}

func (m *MemoryStore) SaveDraft(_ context.Context, visitorID, form string, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[draftKey(visitorID, form)] = maps.Clone(values)
	return nil
}

func (m *MemoryStore) ClearDraft(_ context.Context, visitorID, form string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, draftKey(visitorID, form))
	return nil
}
