package session

import (
	"context"
	"sync"
	"time"

	"github.com/invoicecreator/invoice-creator/internal/observability"
)

type memorySession struct {
	values    map[string][]byte
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory with a sliding TTL. Expired
// sessions are dropped lazily on access.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*memorySession
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*memorySession),
	}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(sessionID)
	if sess == nil {
		observability.RecordSessionStoreOperation(ctx, "memory", "get", "miss")
		return nil, false, nil
	}
	sess.expiresAt = s.now().Add(s.ttl)
	v, ok := sess.values[key]
	if !ok {
		observability.RecordSessionStoreOperation(ctx, "memory", "get", "miss")
		return nil, false, nil
	}
	observability.RecordSessionStoreOperation(ctx, "memory", "get", "success")
	return append([]byte(nil), v...), true, nil
}

func (s *MemoryStore) Set(ctx context.Context, sessionID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(sessionID)
	if sess == nil {
		sess = &memorySession{values: make(map[string][]byte)}
		s.sessions[sessionID] = sess
	}
	sess.values[key] = append([]byte(nil), value...)
	sess.expiresAt = s.now().Add(s.ttl)
	observability.RecordSessionStoreOperation(ctx, "memory", "set", "success")
	return nil
}

func (s *MemoryStore) Unset(ctx context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess := s.live(sessionID); sess != nil {
		delete(sess.values, key)
		if len(sess.values) == 0 {
			delete(s.sessions, sessionID)
		}
	}
	observability.RecordSessionStoreOperation(ctx, "memory", "unset", "success")
	return nil
}

// live returns the unexpired session or nil. Callers hold s.mu.
func (s *MemoryStore) live(sessionID string) *memorySession {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	if !s.now().Before(sess.expiresAt) {
		delete(s.sessions, sessionID)
		return nil
	}
	return sess
}
