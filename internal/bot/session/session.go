package session

import (
	"context"
	"sync"
	"time"
)

// State names a registration step. Complete is never stored: reaching it
// deletes the session.
type State string

const (
	StateAwaitingLanguage State = "awaiting_language"
	StateAwaitingName     State = "awaiting_name"
	StateAwaitingContact  State = "awaiting_contact"
)

// Session is the transient registration progress for one user. Nothing here
// touches the database until the contact step completes.
type Session struct {
	State    State  `json:"state"`
	Language string `json:"language,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// Store keeps sessions keyed by Telegram user ID. Get returns (nil, nil) for
// absent sessions. Implementations evict abandoned sessions after a TTL.
type Store interface {
	Get(ctx context.Context, userID int64) (*Session, error)
	Put(ctx context.Context, userID int64, sess *Session) error
	Delete(ctx context.Context, userID int64) error
}

type memoryEntry struct {
	sess      Session
	expiresAt time.Time
}

// MemoryStore is the default process-local store. Sessions do not survive a
// restart, which only costs a user their in-flight registration progress.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[int64]memoryEntry
	ttl     time.Duration
	stop    chan struct{}
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[int64]memoryEntry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *MemoryStore) Get(_ context.Context, userID int64) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[userID]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, userID)
		return nil, nil
	}

	sess := entry.sess
	return &sess, nil
}

func (s *MemoryStore) Put(_ context.Context, userID int64, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[userID] = memoryEntry{sess: *sess, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, userID)
	return nil
}

// Close stops the eviction goroutine.
func (s *MemoryStore) Close() {
	close(s.stop)
}

func (s *MemoryStore) janitor() {
	interval := s.ttl
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
