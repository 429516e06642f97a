package session

import (
	"sync"

	"github.com/usernamenul1/sportline/pkg/auth"
)

// MemoryStore keeps the session in process memory. It is meant for tests and
// for embedding the client where nothing should touch the filesystem.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	user  *auth.User
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(token string, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	if user != nil {
		userCopy := *user
		s.user = &userCopy
	} else {
		s.user = nil
	}
	return nil
}

func (s *MemoryStore) Load() (string, *auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return s.token, nil, nil
	}
	userCopy := *s.user
	return s.token, &userCopy, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = nil
	return nil
}

func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
