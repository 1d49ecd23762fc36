package session

import (
	"sync"

	"jobportal-client/internal/models"
)

// MemoryStorage is an in-process Storage, used in tests and anywhere a
// durable keyring is unavailable.
type MemoryStorage struct {
	mu      sync.Mutex
	token   string
	user    models.User
	hasUser bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *MemoryStorage) User() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.hasUser
}

func (s *MemoryStorage) Save(user models.User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.hasUser = true
	s.token = token
	return nil
}

func (s *MemoryStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = models.User{}
	s.hasUser = false
	s.token = ""
	return nil
}

// Seed pre-loads storage state, for simulating a prior run.
func (s *MemoryStorage) Seed(user models.User, hasUser bool, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.hasUser = hasUser
	s.token = token
}
