package session

import (
	"context"
	"sync"

	"jobportal-client/internal/common/logger"
	"jobportal-client/internal/models"
)

// AuthAPI is the slice of the REST surface the store needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (models.User, string, error)
	Signup(ctx context.Context, name, email, password string, role models.Role) (models.User, string, error)
	Me(ctx context.Context) (models.User, error)
}

// Store is the process-wide session owner. Only the store writes the
// credential; everyone else observes it through Current, Token or Subscribe.
type Store struct {
	storage Storage
	auth    AuthAPI
	logger  logger.Logger

	mu      sync.Mutex
	current Session
	subs    []func(Session)
}

// NewStore loads any persisted session from storage into memory. Call
// Bootstrap afterwards to resolve a credential that has no cached identity.
func NewStore(storage Storage, auth AuthAPI, log logger.Logger) *Store {
	s := &Store{
		storage: storage,
		auth:    auth,
		logger:  log.WithFields(map[string]interface{}{"component": "session"}),
	}

	token := storage.Token()
	if token != "" {
		s.current.Token = token
		if user, ok := storage.User(); ok {
			s.current.User = user
		}
	}
	return s
}

// Bootstrap resolves a stored credential that has no cached identity by
// calling GET /auth/me. Failure silently clears the session; the user is
// simply logged out, no error is surfaced.
func (s *Store) Bootstrap(ctx context.Context) {
	s.mu.Lock()
	needsResolve := s.current.Token != "" && !s.current.User.IsValid()
	s.mu.Unlock()

	if !needsResolve {
		return
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		s.logger.Warn("stored credential could not be resolved, clearing session", map[string]interface{}{
			"error": err.Error(),
		})
		s.clear()
		return
	}

	s.mu.Lock()
	s.current.User = user
	token := s.current.Token
	s.mu.Unlock()

	if err := s.storage.Save(user, token); err != nil {
		s.logger.Warn("failed to persist resolved identity", map[string]interface{}{
			"error": err.Error(),
		})
	}
	s.notify()
}

// Login authenticates and, on success, persists identity and credential.
// On failure the session is left unchanged.
func (s *Store) Login(ctx context.Context, email, password string) (models.User, error) {
	user, token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return models.User{}, err
	}

	if err := s.storage.Save(user, token); err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	s.current = Session{User: user, Token: token}
	s.mu.Unlock()
	s.notify()

	return user, nil
}

// Register signs the user up. With autoLogin the response is treated like a
// login; otherwise no session state changes.
func (s *Store) Register(ctx context.Context, name, email, password string, role models.Role, autoLogin bool) (models.User, error) {
	user, token, err := s.auth.Signup(ctx, name, email, password, role)
	if err != nil {
		return models.User{}, err
	}

	if !autoLogin {
		return user, nil
	}

	if err := s.storage.Save(user, token); err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	s.current = Session{User: user, Token: token}
	s.mu.Unlock()
	s.notify()

	return user, nil
}

// Logout clears identity and credential from memory and durable storage.
func (s *Store) Logout() {
	s.clear()
}

// HandleUnauthorized is the REST client's 401 hook. Durable storage has
// already been cleared by the client; this drops the in-memory session so
// subscribers observe the logout.
func (s *Store) HandleUnauthorized() {
	s.mu.Lock()
	wasAuthenticated := s.current.Authenticated()
	s.current = Session{}
	s.mu.Unlock()

	if wasAuthenticated {
		s.logger.Info("credential rejected by server, session cleared", nil)
		s.notify()
	}
}

// Current returns a copy of the present session.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Token returns the current bearer credential, or "".
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Token
}

// Subscribe registers fn to run on every session change. fn is called on
// the mutating goroutine; subscribers must not block.
func (s *Store) Subscribe(fn func(Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) clear() {
	if err := s.storage.Clear(); err != nil {
		s.logger.Warn("failed to clear durable session", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.mu.Lock()
	s.current = Session{}
	s.mu.Unlock()
	s.notify()
}

func (s *Store) notify() {
	s.mu.Lock()
	current := s.current
	subs := make([]func(Session), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(current)
	}
}
