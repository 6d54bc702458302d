package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/vidgen/internal/client/client"
	"github.com/dmitrijs2005/vidgen/internal/client/models"
	"github.com/dmitrijs2005/vidgen/internal/common"
	"github.com/dmitrijs2005/vidgen/internal/logging"
)

const (
	loginFallback    = "Login failed"
	registerFallback = "Registration failed"

	// registerDefaultCredits is the balance shown after sign-up when the
	// server does not report one.
	registerDefaultCredits = 50
)

// Error is an authentication failure carrying a user-displayable message.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

// Store is the process-wide session. All methods are safe for concurrent use.
type Store struct {
	api    client.AuthAPI
	tokens TokenStore
	log    logging.Logger
	now    func() time.Time

	mu           sync.RWMutex
	current      *models.Session
	loading      bool
	bootstrapped bool
}

// NewStore returns a store in the loading state; call Bootstrap once at
// startup.
func NewStore(api client.AuthAPI, tokens TokenStore, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{
		api:     api,
		tokens:  tokens,
		log:     log,
		now:     time.Now,
		loading: true,
	}
}

// Current returns a copy of the session, or false when signed out.
func (s *Store) Current() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Session{}, false
	}
	return *s.current, true
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.IsAdmin()
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) set(sess *models.Session) {
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
}

// Login exchanges credentials for a token and populates the session.
func (s *Store) Login(ctx context.Context, email, password string) (models.Session, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		return models.Session{}, &Error{Message: client.Message(err, loginFallback), Err: err}
	}
	return s.establish(ctx, res, 0)
}

// Register creates an account. name is split into a first name (the text
// before the first space) and a last name (everything after it).
func (s *Store) Register(ctx context.Context, name, email, password string) (models.Session, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	first, last := SplitName(name)
	res, err := s.api.Register(ctx, client.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: first,
		LastName:  last,
	})
	if err != nil {
		return models.Session{}, &Error{Message: client.Message(err, registerFallback), Err: err}
	}
	return s.establish(ctx, res, registerDefaultCredits)
}

func (s *Store) establish(ctx context.Context, res *client.AuthResult, defaultCredits int) (models.Session, error) {
	if err := s.tokens.Save(ctx, res.Token); err != nil {
		return models.Session{}, err
	}
	sess := res.User.ToSession(defaultCredits)
	s.set(&sess)
	s.log.Info(ctx, "signed in", "user_id", sess.UserID, "role", string(sess.Role))
	return sess, nil
}

// Logout ends the session. The backend call is best-effort; local state and
// the persisted token are cleared regardless of its outcome.
func (s *Store) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn(ctx, "logout request failed", "error", err)
	}
	s.set(nil)
	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear persisted token", "error", err)
	}
}

// ForgotPassword asks the backend to send a reset email.
func (s *Store) ForgotPassword(ctx context.Context, email string) error {
	if err := s.api.ForgotPassword(ctx, email); err != nil {
		return &Error{Message: client.Message(err, "Failed to send reset email"), Err: err}
	}
	return nil
}

// Bootstrap restores the session from the persisted token. It runs once;
// later calls return immediately. Any failure signs the user out silently.
// An expired JWT is dropped without contacting the server.
func (s *Store) Bootstrap(ctx context.Context) {
	s.mu.Lock()
	if s.bootstrapped {
		s.mu.Unlock()
		return
	}
	s.bootstrapped = true
	s.loading = true
	s.mu.Unlock()
	defer s.setLoading(false)

	token, err := s.tokens.Token(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to read persisted token", "error", err)
		return
	}
	if token == "" {
		return
	}

	if err := checkExpiry(token, s.now()); err != nil {
		s.log.Debug(ctx, "dropping persisted token", "reason", err)
		s.discard(ctx)
		return
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		s.log.Debug(ctx, "persisted token rejected", "error", err)
		s.discard(ctx)
		return
	}
	sess := user.ToSession(0)
	s.set(&sess)
	s.log.Info(ctx, "session restored", "user_id", sess.UserID)
}

func (s *Store) discard(ctx context.Context) {
	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear persisted token", "error", err)
	}
}

// checkExpiry reports common.ErrTokenExpired for a JWT whose exp claim is in
// the past. Tokens that are not JWTs, or carry no exp, are left for the
// server to judge.
func checkExpiry(token string, now time.Time) error {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil
	}
	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return fmt.Errorf("%w: expired at %s", common.ErrTokenExpired, claims.ExpiresAt.Time.Format(time.RFC3339))
	}
	return nil
}

// SplitName splits a display name at its first space.
func SplitName(name string) (first, last string) {
	first, last, _ = strings.Cut(strings.TrimSpace(name), " ")
	return first, last
}
