// Package session holds the signed-in identity and bearer token of the
// browser, persisted in the client storage.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"food-ordering-web/internal/api"
	"food-ordering-web/internal/models"
	"food-ordering-web/internal/storage"
	"food-ordering-web/internal/validation"

	"github.com/rs/zerolog"
)

const storageKey = "auth"

// ExpiredMessage is shown after a forced sign-out
const ExpiredMessage = "Your session has expired. Please sign in again."

var (
	// ErrAuth is matched by every sign-in failure
	ErrAuth               = errors.New("authentication failed")
	ErrAccountTypeChanged = errors.New("account type cannot change")
	ErrNotSignedIn        = errors.New("not signed in")
)

// AuthError is a failed sign-in. Message is safe to show to the user.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "authentication failed: " + e.Message
	}
	return fmt.Sprintf("authentication failed: %s: %v", e.Message, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func (e *AuthError) Is(target error) bool {
	return target == ErrAuth
}

// Credentials is the sign-in form
type Credentials struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

var credentialMessages = validation.Messages{
	"email.required":    "Email is required",
	"email.email":       "Enter a valid email",
	"password.required": "Password is required",
}

// Authenticator exchanges credentials for a bearer token
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
}

// Store is the auth session store of one browser
type Store struct {
	storage storage.Storage
	auth    Authenticator
	notices *storage.Notices
	now     func() time.Time
	logger  zerolog.Logger
	owned   []string
	current *models.Session
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger for failures that Current cannot return
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// ClearOnSignOut names other storage keys that belong to the signed-in user
func ClearOnSignOut(keys ...string) Option {
	return func(s *Store) {
		s.owned = append(s.owned, keys...)
	}
}

// New rehydrates the store from storage. A corrupt entry is discarded.
func New(st storage.Storage, auth Authenticator, opts ...Option) (*Store, error) {
	s := &Store{
		storage: st,
		auth:    auth,
		notices: storage.NewNotices(st),
		now:     time.Now,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	var persisted models.Session
	found, err := st.Load(storageKey, &persisted)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		if err := st.Delete(storageKey); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	case found && persisted.Authenticated():
		s.current = &persisted
	}
	return s, nil
}

// SignIn authenticates, persists the session and makes it current. Invalid
// credentials are rejected as validation.Errors before any request.
func (s *Store) SignIn(ctx context.Context, creds Credentials) (*models.Session, error) {
	if err := validation.Validate(creds, credentialMessages); err != nil {
		return nil, err
	}

	resp, err := s.auth.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return nil, &AuthError{Message: loginMessage(err), Err: err}
	}

	sess, err := sessionFromLogin(resp)
	if err != nil {
		return nil, &AuthError{Message: "The server returned an invalid session.", Err: err}
	}
	if sess.Expired(s.now()) {
		return nil, &AuthError{Message: "The server returned an expired session."}
	}

	if err := s.storage.Save(storageKey, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	s.current = sess

	out := *sess
	return &out, nil
}

func loginMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return "Invalid email or password."
		}
	}
	return api.UserMessage(err)
}

// SignOut clears the persisted and in-memory session
func (s *Store) SignOut() error {
	s.current = nil
	for _, key := range append([]string{storageKey}, s.owned...) {
		if err := s.storage.Delete(key); err != nil {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}
	return nil
}

// Expire signs out after the API rejected the token and queues a notice.
// The caller redirects to the login view.
func (s *Store) Expire() error {
	if err := s.SignOut(); err != nil {
		return err
	}
	return s.notices.Error(ExpiredMessage)
}

// Current returns a copy of the session, or nil when signed out. A token
// past its expiry is signed out here.
func (s *Store) Current() *models.Session {
	if s.current == nil {
		return nil
	}
	if s.current.Expired(s.now()) {
		if err := s.Expire(); err != nil {
			s.logger.Error().Err(err).Msg("failed to clear expired session")
		}
		return nil
	}
	out := *s.current
	return &out
}

// Refresh updates the profile fields of the current session
func (s *Store) Refresh(p models.Profile) error {
	if s.current == nil {
		return ErrNotSignedIn
	}
	if p.AccountType != "" && p.AccountType != s.current.AccountType {
		return ErrAccountTypeChanged
	}

	next := *s.current
	if p.Name != "" {
		next.Name = p.Name
	}
	if p.Email != "" {
		next.Email = p.Email
	}
	if p.AvatarURL != "" {
		next.AvatarURL = p.AvatarURL
	}

	if err := s.storage.Save(storageKey, &next); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	s.current = &next
	return nil
}
