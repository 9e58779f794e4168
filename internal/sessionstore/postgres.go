// Package sessionstore keeps gorilla sessions in PostgreSQL. The browser
// cookie only carries the signed session id.
package sessionstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

const defaultExpiry = 24 * time.Hour

var errSessionNotFound = errors.New("session not found")

// PostgresStore implements sessions.Store on the http_sessions table
type PostgresStore struct {
	Codecs  []securecookie.Codec
	Options *sessions.Options

	db     *sql.DB
	logger zerolog.Logger

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Option configures a PostgresStore
type Option func(*PostgresStore)

// WithLogger sets the logger used by the cleanup loop
func WithLogger(logger zerolog.Logger) Option {
	return func(s *PostgresStore) {
		s.logger = logger
	}
}

// WithOptions sets the cookie options
func WithOptions(opts sessions.Options) Option {
	return func(s *PostgresStore) {
		s.Options = &opts
		s.setMaxAge(opts.MaxAge)
	}
}

// New creates a store. keyPairs are passed to securecookie as in
// sessions.NewCookieStore.
func New(db *sql.DB, keyPairs [][]byte, opts ...Option) *PostgresStore {
	s := &PostgresStore{
		Codecs: securecookie.CodecsFromPairs(keyPairs...),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   86400 * 7,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		db:     db,
		logger: zerolog.Nop(),
	}
	s.setMaxAge(s.Options.MaxAge)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PostgresStore) setMaxAge(age int) {
	for _, c := range s.Codecs {
		if sc, ok := c.(*securecookie.SecureCookie); ok {
			sc.MaxAge(age)
		}
	}
}

// Get returns the session cached in the request registry
func (s *PostgresStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session referenced by the request cookie, or returns a new
// one. A cookie that fails to decode yields a new session and the error.
func (s *PostgresStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.Codecs...); err != nil {
		session.ID = ""
		return session, err
	}

	err = s.load(r.Context(), session)
	switch {
	case err == nil:
		session.IsNew = false
	case errors.Is(err, errSessionNotFound):
		// expired or deleted row: start over with a fresh id
		session.ID = ""
		err = nil
	}
	return session, err
}

// Save writes the session row and the id cookie. MaxAge < 0 deletes both.
func (s *PostgresStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	ctx := r.Context()

	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.delete(ctx, session.ID); err != nil {
				return err
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if err := s.save(ctx, session); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return fmt.Errorf("failed to encode session id: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *PostgresStore) load(ctx context.Context, session *sessions.Session) error {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM http_sessions WHERE id = $1 AND expires_at > NOW()`,
		session.ID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return errSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("failed to decode session %s: %w", session.ID, err)
	}
	for k, v := range values {
		session.Values[k] = v
	}
	return nil
}

func (s *PostgresStore) save(ctx context.Context, session *sessions.Session) error {
	values := make(map[string]string, len(session.Values))
	for k, v := range session.Values {
		key, ok := k.(string)
		if !ok {
			return fmt.Errorf("session key %v is not a string", k)
		}
		value, ok := v.(string)
		if !ok {
			return fmt.Errorf("session value %q is %T, not a string", key, v)
		}
		values[key] = value
	}

	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	expiry := defaultExpiry
	if session.Options.MaxAge > 0 {
		expiry = time.Duration(session.Options.MaxAge) * time.Second
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO http_sessions (id, data, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET data = EXCLUDED.data, updated_at = NOW(), expires_at = EXCLUDED.expires_at`,
		session.ID, data, time.Now().Add(expiry),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *PostgresStore) delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM http_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Cleanup removes expired rows and returns how many were deleted
func (s *PostgresStore) Cleanup(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM http_sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}

// StartCleanup runs Cleanup every interval until Close is called
func (s *PostgresStore) StartCleanup(interval time.Duration) {
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				n, err := s.Cleanup(ctx)
				cancel()
				if err != nil {
					s.logger.Error().Err(err).Msg("session cleanup failed")
					continue
				}
				if n > 0 {
					s.logger.Debug().Int64("deleted", n).Msg("expired sessions removed")
				}
			}
		}
	}()
}

// Close stops the cleanup loop, if running
func (s *PostgresStore) Close() {
	s.closeOnce.Do(func() {
		if s.stop == nil {
			return
		}
		close(s.stop)
		<-s.done
	})
}
