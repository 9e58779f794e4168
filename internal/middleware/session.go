package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"food-ordering-web/internal/cart"
	"food-ordering-web/internal/modal"
	"food-ordering-web/internal/models"
	"food-ordering-web/internal/session"
	"food-ordering-web/internal/storage"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

const (
	StateContextKey contextKey = "state"

	clientKey   = "client"
	cardBookKey = "cards"
)

// State is everything one browser has in durable storage, rehydrated for
// the current request
type State struct {
	Storage   storage.Storage
	Session   *session.Store
	Cart      *cart.Store
	Notices   *storage.Notices
	Modal     modal.State
	ClientKey string
}

// NewState rehydrates the stores kept in st
func NewState(st storage.Storage, auth session.Authenticator, opts ...session.Option) (*State, error) {
	opts = append([]session.Option{session.ClearOnSignOut(cardBookKey)}, opts...)
	sess, err := session.New(st, auth, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load auth session: %w", err)
	}
	c, err := cart.New(st)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var key string
	if _, err := st.Load(clientKey, &key); err != nil && !errors.Is(err, storage.ErrCorrupt) {
		return nil, err
	}
	if key == "" {
		key = uuid.NewString()
		if err := st.Save(clientKey, key); err != nil {
			return nil, err
		}
	}

	return &State{
		Storage:   st,
		Session:   sess,
		Cart:      c,
		Notices:   storage.NewNotices(st),
		ClientKey: key,
	}, nil
}

// CardBook returns the cards loaded for checkout. A corrupt entry reads
// as an empty book.
func (s *State) CardBook() (*models.CardBook, error) {
	var book models.CardBook
	if _, err := s.Storage.Load(cardBookKey, &book); err != nil && !errors.Is(err, storage.ErrCorrupt) {
		return nil, err
	}
	return &book, nil
}

// SaveCardBook persists the checkout cards
func (s *State) SaveCardBook(book *models.CardBook) error {
	return s.Storage.Save(cardBookKey, book)
}

// ClientState loads the browser's gorilla session and puts its State in the
// request context
type ClientState struct {
	store  sessions.Store
	name   string
	auth   session.Authenticator
	logger zerolog.Logger
}

// NewClientState creates a new client state middleware
func NewClientState(store sessions.Store, name string, auth session.Authenticator, logger zerolog.Logger) *ClientState {
	return &ClientState{
		store:  store,
		name:   name,
		auth:   auth,
		logger: logger,
	}
}

// Load rehydrates the State of the browser. An unreadable cookie starts a
// fresh session instead of failing the request.
func (m *ClientState) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gs, err := m.store.Get(r, m.name)
		if err != nil {
			m.logger.Debug().Err(err).Msg("discarding unreadable session cookie")
			gs, err = m.store.New(r, m.name)
			if gs == nil {
				m.logger.Error().Err(err).Msg("failed to create session")
				http.Error(w, "Session error", http.StatusInternalServerError)
				return
			}
			gs.IsNew = true
		}

		st, err := NewState(storage.NewSessionStorage(gs, w, r), m.auth,
			session.WithLogger(*zerolog.Ctx(r.Context())))
		if err != nil {
			m.logger.Error().Err(err).Msg("failed to load client state")
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}
		st.Modal = modal.FromQuery(r.URL.Query())

		next.ServeHTTP(w, r.WithContext(WithState(r.Context(), st)))
	})
}

// GetState retrieves the client state from request context
func GetState(ctx context.Context) *State {
	st, ok := ctx.Value(StateContextKey).(*State)
	if !ok {
		return nil
	}
	return st
}

// WithState sets the client state in the context
func WithState(ctx context.Context, st *State) context.Context {
	return context.WithValue(ctx, StateContextKey, st)
}

// CurrentSession returns the signed-in session of the request, or nil
func CurrentSession(ctx context.Context) *models.Session {
	st := GetState(ctx)
	if st == nil {
		return nil
	}
	return st.Session.Current()
}
