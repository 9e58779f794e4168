package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"food-ordering-web/internal/storage"
	"food-ordering-web/internal/utils"

	"github.com/rs/zerolog"
)

const (
	CSRFContextKey contextKey = "csrf_token"

	csrfKey       = "csrf_token"
	csrfHeader    = "X-CSRF-Token"
	csrfFormField = "csrf_token"
)

// CSRFMiddleware provides CSRF protection functionality. The token lives in
// the client State storage next to the cart and auth session.
type CSRFMiddleware struct {
	logger zerolog.Logger
}

// NewCSRFMiddleware creates a new CSRF middleware
func NewCSRFMiddleware(logger zerolog.Logger) *CSRFMiddleware {
	return &CSRFMiddleware{logger: logger}
}

// EnsureCSRFToken middleware ensures a CSRF token is present in storage and context
func (m *CSRFMiddleware) EnsureCSRFToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := GetState(r.Context())
		if st == nil {
			next.ServeHTTP(w, r)
			return
		}

		token, err := loadCSRFToken(st.Storage)
		if err != nil {
			m.logger.Error().Err(err).Msg("failed to prepare CSRF token")
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), CSRFContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CSRFProtection middleware rejects state-changing requests without the token
func (m *CSRFMiddleware) CSRFProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip CSRF check for safe methods
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		expected := GetCSRFToken(r.Context())
		requestToken := r.Header.Get(csrfHeader)
		if requestToken == "" {
			requestToken = r.FormValue(csrfFormField)
		}

		if expected == "" || subtle.ConstantTimeCompare([]byte(requestToken), []byte(expected)) != 1 {
			m.logger.Warn().
				Str("path", r.URL.Path).
				Str("request_id", GetRequestID(r.Context())).
				Msg("CSRF token mismatch")

			if IsHTMXRequest(r) {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`<div class="rounded-lg border border-red-200 bg-red-50 p-4 text-sm text-red-800">Security token mismatch. Please refresh the page and try again.</div>`))
			} else {
				http.Error(w, "CSRF token mismatch", http.StatusForbidden)
			}
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetCSRFToken returns the token prepared by EnsureCSRFToken
func GetCSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(CSRFContextKey).(string)
	return token
}

func loadCSRFToken(st storage.Storage) (string, error) {
	var token string
	if _, err := st.Load(csrfKey, &token); err != nil && !errors.Is(err, storage.ErrCorrupt) {
		return "", err
	}
	if token != "" {
		return token, nil
	}

	token, err := GenerateCSRFToken()
	if err != nil {
		return "", err
	}
	if err := st.Save(csrfKey, token); err != nil {
		return "", err
	}
	return token, nil
}

// GenerateCSRFToken generates a CSRF token for the session
func GenerateCSRFToken() (string, error) {
	return utils.GenerateSecureToken(32)
}
