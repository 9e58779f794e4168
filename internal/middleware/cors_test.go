package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	handler := CORSMiddleware(DefaultCORSConfig([]string{"https://app.example.com", "*.partner.example"}))(okHandler())

	tests := []struct {
		name          string
		origin        string
		method        string
		preflight     bool
		expectedAllow string
		expectedCode  int
	}{
		{"same origin", "", http.MethodGet, false, "", http.StatusOK},
		{"listed origin", "https://app.example.com", http.MethodGet, false, "https://app.example.com", http.StatusOK},
		{"wildcard subdomain", "https://shop.partner.example", http.MethodPost, false, "https://shop.partner.example", http.StatusOK},
		{"unlisted origin", "https://evil.example", http.MethodGet, false, "", http.StatusOK},
		{"lookalike domain", "https://evilpartner.example", http.MethodGet, false, "", http.StatusOK},
		{"preflight", "https://app.example.com", http.MethodOptions, true, "https://app.example.com", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/cart", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedAllow, rr.Header().Get("Access-Control-Allow-Origin"))
			if tt.preflight {
				assert.Equal(t, "GET, POST, OPTIONS", rr.Header().Get("Access-Control-Allow-Methods"))
				assert.Equal(t, "86400", rr.Header().Get("Access-Control-Max-Age"))
			}
		})
	}
}

func TestCORSMiddleware_NoOrigins(t *testing.T) {
	handler := CORSMiddleware(DefaultCORSConfig(nil))(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecureHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	SecureHeaders(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "https://unpkg.com")
	assert.Empty(t, rr.Header().Get("Strict-Transport-Security"))
}
