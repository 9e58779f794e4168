package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"food-ordering-web/internal/models"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})
}

func requestWithState(t *testing.T, method, target string, sess *models.Session) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(WithState(req.Context(), newTestState(t, sess)))
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name             string
		session          *models.Session
		htmx             bool
		expectedStatus   int
		expectedLocation string
		expectedHXHeader string
	}{
		{
			name:           "signed in",
			session:        customer(),
			expectedStatus: http.StatusOK,
		},
		{
			name:             "anonymous",
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: "/login?redirect=%2Fcheckout%3Fstep%3D2",
		},
		{
			name:             "anonymous htmx",
			htmx:             true,
			expectedStatus:   http.StatusUnauthorized,
			expectedHXHeader: "/login?redirect=%2Fcheckout%3Fstep%3D2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := requestWithState(t, http.MethodGet, "/checkout?step=2", tt.session)
			if tt.htmx {
				req.Header.Set("HX-Request", "true")
			}
			rr := httptest.NewRecorder()

			RequireAuth(okHandler()).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectedLocation, rr.Header().Get("Location"))
			assert.Equal(t, tt.expectedHXHeader, rr.Header().Get("HX-Redirect"))
		})
	}
}

func TestRequireAuth_NoStateRedirects(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	RequireAuth(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestRequireAccountType(t *testing.T) {
	tests := []struct {
		name           string
		session        *models.Session
		expectedStatus int
	}{
		{"restaurant allowed", restaurant(), http.StatusOK},
		{"customer denied", customer(), http.StatusForbidden},
		{"anonymous redirected", nil, http.StatusSeeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := requestWithState(t, http.MethodGet, "/restaurants/dashboard", tt.session)
			rr := httptest.NewRecorder()

			RequireAccountType(models.AccountRestaurant)(okHandler()).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestRedirect(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	rr := httptest.NewRecorder()
	Redirect(rr, req, "/orders")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/orders", rr.Header().Get("Location"))

	req.Header.Set("HX-Request", "true")
	rr = httptest.NewRecorder()
	Redirect(rr, req, "/orders")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "/orders", rr.Header().Get("HX-Redirect"))
}

func TestSafeRedirect(t *testing.T) {
	tests := map[string]string{
		"/checkout":            "/checkout",
		"/restaurants/1?x=2":   "/restaurants/1?x=2",
		"":                     "/",
		"https://evil.example": "/",
		"//evil.example/path":  "/",
		"/\\evil.example":      "/",
		"javascript:alert(1)":  "/",
	}
	for in, want := range tests {
		assert.Equal(t, want, SafeRedirect(in, "/"), in)
	}
}

func TestIsHTMXRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, IsHTMXRequest(req))

	req.Header.Set("HX-Request", "true")
	assert.True(t, IsHTMXRequest(req))
}
