package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"food-ordering-web/internal/models"
)

type contextKey string

// LoginPath is where unauthenticated visitors are sent
const LoginPath = "/login"

// RequireAuth middleware ensures a customer or restaurant is signed in
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentSession(r.Context()) == nil {
			redirectToLogin(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAccountType middleware ensures the signed-in account has type t
func RequireAccountType(t models.AccountType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := CurrentSession(r.Context())
			if sess == nil {
				redirectToLogin(w, r)
				return
			}

			if sess.AccountType != t {
				if IsHTMXRequest(r) {
					w.WriteHeader(http.StatusForbidden)
					w.Write([]byte("Access denied"))
					return
				}
				http.Error(w, "Access denied", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LoginURL is the login page that returns to target afterwards
func LoginURL(target string) string {
	if target == "" || target == "/" {
		return LoginPath
	}
	return LoginPath + "?redirect=" + url.QueryEscape(target)
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := LoginURL(r.URL.RequestURI())
	if IsHTMXRequest(r) {
		// HTMX follows the header instead of swapping a login page into a partial
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Redirect sends the browser to target, using HX-Redirect for HTMX requests
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMXRequest(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// IsHTMXRequest checks if the request is from HTMX
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// SafeRedirect accepts only local paths as post-login targets
func SafeRedirect(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	return target
}
