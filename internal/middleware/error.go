package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// ErrorHandlingMiddleware recovers panics, logs them with the stack and
// answers 500
func ErrorHandlingMiddleware(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					logger.Error().
						Interface("panic", err).
						Str("request_id", GetRequestID(r.Context())).
						Str("path", r.URL.Path).
						Bytes("stack", debug.Stack()).
						Msg("recovered from panic")

					if IsHTMXRequest(r) {
						w.Header().Set("Content-Type", "text/html")
						w.WriteHeader(http.StatusInternalServerError)
						w.Write([]byte(`<div class="rounded-lg border border-red-200 bg-red-50 p-4 text-sm text-red-800">Something went wrong. Please try again.</div>`))
					} else {
						http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					}
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)

		if IsHTMXRequest(r) {
			w.Write([]byte(`
				<div class="py-12 text-center">
					<h3 class="mb-2 text-lg font-medium text-gray-900">Page Not Found</h3>
					<p class="mb-6 text-gray-600">The page you're looking for doesn't exist.</p>
					<a href="/" class="rounded-lg bg-red-600 px-6 py-3 font-medium text-white hover:bg-red-700">Go Home</a>
				</div>
			`))
			return
		}

		w.Write([]byte(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Page Not Found - Food Ordering</title>
	<link href="/static/css/output.css" rel="stylesheet">
</head>
<body class="bg-gray-50">
	<div class="flex min-h-screen items-center justify-center">
		<div class="text-center">
			<h1 class="mb-4 text-6xl font-bold text-gray-900">404</h1>
			<h2 class="mb-4 text-2xl font-semibold text-gray-700">Page Not Found</h2>
			<p class="mb-8 text-gray-600">The page you're looking for doesn't exist.</p>
			<a href="/" class="rounded-lg bg-red-600 px-6 py-3 font-medium text-white hover:bg-red-700">Go Home</a>
		</div>
	</div>
</body>
</html>`))
	})
}

// MethodNotAllowedHandler handles 405 errors
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsHTMXRequest(r) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusMethodNotAllowed)
			w.Write([]byte(`<div class="rounded-lg border border-yellow-200 bg-yellow-50 p-4 text-sm text-yellow-800">Method not allowed for this endpoint.</div>`))
			return
		}
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})
}
