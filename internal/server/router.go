// Package server assembles the middleware chain and routes of the site.
package server

import (
	"net/http"

	"food-ordering-web/internal/handlers"
	"food-ordering-web/internal/middleware"
	"food-ordering-web/internal/models"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers of the site
type Handlers struct {
	Auth       *handlers.AuthHandler
	Search     *handlers.SearchHandler
	Restaurant *handlers.RestaurantHandler
	Cart       *handlers.CartHandler
	Checkout   *handlers.CheckoutHandler
	Dashboard  *handlers.DashboardHandler
	Health     *handlers.HealthHandler
}

// Options configures the router
type Options struct {
	Logger         zerolog.Logger
	ClientState    *middleware.ClientState
	LoginLimiter   *middleware.LoginRateLimiter
	AllowedOrigins []string
	// StaticDir is served under /static/ when set
	StaticDir string
	// SkipCSRF turns off token checks on unsafe methods. Tests only.
	SkipCSRF bool
}

// NewRouter returns the site router
func NewRouter(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()

	// Middleware order matters: ids and logging wrap everything, the client
	// state must exist before the CSRF token can be read from it
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware(opts.Logger))
	r.Use(middleware.ErrorHandlingMiddleware(opts.Logger))
	r.Use(chimiddleware.CleanPath)
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig(opts.AllowedOrigins)))

	r.NotFound(middleware.NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler().ServeHTTP)

	if opts.StaticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir))))
	}
	r.Get("/health", h.Health.Health)

	csrf := middleware.NewCSRFMiddleware(opts.Logger)
	r.Group(func(r chi.Router) {
		r.Use(opts.ClientState.Load)
		r.Use(csrf.EnsureCSRFToken)
		if !opts.SkipCSRF {
			r.Use(csrf.CSRFProtection)
		}

		r.Get("/", h.Auth.Home)
		r.Post("/logout", h.Auth.Logout)

		// Public auth routes, POSTs count against the login limiter
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitLogin(opts.LoginLimiter))
			r.Get("/login", h.Auth.LoginPage)
			r.Post("/login", h.Auth.LoginSubmit)
			r.Get("/signup/client", h.Auth.SignUpPage)
			r.Post("/signup/client", h.Auth.SignUpSubmit)
		})

		// Any signed-in user
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/restaurant/search", h.Search.SearchPage)
			r.Get("/restaurant/search/results", h.Search.Results)
			r.Get("/restaurants/{id}", h.Restaurant.Menu)
		})

		// Customers
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAccountType(models.AccountCustomer))
			r.Get("/dashboard", h.Dashboard.CustomerDashboard)
			r.Get("/orders", h.Dashboard.OrderHistory)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.Cart.ShowCart)
				r.Post("/add", h.Cart.AddToCart)
				r.Post("/update", h.Cart.UpdateQuantity)
				r.Post("/remove", h.Cart.RemoveFromCart)
				r.Post("/clear", h.Cart.ClearCart)
				r.Post("/discount", h.Cart.ApplyDiscount)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", h.Checkout.CheckoutPage)
				r.Post("/", h.Checkout.PlaceOrder)
				r.Post("/cards", h.Checkout.AddCard)
				r.Post("/cards/select", h.Checkout.SelectCard)
			})
		})

		// Restaurant operators
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAccountType(models.AccountRestaurant))
			r.Get("/restaurants/dashboard", h.Dashboard.RestaurantDashboard)
			r.Get("/restaurants/dashboard/orders.xlsx", h.Dashboard.ExportOrders)
		})
	})

	return r
}
