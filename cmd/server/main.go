package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"food-ordering-web/internal/api"
	"food-ordering-web/internal/config"
	"food-ordering-web/internal/database"
	"food-ordering-web/internal/handlers"
	"food-ordering-web/internal/logger"
	"food-ordering-web/internal/middleware"
	"food-ordering-web/internal/server"
	"food-ordering-web/internal/services"
	"food-ordering-web/internal/session"
	"food-ordering-web/internal/sessionstore"
	"food-ordering-web/internal/utils"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

const serviceName = "food-ordering-web"

// remoteAPI is everything the server needs from the backend
type remoteAPI interface {
	services.RemoteAPI
	session.Authenticator
	handlers.Pinger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zerolog.New(os.Stderr).With().Timestamp().Logger().
			Fatal().Err(err).Msg("Failed to load config")
	}

	log := logger.New(cfg)
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	keys, err := utils.DeriveSessionKeys(cfg.Session.Secret)
	if err != nil {
		return err
	}

	cookieOptions := sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Server.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}

	// Sessions live in PostgreSQL when a database is configured,
	// otherwise in the encrypted cookie itself
	var store sessions.Store
	if cfg.Database.Enabled {
		db, err := database.NewConnection(ctx, database.Config{
			URL:      cfg.Database.URL,
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.RunMigrations(log.With().Str("component", "migrate").Logger()); err != nil {
			return err
		}

		pg := sessionstore.New(db.DB, keys.Pairs(),
			sessionstore.WithLogger(log),
			sessionstore.WithOptions(cookieOptions),
		)
		pg.StartCleanup(time.Hour)
		defer pg.Close()
		store = pg
		log.Info().Msg("Session store: PostgreSQL")
	} else {
		cs := sessions.NewCookieStore(keys.Pairs()...)
		cs.Options = &cookieOptions
		cs.MaxAge(cfg.Session.MaxAge)
		store = cs
		log.Info().Msg("Session store: cookie")
	}

	var remote remoteAPI
	if cfg.API.UseMock {
		remote = services.NewMockAPI()
		log.Warn().Msg("Serving the in-memory demo API")
	} else {
		remote = api.New(cfg.API.BaseURL,
			api.WithTimeout(cfg.API.Timeout),
			api.WithLogger(log),
		)
		log.Info().Str("api", cfg.API.BaseURL).Msg("Using remote API")
	}

	fence := services.NewFence(5 * time.Minute)
	defer fence.Close()
	limiter := middleware.NewLoginRateLimiter(5, 15*time.Minute)
	defer limiter.Close()

	menu := services.NewMenuService(remote)
	h := server.Handlers{
		Auth:       handlers.NewAuthHandler(services.NewSignupService(remote), limiter),
		Search:     handlers.NewSearchHandler(services.NewSearchService(remote, fence)),
		Restaurant: handlers.NewRestaurantHandler(menu),
		Cart:       handlers.NewCartHandler(menu),
		Checkout:   handlers.NewCheckoutHandler(services.NewCheckoutService(remote, remote, remote, log)),
		Dashboard:  handlers.NewDashboardHandler(services.NewDashboardService(remote, remote)),
		Health:     handlers.NewHealthHandler(serviceName, remote),
	}

	router := server.NewRouter(h, server.Options{
		Logger:         log,
		ClientState:    middleware.NewClientState(store, cfg.Session.Name, remote, log),
		LoginLimiter:   limiter,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		StaticDir:      "web/static/",
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.Server.Env).
			Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
