package logger

import (
	"io"
	"os"
	"time"

	"food-ordering-web/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New builds the application logger. Development gets a human readable
// console writer, production gets JSON lines on stdout.
func New(cfg *config.Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter is New with an explicit output
func NewWithWriter(cfg *config.Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if !cfg.Server.IsProduction() {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	logger := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("env", cfg.Server.Env).
		Logger()

	// Packages that log through the global logger share the configuration
	log.Logger = logger
	return logger
}
