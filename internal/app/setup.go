// Package app wires process-wide concerns: .env loading and logging.
package app

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LoadEnv loads a .env file from the working directory when present.
// It reports whether one was loaded.
func LoadEnv() bool {
	return godotenv.Load() == nil
}

// SetupLogging configures the global zerolog logger. Production (ENV=production)
// logs JSON; otherwise a console writer is used. Every entry carries the
// run id so the lines of one invocation can be grouped.
func SetupLogging(out io.Writer, level string) string {
	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	runID := uuid.NewString()
	log.Logger = log.With().Str("run_id", runID).Logger()

	lvl, ok := ParseLevel(level)
	zerolog.SetGlobalLevel(lvl)
	if !ok {
		log.Warn().Msgf("Unknown log level '%s', defaulting to info.", level)
	}
	return runID
}

// ParseLevel maps a level name to a zerolog level. Unknown names yield info
// and false; an empty name is info.
func ParseLevel(s string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel, true
	case "info", "":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "fatal":
		return zerolog.FatalLevel, true
	case "panic":
		return zerolog.PanicLevel, true
	case "disabled", "off":
		return zerolog.Disabled, true
	}
	return zerolog.InfoLevel, false
}
