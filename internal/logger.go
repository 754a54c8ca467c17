package internal

import (
	"os"

	"github.com/rs/zerolog"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	Level(zerolog.InfoLevel).
	With().Timestamp().Logger()

// SetVerbose enables debug-level logging
func SetVerbose(verbose bool) {
	if verbose {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}
}

// Logger returns a logger scoped to a component name
func Logger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	log.Error().Msgf(format, args...)
}

// LogWarn logs a warning message
func LogWarn(format string, args ...interface{}) {
	log.Warn().Msgf(format, args...)
}

// LogInfo logs an info message
func LogInfo(format string, args ...interface{}) {
	log.Info().Msgf(format, args...)
}

// LogDebug logs a debug message
func LogDebug(format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}
