package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var (
	// Logger is the global logger instance
	Logger zerolog.Logger
)

// Level represents log level
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// Config holds logging configuration
type Config struct {
	Level      Level
	JSONOutput bool
	Output     io.Writer
}

// Init initializes the global logger
func Init(cfg Config) {
	// Set log level
	var level zerolog.Level
	switch cfg.Level {
	case DebugLevel:
		level = zerolog.DebugLevel
	case InfoLevel:
		level = zerolog.InfoLevel
	case WarnLevel:
		level = zerolog.WarnLevel
	case ErrorLevel:
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	// Use JSON or console output
	if cfg.JSONOutput {
		Logger = zerolog.New(output).With().Timestamp().Logger()
	} else {
		Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
}

// WithComponent creates a child logger with component field
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}

// WithEntity creates a child logger tagged with an entity identifier,
// for callbacks and engine internals that act on a specific tree node.
func WithEntity(id string) zerolog.Logger {
	return Logger.With().Str("entity", id).Logger()
}

// WithArchive creates a child logger tagged with a resource archive path.
func WithArchive(archivePath string) zerolog.Logger {
	return Logger.With().Str("archive", archivePath).Logger()
}

// EntityLogger adapts a zerolog.Logger to entity.Logger's printf-style
// methods, so engine.Engine can hand its component logger to entities
// through the Host interface without pkg/entity importing zerolog.
type EntityLogger struct {
	Wrapped zerolog.Logger
}

func (l EntityLogger) Debugf(format string, args ...any) { l.Wrapped.Debug().Msgf(format, args...) }
func (l EntityLogger) Infof(format string, args ...any)  { l.Wrapped.Info().Msgf(format, args...) }
func (l EntityLogger) Errorf(format string, args ...any) { l.Wrapped.Error().Msgf(format, args...) }

// Helper functions for common logging patterns
func Info(msg string) {
	Logger.Info().Msg(msg)
}

func Debug(msg string) {
	Logger.Debug().Msg(msg)
}

func Warn(msg string) {
	Logger.Warn().Msg(msg)
}

func Error(msg string) {
	Logger.Error().Msg(msg)
}

func Errorf(format string, err error) {
	Logger.Error().Err(err).Msg(format)
}

func Fatal(msg string) {
	Logger.Fatal().Msg(msg)
}
