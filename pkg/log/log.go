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

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	if cfg.JSONOutput {
		Logger = zerolog.New(output).With().Timestamp().Logger()
	} else {
		Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
}

// WithComponent creates a child logger tagged with the owning subsystem
// (state, scheduler, health, registry, api).
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}

// WithTaskName derives logger with a task_name field, for call sites
// that log more than once about the same task and would otherwise
// repeat the same .Str("task_name", ...) on every line.
func WithTaskName(logger zerolog.Logger, taskName string) zerolog.Logger {
	return logger.With().Str("task_name", taskName).Logger()
}

// WithNodeName derives logger with a node_name field.
func WithNodeName(logger zerolog.Logger, nodeName string) zerolog.Logger {
	return logger.With().Str("node_name", nodeName).Logger()
}

// WithOfferID derives logger with an offer_id field.
func WithOfferID(logger zerolog.Logger, offerID string) zerolog.Logger {
	return logger.With().Str("offer_id", offerID).Logger()
}

// WithSlaveID derives logger with a slave_id field.
func WithSlaveID(logger zerolog.Logger, slaveID string) zerolog.Logger {
	return logger.With().Str("slave_id", slaveID).Logger()
}
