// Package logger configures the process-wide structured logger.
//
// Log events are zerolog JSON. Besides the configured file and console
// outputs, callers can attach extra sinks at Init time; the diagnostics
// publisher uses this to mirror the event stream onto the per-process
// diagnostic endpoint.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds the logging section of the application configuration.
type Config struct {
	Level      string `json:"Level"`
	FilePath   string `json:"FilePath"`
	MaxSizeMB  int    `json:"MaxSizeMB"`
	MaxBackups int    `json:"MaxBackups"`
	MaxAgeDays int    `json:"MaxAgeDays"`
	Compress   bool   `json:"Compress"`
	Console    bool   `json:"Console"`
}

// DefaultConfig returns sensible defaults for logging.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		FilePath:   "logs/selfsvc.log",
		MaxSizeMB:  10,
		MaxBackups: 5,
		MaxAgeDays: 30,
		Compress:   true,
		Console:    true,
	}
}

// global is swapped atomically: the configuration watcher re-runs Init
// while other goroutines are logging through it.
var (
	global   atomic.Pointer[zerolog.Logger]
	prevFile io.Closer
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	l := zerolog.New(os.Stdout).With().Timestamp().Logger()
	global.Store(&l)
}

// Init builds the global logger from cfg. Extra sinks receive every
// event regardless of the console setting. Init may be called again on
// configuration reload; the previous log file is closed first.
func Init(cfg Config, sinks ...io.Writer) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if prevFile != nil {
		prevFile.Close()
		prevFile = nil
	}

	var writers []io.Writer

	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return err
		}
		file := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		prevFile = file
		writers = append(writers, file)
	}

	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	writers = append(writers, sinks...)

	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	var out io.Writer
	if len(writers) == 1 {
		out = writers[0]
	} else {
		out = zerolog.MultiLevelWriter(writers...)
	}

	l := zerolog.New(out).With().Timestamp().Logger()
	global.Store(&l)
	return nil
}

// Logger returns the global logger instance.
func Logger() *zerolog.Logger {
	return global.Load()
}

// WithComponent returns a logger tagged with a component field. The
// component doubles as the logger/category name on the diagnostic
// stream.
func WithComponent(component string) zerolog.Logger {
	return global.Load().With().Str("component", component).Logger()
}
