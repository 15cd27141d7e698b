// Package logging implements the structured logging backend used by
// the rethreadctl command line tool, including the restart
// notifications its supervise subcommand logs for the worker package.
//
// Unlike the teacher's common/logging, which has to serve a
// long-running node whose many subsystems construct loggers from
// package-level vars long before main() parses a config file,
// rethreadctl is a single-shot CLI invocation: every Logger is
// fetched from a var initializer, but nothing actually calls Debug/
// Info/Warn/Error until a cobra command's RunE runs, and Initialize
// always completes before that, from cobra.OnInitialize. A Logger can
// therefore stay a thin module-name handle that resolves the shared
// backend at call time; there is no need to buffer loggers constructed
// before the backend exists and swap them in later.
package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/pflag"
)

// Level is a log level. It binds directly to a pflag flag, since
// rethreadctl exposes it on the command line as --log.level.
type Level uint

const (
	// LevelDebug is the log level for debug messages.
	LevelDebug Level = iota
	// LevelInfo is the log level for informative messages.
	LevelInfo
	// LevelWarn is the log level for warning messages.
	LevelWarn
	// LevelError is the log level for error messages.
	LevelError
)

var _ pflag.Value = (*Level)(nil)

func (l Level) toOption() level.Option {
	switch l {
	case LevelDebug:
		return level.AllowDebug()
	case LevelInfo:
		return level.AllowInfo()
	case LevelWarn:
		return level.AllowWarn()
	case LevelError:
		return level.AllowError()
	default:
		panic("logging: unsupported log level")
	}
}

func (l *Level) String() string {
	switch *l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		panic("logging: unsupported log level")
	}
}

// Set sets the Level to the value specified by the provided string.
func (l *Level) Set(s string) error {
	switch strings.ToUpper(s) {
	case "DEBUG":
		*l = LevelDebug
	case "INFO":
		*l = LevelInfo
	case "WARN":
		*l = LevelWarn
	case "ERROR":
		*l = LevelError
	default:
		return fmt.Errorf("logging: invalid log level: %q", s)
	}
	return nil
}

// Type implements pflag.Value.
func (l *Level) Type() string {
	return "[DEBUG,INFO,WARN,ERROR]"
}

// backend is the process-wide sink every Logger resolves against each
// time it logs, rather than at construction time.
type backend struct {
	sync.RWMutex
	logger      log.Logger
	initialized bool
}

var sharedBackend = &backend{logger: log.NewNopLogger()}

// Initialize points the shared backend at w, in the given format
// ("logfmt" or "json", case-insensitive; "" means "logfmt"), filtering
// out anything below lvl. If w is nil, all log output is discarded.
// Initialize may only be called once, from cmd/rethreadctl's root
// command.
func Initialize(w io.Writer, format string, lvl Level) error {
	sharedBackend.Lock()
	defer sharedBackend.Unlock()

	if sharedBackend.initialized {
		return fmt.Errorf("logging: already initialized")
	}

	var logger log.Logger = log.NewNopLogger()
	if w != nil {
		sw := log.NewSyncWriter(w)
		switch strings.ToUpper(format) {
		case "", "LOGFMT":
			logger = log.NewLogfmtLogger(sw)
		case "JSON":
			logger = log.NewJSONLogger(sw)
		default:
			return fmt.Errorf("logging: unsupported log format: %q", format)
		}
	}

	logger = level.NewFilter(logger, lvl.toOption())
	sharedBackend.logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	sharedBackend.initialized = true
	return nil
}

// Logger logs under a fixed module name against the shared backend.
// The zero Logger logs against the shared backend without a module
// key; use GetLogger to bind a module name.
type Logger struct {
	module string
}

// GetLogger returns a Logger bound to module. It may be called before
// Initialize; log calls made before Initialize runs are discarded.
func GetLogger(module string) *Logger {
	return &Logger{module: module}
}

func (l *Logger) emit(lvl Level, msg string, keyvals []interface{}) {
	sharedBackend.RLock()
	logger := sharedBackend.logger
	sharedBackend.RUnlock()

	kv := make([]interface{}, 0, len(keyvals)+4)
	kv = append(kv, "msg", msg)
	if l.module != "" {
		kv = append(kv, "module", l.module)
	}
	kv = append(kv, keyvals...)

	var leveled log.Logger
	switch lvl {
	case LevelDebug:
		leveled = level.Debug(logger)
	case LevelInfo:
		leveled = level.Info(logger)
	case LevelWarn:
		leveled = level.Warn(logger)
	case LevelError:
		leveled = level.Error(logger)
	}
	_ = leveled.Log(kv...)
}

// Debug logs the message and key/value pairs at the Debug level.
func (l *Logger) Debug(msg string, keyvals ...interface{}) { l.emit(LevelDebug, msg, keyvals) }

// Info logs the message and key/value pairs at the Info level.
func (l *Logger) Info(msg string, keyvals ...interface{}) { l.emit(LevelInfo, msg, keyvals) }

// Warn logs the message and key/value pairs at the Warn level.
func (l *Logger) Warn(msg string, keyvals ...interface{}) { l.emit(LevelWarn, msg, keyvals) }

// Error logs the message and key/value pairs at the Error level.
func (l *Logger) Error(msg string, keyvals ...interface{}) { l.emit(LevelError, msg, keyvals) }
