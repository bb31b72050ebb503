// Package ports defines the interfaces between the transform core and its
// adapters.
package ports

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug is for detailed debugging information.
	// Used for engine-level internal processing logs.
	LevelDebug LogLevel = iota
	// LevelInfo is for informational messages.
	// Used for orchestration-level logs (files, steps, timings).
	LevelInfo
	// LevelWarn is for warning messages.
	// Used for recoverable problems that don't stop processing.
	LevelWarn
	// LevelError is for error messages.
	// Used for unrecoverable problems that stop processing.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelQuiet:
		return "quiet"
	default:
		return "unknown"
	}
}

// ParseLogLevel parses a string into a LogLevel.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	case "quiet":
		return LevelQuiet
	default:
		return LevelInfo
	}
}

// Logger is the logging port shared by the engines, the worker and the
// CLI. msg is a go-l10n lexicon key; args fill its verbs after translation.
type Logger interface {
	// Debug is used by engines and the worker for per-job detail.
	Debug(msg string, args ...interface{})

	// Info reports file and step progress.
	Info(msg string, args ...interface{})

	// Warn reports problems that do not stop a run.
	Warn(msg string, args ...interface{})

	// Error reports a failed file or step.
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that tags lines with the component
	// name, e.g. "resample" or "worker".
	WithComponent(component string) Logger

	// WithJob returns a Logger that tags lines with a worker job id, so the
	// lines of interleaved jobs can be told apart.
	WithJob(id uint64) Logger
}
