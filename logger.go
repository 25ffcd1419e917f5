package datapackage

// Logger receives progress messages from a Reader.
// Implementations must be safe for concurrent use.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	Info(format string, args ...interface{})

	// Error logs error messages.
	Error(format string, args ...interface{})
}
