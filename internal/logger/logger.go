package logger

import (
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output encodings.
const (
	ConsoleEncoding = "console"
	JSONEncoding    = "json"
)

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns a singleton console logger configured with the provided level.
// The first call initializes the logger; subsequent calls ignore the level
// and return the already initialized instance.
func Get(level string) *Logger {
	return Init(level, ConsoleEncoding)
}

// Init is Get with an explicit encoding. Only the first call has any effect.
func Init(level, encoding string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(level, encoding)
	})
	return globalLogger
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return newNopLogger()
}
