package logger

import "os"

// Logger is the logging facade handed to every shell component. The
// component name keeps log streams separable without per-package loggers.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

// FromEnv builds the process logger from SHELL_LOG_LEVEL, SHELL_DEBUG and
// SHELL_JSON_LOGS. Unset or unrecognized values fall back to info-level
// console output.
func FromEnv() Logger {
	level := levelFromEnv()

	if os.Getenv("SHELL_JSON_LOGS") == "true" {
		return NewJSON(os.Stdout, level)
	}
	return NewConsole(level)
}

func levelFromEnv() Level {
	switch os.Getenv("SHELL_LOG_LEVEL") {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	}

	if os.Getenv("SHELL_DEBUG") == "1" {
		return DebugLevel
	}
	return InfoLevel
}
