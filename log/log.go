package log

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Verbose controls whether debug messages are being printed.
var Verbose bool

// IndentationLevel controls the amount of indentation of log messages.
var IndentationLevel = 0

var errorOccured = false

const successField = "success"

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = os.Stderr
	l.Formatter = &formatter{}
	l.Level = logrus.DebugLevel
	return l
}

// formatter prints indented messages with a coloured severity prefix and no
// timestamps.
type formatter struct{}

func (f *formatter) Format(entry *logrus.Entry) ([]byte, error) {
	prefix := ""
	switch entry.Level {
	case logrus.DebugLevel:
		prefix = "\033[36mDebug: \033[0m"
	case logrus.WarnLevel:
		prefix = "\033[33mWarning: \033[0m"
	case logrus.ErrorLevel, logrus.FatalLevel:
		prefix = "\033[31mError: \033[0m"
	case logrus.InfoLevel:
		if _, ok := entry.Data[successField]; ok {
			prefix = "\033[32mSuccess: \033[0m"
		}
	}
	indentation := 0
	if level, ok := entry.Data["indent"].(int); ok {
		indentation = level
	}
	return []byte(strings.Repeat("  ", indentation) + prefix + entry.Message), nil
}

func entry() *logrus.Entry {
	return logger.WithField("indent", IndentationLevel)
}

// ErrorOccured reports whether any errors have occured.
func ErrorOccured() bool {
	return errorOccured
}

// Log prints an indented and formatted message to os.Stderr.
func Log(format string, a ...interface{}) {
	entry().Info(fmt.Sprintf(format, a...))
}

// Debug prints an indented and formatted debug message to os.Stderr if verbose output is selected.
func Debug(format string, a ...interface{}) {
	if Verbose {
		entry().Debug(fmt.Sprintf(format, a...))
	}
}

// Success prints an indented and formatted success message to os.Stderr.
func Success(format string, a ...interface{}) {
	entry().WithField(successField, true).Info(fmt.Sprintf(format, a...))
}

// Warning prints an indented and formatted warning to os.Stderr.
func Warning(format string, a ...interface{}) {
	entry().Warn(fmt.Sprintf(format, a...))
}

// Error prints an indented and formatted error message to os.Stderr.
func Error(format string, a ...interface{}) {
	errorOccured = true
	entry().Error(fmt.Sprintf(format, a...))
}

// Fatal prints an indented and formatted error message to os.Stderr and terminates the program.
func Fatal(format string, a ...interface{}) {
	Error(format, a...)
	fmt.Fprintf(logger.Out, "\033[31mA fatal error occured. Exiting...\033[0m\n")
	os.Exit(1)
}
