package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Fields are structured key/value pairs attached to a log entry.
type Fields = logrus.Fields

// Logger is the logging surface injected into services and middleware.
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	WithFields(fields Fields) Logger
}

// Options configures the default logger.
type Options struct {
	Level  string
	JSON   bool
	Output io.Writer
}

type logrusLogger struct {
	entry *logrus.Entry
}

// New builds a logrus backed Logger. Unknown levels fall back to info.
func New(opts Options) Logger {
	l := logrus.New()
	if opts.Output != nil {
		l.SetOutput(opts.Output)
	} else {
		l.SetOutput(os.Stdout)
	}

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if opts.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return &logrusLogger{entry: logrus.NewEntry(l)}
}

// NewNop discards everything; used by tests.
func NewNop() Logger {
	return New(Options{Level: "panic", Output: io.Discard})
}

func (l *logrusLogger) Debug(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

func (l *logrusLogger) Info(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

func (l *logrusLogger) Warn(format string, v ...interface{}) {
	l.entry.Warnf(format, v...)
}

func (l *logrusLogger) Error(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}

func (l *logrusLogger) WithFields(fields Fields) Logger {
	return &logrusLogger{entry: l.entry.WithFields(fields)}
}
