package logger

import (
	"github.com/sirupsen/logrus"
)

type Logger interface {
	Debug(msg string)
	Info(msg string)
	Error(msg string, err error)
	WithField(key string, value interface{}) Logger
}

// New returns a logrus-backed logger at the given level. Unknown levels
// fall back to info.
func New(level string) Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	return &logrusLogger{entry: logrus.NewEntry(l)}
}

type logrusLogger struct {
	entry *logrus.Entry
}

func (l *logrusLogger) Debug(msg string) {
	l.entry.Debug(msg)
}

func (l *logrusLogger) Info(msg string) {
	l.entry.Info(msg)
}

func (l *logrusLogger) Error(msg string, err error) {
	l.entry.WithError(err).Error(msg)
}

func (l *logrusLogger) WithField(key string, value interface{}) Logger {
	return &logrusLogger{entry: l.entry.WithField(key, value)}
}
