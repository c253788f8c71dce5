package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging returns a JSON logger writing to stderr at the given level.
// Unknown levels fall back to info.
func SetupLogging(level string) *logrus.Logger {
	return newLogger(level, os.Stderr)
}

func newLogger(level string, out io.Writer) *logrus.Logger {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	logger := logrus.Logger{
		Formatter: &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		},
		Out:      out,
		Hooks:    make(logrus.LevelHooks),
		Level:    lvl,
		ExitFunc: os.Exit,
	}

	return &logger
}

// Discard returns a logger that drops everything, for tests.
func Discard() *logrus.Logger {
	return newLogger("panic", io.Discard)
}
