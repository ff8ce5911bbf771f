package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It starts with logrus defaults so packages
// may log before Init runs.
var Log = logrus.New()

// Init configures Log with the given level and optional log file. Output
// always goes to stderr; the file, when set, receives a copy.
func Init(levelStr, filePath string) error {
	l, err := New(levelStr, filePath)
	if err != nil {
		return err
	}
	Log = l
	return nil
}

func New(levelStr, filePath string) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	writers := []io.Writer{os.Stderr}
	if filePath != "" {
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		writers = append(writers, file)
	}
	l.SetOutput(io.MultiWriter(writers...))

	return l, nil
}

// Discard returns a logger that drops everything; used in tests.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
