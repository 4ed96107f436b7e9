// Package logger builds the logrus logger shared by the command and the services.
package logger

import (
	"io"
	"os"

	"github.com/diewo77/product-organizer/internal/config"
	"github.com/sirupsen/logrus"
)

// New returns a logger entry configured from cfg, writing to out (stderr when nil).
// Unknown levels fall back to info, unknown formatters to text.
func New(cfg config.LogConfig, out io.Writer) *logrus.Entry {
	if out == nil {
		out = os.Stderr
	}
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(formatter(cfg.Formatter))
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	return l.WithField("pid", os.Getpid())
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func formatter(name string) logrus.Formatter {
	switch name {
	case "json":
		return &logrus.JSONFormatter{}
	default:
		return &logrus.TextFormatter{FullTimestamp: true}
	}
}
