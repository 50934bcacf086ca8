// Package log provides the Logger used throughout the emulator, backed
// by logrus.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// New returns a Logger writing plain text lines to stderr at debug level.
func New() Logger {
	return NewWithOutput(nil)
}

// NewWithOutput returns a Logger writing to w, or to stderr when w is nil.
func NewWithOutput(w io.Writer) Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	if w != nil {
		l.SetOutput(w)
	}
	return l
}
