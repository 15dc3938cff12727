// Package logger provides the shared logrus logger of the hotswap packages.
package logger

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	// FormatText selects the logrus text formatter.
	FormatText = "text"
	// FormatJSON selects the logrus JSON formatter.
	FormatJSON = "json"

	defaultLevel = logrus.WarnLevel
)

// ErrUnknownFormat is returned when configuring an unsupported log format.
var ErrUnknownFormat = errors.New("unknown log format")

var (
	lg     *logrus.Logger
	lgOnce sync.Once
)

// Logger returns the shared logger. It writes to stderr at warning level until
// Configure is called.
func Logger() *logrus.Logger {
	lgOnce.Do(func() {
		lg = logrus.New()
		lg.SetOutput(os.Stderr)
		lg.SetLevel(defaultLevel)
	})
	return lg
}

// Configure sets the level and the format of the shared logger. An empty level
// keeps the current one, an empty format keeps the current formatter.
func Configure(level, format string) error {
	l := Logger()

	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("parsing log level: %w", err)
		}
		l.SetLevel(lvl)
	}

	formatter, err := Formatter(format)
	if err != nil {
		return err
	}
	if formatter != nil {
		l.SetFormatter(formatter)
	}

	return nil
}

// Formatter returns the logrus formatter for a format name, or nil for an empty name.
func Formatter(format string) (logrus.Formatter, error) {
	switch strings.ToLower(format) {
	case "":
		return nil, nil
	case FormatText:
		return &logrus.TextFormatter{FullTimestamp: true}, nil
	case FormatJSON:
		return &logrus.JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownFormat, format)
	}
}
