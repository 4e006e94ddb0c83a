package cli

import (
	"io"

	"github.com/sirupsen/logrus"
)

// newLogger returns a text logger writing to w. Only warnings and errors are
// shown unless debug is set.
func newLogger(w io.Writer, debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	logger.SetLevel(logrus.WarnLevel)
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}
