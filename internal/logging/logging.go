package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger. Unknown levels fall back to info.
func Setup(level string) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.SetLevel(logrus.InfoLevel)
		logrus.Warnf("unknown log level %q, using info", level)
		return
	}
	logrus.SetLevel(lvl)
}
