// internal/config/logging.go
package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// ConfigureLogging applies the log level and format to the standard logrus
// logger. An unknown level falls back to info.
func ConfigureLogging(cfg LogConfig) {
	logrus.SetOutput(os.Stdout)

	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.WithField("level", cfg.Level).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
