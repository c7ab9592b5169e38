// Package logging builds the application's logrus logger from configuration.
package logging

import (
	"fmt"
	"io"
	"os"

	"musa/internal/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a logger writing to stdout and, when cfg.File is set, to a
// rotating log file.
func New(cfg config.LoggingConfig) (*logrus.Logger, error) {
	logger := logrus.New()

	if err := Apply(logger, cfg); err != nil {
		return nil, err
	}

	if cfg.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		logger.SetOutput(io.MultiWriter(os.Stdout, fileWriter))
	} else {
		logger.SetOutput(os.Stdout)
	}

	return logger, nil
}

// Apply updates level and formatter in place. Used at startup and when the
// configuration file is reloaded.
func Apply(logger *logrus.Logger, cfg config.LoggingConfig) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	default:
		return fmt.Errorf("invalid log format: %s", cfg.Format)
	}

	return nil
}
