package logger

import (
	"alcyxob/win-tracker/internal/config"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the process logger from cfg and installs it as the
// charmbracelet/log default, so package-level log calls use it too.
func New(cfg config.LogConfig) (*log.Logger, error) {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg config.LogConfig, stderr io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	writer := stderr
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		// Rotating file handler, mirrored to stderr.
		writer = io.MultiWriter(stderr, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	logger := log.NewWithOptions(writer, log.Options{
		ReportCaller:    level == log.DebugLevel,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "win-tracker",
	})
	if cfg.Format == "json" {
		logger.SetFormatter(log.JSONFormatter)
	}

	log.SetDefault(logger)
	return logger, nil
}
