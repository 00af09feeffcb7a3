// Package log configures the process-wide structured logger.
package log

import (
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 5
	maxBackups = 3
)

// Init routes slog output to a size-rotated log file. The terminal stays
// reserved for the dashboard.
func Init(pathToLog string, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	writer := &lumberjack.Logger{
		Filename:   pathToLog,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		Compress:   true,
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
