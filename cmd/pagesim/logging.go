package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// initLogger installs a text handler on w as the default logger. An unknown
// level falls back to info with a warning.
func initLogger(w io.Writer, logLevel string) {
	if w == nil {
		w = os.Stderr
	}

	level, err := parseLogLevel(logLevel)

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	if err != nil {
		slog.Warn(err.Error())
	}
}

func parseLogLevel(levelStr string) (slog.Level, error) {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q, using info", levelStr)
	}
}
