// Package util holds small ambient helpers shared by cmd/slct, grounded
// on sqldef-sqldef/util/logutil.go.
package util

import (
	"log/slog"
	"os"
	"strings"
)

// InitSlog configures the default slog logger from the LOG_LEVEL
// environment variable (debug, info, warn, error; default info),
// writing structured text records to stderr (SPEC_FULL.md AMBIENT
// STACK).
func InitSlog() {
	level := slog.LevelInfo
	if raw, ok := os.LookupEnv("LOG_LEVEL"); ok {
		switch strings.ToLower(raw) {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
