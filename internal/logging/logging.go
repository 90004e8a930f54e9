// Package logging baut den strukturierten Logger für CLI und Server.
package logging

import (
	"io"
	"log/slog"
	"os"

	"hufschlaeger.net/task-records/internal/config"
)

// New erstellt einen slog.Logger gemäß LOG_FORMAT (text|json) und VERBOSE
func New(cfg *config.Config, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if cfg != nil && cfg.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg != nil && cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Discard liefert einen Logger ohne Ausgabe (Tests)
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
