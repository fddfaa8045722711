package app

import (
	"io"
	"log/slog"
)

// levelNames maps the accepted -log-level values onto slog levels.
var levelNames = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger builds the application's isolated slog.Logger; the global
// default is never touched, so tests can run several apps side by side.
// The CLI validates user input before this runs, so unknown values only
// reach here from programmatic callers and fall back to info/text.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level, ok := levelNames[levelStr]
	if !ok {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
