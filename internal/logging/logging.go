package logging

import (
	"io"
	"log/slog"
	"os"
)

// New builds the shared application logger. Logs go to stderr so the
// interactive chat output on stdout stays clean, and any "error" attr
// is renamed to "err" to keep one key across the codebase.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a logger that discards everything, the default for
// library consumers that never configure one.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
