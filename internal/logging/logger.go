package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates the application logger at the named level (see ParseLevel).
// It writes text records to w, or to Stderr when w is nil, so Stdout stays free
// for tables, JSON and MCP stdio traffic. The "error" attribute is renamed "err".
func New(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	})), nil
}

// NewNop returns a logger that discards everything; library types default to it.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
