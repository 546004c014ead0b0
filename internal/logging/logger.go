package logging

import (
	"io"
	"log/slog"
)

// Handler formats accepted by NewWithFormat.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewWithFormat creates the application logger writing to w in the given
// format, falling back to text for unknown names. Callers pass Stderr so
// stdout stays free for plan output and JSON-RPC. The "error" key is renamed
// to "err".
func NewWithFormat(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}
	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
