package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyFormat     = "format"
	KeyPrefix     = "prefix"
	KeyPage       = "page"
	KeyPlugin     = "plugin"
	KeyRepo       = "repo"
	KeyCount      = "count"
	KeyEvent      = "event"
	KeyOutcome    = "outcome"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr    { return slog.String(KeyPath, p) }
func Format(f string) slog.Attr  { return slog.String(KeyFormat, f) }
func Prefix(p string) slog.Attr  { return slog.String(KeyPrefix, p) }
func Page(p string) slog.Attr    { return slog.String(KeyPage, p) }
func Plugin(p string) slog.Attr  { return slog.String(KeyPlugin, p) }
func Repo(r string) slog.Attr    { return slog.String(KeyRepo, r) }
func Count(n int) slog.Attr      { return slog.Int(KeyCount, n) }
func Event(e string) slog.Attr   { return slog.String(KeyEvent, e) }
func Outcome(o string) slog.Attr { return slog.String(KeyOutcome, o) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
