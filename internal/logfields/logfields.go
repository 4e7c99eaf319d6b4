package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyLanguage   = "language"
	KeyPage       = "page"
	KeyURL        = "url"
	KeyPath       = "path"
	KeyPlugin     = "plugin"
	KeyEvent      = "event"
	KeyStage      = "stage"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Language(l string) slog.Attr     { return slog.String(KeyLanguage, l) }
func Page(p string) slog.Attr         { return slog.String(KeyPage, p) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Plugin(name string) slog.Attr    { return slog.String(KeyPlugin, name) }
func Event(name string) slog.Attr     { return slog.String(KeyEvent, name) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
