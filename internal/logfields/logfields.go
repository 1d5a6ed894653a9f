package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyLocale     = "locale"
	KeyStage      = "stage"
	KeyPath       = "path"
	KeySource     = "source"
	KeyTarget     = "target"
	KeyFiles      = "files"
	KeyRecords    = "records"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Locale(l string) slog.Attr       { return slog.String(KeyLocale, l) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Source(p string) slog.Attr       { return slog.String(KeySource, p) }
func Target(p string) slog.Attr       { return slog.String(KeyTarget, p) }
func Files(n int) slog.Attr           { return slog.Int(KeyFiles, n) }
func Records(n int) slog.Attr         { return slog.Int(KeyRecords, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
