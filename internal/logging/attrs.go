package logging

import "log/slog"

// Error wraps an error as a slog attribute, tolerating nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// String mirrors slog.String; kept so call sites read uniformly next to
// Error.
func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Int mirrors slog.Int.
func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}
