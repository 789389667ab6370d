package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Feature records a feature identifier under the key "feature".
func Feature(name string) slog.Attr {
	return slog.String("feature", name)
}

// Variation records an experiment variation under the key "variation".
func Variation(name string) slog.Attr {
	return slog.String("variation", name)
}

// Source records the evaluation source kind under the key "source".
func Source(kind string) slog.Attr {
	return slog.String("source", kind)
}

// Count records a number of items under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Ignored records the number of dropped items under the key "ignored".
func Ignored(n int) slog.Attr {
	return slog.Int("ignored", n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
