// Package progress decouples upload progress reporting from wall-clock
// timers. Stores report fractions through a Reporter; the delivery layer
// decides how to surface them and tests drive them synchronously.
package progress

import "log/slog"

// Reporter receives progress updates for a single transfer.
// Fraction is in [0, 1]; implementations must tolerate repeated 1.0.
type Reporter interface {
	Report(id string, fraction float64)
}

// Func adapts a plain function to the Reporter interface
type Func func(id string, fraction float64)

func (f Func) Report(id string, fraction float64) { f(id, fraction) }

// Nop discards all progress updates
func Nop() Reporter {
	return Func(func(string, float64) {})
}

// Slog logs progress updates at debug level
func Slog(log *slog.Logger) Reporter {
	return Func(func(id string, fraction float64) {
		log.Debug("upload progress", "id", id, "fraction", fraction)
	})
}
