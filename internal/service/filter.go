package service

import "time"

// History limit bounds.
const (
	DefaultHistoryLimit = 100
	MinHistoryLimit     = 1
	MaxHistoryLimit     = 1000
)

// HistoryFilter selects stored readings, newest first.
type HistoryFilter struct {
	Limit int       // clamped to [MinHistoryLimit, MaxHistoryLimit]
	From  time.Time // inclusive; zero means no lower bound
	To    time.Time // inclusive; zero means no upper bound
}

// ClampHistoryLimit bounds n to [MinHistoryLimit, MaxHistoryLimit].
func ClampHistoryLimit(n int) int {
	return max(MinHistoryLimit, min(n, MaxHistoryLimit))
}
