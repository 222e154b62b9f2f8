package models

// Level is the normalized state of a binary liquid-level sensor.
type Level string

const (
	LevelHigh Level = "alto"
	LevelLow  Level = "bajo"
)

// Ptr returns a pointer to a copy of l.
func (l Level) Ptr() *Level { return &l }
