package service

import (
	"sync"

	"hydro_monitor/internal/models"
)

// LatestCache holds the most recently ingested reading.
type LatestCache struct {
	mu      sync.RWMutex
	reading models.Reading
}

func NewLatestCache() *LatestCache {
	return &LatestCache{}
}

// Replace overwrites the cached reading with r and returns what was stored.
// The stored timestamp never moves backwards: if the clock stepped back, r inherits the cached one.
func (c *LatestCache) Replace(r models.Reading) models.Reading {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r.Timestamp.Before(c.reading.Timestamp) {
		r.Timestamp = c.reading.Timestamp
	}
	c.reading = r
	return r
}

// Get returns the cached reading. Before the first ingest every field is absent.
func (c *LatestCache) Get() models.Reading {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reading
}
