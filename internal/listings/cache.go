package listings

import (
	"log"
	"sync"
	"time"

	"rajendranagar-portal/internal/models"
)

// listingCache is a single-entry stale-while-revalidate cache over the "all
// active listings" view. A hit returns the cached slice immediately and
// kicks off an unawaited background refresh; overlapping readers may trigger
// redundant refreshes, which is acceptable at this traffic level. Writes
// replace the whole entry atomically under the mutex.
type listingCache struct {
	ttl time.Duration

	mu        sync.Mutex
	data      []models.Property
	fetchedAt time.Time
	valid     bool
}

func newListingCache(ttl time.Duration) *listingCache {
	return &listingCache{ttl: ttl}
}

// get returns the cached listings through fetch. A fresh cached entry is
// returned as-is while a background goroutine re-runs fetch and overwrites
// the entry; a missing or stale entry makes the caller wait for a
// synchronous fetch.
func (c *listingCache) get(fetch func() ([]models.Property, error)) ([]models.Property, error) {
	c.mu.Lock()
	if c.valid && time.Since(c.fetchedAt) < c.ttl {
		data := c.data
		c.mu.Unlock()

		go func() {
			if _, err := c.refresh(fetch); err != nil {
				log.Printf("Cache: background refresh failed: %v", err)
			}
		}()
		return data, nil
	}
	c.mu.Unlock()

	return c.refresh(fetch)
}

func (c *listingCache) refresh(fetch func() ([]models.Property, error)) ([]models.Property, error) {
	data, err := fetch()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.data = data
	c.fetchedAt = time.Now()
	c.valid = true
	c.mu.Unlock()

	return data, nil
}

// invalidate drops the entry so the next read hits the store synchronously.
func (c *listingCache) invalidate() {
	c.mu.Lock()
	c.valid = false
	c.data = nil
	c.mu.Unlock()
}
