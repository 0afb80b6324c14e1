package cache

import (
	"strings"
	"sync"
	"time"
)

// DefaultTTL bounds how long a synthesized buffer is served without a fresh
// backend call.
const DefaultTTL = 10 * time.Minute

// Payload kinds. Prefixing the fingerprint keeps WAV-wrapped and raw PCM
// buffers for the same logical request from crossing over.
const (
	KindWAV = "wav"
	KindPCM = "pcm"
)

type entry struct {
	payload   []byte
	createdAt time.Time
}

// Cache maps synthesis fingerprints to previously computed audio buffers.
// Expiry is checked lazily on read; stale entries stay in memory until
// overwritten.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func New(ttl time.Duration) *Cache {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock lets tests drive expiry with a fake clock.
func NewWithClock(ttl time.Duration, now func() time.Time) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the payload for key if an entry exists and is younger than the
// TTL. Expired entries count as misses.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(e.createdAt) >= c.ttl {
		return nil, false
	}
	return e.payload, true
}

// Set inserts or overwrites the entry for key, stamping it with the current
// time. Entries are replace-only; they are never patched in place.
func (c *Cache) Set(key string, payload []byte) {
	c.mu.Lock()
	c.entries[key] = entry{payload: payload, createdAt: c.now()}
	c.mu.Unlock()
}

// Len reports the number of entries held, including expired ones.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Fingerprint derives the cache key for a synthesis request. The text is
// trimmed before keying so requests differing only in surrounding whitespace
// share an entry.
func Fingerprint(kind, model, voice, text string) string {
	return kind + "::" + model + "::" + voice + "::" + strings.TrimSpace(text)
}
