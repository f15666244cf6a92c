// Package cache keeps recently loaded file text in memory so repeated
// searches don't re-read unchanged files.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	text     string
	modTime  time.Time
	size     int64
	lastUsed time.Time
}

// FileCache is a size-bounded, mtime-validated text cache. An entry is only
// served when the caller's (modTime, size) pair still matches what was
// stored; anything else counts as a miss.
type FileCache struct {
	mu      sync.Mutex
	entries map[string]*entry
	total   int64
	maxSize int64
}

// NewFileCache creates a cache holding at most maxSizeMB megabytes of text.
func NewFileCache(maxSizeMB int) *FileCache {
	return &FileCache{
		entries: make(map[string]*entry),
		maxSize: int64(maxSizeMB) * 1024 * 1024,
	}
}

// Get returns the cached text for path if it is still current.
func (c *FileCache) Get(path string, modTime time.Time, size int64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[path]
	if !ok || !e.modTime.Equal(modTime) || e.size != size {
		return "", false
	}
	e.lastUsed = time.Now()
	return e.text, true
}

// Put stores the text for path, evicting least-recently-used entries if the
// cache would exceed its size bound. Texts larger than the whole bound are
// not cached at all.
func (c *FileCache) Put(path string, text string, modTime time.Time, size int64) {
	textSize := int64(len(text))
	if textSize > c.maxSize {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Drop a stale entry before eviction runs so it can't be picked as the
	// LRU victim and have its bytes subtracted twice.
	if old, ok := c.entries[path]; ok {
		c.total -= int64(len(old.text))
		delete(c.entries, path)
	}
	for c.total+textSize > c.maxSize {
		c.evictOldest()
	}
	c.entries[path] = &entry{text: text, modTime: modTime, size: size, lastUsed: time.Now()}
	c.total += textSize
}

// Len returns the number of cached entries.
func (c *FileCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *FileCache) evictOldest() {
	var oldestPath string
	var oldest time.Time
	for path, e := range c.entries {
		if oldestPath == "" || e.lastUsed.Before(oldest) {
			oldestPath, oldest = path, e.lastUsed
		}
	}
	if oldestPath == "" {
		return
	}
	c.total -= int64(len(c.entries[oldestPath].text))
	delete(c.entries, oldestPath)
}
