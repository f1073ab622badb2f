// Package vfs resolves game asset paths against loose files and BSA
// archives, the way the engine's Data Files directory works.
package vfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Faultbox/resdayn/pkg/bsa"
)

// Manager resolves asset paths. A loose file under the data directory wins
// over any archive; among archives, the last one added wins.
type Manager struct {
	dir      string
	archives []*bsa.Archive
	cache    *Cache
	mu       sync.RWMutex
}

// NewManager creates a manager rooted at dir, the directory loose files are
// resolved against. An empty dir disables the loose-file layer.
func NewManager(dir string) *Manager {
	return &Manager{
		dir:   dir,
		cache: NewCache(),
	}
}

// AddArchive opens a BSA archive and adds it to the manager.
// Archives are searched in reverse order (last added = highest priority).
func (m *Manager) AddArchive(path string) error {
	archive, err := bsa.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", path, err)
	}

	m.mu.Lock()
	m.archives = append(m.archives, archive)
	m.mu.Unlock()

	return nil
}

// Load returns the content of the named asset. Paths may use either slash
// style and any case; records reference assets with backslashes.
func (m *Manager) Load(path string) ([]byte, error) {
	key := normalize(path)
	if data, ok := m.cache.Get(key); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if data, ok := m.loadLoose(key); ok {
		m.cache.Set(key, data)
		return data, nil
	}

	for i := len(m.archives) - 1; i >= 0; i-- {
		data, err := m.archives[i].Read(key)
		if err == nil {
			m.cache.Set(key, data)
			return data, nil
		}
	}

	return nil, fmt.Errorf("file not found: %s", path)
}

// Exists reports whether the named asset resolves to a loose file or an
// archive entry, without reading it.
func (m *Manager) Exists(path string) bool {
	key := normalize(path)

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.dir != "" {
		if _, err := os.Stat(filepath.Join(m.dir, filepath.FromSlash(key))); err == nil {
			return true
		}
	}
	for i := len(m.archives) - 1; i >= 0; i-- {
		if m.archives[i].Contains(key) {
			return true
		}
	}
	return false
}

// loadLoose reads key from the data directory. Loose files are expected
// with lowercase names; archives cover the originals.
func (m *Manager) loadLoose(key string) ([]byte, bool) {
	if m.dir == "" {
		return nil, false
	}
	data, err := os.ReadFile(filepath.Join(m.dir, filepath.FromSlash(key)))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Close closes all archives.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, archive := range m.archives {
		archive.Close()
	}
	m.archives = nil
	m.cache.Clear()
}

func normalize(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	return strings.ToLower(path)
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
