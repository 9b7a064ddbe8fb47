// Package assets resolves shader resources from disk or from the copies
// embedded in the binary.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Faultbox/glsandbox/internal/shadersrc"
)

// BasicShader is the name of the default resource inside Embedded.
const BasicShader = "shaders/basic.shader"

// Embedded holds the shader resources shipped with the binary.
//
//go:embed shaders/*.shader
var Embedded embed.FS

// Manager loads shader resources. Paths that exist on disk win over the
// embedded copies so resources can be edited without rebuilding.
type Manager struct {
	fallback fs.FS
	cache    *Cache
}

// NewManager creates a manager backed by the embedded resources.
func NewManager() *Manager {
	return &Manager{
		fallback: Embedded,
		cache:    NewCache(),
	}
}

// Load returns the split source for path. An empty path selects BasicShader.
func (m *Manager) Load(path string) (shadersrc.Source, error) {
	if path == "" {
		path = BasicShader
	}

	if src, ok := m.cache.Get(path); ok {
		return src, nil
	}

	src, err := m.load(path)
	if err != nil {
		return shadersrc.Source{}, err
	}
	m.cache.Set(path, src)
	return src, nil
}

// Reload drops any cached copy of path and loads it again.
func (m *Manager) Reload(path string) (shadersrc.Source, error) {
	if path == "" {
		path = BasicShader
	}
	m.cache.Delete(path)
	return m.Load(path)
}

// CacheStats reports cache hits and misses since the manager was created.
func (m *Manager) CacheStats() (hits, misses int) {
	return m.cache.Stats()
}

func (m *Manager) load(path string) (shadersrc.Source, error) {
	if _, err := os.Stat(path); err == nil {
		return shadersrc.Load(path)
	}

	name := filepath.ToSlash(path)
	if _, err := fs.Stat(m.fallback, name); err == nil {
		return shadersrc.LoadFS(m.fallback, name)
	}

	return shadersrc.Source{}, &shadersrc.LoadError{
		Path: path,
		Err:  fmt.Errorf("not found on disk or embedded: %w", fs.ErrNotExist),
	}
}

// Cache is a simple in-memory cache of parsed resources.
type Cache struct {
	data map[string]shadersrc.Source
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]shadersrc.Source),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (shadersrc.Source, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	src, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return src, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, src shadersrc.Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = src
}

// Delete removes an item from cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
