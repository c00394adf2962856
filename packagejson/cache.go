/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package packagejson

import "sync"

// Cache memoizes parsed package descriptors keyed by package directory.
// Descriptors are immutable for the process lifetime: package contents
// are assumed static during a dev session, so there is no invalidation.
type Cache interface {
	// Get retrieves a cached descriptor by package directory.
	Get(dir string) (*PackageJSON, bool)

	// Set stores a parsed descriptor keyed by package directory.
	Set(dir string, pkg *PackageJSON)

	// GetOrLoad atomically retrieves from cache or loads using the
	// provided function. Only one goroutine executes the loader for a
	// given directory; others wait for the result.
	GetOrLoad(dir string, loader func() (*PackageJSON, error)) (*PackageJSON, error)
}

// cacheEntry holds a cached value and coordinates concurrent loading.
type cacheEntry struct {
	pkg  *PackageJSON
	err  error
	once sync.Once
}

// MemoryCache is a thread-safe in-memory implementation of Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	cache   map[string]*PackageJSON
	loading sync.Map // map[string]*cacheEntry for in-flight loads
}

// NewMemoryCache creates a new in-memory descriptor cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: make(map[string]*PackageJSON),
	}
}

// Get retrieves a cached descriptor by package directory.
func (c *MemoryCache) Get(dir string) (*PackageJSON, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pkg, ok := c.cache[dir]
	return pkg, ok
}

// Set stores a parsed descriptor in the cache.
func (c *MemoryCache) Set(dir string, pkg *PackageJSON) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[dir] = pkg
}

// GetOrLoad atomically retrieves from cache or loads using the provided
// function. Only one goroutine will execute the loader for a given
// directory; others wait for the result.
func (c *MemoryCache) GetOrLoad(dir string, loader func() (*PackageJSON, error)) (*PackageJSON, error) {
	// Fast path: check if already cached
	c.mu.RLock()
	if pkg, ok := c.cache[dir]; ok {
		c.mu.RUnlock()
		return pkg, nil
	}
	c.mu.RUnlock()

	// Get or create an entry for this directory - all concurrent
	// goroutines get the same entry
	actual, _ := c.loading.LoadOrStore(dir, &cacheEntry{})
	entry := actual.(*cacheEntry)

	// Only one goroutine executes the loader; others block until once.Do completes
	entry.once.Do(func() {
		entry.pkg, entry.err = loader()
		if entry.err == nil {
			c.mu.Lock()
			c.cache[dir] = entry.pkg
			c.mu.Unlock()
		}
	})

	// Entries stay in c.loading for the process lifetime. They are small
	// (sync.Once + pointers) and bounded by unique package directories,
	// which matches the no-invalidation cache contract.

	return entry.pkg, entry.err
}
