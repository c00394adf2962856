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

import (
	"path/filepath"

	hqfs "bennypowers.dev/hq/fs"
)

// DescriptorFile is the package descriptor file name.
const DescriptorFile = "package.json"

// FindPackageRoot walks from dir upward through parent directories until
// a directory containing a package descriptor is found. Returns false
// when the walk reaches the filesystem root without finding one. The
// walk is not memoized; caching belongs to the read step.
func FindPackageRoot(filesystem hqfs.FileSystem, dir string) (string, bool) {
	for {
		if filesystem.Exists(filepath.Join(dir, DescriptorFile)) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Store reads package descriptors through a process-lifetime cache.
// It is an explicitly owned object rather than package state, so tests
// and independent resolvers can construct isolated instances.
type Store struct {
	fs    hqfs.FileSystem
	cache Cache
}

// NewStore creates a Store backed by an in-memory cache.
func NewStore(filesystem hqfs.FileSystem) *Store {
	return &Store{
		fs:    filesystem,
		cache: NewMemoryCache(),
	}
}

// NewStoreWithCache creates a Store with a caller-provided cache.
func NewStoreWithCache(filesystem hqfs.FileSystem, cache Cache) *Store {
	return &Store{fs: filesystem, cache: cache}
}

// Read returns the descriptor for the package at dir. When search is
// true the package root is located first by walking up from dir.
//
// Read never fails: an unlocatable package root, an unreadable file and
// malformed descriptor data all degrade to an empty descriptor, which
// callers treat as "no hints available".
func (s *Store) Read(dir string, search bool) *PackageJSON {
	if search {
		root, ok := FindPackageRoot(s.fs, dir)
		if !ok {
			return &PackageJSON{}
		}
		dir = root
	}

	// The loader always returns nil error so degraded reads are cached
	// like successful ones; re-reading a broken descriptor every request
	// would defeat the cache.
	pkg, _ := s.cache.GetOrLoad(dir, func() (*PackageJSON, error) {
		data, err := s.fs.ReadFile(filepath.Join(dir, DescriptorFile))
		if err != nil {
			return &PackageJSON{}, nil
		}
		pkg, err := Parse(data)
		if err != nil {
			return &PackageJSON{}, nil
		}
		return pkg, nil
	})
	return pkg
}
