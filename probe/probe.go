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
// Package probe tests candidate source extensions on disk.
package probe

import (
	"errors"
	"fmt"
	"path/filepath"

	hqfs "bennypowers.dev/hq/fs"
)

// ErrNotFound is returned when no candidate extension exists on disk.
var ErrNotFound = errors.New("file not found")

// Candidate extension groups in priority order. Multiple candidates may
// coexist for one base path, so the ordering is load-bearing: index
// markup wins over everything, component dialects over plain modules,
// typed dialects over plain script.
var (
	markupExts    = []string{".html", ".pug"}
	componentExts = []string{".jsx", ".vue", ".svelte"}
	moduleExts    = []string{".mjs", ".es6"}
	dataExts      = []string{".json"}
	typedExts     = []string{".ts", ".tsx"}
	legacyExts    = []string{".coffee"}
	scriptExts    = []string{".js"}
)

// FindExistingExtension probes the candidate extensions for a path that
// carries none, short-circuiting on the first that exists as a regular
// file. Interactive-component dialects lead, markup is probed early for
// index basenames and trails as a catch-all for everything else. The
// empty string means the bare path itself exists.
//
// When nothing exists the returned error wraps ErrNotFound and names the
// probed base path; callers treat this as fatal for the request.
func FindExistingExtension(filesystem hqfs.FileSystem, base string) (string, error) {
	isIndex := filepath.Base(base) == "index"

	var candidates []string
	candidates = append(candidates, componentExts...)
	if isIndex {
		candidates = append(candidates, markupExts...)
	}
	candidates = append(candidates, moduleExts...)
	candidates = append(candidates, dataExts...)
	candidates = append(candidates, typedExts...)
	candidates = append(candidates, legacyExts...)
	candidates = append(candidates, scriptExts...)
	candidates = append(candidates, "")
	if !isIndex {
		candidates = append(candidates, markupExts...)
	}

	for _, ext := range candidates {
		if isFile(filesystem, base+ext) {
			return ext, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, base)
}

// isFile reports whether path exists and is a regular file. Directories
// must not satisfy the bare-path candidate.
func isFile(filesystem hqfs.FileSystem, path string) bool {
	info, err := filesystem.Stat(path)
	return err == nil && !info.IsDir()
}
