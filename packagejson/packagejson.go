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
// Package packagejson reads and caches the package descriptor fields hq
// uses for browser-aware module resolution.
package packagejson

import (
	"encoding/json"
	"strconv"
	"strings"
)

// PackageJSON is the subset of package.json relevant for resolution.
// Unknown fields are dropped on read.
type PackageJSON struct {
	Main    string  `json:"main,omitempty"`
	Module  string  `json:"module,omitempty"`
	Browser Browser `json:"browser,omitzero"`
	Version string  `json:"version,omitempty"`
}

// Browser is the polymorphic browser field of a package descriptor.
// It is either absent, a single path that substitutes the whole package
// entry, or a mapping from request path variants to replacements.
type Browser struct {
	// Main is set when the field is a single string.
	Main string
	// Map is set when the field is a mapping.
	Map map[string]Replacement
}

// Replacement is a browser-map value: a replacement path, or Disabled
// when the package author switched the module off for browser contexts.
type Replacement struct {
	Path     string
	Disabled bool
}

// IsZero reports whether the browser field was absent.
func (b Browser) IsZero() bool {
	return b.Main == "" && b.Map == nil
}

// UnmarshalJSON accepts the string and mapping forms of the browser
// field. Values that fit neither form are dropped rather than rejected;
// missing metadata is a normal condition across the package ecosystem.
func (b *Browser) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		b.Main = single
		return nil
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	b.Map = make(map[string]Replacement, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			b.Map[key] = Replacement{Path: v}
		case bool:
			if !v {
				b.Map[key] = Replacement{Disabled: true}
			}
		}
	}
	return nil
}

// MarshalJSON round-trips the polymorphic forms.
func (b Browser) MarshalJSON() ([]byte, error) {
	if b.Map != nil {
		out := make(map[string]any, len(b.Map))
		for key, rep := range b.Map {
			if rep.Disabled {
				out[key] = false
			} else {
				out[key] = rep.Path
			}
		}
		return json.Marshal(out)
	}
	return json.Marshal(b.Main)
}

// Parse parses package descriptor data.
func Parse(data []byte) (*PackageJSON, error) {
	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// Version holds the parsed numeric components of a semver-like string.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a semantic-version-like string into its numeric
// components. A leading "v" and any pre-release or build suffix on the
// patch component are tolerated. Returns false when the string has no
// leading numeric component.
func ParseVersion(s string) (Version, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	if i := strings.IndexAny(s, "-+"); i >= 0 {
		s = s[:i]
	}

	var v Version
	parts := strings.SplitN(s, ".", 3)
	targets := []*int{&v.Major, &v.Minor, &v.Patch}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			if i == 0 {
				return Version{}, false
			}
			break
		}
		*targets[i] = n
	}
	return v, true
}
