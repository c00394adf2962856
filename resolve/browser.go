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
package resolve

import (
	"path"
	"strings"

	"bennypowers.dev/hq/packagejson"
)

// decisionKind tags the outcome of the descriptor filter.
type decisionKind int

const (
	// decisionDefault accepts the underlying algorithm's own choice.
	decisionDefault decisionKind = iota
	// decisionModified forces the rewritten main over the algorithm's
	// relative resolution.
	decisionModified
	// decisionDisabled short-circuits to the empty-module stand-in.
	decisionDisabled
)

// decision is the descriptor filter result consumed by the resolution
// walk. Keeping it a value avoids side-effecting closures over a shared
// result record.
type decision struct {
	kind decisionKind
	main string // effective main entry, relative to the package root
}

// browserKeyVariants are the ordered key transforms tried against a
// browser mapping for each candidate key. Priority order is auditable
// here and exercised in isolation by tests: exact, ./-prefixed,
// ./-prefixed with .js appended, ./-prefixed without extension with .js
// appended.
var browserKeyVariants = []func(string) string{
	func(k string) string { return k },
	func(k string) string { return "./" + strings.TrimPrefix(k, "./") },
	func(k string) string { return "./" + strings.TrimPrefix(k, "./") + ".js" },
	func(k string) string {
		k = strings.TrimPrefix(k, "./")
		return "./" + strings.TrimSuffix(k, path.Ext(k)) + ".js"
	},
}

// lookupBrowserMap tries each key variant in order against the mapping.
func lookupBrowserMap(m map[string]packagejson.Replacement, key string) (packagejson.Replacement, bool) {
	for _, variant := range browserKeyVariants {
		if rep, ok := m[variant(key)]; ok {
			return rep, true
		}
	}
	return packagejson.Replacement{}, false
}

// filterDescriptor normalizes a package descriptor's effective main for
// browser contexts. It runs once per candidate package, before any file
// probing: a disabled entry must win over files that physically exist,
// because the package author switched the module off for browsers.
//
// The field overrides apply in sequence: module, then a whole-package
// browser string, then a browser-mapping match. Mapping keys are tried
// in priority order: the requested sub-path, the original main, the
// module field. A mapping hit marks the decision modified so the path
// filter overrides the algorithm's own relative choice. Note the order
// here is deliberately asymmetric with ResolvePackageMain, which never
// consults a sub-path: sub-path-specific requests win.
func filterDescriptor(pkg *packagejson.PackageJSON, subpath string) decision {
	d := decision{main: pkg.Main}

	if pkg.Module != "" {
		d.main = pkg.Module
	}
	if pkg.Browser.Main != "" {
		d.main = pkg.Browser.Main
	}

	if pkg.Browser.Map != nil {
		for _, key := range []string{subpath, pkg.Main, pkg.Module} {
			if key == "" {
				continue
			}
			rep, ok := lookupBrowserMap(pkg.Browser.Map, key)
			if !ok {
				continue
			}
			if rep.Disabled {
				return decision{kind: decisionDisabled}
			}
			d.kind = decisionModified
			d.main = strings.TrimPrefix(rep.Path, "./")
			return d
		}
	}

	return d
}
