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
	"path/filepath"
	"strings"

	"bennypowers.dev/hq/packagejson"
	"bennypowers.dev/hq/probe"
)

// ResolvePackageMain computes the default entry file for the package at
// dir, relative to the package root. When search is true the package
// root is located by walking up from dir first.
//
// Priority encodes the convention that an alternate-module-system entry
// (module) and a browser-environment override both beat the generic
// main: module; a whole-package browser string; a browser-mapping
// substitution keyed by the main field (plain or ./-prefixed); main;
// and as a last resort an index file found by extension probing.
func (r *Resolver) ResolvePackageMain(dir string, search bool) (string, error) {
	if search {
		if root, ok := packagejson.FindPackageRoot(r.fs, dir); ok {
			dir = root
		}
	}
	pkg := r.store.Read(dir, false)

	if pkg.Module != "" {
		return pkg.Module, nil
	}
	if pkg.Browser.Main != "" {
		return pkg.Browser.Main, nil
	}
	if pkg.Browser.Map != nil && pkg.Main != "" {
		for _, key := range []string{pkg.Main, "./" + strings.TrimPrefix(pkg.Main, "./")} {
			if rep, ok := pkg.Browser.Map[key]; ok && !rep.Disabled && rep.Path != "" {
				return rep.Path, nil
			}
		}
	}
	if pkg.Main != "" {
		return pkg.Main, nil
	}

	ext, err := probe.FindExistingExtension(r.fs, filepath.Join(dir, "index"))
	if err != nil {
		return "", err
	}
	return "index" + ext, nil
}
