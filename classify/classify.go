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
// Package classify provides pure predicates over normalized request paths.
//
// Request paths are forward-slash, rooted at the project root, case
// preserved. None of these functions touch the filesystem; unmatched
// input yields false or the identity value.
package classify

import (
	"path"
	"regexp"
	"slices"
	"strings"
)

// ScriptExtensions are the script-family source dialects hq serves,
// in the candidate order used by module resolution.
var ScriptExtensions = []string{
	".js", ".jsx", ".mjs", ".es6",
	".vue", ".svelte",
	".ts", ".tsx",
	".coffee",
}

// StyleExtensions are the stylesheet-family source dialects.
var StyleExtensions = []string{".css", ".scss", ".sass", ".less"}

// MarkupExtensions are the markup-family source dialects.
var MarkupExtensions = []string{".html", ".pug"}

// polyfillPackages is the allow-list of vendor packages that are served
// untransformed as polyfills.
var polyfillPackages = []string{
	"@babel/polyfill",
	"@webcomponents/webcomponentsjs",
	"abortcontroller-polyfill",
	"core-js",
	"intersection-observer",
	"regenerator-runtime",
	"url-polyfill",
	"whatwg-fetch",
}

// workerPattern matches worker/sw as a whole-word token, optionally
// followed by digits, anywhere in a file name.
var workerPattern = regexp.MustCompile(`(?i)(?:^|[^a-z0-9])(?:worker|sw)\d*(?:[^a-z0-9]|$)`)

// IsVendor reports whether the path points into the vendor tree.
func IsVendor(p string) bool {
	return strings.HasPrefix(p, "/node_modules/")
}

// IsPolyfill reports whether the path resolves into one of the known
// polyfill packages under the vendor tree, either the package directory
// itself or any sub-path of it.
func IsPolyfill(p string) bool {
	for _, pkg := range polyfillPackages {
		root := "/node_modules/" + pkg
		if p == root || strings.HasPrefix(p, root+"/") {
			return true
		}
	}
	return false
}

// IsTest reports whether the path is under the project test directory.
func IsTest(p string) bool {
	return strings.HasPrefix(p, "/test/")
}

// IsWorker reports whether the file name designates a web worker or
// service worker script. The worker token must be a whole word:
// worker2.js matches, workers-utils.js does not.
func IsWorker(p string) bool {
	base := path.Base(p)
	name := strings.TrimSuffix(base, path.Ext(base))
	return workerPattern.MatchString(name)
}

// IsMap reports whether the path is a source map.
func IsMap(p string) bool {
	return strings.HasSuffix(p, ".map")
}

// IsDefaultFavicon reports whether the path is the default favicon request.
func IsDefaultFavicon(p string) bool {
	return p == "/favicon.ico"
}

// IsAngularCompiler reports whether the path resolves into the Angular
// compiler package, which gets special-cased by the transform pipeline.
func IsAngularCompiler(p string) bool {
	return strings.Contains(p, "@angular/compiler")
}

// IsInternal reports whether the path is one of hq's own helper modules,
// identified by the tool prefix on the file name.
func IsInternal(p string) bool {
	return strings.HasPrefix(path.Base(p), "hq-")
}

// IsCertificate reports whether the path is one of the known certificate
// files discovered at startup.
func IsCertificate(p string, certificates []string) bool {
	return slices.Contains(certificates, p)
}

// IsSource reports whether the extension is a recognized source dialect:
// script family, markup, stylesheet family, or source maps.
func IsSource(ext string) bool {
	return slices.Contains(ScriptExtensions, ext) ||
		slices.Contains(StyleExtensions, ext) ||
		slices.Contains(MarkupExtensions, ext) ||
		ext == ".map"
}

// ResType maps a source dialect extension to its compiled output
// extension: all script-like dialects compile to .js, stylesheet
// preprocessors to .css, the markup preprocessor to .html. Unrecognized
// extensions pass through unchanged, which makes ResType idempotent.
func ResType(ext string) string {
	switch {
	case slices.Contains(ScriptExtensions, ext):
		return ".js"
	case slices.Contains(StyleExtensions, ext):
		return ".css"
	case slices.Contains(MarkupExtensions, ext):
		return ".html"
	default:
		return ext
	}
}
