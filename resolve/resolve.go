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
// Package resolve turns import specifiers into files on disk.
//
// Resolution is Node-style: candidate node_modules directories are
// walked outward from the requesting directory, with the package
// descriptor's browser substitutions applied before extension probing.
package resolve

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/hq/fs"
	"bennypowers.dev/hq/packagejson"
)

// EmptyModuleName is the no-op stand-in served when a browser
// substitution disables a module outright.
const EmptyModuleName = "hq-empty-module.js"

// vendorDir is the dependency-installation directory searched outward
// from a requesting file.
const vendorDir = "node_modules"

// ErrModuleNotFound is returned when no candidate file exists anywhere
// along the search path under any probed extension.
var ErrModuleNotFound = errors.New("module not found")

// extensions are the candidate extensions probed during resolution, in
// priority order.
var extensions = []string{
	".js", ".jsx", ".mjs", ".es6",
	".vue", ".svelte",
	".ts", ".tsx",
	".coffee",
	".css", ".scss", ".less",
	".pug", ".html",
}

// Kind tags a resolution result.
type Kind int

const (
	// KindFile is a concrete file on disk.
	KindFile Kind = iota
	// KindEmptyModule means a browser substitution disabled the target.
	KindEmptyModule
	// KindBuiltin is a platform built-in module, not a file.
	KindBuiltin
)

// Result is the outcome of a resolution request.
type Result struct {
	Kind Kind
	// Path is the filesystem path for KindFile, the empty-module
	// stand-in path for KindEmptyModule, and the namespace marker
	// (builtin name with trailing separator) for KindBuiltin.
	Path string
}

// Logger receives diagnostics during resolution.
type Logger interface {
	Warning(format string, args ...any)
	Debug(format string, args ...any)
}

// Resolver resolves import specifiers against an on-disk module tree.
// The descriptor store is the only shared state; independent resolution
// calls may run concurrently.
type Resolver struct {
	fs         fs.FileSystem
	store      *packagejson.Store
	serverRoot string
	logger     Logger
}

// New creates a Resolver. The server root locates the empty-module
// stand-in for disabled modules.
func New(filesystem fs.FileSystem, serverRoot string) *Resolver {
	return &Resolver{
		fs:         filesystem,
		store:      packagejson.NewStore(filesystem),
		serverRoot: serverRoot,
	}
}

// WithLogger returns a Resolver that logs diagnostics.
func (r *Resolver) WithLogger(logger Logger) *Resolver {
	return &Resolver{
		fs:         r.fs,
		store:      r.store,
		serverRoot: r.serverRoot,
		logger:     logger,
	}
}

// WithStore returns a Resolver sharing the given descriptor store.
func (r *Resolver) WithStore(store *packagejson.Store) *Resolver {
	return &Resolver{
		fs:         r.fs,
		store:      store,
		serverRoot: r.serverRoot,
		logger:     r.logger,
	}
}

// Store returns the resolver's descriptor store.
func (r *Resolver) Store() *packagejson.Store {
	return r.store
}

// Resolve resolves an import specifier from baseDir to exactly one of:
// a file on disk, the empty-module stand-in, or a builtin marker. A
// specifier nothing satisfies fails with ErrModuleNotFound; that error
// is the caller's concern (typically a 404) and is never masked.
func (r *Resolver) Resolve(baseDir, specifier string) (Result, error) {
	name, subpath := SplitSpecifier(specifier)
	if name == "" {
		return Result{}, fmt.Errorf("%w: %s", ErrModuleNotFound, specifier)
	}

	// Built-ins resolve to themselves with a trailing separator so the
	// walk treats them as a namespace, never as a file. The extension
	// prober is bypassed entirely.
	if IsBuiltin(name) {
		return Result{Kind: KindBuiltin, Path: name + "/"}, nil
	}

	for dir := baseDir; ; {
		pkgDir := filepath.Join(dir, vendorDir, name)
		if r.fs.Exists(pkgDir) {
			if res, ok := r.resolveInPackage(pkgDir, subpath); ok {
				return res, nil
			}
			if r.logger != nil {
				r.logger.Debug("no candidate in %s for %s", pkgDir, specifier)
			}
		} else if path, ok := r.probeFile(filepath.Join(pkgDir, subpath)); ok {
			// Single-file modules sit directly in the vendor dir, with or
			// without an extension; there is no package directory to enter.
			return Result{Kind: KindFile, Path: path}, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return Result{}, fmt.Errorf("%w: %s", ErrModuleNotFound, specifier)
}

// resolveInPackage applies the descriptor filter and probes candidate
// files inside one package directory.
func (r *Resolver) resolveInPackage(pkgDir, subpath string) (Result, bool) {
	pkg := r.store.Read(pkgDir, false)

	d := filterDescriptor(pkg, subpath)
	switch d.kind {
	case decisionDisabled:
		// Substitution disabled the target; do not probe for files the
		// author explicitly switched off.
		return Result{
			Kind: KindEmptyModule,
			Path: filepath.Join(r.serverRoot, EmptyModuleName),
		}, true
	case decisionModified:
		// Path filter: the rewritten main replaces whatever relative
		// path the walk would have chosen, sub-path included.
		if path, ok := r.probeFile(filepath.Join(pkgDir, d.main)); ok {
			return Result{Kind: KindFile, Path: path}, true
		}
		return Result{}, false
	}

	target := pkgDir
	switch {
	case subpath != "":
		target = filepath.Join(pkgDir, subpath)
	case d.main != "":
		target = filepath.Join(pkgDir, d.main)
	}

	if path, ok := r.probeFile(target); ok {
		return Result{Kind: KindFile, Path: path}, true
	}
	return Result{}, false
}

// probeFile tries the bare path, then each candidate extension, then
// index files under the path.
func (r *Resolver) probeFile(base string) (string, bool) {
	if r.isFile(base) {
		return base, true
	}
	for _, ext := range extensions {
		if r.isFile(base + ext) {
			return base + ext, true
		}
	}
	for _, ext := range extensions {
		candidate := filepath.Join(base, "index"+ext)
		if r.isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (r *Resolver) isFile(path string) bool {
	info, err := r.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// SplitSpecifier isolates the target package name and optional sub-path
// from an import specifier. The specifier may carry the vendor-root
// marker (a request path like /node_modules/lit/html.js) or be bare
// (lit/html.js). Scoped package names keep both segments.
func SplitSpecifier(specifier string) (name, subpath string) {
	spec := specifier
	if i := strings.LastIndex(spec, "/"+vendorDir+"/"); i >= 0 {
		spec = spec[i+len("/"+vendorDir+"/"):]
	}
	spec = strings.TrimPrefix(spec, "/")
	if spec == "" {
		return "", ""
	}

	segments := 1
	if strings.HasPrefix(spec, "@") {
		segments = 2
	}

	parts := strings.SplitN(spec, "/", segments+1)
	if len(parts) < segments {
		return spec, ""
	}
	name = strings.Join(parts[:segments], "/")
	if len(parts) > segments {
		subpath = parts[segments]
	}
	return name, subpath
}
