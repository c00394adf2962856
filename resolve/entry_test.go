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
package resolve_test

import (
	"errors"
	"testing"

	"bennypowers.dev/hq/internal/mapfs"
	"bennypowers.dev/hq/probe"
)

func TestResolvePackageMainPriority(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		want       string
	}{
		{
			"module wins",
			`{"main": "cjs.js", "module": "esm.js", "browser": "web.js"}`,
			"esm.js",
		},
		{
			"browser string beats main",
			`{"main": "cjs.js", "browser": "web.js"}`,
			"web.js",
		},
		{
			"main-keyed browser map substitution",
			`{"main": "cjs.js", "browser": {"./cjs.js": "./web.js"}}`,
			"./web.js",
		},
		{
			"plain main",
			`{"main": "cjs.js"}`,
			"cjs.js",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mfs := mapfs.New()
			mfs.AddFile("/app/node_modules/dep/package.json", tt.descriptor, 0644)

			got, err := newResolver(mfs).ResolvePackageMain("/app/node_modules/dep", false)
			if err != nil {
				t.Fatalf("ResolvePackageMain failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("main = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolvePackageMainProbesIndex(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/app/node_modules/dep/package.json", `{}`, 0644)
	mfs.AddFile("/app/node_modules/dep/index.ts", "", 0644)

	got, err := newResolver(mfs).ResolvePackageMain("/app/node_modules/dep", false)
	if err != nil {
		t.Fatalf("ResolvePackageMain failed: %v", err)
	}
	if got != "index.ts" {
		t.Errorf("main = %q, want index.ts", got)
	}
}

func TestResolvePackageMainSearch(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/app/node_modules/dep/package.json", `{"module": "esm.js"}`, 0644)
	mfs.AddFile("/app/node_modules/dep/lib/util.js", "", 0644)

	got, err := newResolver(mfs).ResolvePackageMain("/app/node_modules/dep/lib", true)
	if err != nil {
		t.Fatalf("ResolvePackageMain failed: %v", err)
	}
	if got != "esm.js" {
		t.Errorf("main = %q, want esm.js", got)
	}
}

func TestResolvePackageMainNoIndex(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/app/node_modules/dep/package.json", `{}`, 0644)

	_, err := newResolver(mfs).ResolvePackageMain("/app/node_modules/dep", false)
	if !errors.Is(err, probe.ErrNotFound) {
		t.Fatalf("expected probe.ErrNotFound, got %v", err)
	}
}
