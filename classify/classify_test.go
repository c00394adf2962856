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
package classify_test

import (
	"testing"

	"bennypowers.dev/hq/classify"
)

func TestIsVendor(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/node_modules/lit/index.js", true},
		{"/node_modules/@scope/pkg/index.js", true},
		{"/src/node_modules.js", false},
		{"/index.js", false},
	}
	for _, tt := range tests {
		if got := classify.IsVendor(tt.path); got != tt.want {
			t.Errorf("IsVendor(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsPolyfill(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/node_modules/core-js", true},
		{"/node_modules/core-js/modules/es.array.from.js", true},
		{"/node_modules/@babel/polyfill/dist/polyfill.js", true},
		{"/node_modules/core-js-pure/index.js", false},
		{"/node_modules/lit/index.js", false},
		{"/src/core-js/index.js", false},
	}
	for _, tt := range tests {
		if got := classify.IsPolyfill(tt.path); got != tt.want {
			t.Errorf("IsPolyfill(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsWorker(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/src/worker.js", true},
		{"/src/worker2.js", true},
		{"/src/sw.js", true},
		{"/src/sw3.ts", true},
		{"/src/my-worker.js", true},
		{"/src/Worker.js", true},
		{"/src/workers-utils.js", false},
		{"/src/swim.js", false},
		{"/src/password.js", false},
		{"/src/app.js", false},
	}
	for _, tt := range tests {
		if got := classify.IsWorker(tt.path); got != tt.want {
			t.Errorf("IsWorker(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSimplePredicates(t *testing.T) {
	if !classify.IsTest("/test/spec.js") {
		t.Error("expected /test/spec.js to be a test path")
	}
	if classify.IsTest("/src/test.js") {
		t.Error("expected /src/test.js not to be a test path")
	}
	if !classify.IsMap("/dist/app.js.map") {
		t.Error("expected .map suffix to classify as map")
	}
	if !classify.IsDefaultFavicon("/favicon.ico") {
		t.Error("expected /favicon.ico to be the default favicon")
	}
	if classify.IsDefaultFavicon("/icons/favicon.ico") {
		t.Error("default favicon must be an exact match")
	}
	if !classify.IsAngularCompiler("/node_modules/@angular/compiler/index.js") {
		t.Error("expected @angular/compiler path to match")
	}
	if !classify.IsInternal("/hq-empty-module.js") {
		t.Error("expected hq- prefixed file to be internal")
	}
	if classify.IsInternal("/src/app.js") {
		t.Error("expected plain source file not to be internal")
	}
}

func TestIsCertificate(t *testing.T) {
	certs := []string{"/server.pem", "/server-key.pem"}
	if !classify.IsCertificate("/server.pem", certs) {
		t.Error("expected listed certificate path to match")
	}
	if classify.IsCertificate("/other.pem", certs) {
		t.Error("expected unlisted path not to match")
	}
}

func TestIsSource(t *testing.T) {
	for _, ext := range []string{".js", ".jsx", ".ts", ".tsx", ".vue", ".svelte", ".coffee", ".css", ".scss", ".sass", ".less", ".html", ".pug", ".map"} {
		if !classify.IsSource(ext) {
			t.Errorf("IsSource(%q) = false, want true", ext)
		}
	}
	for _, ext := range []string{".png", ".json", ".wasm", ""} {
		if classify.IsSource(ext) {
			t.Errorf("IsSource(%q) = true, want false", ext)
		}
	}
}

func TestResType(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".js", ".js"},
		{".jsx", ".js"},
		{".ts", ".js"},
		{".vue", ".js"},
		{".svelte", ".js"},
		{".coffee", ".js"},
		{".css", ".css"},
		{".scss", ".css"},
		{".sass", ".css"},
		{".less", ".css"},
		{".pug", ".html"},
		{".html", ".html"},
		{".png", ".png"},
	}
	for _, tt := range tests {
		if got := classify.ResType(tt.ext); got != tt.want {
			t.Errorf("ResType(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestResTypeIdempotent(t *testing.T) {
	exts := append([]string{}, classify.ScriptExtensions...)
	exts = append(exts, classify.StyleExtensions...)
	exts = append(exts, classify.MarkupExtensions...)
	for _, ext := range exts {
		once := classify.ResType(ext)
		twice := classify.ResType(once)
		if once != twice {
			t.Errorf("ResType not idempotent for %q: %q != %q", ext, once, twice)
		}
	}
}
