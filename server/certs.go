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
package server

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	hqfs "bennypowers.dev/hq/fs"
)

// certPattern matches candidate TLS material anywhere under the project
// root.
const certPattern = "**/*.pem"

// Certificates is the TLS material discovered under a project root.
type Certificates struct {
	CertFile string
	KeyFile  string
	// Paths are all discovered candidate files, in walk order.
	Paths []string
}

// Found reports whether both a certificate and a key were discovered.
func (c Certificates) Found() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

// DisplayPaths returns the certificate paths with the project-root
// prefix stripped, for operator-facing messages.
func (c Certificates) DisplayPaths(rootDir string) []string {
	display := make([]string, len(c.Paths))
	for i, p := range c.Paths {
		display[i] = strings.TrimPrefix(strings.TrimPrefix(p, rootDir), "/")
	}
	return display
}

// DiscoverCertificates scans the project root for certificate-like
// files, excluding the vendor tree. Only the first two discovered files
// are inspected: a file whose name ends in the key-naming convention is
// the key, anything else is the certificate.
func DiscoverCertificates(filesystem hqfs.FileSystem, rootDir string) Certificates {
	var certs Certificates

	_ = fs.WalkDir(filesystem, rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == "node_modules" {
				return fs.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(rootDir, path)
		if relErr != nil {
			return nil
		}
		if ok, _ := doublestar.Match(certPattern, filepath.ToSlash(rel)); ok {
			certs.Paths = append(certs.Paths, path)
		}
		return nil
	})

	if len(certs.Paths) < 2 {
		return certs
	}

	for _, p := range certs.Paths[:2] {
		if isKeyFile(p) {
			certs.KeyFile = p
		} else {
			certs.CertFile = p
		}
	}
	return certs
}

// isKeyFile reports whether a .pem file follows the key-naming
// convention (server-key.pem, privkey.pem and the like).
func isKeyFile(path string) bool {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.HasSuffix(strings.ToLower(name), "key")
}
