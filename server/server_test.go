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
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/hq/internal/mapfs"
)

func TestDiscoverCertificates(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/app/certs/server.pem", "cert", 0644)
	mfs.AddFile("/app/certs/server-key.pem", "key", 0600)
	mfs.AddFile("/app/src/main.js", "", 0644)

	certs := DiscoverCertificates(mfs, "/app")
	require.True(t, certs.Found())
	assert.Equal(t, "/app/certs/server-key.pem", certs.KeyFile)
	assert.Equal(t, "/app/certs/server.pem", certs.CertFile)
	assert.Equal(t, []string{"certs/server-key.pem", "certs/server.pem"}, certs.DisplayPaths("/app"))
}

func TestDiscoverCertificatesSkipsVendorTree(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/app/node_modules/dep/test/server.pem", "cert", 0644)
	mfs.AddFile("/app/node_modules/dep/test/server-key.pem", "key", 0600)

	certs := DiscoverCertificates(mfs, "/app")
	assert.False(t, certs.Found())
	assert.Empty(t, certs.Paths)
}

func TestDiscoverCertificatesSingleFile(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/app/server.pem", "cert", 0644)

	// One file is not a pair; transport stays plain
	certs := DiscoverCertificates(mfs, "/app")
	assert.False(t, certs.Found())
}

func TestIsKeyFile(t *testing.T) {
	assert.True(t, isKeyFile("/app/server-key.pem"))
	assert.True(t, isKeyFile("/app/privkey.pem"))
	assert.True(t, isKeyFile("/app/KEY.pem"))
	assert.False(t, isKeyFile("/app/server.pem"))
	assert.False(t, isKeyFile("/app/fullchain.pem"))
	assert.False(t, isKeyFile("/app/keynote.pem"))
}

func TestListenPlainTransport(t *testing.T) {
	b := New(mapfs.New(), "/app", "127.0.0.1", 0)

	ln, err := b.Listen()
	require.NoError(t, err)
	defer ln.Close()

	assert.Equal(t, "http", ln.Scheme)
	assert.Empty(t, ln.CertPaths)
}

func TestListenRetriesNextPort(t *testing.T) {
	// Occupy a port, then bootstrap onto the same one
	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer occupied.Close()
	port := occupied.Addr().(*net.TCPAddr).Port

	b := New(mapfs.New(), "/app", "127.0.0.1", port)
	ln, err := b.Listen()
	require.NoError(t, err)
	defer ln.Close()

	assert.Equal(t, port+1, ln.Port)
}

func TestListenRetryCeiling(t *testing.T) {
	bindErr := errors.New("address already in use")
	attempts := 0

	b := New(mapfs.New(), "/app", "127.0.0.1", 8080)
	b.listen = func(network, address string) (net.Listener, error) {
		attempts++
		return nil, bindErr
	}

	_, err := b.Listen()
	require.Error(t, err)
	assert.ErrorIs(t, err, bindErr)
	// Initial attempt plus the full retry budget
	assert.Equal(t, maxBindRetries+1, attempts)
}
