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
// Package server bootstraps the dev-server listener.
//
// Startup detects TLS material under the project root, picks the
// transport accordingly, and recovers from port collisions by retrying
// successive ports up to a fixed ceiling.
package server

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/net/http2"

	"bennypowers.dev/hq/fs"
	"bennypowers.dev/hq/resolve"
)

// maxBindRetries is the retry ceiling for port collisions. Dev servers
// routinely collide with other local processes on the default port, so
// failing startup on the first collision is poor ergonomics; past the
// ceiling the bind error is fatal.
const maxBindRetries = 30

// Bootstrap probes for TLS material and binds the listener.
type Bootstrap struct {
	fs     fs.FileSystem
	root   string
	host   string
	port   int
	logger resolve.Logger

	// listen is swappable for tests
	listen func(network, address string) (net.Listener, error)
}

// New creates a Bootstrap for the project at root.
func New(filesystem fs.FileSystem, root, host string, port int) *Bootstrap {
	return &Bootstrap{
		fs:     filesystem,
		root:   root,
		host:   host,
		port:   port,
		listen: net.Listen,
	}
}

// WithLogger returns a Bootstrap that logs bind retries.
func (b *Bootstrap) WithLogger(logger resolve.Logger) *Bootstrap {
	clone := *b
	clone.logger = logger
	return &clone
}

// Listener is a bound dev-server listener.
type Listener struct {
	net.Listener
	// Scheme is the negotiated protocol scheme, http or https.
	Scheme string
	Host   string
	Port   int
	// LocalAddress is the network-visible address, for operator-facing
	// messages only; routing never consults it.
	LocalAddress string
	// CertPaths are the discovered certificate files with the
	// project-root prefix stripped for display.
	CertPaths []string

	tlsConfig *tls.Config
}

// Listen discovers TLS material, chooses the transport, and binds the
// host and port, incrementing the port on collision up to the retry
// ceiling. Cert material, once read, is immutable; the port is the only
// state that changes across attempts.
func (b *Bootstrap) Listen() (*Listener, error) {
	certs := DiscoverCertificates(b.fs, b.root)

	scheme := "http"
	var tlsConfig *tls.Config
	if certs.Found() {
		config, err := b.loadTLS(certs)
		if err != nil {
			return nil, fmt.Errorf("loading TLS material: %w", err)
		}
		tlsConfig = config
		scheme = "https"
	}

	port := b.port
	var lastErr error
	for attempt := 0; attempt <= maxBindRetries; attempt++ {
		ln, err := b.listen("tcp", net.JoinHostPort(b.host, strconv.Itoa(port)))
		if err == nil {
			return &Listener{
				Listener:     ln,
				Scheme:       scheme,
				Host:         b.host,
				Port:         port,
				LocalAddress: localAddress(),
				CertPaths:    certs.DisplayPaths(b.root),
				tlsConfig:    tlsConfig,
			}, nil
		}
		lastErr = err
		if b.logger != nil {
			b.logger.Warning("port %d unavailable, trying %d", port, port+1)
		}
		port++
	}

	return nil, fmt.Errorf("no free port after %d retries: %w", maxBindRetries, lastErr)
}

// loadTLS reads the discovered material into a TLS config.
func (b *Bootstrap) loadTLS(certs Certificates) (*tls.Config, error) {
	certPEM, err := b.fs.ReadFile(certs.CertFile)
	if err != nil {
		return nil, err
	}
	keyPEM, err := b.fs.ReadFile(certs.KeyFile)
	if err != nil {
		return nil, err
	}
	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, err
	}
	return &tls.Config{Certificates: []tls.Certificate{cert}}, nil
}

// Serve serves handler on the bound listener. The secure transport is
// HTTP/2 with HTTP/1.1 fallback negotiated over ALPN; without TLS
// material the transport is plain HTTP/1.1.
func (l *Listener) Serve(handler http.Handler) error {
	srv := &http.Server{Handler: handler}
	if l.tlsConfig == nil {
		return srv.Serve(l.Listener)
	}

	srv.TLSConfig = l.tlsConfig
	if err := http2.ConfigureServer(srv, &http2.Server{}); err != nil {
		return err
	}
	return srv.Serve(tls.NewListener(l.Listener, srv.TLSConfig))
}

// URL returns the operator-facing address of the bound listener.
func (l *Listener) URL() string {
	return fmt.Sprintf("%s://%s", l.Scheme, net.JoinHostPort(l.Host, strconv.Itoa(l.Port)))
}

// localAddress returns the first non-loopback IPv4 address, if any.
func localAddress() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String()
		}
	}
	return ""
}
