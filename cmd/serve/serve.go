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

// Package serve provides the serve command for hq.
package serve

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/hq/classify"
	"bennypowers.dev/hq/fs"
	"bennypowers.dev/hq/internal/logger"
	"bennypowers.dev/hq/plugin"
	"bennypowers.dev/hq/probe"
	"bennypowers.dev/hq/resolve"
	"bennypowers.dev/hq/server"
)

// emptyModule is served in place of modules a package descriptor
// disables for browsers, and for Node builtins.
const emptyModule = "export default {};\n"

// Registry holds the plugin factories compiled into this binary.
// Plugins named in the project config are instantiated from here.
var Registry = plugin.NewRegistry()

// Cmd is the serve cobra command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the project with on-the-fly module resolution",
	Long: `Serve the project root over HTTP, resolving bare module specifiers
against node_modules on each request. Dropping a certificate and key pair
anywhere in the project (outside node_modules) switches the server to
HTTPS with HTTP/2.`,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	log := logger.New(viper.GetBool("verbose"))

	root, err := filepath.Abs(viper.GetString("root"))
	if err != nil {
		return fmt.Errorf("invalid root directory: %w", err)
	}

	resolver := resolve.New(osfs, root).WithLogger(log)
	loader := plugin.NewLoader(osfs, resolver, Registry, log)
	plugins := loader.Load(root)
	if len(plugins) > 0 {
		log.Info("loaded %d plugin(s)", len(plugins))
	}

	bootstrap := server.New(osfs, root, viper.GetString("host"), viper.GetInt("port")).
		WithLogger(log)
	listener, err := bootstrap.Listen()
	if err != nil {
		return err
	}

	for _, certPath := range listener.CertPaths {
		log.Info("using certificate file %s", certPath)
	}
	log.Info("serving %s at %s", root, listener.URL())
	if listener.LocalAddress != "" {
		log.Info("network address %s://%s:%d", listener.Scheme, listener.LocalAddress, listener.Port)
	}

	return listener.Serve(&handler{
		fs:       osfs,
		resolver: resolver,
		plugins:  plugins,
		root:     root,
		log:      log,
	})
}

// handler serves project files, resolving vendor-tree requests through
// the module resolver and running script sources through the loaded
// plugins.
type handler struct {
	fs       fs.FileSystem
	resolver *resolve.Resolver
	plugins  []plugin.Plugin
	root     string
	log      *logger.Logger
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	urlPath := path.Clean(r.URL.Path)
	if urlPath == "/" {
		urlPath = "/index.html"
	}

	filePath, ok := h.locate(urlPath)
	if !ok {
		h.log.Debug("404 %s", urlPath)
		http.NotFound(w, r)
		return
	}

	if filepath.Base(filePath) == resolve.EmptyModuleName {
		writeResponse(w, ".js", []byte(emptyModule))
		return
	}

	body, err := h.fs.ReadFile(filePath)
	if err != nil {
		h.log.Warning("reading %s: %v", filePath, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	srcExt := filepath.Ext(filePath)
	ext := classify.ResType(srcExt)
	if ext == ".js" && classify.IsSource(srcExt) {
		body = h.transform(filePath, body)
	}
	writeResponse(w, ext, body)
}

// locate maps a request path to a file on disk. Vendor-tree paths go
// through the module resolver; anything else is probed for a missing
// extension the way a bare import would be.
func (h *handler) locate(urlPath string) (string, bool) {
	if classify.IsVendor(urlPath) {
		result, err := h.resolver.Resolve(h.root, urlPath)
		if err != nil {
			if !errors.Is(err, resolve.ErrModuleNotFound) {
				h.log.Warning("resolving %s: %v", urlPath, err)
			}
			return "", false
		}
		if result.Kind == resolve.KindBuiltin {
			return filepath.Join(h.root, resolve.EmptyModuleName), true
		}
		return result.Path, true
	}

	filePath := filepath.Join(h.root, filepath.FromSlash(urlPath))
	found, err := probe.FindExistingExtension(h.fs, filePath)
	if err != nil {
		return "", false
	}
	return filePath + found, true
}

func (h *handler) transform(filePath string, body []byte) []byte {
	for _, p := range h.plugins {
		out, err := p.Transform(filePath, body)
		if err != nil {
			h.log.Warning("plugin %s failed on %s: %v", p.Name(), filePath, err)
			continue
		}
		body = out
	}
	return body
}

func writeResponse(w http.ResponseWriter, ext string, body []byte) {
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(body)
}
