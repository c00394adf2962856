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
package plugin

import (
	"bennypowers.dev/hq/fs"
	"bennypowers.dev/hq/resolve"
)

// Loader reads the project config and instantiates the declared
// plugins. It runs once at startup, before requests are served.
type Loader struct {
	fs       fs.FileSystem
	resolver *resolve.Resolver
	registry *Registry
	logger   resolve.Logger
}

// NewLoader creates a plugin Loader.
func NewLoader(filesystem fs.FileSystem, resolver *resolve.Resolver, registry *Registry, logger resolve.Logger) *Loader {
	return &Loader{
		fs:       filesystem,
		resolver: resolver,
		registry: registry,
		logger:   logger,
	}
}

// Load resolves and instantiates the plugins declared under rootDir.
//
// Every failure path degrades: no config or a malformed one yields zero
// plugins, and a plugin whose module cannot be resolved in the vendor
// tree or whose factory errors is skipped with a warning. Plugins are
// an optional enhancement; they never block startup.
func (l *Loader) Load(rootDir string) []Plugin {
	cfg := ReadConfig(l.fs, rootDir)
	if cfg == nil {
		return nil
	}

	var plugins []Plugin
	for _, spec := range cfg.Plugins {
		// The plugin module must exist in the vendor tree, exactly like
		// a dynamic require of its package
		if _, err := l.resolver.Resolve(rootDir, spec.Name); err != nil {
			if l.logger != nil {
				l.logger.Warning("plugin %s not found: %v", spec.Name, err)
			}
			continue
		}

		factory, ok := l.registry.Lookup(spec.Name)
		if !ok {
			if l.logger != nil {
				l.logger.Warning("plugin %s has no registered factory", spec.Name)
			}
			continue
		}

		instance, err := factory(spec.Args...)
		if err != nil {
			if l.logger != nil {
				l.logger.Warning("plugin %s failed to initialize: %v", spec.Name, err)
			}
			continue
		}
		plugins = append(plugins, instance)
	}
	return plugins
}
