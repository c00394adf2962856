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
// Package plugin loads transform plugins declared in the project config.
//
// Plugin loading is best-effort: a bad config, an unresolvable plugin
// module or a failing factory degrades to zero plugins, never to a
// startup error.
package plugin

import (
	"fmt"
	"sort"
	"sync"
)

// Plugin is the contract a loaded plugin instance satisfies. The
// transform pipeline invokes Transform once a file has been located.
type Plugin interface {
	Name() string
	Transform(path string, src []byte) ([]byte, error)
}

// Factory instantiates a plugin with the arguments declared in the
// project config.
type Factory func(args ...any) (Plugin, error)

// Registry maps plugin names to factories. It is an explicitly owned
// object so tests can construct independent instances; the plugin name
// doubles as the module specifier resolved against the vendor tree.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the given plugin name. Registering the
// same name twice is an error surfaced at startup, not a silent
// override.
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("plugin %q already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[name]
	return factory, ok
}

// Names returns the registered plugin names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
