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
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	hqfs "bennypowers.dev/hq/fs"
)

// configFiles are the supported project config file names in priority
// order. The bare .hqrc and .hqrc.json forms are parsed as JSON with
// comments.
var configFiles = []string{".hqrc", ".hqrc.json", ".hqrc.yaml", ".hqrc.yml"}

// Config is the project configuration consumed by the plugin loader.
type Config struct {
	Plugins []Spec `json:"plugins" yaml:"plugins"`
}

// Spec is one plugins-list entry: either a bare module name, or a
// [name, ...arguments] pair.
type Spec struct {
	Name string
	Args []any
}

// UnmarshalJSON accepts the string and array entry forms.
func (s *Spec) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		s.Name = name
		return nil
	}

	var entry []any
	if err := json.Unmarshal(data, &entry); err != nil {
		return fmt.Errorf("plugin entry must be a name or [name, ...args]")
	}
	if len(entry) == 0 {
		return fmt.Errorf("plugin entry must not be empty")
	}
	name, ok := entry[0].(string)
	if !ok {
		return fmt.Errorf("plugin entry must start with a name")
	}
	s.Name = name
	s.Args = entry[1:]
	return nil
}

// UnmarshalYAML accepts the same entry forms from YAML configs.
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&s.Name)
	}

	var entry []any
	if err := node.Decode(&entry); err != nil {
		return fmt.Errorf("plugin entry must be a name or [name, ...args]")
	}
	if len(entry) == 0 {
		return fmt.Errorf("plugin entry must not be empty")
	}
	name, ok := entry[0].(string)
	if !ok {
		return fmt.Errorf("plugin entry must start with a name")
	}
	s.Name = name
	s.Args = entry[1:]
	return nil
}

// ReadConfig finds and parses the project config under rootDir. Returns
// nil when no config file exists or the file cannot be parsed; a
// missing config is a normal condition.
func ReadConfig(filesystem hqfs.FileSystem, rootDir string) *Config {
	for _, name := range configFiles {
		path := filepath.Join(rootDir, name)
		if !filesystem.Exists(path) {
			continue
		}

		data, err := filesystem.ReadFile(path)
		if err != nil {
			return nil
		}

		cfg := &Config{}
		switch filepath.Ext(name) {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil
			}
		default:
			if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
				return nil
			}
		}
		return cfg
	}
	return nil
}
