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

// Package trace provides the trace command for hq.
package trace

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/hq/fs"
	"bennypowers.dev/hq/internal/logger"
	"bennypowers.dev/hq/probe"
	"bennypowers.dev/hq/resolve"
	"bennypowers.dev/hq/trace"
)

// Cmd is the trace cobra command. It parses a source file, extracts its
// import specifiers, and resolves each one against node_modules.
var Cmd = &cobra.Command{
	Use:   "trace <file.js>",
	Short: "Resolve every import in a source file",
	Long: `Trace a JavaScript or TypeScript file, extract its static and dynamic
imports, and resolve each specifier the way the dev server would.`,
	Example: `  # Show where each import of a module resolves to
  hq trace src/app.js

  # Machine-readable output
  hq trace src/app.js --format json`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
}

// tracedImport is one resolved specifier in json output.
type tracedImport struct {
	Specifier string `json:"specifier"`
	Dynamic   bool   `json:"dynamic,omitempty"`
	Line      uint   `json:"line"`
	Resolved  string `json:"resolved,omitempty"`
	Error     string `json:"error,omitempty"`
}

// resolveSpecifier resolves one import. Relative specifiers are probed
// against the importing file's directory; bare specifiers go through the
// node_modules resolver.
func resolveSpecifier(filesystem fs.FileSystem, resolver *resolve.Resolver, baseDir, specifier string) (string, error) {
	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") {
		base := filepath.Join(baseDir, filepath.FromSlash(specifier))
		ext, err := probe.FindExistingExtension(filesystem, base)
		if err != nil {
			return "", err
		}
		return base + ext, nil
	}
	result, err := resolver.Resolve(baseDir, specifier)
	if err != nil {
		return "", err
	}
	return result.Path, nil
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	log := logger.New(viper.GetBool("verbose"))

	file, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid file path %q: %w", args[0], err)
	}

	root, err := filepath.Abs(viper.GetString("root"))
	if err != nil {
		return fmt.Errorf("invalid root directory: %w", err)
	}

	src, err := osfs.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}

	imports, err := trace.ExtractImports(src)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", file, err)
	}

	resolver := resolve.New(osfs, root).WithLogger(log)
	baseDir := filepath.Dir(file)

	traced := make([]tracedImport, 0, len(imports))
	for _, imp := range imports {
		entry := tracedImport{
			Specifier: imp.Specifier,
			Dynamic:   imp.IsDynamic,
			Line:      imp.Line,
		}
		resolved, err := resolveSpecifier(osfs, resolver, baseDir, imp.Specifier)
		if err != nil {
			entry.Error = err.Error()
		} else {
			entry.Resolved = resolved
		}
		traced = append(traced, entry)
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		out, err := json.MarshalIndent(traced, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling trace output: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	default:
		for _, entry := range traced {
			kind := "import"
			if entry.Dynamic {
				kind = "import()"
			}
			if entry.Error != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d %-9s %s  !! %s\n", entry.Line, kind, entry.Specifier, entry.Error)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%4d %-9s %s  -> %s\n", entry.Line, kind, entry.Specifier, entry.Resolved)
		}
	}
	return nil
}
