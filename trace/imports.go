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
package trace

import (
	"fmt"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// ModuleImport is one import specifier found in a source file.
type ModuleImport struct {
	// Specifier is the literal string the module was imported with.
	Specifier string
	// IsDynamic is true for import() expressions.
	IsDynamic bool
	// Line is the 1-based source line of the specifier.
	Line uint
}

// ExtractImports parses src as TypeScript (which covers JavaScript) and
// returns every static import, re-export source, and dynamic import
// specifier in document order.
func ExtractImports(src []byte) ([]ModuleImport, error) {
	parser := getParser()
	defer putParser(parser)

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse source")
	}
	defer tree.Close()

	query, err := getImportsQuery()
	if err != nil {
		return nil, err
	}

	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	var imports []ModuleImport
	matches := cursor.Matches(query, tree.RootNode(), src)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, capture := range match.Captures {
			name := query.CaptureNames()[capture.Index]
			node := capture.Node
			imports = append(imports, ModuleImport{
				Specifier: node.Utf8Text(src),
				IsDynamic: name == "import.dynamic",
				Line:      uint(node.StartPosition().Row) + 1,
			})
		}
	}
	return imports, nil
}
