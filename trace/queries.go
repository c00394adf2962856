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
// Package trace extracts import specifiers from source files and feeds
// them through the module resolver.
package trace

import (
	"embed"
	"fmt"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"
	tsTypescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

//go:embed queries/typescript/imports.scm
var queryFiles embed.FS

// typescriptLanguage covers plain JavaScript as well; its grammar is a
// superset.
var typescriptLanguage = ts.NewLanguage(tsTypescript.LanguageTypescript())

// parserPool reuses parsers across extractions.
var parserPool = sync.Pool{
	New: func() any {
		parser := ts.NewParser()
		if err := parser.SetLanguage(typescriptLanguage); err != nil {
			panic("failed to set TypeScript language: " + err.Error())
		}
		return parser
	},
}

func getParser() *ts.Parser {
	return parserPool.Get().(*ts.Parser)
}

func putParser(p *ts.Parser) {
	p.Reset()
	parserPool.Put(p)
}

// Compiled query singleton.
var (
	importsQuery     *ts.Query
	importsQueryOnce sync.Once
	importsQueryErr  error
)

func getImportsQuery() (*ts.Query, error) {
	importsQueryOnce.Do(func() {
		data, err := queryFiles.ReadFile("queries/typescript/imports.scm")
		if err != nil {
			importsQueryErr = fmt.Errorf("failed to read imports query: %w", err)
			return
		}
		query, qerr := ts.NewQuery(typescriptLanguage, string(data))
		if qerr != nil {
			importsQueryErr = fmt.Errorf("failed to parse imports query: %w", qerr)
			return
		}
		importsQuery = query
	})
	return importsQuery, importsQueryErr
}
