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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractStaticImports(t *testing.T) {
	src := []byte(`
import { html } from 'lit';
import './styles.css';
export { render } from './render.js';
`)
	imports, err := ExtractImports(src)
	require.NoError(t, err)
	require.Len(t, imports, 3)
	assert.Equal(t, "lit", imports[0].Specifier)
	assert.False(t, imports[0].IsDynamic)
	assert.Equal(t, uint(2), imports[0].Line)
	assert.Equal(t, "./styles.css", imports[1].Specifier)
	assert.Equal(t, "./render.js", imports[2].Specifier)
}

func TestExtractDynamicImports(t *testing.T) {
	src := []byte(`const mod = await import('some-package/lazy.js');`)
	imports, err := ExtractImports(src)
	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.Equal(t, "some-package/lazy.js", imports[0].Specifier)
	assert.True(t, imports[0].IsDynamic)
}

func TestExtractNoImports(t *testing.T) {
	imports, err := ExtractImports([]byte(`const x = 1;`))
	require.NoError(t, err)
	assert.Empty(t, imports)
}

func TestExtractTypeScriptSource(t *testing.T) {
	src := []byte(`
import type { Foo } from './types.js';
const n: number = 1;
`)
	imports, err := ExtractImports(src)
	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.Equal(t, "./types.js", imports[0].Specifier)
}
