//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turin-lang/turinc/internal/ast"
	"github.com/turin-lang/turinc/internal/provider"
)

func intType() ast.TypeUsage { return &ast.PrimitiveTypeUsage{Kind: ast.IntType} }

// fooUnit declares an in-source type "Foo" with no properties, standing
// in for the hypothetical JDK "Foo" a composed [in-source, jdk] resolver
// must shadow (spec.md §8 scenario 5).
func fooUnit() (*ast.CompilationUnit, *ast.Tree) {
	cu := &ast.CompilationUnit{
		Namespace: "demo",
		Declarations: []ast.Declaration{
			&ast.TypeDeclaration{Kind: ast.ClassKind, Name: "Foo"},
		},
	}
	tree, err := ast.LinkParents(cu)
	if err != nil {
		panic(err)
	}
	return cu, tree
}

func TestResolver_InSourceShadowsJDK(t *testing.T) {
	cu, tree := fooUnit()
	inSource := provider.NewInSourceProvider([]*ast.CompilationUnit{cu})
	jdk := provider.NewReflectiveProvider()

	r := Compose([]*ast.Tree{tree}, inSource, jdk)

	def, ok, err := r.ResolveTypeDefinition("String", cu)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "java.lang.String", def.CanonicalName())

	def, ok, err = r.ResolveTypeDefinition("Foo", cu)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "demo.Foo", def.CanonicalName())
}

func TestResolver_HasPackage(t *testing.T) {
	cu, tree := fooUnit()
	inSource := provider.NewInSourceProvider([]*ast.CompilationUnit{cu})
	jdk := provider.NewReflectiveProvider()
	r := Compose([]*ast.Tree{tree}, inSource, jdk)

	assert.True(t, r.HasPackage("demo"))
	assert.True(t, r.HasPackage("java.lang"))
	assert.False(t, r.HasPackage("nowhere"))
}

func TestResolver_ResolveSymbol(t *testing.T) {
	cu := &ast.CompilationUnit{
		Namespace: "demo",
		Declarations: []ast.Declaration{
			&ast.TypeDeclaration{
				Kind: ast.ClassKind,
				Name: "Point",
				Members: []ast.Declaration{
					&ast.PropertyDeclaration{Name: "x", Type: intType()},
				},
			},
		},
	}
	tree, err := ast.LinkParents(cu)
	require.NoError(t, err)

	inSource := provider.NewInSourceProvider([]*ast.CompilationUnit{cu})
	r := Compose([]*ast.Tree{tree}, inSource)

	td := cu.Declarations[0].(*ast.TypeDeclaration)
	sym, ok, err := r.ResolveSymbol("x", td)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "x", sym.Name)
}
