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

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkParents_AncestorsInnermostFirst(t *testing.T) {
	prop := &PropertyDeclaration{Name: "x", Type: &PrimitiveTypeUsage{Kind: IntType}}
	decl := &TypeDeclaration{Kind: ClassKind, Name: "Point", Members: []Declaration{prop}}
	cu := &CompilationUnit{Namespace: "shapes", Declarations: []Declaration{decl}}

	tree, err := LinkParents(cu)
	require.NoError(t, err)

	assert.Equal(t, decl, tree.Parent(prop))
	assert.Equal(t, cu, tree.Parent(decl))
	assert.Nil(t, tree.Parent(cu))

	assert.Equal(t, []Node{decl, cu}, tree.Ancestors(prop))
}

func TestLinkParents_UnknownNodeHasNoParent(t *testing.T) {
	cu := &CompilationUnit{Namespace: "shapes"}
	tree, err := LinkParents(cu)
	require.NoError(t, err)

	stray := &PropertyDeclaration{Name: "stray"}
	assert.Nil(t, tree.Parent(stray))
	assert.Empty(t, tree.Ancestors(stray))
}
