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

package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReflectiveProvider_Object(t *testing.T) {
	p := NewReflectiveProvider()

	def, ok, err := p.FindTypeDefinition("java/lang/Object")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "java.lang.Object", def.CanonicalName())

	ctors, err := def.Constructors()
	require.NoError(t, err)
	require.Len(t, ctors, 1)
	assert.Equal(t, "()V", ctors[0].Descriptor.Descriptor)
}

func TestReflectiveProvider_StringAncestors(t *testing.T) {
	p := NewReflectiveProvider()

	def, ok, err := p.FindTypeDefinition("java/lang/String")
	require.NoError(t, err)
	require.True(t, ok)

	ancestors, err := def.Ancestors()
	require.NoError(t, err)
	require.Len(t, ancestors, 1)
	assert.Equal(t, "java/lang/Object", ancestors[0].QualifiedName())
}

func TestReflectiveProvider_HasPackage(t *testing.T) {
	p := NewReflectiveProvider()
	assert.True(t, p.HasPackage("java/lang"))
	assert.True(t, p.HasPackage("java/util"))
	assert.False(t, p.HasPackage("com/example"))
}
