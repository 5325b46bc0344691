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

const personProto = `
syntax = "proto3";

package models;

message Person {
  string name = 1;
  int32 age = 2;
}
`

func TestProtobufSchemaProvider_RegistersMessages(t *testing.T) {
	p, err := NewProtobufSchemaProvider("models", []byte(personProto))
	require.NoError(t, err)

	def, ok, err := p.FindTypeDefinition("models/Person")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "models.Person", def.CanonicalName())

	ctors, err := def.Constructors()
	require.NoError(t, err)
	require.Len(t, ctors, 1)
	assert.Equal(t, "(Ljava/lang/String;I)V", ctors[0].Descriptor.Descriptor)
}

func TestProtobufSchemaProvider_HasPackage(t *testing.T) {
	p, err := NewProtobufSchemaProvider("models", []byte(personProto))
	require.NoError(t, err)
	assert.True(t, p.HasPackage("models"))
	assert.False(t, p.HasPackage("other"))
}
