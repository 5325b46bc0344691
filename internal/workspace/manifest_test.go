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

package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleModuleManifest = `module example.com/widgets

go 1.20

require (
	example.com/geometry v1.2.0
	example.com/text v0.4.1
)
`

func TestParseModuleManifest(t *testing.T) {
	cfg, err := ParseModuleManifest("turin.mod", []byte(sampleModuleManifest))
	require.NoError(t, err)

	assert.Equal(t, "example.com/widgets", cfg.ModulePath)
	require.Len(t, cfg.Archives, 2)
	assert.Equal(t, ArchiveDependency{Path: "example.com/geometry", Version: "v1.2.0"}, cfg.Archives[0])
	assert.Equal(t, ArchiveDependency{Path: "example.com/text", Version: "v0.4.1"}, cfg.Archives[1])
}

func TestParseModuleManifest_RoundTripsModulePath(t *testing.T) {
	cfg, err := ParseModuleManifest("turin.mod", []byte(sampleModuleManifest))
	require.NoError(t, err)
	assert.Equal(t, "example.com/widgets", cfg.ModulePath)
}

func TestParseModuleManifest_Malformed(t *testing.T) {
	_, err := ParseModuleManifest("turin.mod", []byte("module example.com/widgets\n\nrequire (\n"))
	assert.Error(t, err)
}
