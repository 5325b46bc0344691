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

const plainBuildManifest = `turin_module(
    name = "widgets",
    archives = ["libs/geometry.jar", "libs/text.jar"],
    in_source_roots = ["src/main/turin"],
    thrift_imports = ["schemas/person.thrift"],
    proto_imports = ["schemas/person.proto"],
)
`

func TestParseBuildManifest_Plain(t *testing.T) {
	cfg, err := ParseBuildManifest("BUILD.turin", []byte(plainBuildManifest))
	require.NoError(t, err)

	assert.Equal(t, []ArchiveDependency{{Path: "libs/geometry.jar"}, {Path: "libs/text.jar"}}, cfg.Archives)
	assert.Equal(t, []string{"src/main/turin"}, cfg.InSourceRoots)
	assert.Equal(t, []string{"schemas/person.thrift"}, cfg.ThriftImports)
	assert.Equal(t, []string{"schemas/person.proto"}, cfg.ProtoImports)
}

// testOnlyBuildManifest computes its archive list with a Starlark prelude
// rather than writing it out literally, mirroring a Bazel select() choosing
// a test-only archive set.
const testOnlyBuildManifest = `TEST_ONLY = True

_BASE = ["libs/geometry.jar"]

_ARCHIVES = _BASE + ["libs/geometry-testing.jar"] if TEST_ONLY else _BASE

turin_module(
    name = "widgets",
    archives = _ARCHIVES,
)
`

func TestParseBuildManifest_StarlarkPrelude(t *testing.T) {
	cfg, err := ParseBuildManifest("BUILD.turin", []byte(testOnlyBuildManifest))
	require.NoError(t, err)

	assert.Equal(t, []ArchiveDependency{
		{Path: "libs/geometry.jar"},
		{Path: "libs/geometry-testing.jar"},
	}, cfg.Archives)
}

func TestParseBuildManifest_MalformedSyntax(t *testing.T) {
	_, err := ParseBuildManifest("BUILD.turin", []byte("turin_module(name = \"widgets\""))
	assert.Error(t, err)
}

func TestParseBuildManifest_UnknownArgument(t *testing.T) {
	_, err := ParseBuildManifest("BUILD.turin", []byte(`turin_module(name = "widgets", bogus = ["x"])`))
	assert.Error(t, err)
}
