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

// Package workspace turns the two manifest files a Turin workspace carries,
// turin.mod and BUILD.turin, into a WorkspaceConfig. It only parses and
// evaluates manifest text: resolving an archive dependency on disk, walking
// an in-source root, or locating a named schema import file is left to the
// out-of-scope driver that calls this package (SPEC_FULL §6).
package workspace

// ArchiveDependency names one precompiled classpath entry, with an optional
// semantic version carried only as a compatibility tag (SPEC_FULL §4.4); it
// is never resolved against an actual module proxy or repository.
type ArchiveDependency struct {
	Path    string
	Version string
}

// WorkspaceConfig is the parsed, unresolved contents of a workspace's
// manifests: the module path, its archive classpath, its in-source roots,
// and its schema imports.
type WorkspaceConfig struct {
	ModulePath    string
	Archives      []ArchiveDependency
	InSourceRoots []string
	ThriftImports []string
	ProtoImports  []string
}

// Merge combines a turin.mod-derived config (module path, required
// archives) with a BUILD.turin-derived config (classpath/IDL imports for
// one compilation unit) into the single WorkspaceConfig a compilation run
// consumes.
func Merge(moduleCfg, buildCfg *WorkspaceConfig) *WorkspaceConfig {
	merged := &WorkspaceConfig{
		ModulePath:    moduleCfg.ModulePath,
		InSourceRoots: buildCfg.InSourceRoots,
		ThriftImports: buildCfg.ThriftImports,
		ProtoImports:  buildCfg.ProtoImports,
	}
	merged.Archives = append(merged.Archives, moduleCfg.Archives...)
	merged.Archives = append(merged.Archives, buildCfg.Archives...)
	return merged
}
