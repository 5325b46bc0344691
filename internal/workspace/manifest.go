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
	"golang.org/x/mod/modfile"
)

// ParseModuleManifest parses a turin.mod file, which uses exactly go.mod
// syntax (SPEC_FULL §4.4): a module path and a require block naming
// archive paths with a semantic version used only as a compatibility tag,
// never live-resolved.
func ParseModuleManifest(filename string, data []byte) (*WorkspaceConfig, error) {
	f, err := modfile.Parse(filename, data, nil)
	if err != nil {
		return nil, err
	}

	cfg := &WorkspaceConfig{}
	if f.Module != nil {
		cfg.ModulePath = f.Module.Mod.Path
	}
	for _, req := range f.Require {
		cfg.Archives = append(cfg.Archives, ArchiveDependency{
			Path:    req.Mod.Path,
			Version: req.Mod.Version,
		})
	}
	return cfg, nil
}
