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
	"fmt"

	"github.com/bazelbuild/buildtools/build"
	"go.starlark.net/starlark"
)

// ParseBuildManifest parses a BUILD.turin file: one top-level turin_module
// rule call naming a compilation unit's classpath/IDL imports, optionally
// preceded by a Starlark prelude that computes those values (SPEC_FULL
// §4.4), e.g. a select-style conditional choosing a test-only archive set.
//
// Parsing happens in two passes. build.Parse first checks the file against
// plain BUILD-file grammar, the same syntactic gate analyzer/bazel applies
// before diffing a BUILD file. The file is then actually evaluated with
// starlark.ExecFile, which runs any prelude logic and invokes a predeclared
// turin_module builtin that records its keyword arguments into the
// returned WorkspaceConfig.
func ParseBuildManifest(filename string, data []byte) (*WorkspaceConfig, error) {
	if _, err := build.Parse(filename, data); err != nil {
		return nil, fmt.Errorf("BUILD.turin is not syntactically valid BUILD-file syntax: %w", err)
	}

	cfg := &WorkspaceConfig{}
	recordRule := starlark.NewBuiltin("turin_module", func(
		thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple,
	) (starlark.Value, error) {
		for _, kw := range kwargs {
			key, ok := starlark.AsString(kw[0])
			if !ok {
				return nil, fmt.Errorf("turin_module: keyword argument name must be a string")
			}
			var err error
			switch key {
			case "archives":
				var paths []string
				if paths, err = stringList(kw[1]); err == nil {
					for _, p := range paths {
						cfg.Archives = append(cfg.Archives, ArchiveDependency{Path: p})
					}
				}
			case "in_source_roots":
				cfg.InSourceRoots, err = stringList(kw[1])
			case "thrift_imports":
				cfg.ThriftImports, err = stringList(kw[1])
			case "proto_imports":
				cfg.ProtoImports, err = stringList(kw[1])
			case "name":
				// the rule's own label, not part of WorkspaceConfig.
			default:
				err = fmt.Errorf("turin_module: unknown argument %q", key)
			}
			if err != nil {
				return nil, err
			}
		}
		return starlark.None, nil
	})

	thread := &starlark.Thread{Name: filename}
	predeclared := starlark.StringDict{"turin_module": recordRule}
	if _, err := starlark.ExecFile(thread, filename, data, predeclared); err != nil {
		return nil, err
	}
	return cfg, nil
}

// stringList converts a Starlark list of strings to its Go equivalent.
func stringList(v starlark.Value) ([]string, error) {
	list, ok := v.(*starlark.List)
	if !ok {
		return nil, fmt.Errorf("expected a list of strings, got %s", v.Type())
	}
	out := make([]string, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		s, ok := starlark.AsString(list.Index(i))
		if !ok {
			return nil, fmt.Errorf("expected a string list element, got %s", list.Index(i).Type())
		}
		out = append(out, s)
	}
	return out, nil
}
