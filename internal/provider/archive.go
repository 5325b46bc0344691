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
	"archive/zip"
	"fmt"
	"strings"

	"github.com/turin-lang/turinc/internal/ast"
	"github.com/turin-lang/turinc/internal/classfile"
	"github.com/turin-lang/turinc/internal/typedef"
)

// ArchiveProvider is the "Archive" Type Provider of spec.md §4.1: it reads
// type shapes directly out of compiled ".class" entries inside a jar,
// using package classfile for the binary format.
type ArchiveProvider struct {
	defs map[string]typedef.Definition
	env  *envBox
}

var _ Provider = (*ArchiveProvider)(nil)

// Bind rebinds this provider's ExternalDefinitions to resolve superclass
// lookups against the fully composed resolver instead of just this
// archive's own index.
func (p *ArchiveProvider) Bind(env typedef.Environment) { p.env.Bind(env) }

// OpenArchiveProvider indexes every ".class" entry in the jar at path.
func OpenArchiveProvider(path string) (*ArchiveProvider, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %q: %w", path, err)
	}
	defer r.Close()

	p := &ArchiveProvider{defs: map[string]typedef.Definition{}}
	p.env = &envBox{}
	p.env.Environment = p
	for _, f := range r.File {
		if !strings.HasSuffix(f.Name, ".class") {
			continue
		}
		if err := p.indexEntry(f); err != nil {
			return nil, fmt.Errorf("archive %q entry %q: %w", path, f.Name, err)
		}
	}
	return p, nil
}

func (p *ArchiveProvider) indexEntry(f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	class, err := classfile.Parse(rc)
	if err != nil {
		return err
	}

	spec := &typedef.ExternalSpec{
		QualifiedName: class.ThisClass,
		Interface:     class.IsInterface(),
		Superclass:    class.SuperClass,
	}

	for _, m := range class.Methods {
		params, ret, err := typedef.MethodDescriptorToTypeUsages(m.Descriptor)
		if err != nil {
			return fmt.Errorf("method %s%s: %w", m.Name, m.Descriptor, err)
		}
		if m.Name == "<init>" {
			spec.Constructors = append(spec.Constructors, &typedef.ExternalConstructor{
				Parameters: syntheticParams(params),
				Descriptor: m.Descriptor,
			})
			continue
		}
		spec.Methods = append(spec.Methods, &typedef.ExternalMethod{
			Name:       m.Name,
			Parameters: syntheticParams(params),
			ReturnType: ret,
			Descriptor: m.Descriptor,
			Static:     m.IsStatic(),
		})
	}

	for _, f := range class.Fields {
		t, err := typedef.DescriptorToTypeUsage(f.Descriptor)
		if err != nil {
			return fmt.Errorf("field %s %s: %w", f.Name, f.Descriptor, err)
		}
		spec.Fields = append(spec.Fields, &typedef.ExternalField{
			Name:       f.Name,
			Type:       t,
			Assignable: !f.IsFinal(),
			Static:     f.IsStatic(),
		})
	}

	p.defs[class.ThisClass] = typedef.NewExternalDefinition(spec, p.env)
	return nil
}

// syntheticParams names each parameter "arg0", "arg1", ... matching what
// the JVM itself reports for a class compiled without -parameters, since
// a class file's method_info does not carry parameter names without the
// optional debug attribute this reader does not parse.
func syntheticParams(types []ast.TypeUsage) []*typedef.Parameter {
	params := make([]*typedef.Parameter, len(types))
	for i, t := range types {
		params[i] = &typedef.Parameter{Name: fmt.Sprintf("arg%d", i), Type: t}
	}
	return params
}

// FindTypeDefinition looks up a type by internal qualified name among the
// classes this archive indexed.
func (p *ArchiveProvider) FindTypeDefinition(qualifiedName string) (typedef.Definition, bool, error) {
	d, ok := p.defs[qualifiedName]
	return d, ok, nil
}

// FindPeerProperty is unused by external definitions.
func (p *ArchiveProvider) FindPeerProperty(ref *ast.PropertyReference, enclosing *ast.TypeDeclaration) (*ast.PropertyDeclaration, bool, error) {
	return nil, false, nil
}

// HasPackage reports whether any indexed class lives under the given
// internal package prefix.
func (p *ArchiveProvider) HasPackage(internalPackage string) bool {
	prefix := strings.TrimSuffix(internalPackage, "/") + "/"
	for name := range p.defs {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
