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
	"strings"

	"github.com/turin-lang/turinc/internal/ast"
	"github.com/turin-lang/turinc/internal/typedef"
)

// InSourceProvider is the "In-source" Type Provider of spec.md §4.1: the
// set of compilation units handed to this invocation of the front end. It
// builds one SourceDefinition per declared type and resolves peer
// properties scoped to whichever declaration is asked for.
type InSourceProvider struct {
	units []*ast.CompilationUnit
	env   *envBox

	defs map[string]typedef.Definition
}

var _ Provider = (*InSourceProvider)(nil)

// NewInSourceProvider builds one SourceDefinition per type declared
// across units.
func NewInSourceProvider(units []*ast.CompilationUnit) *InSourceProvider {
	p := &InSourceProvider{
		units: units,
		defs:  map[string]typedef.Definition{},
	}
	p.env = &envBox{}
	p.env.Environment = p
	for _, cu := range units {
		for _, decl := range cu.Declarations {
			td, ok := decl.(*ast.TypeDeclaration)
			if !ok {
				continue
			}
			def := typedef.NewSourceDefinition(cu, td, p.env)
			p.defs[def.QualifiedName()] = def
		}
	}
	return p
}

// Bind rebinds every SourceDefinition built by this provider to resolve
// base-type and external lookups against the fully composed resolver.
func (p *InSourceProvider) Bind(env typedef.Environment) { p.env.Bind(env) }

// FindTypeDefinition looks up an in-source type by internal qualified name.
func (p *InSourceProvider) FindTypeDefinition(qualifiedName string) (typedef.Definition, bool, error) {
	d, ok := p.defs[qualifiedName]
	return d, ok, nil
}

// FindPeerProperty resolves a PropertyReference by scanning enclosing's own
// direct PropertyDeclarations for a matching name: a "peer" property is a
// sibling member of the same type declaring the reference, not a
// declaration anywhere in the program.
func (p *InSourceProvider) FindPeerProperty(ref *ast.PropertyReference, enclosing *ast.TypeDeclaration) (*ast.PropertyDeclaration, bool, error) {
	if enclosing == nil {
		return nil, false, nil
	}
	for _, m := range enclosing.Members {
		if pd, ok := m.(*ast.PropertyDeclaration); ok && pd.Name == ref.Name {
			return pd, true, nil
		}
	}
	return nil, false, nil
}

// HasPackage reports whether any in-source type lives under the given
// internal package prefix.
func (p *InSourceProvider) HasPackage(internalPackage string) bool {
	prefix := strings.TrimSuffix(internalPackage, "/") + "/"
	for name := range p.defs {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
