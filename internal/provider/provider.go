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

// Package provider implements the Type Providers of spec.md §4.1: sources
// of Definitions the symbol resolver consults beyond what is declared in
// the current compilation. Each provider owns one origin (the platform
// standard library, a compiled archive, the in-source compilation units
// themselves, or an external IDL schema) and is consulted uniformly
// through this package's Provider interface.
package provider

import (
	"github.com/turin-lang/turinc/internal/ast"
	"github.com/turin-lang/turinc/internal/typedef"
)

// Provider is the uniform interface the symbol resolver composes over.
// Every concrete provider in this package satisfies it.
type Provider interface {
	// FindTypeDefinition looks up a type by internal ('/'-separated)
	// qualified name. Absence is (nil, false, nil).
	FindTypeDefinition(qualifiedName string) (typedef.Definition, bool, error)
	// HasPackage reports whether this provider can resolve any type under
	// the given internal package prefix, used by the resolver's
	// has_package operation (spec.md §4.2) without forcing a full type
	// lookup.
	HasPackage(internalPackage string) bool
	// FindPeerProperty resolves a property reference against enclosing's
	// own declarations. Only the in-source provider ever returns present;
	// every external provider reports absent.
	FindPeerProperty(ref *ast.PropertyReference, enclosing *ast.TypeDeclaration) (*ast.PropertyDeclaration, bool, error)
	// Bind rebinds this provider's own Definitions to resolve further
	// lookups (superclass, peer property) against the fully composed
	// resolver instead of just this provider's own index.
	Bind(env typedef.Environment)
}

// envBox is a mutable indirection used as the typedef.Environment every
// provider hands to the ExternalDefinitions it builds. A provider is
// populated once, up front, before the composed resolver that will
// eventually be its real Environment even exists; embedding the
// interface by value lets Bind swap the target later so a class's
// superclass lookup can cross from, say, the archive provider into the
// reflective one without re-building a single ExternalDefinition.
type envBox struct {
	typedef.Environment
}

// Bind rebinds env's name lookups to target, typically the fully composed
// resolver. Call this once, after every provider has been constructed.
func (e *envBox) Bind(target typedef.Environment) { e.Environment = target }

