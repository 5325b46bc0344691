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

// Package typedef implements the polymorphic Type Definition Model
// (spec.md §4.3): a uniform view over a type regardless of whether it was
// declared in source, reified from the platform standard library, read
// out of a compiled archive, or adapted from an external IDL schema.
//
// Per the "polymorphism over type origin" design note, this is modeled as
// a closed set of concrete types (*SourceDefinition, *ExternalDefinition)
// behind the single Definition interface, rather than a class hierarchy.
package typedef

import (
	"github.com/turin-lang/turinc/internal/ast"
)

// Parameter is a formal parameter of a resolved method or constructor
// signature (spec.md §3 "Formal Parameter" / internal signatures).
type Parameter struct {
	// Name is the parameter name. Parameters recovered from reflection or
	// an archive without preserved debug names are given synthetic names
	// ("arg0", "arg1", ...), matching what the JVM itself exposes for
	// classes compiled without -parameters.
	Name string
	// Type is the parameter's type usage.
	Type ast.TypeUsage
	// HasDefault indicates this parameter may be omitted from a call and
	// is instead bound through the trailing defaults map.
	HasDefault bool
	// Default is the default value expression, non-nil iff HasDefault.
	Default ast.Expression
}

// MethodDescriptor is the low-level JVM-facing signature backing a
// resolved method (spec.md §3 "Method Signature (Internal)").
type MethodDescriptor struct {
	Owner      string // internal name of the declaring type
	Name       string
	Descriptor string // e.g. "(I)V"
	Static     bool
	Interface  bool
}

// Method is a resolved (internal) method signature.
type Method struct {
	Name       string
	Parameters []*Parameter
	ReturnType ast.TypeUsage
	Descriptor MethodDescriptor
}

// ConstructorDescriptor is the low-level JVM-facing signature backing a
// resolved constructor (spec.md §3 "Constructor Signature (Internal)").
type ConstructorDescriptor struct {
	Owner      string
	Descriptor string // always ends in ")V"
}

// Constructor is a resolved (internal) constructor signature.
type Constructor struct {
	Parameters []*Parameter
	Descriptor ConstructorDescriptor
}

// SymbolKind distinguishes what FindSymbol found.
type SymbolKind int

const (
	// PropertySymbol marks a symbol that resolved to a property.
	PropertySymbol SymbolKind = iota
	// MethodSymbol marks a symbol that resolved to a method.
	MethodSymbol
)

// Symbol is what FindSymbol returns: a named member with its declared type
// usage (spec.md §4.3.1 find_symbol).
type Symbol struct {
	Name string
	Kind SymbolKind
	Type ast.TypeUsage
}

// Environment is the (minimal) view of the surrounding compilation that
// the type definition model needs: looking up other type definitions (for
// ancestor resolution, base-type introspection, field/parameter type
// resolution) and resolving a property reference against a peer
// declaration (spec.md §3 "Property"). The Symbol Resolver (package
// resolver) satisfies this interface; typedef never imports resolver, to
// keep the dependency one-directional.
type Environment interface {
	// FindTypeDefinition looks up a type definition by fully-qualified
	// (internal, '/'-separated) name. Absence is (nil, false, nil).
	FindTypeDefinition(qualifiedName string) (Definition, bool, error)
	// FindPeerProperty resolves a PropertyReference against a sibling
	// declaration of enclosing, returning the declaration it refers to.
	FindPeerProperty(ref *ast.PropertyReference, enclosing *ast.TypeDeclaration) (*ast.PropertyDeclaration, bool, error)
}

// Definition is the uniform view over a type of any origin (spec.md
// §4.3.1).
type Definition interface {
	// QualifiedName returns the internal ('/'-separated) qualified name.
	QualifiedName() string
	// CanonicalName returns the dotted canonical name.
	CanonicalName() string
	// IsClass reports whether this definition is a class.
	IsClass() bool
	// IsInterface reports whether this definition is an interface.
	IsInterface() bool
	// Superclass returns the direct superclass, defaulting to the
	// platform root object type when none is declared.
	Superclass() (Definition, error)
	// Ancestors returns the transitive chain of superclasses, nearest
	// first, root last.
	Ancestors() ([]Definition, error)
	// Constructors returns every constructor candidate this type
	// declares (exactly one, for source-defined types; zero or more for
	// external types, which may overload).
	Constructors() ([]*Constructor, error)
	// FindConstructor finds the first constructor candidate whose
	// parameter list matches actual under the call-site resolution rules
	// of spec.md §4.3.5.
	FindConstructor(actual []*ast.Argument) (*Constructor, bool, error)
	// ResolveConstructorCall is FindConstructor, but turns a non-match
	// into an UnresolvedConstructorError.
	ResolveConstructorCall(actual []*ast.Argument) (*Constructor, error)
	// FindMethod finds the first method candidate named name whose
	// parameter list matches actual.
	FindMethod(name string, actual []*ast.Argument, staticContext bool) (*Method, bool, error)
	// FindMethodByDescriptors looks up a single method by name and an
	// already-type-checked ordered list of JVM field descriptors.
	FindMethodByDescriptors(name string, jvmTypes []string, staticContext bool) (*Method, error)
	// FieldType returns the declared type of a direct property/field.
	FieldType(name string, staticContext bool) (ast.TypeUsage, bool, error)
	// CanFieldBeAssigned reports whether a direct property/field may be
	// assigned (false for computed/initializer-backed properties).
	CanFieldBeAssigned(name string) (bool, error)
	// FindSymbol is the default (property-scanning) symbol lookup;
	// SourceDefinition relies on Environment to resolve property
	// references, external definitions never need to.
	FindSymbol(name string) (Symbol, bool, error)
	// DefinesToString/DefinesHashCode/DefinesEquals answer the overridden-
	// method interrogation of spec.md §4.3.6. They are meaningful for
	// source-defined types; external definitions always answer false
	// since the emitter never needs to ask them.
	DefinesToString() bool
	DefinesHashCode() bool
	DefinesEquals() bool
}
