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

package typedef

import (
	"fmt"

	"github.com/turin-lang/turinc/internal/ast"
	"github.com/turin-lang/turinc/internal/descriptor"
)

// ExternalDefinition is the Definition for a type whose shape was not
// declared in this compilation: the platform standard library (reified by
// the reflective provider's built-in registry), a compiled archive (read
// by the archive provider out of real class files), or an IDL schema
// (the Thrift/Protobuf providers). All four origins share the same
// constraints with respect to the core (spec.md §4.3.1): candidates may
// overload, none carries a default parameter, and unnamed parameters get
// synthetic names ("arg0", "arg1", ...) exactly as the JVM itself exposes
// for a class compiled without -parameters. That shared shape is why they
// are represented uniformly here instead of as four separate types.
type ExternalDefinition struct {
	spec *ExternalSpec
	env  Environment
}

var _ Definition = (*ExternalDefinition)(nil)

// ExternalConstructor is one overload contributed by an external type.
type ExternalConstructor struct {
	Parameters []*Parameter
	// Descriptor is the full, already-assembled JVM constructor descriptor
	// (e.g. "(I)V"), supplied by the provider that built this spec.
	Descriptor string
}

// ExternalMethod is one overload contributed by an external type.
type ExternalMethod struct {
	Name       string
	Parameters []*Parameter
	ReturnType ast.TypeUsage
	Descriptor string
	Static     bool
}

// ExternalField is a field/property exposed by an external type.
type ExternalField struct {
	Name       string
	Type       ast.TypeUsage
	Assignable bool
	Static     bool
}

// ExternalSpec is the provider-agnostic data a Type Provider assembles to
// back an ExternalDefinition: the reflective provider fills it in from a
// built-in JDK registry, the archive provider from a parsed class file,
// and the schema providers from parsed IDL.
type ExternalSpec struct {
	QualifiedName string
	Interface     bool
	// Superclass is the internal name of the direct superclass, or "" for
	// the platform root object type itself (which has none).
	Superclass   string
	Constructors []*ExternalConstructor
	Methods      []*ExternalMethod
	Fields       []*ExternalField
}

// NewExternalDefinition builds the Definition backed by spec. env is
// consulted to resolve the superclass chain.
func NewExternalDefinition(spec *ExternalSpec, env Environment) *ExternalDefinition {
	return &ExternalDefinition{spec: spec, env: env}
}

// QualifiedName returns the internal ('/'-separated) qualified name.
func (e *ExternalDefinition) QualifiedName() string { return e.spec.QualifiedName }

// CanonicalName returns the dotted canonical name.
func (e *ExternalDefinition) CanonicalName() string {
	return descriptor.ToCanonical(e.spec.QualifiedName)
}

// IsClass reports whether this definition is a class.
func (e *ExternalDefinition) IsClass() bool { return !e.spec.Interface }

// IsInterface reports whether this definition is an interface.
func (e *ExternalDefinition) IsInterface() bool { return e.spec.Interface }

// Superclass returns the direct superclass. It is an internal error to
// call this on the platform root object type, which has none; callers
// that walk the ancestor chain stop before reaching that case.
func (e *ExternalDefinition) Superclass() (Definition, error) {
	if e.spec.Superclass == "" {
		return nil, &InternalError{Message: fmt.Sprintf("%q has no superclass", e.CanonicalName())}
	}
	def, ok, err := e.env.FindTypeDefinition(e.spec.Superclass)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &InternalError{Message: fmt.Sprintf(
			"superclass %q of %q is not registered", e.spec.Superclass, e.CanonicalName())}
	}
	return def, nil
}

// Ancestors returns the transitive chain of superclasses, nearest first,
// root last.
func (e *ExternalDefinition) Ancestors() ([]Definition, error) {
	var chain []Definition
	var cur Definition = e
	for cur.QualifiedName() != descriptor.ObjectInternalName {
		sc, err := cur.Superclass()
		if err != nil {
			return nil, err
		}
		chain = append(chain, sc)
		cur = sc
	}
	return chain, nil
}

// Constructors returns every constructor overload this type exposes.
func (e *ExternalDefinition) Constructors() ([]*Constructor, error) {
	result := make([]*Constructor, len(e.spec.Constructors))
	for i, c := range e.spec.Constructors {
		result[i] = &Constructor{
			Parameters: c.Parameters,
			Descriptor: ConstructorDescriptor{Owner: e.spec.QualifiedName, Descriptor: c.Descriptor},
		}
	}
	return result, nil
}

// FindConstructor finds the first constructor overload matching actual.
func (e *ExternalDefinition) FindConstructor(actual []*ast.Argument) (*Constructor, bool, error) {
	ctors, err := e.Constructors()
	if err != nil {
		return nil, false, err
	}
	return findConstructorCandidate(ctors, actual)
}

// ResolveConstructorCall is FindConstructor, but turns a non-match into an
// UnresolvedConstructorError.
func (e *ExternalDefinition) ResolveConstructorCall(actual []*ast.Argument) (*Constructor, error) {
	c, ok, err := e.FindConstructor(actual)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &UnresolvedConstructorError{TypeName: e.CanonicalName(), Args: actual}
	}
	return c, nil
}

func (e *ExternalDefinition) toMethod(m *ExternalMethod) *Method {
	return &Method{
		Name:       m.Name,
		Parameters: m.Parameters,
		ReturnType: m.ReturnType,
		Descriptor: MethodDescriptor{
			Owner:      e.spec.QualifiedName,
			Name:       m.Name,
			Descriptor: m.Descriptor,
			Static:     m.Static,
		},
	}
}

// FindMethod finds the first method overload named name matching actual.
func (e *ExternalDefinition) FindMethod(name string, actual []*ast.Argument, staticContext bool) (*Method, bool, error) {
	var candidates []*Method
	for _, m := range e.spec.Methods {
		if m.Name == name && m.Static == staticContext {
			candidates = append(candidates, e.toMethod(m))
		}
	}
	return findMethodCandidate(candidates, actual)
}

// FindMethodByDescriptors looks up a single method by name and an
// already-type-checked ordered list of JVM field descriptors.
func (e *ExternalDefinition) FindMethodByDescriptors(name string, jvmTypes []string, staticContext bool) (*Method, error) {
	for _, m := range e.spec.Methods {
		if m.Name != name || m.Static != staticContext {
			continue
		}
		params, _, err := descriptor.SplitMethodParams(m.Descriptor)
		if err != nil {
			return nil, err
		}
		if descriptorsEqual(params, jvmTypes) {
			return e.toMethod(m), nil
		}
	}
	return nil, &InternalError{Message: fmt.Sprintf(
		"no method %q on %q matches descriptors %v after type checking", name, e.CanonicalName(), jvmTypes)}
}

// FieldType returns the declared type of a direct field.
func (e *ExternalDefinition) FieldType(name string, staticContext bool) (ast.TypeUsage, bool, error) {
	for _, f := range e.spec.Fields {
		if f.Name == name && f.Static == staticContext {
			return f.Type, true, nil
		}
	}
	return nil, false, nil
}

// CanFieldBeAssigned reports whether a direct field may be assigned.
func (e *ExternalDefinition) CanFieldBeAssigned(name string) (bool, error) {
	for _, f := range e.spec.Fields {
		if f.Name == name {
			return f.Assignable, nil
		}
	}
	return false, nil
}

// FindSymbol is the default (field-then-method scanning) symbol lookup.
func (e *ExternalDefinition) FindSymbol(name string) (Symbol, bool, error) {
	for _, f := range e.spec.Fields {
		if f.Name == name {
			return Symbol{Name: name, Kind: PropertySymbol, Type: f.Type}, true, nil
		}
	}
	for _, m := range e.spec.Methods {
		if m.Name == name {
			return Symbol{Name: name, Kind: MethodSymbol, Type: m.ReturnType}, true, nil
		}
	}
	return Symbol{}, false, nil
}

// DefinesToString, DefinesHashCode and DefinesEquals are meaningful only
// for source-defined types: the emitter never needs to ask an external
// definition whether it overrides these, so external definitions always
// answer false.
func (e *ExternalDefinition) DefinesToString() bool { return false }
func (e *ExternalDefinition) DefinesHashCode() bool { return false }
func (e *ExternalDefinition) DefinesEquals() bool   { return false }
