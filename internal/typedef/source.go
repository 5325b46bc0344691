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
	"sort"
	"strings"
	"sync"

	"github.com/turin-lang/turinc/internal/ast"
	"github.com/turin-lang/turinc/internal/descriptor"
)

// SourceDefinition is the Definition for a type declared in source
// (spec.md §4.3.1-§4.3.7). Its constructor and method lists are derived
// lazily, and memoized, the first time either is requested: most source
// types are only ever queried for their own call sites, never for the
// full set of potential candidates.
type SourceDefinition struct {
	decl      *ast.TypeDeclaration
	namespace string
	env       Environment

	// Two independent gates, one per lazily built table, each memoizing
	// its own result and error. ensureMethods depends on ensureConstructors
	// and runs it to completion before taking methodMu, so the two locks
	// are never held at the same time.
	ctorMu   sync.Mutex
	ctorDone bool
	ctors    []*Constructor
	ctorErr  error

	methodMu   sync.Mutex
	methodDone bool
	methods    []*Method
	methodErr  error
}

var _ Definition = (*SourceDefinition)(nil)

// NewSourceDefinition builds the Definition for decl, a type declared
// within cu. env is consulted for base-type lookups and peer property
// references.
func NewSourceDefinition(cu *ast.CompilationUnit, decl *ast.TypeDeclaration, env Environment) *SourceDefinition {
	return &SourceDefinition{decl: decl, namespace: cu.Namespace, env: env}
}

// CanonicalName returns the dotted canonical name.
func (d *SourceDefinition) CanonicalName() string {
	if d.namespace == "" {
		return d.decl.Name
	}
	return d.namespace + "." + d.decl.Name
}

// QualifiedName returns the internal ('/'-separated) qualified name.
func (d *SourceDefinition) QualifiedName() string {
	return descriptor.ToInternal(d.CanonicalName())
}

// IsClass reports whether this definition is a class.
func (d *SourceDefinition) IsClass() bool { return d.decl.Kind == ast.ClassKind }

// IsInterface reports whether this definition is an interface.
func (d *SourceDefinition) IsInterface() bool { return d.decl.Kind == ast.InterfaceKind }

// resolveRef resolves a written type-usage name to its internal name.
// Simple-to-qualified name resolution (imports, namespace search) is the
// Symbol Resolver's concern; by the time the type definition model needs
// a descriptor, the AST's ReferenceTypeUsage.Name is already the fully
// qualified, dotted name, so this is a pure notation conversion.
func (d *SourceDefinition) resolveRef(name string) (string, error) {
	return descriptor.ToInternal(name), nil
}

// Superclass returns the direct superclass, defaulting to the platform
// root object type when none is declared.
func (d *SourceDefinition) Superclass() (Definition, error) {
	if d.decl.Base == nil {
		def, ok, err := d.env.FindTypeDefinition(descriptor.ObjectInternalName)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &InternalError{Message: "platform root type java/lang/Object is not registered"}
		}
		return def, nil
	}
	qn, err := d.resolveRef(d.decl.Base.Name)
	if err != nil {
		return nil, err
	}
	def, ok, err := d.env.FindTypeDefinition(qn)
	if err != nil {
		return nil, err
	}
	if !ok || !def.IsClass() {
		return nil, &InvalidExtensionError{TypeName: d.CanonicalName(), RefName: d.decl.Base.Name, WantClass: true}
	}
	return def, nil
}

// Ancestors returns the transitive chain of superclasses, nearest first,
// root (the platform root object type) last.
func (d *SourceDefinition) Ancestors() ([]Definition, error) {
	var chain []Definition
	var cur Definition = d
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

// Constructors returns every constructor candidate this type declares.
func (d *SourceDefinition) Constructors() ([]*Constructor, error) {
	return d.ensureConstructors()
}

// FindConstructor finds the first constructor candidate matching actual.
func (d *SourceDefinition) FindConstructor(actual []*ast.Argument) (*Constructor, bool, error) {
	ctors, err := d.ensureConstructors()
	if err != nil {
		return nil, false, err
	}
	return findConstructorCandidate(ctors, actual)
}

// ResolveConstructorCall is FindConstructor, but turns a non-match into an
// UnresolvedConstructorError.
func (d *SourceDefinition) ResolveConstructorCall(actual []*ast.Argument) (*Constructor, error) {
	c, ok, err := d.FindConstructor(actual)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &UnresolvedConstructorError{TypeName: d.CanonicalName(), Args: actual}
	}
	return c, nil
}

func (d *SourceDefinition) ensureConstructors() ([]*Constructor, error) {
	d.ctorMu.Lock()
	defer d.ctorMu.Unlock()
	if d.ctorDone {
		return d.ctors, d.ctorErr
	}
	d.ctors, d.ctorErr = d.buildConstructors()
	d.ctorDone = true
	return d.ctors, d.ctorErr
}

// buildConstructors implements spec.md §4.3.2 (implicit synthesis) and
// §4.3.3 (explicit constructor adoption).
func (d *SourceDefinition) buildConstructors() ([]*Constructor, error) {
	var explicit []*ast.ConstructorDeclaration
	for _, m := range d.decl.Members {
		if c, ok := m.(*ast.ConstructorDeclaration); ok {
			explicit = append(explicit, c)
		}
	}
	if len(explicit) > 1 {
		return nil, &MultipleExplicitConstructorsError{TypeName: d.CanonicalName(), Declarations: explicit}
	}
	if len(explicit) == 1 {
		params := d.convertParams(explicit[0].Parameters)
		desc, err := buildConstructorDescriptor(params, d.resolveRef)
		if err != nil {
			return nil, err
		}
		return []*Constructor{{
			Parameters: params,
			Descriptor: ConstructorDescriptor{Owner: d.QualifiedName(), Descriptor: desc},
		}}, nil
	}

	var inherited []*Parameter
	if d.decl.Base != nil {
		base, err := d.Superclass()
		if err != nil {
			return nil, err
		}
		baseCtors, err := base.Constructors()
		if err != nil {
			// The base type's own ambiguity (e.g. MultipleExplicitConstructors)
			// is reported separately against the base; from here it still
			// means the base does not expose exactly one constructor to
			// inherit from.
			if multi, ok := err.(*MultipleExplicitConstructorsError); ok {
				return nil, &UnsupportedInheritanceError{
					TypeName:     d.CanonicalName(),
					BaseName:     d.decl.Base.Name,
					ConstructorN: len(multi.Declarations),
				}
			}
			return nil, err
		}
		if len(baseCtors) != 1 {
			return nil, &UnsupportedInheritanceError{
				TypeName:     d.CanonicalName(),
				BaseName:     d.decl.Base.Name,
				ConstructorN: len(baseCtors),
			}
		}
		inherited = baseCtors[0].Parameters
	}

	assignable, err := d.assignableProperties()
	if err != nil {
		return nil, err
	}

	combined := make([]*Parameter, 0, len(inherited)+len(assignable))
	combined = append(combined, inherited...)
	combined = append(combined, assignable...)

	// Stable sort: every non-defaulted parameter precedes every defaulted
	// one, preserving relative order within each group, so a caller never
	// needs to supply a defaults map just to reach a later required param.
	sort.SliceStable(combined, func(i, j int) bool {
		return !combined[i].HasDefault && combined[j].HasDefault
	})

	desc, err := buildConstructorDescriptor(combined, d.resolveRef)
	if err != nil {
		return nil, err
	}
	return []*Constructor{{
		Parameters: combined,
		Descriptor: ConstructorDescriptor{Owner: d.QualifiedName(), Descriptor: desc},
	}}, nil
}

// assignableProperties collects the directly declared and peer-referenced
// properties without an initializer, in declaration order.
func (d *SourceDefinition) assignableProperties() ([]*Parameter, error) {
	var params []*Parameter
	for _, m := range d.decl.Members {
		switch p := m.(type) {
		case *ast.PropertyDeclaration:
			if p.Initializer == nil {
				params = append(params, &Parameter{Name: p.Name, Type: p.Type, HasDefault: p.Default != nil, Default: p.Default})
			}
		case *ast.PropertyReference:
			peer, ok, err := d.env.FindPeerProperty(p, d.decl)
			if err != nil {
				return nil, err
			}
			if ok && peer.Initializer == nil {
				params = append(params, &Parameter{Name: peer.Name, Type: peer.Type, HasDefault: peer.Default != nil, Default: peer.Default})
			}
		}
	}
	return params, nil
}

func (d *SourceDefinition) convertParams(fps []*ast.FormalParameter) []*Parameter {
	params := make([]*Parameter, len(fps))
	for i, fp := range fps {
		params[i] = &Parameter{Name: fp.Name, Type: fp.Type, HasDefault: fp.Default != nil, Default: fp.Default}
	}
	return params
}

// FindMethod finds the first method candidate named name matching actual.
func (d *SourceDefinition) FindMethod(name string, actual []*ast.Argument, staticContext bool) (*Method, bool, error) {
	methods, err := d.ensureMethods()
	if err != nil {
		return nil, false, err
	}
	var candidates []*Method
	for _, m := range methods {
		if m.Name == name && m.Descriptor.Static == staticContext {
			candidates = append(candidates, m)
		}
	}
	return findMethodCandidate(candidates, actual)
}

// FindMethodByDescriptors looks up a single method by name and an
// already-type-checked ordered list of JVM field descriptors.
func (d *SourceDefinition) FindMethodByDescriptors(name string, jvmTypes []string, staticContext bool) (*Method, error) {
	methods, err := d.ensureMethods()
	if err != nil {
		return nil, err
	}
	for _, m := range methods {
		if m.Name != name || m.Descriptor.Static != staticContext {
			continue
		}
		descs, err := paramFieldDescriptors(m.Parameters, d.resolveRef)
		if err != nil {
			return nil, err
		}
		if descriptorsEqual(descs, jvmTypes) {
			return m, nil
		}
	}
	return nil, &InternalError{Message: fmt.Sprintf(
		"no method %q on %q matches descriptors %v after type checking", name, d.CanonicalName(), jvmTypes)}
}

func descriptorsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (d *SourceDefinition) ensureMethods() ([]*Method, error) {
	// Constructor synthesis must run first: both consult the same property
	// list, and running it here keeps that dependency explicit rather than
	// leaving ensureMethods to assume someone already called Constructors.
	if _, err := d.ensureConstructors(); err != nil {
		return nil, err
	}
	d.methodMu.Lock()
	defer d.methodMu.Unlock()
	if d.methodDone {
		return d.methods, d.methodErr
	}
	d.methods, d.methodErr = d.materializeMethods()
	d.methodDone = true
	return d.methods, d.methodErr
}

// materializeMethods implements spec.md §4.3.4: every directly declared
// method, plus an implicit getter (and, for assignable properties, an
// implicit setter) per property, unless a direct method already claims
// that name.
func (d *SourceDefinition) materializeMethods() ([]*Method, error) {
	seen := map[string]bool{}
	direct := map[string]bool{}
	var methods []*Method

	for _, m := range d.decl.Members {
		md, ok := m.(*ast.MethodDeclaration)
		if !ok {
			continue
		}
		if seen[md.Name] {
			return nil, &DuplicateMethodNameError{TypeName: d.CanonicalName(), MethodName: md.Name}
		}
		seen[md.Name] = true
		direct[md.Name] = true

		params := d.convertParams(md.Parameters)
		desc, err := buildMethodDescriptor(params, md.ReturnType, d.resolveRef)
		if err != nil {
			return nil, err
		}
		methods = append(methods, &Method{
			Name:       md.Name,
			Parameters: params,
			ReturnType: md.ReturnType,
			Descriptor: MethodDescriptor{
				Owner:      d.QualifiedName(),
				Name:       md.Name,
				Descriptor: desc,
				Static:     md.IsStatic,
			},
		})
	}

	for _, m := range d.decl.Members {
		pd, ok := m.(*ast.PropertyDeclaration)
		if !ok {
			continue
		}
		suffix := toPascalCase(pd.Name)

		getterName := "get" + suffix
		if !direct[getterName] {
			desc, err := buildMethodDescriptor(nil, pd.Type, d.resolveRef)
			if err != nil {
				return nil, err
			}
			methods = append(methods, &Method{
				Name:       getterName,
				ReturnType: pd.Type,
				Descriptor: MethodDescriptor{Owner: d.QualifiedName(), Name: getterName, Descriptor: desc},
			})
		}

		if pd.Initializer != nil {
			continue // computed property: no setter
		}
		setterName := "set" + suffix
		if direct[setterName] {
			continue
		}
		param := &Parameter{Name: pd.Name, Type: pd.Type}
		desc, err := buildMethodDescriptor([]*Parameter{param}, &ast.VoidTypeUsage{}, d.resolveRef)
		if err != nil {
			return nil, err
		}
		methods = append(methods, &Method{
			Name:       setterName,
			Parameters: []*Parameter{param},
			ReturnType: &ast.VoidTypeUsage{},
			Descriptor: MethodDescriptor{Owner: d.QualifiedName(), Name: setterName, Descriptor: desc},
		})
	}
	return methods, nil
}

func toPascalCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FieldType returns the declared type of a direct property/field.
func (d *SourceDefinition) FieldType(name string, staticContext bool) (ast.TypeUsage, bool, error) {
	for _, m := range d.decl.Members {
		switch p := m.(type) {
		case *ast.PropertyDeclaration:
			if p.Name == name {
				return p.Type, true, nil
			}
		case *ast.PropertyReference:
			if p.Name == name {
				peer, ok, err := d.env.FindPeerProperty(p, d.decl)
				if err != nil || !ok {
					return nil, false, err
				}
				return peer.Type, true, nil
			}
		}
	}
	return nil, false, nil
}

// CanFieldBeAssigned reports whether a direct property/field may be
// assigned (false for computed/initializer-backed properties).
func (d *SourceDefinition) CanFieldBeAssigned(name string) (bool, error) {
	for _, m := range d.decl.Members {
		switch p := m.(type) {
		case *ast.PropertyDeclaration:
			if p.Name == name {
				return p.Initializer == nil, nil
			}
		case *ast.PropertyReference:
			if p.Name == name {
				peer, ok, err := d.env.FindPeerProperty(p, d.decl)
				if err != nil || !ok {
					return false, err
				}
				return peer.Initializer == nil, nil
			}
		}
	}
	return false, nil
}

// FindSymbol is the default (property-then-method scanning) symbol lookup.
func (d *SourceDefinition) FindSymbol(name string) (Symbol, bool, error) {
	t, ok, err := d.FieldType(name, false)
	if err != nil {
		return Symbol{}, false, err
	}
	if ok {
		return Symbol{Name: name, Kind: PropertySymbol, Type: t}, true, nil
	}
	methods, err := d.ensureMethods()
	if err != nil {
		return Symbol{}, false, err
	}
	for _, m := range methods {
		if m.Name == name {
			return Symbol{Name: name, Kind: MethodSymbol, Type: m.ReturnType}, true, nil
		}
	}
	return Symbol{}, false, nil
}

// DefinesToString reports whether this type directly declares a toString
// override: a no-arg method named "toString" with descriptor
// "()Ljava/lang/String;". Per spec.md §9 open questions, staticness is not
// accounted for, matching the source's own filter.
func (d *SourceDefinition) DefinesToString() bool {
	return d.declaresOverride("toString", "()Ljava/lang/String;")
}

// DefinesHashCode reports whether this type directly declares a hashCode
// override: a no-arg method named "hashCode" with descriptor "()I".
func (d *SourceDefinition) DefinesHashCode() bool {
	return d.declaresOverride("hashCode", "()I")
}

// DefinesEquals reports whether this type directly declares an equals
// override: a method named "equals" with descriptor
// "(Ljava/lang/Object;)Z". A same-named method with a different
// descriptor (e.g. "equals(other: int)") does not count, since its JVM
// descriptor differs from the platform's Object.equals.
func (d *SourceDefinition) DefinesEquals() bool {
	return d.declaresOverride("equals", "(Ljava/lang/Object;)Z")
}

func (d *SourceDefinition) declaresOverride(name, wantDescriptor string) bool {
	for _, m := range d.decl.Members {
		md, ok := m.(*ast.MethodDeclaration)
		if !ok || md.Name != name {
			continue
		}
		params := d.convertParams(md.Parameters)
		got, err := buildMethodDescriptor(params, md.ReturnType, d.resolveRef)
		if err != nil {
			continue
		}
		if got == wantDescriptor {
			return true
		}
	}
	return false
}
