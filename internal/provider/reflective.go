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
	"github.com/turin-lang/turinc/internal/descriptor"
	"github.com/turin-lang/turinc/internal/typedef"
)

// ReflectiveProvider is the "Reflective" Type Provider of spec.md §4.1: it
// reifies a fixed set of core JDK types. Rather than reflecting on a live
// JVM (this module does not run atop one), it is backed by a built-in
// registry of the platform shapes a Turin program is most likely to
// reference, recorded as a deliberate substitution in the Open Questions
// of DESIGN.md.
//
// ReflectiveProvider also satisfies typedef.Environment for its own
// registered types: every built-in type's ancestor chain and argument
// types stay within the registry, so it can resolve itself.
type ReflectiveProvider struct {
	defs map[string]typedef.Definition
	env  *envBox
}

var _ Provider = (*ReflectiveProvider)(nil)

// NewReflectiveProvider builds the provider with its built-in registry
// already populated.
func NewReflectiveProvider() *ReflectiveProvider {
	p := &ReflectiveProvider{defs: map[string]typedef.Definition{}}
	p.env = &envBox{}
	p.env.Environment = p
	p.populate()
	return p
}

// Bind rebinds this provider's ExternalDefinitions to resolve superclass
// lookups against the fully composed resolver instead of just this
// provider's own registry.
func (p *ReflectiveProvider) Bind(env typedef.Environment) { p.env.Bind(env) }

// FindTypeDefinition looks up a built-in type by internal qualified name.
func (p *ReflectiveProvider) FindTypeDefinition(qualifiedName string) (typedef.Definition, bool, error) {
	d, ok := p.defs[qualifiedName]
	return d, ok, nil
}

// FindPeerProperty is unused by external definitions; the reflective
// registry never backs a SourceDefinition.
func (p *ReflectiveProvider) FindPeerProperty(ref *ast.PropertyReference, enclosing *ast.TypeDeclaration) (*ast.PropertyDeclaration, bool, error) {
	return nil, false, nil
}

// HasPackage reports whether any built-in type lives under the given
// internal package prefix.
func (p *ReflectiveProvider) HasPackage(internalPackage string) bool {
	prefix := strings.TrimSuffix(internalPackage, "/") + "/"
	for name := range p.defs {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func (p *ReflectiveProvider) register(spec *typedef.ExternalSpec) {
	p.defs[spec.QualifiedName] = typedef.NewExternalDefinition(spec, p.env)
}

func objType(name string) ast.TypeUsage { return &ast.ReferenceTypeUsage{Name: name} }

func prim(k ast.PrimitiveKind) ast.TypeUsage { return &ast.PrimitiveTypeUsage{Kind: k} }

func ctor(descriptorStr string, params ...*typedef.Parameter) *typedef.ExternalConstructor {
	return &typedef.ExternalConstructor{Parameters: params, Descriptor: descriptorStr}
}

func method(name, descriptorStr string, ret ast.TypeUsage, params ...*typedef.Parameter) *typedef.ExternalMethod {
	return &typedef.ExternalMethod{Name: name, Parameters: params, ReturnType: ret, Descriptor: descriptorStr}
}

func param(name string, t ast.TypeUsage) *typedef.Parameter {
	return &typedef.Parameter{Name: name, Type: t}
}

// populate registers the core JDK shapes. Descriptors are written out by
// hand against spec.md §6's grammar, exactly as the platform's own
// classes would report them.
func (p *ReflectiveProvider) populate() {
	object := objType("java.lang.Object")
	str := objType("java.lang.String")
	boolT := prim(ast.BoolPrimitive)
	intT := prim(ast.IntType)

	p.register(&typedef.ExternalSpec{
		QualifiedName: descriptor.ObjectInternalName,
		Constructors:  []*typedef.ExternalConstructor{ctor("()V")},
		Methods: []*typedef.ExternalMethod{
			method("toString", "()Ljava/lang/String;", str),
			method("equals", "(Ljava/lang/Object;)Z", boolT, param("arg0", object)),
			method("hashCode", "()I", intT),
		},
	})

	p.register(&typedef.ExternalSpec{
		QualifiedName: descriptor.ToInternal("java.lang.String"),
		Superclass:    descriptor.ObjectInternalName,
		Constructors: []*typedef.ExternalConstructor{
			ctor("()V"),
			ctor("(Ljava/lang/String;)V", param("arg0", str)),
		},
		Methods: []*typedef.ExternalMethod{
			method("length", "()I", intT),
			method("equals", "(Ljava/lang/Object;)Z", boolT, param("arg0", object)),
			method("toString", "()Ljava/lang/String;", str),
		},
	})

	printStream := objType("java.io.PrintStream")
	p.register(&typedef.ExternalSpec{
		QualifiedName: descriptor.ToInternal("java.io.PrintStream"),
		Superclass:    descriptor.ObjectInternalName,
		Methods: []*typedef.ExternalMethod{
			method("println", "(Ljava/lang/String;)V", &ast.VoidTypeUsage{}, param("arg0", str)),
			method("println", "(I)V", &ast.VoidTypeUsage{}, param("arg0", intT)),
			method("println", "(Ljava/lang/Object;)V", &ast.VoidTypeUsage{}, param("arg0", object)),
		},
	})

	p.register(&typedef.ExternalSpec{
		QualifiedName: descriptor.ToInternal("java.lang.System"),
		Superclass:    descriptor.ObjectInternalName,
		Methods: []*typedef.ExternalMethod{
			method("currentTimeMillis", "()J", prim(ast.LongType)),
		},
		Fields: []*typedef.ExternalField{
			{Name: "out", Type: printStream, Static: true},
		},
	})

	p.register(&typedef.ExternalSpec{
		QualifiedName: descriptor.ToInternal("java.lang.Iterable"),
		Interface:     true,
		Superclass:    descriptor.ObjectInternalName,
	})

	p.register(&typedef.ExternalSpec{
		QualifiedName: descriptor.ToInternal("java.util.Map"),
		Interface:     true,
		Superclass:    descriptor.ObjectInternalName,
		Methods: []*typedef.ExternalMethod{
			method("get", "(Ljava/lang/Object;)Ljava/lang/Object;", object, param("arg0", object)),
			method("put", "(Ljava/lang/Object;Ljava/lang/Object;)Ljava/lang/Object;", object, param("arg0", object), param("arg1", object)),
			method("size", "()I", intT),
		},
	})

	p.register(&typedef.ExternalSpec{
		QualifiedName: descriptor.ToInternal("java.util.List"),
		Interface:     true,
		Superclass:    descriptor.ObjectInternalName,
		Methods: []*typedef.ExternalMethod{
			method("add", "(Ljava/lang/Object;)Z", boolT, param("arg0", object)),
			method("get", "(I)Ljava/lang/Object;", object, param("arg0", intT)),
			method("size", "()I", intT),
		},
	})

	boxed := []struct {
		name     string
		prim     ast.TypeUsage
		accessor string
		desc     string
	}{
		{"java.lang.Integer", intT, "intValue", "()I"},
		{"java.lang.Long", prim(ast.LongType), "longValue", "()J"},
		{"java.lang.Double", prim(ast.DoubleType), "doubleValue", "()D"},
		{"java.lang.Float", prim(ast.FloatType), "floatValue", "()F"},
		{"java.lang.Boolean", boolT, "booleanValue", "()Z"},
		{"java.lang.Character", prim(ast.CharType), "charValue", "()C"},
		{"java.lang.Byte", prim(ast.ByteType), "byteValue", "()B"},
		{"java.lang.Short", prim(ast.ShortType), "shortValue", "()S"},
	}
	for _, b := range boxed {
		qn := descriptor.ToInternal(b.name)
		p.register(&typedef.ExternalSpec{
			QualifiedName: qn,
			Superclass:    descriptor.ObjectInternalName,
			Constructors: []*typedef.ExternalConstructor{
				ctor("("+primitiveLetterOf(b.prim)+")V", param("arg0", b.prim)),
			},
			Methods: []*typedef.ExternalMethod{
				method(b.accessor, b.desc, b.prim),
			},
		})
	}
}

// primitiveLetterOf extracts the single-letter descriptor a primitive type
// usage was built with, for assembling a boxed wrapper's constructor
// descriptor inline above.
func primitiveLetterOf(t ast.TypeUsage) string {
	p, ok := t.(*ast.PrimitiveTypeUsage)
	if !ok {
		return "I"
	}
	switch p.Kind {
	case ast.BoolPrimitive:
		return "Z"
	case ast.ByteType:
		return "B"
	case ast.CharType:
		return "C"
	case ast.ShortType:
		return "S"
	case ast.LongType:
		return "J"
	case ast.FloatType:
		return "F"
	case ast.DoubleType:
		return "D"
	default:
		return "I"
	}
}
