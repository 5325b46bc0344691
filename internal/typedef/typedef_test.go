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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turin-lang/turinc/internal/ast"
)

// fakeEnv is a minimal Environment for tests: a flat registry of
// definitions plus an always-empty peer property table, enough to
// exercise base-type lookups without needing the symbol resolver.
type fakeEnv struct {
	defs map[string]Definition
}

func newFakeEnv() *fakeEnv { return &fakeEnv{defs: map[string]Definition{}} }

func (e *fakeEnv) FindTypeDefinition(qualifiedName string) (Definition, bool, error) {
	d, ok := e.defs[qualifiedName]
	return d, ok, nil
}

func (e *fakeEnv) FindPeerProperty(ref *ast.PropertyReference, enclosing *ast.TypeDeclaration) (*ast.PropertyDeclaration, bool, error) {
	return nil, false, nil
}

func intType() ast.TypeUsage    { return &ast.PrimitiveTypeUsage{Kind: ast.IntType} }
func doubleType() ast.TypeUsage { return &ast.PrimitiveTypeUsage{Kind: ast.DoubleType} }
func stringType() ast.TypeUsage { return &ast.ReferenceTypeUsage{Name: "java.lang.String"} }

func intLit(v string) ast.Expression    { return &ast.IntLiteral{Value: v} }
func stringLit(v string) ast.Expression { return &ast.StringLiteral{Value: v} }

func namedArg(name string, v ast.Expression) *ast.Argument {
	n := name
	return &ast.Argument{Name: &n, Value: v}
}

func positionalArg(v ast.Expression) *ast.Argument {
	return &ast.Argument{Value: v}
}

func registerObject(env *fakeEnv) {
	env.defs["java/lang/Object"] = NewExternalDefinition(&ExternalSpec{QualifiedName: "java/lang/Object"}, env)
}

// Scenario 1: implicit constructor over properties (spec.md §8.1).
func TestSourceDefinition_ImplicitConstructor_Point(t *testing.T) {
	env := newFakeEnv()
	registerObject(env)

	decl := &ast.TypeDeclaration{
		Kind: ast.ClassKind,
		Name: "Point",
		Members: []ast.Declaration{
			&ast.PropertyDeclaration{Name: "x", Type: intType()},
			&ast.PropertyDeclaration{Name: "y", Type: intType(), Default: intLit("0")},
		},
	}
	cu := &ast.CompilationUnit{Namespace: "demo"}
	def := NewSourceDefinition(cu, decl, env)
	env.defs[def.QualifiedName()] = def

	ctors, err := def.Constructors()
	require.NoError(t, err)
	require.Len(t, ctors, 1)
	assert.Equal(t, "(ILjava/util/Map;)V", ctors[0].Descriptor.Descriptor)

	_, ok, err := def.FindConstructor([]*ast.Argument{positionalArg(intLit("3"))})
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = def.FindConstructor([]*ast.Argument{positionalArg(intLit("3")), namedArg("y", intLit("7"))})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = def.ResolveConstructorCall([]*ast.Argument{namedArg("y", intLit("7"))})
	require.Error(t, err)
	assert.IsType(t, &UnresolvedConstructorError{}, err)
}

// Scenario 2: constructor ordering (spec.md §8.2).
func TestSourceDefinition_ConstructorOrdering_Person(t *testing.T) {
	env := newFakeEnv()
	registerObject(env)

	decl := &ast.TypeDeclaration{
		Kind: ast.ClassKind,
		Name: "Person",
		Members: []ast.Declaration{
			&ast.PropertyDeclaration{Name: "name", Type: stringType()},
			&ast.PropertyDeclaration{Name: "age", Type: intType(), Default: intLit("30")},
			&ast.PropertyDeclaration{Name: "nickname", Type: stringType(), Default: stringLit("none")},
		},
	}
	cu := &ast.CompilationUnit{Namespace: "demo"}
	def := NewSourceDefinition(cu, decl, env)
	env.defs[def.QualifiedName()] = def

	ctors, err := def.Constructors()
	require.NoError(t, err)
	require.Len(t, ctors, 1)

	var names []string
	for _, p := range ctors[0].Parameters {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"name", "age", "nickname"}, names)
	assert.Equal(t, "(Ljava/lang/String;Ljava/util/Map;)V", ctors[0].Descriptor.Descriptor)

	_, ok, err := def.FindConstructor([]*ast.Argument{namedArg("name", stringLit("A")), namedArg("age", intLit("1"))})
	require.NoError(t, err)
	assert.True(t, ok)

	_, _, err = def.FindConstructor([]*ast.Argument{namedArg("name", stringLit("A")), positionalArg(intLit("1"))})
	require.Error(t, err)
	assert.IsType(t, &IllOrderedParametersError{}, err)
}

// Scenario 3: inheritance composition (spec.md §8.3).
func TestSourceDefinition_InheritanceComposition_Employee(t *testing.T) {
	env := newFakeEnv()
	registerObject(env)

	personDecl := &ast.TypeDeclaration{
		Kind: ast.ClassKind,
		Name: "Person",
		Members: []ast.Declaration{
			&ast.PropertyDeclaration{Name: "name", Type: stringType()},
			&ast.PropertyDeclaration{Name: "age", Type: intType(), Default: intLit("30")},
			&ast.PropertyDeclaration{Name: "nickname", Type: stringType(), Default: stringLit("none")},
		},
	}
	cu := &ast.CompilationUnit{Namespace: "demo"}
	personDef := NewSourceDefinition(cu, personDecl, env)
	env.defs[personDef.QualifiedName()] = personDef

	employeeDecl := &ast.TypeDeclaration{
		Kind: ast.ClassKind,
		Name: "Employee",
		Base: &ast.ReferenceTypeUsage{Name: "demo.Person"},
		Members: []ast.Declaration{
			&ast.PropertyDeclaration{Name: "salary", Type: doubleType()},
		},
	}
	employeeDef := NewSourceDefinition(cu, employeeDecl, env)
	env.defs[employeeDef.QualifiedName()] = employeeDef

	ctors, err := employeeDef.Constructors()
	require.NoError(t, err)
	require.Len(t, ctors, 1)

	var names []string
	for _, p := range ctors[0].Parameters {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"name", "salary", "age", "nickname"}, names)

	ancestors, err := employeeDef.Ancestors()
	require.NoError(t, err)
	require.Len(t, ancestors, 2)
	assert.Equal(t, "demo/Person", ancestors[0].QualifiedName())
	assert.Equal(t, "java/lang/Object", ancestors[1].QualifiedName())
}

func TestSourceDefinition_UnsupportedInheritance(t *testing.T) {
	env := newFakeEnv()
	registerObject(env)

	baseDecl := &ast.TypeDeclaration{
		Kind: ast.ClassKind,
		Name: "Base",
		Members: []ast.Declaration{
			&ast.ConstructorDeclaration{Parameters: []*ast.FormalParameter{{Name: "a", Type: intType()}}},
			&ast.ConstructorDeclaration{Parameters: []*ast.FormalParameter{{Name: "b", Type: intType()}}},
		},
	}
	cu := &ast.CompilationUnit{Namespace: "demo"}
	baseDef := NewSourceDefinition(cu, baseDecl, env)
	env.defs[baseDef.QualifiedName()] = baseDef

	_, err := baseDef.Constructors()
	require.Error(t, err)
	assert.IsType(t, &MultipleExplicitConstructorsError{}, err)

	childDecl := &ast.TypeDeclaration{
		Kind: ast.ClassKind,
		Name: "Child",
		Base: &ast.ReferenceTypeUsage{Name: "demo.Base"},
	}
	childDef := NewSourceDefinition(cu, childDecl, env)

	_, err = childDef.Constructors()
	require.Error(t, err)
	assert.IsType(t, &UnsupportedInheritanceError{}, err)
}

// Scenario 4: multiple explicit constructors (spec.md §8.4).
func TestSourceDefinition_MultipleExplicitConstructors(t *testing.T) {
	env := newFakeEnv()
	registerObject(env)

	decl := &ast.TypeDeclaration{
		Kind: ast.ClassKind,
		Name: "Bad",
		Members: []ast.Declaration{
			&ast.ConstructorDeclaration{Parameters: []*ast.FormalParameter{{Name: "a", Type: intType()}}},
			&ast.ConstructorDeclaration{Parameters: []*ast.FormalParameter{{Name: "b", Type: intType()}}},
		},
	}
	cu := &ast.CompilationUnit{Namespace: "demo"}
	def := NewSourceDefinition(cu, decl, env)

	_, err := def.Constructors()
	require.Error(t, err)
	multi, ok := err.(*MultipleExplicitConstructorsError)
	require.True(t, ok)
	assert.Len(t, multi.Declarations, 2)
}

// Scenario 6: override detection (spec.md §8.6).
func TestSourceDefinition_OverrideDetection(t *testing.T) {
	env := newFakeEnv()
	registerObject(env)

	decl := &ast.TypeDeclaration{
		Kind: ast.ClassKind,
		Name: "Widget",
		Members: []ast.Declaration{
			&ast.MethodDeclaration{Name: "toString", ReturnType: stringType(), Body: []ast.Statement{}},
			&ast.MethodDeclaration{
				Name:       "equals",
				Parameters: []*ast.FormalParameter{{Name: "other", Type: intType()}},
				ReturnType: &ast.PrimitiveTypeUsage{Kind: ast.BoolPrimitive},
				Body:       []ast.Statement{},
			},
		},
	}
	cu := &ast.CompilationUnit{Namespace: "demo"}
	def := NewSourceDefinition(cu, decl, env)

	assert.True(t, def.DefinesToString())
	assert.False(t, def.DefinesEquals(), "equals(other: int) must not count: its descriptor differs from (Ljava/lang/Object;)Z")
	assert.False(t, def.DefinesHashCode())
}

func TestSourceDefinition_ImplicitGetterSetter(t *testing.T) {
	env := newFakeEnv()
	registerObject(env)

	decl := &ast.TypeDeclaration{
		Kind: ast.ClassKind,
		Name: "Point",
		Members: []ast.Declaration{
			&ast.PropertyDeclaration{Name: "x", Type: intType()},
			&ast.PropertyDeclaration{Name: "y", Type: intType(), Initializer: intLit("0")},
		},
	}
	cu := &ast.CompilationUnit{Namespace: "demo"}
	def := NewSourceDefinition(cu, decl, env)

	_, ok, err := def.FindMethod("getX", nil, false)
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = def.FindMethod("setX", []*ast.Argument{positionalArg(intLit("1"))}, false)
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = def.FindMethod("getY", nil, false)
	require.NoError(t, err)
	assert.True(t, ok)

	// y has an initializer: computed, so no setter is materialized.
	_, ok, err = def.FindMethod("setY", []*ast.Argument{positionalArg(intLit("1"))}, false)
	require.NoError(t, err)
	assert.False(t, ok)

	canAssign, err := def.CanFieldBeAssigned("y")
	require.NoError(t, err)
	assert.False(t, canAssign)
}

func TestSourceDefinition_DuplicateMethodName(t *testing.T) {
	env := newFakeEnv()
	registerObject(env)

	decl := &ast.TypeDeclaration{
		Kind: ast.ClassKind,
		Name: "Bad",
		Members: []ast.Declaration{
			&ast.MethodDeclaration{Name: "frob", ReturnType: &ast.VoidTypeUsage{}, Body: []ast.Statement{}},
			&ast.MethodDeclaration{Name: "frob", ReturnType: &ast.VoidTypeUsage{}, Body: []ast.Statement{}},
		},
	}
	cu := &ast.CompilationUnit{Namespace: "demo"}
	def := NewSourceDefinition(cu, decl, env)

	_, err := def.ensureMethods()
	require.Error(t, err)
	assert.IsType(t, &DuplicateMethodNameError{}, err)
}

func TestExternalDefinition_OverloadResolution(t *testing.T) {
	env := newFakeEnv()
	obj := NewExternalDefinition(&ExternalSpec{QualifiedName: "java/lang/Object"}, env)
	env.defs["java/lang/Object"] = obj

	str := NewExternalDefinition(&ExternalSpec{
		QualifiedName: "java/lang/String",
		Superclass:    "java/lang/Object",
		Constructors: []*ExternalConstructor{
			{Descriptor: "()V"},
			{Parameters: []*Parameter{{Name: "arg0", Type: stringType()}}, Descriptor: "(Ljava/lang/String;)V"},
		},
	}, env)
	env.defs["java/lang/String"] = str

	_, ok, err := str.FindConstructor(nil)
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = str.FindConstructor([]*ast.Argument{positionalArg(stringLit("x"))})
	require.NoError(t, err)
	assert.True(t, ok)

	ancestors, err := str.Ancestors()
	require.NoError(t, err)
	require.Len(t, ancestors, 1)
	assert.Equal(t, "java/lang/Object", ancestors[0].QualifiedName())
}
