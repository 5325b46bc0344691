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

package ast

// PrimitiveKind enumerates the primitive type usages.
type PrimitiveKind int

const (
	// BoolPrimitive is the boolean primitive.
	BoolPrimitive PrimitiveKind = iota
	// ByteType is the byte primitive.
	ByteType
	// CharType is the char primitive.
	CharType
	// ShortType is the short primitive.
	ShortType
	// IntType is the int primitive.
	IntType
	// LongType is the long primitive.
	LongType
	// FloatType is the float primitive.
	FloatType
	// DoubleType is the double primitive.
	DoubleType
)

// TypeUsage is the interface all type usage nodes implement. Per spec.md
// §3, a type usage is one of: primitive, void, reference-to-type (with
// optional type arguments), array-of, or type-variable.
type TypeUsage interface {
	Node
	typeUsage()
}

// PrimitiveTypeUsage is a use of a primitive type.
type PrimitiveTypeUsage struct {
	base
	Kind PrimitiveKind
}

func (n *PrimitiveTypeUsage) node()      {}
func (n *PrimitiveTypeUsage) typeUsage() {}

// VoidTypeUsage is a use of the void type (method return position only).
type VoidTypeUsage struct{ base }

func (n *VoidTypeUsage) node()      {}
func (n *VoidTypeUsage) typeUsage() {}

// ReferenceTypeUsage is a use of a named (source-defined or external)
// reference type, possibly parameterized.
type ReferenceTypeUsage struct {
	base
	// Name is the referenced type name as written at the use site; it may
	// be simple or dotted-qualified.
	Name string
	// TypeArguments is the optional list of type arguments.
	TypeArguments []TypeUsage
}

func (n *ReferenceTypeUsage) node()      {}
func (n *ReferenceTypeUsage) typeUsage() {}

// ArrayTypeUsage is a use of an array-of type.
type ArrayTypeUsage struct {
	base
	Element TypeUsage
}

func (n *ArrayTypeUsage) node()      {}
func (n *ArrayTypeUsage) typeUsage() {}

// TypeVariableDeclSite indicates where a type variable was declared.
type TypeVariableDeclSite int

const (
	// ClassDeclSite marks a type variable declared on a class/interface.
	ClassDeclSite TypeVariableDeclSite = iota
	// MethodDeclSite marks a type variable declared on a method.
	MethodDeclSite
	// ConstructorDeclSite marks a type variable declared on a constructor.
	ConstructorDeclSite
)

// TypeVariable is data-only: spec.md §9 keeps type variables opaque, no
// operation resolves them to a concrete type in this core.
type TypeVariable struct {
	// Name is the type variable's simple name.
	Name string
	// DeclSite records where this variable was declared.
	DeclSite TypeVariableDeclSite
	// Bounds is the optional list of bound type usages.
	Bounds []TypeUsage
}

// TypeVariableUsage is a use of a type variable at a use site.
type TypeVariableUsage struct {
	base
	Name string
}

func (n *TypeVariableUsage) node()      {}
func (n *TypeVariableUsage) typeUsage() {}
