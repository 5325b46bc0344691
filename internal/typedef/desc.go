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
	"strings"

	"github.com/turin-lang/turinc/internal/ast"
	"github.com/turin-lang/turinc/internal/descriptor"
)

// refResolver resolves a ReferenceTypeUsage's written name to the
// internal ('/'-separated) qualified name of the type it denotes.
type refResolver func(name string) (string, error)

// typeUsageDescriptor converts a type usage into its JVM field (or void)
// descriptor. Per spec.md §6, type variables are erased: this core does
// not resolve generics end-to-end, so a type variable usage is erased to
// the platform root object type, exactly as Java's own erasure would do
// absent an explicit bound.
func typeUsageDescriptor(t ast.TypeUsage, resolve refResolver) (string, error) {
	switch n := t.(type) {
	case *ast.PrimitiveTypeUsage:
		return descriptor.PrimitiveDescriptor(primitiveLetter(n.Kind)), nil
	case *ast.VoidTypeUsage:
		return descriptor.PrimitiveDescriptor(descriptor.Void), nil
	case *ast.ArrayTypeUsage:
		elem, err := typeUsageDescriptor(n.Element, resolve)
		if err != nil {
			return "", err
		}
		return descriptor.Array(elem), nil
	case *ast.ReferenceTypeUsage:
		internal, err := resolve(n.Name)
		if err != nil {
			return "", err
		}
		return descriptor.Reference(internal), nil
	case *ast.TypeVariableUsage:
		return descriptor.Reference(descriptor.ObjectInternalName), nil
	default:
		return "", &InternalError{Message: fmt.Sprintf("unsupported type usage %T", t)}
	}
}

func primitiveLetter(k ast.PrimitiveKind) descriptor.Primitive {
	switch k {
	case ast.BoolPrimitive:
		return descriptor.Boolean
	case ast.ByteType:
		return descriptor.Byte
	case ast.CharType:
		return descriptor.Char
	case ast.ShortType:
		return descriptor.Short
	case ast.LongType:
		return descriptor.Long
	case ast.FloatType:
		return descriptor.Float
	case ast.DoubleType:
		return descriptor.Double
	default: // ast.IntType and any future default
		return descriptor.Int
	}
}

// paramFieldDescriptors computes the ordered field descriptors contributed
// by params to a method or constructor descriptor: the signature of every
// parameter without a default, followed by the defaults-map tail iff at
// least one parameter has a default (spec.md §4.3.2 step 5 / §4.3.3).
func paramFieldDescriptors(params []*Parameter, resolve refResolver) ([]string, error) {
	var fieldDescs []string
	hasDefault := false
	for _, p := range params {
		if p.HasDefault {
			hasDefault = true
			continue
		}
		d, err := typeUsageDescriptor(p.Type, resolve)
		if err != nil {
			return nil, err
		}
		fieldDescs = append(fieldDescs, d)
	}
	if hasDefault {
		fieldDescs = append(fieldDescs, descriptor.Reference(descriptor.MapInternalName))
	}
	return fieldDescs, nil
}

// buildConstructorDescriptor assembles the full descriptor for params.
func buildConstructorDescriptor(params []*Parameter, resolve refResolver) (string, error) {
	fieldDescs, err := paramFieldDescriptors(params, resolve)
	if err != nil {
		return "", err
	}
	return descriptor.Method(fieldDescs, descriptor.PrimitiveDescriptor(descriptor.Void)), nil
}

// buildMethodDescriptor is the method analog of buildConstructorDescriptor,
// with an explicit (non-void-forced) return type.
func buildMethodDescriptor(params []*Parameter, ret ast.TypeUsage, resolve refResolver) (string, error) {
	fieldDescs, err := paramFieldDescriptors(params, resolve)
	if err != nil {
		return "", err
	}
	retDesc, err := typeUsageDescriptor(ret, resolve)
	if err != nil {
		return "", err
	}
	return descriptor.Method(fieldDescs, retDesc), nil
}

// SimpleDescriptor assembles a constructor (ret == nil) or method
// descriptor for params and ret, resolving every ReferenceTypeUsage name
// by simple dotted-to-internal notation conversion rather than through an
// Environment. It is exported for Type Providers that synthesize their
// own ExternalConstructor/ExternalMethod descriptors straight from
// schema-derived type usages (the thrift and protobuf providers in
// package provider), which have no compilation-unit-relative name to
// resolve in the first place.
func SimpleDescriptor(params []*Parameter, ret ast.TypeUsage) (string, error) {
	resolve := func(name string) (string, error) { return descriptor.ToInternal(name), nil }
	if ret == nil {
		return buildConstructorDescriptor(params, resolve)
	}
	return buildMethodDescriptor(params, ret, resolve)
}

// DescriptorToTypeUsage converts a single field (or void) descriptor back
// into a type usage, the inverse of typeUsageDescriptor. It is exported
// for the archive and schema Type Providers (package provider), which
// only have raw descriptor/IDL-derived type strings to work from, never
// an ast.TypeUsage to begin with.
func DescriptorToTypeUsage(fieldDescriptor string) (ast.TypeUsage, error) {
	if fieldDescriptor == "" {
		return nil, &InternalError{Message: "empty field descriptor"}
	}
	switch fieldDescriptor[0] {
	case byte(descriptor.Void):
		return &ast.VoidTypeUsage{}, nil
	case byte(descriptor.Boolean), byte(descriptor.Byte), byte(descriptor.Char), byte(descriptor.Short),
		byte(descriptor.Int), byte(descriptor.Long), byte(descriptor.Float), byte(descriptor.Double):
		return &ast.PrimitiveTypeUsage{Kind: primitiveKindOf(descriptor.Primitive(fieldDescriptor[0]))}, nil
	case '[':
		elem, err := DescriptorToTypeUsage(fieldDescriptor[1:])
		if err != nil {
			return nil, err
		}
		return &ast.ArrayTypeUsage{Element: elem}, nil
	case 'L':
		internal := strings.TrimSuffix(strings.TrimPrefix(fieldDescriptor, "L"), ";")
		return &ast.ReferenceTypeUsage{Name: descriptor.ToCanonical(internal)}, nil
	default:
		return nil, &InternalError{Message: "malformed field descriptor: " + fieldDescriptor}
	}
}

// MethodDescriptorToTypeUsages splits a full method descriptor into its
// ordered parameter type usages and its return type usage.
func MethodDescriptorToTypeUsages(methodDescriptor string) ([]ast.TypeUsage, ast.TypeUsage, error) {
	paramDescs, retDesc, err := descriptor.SplitMethodParams(methodDescriptor)
	if err != nil {
		return nil, nil, err
	}
	params := make([]ast.TypeUsage, len(paramDescs))
	for i, pd := range paramDescs {
		t, err := DescriptorToTypeUsage(pd)
		if err != nil {
			return nil, nil, err
		}
		params[i] = t
	}
	ret, err := DescriptorToTypeUsage(retDesc)
	if err != nil {
		return nil, nil, err
	}
	return params, ret, nil
}

func primitiveKindOf(p descriptor.Primitive) ast.PrimitiveKind {
	switch p {
	case descriptor.Boolean:
		return ast.BoolPrimitive
	case descriptor.Byte:
		return ast.ByteType
	case descriptor.Char:
		return ast.CharType
	case descriptor.Short:
		return ast.ShortType
	case descriptor.Long:
		return ast.LongType
	case descriptor.Float:
		return ast.FloatType
	case descriptor.Double:
		return ast.DoubleType
	default:
		return ast.IntType
	}
}
