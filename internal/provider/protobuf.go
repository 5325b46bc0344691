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
	"bytes"
	"fmt"
	"strings"

	protoparser "github.com/yoheimuta/go-protoparser/v4"
	"github.com/yoheimuta/go-protoparser/v4/parser"

	"github.com/turin-lang/turinc/internal/ast"
	"github.com/turin-lang/turinc/internal/descriptor"
	"github.com/turin-lang/turinc/internal/typedef"
)

// ProtobufSchemaProvider is the second IDL-backed Type Provider SPEC_FULL
// §4.1 adds: a Turin program that references a protobuf message gets a
// Definition synthesized from the .proto file, shaped the same way a
// Thrift struct or compiled class would be (one constructor taking, and
// one assignable field for, each plain message field). Map fields and
// oneof members are not adapted: they get neither a field nor a
// constructor parameter.
type ProtobufSchemaProvider struct {
	defs map[string]typedef.Definition
	env  *envBox
}

var _ Provider = (*ProtobufSchemaProvider)(nil)

// NewProtobufSchemaProvider parses protoSource and registers a Definition
// for every message it declares (including nested messages), qualified
// under namespace.
func NewProtobufSchemaProvider(namespace string, protoSource []byte) (*ProtobufSchemaProvider, error) {
	proto, err := protoparser.Parse(bytes.NewReader(protoSource))
	if err != nil {
		return nil, fmt.Errorf("parse protobuf schema: %w", err)
	}

	p := &ProtobufSchemaProvider{defs: map[string]typedef.Definition{}}
	p.env = &envBox{}
	p.env.Environment = p
	for _, v := range proto.ProtoBody {
		if m, ok := v.(*parser.Message); ok {
			if err := p.registerMessage(namespace, m); err != nil {
				return nil, fmt.Errorf("protobuf message %s: %w", m.MessageName, err)
			}
		}
	}
	return p, nil
}

func (p *ProtobufSchemaProvider) registerMessage(namespace string, m *parser.Message) error {
	qualifiedName := descriptor.ToInternal(namespace) + "/" + m.MessageName

	var fields []*typedef.ExternalField
	var params []*typedef.Parameter
	for _, body := range m.MessageBody {
		f, ok := body.(*parser.Field)
		if !ok {
			continue
		}
		t := protoTypeToUsage(f.Type)
		fields = append(fields, &typedef.ExternalField{Name: f.FieldName, Type: t, Assignable: true})
		params = append(params, &typedef.Parameter{Name: f.FieldName, Type: t})
	}

	ctorDesc, err := typedef.SimpleDescriptor(params, nil)
	if err != nil {
		return err
	}

	spec := &typedef.ExternalSpec{
		QualifiedName: qualifiedName,
		Superclass:    descriptor.ObjectInternalName,
		Constructors:  []*typedef.ExternalConstructor{{Parameters: params, Descriptor: ctorDesc}},
		Fields:        fields,
	}
	p.defs[qualifiedName] = typedef.NewExternalDefinition(spec, p.env)

	for _, body := range m.MessageBody {
		if nested, ok := body.(*parser.Message); ok {
			if err := p.registerMessage(namespace+"."+m.MessageName, nested); err != nil {
				return err
			}
		}
	}
	return nil
}

// protoTypeToUsage maps a protobuf scalar or message/enum type name to
// the closest JVM shape protoc's Java generator would produce for it.
func protoTypeToUsage(t string) ast.TypeUsage {
	switch t {
	case "bool":
		return &ast.PrimitiveTypeUsage{Kind: ast.BoolPrimitive}
	case "int32", "sint32", "sfixed32", "uint32", "fixed32":
		return &ast.PrimitiveTypeUsage{Kind: ast.IntType}
	case "int64", "sint64", "sfixed64", "uint64", "fixed64":
		return &ast.PrimitiveTypeUsage{Kind: ast.LongType}
	case "float":
		return &ast.PrimitiveTypeUsage{Kind: ast.FloatType}
	case "double":
		return &ast.PrimitiveTypeUsage{Kind: ast.DoubleType}
	case "string":
		return &ast.ReferenceTypeUsage{Name: "java.lang.String"}
	case "bytes":
		return &ast.ArrayTypeUsage{Element: &ast.PrimitiveTypeUsage{Kind: ast.ByteType}}
	default:
		// A message or enum type name; left unresolved for the composed
		// resolver to chase down, the same way an in-source reference is.
		return &ast.ReferenceTypeUsage{Name: t}
	}
}

// Bind rebinds every Definition built by this provider to resolve
// superclass lookups against the fully composed resolver.
func (p *ProtobufSchemaProvider) Bind(env typedef.Environment) { p.env.Bind(env) }

// FindTypeDefinition looks up a schema-derived type by internal name.
func (p *ProtobufSchemaProvider) FindTypeDefinition(qualifiedName string) (typedef.Definition, bool, error) {
	d, ok := p.defs[qualifiedName]
	return d, ok, nil
}

// FindPeerProperty is unused by external definitions.
func (p *ProtobufSchemaProvider) FindPeerProperty(ref *ast.PropertyReference, enclosing *ast.TypeDeclaration) (*ast.PropertyDeclaration, bool, error) {
	return nil, false, nil
}

// HasPackage reports whether any schema-derived type lives under the
// given internal package prefix.
func (p *ProtobufSchemaProvider) HasPackage(internalPackage string) bool {
	prefix := strings.TrimSuffix(internalPackage, "/") + "/"
	for name := range p.defs {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
