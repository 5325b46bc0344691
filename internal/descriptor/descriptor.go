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

// Package descriptor builds and parses JVM field/method descriptors and
// internal names per spec.md §6. It has no dependency on the AST or the
// type definition model so it can be reused by the archive provider (which
// reads descriptors out of class files) and by the type definition model
// (which builds them).
package descriptor

import "strings"

// Well-known internal names used throughout the core.
const (
	// ObjectInternalName is the internal name of the platform root type.
	ObjectInternalName = "java/lang/Object"
	// StringInternalName is the internal name of the platform string type.
	StringInternalName = "java/lang/String"
	// MapInternalName is the internal name of the defaults-map bag type
	// appended to constructors with defaulted parameters (spec.md §4.3.2).
	MapInternalName = "java/util/Map"
)

// ToInternal converts a dotted canonical name to its '/' internal form.
func ToInternal(canonical string) string {
	return strings.ReplaceAll(canonical, ".", "/")
}

// ToCanonical converts a '/' internal name back to dotted canonical form.
func ToCanonical(internal string) string {
	return strings.ReplaceAll(internal, "/", ".")
}

// Primitive is one of the JVM primitive descriptor letters.
type Primitive byte

// The primitive descriptor letters, per spec.md §6.
const (
	Void    Primitive = 'V'
	Boolean Primitive = 'Z'
	Byte    Primitive = 'B'
	Char    Primitive = 'C'
	Short   Primitive = 'S'
	Int     Primitive = 'I'
	Long    Primitive = 'J'
	Float   Primitive = 'F'
	Double  Primitive = 'D'
)

// PrimitiveDescriptor returns the single-letter descriptor for p.
func PrimitiveDescriptor(p Primitive) string {
	return string(rune(p))
}

// Reference returns the field descriptor for a reference type given its
// internal name, e.g. Reference("java/lang/String") == "Ljava/lang/String;".
func Reference(internalName string) string {
	return "L" + internalName + ";"
}

// Array returns the field descriptor for an array of elem.
func Array(elem string) string {
	return "[" + elem
}

// Method assembles a full method descriptor from ordered parameter field
// descriptors and a return descriptor, e.g.
// Method([]string{"I", "Ljava/lang/String;"}, "V") == "(ILjava/lang/String;)V".
func Method(params []string, ret string) string {
	var b strings.Builder
	b.WriteByte('(')
	for _, p := range params {
		b.WriteString(p)
	}
	b.WriteByte(')')
	b.WriteString(ret)
	return b.String()
}

// SplitMethodParams parses the parenthesized parameter portion of a method
// descriptor into its individual field descriptors, in order. It returns
// an error if the descriptor is not well-formed with respect to the JVM
// descriptor grammar (spec.md §6).
func SplitMethodParams(methodDescriptor string) ([]string, string, error) {
	if len(methodDescriptor) == 0 || methodDescriptor[0] != '(' {
		return nil, "", errMalformed(methodDescriptor)
	}
	closeIdx := strings.IndexByte(methodDescriptor, ')')
	if closeIdx < 0 {
		return nil, "", errMalformed(methodDescriptor)
	}
	params, err := splitFieldDescriptors(methodDescriptor[1:closeIdx])
	if err != nil {
		return nil, "", err
	}
	ret := methodDescriptor[closeIdx+1:]
	if _, _, err := readOneFieldDescriptor(ret); err != nil {
		return nil, "", err
	}
	return params, ret, nil
}

func splitFieldDescriptors(s string) ([]string, error) {
	var result []string
	for len(s) > 0 {
		desc, rest, err := readOneFieldDescriptor(s)
		if err != nil {
			return nil, err
		}
		result = append(result, desc)
		s = rest
	}
	return result, nil
}

// readOneFieldDescriptor reads a single field (or void) descriptor off the
// front of s, returning the descriptor and the unconsumed remainder.
func readOneFieldDescriptor(s string) (string, string, error) {
	if len(s) == 0 {
		return "", "", errMalformed(s)
	}
	switch s[0] {
	case byte(Void), byte(Boolean), byte(Byte), byte(Char), byte(Short), byte(Int), byte(Long), byte(Float), byte(Double):
		return s[:1], s[1:], nil
	case '[':
		desc, rest, err := readOneFieldDescriptor(s[1:])
		if err != nil {
			return "", "", err
		}
		return "[" + desc, rest, nil
	case 'L':
		idx := strings.IndexByte(s, ';')
		if idx < 0 {
			return "", "", errMalformed(s)
		}
		return s[:idx+1], s[idx+1:], nil
	default:
		return "", "", errMalformed(s)
	}
}

type malformedError struct{ descriptor string }

func (e *malformedError) Error() string {
	return "malformed descriptor: " + e.descriptor
}

func errMalformed(s string) error { return &malformedError{descriptor: s} }
