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
)

// The error taxonomy below corresponds to the kinds named in spec.md §7
// that originate from the type definition model. The resolver never
// throws on "not found": these are only ever returned for conditions
// spec.md describes as failures, not absences.

// IllOrderedParametersError marks a call site where a positional argument
// follows a named one.
type IllOrderedParametersError struct{}

func (e *IllOrderedParametersError) Error() string {
	return "positional argument follows a named argument"
}

// UnresolvedConstructorError marks a constructor call with no matching
// candidate.
type UnresolvedConstructorError struct {
	TypeName string
	Args     []*ast.Argument
}

func (e *UnresolvedConstructorError) Error() string {
	return fmt.Sprintf("no constructor of %q matches the given %d argument(s)", e.TypeName, len(e.Args))
}

// UnresolvedMethodError marks a method call with no matching candidate.
type UnresolvedMethodError struct {
	TypeName   string
	MethodName string
	Args       []*ast.Argument
}

func (e *UnresolvedMethodError) Error() string {
	return fmt.Sprintf("no method %q on %q matches the given %d argument(s)", e.MethodName, e.TypeName, len(e.Args))
}

// UnsupportedInheritanceError marks an implicit constructor synthesis that
// could not determine a unique inherited parameter list.
type UnsupportedInheritanceError struct {
	TypeName     string
	BaseName     string
	ConstructorN int
}

func (e *UnsupportedInheritanceError) Error() string {
	return fmt.Sprintf("%q cannot synthesize an implicit constructor: base type %q declares %d constructors (exactly one required)",
		e.TypeName, e.BaseName, e.ConstructorN)
}

// MultipleExplicitConstructorsError marks a type declaring more than one
// explicit constructor. Declarations holds every offending declaration so
// callers can raise one diagnostic per declaration, per spec.md §8
// scenario 4.
type MultipleExplicitConstructorsError struct {
	TypeName     string
	Declarations []*ast.ConstructorDeclaration
}

func (e *MultipleExplicitConstructorsError) Error() string {
	return fmt.Sprintf("%q declares %d explicit constructors, at most one is permitted", e.TypeName, len(e.Declarations))
}

// DuplicateMethodNameError marks two direct method declarations sharing a
// name (no overloading among source-defined methods, spec.md §3).
type DuplicateMethodNameError struct {
	TypeName   string
	MethodName string
}

func (e *DuplicateMethodNameError) Error() string {
	return fmt.Sprintf("%q declares method %q more than once", e.TypeName, e.MethodName)
}

// InvalidExtensionError marks a base-type or implemented-interface
// reference that does not resolve to a class (for Base) or an interface
// (for an implemented interface).
type InvalidExtensionError struct {
	TypeName   string
	RefName    string
	WantClass  bool
}

func (e *InvalidExtensionError) Error() string {
	kind := "interface"
	if e.WantClass {
		kind = "class"
	}
	return fmt.Sprintf("%q: %q is not a %s", e.TypeName, e.RefName, kind)
}

// InternalError marks a postcondition violation: the caller invoked an
// operation (typically FindMethodByDescriptors) with arguments that
// should have been impossible after type checking. It aborts compilation
// rather than being collected (spec.md §7).
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Message
}
