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

// Package resolver implements the Symbol Resolver of spec.md §4.2: the
// composition layer that turns a stack of Type Providers plus the current
// file's own AST into a single name-resolution surface, with ordered
// delegation and first-hit-wins shadowing.
package resolver

import (
	"fmt"
	"strings"

	"github.com/turin-lang/turinc/internal/ast"
	"github.com/turin-lang/turinc/internal/descriptor"
	"github.com/turin-lang/turinc/internal/provider"
	"github.com/turin-lang/turinc/internal/typedef"
)

// Resolver is a composed symbol resolver: an ordered list of Type
// Providers, consulted in order, first-hit-wins (spec.md §4.2
// "Composition protocol"). It also satisfies typedef.Environment, so
// every Definition built by every provider can resolve cross-provider
// lookups (superclass, peer property) through it once Compose binds it.
type Resolver struct {
	children []provider.Provider
	trees    []*ast.Tree
}

var _ typedef.Environment = (*Resolver)(nil)

// Compose builds a Resolver over children in priority order (earlier
// providers shadow later ones) and informs every child of it as their
// parent environment, per the composition protocol. trees supplies the
// parent linkage for every compilation unit in this invocation, used to
// find a syntactic context node's enclosing namespace and type.
func Compose(trees []*ast.Tree, children ...provider.Provider) *Resolver {
	r := &Resolver{children: children, trees: trees}
	for _, c := range children {
		c.Bind(r)
	}
	return r
}

// FindTypeDefinition looks up an already-qualified (internal,
// '/'-separated) type name across every child provider in order. This is
// the typedef.Environment half of find_type_definition; ResolveTypeDefinition
// below is the richer, context-aware spec.md §4.2 operation.
func (r *Resolver) FindTypeDefinition(qualifiedName string) (typedef.Definition, bool, error) {
	for _, c := range r.children {
		d, ok, err := c.FindTypeDefinition(qualifiedName)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return d, true, nil
		}
	}
	return nil, false, nil
}

// FindPeerProperty resolves a property reference scoped to enclosing
// against every child provider in order; this is the typedef.Environment
// half of find_definition(property_reference) from spec.md §4.2.
// ResolvePeerProperty below is the richer, context-aware operation that
// finds enclosing for a caller that only has a syntactic context node.
func (r *Resolver) FindPeerProperty(ref *ast.PropertyReference, enclosing *ast.TypeDeclaration) (*ast.PropertyDeclaration, bool, error) {
	for _, c := range r.children {
		pd, ok, err := c.FindPeerProperty(ref, enclosing)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return pd, true, nil
		}
	}
	return nil, false, nil
}

// HasPackage reports whether any child provider can resolve a type under
// the given package, accepting either dotted or internal notation.
func (r *Resolver) HasPackage(name string) bool {
	internal := descriptor.ToInternal(name)
	for _, c := range r.children {
		if c.HasPackage(internal) {
			return true
		}
	}
	return false
}

// ResolveTypeDefinition implements find_type_definition(name, context):
// name may already be fully qualified (dotted) or a bare simple name, in
// which case context supplies the enclosing compilation unit's namespace
// to qualify it, falling back to java.lang to mirror the platform's own
// implicit import.
func (r *Resolver) ResolveTypeDefinition(name string, context ast.Node) (typedef.Definition, bool, error) {
	for _, candidate := range r.candidateQualifiedNames(name, context) {
		d, ok, err := r.FindTypeDefinition(candidate)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return d, true, nil
		}
	}
	return nil, false, nil
}

// ResolveTypeUsage implements find_type_usage(name, context): the same
// name resolution as ResolveTypeDefinition, wrapped as a reference type
// usage naming the resolved type's canonical name.
func (r *Resolver) ResolveTypeUsage(name string, context ast.Node) (ast.TypeUsage, bool, error) {
	d, ok, err := r.ResolveTypeDefinition(name, context)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &ast.ReferenceTypeUsage{Name: d.CanonicalName()}, true, nil
}

// ResolveSymbol implements find_symbol(name, context): it finds the type
// declaration enclosing context and delegates to that type's own
// FindSymbol (spec.md §4.3.1's default property-scanning implementation).
func (r *Resolver) ResolveSymbol(name string, context ast.Node) (typedef.Symbol, bool, error) {
	def, ok, err := r.enclosingTypeDefinition(context)
	if err != nil || !ok {
		return typedef.Symbol{}, false, err
	}
	return def.FindSymbol(name)
}

// ResolvePeerProperty implements find_definition(property_reference) for a
// caller that only has ref's syntactic context, not its enclosing
// declaration: it finds the TypeDeclaration enclosing context and scopes
// FindPeerProperty to that declaration's own members, so a same-named
// property declared on an unrelated type never satisfies ref.
func (r *Resolver) ResolvePeerProperty(ref *ast.PropertyReference, context ast.Node) (*ast.PropertyDeclaration, bool, error) {
	enclosing := r.enclosingTypeDeclaration(context)
	if enclosing == nil {
		return nil, false, nil
	}
	return r.FindPeerProperty(ref, enclosing)
}

// ResolveJVMDefinition implements find_jvm_definition(function_call): it
// resolves a constructor-call or method-call expression to the
// already-type-checked method descriptor the emitter consumes. Only
// constructor calls, unqualified calls (implicit "this"/enclosing-type
// receiver), and direct type-name-qualified static calls are supported;
// an arbitrary expression receiver would need full expression type
// inference, which is out of scope for this core (spec.md §4 covers type
// definitions and symbol resolution, not a general type checker).
func (r *Resolver) ResolveJVMDefinition(call ast.Expression, context ast.Node) (*typedef.MethodDescriptor, bool, error) {
	switch c := call.(type) {
	case *ast.ConstructorCallExpression:
		d, ok, err := r.ResolveTypeDefinition(c.Type.Name, context)
		if err != nil || !ok {
			return nil, false, err
		}
		ctor, err := d.ResolveConstructorCall(c.Arguments)
		if err != nil {
			return nil, false, err
		}
		return &typedef.MethodDescriptor{
			Owner:      d.QualifiedName(),
			Name:       "<init>",
			Descriptor: ctor.Descriptor.Descriptor,
		}, true, nil

	case *ast.MethodCallExpression:
		if c.Receiver != nil {
			ident, ok := c.Receiver.(*ast.Identifier)
			if !ok {
				return nil, false, nil
			}
			d, ok, err := r.ResolveTypeDefinition(ident.Name, context)
			if err != nil || !ok {
				return nil, false, err
			}
			m, ok, err := d.FindMethod(c.Name.Name, c.Arguments, true)
			if err != nil || !ok {
				return nil, false, err
			}
			return &m.Descriptor, true, nil
		}

		def, ok, err := r.enclosingTypeDefinition(context)
		if err != nil || !ok {
			return nil, false, err
		}
		m, ok, err := def.FindMethod(c.Name.Name, c.Arguments, false)
		if err != nil || !ok {
			return nil, false, err
		}
		return &m.Descriptor, true, nil

	default:
		return nil, false, &typedef.InternalError{Message: fmt.Sprintf("unsupported call expression %T", call)}
	}
}

// candidateQualifiedNames enumerates the internal-name candidates name
// could refer to from context, in priority order.
func (r *Resolver) candidateQualifiedNames(name string, context ast.Node) []string {
	if strings.Contains(name, ".") || strings.Contains(name, "/") {
		return []string{descriptor.ToInternal(name)}
	}
	var candidates []string
	if cu := r.enclosingUnit(context); cu != nil && cu.Namespace != "" {
		candidates = append(candidates, descriptor.ToInternal(cu.Namespace+"."+name))
	}
	candidates = append(candidates, "java/lang/"+name)
	return candidates
}

// enclosingUnit finds the ast.CompilationUnit that owns context, by
// walking whichever of r.trees recognizes context.
func (r *Resolver) enclosingUnit(context ast.Node) *ast.CompilationUnit {
	if cu, ok := context.(*ast.CompilationUnit); ok {
		return cu
	}
	for _, t := range r.trees {
		chain := t.Ancestors(context)
		if len(chain) == 0 {
			continue
		}
		if cu, ok := chain[len(chain)-1].(*ast.CompilationUnit); ok {
			return cu
		}
	}
	return nil
}

// enclosingTypeDeclaration finds the *ast.TypeDeclaration enclosing
// context, by walking whichever of r.trees recognizes context. context
// itself counts as enclosing if it is already a TypeDeclaration.
func (r *Resolver) enclosingTypeDeclaration(context ast.Node) *ast.TypeDeclaration {
	if td, ok := context.(*ast.TypeDeclaration); ok {
		return td
	}
	for _, t := range r.trees {
		chain := t.Ancestors(context)
		if len(chain) == 0 {
			continue
		}
		for _, n := range chain {
			if td, ok := n.(*ast.TypeDeclaration); ok {
				return td
			}
		}
	}
	return nil
}

// enclosingTypeDefinition finds the type declaration enclosing context
// and resolves its own Definition.
func (r *Resolver) enclosingTypeDefinition(context ast.Node) (typedef.Definition, bool, error) {
	td := r.enclosingTypeDeclaration(context)
	if td == nil {
		return nil, false, nil
	}
	name := td.Name
	if cu := r.enclosingUnit(context); cu != nil && cu.Namespace != "" {
		name = cu.Namespace + "." + td.Name
	}
	return r.FindTypeDefinition(descriptor.ToInternal(name))
}
