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

import "github.com/turin-lang/turinc/internal/ast"

// checkArgumentOrder validates the spec.md §3 invariant that all
// positional arguments precede all named arguments.
func checkArgumentOrder(args []*ast.Argument) error {
	seenNamed := false
	for _, a := range args {
		if a.IsNamed() {
			seenNamed = true
			continue
		}
		if seenNamed {
			return &IllOrderedParametersError{}
		}
	}
	return nil
}

// matchArguments implements the call-site resolution rule of spec.md
// §4.3.5: every parameter without a default must be bound exactly once
// (positionally or by name); every defaulted parameter may be unbound or
// bound by name; positional excess, unknown names, duplicate names, or an
// unbound non-default parameter each reject the candidate.
//
// Callers must have already validated argument order with
// checkArgumentOrder; this function assumes args is already well-ordered.
func matchArguments(params []*Parameter, args []*ast.Argument) bool {
	bound := make([]bool, len(params))
	positional := 0
	for _, a := range args {
		if !a.IsNamed() {
			if positional >= len(params) {
				return false // positional excess
			}
			bound[positional] = true
			positional++
			continue
		}
		idx := indexOfParam(params, *a.Name)
		if idx < 0 {
			return false // unknown name
		}
		if bound[idx] {
			return false // duplicate name (also catches positional+named collision)
		}
		bound[idx] = true
	}
	for i, p := range params {
		if !bound[i] && !p.HasDefault {
			return false // missing non-default parameter
		}
	}
	return true
}

func indexOfParam(params []*Parameter, name string) int {
	for i, p := range params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// findConstructorCandidate is shared by SourceDefinition and
// ExternalDefinition: given ordered candidates, return the first whose
// parameters match actual.
func findConstructorCandidate(candidates []*Constructor, actual []*ast.Argument) (*Constructor, bool, error) {
	if err := checkArgumentOrder(actual); err != nil {
		return nil, false, err
	}
	for _, c := range candidates {
		if matchArguments(c.Parameters, actual) {
			return c, true, nil
		}
	}
	return nil, false, nil
}

// findMethodCandidate is the method-resolution analog.
func findMethodCandidate(candidates []*Method, actual []*ast.Argument) (*Method, bool, error) {
	if err := checkArgumentOrder(actual); err != nil {
		return nil, false, err
	}
	for _, m := range candidates {
		if matchArguments(m.Parameters, actual) {
			return m, true, nil
		}
	}
	return nil, false, nil
}
