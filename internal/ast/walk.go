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

// Visitor is the interface all AST visitors implement. Pre is called
// before, Post after, traversing a node's children.
type Visitor interface {
	Pre(Node) error
	Post(Node) error
}

// Walk walks the tree rooted at node, calling v.Pre/v.Post around the
// traversal of its children. node must be non-nil.
func Walk(v Visitor, node Node) error {
	if err := v.Pre(node); err != nil {
		return err
	}

	switch n := node.(type) {
	case *CompilationUnit:
		if err := walkDecls(v, n.Declarations); err != nil {
			return err
		}

	case *TypeDeclaration:
		if n.Base != nil {
			if err := Walk(v, n.Base); err != nil {
				return err
			}
		}
		for _, iface := range n.Interfaces {
			if err := Walk(v, iface); err != nil {
				return err
			}
		}
		for _, ann := range n.Annotations {
			if err := Walk(v, ann); err != nil {
				return err
			}
		}
		if err := walkDecls(v, n.Members); err != nil {
			return err
		}

	case *PropertyDeclaration:
		if n.Type != nil {
			if err := Walk(v, n.Type); err != nil {
				return err
			}
		}
		if n.Initializer != nil {
			if err := Walk(v, n.Initializer); err != nil {
				return err
			}
		}
		if n.Default != nil {
			if err := Walk(v, n.Default); err != nil {
				return err
			}
		}

	case *PropertyReference:
		// leaf, nothing to recurse into.

	case *FormalParameter:
		if n.Type != nil {
			if err := Walk(v, n.Type); err != nil {
				return err
			}
		}
		if n.Default != nil {
			if err := Walk(v, n.Default); err != nil {
				return err
			}
		}

	case *ConstructorDeclaration:
		if err := walkParams(v, n.Parameters); err != nil {
			return err
		}
		if err := walkStmts(v, n.Body); err != nil {
			return err
		}

	case *MethodDeclaration:
		if err := walkParams(v, n.Parameters); err != nil {
			return err
		}
		if n.ReturnType != nil {
			if err := Walk(v, n.ReturnType); err != nil {
				return err
			}
		}
		for _, ann := range n.Annotations {
			if err := Walk(v, ann); err != nil {
				return err
			}
		}
		if n.Body != nil {
			if err := walkStmts(v, n.Body); err != nil {
				return err
			}
		}

	case *ProgramEntryDeclaration:
		if err := walkParams(v, n.Parameters); err != nil {
			return err
		}
		if err := walkStmts(v, n.Body); err != nil {
			return err
		}

	case *Annotation:
		for _, arg := range n.Arguments {
			if err := Walk(v, arg); err != nil {
				return err
			}
		}

	case *Block:
		if err := walkStmts(v, n.Statements); err != nil {
			return err
		}

	case *ExpressionStatement:
		if n.Expr != nil {
			if err := Walk(v, n.Expr); err != nil {
				return err
			}
		}

	case *ReturnStatement:
		if n.Expr != nil {
			if err := Walk(v, n.Expr); err != nil {
				return err
			}
		}

	case *ConstructorCallExpression:
		if n.Type != nil {
			if err := Walk(v, n.Type); err != nil {
				return err
			}
		}
		for _, arg := range n.Arguments {
			if arg.Value != nil {
				if err := Walk(v, arg.Value); err != nil {
					return err
				}
			}
		}

	case *MethodCallExpression:
		if n.Receiver != nil {
			if err := Walk(v, n.Receiver); err != nil {
				return err
			}
		}
		if n.Name != nil {
			if err := Walk(v, n.Name); err != nil {
				return err
			}
		}
		for _, arg := range n.Arguments {
			if arg.Value != nil {
				if err := Walk(v, arg.Value); err != nil {
					return err
				}
			}
		}

	case *FieldAccessExpression:
		if n.Operand != nil {
			if err := Walk(v, n.Operand); err != nil {
				return err
			}
		}
		if n.Field != nil {
			if err := Walk(v, n.Field); err != nil {
				return err
			}
		}

	case *AssignmentExpression:
		if n.Left != nil {
			if err := Walk(v, n.Left); err != nil {
				return err
			}
		}
		if n.Right != nil {
			if err := Walk(v, n.Right); err != nil {
				return err
			}
		}

	case *ReferenceTypeUsage:
		for _, arg := range n.TypeArguments {
			if err := Walk(v, arg); err != nil {
				return err
			}
		}

	case *ArrayTypeUsage:
		if n.Element != nil {
			if err := Walk(v, n.Element); err != nil {
				return err
			}
		}

	case *Identifier, *NullLiteral, *BooleanLiteral, *IntLiteral, *StringLiteral,
		*PrimitiveTypeUsage, *VoidTypeUsage, *TypeVariableUsage:
		// leaves, nothing to recurse into.

	default:
		return v.Post(node)
	}

	return v.Post(node)
}

func walkDecls(v Visitor, decls []Declaration) error {
	for _, d := range decls {
		if err := Walk(v, d); err != nil {
			return err
		}
	}
	return nil
}

func walkStmts(v Visitor, stmts []Statement) error {
	for _, s := range stmts {
		if err := Walk(v, s); err != nil {
			return err
		}
	}
	return nil
}

func walkParams(v Visitor, params []*FormalParameter) error {
	for _, p := range params {
		if err := Walk(v, p); err != nil {
			return err
		}
	}
	return nil
}
