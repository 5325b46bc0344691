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

import "fmt"

// NodeID is a stable, dense handle assigned to a node when it is linked
// into a Tree. IDs make the parent relation a sidecar lookup rather than a
// pointer embedded in the node itself, so the node structs stay a simple
// ownership DAG (see the "cyclic AST" design note).
type NodeID uint32

// Tree is the result of linking a CompilationUnit's nodes. It is built
// once, in a single pass, after the (out of scope) parser assembles the
// tree; re-linking is idempotent and simply rebuilds the sidecar maps.
type Tree struct {
	root   *CompilationUnit
	ids    map[Node]NodeID
	nodes  []Node
	parent []NodeID
}

// noParent is the sentinel parent ID for the root node.
const noParent NodeID = 0

// LinkParents walks root in a single pass and builds a Tree mapping every
// node to a stable NodeID and every non-root node to its parent's NodeID.
func LinkParents(root *CompilationUnit) (*Tree, error) {
	t := &Tree{
		root: root,
		ids:  make(map[Node]NodeID),
	}
	// Reserve ID 0 as an empty placeholder so noParent (0) never names a
	// real node; the root is assigned ID 1 by the walk and keeps noParent
	// as its parent entry.
	t.nodes = append(t.nodes, nil)
	t.parent = append(t.parent, noParent)

	linker := &parentLinker{tree: t, stack: []NodeID{}}
	if err := Walk(linker, root); err != nil {
		return nil, fmt.Errorf("link parents: %w", err)
	}
	return t, nil
}

// Root returns the compilation unit this tree was built from.
func (t *Tree) Root() *CompilationUnit { return t.root }

// ID returns the stable handle for node, assigning a fresh one if this is
// the first time node has been seen (used by callers that mint nodes
// outside of a full LinkParents pass, e.g. tests).
func (t *Tree) ID(node Node) NodeID {
	if id, ok := t.ids[node]; ok {
		return id
	}
	id := NodeID(len(t.nodes))
	t.ids[node] = id
	t.nodes = append(t.nodes, node)
	t.parent = append(t.parent, noParent)
	return id
}

// Parent returns the parent of node, or nil if node is the root or is
// unknown to this tree.
func (t *Tree) Parent(node Node) Node {
	id, ok := t.ids[node]
	if !ok {
		return nil
	}
	parentID := t.parent[id]
	if parentID == noParent {
		return nil
	}
	return t.nodes[parentID]
}

// Ancestors returns node's ancestor chain, innermost (immediate parent)
// first, root last.
func (t *Tree) Ancestors(node Node) []Node {
	var result []Node
	for cur := t.Parent(node); cur != nil; cur = t.Parent(cur) {
		result = append(result, cur)
	}
	return result
}

// parentLinker is an ast.Visitor that records parent/child relations as it
// walks, using an explicit stack instead of storing anything on the nodes.
type parentLinker struct {
	tree  *Tree
	stack []NodeID
}

func (p *parentLinker) Pre(node Node) error {
	id := p.tree.ID(node)
	if len(p.stack) > 0 {
		p.tree.parent[id] = p.stack[len(p.stack)-1]
	}
	p.stack = append(p.stack, id)
	return nil
}

func (p *parentLinker) Post(node Node) error {
	p.stack = p.stack[:len(p.stack)-1]
	return nil
}
