package domain

import (
	"fmt"
	"strings"
)

// HierarchyNode is one SpecHierarchy entry: a reference to a requirement
// placed somewhere in a specification's outline.
type HierarchyNode struct {
	// Identifier is the hierarchy node identifier.
	Identifier string

	// LastChange is the RFC3339 timestamp of the last modification.
	LastChange string

	// ObjectRef names the Requirement this node places in the outline.
	ObjectRef string
}

// NewHierarchyNode builds a hierarchy node referencing objectRef.
func NewHierarchyNode(id, lastChange, objectRef string) HierarchyNode {
	return HierarchyNode{Identifier: id, LastChange: lastChange, ObjectRef: objectRef}
}

// NodeRef addresses a node inside a HierarchyTree.
type NodeRef int

type hierarchyEntry struct {
	node     HierarchyNode
	children []NodeRef
}

// HierarchyTree is an ordered n-ary tree of hierarchy nodes stored in an arena.
// Nodes are only ever appended; siblings keep insertion order.
// The zero value is an empty tree ready to use.
type HierarchyTree struct {
	entries []hierarchyEntry
	roots   []NodeRef
}

// Insert appends node as the last sibling at the given depth.
//
// Depth 0 is the top level. For depth > 0 the node goes under the most
// recently appended node of level depth-1, which is found by following the
// last element of every level from the top. If any of those levels is
// empty a *MissingLevelError is returned and the tree is left untouched.
func (t *HierarchyTree) Insert(node HierarchyNode, depth int) error {
	if depth < 0 {
		return fmt.Errorf("%w: negative hierarchy depth %d", ErrInvalidInput, depth)
	}
	if strings.TrimSpace(node.Identifier) == "" {
		return fmt.Errorf("%w: hierarchy node identifier is empty", ErrInvalidInput)
	}
	if strings.TrimSpace(node.ObjectRef) == "" {
		return fmt.Errorf("%w: hierarchy node %q has no object reference", ErrInvalidInput, node.Identifier)
	}

	parent := NodeRef(-1)
	level := t.roots
	for l := 0; l < depth; l++ {
		if len(level) == 0 {
			return &MissingLevelError{Depth: depth, Level: l}
		}
		parent = level[len(level)-1]
		level = t.entries[parent].children
	}

	ref := NodeRef(len(t.entries))
	t.entries = append(t.entries, hierarchyEntry{node: node})
	if parent < 0 {
		t.roots = append(t.roots, ref)
	} else {
		t.entries[parent].children = append(t.entries[parent].children, ref)
	}
	return nil
}

// Len returns the total number of nodes in the tree.
func (t *HierarchyTree) Len() int {
	return len(t.entries)
}

// Roots returns the top-level nodes in order.
func (t *HierarchyTree) Roots() []NodeRef {
	return append([]NodeRef(nil), t.roots...)
}

// Children returns the children of ref in order.
func (t *HierarchyTree) Children(ref NodeRef) []NodeRef {
	if !t.valid(ref) {
		return nil
	}
	return append([]NodeRef(nil), t.entries[ref].children...)
}

// Node returns the node stored at ref.
func (t *HierarchyTree) Node(ref NodeRef) (HierarchyNode, bool) {
	if !t.valid(ref) {
		return HierarchyNode{}, false
	}
	return t.entries[ref].node, true
}

// HasChildren reports whether ref has at least one child.
func (t *HierarchyTree) HasChildren(ref NodeRef) bool {
	return t.valid(ref) && len(t.entries[ref].children) > 0
}

// Depth returns the deepest level reachable by following the last element
// of each level, or -1 for an empty tree. Inserting at Depth()+1 always succeeds.
func (t *HierarchyTree) Depth() int {
	depth := -1
	level := t.roots
	for len(level) > 0 {
		depth++
		level = t.entries[level[len(level)-1]].children
	}
	return depth
}

// WalkFunc is called for every node during Walk.
type WalkFunc func(ref NodeRef, node HierarchyNode, depth int) error

// Walk visits the tree depth-first in document order. enter is called before
// a node's children, leave after them; either may be nil. Walking stops at
// the first error returned by a callback.
func (t *HierarchyTree) Walk(enter, leave WalkFunc) error {
	type frame struct {
		ref   NodeRef
		depth int
		exit  bool
	}

	stack := make([]frame, 0, len(t.roots))
	for i := len(t.roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{ref: t.roots[i]})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		entry := t.entries[f.ref]

		if f.exit {
			if leave != nil {
				if err := leave(f.ref, entry.node, f.depth); err != nil {
					return err
				}
			}
			continue
		}

		if enter != nil {
			if err := enter(f.ref, entry.node, f.depth); err != nil {
				return err
			}
		}

		stack = append(stack, frame{ref: f.ref, depth: f.depth, exit: true})
		for i := len(entry.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{ref: entry.children[i], depth: f.depth + 1})
		}
	}
	return nil
}

func (t *HierarchyTree) valid(ref NodeRef) bool {
	return ref >= 0 && int(ref) < len(t.entries)
}
