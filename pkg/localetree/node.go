// SPDX-License-Identifier: MPL-2.0

// Package localetree holds the in-memory translation tree: an ordered,
// recursive structure whose nodes are either string leaves or branches
// mapping keys to child nodes.
//
// Branches remember the order in which keys were first inserted. That order
// is part of the generated output, so every operation in this package
// preserves it.
package localetree

import (
	"iter"
	"slices"
)

const (
	// KindLeaf is a node holding a single string value.
	KindLeaf Kind = iota + 1
	// KindBranch is a node holding ordered child nodes.
	KindBranch
)

type (
	// Kind discriminates leaf and branch nodes.
	Kind uint8

	// Node is either a leaf (string value) or a branch (ordered children).
	// The zero value is not usable; construct nodes with Leaf or NewBranch.
	Node struct {
		kind     Kind
		value    string
		keys     []string
		children map[string]*Node
	}
)

// Leaf returns a leaf node holding value.
func Leaf(value string) *Node {
	return &Node{kind: KindLeaf, value: value}
}

// NewBranch returns an empty branch node.
func NewBranch() *Node {
	return &Node{kind: KindBranch, children: make(map[string]*Node)}
}

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindBranch:
		return "branch"
	default:
		return "unknown"
	}
}

// Kind reports whether n is a leaf or a branch.
func (n *Node) Kind() Kind { return n.kind }

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool { return n.kind == KindLeaf }

// IsBranch reports whether n is a branch.
func (n *Node) IsBranch() bool { return n.kind == KindBranch }

// Value returns the string of a leaf, or "" for a branch.
func (n *Node) Value() string { return n.value }

// Len returns the number of children of a branch.
func (n *Node) Len() int { return len(n.keys) }

// Keys returns the child keys of a branch in insertion order.
func (n *Node) Keys() []string { return slices.Clone(n.keys) }

// Get returns the child stored under key.
func (n *Node) Get(key string) (*Node, bool) {
	child, ok := n.children[key]
	return child, ok
}

// Set stores child under key. An existing key keeps its position.
// Set panics when called on a leaf.
func (n *Node) Set(key string, child *Node) {
	if n.kind != KindBranch {
		panic("localetree: Set called on a leaf node")
	}
	if _, exists := n.children[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.children[key] = child
}

// Delete removes key from a branch, if present.
func (n *Node) Delete(key string) {
	if _, exists := n.children[key]; !exists {
		return
	}
	delete(n.children, key)
	n.keys = slices.DeleteFunc(n.keys, func(k string) bool { return k == key })
}

// All iterates over the children of a branch in insertion order.
func (n *Node) All() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		for _, k := range n.keys {
			if !yield(k, n.children[k]) {
				return
			}
		}
	}
}

// Lookup walks path from n and returns the node found at its end.
func (n *Node) Lookup(path ...string) (*Node, bool) {
	cur := n
	for _, key := range path {
		if !cur.IsBranch() {
			return nil, false
		}
		next, ok := cur.children[key]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n.kind == KindLeaf {
		return Leaf(n.value)
	}
	out := &Node{
		kind:     KindBranch,
		keys:     slices.Clone(n.keys),
		children: make(map[string]*Node, len(n.children)),
	}
	for k, child := range n.children {
		out.children[k] = child.Clone()
	}
	return out
}

// Equal reports whether n and other have the same shape, keys (in order)
// and values.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.kind != other.kind {
		return false
	}
	if n.kind == KindLeaf {
		return n.value == other.value
	}
	if !slices.Equal(n.keys, other.keys) {
		return false
	}
	for _, k := range n.keys {
		if !n.children[k].Equal(other.children[k]) {
			return false
		}
	}
	return true
}
