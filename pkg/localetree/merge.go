// SPDX-License-Identifier: MPL-2.0

package localetree

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrCollision is the sentinel wrapped by CollisionError.
var ErrCollision = errors.New("leaf and branch collide")

// CollisionError is returned when a merge or path insertion would replace a
// branch with a leaf or the other way around.
type CollisionError struct {
	// Path is the key path of the conflicting node.
	Path []string
	// Existing is the kind already present in the destination.
	Existing Kind
	// Incoming is the kind that could not be stored.
	Incoming Kind
}

// Error implements the error interface.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("cannot store %s at %q: a %s already exists there", e.Incoming, strings.Join(e.Path, "."), e.Existing)
}

// Unwrap returns ErrCollision for errors.Is() compatibility.
func (e *CollisionError) Unwrap() error { return ErrCollision }

// Merge folds src into dst. Missing keys are appended in src order, branches
// merge recursively and a leaf replaces an existing leaf in place. Mixing a
// leaf and a branch under the same key fails with a CollisionError; dst may
// be partially updated in that case.
//
// src is never modified and none of its nodes end up shared with dst.
func Merge(dst, src *Node) error {
	return mergeAt(nil, dst, src)
}

func mergeAt(path []string, dst, src *Node) error {
	if !dst.IsBranch() || !src.IsBranch() {
		return &CollisionError{Path: slices.Clone(path), Existing: dst.kind, Incoming: src.kind}
	}
	for key, incoming := range src.All() {
		childPath := append(slices.Clone(path), key)
		existing, ok := dst.Get(key)
		switch {
		case !ok:
			dst.Set(key, incoming.Clone())
		case existing.IsLeaf() && incoming.IsLeaf():
			dst.Set(key, Leaf(incoming.value))
		case existing.IsBranch() && incoming.IsBranch():
			if err := mergeAt(childPath, existing, incoming); err != nil {
				return err
			}
		default:
			return &CollisionError{Path: childPath, Existing: existing.kind, Incoming: incoming.kind}
		}
	}
	return nil
}

// SetPath stores node at path below n, creating intermediate branches as
// needed. Siblings along the way are left untouched. An existing leaf on the
// way is reported as a CollisionError.
func (n *Node) SetPath(path []string, node *Node) error {
	if len(path) == 0 {
		return errors.New("localetree: empty path")
	}
	cur := n
	for i, key := range path[:len(path)-1] {
		next, ok := cur.Get(key)
		if !ok {
			next = NewBranch()
			cur.Set(key, next)
		} else if !next.IsBranch() {
			return &CollisionError{Path: slices.Clone(path[:i+1]), Existing: KindLeaf, Incoming: KindBranch}
		}
		cur = next
	}
	if !cur.IsBranch() {
		return &CollisionError{Path: slices.Clone(path[:len(path)-1]), Existing: KindLeaf, Incoming: KindBranch}
	}
	cur.Set(path[len(path)-1], node)
	return nil
}
