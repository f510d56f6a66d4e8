// SPDX-License-Identifier: MPL-2.0

package groupfile

import (
	"fmt"
	"strconv"

	"cuelang.org/go/cue"

	"github.com/langjs/langjs/pkg/cueutil"
	"github.com/langjs/langjs/pkg/localetree"
)

func decodeCUE(data []byte, name string) (*localetree.Node, error) {
	v, err := cueutil.Compile(data, name)
	if err != nil {
		return nil, err
	}
	if v.Kind() != cue.StructKind {
		return nil, fmt.Errorf("%s: %w", name, ErrNotMapping)
	}
	n, err := cueNode(v)
	if err != nil {
		return nil, cueutil.FormatError(err, name)
	}
	return n, nil
}

func cueNode(v cue.Value) (*localetree.Node, error) {
	switch v.Kind() {
	case cue.StructKind:
		n := localetree.NewBranch()
		it, err := v.Fields()
		if err != nil {
			return nil, err
		}
		for it.Next() {
			child, err := cueNode(it.Value())
			if err != nil {
				return nil, err
			}
			n.Set(it.Selector().Unquoted(), child)
		}
		return n, nil
	case cue.ListKind:
		n := localetree.NewBranch()
		it, err := v.List()
		if err != nil {
			return nil, err
		}
		for i := 0; it.Next(); i++ {
			child, err := cueNode(it.Value())
			if err != nil {
				return nil, err
			}
			n.Set(strconv.Itoa(i), child)
		}
		return n, nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, err
		}
		return localetree.Leaf(s), nil
	case cue.NullKind:
		return localetree.Leaf(""), nil
	default:
		b, err := v.MarshalJSON()
		if err != nil {
			return nil, err
		}
		return localetree.Leaf(string(b)), nil
	}
}
