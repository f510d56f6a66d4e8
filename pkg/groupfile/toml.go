// SPDX-License-Identifier: MPL-2.0

package groupfile

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2/unstable"

	"github.com/langjs/langjs/pkg/localetree"
)

// decodeTOML drives the go-toml expression parser directly; toml.Unmarshal
// into a map would drop the key order.
func decodeTOML(data []byte, name string) (*localetree.Node, error) {
	d := &tomlDecoder{
		root:   localetree.NewBranch(),
		arrays: make(map[*localetree.Node]bool),
	}
	current := d.root

	var p unstable.Parser
	p.Reset(data)

	for p.NextExpression() {
		expr := p.Expression()
		var err error
		switch expr.Kind {
		case unstable.Table:
			current, err = d.table(tomlKey(expr.Key()))
		case unstable.ArrayTable:
			current, err = d.appendArrayTable(tomlKey(expr.Key()))
		case unstable.KeyValue:
			err = setTOMLKeyValue(current, expr)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	if err := p.Error(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return d.root, nil
}

// tomlDecoder tracks which branches are arrays of tables. Header paths that
// cross one resolve to its most recent element.
type tomlDecoder struct {
	root   *localetree.Node
	arrays map[*localetree.Node]bool
}

// table handles a [a.b] header.
func (d *tomlDecoder) table(path []string) (*localetree.Node, error) {
	parent, err := d.resolve(path[:len(path)-1])
	if err != nil {
		return nil, err
	}
	tbl, err := child(parent, path)
	if err != nil {
		return nil, err
	}
	if d.arrays[tbl] {
		return nil, fmt.Errorf("table %s is already defined as an array of tables", strings.Join(path, "."))
	}
	return tbl, nil
}

// appendArrayTable handles a [[a.b]] header and returns the new element.
func (d *tomlDecoder) appendArrayTable(path []string) (*localetree.Node, error) {
	parent, err := d.resolve(path[:len(path)-1])
	if err != nil {
		return nil, err
	}
	key := path[len(path)-1]
	list, exists := parent.Get(key)
	switch {
	case !exists:
		list = localetree.NewBranch()
		parent.Set(key, list)
		d.arrays[list] = true
	case !d.arrays[list]:
		return nil, fmt.Errorf("%s is not an array of tables", strings.Join(path, "."))
	}
	elem := localetree.NewBranch()
	list.Set(strconv.Itoa(list.Len()), elem)
	return elem, nil
}

// resolve walks path from the root, creating missing tables and stepping
// into the last element of every array of tables on the way.
func (d *tomlDecoder) resolve(path []string) (*localetree.Node, error) {
	cur := d.root
	for i := range path {
		next, err := child(cur, path[:i+1])
		if err != nil {
			return nil, err
		}
		if d.arrays[next] {
			next, _ = next.Get(strconv.Itoa(next.Len() - 1))
		}
		cur = next
	}
	return cur, nil
}

// child returns the branch named by the last key of path below parent,
// creating it when missing.
func child(parent *localetree.Node, path []string) (*localetree.Node, error) {
	key := path[len(path)-1]
	next, ok := parent.Get(key)
	if !ok {
		next = localetree.NewBranch()
		parent.Set(key, next)
		return next, nil
	}
	if !next.IsBranch() {
		return nil, &localetree.CollisionError{Path: slices.Clone(path), Existing: localetree.KindLeaf, Incoming: localetree.KindBranch}
	}
	return next, nil
}

func setTOMLKeyValue(dst *localetree.Node, kv *unstable.Node) error {
	value, err := tomlValue(kv.Value())
	if err != nil {
		return err
	}
	return dst.SetPath(tomlKey(kv.Key()), value)
}

func tomlValue(v *unstable.Node) (*localetree.Node, error) {
	switch v.Kind {
	case unstable.String:
		return localetree.Leaf(string(v.Data)), nil
	case unstable.Integer, unstable.Float, unstable.Bool,
		unstable.DateTime, unstable.LocalDate, unstable.LocalTime, unstable.LocalDateTime:
		return localetree.Leaf(string(v.Data)), nil
	case unstable.InlineTable:
		n := localetree.NewBranch()
		it := v.Children()
		for it.Next() {
			if err := setTOMLKeyValue(n, it.Node()); err != nil {
				return nil, err
			}
		}
		return n, nil
	case unstable.Array:
		n := localetree.NewBranch()
		it := v.Children()
		for i := 0; it.Next(); i++ {
			child, err := tomlValue(it.Node())
			if err != nil {
				return nil, err
			}
			n.Set(strconv.Itoa(i), child)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("unsupported TOML value kind %s", v.Kind)
	}
}

func tomlKey(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}
