// SPDX-License-Identifier: MPL-2.0

package groupfile

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/langjs/langjs/pkg/localetree"
)

const (
	yamlNullTag  = "!!null"
	yamlMergeTag = "!!merge"
)

func decodeYAML(data []byte, name string) (*localetree.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	// An empty document decodes to a zero node.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return localetree.NewBranch(), nil
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: %w", name, ErrNotMapping)
	}

	n, err := yamlNode(root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

func yamlNode(node *yaml.Node) (*localetree.Node, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.MappingNode:
		return yamlMapping(node)
	case yaml.SequenceNode:
		n := localetree.NewBranch()
		for i, item := range node.Content {
			child, err := yamlNode(item)
			if err != nil {
				return nil, err
			}
			n.Set(strconv.Itoa(i), child)
		}
		return n, nil
	case yaml.ScalarNode:
		if node.Tag == yamlNullTag {
			return localetree.Leaf(""), nil
		}
		return localetree.Leaf(node.Value), nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", node.Line)
	}
}

func yamlMapping(node *yaml.Node) (*localetree.Node, error) {
	n := localetree.NewBranch()
	var bases []*yaml.Node

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		if key.Tag == yamlMergeTag {
			value = resolveAlias(value)
			if value.Kind == yaml.SequenceNode {
				bases = append(bases, value.Content...)
			} else {
				bases = append(bases, value)
			}
			continue
		}

		child, err := yamlNode(value)
		if err != nil {
			return nil, err
		}
		n.Set(key.Value, child)
	}

	// "<<" merge keys only fill in keys the mapping does not define itself;
	// earlier bases win over later ones.
	for _, base := range bases {
		if resolveAlias(base).Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: merge key expects a mapping", base.Line)
		}
		decoded, err := yamlNode(base)
		if err != nil {
			return nil, err
		}
		for k, child := range decoded.All() {
			if _, exists := n.Get(k); !exists {
				n.Set(k, child)
			}
		}
	}
	return n, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
