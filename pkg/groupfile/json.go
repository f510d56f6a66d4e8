// SPDX-License-Identifier: MPL-2.0

package groupfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/langjs/langjs/pkg/localetree"
)

// decodeJSON walks the token stream so object keys keep their source order,
// which unmarshalling into a map would lose.
func decodeJSON(data []byte, name string) (*localetree.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return localetree.NewBranch(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%s: %w", name, ErrNotMapping)
	}

	root, err := readJSONObject(dec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: unexpected data after top-level object", name)
	}
	return root, nil
}

func readJSONObject(dec *json.Decoder) (*localetree.Node, error) {
	n := localetree.NewBranch()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		child, err := readJSONValue(dec)
		if err != nil {
			return nil, err
		}
		n.Set(key, child)
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return n, nil
}

func readJSONArray(dec *json.Decoder) (*localetree.Node, error) {
	n := localetree.NewBranch()
	for i := 0; dec.More(); i++ {
		child, err := readJSONValue(dec)
		if err != nil {
			return nil, err
		}
		n.Set(strconv.Itoa(i), child)
	}
	// closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return n, nil
}

func readJSONValue(dec *json.Decoder) (*localetree.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return readJSONObject(dec)
		case '[':
			return readJSONArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", v)
		}
	case string:
		return localetree.Leaf(v), nil
	case json.Number:
		return localetree.Leaf(v.String()), nil
	case bool:
		return localetree.Leaf(strconv.FormatBool(v)), nil
	case nil:
		return localetree.Leaf(""), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}
