// SPDX-License-Identifier: MPL-2.0

package groupfile

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/langjs/langjs/pkg/cueutil"
	"github.com/langjs/langjs/pkg/localetree"
)

var (
	// ErrUnsupported is returned for files whose extension has no decoder.
	ErrUnsupported = errors.New("unsupported group file format")
	// ErrNotMapping is returned when a file's top-level value is not a mapping.
	ErrNotMapping = errors.New("top-level value must be a mapping")
)

type decodeFunc func(data []byte, name string) (*localetree.Node, error)

var decoders = map[string]decodeFunc{
	".json": decodeJSON,
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".toml": decodeTOML,
	".cue":  decodeCUE,
}

// Extensions returns the supported file extensions, sorted.
func Extensions() []string {
	return []string{".cue", ".json", ".toml", ".yaml", ".yml"}
}

// Supported reports whether name has an extension Load can decode.
func Supported(name string) bool {
	_, ok := decoders[strings.ToLower(path.Ext(name))]
	return ok
}

// GroupName returns the group key for a file: its base name without extension.
func GroupName(name string) string {
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}

// Load reads name from fsys and decodes it according to its extension.
func Load(fsys fs.FS, name string) (*localetree.Node, error) {
	decode, ok := decoders[strings.ToLower(path.Ext(name))]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupported)
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, name); err != nil {
		return nil, err
	}

	node, err := decode(data, name)
	if err != nil {
		return nil, err
	}
	return node, nil
}
