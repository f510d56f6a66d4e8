// SPDX-License-Identifier: MPL-2.0

package langjs

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"

	"github.com/langjs/langjs/pkg/groupfile"
	"github.com/langjs/langjs/pkg/localetree"
	"github.com/langjs/langjs/pkg/rewrite"
)

const (
	// VendorDir is the directory below the lang root holding package
	// translations. It is never read as a locale.
	VendorDir = "vendor"
	// VendorKey is the reserved key under which vendor packages are merged
	// into each locale.
	VendorKey = "vendor"

	stringsFileExt = ".json"
)

// builder reads a lang root into a LocaleTree, rewriting keys and values on
// the way in.
type builder struct {
	fsys      fs.FS
	root      string
	lib       rewrite.Library
	langFiles []string
	logger    *log.Logger
}

// buildLocales reads every locale directory (and root-level <locale>.json
// strings file) below the root.
func (b *builder) buildLocales() (*localetree.Node, error) {
	entries, err := fs.ReadDir(b.fsys, ".")
	if err != nil {
		return nil, b.loadError(".", err)
	}

	tree := localetree.NewBranch()
	for _, entry := range entries {
		name := entry.Name()
		if isHidden(name) || name == VendorDir {
			continue
		}

		switch {
		case entry.IsDir():
			b.checkLocale(name)
			groups, err := b.buildDir(name)
			if err != nil {
				return nil, err
			}
			if err := mergeUnder(tree, name, groups); err != nil {
				return nil, b.loadError(name, err)
			}
		case strings.EqualFold(path.Ext(name), stringsFileExt):
			locale := groupfile.GroupName(name)
			b.checkLocale(locale)
			raw, err := groupfile.Load(b.fsys, name)
			if err != nil {
				return nil, b.loadError(name, err)
			}
			b.logger.Debug("loaded strings file", "locale", locale, "path", name)
			if err := mergeUnder(tree, locale, b.rewriteTree(raw)); err != nil {
				return nil, b.loadError(name, err)
			}
		default:
			b.logger.Debug("skipping file in lang root", "path", name)
		}
	}
	return tree, nil
}

// buildDir reads the groups and nested directories of dir.
func (b *builder) buildDir(dir string) (*localetree.Node, error) {
	entries, err := fs.ReadDir(b.fsys, dir)
	if err != nil {
		return nil, b.loadError(dir, err)
	}

	node := localetree.NewBranch()
	for _, entry := range entries {
		name := entry.Name()
		if isHidden(name) {
			continue
		}
		p := path.Join(dir, name)

		if entry.IsDir() {
			sub, err := b.buildDir(p)
			if err != nil {
				return nil, err
			}
			if err := mergeUnder(node, name, sub); err != nil {
				return nil, b.loadError(p, err)
			}
			continue
		}

		if !groupfile.Supported(name) {
			b.logger.Debug("skipping unsupported file", "path", p)
			continue
		}
		group := groupfile.GroupName(name)
		if len(b.langFiles) > 0 && !slices.Contains(b.langFiles, group) {
			continue
		}

		raw, err := groupfile.Load(b.fsys, p)
		if err != nil {
			return nil, b.loadError(p, err)
		}
		b.logger.Debug("loaded group", "group", group, "path", p, "keys", raw.Len())
		if err := mergeUnder(node, group, b.rewriteTree(raw)); err != nil {
			return nil, b.loadError(p, err)
		}
	}
	return node, nil
}

// buildVendor reads vendor/<package>/<locale>/... into a
// package -> locale -> group tree. A missing vendor directory yields nil.
func (b *builder) buildVendor() (*localetree.Node, error) {
	entries, err := fs.ReadDir(b.fsys, VendorDir)
	if errors.Is(err, fs.ErrNotExist) {
		b.logger.Debug("no vendor directory", "path", b.display(VendorDir))
		return nil, nil
	}
	if err != nil {
		return nil, b.loadError(VendorDir, err)
	}

	tree := localetree.NewBranch()
	for _, entry := range entries {
		if !entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		pkg, err := b.buildVendorPackage(path.Join(VendorDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		tree.Set(entry.Name(), pkg)
	}
	return tree, nil
}

// buildVendorPackage reads the locale directories of one vendor package.
// Files next to them belong to no locale and are skipped.
func (b *builder) buildVendorPackage(dir string) (*localetree.Node, error) {
	entries, err := fs.ReadDir(b.fsys, dir)
	if err != nil {
		return nil, b.loadError(dir, err)
	}

	locales := localetree.NewBranch()
	for _, entry := range entries {
		name := entry.Name()
		if isHidden(name) {
			continue
		}
		p := path.Join(dir, name)
		if !entry.IsDir() {
			b.logger.Debug("skipping file outside a vendor locale", "path", p)
			continue
		}
		groups, err := b.buildDir(p)
		if err != nil {
			return nil, err
		}
		locales.Set(name, groups)
	}
	return locales, nil
}

// rewriteTree returns a copy of raw with every key and value rewritten.
func (b *builder) rewriteTree(raw *localetree.Node) *localetree.Node {
	out := localetree.NewBranch()
	for key, child := range raw.All() {
		if child.IsLeaf() {
			out.Set(rewrite.Key(key), localetree.Leaf(rewrite.String(child.Value(), b.lib)))
			continue
		}
		out.Set(rewrite.Key(key), b.rewriteTree(child))
	}
	return out
}

func (b *builder) checkLocale(name string) {
	if _, err := language.Parse(name); err != nil {
		b.logger.Warn("locale is not a valid BCP 47 tag", "locale", name)
	}
}

func (b *builder) loadError(rel string, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		return err
	}
	return &LoadError{Path: b.display(rel), Err: err}
}

// display turns a slash-separated path inside fsys into one the user can
// locate on disk.
func (b *builder) display(rel string) string {
	if b.root == "" {
		return rel
	}
	return filepath.Join(b.root, filepath.FromSlash(rel))
}

// mergeUnder deep-merges child into parent[key].
func mergeUnder(parent *localetree.Node, key string, child *localetree.Node) error {
	patch := localetree.NewBranch()
	patch.Set(key, child)
	return localetree.Merge(parent, patch)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
