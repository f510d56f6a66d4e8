// SPDX-License-Identifier: MPL-2.0

package langjs

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"

	"github.com/langjs/langjs/pkg/localetree"
	"github.com/langjs/langjs/pkg/rewrite"
)

// ErrNotDirectory is the cause of a LoadError for a lang root that is a file.
var ErrNotDirectory = errors.New("not a directory")

type (
	// Options configures a Generator.
	Options struct {
		// PluralizationLibrary selects how "|" separators are rewritten.
		PluralizationLibrary rewrite.Library
		// LangFiles restricts generation to the named groups. Empty means all.
		LangFiles []string
		// Logger receives debug and warning output. Nil discards it.
		Logger *log.Logger
	}

	// Generator builds locale modules from lang directories. It holds no
	// state between calls and is safe for concurrent use.
	Generator struct {
		opts   Options
		logger *log.Logger
	}

	// LocaleModule is the rendered output for one locale.
	LocaleModule struct {
		Locale  string
		Content string
	}
)

// New creates a Generator.
func New(opts Options) *Generator {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{opts: opts, logger: logger}
}

// GenerateFromPath renders the lang directory at root in the given format
// ("" selects es6). With withVendor, root/vendor is merged under each
// locale's "vendor" key.
func (g *Generator) GenerateFromPath(root, format string, withVendor bool) (string, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	tree, err := g.BuildFromPath(root, withVendor)
	if err != nil {
		return "", err
	}
	return Render(tree, f)
}

// GenerateFromFS is GenerateFromPath over an arbitrary file system whose root
// is the lang directory.
func (g *Generator) GenerateFromFS(fsys fs.FS, format string, withVendor bool) (string, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	tree, err := g.Build(fsys, withVendor)
	if err != nil {
		return "", err
	}
	return Render(tree, f)
}

// GenerateMultiple renders one module per locale, in locale order.
func (g *Generator) GenerateMultiple(root, format string, withVendor bool) ([]LocaleModule, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	tree, err := g.BuildFromPath(root, withVendor)
	if err != nil {
		return nil, err
	}

	modules := make([]LocaleModule, 0, tree.Len())
	for locale, data := range tree.All() {
		content, err := Render(data, f)
		if err != nil {
			return nil, err
		}
		modules = append(modules, LocaleModule{Locale: locale, Content: content})
	}
	return modules, nil
}

// BuildFromPath builds the rewritten LocaleTree for the lang directory at root.
func (g *Generator) BuildFromPath(root string, withVendor bool) (*localetree.Node, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &LoadError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &LoadError{Path: root, Err: ErrNotDirectory}
	}
	return g.build(os.DirFS(root), root, withVendor)
}

// Build builds the rewritten LocaleTree for a lang directory exposed as fsys.
func (g *Generator) Build(fsys fs.FS, withVendor bool) (*localetree.Node, error) {
	return g.build(fsys, "", withVendor)
}

func (g *Generator) build(fsys fs.FS, root string, withVendor bool) (*localetree.Node, error) {
	if valid, errs := g.opts.PluralizationLibrary.IsValid(); !valid {
		return nil, errs[0]
	}

	b := &builder{
		fsys:      fsys,
		root:      root,
		lib:       g.opts.PluralizationLibrary,
		langFiles: g.opts.LangFiles,
		logger:    g.logger,
	}

	tree, err := b.buildLocales()
	if err != nil {
		return nil, err
	}
	g.logger.Debug("built locale tree", "locales", tree.Keys())

	if !withVendor {
		return tree, nil
	}

	vendor, err := b.buildVendor()
	if err != nil {
		return nil, err
	}
	merged, err := MergeVendor(tree, vendor)
	if err != nil {
		return nil, b.loadError(VendorDir, err)
	}
	return merged, nil
}
