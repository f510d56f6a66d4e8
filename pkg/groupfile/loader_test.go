// SPDX-License-Identifier: MPL-2.0

package groupfile

import (
	"errors"
	"io/fs"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/langjs/langjs/pkg/localetree"
)

// wantHelp is the tree every "help" fixture below must decode to.
func wantHelp() *localetree.Node {
	nested := localetree.NewBranch()
	nested.Set("one", localetree.Leaf("see :link"))

	n := localetree.NewBranch()
	n.Set("yes", localetree.Leaf("yes"))
	n.Set("no", localetree.Leaf("no"))
	n.Set("zeta", nested)
	n.Set("alpha", localetree.Leaf("A|B"))
	return n
}

func TestLoad_PreservesOrderAcrossFormats(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"help.json": {Data: []byte(`{"yes": "yes", "no": "no", "zeta": {"one": "see :link"}, "alpha": "A|B"}`)},
		"help.yaml": {Data: []byte("yes: \"yes\"\nno: \"no\"\nzeta:\n  one: see :link\nalpha: A|B\n")},
		"help.yml":  {Data: []byte("'yes': 'yes'\n'no': 'no'\nzeta: {one: 'see :link'}\nalpha: 'A|B'\n")},
		"help.toml": {Data: []byte("yes = \"yes\"\nno = \"no\"\nalpha = \"A|B\"\n\n[zeta]\none = \"see :link\"\n")},
		"help.cue":  {Data: []byte("yes: \"yes\"\nno: \"no\"\nzeta: one: \"see :link\"\nalpha: \"A|B\"\n")},
	}

	for _, name := range []string{"help.json", "help.yaml", "help.yml", "help.cue"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := Load(fsys, name)
			if err != nil {
				t.Fatalf("Load(%s) error = %v", name, err)
			}
			if !got.Equal(wantHelp()) {
				t.Errorf("Load(%s) keys = %v, want %v", name, got.Keys(), wantHelp().Keys())
			}
		})
	}

	t.Run("help.toml", func(t *testing.T) {
		t.Parallel()

		// TOML tables must follow the top-level keys, so "alpha" comes before "zeta".
		got, err := Load(fsys, "help.toml")
		if err != nil {
			t.Fatalf("Load(help.toml) error = %v", err)
		}
		if want := []string{"yes", "no", "alpha", "zeta"}; !slices.Equal(got.Keys(), want) {
			t.Errorf("keys = %v, want %v", got.Keys(), want)
		}
		if v, ok := got.Lookup("zeta", "one"); !ok || v.Value() != "see :link" {
			t.Errorf("zeta.one = %v", v)
		}
	})
}

func TestLoad_Scalars(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"s.json": {Data: []byte(`{"n": 3, "f": 1.50, "b": true, "z": null, "l": ["a", "b"]}`)},
		"s.yaml": {Data: []byte("n: 3\nf: 1.50\nb: true\nz: ~\nl:\n  - a\n  - b\n")},
		"s.toml": {Data: []byte("n = 3\nf = 1.50\nb = true\nl = [\"a\", \"b\"]\n")},
		"s.cue":  {Data: []byte("n: 3\nb: true\nz: null\nl: [\"a\", \"b\"]\n")},
	}

	tests := []struct {
		file string
		path []string
		want string
	}{
		{"s.json", []string{"n"}, "3"},
		{"s.json", []string{"f"}, "1.50"},
		{"s.json", []string{"b"}, "true"},
		{"s.json", []string{"z"}, ""},
		{"s.json", []string{"l", "1"}, "b"},
		{"s.yaml", []string{"n"}, "3"},
		{"s.yaml", []string{"f"}, "1.50"},
		{"s.yaml", []string{"z"}, ""},
		{"s.yaml", []string{"l", "0"}, "a"},
		{"s.toml", []string{"n"}, "3"},
		{"s.toml", []string{"b"}, "true"},
		{"s.toml", []string{"l", "1"}, "b"},
		{"s.cue", []string{"n"}, "3"},
		{"s.cue", []string{"b"}, "true"},
		{"s.cue", []string{"z"}, ""},
		{"s.cue", []string{"l", "0"}, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.file+"/"+strings.Join(tt.path, "."), func(t *testing.T) {
			t.Parallel()

			n, err := Load(fsys, tt.file)
			if err != nil {
				t.Fatalf("Load(%s) error = %v", tt.file, err)
			}
			got, ok := n.Lookup(tt.path...)
			if !ok || !got.IsLeaf() {
				t.Fatalf("missing leaf %v", tt.path)
			}
			if got.Value() != tt.want {
				t.Errorf("%v = %q, want %q", tt.path, got.Value(), tt.want)
			}
		})
	}
}

func TestLoad_TOMLDottedKeysAndArrayTables(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"g.toml": {Data: []byte(`
title = "t"
nav.home = "Home"
nav.about = "About"
inline = { a = "1", b = "2" }

[[steps]]
label = "first"

[[steps]]
label = "second"
`)},
	}

	n, err := Load(fsys, "g.toml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := []string{"title", "nav", "inline", "steps"}; !slices.Equal(n.Keys(), want) {
		t.Errorf("keys = %v, want %v", n.Keys(), want)
	}
	checks := map[string][]string{
		"Home":   {"nav", "home"},
		"About":  {"nav", "about"},
		"2":      {"inline", "b"},
		"second": {"steps", "1", "label"},
	}
	for want, path := range checks {
		if got, ok := n.Lookup(path...); !ok || got.Value() != want {
			t.Errorf("%v = %v, want %q", path, got, want)
		}
	}
}

func TestLoad_TOMLNestedArrayTables(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"n.toml": {Data: []byte(`
[[a]]
x = "1"

[[a.b]]
y = "2"

[a.c]
z = "3"

[[a]]
x = "4"

[[a.b]]
y = "5"

[[a.b]]
y = "6"
`)},
	}

	n, err := Load(fsys, "n.toml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	a, _ := n.Get("a")
	if want := []string{"0", "1"}; !slices.Equal(a.Keys(), want) {
		t.Fatalf("a keys = %v, want %v", a.Keys(), want)
	}
	checks := map[string][]string{
		"1": {"a", "0", "x"},
		"2": {"a", "0", "b", "0", "y"},
		"3": {"a", "0", "c", "z"},
		"4": {"a", "1", "x"},
		"5": {"a", "1", "b", "0", "y"},
		"6": {"a", "1", "b", "1", "y"},
	}
	for want, path := range checks {
		if got, ok := n.Lookup(path...); !ok || got.Value() != want {
			t.Errorf("%v = %v, want %q", path, got, want)
		}
	}
	if _, ok := n.Lookup("a", "1", "c"); ok {
		t.Error("a sub-table leaked into the next array element")
	}
}

func TestLoad_TOMLArrayTableConflicts(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"table redefines array": "[[a]]\nx = \"1\"\n[a]\ny = \"2\"\n",
		"array over table":      "[a]\nx = \"1\"\n[[a]]\ny = \"2\"\n",
		"array over leaf":       "a = \"1\"\n[[a]]\ny = \"2\"\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fsys := fstest.MapFS{"c.toml": {Data: []byte(content)}}
			if _, err := Load(fsys, "c.toml"); err == nil {
				t.Errorf("Load(%q) expected an error", content)
			}
		})
	}
}

func TestLoad_YAMLAnchorsAndMerge(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"m.yaml": {Data: []byte(`
base: &base
  ok: OK
  cancel: Cancel
dialog:
  <<: *base
  cancel: Close
copy: *base
`)},
	}

	n, err := Load(fsys, "m.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	dialog, _ := n.Get("dialog")
	if want := []string{"cancel", "ok"}; !slices.Equal(dialog.Keys(), want) {
		t.Errorf("dialog keys = %v, want %v", dialog.Keys(), want)
	}
	if v, _ := dialog.Get("cancel"); v.Value() != "Close" {
		t.Errorf("explicit key should win over merge, got %q", v.Value())
	}
	if v, ok := n.Lookup("copy", "ok"); !ok || v.Value() != "OK" {
		t.Error("alias should resolve to the anchored mapping")
	}
}

func TestLoad_EmptyFiles(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"e.json": {Data: []byte("  \n")},
		"e.yaml": {Data: []byte("")},
		"e.toml": {Data: []byte("# nothing\n")},
	}
	for _, name := range []string{"e.json", "e.yaml", "e.toml"} {
		n, err := Load(fsys, name)
		if err != nil {
			t.Errorf("Load(%s) error = %v", name, err)
			continue
		}
		if !n.IsBranch() || n.Len() != 0 {
			t.Errorf("Load(%s) should return an empty branch", name)
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"bad.json":    {Data: []byte(`{"a": `)},
		"trail.json":  {Data: []byte(`{"a": "b"} {}`)},
		"list.json":   {Data: []byte(`["a"]`)},
		"bad.yaml":    {Data: []byte("a: [unclosed\n")},
		"scalar.yaml": {Data: []byte("just text\n")},
		"bad.toml":    {Data: []byte("a = \n")},
		"bad.cue":     {Data: []byte("a: \n")},
		"list.cue":    {Data: []byte(`["a"]`)},
		"notes.md":    {Data: []byte("# notes")},
	}

	tests := []struct {
		name   string
		target error
	}{
		{name: "bad.json"},
		{name: "trail.json"},
		{name: "list.json", target: ErrNotMapping},
		{name: "bad.yaml"},
		{name: "scalar.yaml", target: ErrNotMapping},
		{name: "bad.toml"},
		{name: "bad.cue"},
		{name: "list.cue", target: ErrNotMapping},
		{name: "notes.md", target: ErrUnsupported},
		{name: "missing.json", target: fs.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(fsys, tt.name)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestSupportedAndGroupName(t *testing.T) {
	t.Parallel()

	for _, ext := range Extensions() {
		if !Supported("x" + ext) {
			t.Errorf("Supported(x%s) = false", ext)
		}
	}
	if !Supported("HELP.JSON") {
		t.Error("extension matching should be case-insensitive")
	}
	if Supported("help.php") || Supported("README") {
		t.Error("unexpected supported extension")
	}

	if got := GroupName("en/validation.yaml"); got != "validation" {
		t.Errorf("GroupName() = %q", got)
	}
	if got := GroupName("auth.en.json"); got != "auth.en" {
		t.Errorf("GroupName() = %q", got)
	}
}
