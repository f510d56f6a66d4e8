// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"
)

// startWatcher runs w in the background and returns a stop function that
// cancels it and reports Run's error.
func startWatcher(t *testing.T, w *Watcher) func() {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	return func() {
		cancel()
		select {
		case err := <-errCh:
			if err != nil {
				t.Errorf("Run() error: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("Run() did not return after cancellation")
		}
	}
}

func mkdir(t *testing.T, dir string) {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
}

func write(t *testing.T, path string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(`{"a": "b"}`), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestWatcherDebounce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mkdir(t, filepath.Join(dir, "en"))

	var (
		mu        sync.Mutex
		calls     int
		collected []string
	)
	done := make(chan struct{})

	w, err := New(Config{
		BaseDir:  dir,
		Debounce: 100 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			collected = append(collected, changed...)
			if calls == 1 {
				close(done)
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	stop := startWatcher(t, w)

	for _, name := range []string{"auth.json", "pagination.yaml", "validation.toml"} {
		write(t, filepath.Join(dir, "en", name))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
	time.Sleep(200 * time.Millisecond)
	stop()

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("expected 1 debounced callback, got %d", calls)
	}
	for _, want := range []string{"en/auth.json", "en/pagination.yaml", "en/validation.toml"} {
		if !slices.Contains(collected, want) {
			t.Errorf("expected %q in changed files, got %v", want, collected)
		}
	}
}

func TestWatcherPatternFiltering(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fired := make(chan []string, 10)

	w, err := New(Config{
		BaseDir:  dir,
		Ignore:   []string{"**/*.bak.json"},
		Debounce: 50 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			fired <- changed
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	stop := startWatcher(t, w)
	defer stop()

	// Neither a non-translation file nor an ignored one triggers a rebuild.
	write(t, filepath.Join(dir, "README.md"))
	write(t, filepath.Join(dir, "old.bak.json"))
	time.Sleep(200 * time.Millisecond)

	write(t, filepath.Join(dir, "en.json"))

	select {
	case changed := <-fired:
		if !slices.Equal(changed, []string{"en.json"}) {
			t.Errorf("changed = %v, want [en.json]", changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
}

func TestWatcherNewLocaleDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fired := make(chan []string, 10)

	w, err := New(Config{
		BaseDir:  dir,
		Debounce: 50 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			fired <- changed
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	stop := startWatcher(t, w)
	defer stop()

	mkdir(t, filepath.Join(dir, "sv"))
	// Let the watcher register the new directory before writing into it.
	time.Sleep(100 * time.Millisecond)
	write(t, filepath.Join(dir, "sv", "help.json"))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case changed := <-fired:
			if slices.Contains(changed, "sv/help.json") {
				return
			}
		case <-deadline:
			t.Fatal("change inside a new locale directory was not seen")
		}
	}
}

func TestWatcherCallbackErrorKeepsWatching(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fired := make(chan struct{}, 10)

	w, err := New(Config{
		BaseDir:  dir,
		Debounce: 30 * time.Millisecond,
		OnChange: func(context.Context, []string) error {
			fired <- struct{}{}
			return errors.New("parse error")
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	stop := startWatcher(t, w)
	defer stop()

	for range 2 {
		write(t, filepath.Join(dir, "en.json"))
		select {
		case <-fired:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for callback")
		}
	}
}

func TestWatcherDoubleRunError(t *testing.T) {
	t.Parallel()

	w, err := New(Config{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	stop := startWatcher(t, w)
	defer stop()

	time.Sleep(20 * time.Millisecond)
	if err := w.Run(context.Background()); err == nil {
		t.Error("second Run() should fail")
	}
}

func TestDefaultIgnores(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		ignored bool
	}{
		{".git/config", true},
		{".git/objects/ab/cd1234", true},
		{"node_modules/x/en.json", true},
		{"en/auth.json.swp", true},
		{"en/auth.json~", true},
		{"en/.#auth.json", true},
		{".DS_Store", true},
		{"en/.DS_Store", true},
		{"en/auth.json", false},
		{"vendor/pkg/en/messages.yaml", false},
		{".gitignore", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := matchAny(DefaultIgnores(), tt.path); got != tt.ignored {
				t.Errorf("matchAny(DefaultIgnores(), %q) = %v, want %v", tt.path, got, tt.ignored)
			}
		})
	}
}

func TestDefaultPatterns(t *testing.T) {
	t.Parallel()

	w := &Watcher{patterns: DefaultPatterns()}
	tests := []struct {
		path string
		want bool
	}{
		{"en/auth.json", true},
		{"en/auth.JSON", true},
		{"en/admin/users.yml", true},
		{"sv/help.yaml", true},
		{"sv/help.toml", true},
		{"sv/help.cue", true},
		{"en.json", true},
		{"en/auth.php", false},
		{"README.md", false},
	}

	for _, tt := range tests {
		if got := w.matchesPatterns(tt.path); got != tt.want {
			t.Errorf("matchesPatterns(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	if err := (Config{}).Validate(); err != nil {
		t.Errorf("zero Config should be valid, got %v", err)
	}
	if err := (Config{Patterns: DefaultPatterns(), Ignore: []string{"**/tmp/**"}}).Validate(); err != nil {
		t.Errorf("valid Config rejected: %v", err)
	}

	err := Config{
		Patterns: []string{"", "[a-"},
		Ignore:   []string{""},
		BaseDir:  "   ",
	}.Validate()
	if !errors.Is(err, ErrInvalidWatchConfig) {
		t.Fatalf("expected ErrInvalidWatchConfig, got %v", err)
	}
	var cfgErr *InvalidWatchConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *InvalidWatchConfigError, got %T", err)
	}
	if len(cfgErr.FieldErrors) != 4 {
		t.Errorf("expected 4 field errors, got %d: %v", len(cfgErr.FieldErrors), cfgErr.FieldErrors)
	}

	if _, err := New(Config{Patterns: []string{"[a-"}}); !errors.Is(err, ErrInvalidWatchConfig) {
		t.Errorf("New() should validate, got %v", err)
	}
}
