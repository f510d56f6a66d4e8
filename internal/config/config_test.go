// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/langjs/langjs/internal/issue"
	"github.com/langjs/langjs/internal/testutil"
	"github.com/langjs/langjs/pkg/langjs"
	"github.com/langjs/langjs/pkg/rewrite"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	testutil.WriteTree(t, filepath.Dir(path), map[string]string{filepath.Base(path): content})
}

// isolatedOptions returns options pointing at empty temp directories so the
// developer's own config never leaks into a test.
func isolatedOptions(t *testing.T) LoadOptions {
	t.Helper()

	return LoadOptions{
		ConfigDirPath: t.TempDir(),
		BaseDir:       t.TempDir(),
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, path, err := Load(context.Background(), isolatedOptions(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty", path)
	}
	if got, want := GenerateCUE(cfg), GenerateCUE(DefaultConfig()); got != want {
		t.Errorf("Load() =\n%s\nwant defaults\n%s", got, want)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "custom.cue")
	writeFile(t, file, `
lang_path: "lang"
format: "umd"
pluralization_library: "vuex-i18n"
with_vendor: true
lang_files: ["auth", "validation"]
ui: verbose: true
watch: debounce: "2s"
`)

	opts := isolatedOptions(t)
	opts.ConfigFilePath = file
	cfg, path, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path != file {
		t.Errorf("resolved path = %q, want %q", path, file)
	}
	if cfg.LangPath != "lang" || cfg.Format != langjs.FormatUMD || cfg.PluralizationLibrary != rewrite.LibraryVuexI18n {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !cfg.WithVendor || !cfg.UI.Verbose {
		t.Error("booleans were not loaded")
	}
	if strings.Join(cfg.LangFiles, ",") != "auth,validation" {
		t.Errorf("LangFiles = %v", cfg.LangFiles)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("Debounce = %s", cfg.Watch.Debounce)
	}
	// Unset fields keep their defaults.
	if cfg.Output != DefaultOutput || cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_LookupOrder(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t)
	local := filepath.Join(opts.BaseDir, LocalConfigFile)
	writeFile(t, local, `format: "json"`)

	cfg, path, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path != local || cfg.Format != langjs.FormatJSON {
		t.Errorf("expected local file to be used, got %q (%s)", path, cfg.Format)
	}

	user := filepath.Join(opts.ConfigDirPath, "config.cue")
	writeFile(t, user, `format: "umd"`)

	cfg, path, err = Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path != user || cfg.Format != langjs.FormatUMD {
		t.Errorf("expected user config to win, got %q (%s)", path, cfg.Format)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"unknown format", `format: "es5"`},
		{"unknown field", `langPath: "lang"`},
		{"wrong type", `with_vendor: "yes"`},
		{"empty lang path", `lang_path: ""`},
		{"bad debounce", `watch: debounce: "soon"`},
		{"bad color scheme", `ui: color_scheme: "neon"`},
		{"syntax error", `format: `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := isolatedOptions(t)
			opts.ConfigFilePath = filepath.Join(t.TempDir(), "config.cue")
			writeFile(t, opts.ConfigFilePath, tt.content)

			_, _, err := Load(context.Background(), opts)
			if err == nil {
				t.Fatal("expected error")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *issue.ActionableError, got %T: %v", err, err)
			}
			if ae.Issue != issue.ConfigLoadFailedId {
				t.Errorf("Issue = %d, want ConfigLoadFailedId", ae.Issue)
			}
			if ae.Resource != opts.ConfigFilePath {
				t.Errorf("Resource = %q", ae.Resource)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t)
	opts.ConfigFilePath = filepath.Join(t.TempDir(), "nope.cue")

	_, _, err := Load(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LANGJS_FORMAT", "json")
	t.Setenv("LANGJS_UI_VERBOSE", "true")
	t.Setenv("LANGJS_LANG_FILES", "auth,pagination")

	cfg, _, err := Load(context.Background(), isolatedOptions(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Format != langjs.FormatJSON {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if !cfg.UI.Verbose {
		t.Error("Verbose should be true")
	}
	if strings.Join(cfg.LangFiles, ",") != "auth,pagination" {
		t.Errorf("LangFiles = %v", cfg.LangFiles)
	}
}

func TestLoad_InvalidEnvOverride(t *testing.T) {
	t.Setenv("LANGJS_PLURALIZATION_LIBRARY", "i18next")

	_, _, err := Load(context.Background(), isolatedOptions(t))
	if !errors.Is(err, rewrite.ErrInvalidLibrary) {
		t.Errorf("expected ErrInvalidLibrary, got %v", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := Load(ctx, isolatedOptions(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestProvider_Load(t *testing.T) {
	t.Parallel()

	cfg, err := NewProvider().Load(context.Background(), isolatedOptions(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LangPath != DefaultLangPath {
		t.Errorf("LangPath = %q", cfg.LangPath)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	want := DefaultConfig()
	want.Format = langjs.FormatUMD
	want.LangFiles = []string{"auth"}
	want.WithVendor = true
	want.Watch.Debounce = 1500 * time.Millisecond

	opts := isolatedOptions(t)
	opts.ConfigFilePath = filepath.Join(t.TempDir(), "config.cue")
	writeFile(t, opts.ConfigFilePath, GenerateCUE(want))

	got, _, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load(GenerateCUE()) error = %v", err)
	}
	if !reflect.DeepEqual(got.LangFiles, want.LangFiles) || GenerateCUE(got) != GenerateCUE(want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestCreateDefaultConfigAndSave(t *testing.T) { //nolint:paralleltest // uses the package config dir override
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	path, created, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if !created || path != filepath.Join(dir, "config.cue") {
		t.Errorf("CreateDefaultConfig() = %q, %v", path, created)
	}

	if _, created, err = CreateDefaultConfig(); err != nil || created {
		t.Errorf("second CreateDefaultConfig() = %v, %v; want no write", created, err)
	}

	cfg := DefaultConfig()
	cfg.LangPath = "lang"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `lang_path:  "lang"`) {
		t.Errorf("saved config missing lang_path:\n%s", data)
	}
}

func TestConfigDir_XDG(t *testing.T) { //nolint:paralleltest // mutates environment
	Reset()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if filepath.Base(dir) != AppName {
		t.Errorf("ConfigDir() = %q, want .../%s", dir, AppName)
	}
}

func TestConfigDir_HomeFallback(t *testing.T) { //nolint:paralleltest // mutates environment
	if runtime.GOOS == "windows" {
		t.Skip("APPDATA is used on Windows")
	}
	Reset()
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if !strings.HasPrefix(dir, home) || filepath.Base(dir) != AppName {
		t.Errorf("ConfigDir() = %q, want %s/.../%s", dir, home, AppName)
	}
}
