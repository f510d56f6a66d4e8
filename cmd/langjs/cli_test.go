// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/langjs/langjs/internal/config"
)

// staticConfigProvider hands out copies of a fixed configuration.
type staticConfigProvider struct {
	cfg *config.Config
	err error
}

func (p *staticConfigProvider) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if p.err != nil {
		return nil, p.err
	}
	cp := *p.cfg
	return &cp, nil
}

// testConfig returns the default configuration pointed at langPath, with
// every output inside a fresh temporary directory.
func testConfig(t *testing.T, langPath string) *config.Config {
	t.Helper()

	outDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.LangPath = langPath
	cfg.Output = filepath.Join(outDir, "js", "locales.generated.js")
	cfg.OutputDir = filepath.Join(outDir, "js", "langs")
	return cfg
}

// runCLI executes the root command with args against provider.
func runCLI(ctx context.Context, t *testing.T, provider ConfigProvider, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	app, newErr := NewApp(Dependencies{Config: provider, Stdout: &out, Stderr: &errOut})
	if newErr != nil {
		t.Fatalf("NewApp() error = %v", newErr)
	}

	rootCmd := NewRootCommand(app)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}
