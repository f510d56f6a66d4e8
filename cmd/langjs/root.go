// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the global flags shared by every subcommand.
type rootFlagValues struct {
	verbose    bool
	configPath string
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "langjs",
		Short: "Generate vue-i18n locale modules from Laravel lang directories",
		Long: TitleStyle.Render("langjs") + SubtitleStyle.Render(" - Laravel translations for vue-i18n") + `

langjs reads a Laravel style lang directory (one directory per locale, one
file per translation group) and writes a single JavaScript module that
vue-i18n or vuex-i18n can load. Laravel placeholders such as :name become
{name} on the way.

` + SubtitleStyle.Render("Examples:") + `
  langjs generate                       Write resources/js/vue-i18n-locales.generated.js
  langjs generate --umd -o public/l.js  Write a UMD module
  langjs generate --multi               Write one module per locale
  langjs generate --watch               Regenerate whenever a translation changes
  langjs config show                    Show the current configuration`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&root.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&root.configPath, "config", "", "config file (default is $HOME/.config/langjs/config.cue, then ./langjs.cue)")

	rootCmd.AddCommand(newGenerateCommand(app, root))
	rootCmd.AddCommand(newConfigCommand(app, root))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
