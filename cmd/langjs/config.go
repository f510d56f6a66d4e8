// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/langjs/langjs/internal/config"
	"github.com/langjs/langjs/internal/issue"
	"github.com/langjs/langjs/pkg/langjs"
	"github.com/langjs/langjs/pkg/rewrite"
)

// settableKeys lists the keys accepted by `langjs config set`.
var settableKeys = []string{
	"lang_path",
	"output",
	"output_dir",
	"format",
	"pluralization_library",
	"with_vendor",
	"lang_files",
	"ui.color_scheme",
	"ui.verbose",
	"watch.debounce",
}

// newConfigCommand creates the `langjs config` command tree.
func newConfigCommand(app *App, root *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage langjs configuration",
		Long: `Manage langjs configuration.

Configuration is read from the --config file, else the user config file:
  - Linux: ~/.config/langjs/config.cue
  - macOS: ~/Library/Application Support/langjs/config.cue
  - Windows: %APPDATA%\langjs\config.cue
else ./langjs.cue. Environment variables prefixed with LANGJS_ override it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd, app, root)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, app, root)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfigPath(cmd, app, root)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a value in the user configuration file",
		Long:  "Set a value in the user configuration file.\n\nValid keys: " + strings.Join(settableKeys, ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd, app, root, args[0], args[1])
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadConfig(cmd.Context(), root)
			if err != nil {
				return app.fail(cmd, err, root.verbose, config.ColorSchemeAuto)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App, root *rootFlagValues) error {
	cfg, err := app.loadConfig(cmd.Context(), root)
	if err != nil {
		return app.fail(cmd, err, root.verbose, config.ColorSchemeAuto)
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	cfgPath, err := config.ResolvePath(config.LoadOptions{ConfigFilePath: root.configPath})
	if err != nil || cfgPath == "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("lang_path"), valueStyle.Render(cfg.LangPath))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("output"), valueStyle.Render(cfg.Output))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("output_dir"), valueStyle.Render(cfg.OutputDir))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("format"), valueStyle.Render(cfg.Format.String()))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("pluralization_library"), valueStyle.Render(cfg.PluralizationLibrary.String()))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("with_vendor"), valueStyle.Render(strconv.FormatBool(cfg.WithVendor)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("lang_files"))
	if len(cfg.LangFiles) == 0 {
		fmt.Fprintf(out, "  %s\n", SubtitleStyle.Render("(all groups)"))
	} else {
		for _, name := range cfg.LangFiles {
			fmt.Fprintf(out, "  - %s\n", valueStyle.Render(name))
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(out, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(out, "  verbose: %s\n", valueStyle.Render(strconv.FormatBool(cfg.UI.Verbose)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("watch"))
	fmt.Fprintf(out, "  debounce: %s\n", valueStyle.Render(cfg.Watch.Debounce.String()))

	return nil
}

func initConfig(cmd *cobra.Command, app *App, root *rootFlagValues) error {
	cfgPath, created, err := config.CreateDefaultConfig()
	if err != nil {
		return app.fail(cmd, writeConfigError(cfgPath, err), root.verbose, config.ColorSchemeAuto)
	}
	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), cfgPath)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath(cmd *cobra.Command, app *App, root *rootFlagValues) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return app.fail(cmd, err, root.verbose, config.ColorSchemeAuto)
	}
	cfgFile, err := config.ConfigFilePath()
	if err != nil {
		return app.fail(cmd, err, root.verbose, config.ColorSchemeAuto)
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", cfgFile)

	active, err := config.ResolvePath(config.LoadOptions{ConfigFilePath: root.configPath})
	switch {
	case err != nil:
		return app.fail(cmd, err, root.verbose, config.ColorSchemeAuto)
	case active == "":
		fmt.Fprintf(app.stdout, "Active file: %s\n", SubtitleStyle.Render("(none, using defaults)"))
	default:
		fmt.Fprintf(app.stdout, "Active file: %s\n", active)
	}
	return nil
}

func setConfigValue(cmd *cobra.Command, app *App, root *rootFlagValues, key, value string) error {
	cfg, err := app.loadConfig(cmd.Context(), root)
	if err != nil {
		return app.fail(cmd, err, root.verbose, config.ColorSchemeAuto)
	}

	if err := applyConfigValue(cfg, key, value); err != nil {
		return app.fail(cmd, err, root.verbose, cfg.UI.ColorScheme)
	}
	if valid, errs := cfg.IsValid(); !valid {
		return app.fail(cmd, errs[0], root.verbose, cfg.UI.ColorScheme)
	}

	if err := config.Save(cfg); err != nil {
		cfgPath, _ := config.ConfigFilePath()
		return app.fail(cmd, writeConfigError(cfgPath, err), root.verbose, cfg.UI.ColorScheme)
	}

	fmt.Fprintf(app.stdout, "%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

// applyConfigValue parses value for key and stores it in cfg.
func applyConfigValue(cfg *config.Config, key, value string) error {
	var err error
	switch key {
	case "lang_path":
		cfg.LangPath = value
	case "output":
		cfg.Output = value
	case "output_dir":
		cfg.OutputDir = value
	case "format":
		cfg.Format, err = langjs.ParseFormat(value)
	case "pluralization_library":
		cfg.PluralizationLibrary, err = rewrite.ParseLibrary(value)
	case "with_vendor":
		cfg.WithVendor, err = strconv.ParseBool(value)
	case "lang_files":
		cfg.LangFiles = splitList(value)
	case "ui.color_scheme":
		cfg.UI.ColorScheme = config.ColorScheme(value)
	case "ui.verbose":
		cfg.UI.Verbose, err = strconv.ParseBool(value)
	case "watch.debounce":
		cfg.Watch.Debounce, err = time.ParseDuration(value)
	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: %s", key, strings.Join(settableKeys, ", "))
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func writeConfigError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("write configuration").
		WithResource(path).
		WithIssue(issue.OutputWriteFailedId).
		WithSuggestion("Check that the config directory is writable").
		Wrap(err).
		BuildError()
}
