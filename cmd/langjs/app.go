// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/langjs/langjs/internal/config"
	"github.com/langjs/langjs/internal/issue"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer; every Cobra handler receives it.
	App struct {
		Config ConfigProvider
		logger *log.Logger
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp creates the CLI composition root.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		logger: log.NewWithOptions(deps.Stderr, log.Options{Prefix: config.AppName}),
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}, nil
}

// loadConfig loads the configuration selected by the global flags and
// raises the log level when verbose output is requested by either the flag
// or the config file.
func (a *App) loadConfig(ctx context.Context, root *rootFlagValues) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: root.configPath})
	if err != nil {
		return nil, err
	}
	if cfg.UI.Verbose {
		root.verbose = true
	}
	if root.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
	return cfg, nil
}

// fail prints err for the user and returns an ExitError so Cobra does not
// print it a second time. In verbose mode the catalog help page linked from
// an ActionableError is rendered below the message.
func (a *App) fail(cmd *cobra.Command, err error, verbose bool, scheme config.ColorScheme) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error:")+" "+formatErrorForDisplay(err, verbose))

	var ae *issue.ActionableError
	if verbose && errors.As(err, &ae) && ae.Issue != 0 {
		if entry := issue.Get(ae.Issue); entry != nil {
			if rendered, renderErr := entry.Render(glamourStyle(scheme)); renderErr == nil {
				fmt.Fprint(a.stderr, rendered)
			} else {
				a.logger.Debug("render issue page", "err", renderErr)
			}
		}
	}
	return &ExitError{Code: 1, Err: err}
}

// formatErrorForDisplay formats an error for user display, including
// suggestions for ActionableErrors and the full chain in verbose mode.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
