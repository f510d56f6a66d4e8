// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/langjs/langjs/internal/config"
	"github.com/langjs/langjs/internal/issue"
	"github.com/langjs/langjs/internal/watch"
	"github.com/langjs/langjs/pkg/langjs"
	"github.com/langjs/langjs/pkg/localetree"
	"github.com/langjs/langjs/pkg/rewrite"
)

type (
	// generateFlagValues holds the raw generate flags. Flags override the
	// configuration only when set explicitly.
	generateFlagValues struct {
		langPath   string
		output     string
		outputDir  string
		format     string
		lib        string
		langFiles  []string
		umd        bool
		json       bool
		withVendor bool
		multi      bool
		stdout     bool
		watch      bool
	}

	// generateRequest is the resolved input of one generation run.
	generateRequest struct {
		LangPath   string
		Output     string
		OutputDir  string
		Format     langjs.Format
		Library    rewrite.Library
		LangFiles  []string
		WithVendor bool
		Multi      bool
		Stdout     bool
	}

	// generatedFile is one module written by a generation run.
	generatedFile struct {
		Path string
		// Locales is set for per-locale modules.
		Locales []string
	}
)

func newGenerateCommand(app *App, root *rootFlagValues) *cobra.Command {
	flags := &generateFlagValues{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the vue-i18n locale module",
		Long: `Generate the vue-i18n locale module from the lang directory.

Every locale directory becomes a top-level key, every translation file a
group below it. Supported translation files: .json, .yaml, .yml, .toml, .cue.
Flags override the configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, app, root, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.langPath, "lang-path", "", "lang directory to read (default from config: "+config.DefaultLangPath+")")
	f.StringVarP(&flags.output, "output", "o", "", "file to write (default from config: "+config.DefaultOutput+")")
	f.StringVar(&flags.outputDir, "output-dir", "", "directory receiving one module per locale with --multi")
	f.StringVar(&flags.format, "format", "", "output format: es6, umd or json")
	f.BoolVar(&flags.umd, "umd", false, "shorthand for --format umd")
	f.BoolVar(&flags.json, "json", false, "shorthand for --format json")
	f.StringVar(&flags.lib, "lib", "", "pluralization library: vue-i18n or vuex-i18n")
	f.StringSliceVar(&flags.langFiles, "lang-files", nil, "only include these groups (comma separated)")
	f.BoolVar(&flags.withVendor, "with-vendor", false, "merge lang/vendor package translations under each locale")
	f.BoolVar(&flags.multi, "multi", false, "write one module per locale into --output-dir")
	f.BoolVar(&flags.stdout, "stdout", false, "print the module instead of writing a file")
	f.BoolVar(&flags.watch, "watch", false, "regenerate whenever a translation file changes")

	cmd.MarkFlagsMutuallyExclusive("format", "umd", "json")
	cmd.MarkFlagsMutuallyExclusive("stdout", "multi")
	cmd.MarkFlagsMutuallyExclusive("stdout", "watch")
	cmd.MarkFlagsMutuallyExclusive("output", "multi")

	return cmd
}

func runGenerate(cmd *cobra.Command, app *App, root *rootFlagValues, flags *generateFlagValues) error {
	cfg, err := app.loadConfig(cmd.Context(), root)
	if err != nil {
		return app.fail(cmd, err, root.verbose, config.ColorSchemeAuto)
	}

	req, err := resolveGenerateRequest(cmd, cfg, flags)
	if err != nil {
		return app.fail(cmd, err, root.verbose, cfg.UI.ColorScheme)
	}

	gen := langjs.New(langjs.Options{
		PluralizationLibrary: req.Library,
		LangFiles:            req.LangFiles,
		Logger:               app.logger,
	})

	if flags.watch {
		return app.watchAndGenerate(cmd, gen, req, cfg, root.verbose)
	}

	files, err := app.generate(gen, req)
	if err != nil {
		return app.fail(cmd, err, root.verbose, cfg.UI.ColorScheme)
	}
	app.printSummary(req, files)
	return nil
}

// resolveGenerateRequest layers explicitly set flags over cfg.
func resolveGenerateRequest(cmd *cobra.Command, cfg *config.Config, flags *generateFlagValues) (generateRequest, error) {
	changed := cmd.Flags().Changed

	req := generateRequest{
		LangPath:   cfg.LangPath,
		Output:     cfg.Output,
		OutputDir:  cfg.OutputDir,
		Format:     cfg.Format,
		Library:    cfg.PluralizationLibrary,
		LangFiles:  cfg.LangFiles,
		WithVendor: cfg.WithVendor,
		Multi:      flags.multi,
		Stdout:     flags.stdout,
	}
	if changed("lang-path") {
		req.LangPath = flags.langPath
	}
	if changed("output") {
		req.Output = flags.output
	}
	if changed("output-dir") {
		req.OutputDir = flags.outputDir
	}
	if changed("with-vendor") {
		req.WithVendor = flags.withVendor
	}
	if changed("lang-files") {
		req.LangFiles = flags.langFiles
	}

	switch {
	case flags.umd:
		req.Format = langjs.FormatUMD
	case flags.json:
		req.Format = langjs.FormatJSON
	case changed("format"):
		f, err := langjs.ParseFormat(flags.format)
		if err != nil {
			return generateRequest{}, issue.NewErrorContext().
				WithOperation("select output format").
				WithResource(flags.format).
				WithIssue(issue.InvalidFormatId).
				WithSuggestion("Use one of: es6, umd, json").
				Wrap(err).
				BuildError()
		}
		req.Format = f
	}
	if req.Format == "" {
		req.Format = langjs.FormatES6
	}

	if changed("lib") {
		lib, err := rewrite.ParseLibrary(flags.lib)
		if err != nil {
			return generateRequest{}, issue.NewErrorContext().
				WithOperation("select pluralization library").
				WithResource(flags.lib).
				WithIssue(issue.InvalidPluralizationLibraryId).
				WithSuggestion("Use vue-i18n or vuex-i18n").
				Wrap(err).
				BuildError()
		}
		req.Library = lib
	}

	if strings.TrimSpace(req.LangPath) == "" {
		return generateRequest{}, issue.NewErrorContext().
			WithOperation("read lang directory").
			WithIssue(issue.LangPathNotFoundId).
			WithSuggestion("Pass --lang-path").
			Wrap(errors.New("lang path is empty")).
			BuildError()
	}

	return req, nil
}

// generate runs one generation and writes its output.
func (a *App) generate(gen *langjs.Generator, req generateRequest) ([]generatedFile, error) {
	if req.Multi {
		return a.generateMultiple(gen, req)
	}

	content, err := gen.GenerateFromPath(req.LangPath, req.Format.String(), req.WithVendor)
	if err != nil {
		return nil, explainGenerateError(err, req)
	}
	if req.Stdout {
		fmt.Fprint(a.stdout, content)
		return nil, nil
	}
	if err := writeOutput(req.Output, content); err != nil {
		return nil, err
	}
	return []generatedFile{{Path: req.Output}}, nil
}

// generateMultiple writes one module per locale into req.OutputDir.
func (a *App) generateMultiple(gen *langjs.Generator, req generateRequest) ([]generatedFile, error) {
	modules, err := gen.GenerateMultiple(req.LangPath, req.Format.String(), req.WithVendor)
	if err != nil {
		return nil, explainGenerateError(err, req)
	}

	files := make([]generatedFile, 0, len(modules))
	for _, m := range modules {
		path := filepath.Join(req.OutputDir, m.Locale+req.Format.Extension())
		if err := writeOutput(path, m.Content); err != nil {
			return nil, err
		}
		files = append(files, generatedFile{Path: path, Locales: []string{m.Locale}})
	}
	return files, nil
}

func (a *App) printSummary(req generateRequest, files []generatedFile) {
	for _, f := range files {
		detail := req.Format.String()
		if len(f.Locales) > 0 {
			detail = strings.Join(f.Locales, ", ") + ", " + detail
		}
		fmt.Fprintf(a.stdout, "%s Generated %s %s\n",
			SuccessStyle.Render("✓"),
			CmdStyle.Render(f.Path),
			SubtitleStyle.Render("("+detail+")"),
		)
	}
}

// watchAndGenerate generates once, then regenerates on every change below
// the lang directory until the command context is cancelled.
func (a *App) watchAndGenerate(cmd *cobra.Command, gen *langjs.Generator, req generateRequest, cfg *config.Config, verbose bool) error {
	files, err := a.generate(gen, req)
	if err != nil {
		var ae *issue.ActionableError
		if errors.As(err, &ae) && ae.Issue == issue.LangPathNotFoundId {
			return a.fail(cmd, err, verbose, cfg.UI.ColorScheme)
		}
		fmt.Fprintln(a.stderr, WarningStyle.Render("!")+" "+formatErrorForDisplay(err, verbose))
	} else {
		a.printSummary(req, files)
	}

	w, err := watch.New(watch.Config{
		BaseDir:  req.LangPath,
		Debounce: cfg.Watch.Debounce,
		Logger:   a.logger,
		OnChange: func(_ context.Context, changed []string) error {
			a.logger.Debug("translations changed", "files", changed)
			files, err := a.generate(gen, req)
			if err != nil {
				fmt.Fprintln(a.stderr, WarningStyle.Render("!")+" "+formatErrorForDisplay(err, verbose))
				return nil
			}
			a.printSummary(req, files)
			return nil
		},
	})
	if err != nil {
		return a.fail(cmd, err, verbose, cfg.UI.ColorScheme)
	}

	fmt.Fprintf(a.stdout, "%s Watching %s for changes (Ctrl+C to stop)\n", CmdStyle.Render("→"), req.LangPath)
	return w.Run(cmd.Context())
}

// explainGenerateError attaches the operation, catalog entry and hints to a
// generator error.
func explainGenerateError(err error, req generateRequest) error {
	var le *langjs.LoadError
	if !errors.As(err, &le) {
		if errors.Is(err, langjs.ErrInvalidFormat) {
			return issue.NewErrorContext().
				WithOperation("select output format").
				WithIssue(issue.InvalidFormatId).
				WithSuggestion("Use one of: es6, umd, json").
				Wrap(err).
				BuildError()
		}
		if errors.Is(err, rewrite.ErrInvalidLibrary) {
			return issue.NewErrorContext().
				WithOperation("select pluralization library").
				WithIssue(issue.InvalidPluralizationLibraryId).
				Wrap(err).
				BuildError()
		}
		return err
	}

	switch {
	case le.Path == req.LangPath && (errors.Is(err, fs.ErrNotExist) || errors.Is(err, langjs.ErrNotDirectory)):
		return issue.NewErrorContext().
			WithOperation("read lang directory").
			WithResource(req.LangPath).
			WithIssue(issue.LangPathNotFoundId).
			WithSuggestion("Pass --lang-path or set lang_path in langjs.cue").
			WithSuggestion("Run langjs from the project root").
			Wrap(le.Err).
			BuildError()
	case req.WithVendor && errors.Is(err, localetree.ErrCollision) && isVendorPath(req.LangPath, le.Path):
		return issue.NewErrorContext().
			WithOperation("merge vendor translations").
			WithIssue(issue.VendorCollisionId).
			WithSuggestion("Rename the group or key called " + langjs.VendorKey).
			Wrap(err).
			BuildError()
	default:
		return issue.NewErrorContext().
			WithOperation("load translations").
			WithIssue(issue.GroupFileParseErrorId).
			WithSuggestion("Fix the file named above and run again").
			Wrap(err).
			BuildError()
	}
}

func isVendorPath(langPath, p string) bool {
	rel, err := filepath.Rel(langPath, p)
	if err != nil {
		return false
	}
	first, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	return first == langjs.VendorDir
}

func writeOutput(path, content string) error {
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err == nil {
		err = os.WriteFile(path, []byte(content), 0o644)
	}
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("write output file").
			WithResource(path).
			WithIssue(issue.OutputWriteFailedId).
			WithSuggestion("Check that the directory is writable").
			WithSuggestion("Use --stdout to print the module instead").
			Wrap(err).
			BuildError()
	}
	return nil
}
