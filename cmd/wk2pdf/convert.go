package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	wkhtmltopdf "github.com/alnah/go-wkhtmltopdf"
	"github.com/alnah/go-wkhtmltopdf/internal/config"
	"github.com/alnah/go-wkhtmltopdf/internal/fileutil"
	"github.com/alnah/go-wkhtmltopdf/internal/hints"
	"github.com/alnah/go-wkhtmltopdf/internal/markdown"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput       = errors.New("no input specified")
	ErrTooManyInputs = errors.New("only one input can be converted at a time")
	ErrReadInput     = errors.New("failed to read input")
	ErrWritePDF      = errors.New("failed to write PDF")
)

// stdinArg names standard input as the conversion input.
const stdinArg = "-"

// runConvert resolves configuration, renders the input and copies the PDF
// to stdout when no output file is configured.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	logger := env.logger()
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	opts, err := cfg.ToOptions()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := applyOptionFlags(flags.options, opts); err != nil {
		return err
	}

	if opts.Output != "" {
		if err := fileutil.CheckParentDir(opts.Output); err != nil {
			return fmt.Errorf("%w: %w%s", ErrWritePDF, err, hints.ForOutputDirectory())
		}
	}

	inputArg, err := resolveInputArg(positionalArgs, len(opts.RawArgs) > 0)
	if err != nil {
		return err
	}
	input, err := resolveInput(ctx, inputArg, cfg, env)
	if err != nil {
		return err
	}

	conv := wkhtmltopdf.NewConverter(
		wkhtmltopdf.WithCommand(cfg.Command),
		wkhtmltopdf.WithLauncher(launcherFor(cfg.Launcher)),
		wkhtmltopdf.WithLogger(logger),
	)
	logger.Debug("rendering", "input", inputArg, "output", displayOutput(opts.Output))

	if err := render(ctx, conv, input, opts, env.Stdout); err != nil {
		return decorateRenderError(err)
	}

	if opts.Output != "" {
		logger.Info("created", "path", opts.Output)
	}
	return nil
}

// loadConfig loads the named config, preferring the flag over the
// environment. Neither set yields the defaults.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		var nf *config.NotFoundError
		if errors.As(err, &nf) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(nf.Searched))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags on top of cfg (CLI wins).
// Renderer options are applied later by applyOptionFlags.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output = flags.output
	}
	if flags.renderer.command != "" {
		cfg.Command = flags.renderer.command
	}
	if flags.renderer.launcher != "" {
		cfg.Launcher = flags.renderer.launcher
	}

	if len(flags.options.raw) > 0 {
		cfg.RawArgs = append([]string(nil), flags.options.raw...)
	}

	cfg.Ignore.Exact = append(cfg.Ignore.Exact, flags.ignore.exact...)
	cfg.Ignore.Patterns = append(cfg.Ignore.Patterns, flags.ignore.patterns...)

	if flags.markdown.enabled {
		cfg.Markdown.Enabled = true
	}
	if flags.markdown.title != "" {
		cfg.Markdown.Title = flags.markdown.title
	}
	if flags.markdown.style != "" {
		cfg.Markdown.HighlightStyle = flags.markdown.style
	}
}

// applyOptionFlags sets --set, --toc and --cover on top of the config
// file options. An existing option keeps its position.
func applyOptionFlags(flags optionFlags, opts *wkhtmltopdf.Options) error {
	for _, arg := range flags.set {
		name, value, err := parseSet(arg)
		if err != nil {
			return err
		}
		if err := opts.Set(name, value); err != nil {
			return fmt.Errorf("--set %s: %w", arg, err)
		}
	}
	if flags.toc {
		if err := opts.Set(wkhtmltopdf.MarkerTOC, wkhtmltopdf.Bool(true)); err != nil {
			return err
		}
	}
	if flags.cover != "" {
		if err := opts.Set(wkhtmltopdf.MarkerCover, wkhtmltopdf.String(flags.cover)); err != nil {
			return err
		}
	}
	return nil
}

// resolveInputArg picks the single positional input. Raw arguments carry
// their own input, so none is required with --raw.
func resolveInputArg(args []string, raw bool) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("%w: got %d", ErrTooManyInputs, len(args))
	case len(args) == 1:
		return args[0], nil
	case raw:
		return "", nil
	default:
		return "", ErrNoInput
	}
}

// resolveInput turns the input argument into what the renderer receives:
// URLs pass through, local HTML files become file URLs so relative assets
// resolve, Markdown and stdin are read and piped.
func resolveInput(ctx context.Context, arg string, cfg *config.Config, env *Environment) (string, error) {
	if arg == "" || wkhtmltopdf.IsURL(arg) {
		return arg, nil
	}

	isMarkdown := cfg.Markdown.Enabled || looksLikeMarkdown(arg)

	if arg != stdinArg && !isMarkdown {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		if !fileutil.FileExists(abs) {
			return "", fmt.Errorf("%w: %s: %w", ErrReadInput, arg, os.ErrNotExist)
		}
		return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
	}

	content, err := readInput(arg, env.Stdin)
	if err != nil {
		return "", err
	}
	if !isMarkdown {
		return content, nil
	}

	md, err := markdown.New(
		markdown.WithTitle(cfg.Markdown.Title),
		markdown.WithHighlightStyle(cfg.Markdown.HighlightStyle),
	)
	if err != nil {
		return "", err
	}
	return md.ToHTML(ctx, content)
}

// readInput reads the input file, or stdin for "-".
func readInput(arg string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if arg == stdinArg {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(arg) // #nosec G304 -- input path is user-provided
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return string(data), nil
}

// looksLikeMarkdown returns true for .md and .markdown files.
func looksLikeMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// launcherFor maps a configured strategy to a Launcher.
func launcherFor(name string) wkhtmltopdf.Launcher {
	switch name {
	case config.LauncherShell:
		return &wkhtmltopdf.ShellLauncher{}
	case config.LauncherDirect:
		return &wkhtmltopdf.DirectLauncher{}
	default:
		return wkhtmltopdf.DefaultLauncher()
	}
}

// render runs one conversion and copies the renderer's stdout to w.
// When the renderer writes a file, stdout is empty and drained.
// Cancelling ctx closes the stream.
func render(ctx context.Context, conv *wkhtmltopdf.Converter, input string, opts *wkhtmltopdf.Options, w io.Writer) error {
	stream := conv.Convert(input, opts, nil)
	stop := context.AfterFunc(ctx, func() { _ = stream.Close() })
	defer stop()

	dst := w
	if opts.Output != "" {
		dst = io.Discard
	}
	_, copyErr := io.Copy(dst, stream)
	waitErr := stream.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if waitErr != nil {
		return waitErr
	}
	if copyErr != nil {
		return fmt.Errorf("%w: %w", ErrWritePDF, copyErr)
	}
	return nil
}

// decorateRenderError appends an actionable hint to renderer failures.
func decorateRenderError(err error) error {
	var launchErr *wkhtmltopdf.LaunchError
	if errors.As(err, &launchErr) {
		return fmt.Errorf("starting renderer: %w%s", err, hints.ForBinaryNotFound())
	}
	var diagErr *wkhtmltopdf.DiagnosticError
	if errors.As(err, &diagErr) {
		return fmt.Errorf("renderer failed: %w%s", err, hints.ForDiagnostic(diagErr.Message))
	}
	return err
}

func displayOutput(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
