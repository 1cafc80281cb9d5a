package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"klc2xkb/internal/convert"
	"klc2xkb/internal/deadkey"
	"klc2xkb/internal/diagnostic"
	"klc2xkb/internal/klc"
	"klc2xkb/internal/resolve"
	"klc2xkb/internal/xkb"
)

// ErrNoExtension is returned for input paths the output path cannot be
// derived from.
var ErrNoExtension = errors.New("input path has no extension to strip")

// FileError ties a failure to the input file it happened on.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// App converts layout files one at a time. Dead key questions go to out
// and answers are read from in.
type App struct {
	cfg    Config
	in     *bufio.Reader
	out    io.Writer
	logger *slog.Logger
	loader resolve.Loader
}

// Option configures an App.
type Option func(*App)

// WithLoader replaces the symbols directory loader.
func WithLoader(loader resolve.Loader) Option {
	return func(a *App) {
		a.loader = loader
	}
}

// New returns an App logging to logW.
func New(cfg Config, in io.Reader, out, logW io.Writer, opts ...Option) *App {
	a := &App{
		cfg:    cfg,
		in:     bufio.NewReader(in),
		out:    out,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, logW),
		loader: resolve.DirLoader{Dir: cfg.SymbolsDir},
	}

	for _, opt := range opts {
		opt(a)
	}

	a.logger.Debug("app configured", "symbols_dir", cfg.SymbolsDir, "base", cfg.Convert.BaseInclude)

	return a
}

// Run converts every path in order and stops at the first failure, which
// is returned as a *FileError. Files converted before it are kept.
func (a *App) Run(paths []string) error {
	var total diagnostic.Diagnostics

	for _, path := range paths {
		diags, err := a.ConvertFile(path)
		if err != nil {
			return &FileError{Path: path, Err: err}
		}

		total.Merge(diags)
	}

	a.logger.Info("conversion finished",
		"files", len(paths),
		"unmapped", total.Count(diagnostic.CodeUnmappedKey),
		"unchanged", total.Count(diagnostic.CodeSameAsBaseline))

	return nil
}

// ConvertFile converts the layout at path and writes the result next to
// it, at OutputPath(path). It returns what the conversion worked around.
func (a *App) ConvertFile(path string) (diagnostic.Diagnostics, error) {
	dst, err := OutputPath(path)
	if err != nil {
		return diagnostic.Diagnostics{}, err
	}

	src, err := klc.ParseFile(path)
	if err != nil {
		return diagnostic.Diagnostics{}, err
	}

	// Documents are cached for this file only.
	baseline := resolve.New(a.loader, resolve.WithDocumentCache(), resolve.WithLogger(a.logger))
	a.logger.Debug("parsed layout",
		"input", path,
		"name", src.Name,
		"keys", len(src.Keys),
		"dead_key_triggers", string(src.DeadKeyTriggers.Sorted()))

	prompter := deadkey.NewPrompter(a.in, a.out,
		deadkey.WithDescriptions(src.DeadKeyNames),
		deadkey.WithCompositions(src.DeadKeys),
		deadkey.WithLogger(a.logger))

	conv := convert.NewConverter(baseline, prompter,
		convert.WithConfig(a.cfg.Convert),
		convert.WithLogger(a.logger))

	res, err := conv.Convert(src)
	if err != nil {
		return diagnostic.Diagnostics{}, err
	}

	if err := xkb.WriteFile(res.Layout, dst); err != nil {
		return diagnostic.Diagnostics{}, err
	}

	a.logger.Info("wrote layout",
		"input", path,
		"output", dst,
		"keys", len(res.Layout.Default.Keys),
		"unmapped", res.Diagnostics.Count(diagnostic.CodeUnmappedKey))

	for _, d := range res.Diagnostics.Infos {
		a.logger.Debug(d.String(), "severity", d.Severity.String())
	}

	return res.Diagnostics, nil
}

// OutputPath returns path without its extension. "layouts/cz.klc" becomes
// "layouts/cz".
func OutputPath(path string) (string, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s", ErrNoExtension, path)
	}

	out := strings.TrimSuffix(path, ext)
	if out == "" || strings.HasSuffix(out, string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrNoExtension, path)
	}

	return out, nil
}
