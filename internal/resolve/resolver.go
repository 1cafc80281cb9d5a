package resolve

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"klc2xkb/internal/xkb"
)

// Loader fetches the symbols document a reference path names.
type Loader interface {
	Load(path string) (*xkb.Layout, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (*xkb.Layout, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) (*xkb.Layout, error) {
	return f(path)
}

// DirLoader loads symbols files relative to a directory, normally the
// "symbols" directory of an XKB data tree. Absolute paths are used as is.
type DirLoader struct {
	Dir string
}

// Load reads and parses the symbols file at path. A missing file yields an
// error matching fs.ErrNotExist.
func (l DirLoader) Load(path string) (*xkb.Layout, error) {
	full := path
	if !filepath.IsAbs(path) {
		full = filepath.Join(l.Dir, path)
	}

	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("loading symbols: %w", err)
	}
	defer f.Close()

	layout, err := xkb.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing symbols %s: %w", full, err)
	}

	return layout, nil
}

// LookupError reports a reference to a partial its document lacks.
type LookupError struct {
	Path string
	Part string
	// Available lists the partials the document does define.
	Available []string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("partial %q not found in %s (have: %s)", e.Part, e.Path, strings.Join(e.Available, ", "))
}

type cachedDocument struct {
	layout *xkb.Layout
	err    error
}

// Resolver resolves references against a Loader. Without WithDocumentCache
// every reference reloads its document, so repeated references repeat the
// I/O.
type Resolver struct {
	loader Loader
	cache  map[string]cachedDocument
	logger *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDocumentCache keeps every document loaded by the resolver for its
// lifetime. A failed load is cached too: later references to the same path
// fail with the first error.
func WithDocumentCache() Option {
	return func(r *Resolver) {
		r.cache = make(map[string]cachedDocument)
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New returns a resolver reading documents through loader.
func New(loader Loader, opts ...Option) *Resolver {
	r := &Resolver{
		loader: loader,
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve returns the flattened key map of the partial ref names. Any load
// or lookup failure anywhere in the include chain fails the whole call.
func (r *Resolver) Resolve(ref string) (xkb.Keymap, error) {
	return r.resolve(ref, newCycleDetector())
}

func (r *Resolver) resolve(ref string, detector *cycleDetector) (xkb.Keymap, error) {
	reference, err := ParseReference(ref)
	if err != nil {
		return nil, err
	}

	if err := detector.Enter(reference); err != nil {
		return nil, err
	}
	defer detector.Leave(reference)

	doc, err := r.load(reference.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", reference, err)
	}

	part, ok := doc.Partial(reference.Part)
	if !ok {
		return nil, &LookupError{Path: reference.Path, Part: reference.Part, Available: doc.PartialNames()}
	}

	keys := make(xkb.Keymap)

	for _, inc := range part.Includes {
		included, err := r.resolve(inc, detector)
		if err != nil {
			return nil, fmt.Errorf("%s includes %s: %w", reference, inc, err)
		}

		keys.Overlay(included)
	}

	keys.Overlay(part.Keys)

	r.logger.Debug("resolved partial", "ref", reference.String(), "includes", len(part.Includes), "keys", len(keys))

	return keys, nil
}

func (r *Resolver) load(path string) (*xkb.Layout, error) {
	if r.cache == nil {
		return r.loader.Load(path)
	}

	if c, ok := r.cache[path]; ok {
		return c.layout, c.err
	}

	layout, err := r.loader.Load(path)
	r.cache[path] = cachedDocument{layout: layout, err: err}

	return layout, err
}
