package convert

import (
	"fmt"
	"log/slog"

	"klc2xkb/internal/deadkey"
	"klc2xkb/internal/diagnostic"
	"klc2xkb/internal/klc"
	"klc2xkb/internal/scancode"
	"klc2xkb/internal/xkb"
)

// Baseline flattens a partial reference into its key map.
// *resolve.Resolver implements it.
type Baseline interface {
	Resolve(ref string) (xkb.Keymap, error)
}

// Translator maps Windows scan codes to XKB keys.
type Translator interface {
	Translate(sc klc.ScanCode) (xkb.KeyCode, bool)
}

// Result is a converted layout plus what was skipped on the way.
type Result struct {
	Layout      *xkb.Layout
	Diagnostics diagnostic.Diagnostics
}

// Converter converts KLC layouts. It is not safe for concurrent use when
// its classifier is interactive.
type Converter struct {
	baseline   Baseline
	classifier deadkey.Classifier
	translator Translator
	config     Config
	logger     *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(c *Converter) {
		c.config = cfg
	}
}

// WithTranslator replaces the built-in scan code table.
func WithTranslator(t Translator) Option {
	return func(c *Converter) {
		c.translator = t
	}
}

// WithLogger sets the logger skipped keys are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// NewConverter returns a converter diffing against baseline and deciding
// dead keys with classifier.
func NewConverter(baseline Baseline, classifier deadkey.Classifier, opts ...Option) *Converter {
	c := &Converter{
		baseline:   baseline,
		classifier: classifier,
		translator: scancode.Default(),
		config:     DefaultConfig(),
		logger:     slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Convert builds the XKB layout for src. Keys are visited in scan code
// order. Scan codes without an XKB key are logged, recorded as
// UNMAPPED_KEY and skipped; a baseline or classifier failure aborts the
// conversion.
func (c *Converter) Convert(src *klc.Layout) (*Result, error) {
	partial := xkb.NewPartial(c.config.PartialName)
	partial.Includes = []string{c.config.BaseInclude}
	partial.DisplayName = src.Name

	triggers := src.DeadKeyTriggers

	baseline, err := c.baseline.Resolve(c.config.BaseInclude)
	if err != nil {
		return nil, fmt.Errorf("resolving baseline %s: %w", c.config.BaseInclude, err)
	}

	var diags diagnostic.Diagnostics

	for _, sc := range src.ScanCodes() {
		code, ok := c.translator.Translate(sc)
		if !ok {
			c.logger.Warn("skipped scan code without XKB key", "scan_code", sc.String())
			diags.AddWarning(diagnostic.CodeUnmappedKey, "no XKB key for scan code", sc.String(), "")

			continue
		}

		out, err := c.output(src.Keys[sc], triggers)
		if err != nil {
			return nil, fmt.Errorf("classifying scan code %s: %w", sc, err)
		}

		if base, ok := baseline[code]; ok && base == out {
			diags.AddInfo(diagnostic.CodeSameAsBaseline, "output equals baseline", sc.String(), string(code))
			continue
		}

		partial.Keys[code] = out
	}

	c.logger.Debug("converted layout",
		"name", src.Name,
		"overrides", len(partial.Keys),
		"unmapped", diags.Count(diagnostic.CodeUnmappedKey),
		"unchanged", diags.Count(diagnostic.CodeSameAsBaseline))

	return &Result{
		Layout:      &xkb.Layout{Default: partial},
		Diagnostics: diags,
	}, nil
}

// output classifies all four slots of key in level order.
func (c *Converter) output(key klc.Key, triggers klc.CharSet) (xkb.Output, error) {
	var levels [4]xkb.CharOrDead

	for i, r := range [4]rune{key.Normal, key.Shift, key.CtrlAlt, key.ShiftCtrlAlt} {
		level, err := c.classifier.Classify(r, triggers)
		if err != nil {
			return xkb.Output{}, err
		}

		levels[i] = level
	}

	return xkb.OutputFromLevels(levels[:]...), nil
}
