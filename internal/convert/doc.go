// Package convert turns a parsed Windows layout into an XKB symbols layout.
//
// The result holds one partial, "basic", that includes a fixed baseline
// ("dk(basic)" by default) and overrides only the keys whose output differs
// from what that baseline already produces. Each output slot goes through a
// deadkey.Classifier first, so trigger characters may become named dead
// keys.
//
// The comparison against the baseline is strict equality. A key whose new
// output extends the baseline's (for example fills a level the baseline
// leaves empty) is emitted in full.
package convert
