package xkb

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind discriminates the variants of CharOrDead.
type Kind int

const (
	KindLiteral Kind = iota // a single character, NoChar included
	KindDead                // a named dead key, e.g. "dead_acute"
	KindSymbol              // any other named keysym, kept verbatim
)
