// Package xkb models X11 keyboard symbol definitions ("xkb_symbols" files)
// and reads and writes their textual form.
//
// A symbols file holds one or more named partials. Each partial may include
// other partials by reference and overrides the outputs of individual keys:
//
//	default partial alphanumeric_keys
//	xkb_symbols "basic" {
//	    include "dk(basic)"
//	    name[Group1] = "My Layout";
//
//	    key <AD01> { [ q, Q, at, NoSymbol ] };
//	};
//
// Only the first group and the first four shift levels of a key are
// modelled: normal, shift, AltGr and AltGr+shift. Statements the model has
// no room for (modifier maps, key types, virtual modifiers) are skipped when
// parsing.
//
// # Keysyms
//
// Each level holds a CharOrDead. Every keysym that stands for a character
// ("lstroke", its aliases, "U0142", "0x1000142") reads as the same Literal.
// Literals are written with their X11 keysym name when one is known (the
// table in keysyms.yaml comes from keysymdef.h), as the character itself for
// ASCII letters and digits, and as "Uxxxx" otherwise. Dead keys keep their
// "dead_" name. Keysyms that are not characters (for example
// "ISO_Level3_Shift" or "KP_Delete") are carried verbatim as a Symbol.
package xkb
