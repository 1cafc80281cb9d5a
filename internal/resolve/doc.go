// Package resolve flattens chains of XKB partials into a single key map.
//
// A partial may include other partials by reference. A reference has the
// form "path" or "path(part)"; the part defaults to "basic". Resolving a
// reference loads the document at path, resolves every include of the named
// partial in order, and overlays the partial's own keys on top:
//
//	dk(basic) ── include ──▶ latin(type4) ── include ──▶ latin(basic)
//
// The result is the baseline a new layout is diffed against. Include cycles
// are reported as a *CycleError instead of recursing forever.
package resolve
