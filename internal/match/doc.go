// Package match ranks names by edit distance. It backs the hints shown to
// the operator when naming dead keys: the nearest known keysym for a typed
// name, and a guess derived from a Windows dead key description.
package match
