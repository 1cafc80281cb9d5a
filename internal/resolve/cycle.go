package resolve

import (
	"strings"
)

// CycleError reports an include chain that leads back to itself.
type CycleError struct {
	// Chain starts and ends with the same reference.
	Chain []Reference
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Chain))
	for i, r := range e.Chain {
		parts[i] = r.String()
	}

	return "cyclic include: " + strings.Join(parts, " -> ")
}

// cycleDetector tracks the references currently being resolved.
type cycleDetector struct {
	resolving map[Reference]bool
	stack     []Reference
}

func newCycleDetector() *cycleDetector {
	return &cycleDetector{resolving: make(map[Reference]bool)}
}

// Enter marks ref as resolving and fails if it already is.
func (c *cycleDetector) Enter(ref Reference) error {
	if c.resolving[ref] {
		start := 0
		for i, r := range c.stack {
			if r == ref {
				start = i
				break
			}
		}

		chain := append(append([]Reference{}, c.stack[start:]...), ref)

		return &CycleError{Chain: chain}
	}

	c.resolving[ref] = true
	c.stack = append(c.stack, ref)

	return nil
}

// Leave removes ref from the resolving set.
func (c *cycleDetector) Leave(ref Reference) {
	delete(c.resolving, ref)
	c.stack = c.stack[:len(c.stack)-1]
}
