package convert

// Config holds the fixed parts of every conversion.
type Config struct {
	// BaseInclude is the reference the emitted partial includes and the
	// baseline its keys are diffed against.
	BaseInclude string
	// PartialName names the emitted partial.
	PartialName string
}

// DefaultConfig returns the configuration of the dead-key base layout.
func DefaultConfig() Config {
	return Config{
		BaseInclude: "dk(basic)",
		PartialName: "basic",
	}
}
