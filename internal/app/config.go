package app

import "klc2xkb/internal/convert"

// Environment variables read by ConfigFromEnv.
const (
	EnvSymbolsDir = "KLC2XKB_SYMBOLS_DIR"
	EnvLogLevel   = "KLC2XKB_LOG_LEVEL"
	EnvLogFormat  = "KLC2XKB_LOG_FORMAT"
)

// Config holds everything an App needs to run.
type Config struct {
	// SymbolsDir is where the baseline include chain is loaded from.
	SymbolsDir string
	LogLevel   string // debug, info, warn or error
	LogFormat  string // text or json

	Convert convert.Config
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		SymbolsDir: "/usr/share/X11/xkb/symbols",
		LogLevel:   "info",
		LogFormat:  "text",
		Convert:    convert.DefaultConfig(),
	}
}

// ConfigFromEnv overlays the non-empty environment variables on
// DefaultConfig. getenv is usually os.Getenv.
func ConfigFromEnv(getenv func(string) string) Config {
	cfg := DefaultConfig()

	if v := getenv(EnvSymbolsDir); v != "" {
		cfg.SymbolsDir = v
	}

	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	if v := getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}

	return cfg
}
