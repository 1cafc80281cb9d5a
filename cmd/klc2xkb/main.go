// Package main provides the CLI entrypoint for klc2xkb.
//
// klc2xkb converts Windows keyboard layout sources (.klc) into XKB symbols
// files. Every argument is converted in turn and written next to its input
// with the extension removed; only keys that differ from the dk(basic)
// baseline are emitted. Dead keys are named interactively.
//
// Environment:
//
//	KLC2XKB_SYMBOLS_DIR  XKB symbols directory (default /usr/share/X11/xkb/symbols)
//	KLC2XKB_LOG_LEVEL    debug, info, warn or error (default info)
//	KLC2XKB_LOG_FORMAT   text or json (default text)
//
// The baseline is read from KLC2XKB_SYMBOLS_DIR/dk. To use a "dk" symbols
// file in the working directory instead, set KLC2XKB_SYMBOLS_DIR=. before
// running.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"klc2xkb/internal/app"
)

const usage = "usage: klc2xkb <layout.klc>..."

var errUsage = errors.New(usage)

func main() {
	// Minimal logger until the app configures its own.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Args[1:], os.Getenv, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "klc2xkb: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, getenv func(string) string, in io.Reader, out, errW io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cfg := app.ConfigFromEnv(getenv)

	return app.New(cfg, in, out, errW).Run(args)
}
