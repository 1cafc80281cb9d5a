// Package app drives conversions from the command line: it reads the
// environment, configures logging, and runs parse, convert and write for
// every input file in turn.
package app
