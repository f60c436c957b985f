package app

import (
	"io"
	"os"
)

// Options controls how the application is built.
type Options struct {
	// ConfigPath is an optional YAML configuration file.
	ConfigPath string
	// Version is reported to MCP clients.
	Version string

	// Getenv overrides environment lookup, nil means os.Getenv.
	Getenv func(string) string
	// LogOutput receives log records, nil means os.Stderr.
	LogOutput io.Writer
	// Stdin and Stdout carry the stdio transport, nil means the process
	// streams.
	Stdin  io.Reader
	Stdout io.Writer
}

func (o Options) withDefaults() Options {
	if o.LogOutput == nil {
		o.LogOutput = os.Stderr
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Version == "" {
		o.Version = "dev"
	}
	return o
}
