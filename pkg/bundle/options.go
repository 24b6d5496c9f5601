package bundle

import (
	"io"
	"log/slog"
)

// DefaultSection is the custom section name used when Options.Section is empty.
const DefaultSection = ".enarx.resources"

// Options controls a Bundle run.
type Options struct {
	// Files is the payload source: a directory, which is archived, or an
	// existing tar archive, which is validated and embedded as-is.
	Files string

	// Input is the wasm binary to read.
	Input string

	// Output is the wasm binary to write. It must differ from Input. It is
	// created (or truncated) once the payload is ready and removed again if
	// any later step fails.
	Output string

	// Section is the custom section name. Existing top-level sections with
	// this name are removed before the new one is appended.
	// Default: DefaultSection.
	Section string

	// Logger receives progress records. If nil, logging is discarded.
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Section == "" {
		o.Section = DefaultSection
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
