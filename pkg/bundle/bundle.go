package bundle

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/joshuapare/wasmkit/internal/archive"
	"github.com/joshuapare/wasmkit/internal/writer"
	"github.com/joshuapare/wasmkit/pkg/types"
	"github.com/joshuapare/wasmkit/wasm/section"
)

// inputBufferSize sizes the read buffer under the wasm.Reader, which asks for
// a few bytes at a time while decoding section headers.
const inputBufferSize = 64 * 1024

// Result reports what a Bundle run did.
type Result struct {
	Output          string `json:"output"`
	Section         string `json:"section"`
	PayloadSize     int64  `json:"payload_size"`
	SectionsRemoved int    `json:"sections_removed"`
	InputSize       int64  `json:"input_size"`
	OutputSize      int64  `json:"output_size"`
}

// Bundle embeds a tar payload into a wasm binary as a custom section.
//
// It prepares the payload, copies opts.Input to opts.Output while removing
// every top-level custom section named opts.Section, appends a new section
// with that name holding the payload, and commits the output. On any error
// opts.Output does not exist afterwards.
//
// Example:
//
//	res, err := bundle.Bundle(bundle.Options{
//	    Files:  "assets/",
//	    Input:  "app.wasm",
//	    Output: "app.bundled.wasm",
//	})
func Bundle(opts Options) (*Result, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	if err := validate(opts); err != nil {
		return nil, err
	}

	// The payload is fully prepared and measured before the output exists, so
	// an invalid archive never gets as far as creating it.
	payload, err := archive.Prepare(opts.Files)
	if err != nil {
		return nil, fmt.Errorf("prepare payload: %w", err)
	}
	defer func() {
		_ = payload.Close()
	}()
	log.Debug("payload ready", slog.String("files", opts.Files), slog.Int64("size", payload.Size()))

	out, stats, err := StripFile(opts.Section, opts.Input, opts.Output)
	if err != nil {
		return nil, err
	}
	defer out.Abandon()
	log.Debug("stripped sections",
		slog.String("section", opts.Section),
		slog.Int("removed", stats.Removed),
		slog.Int("sections", stats.Sections))

	n, err := section.Append(out, opts.Section, payload, payload.Size())
	if err != nil {
		return nil, fmt.Errorf("append section %q: %w", opts.Section, err)
	}

	f, err := out.Commit()
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", opts.Output, err)
	}
	if err := f.Close(); err != nil {
		return nil, types.IOError("close output file", err)
	}

	res := &Result{
		Output:          opts.Output,
		Section:         opts.Section,
		PayloadSize:     payload.Size(),
		SectionsRemoved: stats.Removed,
		InputSize:       stats.BytesRead,
		OutputSize:      stats.BytesWritten + n,
	}
	log.Info("bundled",
		slog.String("output", res.Output),
		slog.String("section", res.Section),
		slog.Int64("payload_size", res.PayloadSize),
		slog.Int64("output_size", res.OutputSize))
	return res, nil
}

// StripFile copies the wasm binary at input to a new file at output,
// leaving out every top-level custom section called name.
//
// The returned OutputFile is armed: the caller appends to it and must either
// Commit it or Abandon it. On error the output has already been removed.
func StripFile(name, input, output string) (*writer.OutputFile, section.Stats, error) {
	if err := distinct(input, output); err != nil {
		return nil, section.Stats{}, err
	}

	in, err := os.Open(input)
	if err != nil {
		return nil, section.Stats{}, types.IOError("open input", err)
	}
	defer func() {
		// Read-only file handle; close errors are exotic.
		_ = in.Close()
	}()

	out, err := writer.Create(output)
	if err != nil {
		return nil, section.Stats{}, err
	}

	stats, err := section.Strip(name, bufio.NewReaderSize(in, inputBufferSize), out)
	if err != nil {
		out.Abandon()
		return nil, stats, fmt.Errorf("rewrite %s: %w", input, err)
	}
	return out, stats, nil
}

// ValidateSectionName checks that name can be written as a custom section
// name, which wasm requires to be valid UTF-8.
func ValidateSectionName(name string) error {
	if _, _, err := transform.String(encoding.UTF8Validator, name); err != nil {
		return types.Usage(fmt.Sprintf("section name %q is not valid UTF-8", name))
	}
	return nil
}

func validate(opts Options) error {
	switch {
	case opts.Files == "":
		return types.Usage("payload path is required")
	case opts.Input == "":
		return types.Usage("input path is required")
	case opts.Output == "":
		return types.Usage("output path is required")
	}
	if err := ValidateSectionName(opts.Section); err != nil {
		return err
	}

	return distinct(opts.Input, opts.Output)
}

// distinct fails when output names the same file as input. Creating the
// output truncates it, which would destroy an input at the same path.
func distinct(input, output string) error {
	inInfo, err := os.Stat(input)
	if err != nil {
		return types.IOError("stat input", err)
	}
	outInfo, err := os.Stat(output)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return types.IOError("stat output", err)
	}
	if os.SameFile(inInfo, outInfo) {
		return types.Usage("output must not be the input file")
	}
	return nil
}
