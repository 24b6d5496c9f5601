package main

import (
	"fmt"

	"github.com/joshuapare/wasmkit/pkg/bundle"
	"github.com/spf13/cobra"
)

var bundleSection string

func init() {
	cmd := newBundleCmd()
	cmd.Flags().StringVarP(&bundleSection, "section", "s", bundle.DefaultSection, "Custom section name")
	rootCmd.AddCommand(cmd)
}

func newBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle <files> <input.wasm> <output.wasm>",
		Short: "Embed a directory or tar archive into a wasm binary",
		Long: `The bundle command copies a wasm binary to a new file, removing every
top-level custom section with the chosen name and appending a new one that
holds a tar archive of the given files.

<files> is either a directory, which is archived (the directory itself is not
included), or an existing tar archive, which is embedded unchanged.

Example:
  wasmctl bundle assets/ app.wasm app.bundled.wasm
  wasmctl bundle assets.tar app.wasm app.bundled.wasm --section .my.resources`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveSection(cmd, &bundleSection); err != nil {
				return err
			}
			return runBundle(args)
		},
	}
	return cmd
}

func runBundle(args []string) error {
	opts := bundle.Options{
		Files:   args[0],
		Input:   args[1],
		Output:  args[2],
		Section: bundleSection,
		Logger:  newLogger(),
	}

	printVerbose("Bundling %s into %s\n", opts.Files, opts.Input)

	res, err := bundle.Bundle(opts)
	if err != nil {
		return fmt.Errorf("bundle failed: %w", err)
	}

	if jsonOut {
		return printJSON(res)
	}

	printInfo("\n%s\n", render(successStyle, "✓ Bundled "+res.Output))
	printInfo("  Section: %s\n", res.Section)
	printInfo("  Payload: %s\n", formatSize(res.PayloadSize))
	if res.SectionsRemoved > 0 {
		printInfo("  Replaced: %d existing section(s)\n", res.SectionsRemoved)
	}
	printInfo("  Size: %s\n", render(mutedStyle, formatSize(res.InputSize)+" -> "+formatSize(res.OutputSize)))
	return nil
}
