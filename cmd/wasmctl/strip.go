package main

import (
	"fmt"

	"github.com/joshuapare/wasmkit/pkg/bundle"
	"github.com/joshuapare/wasmkit/pkg/types"
	"github.com/spf13/cobra"
)

var stripSection string

func init() {
	cmd := newStripCmd()
	cmd.Flags().StringVarP(&stripSection, "section", "s", bundle.DefaultSection, "Custom section name")
	rootCmd.AddCommand(cmd)
}

func newStripCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strip <input.wasm> <output.wasm>",
		Short: "Remove custom sections by name",
		Long: `The strip command copies a wasm binary to a new file, leaving out every
top-level custom section with the chosen name. All other bytes are copied
unchanged.

Example:
  wasmctl strip app.bundled.wasm app.wasm
  wasmctl strip app.wasm app.stripped.wasm --section name`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveSection(cmd, &stripSection); err != nil {
				return err
			}
			return runStrip(args)
		},
	}
	return cmd
}

func runStrip(args []string) error {
	input, output := args[0], args[1]

	if err := bundle.ValidateSectionName(stripSection); err != nil {
		return err
	}

	printVerbose("Stripping %q from %s\n", stripSection, input)

	out, stats, err := bundle.StripFile(stripSection, input, output)
	if err != nil {
		return fmt.Errorf("strip failed: %w", err)
	}
	defer out.Abandon()

	f, err := out.Commit()
	if err != nil {
		return fmt.Errorf("strip failed: %w", err)
	}
	if err := f.Close(); err != nil {
		return types.IOError("close output file", err)
	}

	if jsonOut {
		return printJSON(stats)
	}
	printInfo("%s\n", render(successStyle, fmt.Sprintf("✓ Removed %d of %d section(s), wrote %s", stats.Removed, stats.Sections, output)))
	return nil
}
