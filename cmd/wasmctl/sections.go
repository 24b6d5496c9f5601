package main

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/wasmkit/internal/mmfile"
	"github.com/joshuapare/wasmkit/wasm/section"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSectionsCmd())
}

func newSectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections <input.wasm>",
		Short: "List the sections of a wasm binary",
		Long: `The sections command lists every section of a wasm module or component
in file order, including the sections of nested core modules and components,
which are indented below the section that contains them.

Example:
  wasmctl sections app.wasm
  wasmctl sections app.wasm --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSections(args)
		},
	}
	return cmd
}

func runSections(args []string) error {
	path := args[0]

	m, err := mmfile.Open(path)
	if err != nil {
		return err
	}
	defer m.Close()
	printVerbose("Mapped %s (%s)\n", path, formatSize(int64(m.Len())))

	infos, err := section.List(m.Reader())
	if err != nil {
		return fmt.Errorf("failed to list sections: %w", err)
	}

	if jsonOut {
		return printJSON(infos)
	}

	printInfo("%s\n", render(titleStyle, fmt.Sprintf("%-10s  %-3s  %-12s  %10s  %s", "OFFSET", "ID", "KIND", "SIZE", "NAME")))
	for _, info := range infos {
		kind := strings.Repeat("  ", info.Depth) + info.Kind
		printInfo("0x%08x  %3d  %-12s  %10d  %s\n", info.Offset, info.ID, kind, info.Size, displayName(info.Name))
	}
	printVerbose("\n%s\n", render(mutedStyle, fmt.Sprintf("%d section(s)", len(infos))))
	return nil
}

// displayName makes a custom section name safe to print. Names are raw bytes
// on the wire; invalid UTF-8 is replaced with U+FFFD.
func displayName(name string) string {
	s, err := unicode.UTF8.NewDecoder().String(name)
	if err != nil {
		return fmt.Sprintf("%q", name)
	}
	return s
}
