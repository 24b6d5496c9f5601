package main

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/wasmkit/internal/testutil"
	"github.com/joshuapare/wasmkit/pkg/bundle"
)

func sectionCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("section", bundle.DefaultSection, "")
	return cmd
}

func TestResolveSection(t *testing.T) {
	defer resetFlags()

	t.Run("default", func(t *testing.T) {
		resetFlags()
		got := "unset"
		require.NoError(t, resolveSection(sectionCmd(), &got))
		assert.Equal(t, bundle.DefaultSection, got)
	})

	t.Run("config file", func(t *testing.T) {
		resetFlags()
		cfgFile = testutil.WriteFile(t, "wasmctl.toml", []byte("section = \".from.config\"\n"))
		got := "unset"
		require.NoError(t, resolveSection(sectionCmd(), &got))
		assert.Equal(t, ".from.config", got)
	})

	t.Run("environment overrides config file", func(t *testing.T) {
		resetFlags()
		cfgFile = testutil.WriteFile(t, "wasmctl.toml", []byte("section = \".from.config\"\n"))
		t.Setenv("WASMCTL_SECTION", ".from.env")
		got := "unset"
		require.NoError(t, resolveSection(sectionCmd(), &got))
		assert.Equal(t, ".from.env", got)
	})

	t.Run("explicit flag wins", func(t *testing.T) {
		resetFlags()
		t.Setenv("WASMCTL_SECTION", ".from.env")
		cmd := sectionCmd()
		require.NoError(t, cmd.Flags().Set("section", ".from.flag"))
		got := ".from.flag"
		require.NoError(t, resolveSection(cmd, &got))
		assert.Equal(t, ".from.flag", got)
	})

	t.Run("missing config file", func(t *testing.T) {
		resetFlags()
		cfgFile = filepath.Join(t.TempDir(), "missing.toml")
		got := "unset"
		require.Error(t, resolveSection(sectionCmd(), &got))
		assert.Equal(t, "unset", got)
	})
}
