package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/wasmkit/internal/testutil"
	"github.com/joshuapare/wasmkit/pkg/types"
)

func TestBundleCommand(t *testing.T) {
	tests := []struct {
		name        string
		section     string
		files       func(t *testing.T) string
		input       []byte
		wantJSON    bool
		wantErr     error
		wantContain []string
	}{
		{
			name:        "directory payload",
			files:       func(t *testing.T) string { return testutil.WriteTree(t, map[string]string{"a.txt": "a"}) },
			input:       testutil.SampleModule(),
			wantContain: []string{"Bundled", "Section: .enarx.resources", "Payload:"},
		},
		{
			name:        "custom section name",
			section:     "res",
			files:       func(t *testing.T) string { return testutil.WriteTree(t, map[string]string{"a.txt": "a"}) },
			input:       testutil.SampleModule(),
			wantContain: []string{"Section: res"},
		},
		{
			name:        "json output",
			files:       func(t *testing.T) string { return testutil.WriteTree(t, map[string]string{"a.txt": "a"}) },
			input:       testutil.SampleModule(),
			wantJSON:    true,
			wantContain: []string{`"section": ".enarx.resources"`, `"payload_size"`},
		},
		{
			name:    "invalid archive",
			files:   func(t *testing.T) string { return testutil.WriteFile(t, "bad.tar", []byte("garbage")) },
			input:   testutil.SampleModule(),
			wantErr: types.ErrInvalidArchive,
		},
		{
			name:    "malformed input",
			files:   func(t *testing.T) string { return testutil.WriteTree(t, map[string]string{"a.txt": "a"}) },
			input:   []byte("not wasm at all"),
			wantErr: types.ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.wantJSON
			if tt.section != "" {
				bundleSection = tt.section
			}

			input := testutil.WriteFile(t, "in.wasm", tt.input)
			output := filepath.Join(t.TempDir(), "out.wasm")
			args := []string{tt.files(t), input, output}

			out, err := captureOutput(t, func() error {
				return runBundle(args)
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.NoFileExists(t, output)
				return
			}
			require.NoError(t, err, out)
			require.FileExists(t, output)
			if tt.wantJSON {
				assertJSON(t, out)
			}
			assertContains(t, out, tt.wantContain)
		})
	}
}

func TestBundleCommandQuiet(t *testing.T) {
	resetFlags()
	quiet = true
	defer resetFlags()

	input := testutil.WriteFile(t, "in.wasm", testutil.SampleModule())
	output := filepath.Join(t.TempDir(), "out.wasm")
	files := testutil.WriteTree(t, map[string]string{"a.txt": "a"})

	out, err := captureOutput(t, func() error {
		return runBundle([]string{files, input, output})
	})
	require.NoError(t, err)
	assert.Empty(t, out)

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(len(testutil.SampleModule())))
}

func TestRootCommandArgs(t *testing.T) {
	resetFlags()
	defer resetFlags()

	rootCmd.SetArgs([]string{"bundle", "only-one-arg"})
	defer rootCmd.SetArgs(nil)
	rootCmd.SetOut(os.Stderr)
	rootCmd.SetErr(os.Stderr)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 3 arg(s)")
}
