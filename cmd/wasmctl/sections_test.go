package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/wasmkit/internal/testutil"
	"github.com/joshuapare/wasmkit/pkg/types"
	"github.com/joshuapare/wasmkit/wasm/section"
)

func TestSectionsCommand(t *testing.T) {
	tests := []struct {
		name        string
		input       []byte
		wantJSON    bool
		wantErr     error
		wantContain []string
	}{
		{
			name:        "module",
			input:       testutil.SampleModule(),
			wantContain: []string{"OFFSET", "type", "function", "export", "code", "custom", "name"},
		},
		{
			name: "component with nested module",
			input: testutil.Component(
				testutil.CoreModule(testutil.SampleModule()),
				testutil.Custom("outer", nil),
			),
			wantContain: []string{"core module", "  type", "outer"},
		},
		{
			name:        "json",
			input:       testutil.SampleModule(),
			wantJSON:    true,
			wantContain: []string{`"kind": "export"`, `"name": "name"`},
		},
		{
			name:    "malformed",
			input:   []byte{0x00, 'a', 's', 'm'},
			wantErr: types.ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.wantJSON
			defer resetFlags()

			input := testutil.WriteFile(t, "in.wasm", tt.input)
			out, err := captureOutput(t, func() error {
				return runSections([]string{input})
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantJSON {
				assertJSON(t, out)
				var infos []section.Info
				require.NoError(t, json.Unmarshal([]byte(out), &infos))
				assert.Len(t, infos, 5)
			}
			assertContains(t, out, tt.wantContain)
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, ".enarx.resources", displayName(".enarx.resources"))
	assert.Equal(t, "a�b", displayName("a\xffb"))
}
