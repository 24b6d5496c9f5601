package wasm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/wasmkit/internal/format"
	"github.com/joshuapare/wasmkit/internal/testutil"
	"github.com/joshuapare/wasmkit/pkg/types"
	"github.com/joshuapare/wasmkit/wasm"
)

func TestParser_NeedHints(t *testing.T) {
	p := wasm.NewParser()

	chunk, err := p.Parse(nil, false)
	require.NoError(t, err)
	assert.Equal(t, format.HeaderSize, chunk.Need)

	chunk, err = p.Parse(testutil.ModuleHeader[:5], false)
	require.NoError(t, err)
	assert.Equal(t, 3, chunk.Need)

	chunk, err = p.Parse(testutil.ModuleHeader, false)
	require.NoError(t, err)
	assert.Zero(t, chunk.Need)
	assert.Equal(t, format.HeaderSize, chunk.Consumed)
	assert.Equal(t, wasm.EncodingModule, p.Encoding())
	assert.EqualValues(t, 8, p.Offset())

	// Section header: id plus a size varint that is still incomplete.
	chunk, err = p.Parse([]byte{0x0b}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, chunk.Need)

	chunk, err = p.Parse([]byte{0x0b, 0x80}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, chunk.Need)

	chunk, err = p.Parse([]byte{0x0b, 0x80, 0x01}, false)
	require.NoError(t, err)
	assert.Equal(t, 3, chunk.Consumed)
	assert.Equal(t, wasm.KindSection, chunk.Payload.Kind)
	assert.EqualValues(t, 128, chunk.Payload.Size)

	// Content is requested in spans no larger than what remains.
	chunk, err = p.Parse(nil, false)
	require.NoError(t, err)
	assert.Equal(t, 128, chunk.Need)

	chunk, err = p.Parse(make([]byte, 100), false)
	require.NoError(t, err)
	assert.Equal(t, 100, chunk.Consumed)
	assert.Equal(t, wasm.KindSectionContent, chunk.Payload.Kind)
	assert.EqualValues(t, format.SectionData, chunk.Payload.ID)

	chunk, err = p.Parse(make([]byte, 100), false)
	require.NoError(t, err)
	assert.Equal(t, 28, chunk.Consumed, "content must not spill into the next section")

	chunk, err = p.Parse(nil, true)
	require.NoError(t, err)
	assert.Equal(t, wasm.KindEnd, chunk.Payload.Kind)
	assert.True(t, p.Done())

	_, err = p.Parse(nil, true)
	assert.ErrorIs(t, err, wasm.ErrParserDone)
}

func TestParser_CustomSectionNameNeedsWholeName(t *testing.T) {
	section := testutil.Custom("resources", []byte{9, 9})
	p := wasm.NewParser()
	_, err := p.Parse(testutil.ModuleHeader, false)
	require.NoError(t, err)

	// id, size and name length are present; the name itself is not.
	chunk, err := p.Parse(section[:3], false)
	require.NoError(t, err)
	assert.Equal(t, len("resources"), chunk.Need)

	chunk, err = p.Parse(section, false)
	require.NoError(t, err)
	assert.Equal(t, wasm.KindCustomSection, chunk.Payload.Kind)
	assert.Equal(t, "resources", chunk.Payload.Name)
	assert.Equal(t, len(section)-2, chunk.Consumed)
}

func TestParser_TruncatedAtEOF(t *testing.T) {
	p := wasm.NewParser()
	_, err := p.Parse(testutil.ModuleHeader[:4], true)
	require.ErrorIs(t, err, types.ErrMalformed)
	assert.ErrorIs(t, err, format.ErrTruncated)
	assert.Contains(t, err.Error(), "offset 4")
}

func TestParser_NestedEntry(t *testing.T) {
	module := testutil.SampleModule()
	data := testutil.Component(testutil.CoreModule(module))

	p := wasm.NewParser()
	chunk, err := p.Parse(data, true)
	require.NoError(t, err)
	assert.Equal(t, wasm.EncodingComponent, chunk.Payload.Encoding)
	assert.EqualValues(t, 0x0d, chunk.Payload.Version)
	data = data[chunk.Consumed:]

	chunk, err = p.Parse(data, true)
	require.NoError(t, err)
	require.Equal(t, wasm.KindNested, chunk.Payload.Kind)
	require.NotNil(t, chunk.Payload.Parser)
	assert.EqualValues(t, len(module), chunk.Payload.Size)
	data = data[chunk.Consumed:]

	// The outer parser has already skipped the nested region.
	assert.EqualValues(t, 8+chunk.Consumed+len(module), p.Offset())

	child := chunk.Payload.Parser
	assert.EqualValues(t, 8+chunk.Consumed, child.Offset())
	for !child.Done() {
		c, err := child.Parse(data, true)
		require.NoError(t, err)
		data = data[c.Consumed:]
	}
	assert.Empty(t, data)

	chunk, err = p.Parse(data, true)
	require.NoError(t, err)
	assert.Equal(t, wasm.KindEnd, chunk.Payload.Kind)
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "custom", wasm.KindCustomSection.String())
	assert.Equal(t, "PayloadKind(99)", wasm.PayloadKind(99).String())
	assert.Equal(t, "component", wasm.EncodingComponent.String())
	assert.Equal(t, "unknown", wasm.Encoding(0).String())
}
