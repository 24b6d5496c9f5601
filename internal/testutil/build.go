// Package testutil builds wasm fixtures for tests.
package testutil

import "github.com/joshuapare/wasmkit/internal/format"

// ModuleHeader is the preamble of a core module.
var ModuleHeader = []byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}

// ComponentHeader is the preamble of a component (version 0x0d, layer 1).
var ComponentHeader = []byte{0x00, 'a', 's', 'm', 0x0d, 0x00, 0x01, 0x00}

// Section encodes a section with the given id and payload.
func Section(id byte, payload []byte) []byte {
	out := []byte{id}
	out = format.AppendUvarint(out, uint64(len(payload)))
	return append(out, payload...)
}

// Custom encodes a custom section.
func Custom(name string, content []byte) []byte {
	payload := format.AppendUvarint(nil, uint64(len(name)))
	payload = append(payload, name...)
	payload = append(payload, content...)
	return Section(format.SectionCustom, payload)
}

// Module concatenates the module preamble and sections.
func Module(sections ...[]byte) []byte {
	return concat(ModuleHeader, sections)
}

// Component concatenates the component preamble and sections.
func Component(sections ...[]byte) []byte {
	return concat(ComponentHeader, sections)
}

// CoreModule wraps a module binary in a component core module section.
func CoreModule(module []byte) []byte {
	return Section(format.ComponentSectionCoreModule, module)
}

// NestedComponent wraps a component binary in a component section.
func NestedComponent(component []byte) []byte {
	return Section(format.ComponentSectionComponent, component)
}

// SampleModule returns a small valid module exporting a function "run"
// returning i32 42, plus a "name" custom section.
func SampleModule() []byte {
	return Module(
		// (type (func (result i32)))
		Section(format.SectionType, []byte{0x01, 0x60, 0x00, 0x01, 0x7f}),
		Section(format.SectionFunction, []byte{0x01, 0x00}),
		// (export "run" (func 0))
		Section(format.SectionExport, []byte{0x01, 0x03, 'r', 'u', 'n', 0x00, 0x00}),
		// i32.const 42; end
		Section(format.SectionCode, []byte{0x01, 0x04, 0x00, 0x41, 0x2a, 0x0b}),
		Custom("name", []byte{0x00, 0x04, 0x03, 'r', 'u', 'n'}),
	)
}

func concat(header []byte, sections [][]byte) []byte {
	out := append([]byte(nil), header...)
	for _, s := range sections {
		out = append(out, s...)
	}
	return out
}
