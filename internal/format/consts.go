// Package format houses low-level constants and codecs for the WebAssembly
// binary format. The goal is to keep byte-level details focused and
// allocation-free where possible, independent from the streaming parser so
// higher-level packages can orchestrate the data in a more ergonomic form.
package format

// Magic is the four-byte preamble at the start of every wasm binary.
// Layout:
//
//	0x00  0x00 'a' 's' 'm'
var Magic = []byte{0x00, 'a', 's', 'm'}

const (
	// MagicSize is the length of Magic.
	MagicSize = 4

	// HeaderSize is the size of the preamble: magic, a u16 version and a
	// u16 layer, all little-endian.
	//   0x00  magic
	//   0x04  version
	//   0x06  layer (0 = core module, 1 = component)
	HeaderSize = 8

	VersionOffset = 0x04
	LayerOffset   = 0x06

	// ModuleVersion is the only version defined for core modules.
	ModuleVersion = 1

	// LayerModule and LayerComponent distinguish core modules from components.
	LayerModule    = 0
	LayerComponent = 1

	// SectionHeaderMaxSize is the largest possible section header: one id
	// byte followed by a five-byte varuint32 size.
	SectionHeaderMaxSize = 1 + MaxVarU32Len

	// MaxSectionSize is the largest payload a section size field can express.
	MaxSectionSize = 1<<32 - 1
)

// SectionID identifies a section. Custom sections share id 0 in both
// core modules and components; other ids are interpreted per layer.
type SectionID = byte

const (
	SectionCustom SectionID = 0

	// Core module sections.
	SectionType      SectionID = 1
	SectionImport    SectionID = 2
	SectionFunction  SectionID = 3
	SectionTable     SectionID = 4
	SectionMemory    SectionID = 5
	SectionGlobal    SectionID = 6
	SectionExport    SectionID = 7
	SectionStart     SectionID = 8
	SectionElement   SectionID = 9
	SectionCode      SectionID = 10
	SectionData      SectionID = 11
	SectionDataCount SectionID = 12
	SectionTag       SectionID = 13

	// Component sections. CoreModule and Component hold complete nested
	// binaries, each starting with its own preamble.
	ComponentSectionCoreModule   SectionID = 1
	ComponentSectionCoreInstance SectionID = 2
	ComponentSectionCoreType     SectionID = 3
	ComponentSectionComponent    SectionID = 4
	ComponentSectionInstance     SectionID = 5
	ComponentSectionAlias        SectionID = 6
	ComponentSectionType         SectionID = 7
	ComponentSectionCanon        SectionID = 8
	ComponentSectionStart        SectionID = 9
	ComponentSectionImport       SectionID = 10
	ComponentSectionExport       SectionID = 11
	ComponentSectionValue        SectionID = 12
)

var moduleSectionNames = [...]string{
	SectionCustom:    "custom",
	SectionType:      "type",
	SectionImport:    "import",
	SectionFunction:  "function",
	SectionTable:     "table",
	SectionMemory:    "memory",
	SectionGlobal:    "global",
	SectionExport:    "export",
	SectionStart:     "start",
	SectionElement:   "element",
	SectionCode:      "code",
	SectionData:      "data",
	SectionDataCount: "datacount",
	SectionTag:       "tag",
}

var componentSectionNames = [...]string{
	SectionCustom:                "custom",
	ComponentSectionCoreModule:   "core module",
	ComponentSectionCoreInstance: "core instance",
	ComponentSectionCoreType:     "core type",
	ComponentSectionComponent:    "component",
	ComponentSectionInstance:     "instance",
	ComponentSectionAlias:        "alias",
	ComponentSectionType:         "type",
	ComponentSectionCanon:        "canon",
	ComponentSectionStart:        "start",
	ComponentSectionImport:       "import",
	ComponentSectionExport:       "export",
	ComponentSectionValue:        "value",
}

// SectionName returns a human-readable name for id, or "unknown".
func SectionName(id SectionID, component bool) string {
	names := moduleSectionNames[:]
	if component {
		names = componentSectionNames[:]
	}
	if int(id) < len(names) {
		return names[id]
	}
	return "unknown"
}

// IsNestedSection reports whether a component section with the given id
// carries a complete nested binary.
func IsNestedSection(id SectionID) bool {
	return id == ComponentSectionCoreModule || id == ComponentSectionComponent
}
