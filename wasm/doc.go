// Package wasm provides streaming, incremental parsing of WebAssembly
// binaries: core modules and components.
//
// # Overview
//
// The package never materializes a whole binary. A Parser inspects the front
// of a byte slice and either parses one structural unit or reports how many
// more bytes it needs; a Reader drives a Parser over an io.Reader, keeping
// only the bytes the parser asked for in a staging buffer.
//
// Only section boundaries are decoded. Section bodies are surfaced as opaque
// spans of at most MaxChunk bytes, except for the name of a custom section,
// which is decoded so callers can filter on it.
//
// # File Structure
//
//	module         := magic:"\0asm" version:u16 layer:u16 section*
//	section        := id:u8 size:varuint32 payload:bytes[size]
//	custom_payload := name_len:varuint32 name:bytes[name_len] content:bytes
//
// Layer 0 with version 1 is a core module; layer 1 is a component. Component
// sections 1 (core module) and 4 (component) contain complete nested
// binaries.
//
// # Events
//
// Every Reader.Next call returns an Event whose Payload is one of:
//
//   - KindVersion: the eight-byte preamble
//   - KindSection: a non-custom section header (id and size)
//   - KindCustomSection: a custom section header and its name
//   - KindSectionContent: a span of section body bytes
//   - KindNested: a nested binary's section header; parsing continues inside it
//   - KindEnd: the end of the current binary
//
// Concatenating Reader.Raw for every event reproduces the input exactly,
// which is what makes byte-for-byte rewriting possible.
//
// # Nesting
//
// Nested binaries are handled with an explicit stack rather than recursion.
// On KindNested the Reader suspends the current Parser and continues with
// one scoped to the nested region; the region's KindEnd pops the stack and
// resumes the enclosing binary just past the region. Nesting depth is
// limited only by memory.
//
// # Error Handling
//
// Input that cannot be a wasm binary (bad magic, truncation, sizes that
// overrun their region, over-long varints) is reported as a *types.Error of
// kind ErrKindMalformed carrying the absolute offset. Read failures are
// ErrKindIO.
//
// # Thread Safety
//
// Parser and Reader are NOT thread-safe. Use one per goroutine.
package wasm
