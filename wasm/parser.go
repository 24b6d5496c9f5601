package wasm

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/joshuapare/wasmkit/internal/buf"
	"github.com/joshuapare/wasmkit/internal/format"
	"github.com/joshuapare/wasmkit/pkg/types"
)

// MaxChunk bounds the size of a single KindSectionContent payload, and with
// it the amount of section body the Reader ever buffers.
const MaxChunk = 32 * 1024

// ErrParserDone is returned by Parse after the parser has produced KindEnd.
var ErrParserDone = errors.New("wasm: parser already finished")

// Encoding distinguishes the two kinds of wasm binary.
type Encoding uint8

const (
	EncodingModule Encoding = iota + 1
	EncodingComponent
)

func (e Encoding) String() string {
	switch e {
	case EncodingModule:
		return "module"
	case EncodingComponent:
		return "component"
	default:
		return "unknown"
	}
}

// PayloadKind tags what a Payload describes.
type PayloadKind uint8

const (
	// KindVersion is the eight-byte preamble.
	KindVersion PayloadKind = iota + 1
	// KindSection is the header (id and size) of a non-custom section. The
	// section body follows as KindSectionContent payloads.
	KindSection
	// KindSectionContent is a span of section body bytes.
	KindSectionContent
	// KindCustomSection is the header and name of a custom section. Any
	// remaining content follows as KindSectionContent payloads.
	KindCustomSection
	// KindNested is the header of a component section holding a complete
	// nested binary. Payload.Parser parses the nested region.
	KindNested
	// KindEnd marks the end of the binary being parsed.
	KindEnd
)

func (k PayloadKind) String() string {
	switch k {
	case KindVersion:
		return "version"
	case KindSection:
		return "section"
	case KindSectionContent:
		return "content"
	case KindCustomSection:
		return "custom"
	case KindNested:
		return "nested"
	case KindEnd:
		return "end"
	default:
		return fmt.Sprintf("PayloadKind(%d)", uint8(k))
	}
}

// Payload describes one structural unit of a wasm binary.
type Payload struct {
	Kind PayloadKind

	// Offset is the absolute position of the unit's first byte in the
	// outermost binary.
	Offset uint64

	// Encoding and Version are set for KindVersion.
	Encoding Encoding
	Version  uint16

	// ID is the section id for every kind except KindVersion and KindEnd.
	// Content payloads carry the id of the section they belong to.
	ID format.SectionID

	// Size is the declared section size for KindSection, KindCustomSection
	// and KindNested.
	Size uint32

	// Name is the custom section name for KindCustomSection.
	Name string

	// Parser is the parser for the nested region for KindNested.
	Parser *Parser
}

// Chunk is the result of one Parse call. Either Need is positive and the
// parser wants that many more bytes, or Consumed bytes from the front of the
// buffer were parsed into Payload.
type Chunk struct {
	Consumed int
	Payload  Payload
	Need     int
}

type parserState uint8

const (
	stateHeader parserState = iota
	stateSectionStart
	stateContent
	stateEnd
)

// Parser is an incremental wasm parser. It holds no input: each Parse call is
// handed the unconsumed bytes, parses at most one unit from their front, and
// either reports how many bytes that unit took or how many more it needs.
//
// A Parser is either top-level, ending where its input ends, or scoped to a
// nested region of known size, ending exactly at the region boundary.
type Parser struct {
	state     parserState
	base      uint64 // absolute offset of this parser's first byte
	offset    uint64 // bytes consumed, relative to base
	limit     uint64 // region size when bounded
	bounded   bool
	expect    Encoding
	encoding  Encoding
	sectionID format.SectionID
	remaining uint64 // body bytes left in the current section
}

// NewParser returns a parser for a top-level module or component.
func NewParser() *Parser {
	return &Parser{}
}

func newNestedParser(base uint64, size uint32, expect Encoding) *Parser {
	return &Parser{
		base:    base,
		limit:   uint64(size),
		bounded: true,
		expect:  expect,
	}
}

// Encoding returns the kind of binary being parsed, or zero before the
// preamble has been parsed.
func (p *Parser) Encoding() Encoding { return p.encoding }

// Offset returns the absolute offset of the next unparsed byte.
func (p *Parser) Offset() uint64 { return p.base + p.offset }

// Done reports whether the parser has produced KindEnd.
func (p *Parser) Done() bool { return p.state == stateEnd }

// Parse parses one unit from the front of data. eof reports that no input
// follows data. When data is too short and eof is false, the returned Chunk
// has Need > 0; when eof is true the input is malformed.
func (p *Parser) Parse(data []byte, eof bool) (Chunk, error) {
	switch p.state {
	case stateHeader:
		return p.parseHeader(data, eof)
	case stateSectionStart:
		return p.parseSectionStart(data, eof)
	case stateContent:
		return p.parseContent(data, eof)
	default:
		return Chunk{}, ErrParserDone
	}
}

func (p *Parser) malformed(rel uint64, err error) error {
	return types.Malformed(fmt.Sprintf("malformed wasm binary at offset %d", p.base+rel), err)
}

// want returns how many more bytes data needs to hold n bytes. It fails when
// n bytes would cross the region boundary or the input has ended.
func (p *Parser) want(data []byte, n int, eof bool) (int, error) {
	if p.bounded && p.offset+uint64(n) > p.limit {
		return 0, p.malformed(p.offset, format.ErrBounds)
	}
	if len(data) >= n {
		return 0, nil
	}
	if eof {
		return 0, p.malformed(p.offset+uint64(len(data)), format.ErrTruncated)
	}
	return n - len(data), nil
}

func (p *Parser) parseHeader(data []byte, eof bool) (Chunk, error) {
	need, err := p.want(data, format.HeaderSize, eof)
	if err != nil || need > 0 {
		return Chunk{Need: need}, err
	}
	if !bytes.Equal(data[:format.MagicSize], format.Magic) {
		return Chunk{}, p.malformed(p.offset, format.ErrSignatureMismatch)
	}

	version := buf.U16LE(data[format.VersionOffset:])
	layer := buf.U16LE(data[format.LayerOffset:])
	var enc Encoding
	switch {
	case layer == format.LayerModule && version == format.ModuleVersion:
		enc = EncodingModule
	case layer == format.LayerComponent:
		enc = EncodingComponent
	default:
		return Chunk{}, p.malformed(p.offset, fmt.Errorf("%w: version %d layer %d", format.ErrUnsupported, version, layer))
	}
	if p.expect != 0 && enc != p.expect {
		return Chunk{}, p.malformed(p.offset, fmt.Errorf("%w: want %s, found %s", format.ErrUnexpectedEncoding, p.expect, enc))
	}

	payload := Payload{Kind: KindVersion, Offset: p.Offset(), Encoding: enc, Version: version}
	p.encoding = enc
	p.offset += format.HeaderSize
	p.state = stateSectionStart
	return Chunk{Consumed: format.HeaderSize, Payload: payload}, nil
}

func (p *Parser) end() (Chunk, error) {
	p.state = stateEnd
	return Chunk{Payload: Payload{Kind: KindEnd, Offset: p.Offset()}}, nil
}

func (p *Parser) parseSectionStart(data []byte, eof bool) (Chunk, error) {
	if p.bounded && p.offset == p.limit {
		return p.end()
	}
	if !p.bounded && len(data) == 0 && eof {
		return p.end()
	}

	// id byte plus at least one size byte
	need, err := p.want(data, 2, eof)
	if err != nil || need > 0 {
		return Chunk{Need: need}, err
	}
	id := data[0]
	size, n, err := format.ReadU32(data[1:])
	if err != nil {
		return Chunk{}, p.malformed(p.offset+1, err)
	}
	if n == 0 {
		need, err := p.want(data, len(data)+1, eof)
		return Chunk{Need: need}, err
	}
	hdrLen := 1 + n
	if p.bounded {
		if _, err := buf.CheckSpan(p.limit, p.offset, uint64(hdrLen)+uint64(size)); err != nil {
			return Chunk{}, p.malformed(p.offset, fmt.Errorf("%w: section %d: %v", format.ErrBounds, id, err))
		}
	}

	switch {
	case id == format.SectionCustom:
		return p.parseCustomHeader(data, eof, hdrLen, size)
	case p.encoding == EncodingComponent && format.IsNestedSection(id):
		expect := EncodingModule
		if id == format.ComponentSectionComponent {
			expect = EncodingComponent
		}
		payload := Payload{Kind: KindNested, Offset: p.Offset(), ID: id, Size: size}
		payload.Parser = newNestedParser(p.Offset()+uint64(hdrLen), size, expect)
		// The nested parser consumes the body; this parser resumes after it.
		p.offset += uint64(hdrLen) + uint64(size)
		return Chunk{Consumed: hdrLen, Payload: payload}, nil
	default:
		payload := Payload{Kind: KindSection, Offset: p.Offset(), ID: id, Size: size}
		p.offset += uint64(hdrLen)
		p.enterContent(id, uint64(size))
		return Chunk{Consumed: hdrLen, Payload: payload}, nil
	}
}

func (p *Parser) parseCustomHeader(data []byte, eof bool, hdrLen int, size uint32) (Chunk, error) {
	if size == 0 {
		return Chunk{}, p.malformed(p.offset, fmt.Errorf("%w: custom section without a name", format.ErrTruncated))
	}

	avail := min(uint64(len(data)-hdrLen), uint64(size))
	nameLen, n, err := format.ReadU32(data[hdrLen : hdrLen+int(avail)])
	if err != nil {
		return Chunk{}, p.malformed(p.offset+uint64(hdrLen), err)
	}
	if n == 0 {
		if avail == uint64(size) {
			return Chunk{}, p.malformed(p.offset+uint64(hdrLen), fmt.Errorf("%w: custom section name length", format.ErrBounds))
		}
		need, err := p.want(data, len(data)+1, eof)
		return Chunk{Need: need}, err
	}
	if uint64(n)+uint64(nameLen) > uint64(size) {
		return Chunk{}, p.malformed(p.offset+uint64(hdrLen), fmt.Errorf("%w: name length %d exceeds section size %d", format.ErrBounds, nameLen, size))
	}

	total, ok := buf.SumOverflowSafe(hdrLen, n, int(nameLen))
	if !ok || int(nameLen) < 0 {
		return Chunk{}, p.malformed(p.offset, fmt.Errorf("%w: name length %d", format.ErrBounds, nameLen))
	}
	need, err := p.want(data, total, eof)
	if err != nil || need > 0 {
		return Chunk{Need: need}, err
	}
	name, _ := buf.Slice(data, hdrLen+n, int(nameLen))

	payload := Payload{Kind: KindCustomSection, Offset: p.Offset(), ID: format.SectionCustom, Size: size, Name: string(name)}
	p.offset += uint64(total)
	p.enterContent(format.SectionCustom, uint64(size)-uint64(n)-uint64(nameLen))
	return Chunk{Consumed: total, Payload: payload}, nil
}

func (p *Parser) enterContent(id format.SectionID, remaining uint64) {
	p.sectionID = id
	p.remaining = remaining
	if remaining > 0 {
		p.state = stateContent
	} else {
		p.state = stateSectionStart
	}
}

func (p *Parser) parseContent(data []byte, eof bool) (Chunk, error) {
	if len(data) == 0 {
		if eof {
			return Chunk{}, p.malformed(p.offset, fmt.Errorf("%w: %d section bytes missing", format.ErrTruncated, p.remaining))
		}
		return Chunk{Need: int(min(p.remaining, MaxChunk))}, nil
	}

	n := min(uint64(len(data)), p.remaining, MaxChunk)
	payload := Payload{Kind: KindSectionContent, Offset: p.Offset(), ID: p.sectionID}
	p.offset += n
	p.remaining -= n
	if p.remaining == 0 {
		p.state = stateSectionStart
	}
	return Chunk{Consumed: int(n), Payload: payload}, nil
}
