package stegpng

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"unicode/utf8"
)

// Chunk is a single length-prefixed, type-tagged, checksummed PNG record.
//
// A Chunk is immutable once constructed: length always equals len(data),
// and crc is always CRC-32/ISO-HDLC over the type bytes followed by the
// data bytes. Both are derived at construction and never settable, so a
// Chunk is safe for concurrent readers.
type Chunk struct {
	length uint32
	typ    ChunkType
	data   []byte
	crc    uint32
}

// NewChunk builds a chunk from a validated type and a data buffer of any
// length, including empty. The buffer is copied; the chunk owns its data
// exclusively. NewChunk cannot fail.
func NewChunk(typ ChunkType, data []byte) *Chunk {
	d := make([]byte, len(data))
	copy(d, data)
	return &Chunk{
		length: uint32(len(d)),
		typ:    typ,
		data:   d,
		crc:    crcChecksum(typ, d),
	}
}

// DecodeChunk parses and verifies one chunk record laid out as
// [length:4][type:4][data:length][crc:4], integers big-endian. Bytes beyond
// 12+length are ignored; chunk boundaries within a larger stream are the
// caller's concern.
//
// It returns ErrInvalidChunkLength for a buffer too short to hold the
// record, a *CRCError when the stored checksum does not match the
// recomputed one, and the type code's own error unwrapped when its bytes
// are invalid.
func DecodeChunk(b []byte) (*Chunk, error) {
	if len(b) < chunkOverhead {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrInvalidChunkLength, len(b), chunkOverhead)
	}
	length := binary.BigEndian.Uint32(b[:lenFieldSize])
	if uint64(len(b)) < uint64(length)+chunkOverhead {
		return nil, fmt.Errorf("%w: declared %d data bytes, record has %d", ErrInvalidChunkLength, length, len(b))
	}
	typ, err := ChunkTypeFromBytes([4]byte(b[lenFieldSize:dataOffset]))
	if err != nil {
		return nil, err
	}
	data := make([]byte, length)
	copy(data, b[dataOffset:dataOffset+int(length)])
	stored := binary.BigEndian.Uint32(b[dataOffset+int(length):])
	expected := crcChecksum(typ, data)
	if stored != expected {
		return nil, &CRCError{Stored: stored, Expected: expected}
	}
	return &Chunk{length: length, typ: typ, data: data, crc: stored}, nil
}

// Bytes serializes the chunk to its wire form. Total size is 12+length.
func (c *Chunk) Bytes() []byte {
	buf := make([]byte, chunkOverhead+len(c.data))
	binary.BigEndian.PutUint32(buf[:lenFieldSize], c.length)
	copy(buf[lenFieldSize:dataOffset], c.typ[:])
	copy(buf[dataOffset:], c.data)
	binary.BigEndian.PutUint32(buf[dataOffset+len(c.data):], c.crc)
	return buf
}

// Length returns the data byte count.
func (c *Chunk) Length() int { return int(c.length) }

// Type returns the chunk's type code.
func (c *Chunk) Type() ChunkType { return c.typ }

// Data returns the chunk's payload without copying. Callers must not
// modify the returned slice.
func (c *Chunk) Data() []byte { return c.data }

// CRC returns the chunk's checksum.
func (c *Chunk) CRC() uint32 { return c.crc }

// Text interprets the chunk data as UTF-8 text, failing with ErrNotText
// otherwise. Binary payloads are fully legal chunks; only this view is
// restricted.
func (c *Chunk) Text() (string, error) {
	if !utf8.Valid(c.data) {
		return "", ErrNotText
	}
	return string(c.data), nil
}

func (c *Chunk) String() string {
	return fmt.Sprintf("%s[%d] crc=%08x", c.typ, c.length, c.crc)
}

// crcChecksum computes CRC-32/ISO-HDLC over the type bytes followed by the
// data bytes. The IEEE table is that variant, shared with gzip.
func crcChecksum(typ ChunkType, data []byte) uint32 {
	crc := crc32.ChecksumIEEE(typ[:])
	return crc32.Update(crc, crc32.IEEETable, data)
}
