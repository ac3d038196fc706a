package stegpng

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// PNG is the ordered chunk list of a PNG file, behind the fixed signature.
// It does not interpret chunk payloads; pixel data rides along untouched.
type PNG struct {
	chunks []*Chunk
}

// FromChunks builds a PNG from an already-ordered chunk list. The slice is
// copied; the chunks themselves are shared.
func FromChunks(chunks []*Chunk) *PNG {
	p := &PNG{chunks: make([]*Chunk, len(chunks))}
	copy(p.chunks, chunks)
	return p
}

// Decode reads a PNG stream: the 8-byte signature followed by chunks until
// EOF. Each chunk's length field is bounded by Limits.MaxChunkDataLen
// before any allocation, and each chunk is CRC-verified by DecodeChunk.
//
// Decode returns ErrInvalidSignature if the stream does not start with the
// PNG signature, ErrInvalidChunkLength if it ends mid-chunk, and
// ErrLimitExceeded when a limit is hit.
func Decode(r io.Reader, opts ...DecodeOption) (*PNG, error) {
	cfg := decodeConfig{limits: defaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return nil, err
	}
	if sig != Signature {
		return nil, ErrInvalidSignature
	}

	p := &PNG{}
	var lenBuf [lenFieldSize]byte
	for {
		_, err := io.ReadFull(r, lenBuf[:])
		if err == io.EOF {
			return p, nil
		}
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: truncated length field", ErrInvalidChunkLength)
		}
		if err != nil {
			return nil, err
		}
		if len(p.chunks) >= cfg.limits.MaxChunks {
			return nil, fmt.Errorf("%w: more than %d chunks", ErrLimitExceeded, cfg.limits.MaxChunks)
		}
		length := binary.BigEndian.Uint32(lenBuf[:])
		if length > cfg.limits.MaxChunkDataLen {
			return nil, fmt.Errorf("%w: chunk data length %d", ErrLimitExceeded, length)
		}
		record := make([]byte, chunkOverhead+int(length))
		copy(record, lenBuf[:])
		if _, err := io.ReadFull(r, record[lenFieldSize:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, fmt.Errorf("%w: stream ends inside %d-byte chunk", ErrInvalidChunkLength, length)
			}
			return nil, err
		}
		c, err := DecodeChunk(record)
		if err != nil {
			return nil, err
		}
		p.chunks = append(p.chunks, c)
	}
}

// DecodeBytes decodes a PNG held fully in memory.
func DecodeBytes(b []byte, opts ...DecodeOption) (*PNG, error) {
	return Decode(bytes.NewReader(b), opts...)
}

// Encode writes the signature and every chunk of p to w.
func Encode(w io.Writer, p *PNG) error {
	if _, err := w.Write(Signature[:]); err != nil {
		return err
	}
	for _, c := range p.chunks {
		if _, err := w.Write(c.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// Bytes serializes p to a flat buffer.
func (p *PNG) Bytes() []byte {
	var buf bytes.Buffer
	_ = Encode(&buf, p) // bytes.Buffer writes cannot fail
	return buf.Bytes()
}

// Chunks returns the chunk list in file order. Callers must not modify the
// returned slice.
func (p *PNG) Chunks() []*Chunk { return p.chunks }

// AppendChunk adds c at the end of the file.
func (p *PNG) AppendChunk(c *Chunk) { p.chunks = append(p.chunks, c) }

// InsertBefore places c immediately before the first chunk named name, or
// appends when no such chunk exists.
func (p *PNG) InsertBefore(name string, c *Chunk) {
	for i, existing := range p.chunks {
		if existing.Type().String() == name {
			p.chunks = append(p.chunks[:i], append([]*Chunk{c}, p.chunks[i:]...)...)
			return
		}
	}
	p.chunks = append(p.chunks, c)
}

// RemoveChunk removes the first chunk named name and returns it, or
// ErrChunkNotFound.
func (p *PNG) RemoveChunk(name string) (*Chunk, error) {
	for i, c := range p.chunks {
		if c.Type().String() == name {
			p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrChunkNotFound, name)
}

// ChunkByType returns the first chunk named name, or nil.
func (p *PNG) ChunkByType(name string) *Chunk {
	for _, c := range p.chunks {
		if c.Type().String() == name {
			return c
		}
	}
	return nil
}
