package stegpng

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func chunkFromStrings(t *testing.T, typ, data string) *Chunk {
	t.Helper()
	ct, err := ChunkTypeFromString(typ)
	require.NoError(t, err)
	return NewChunk(ct, []byte(data))
}

func samplePNG(t *testing.T) *PNG {
	t.Helper()
	return FromChunks([]*Chunk{
		chunkFromStrings(t, "FrSt", "I am the first chunk"),
		chunkFromStrings(t, "miDl", "I am another chunk"),
		chunkFromStrings(t, "LASt", "I am the last chunk"),
	})
}

type failingWriter struct {
	n int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, io.ErrClosedPipe
	}
	if len(p) > w.n {
		p = p[:w.n]
	}
	w.n -= len(p)
	return len(p), nil
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := samplePNG(t)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, in))

	out, err := Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, in.Chunks(), out.Chunks())
	require.Equal(t, buf.Bytes(), out.Bytes())
}

func TestDecode_InvalidSignature(t *testing.T) {
	b := samplePNG(t).Bytes()
	b[0] ^= 0xFF
	_, err := DecodeBytes(b)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestDecode_ShortSignature(t *testing.T) {
	_, err := DecodeBytes(Signature[:4])
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestDecode_EmptyFile(t *testing.T) {
	p, err := DecodeBytes(Signature[:])
	require.NoError(t, err)
	require.Empty(t, p.Chunks())
}

func TestDecode_TruncatedChunk(t *testing.T) {
	b := samplePNG(t).Bytes()
	// Drop the last two bytes of the final chunk's crc.
	_, err := DecodeBytes(b[:len(b)-2])
	require.ErrorIs(t, err, ErrInvalidChunkLength)

	// A partial length field is also a truncated chunk.
	_, err = DecodeBytes(append(b, 0x00, 0x00))
	require.ErrorIs(t, err, ErrInvalidChunkLength)
}

func TestDecode_CorruptChunk(t *testing.T) {
	b := samplePNG(t).Bytes()
	// Flip one byte of the first chunk's data.
	b[len(Signature)+dataOffset] ^= 0x01
	_, err := DecodeBytes(b)
	require.ErrorIs(t, err, ErrInvalidCRC)
}

func TestDecode_ChunkDataLimit(t *testing.T) {
	b := samplePNG(t).Bytes()
	_, err := DecodeBytes(b, WithDecodeLimits(Limits{MaxChunkDataLen: 8}))
	require.ErrorIs(t, err, ErrLimitExceeded)
}

func TestDecode_MaxChunksLimit(t *testing.T) {
	b := samplePNG(t).Bytes()
	_, err := DecodeBytes(b, WithDecodeLimits(Limits{MaxChunks: 2}))
	require.ErrorIs(t, err, ErrLimitExceeded)

	p, err := DecodeBytes(b, WithDecodeLimits(Limits{MaxChunks: 3}))
	require.NoError(t, err)
	require.Len(t, p.Chunks(), 3)
}

func TestEncode_WriterError(t *testing.T) {
	err := Encode(&failingWriter{n: 10}, samplePNG(t))
	require.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestPNG_AppendChunk(t *testing.T) {
	p := samplePNG(t)
	p.AppendChunk(chunkFromStrings(t, "TeSt", "appended"))
	require.Len(t, p.Chunks(), 4)
	require.Equal(t, "TeSt", p.Chunks()[3].Type().String())
}

func TestPNG_ChunkByType(t *testing.T) {
	p := samplePNG(t)
	c := p.ChunkByType("miDl")
	require.NotNil(t, c)
	text, err := c.Text()
	require.NoError(t, err)
	require.Equal(t, "I am another chunk", text)

	require.Nil(t, p.ChunkByType("noNe"))
}

func TestPNG_RemoveChunk(t *testing.T) {
	p := samplePNG(t)
	c, err := p.RemoveChunk("miDl")
	require.NoError(t, err)
	require.Equal(t, "miDl", c.Type().String())
	require.Len(t, p.Chunks(), 2)
	require.Nil(t, p.ChunkByType("miDl"))

	_, err = p.RemoveChunk("miDl")
	require.ErrorIs(t, err, ErrChunkNotFound)
}

func TestPNG_InsertBefore(t *testing.T) {
	p := samplePNG(t)
	p.InsertBefore("LASt", chunkFromStrings(t, "miDd", "between"))
	types := make([]string, 0, len(p.Chunks()))
	for _, c := range p.Chunks() {
		types = append(types, c.Type().String())
	}
	require.Equal(t, []string{"FrSt", "miDl", "miDd", "LASt"}, types)

	// No anchor: falls back to append.
	p.InsertBefore("noNe", chunkFromStrings(t, "tAIl", "end"))
	require.Equal(t, "tAIl", p.Chunks()[len(p.Chunks())-1].Type().String())
}

func TestFromChunks_CopiesSlice(t *testing.T) {
	chunks := []*Chunk{chunkFromStrings(t, "FrSt", "only")}
	p := FromChunks(chunks)
	chunks[0] = nil
	require.NotNil(t, p.Chunks()[0])
}
