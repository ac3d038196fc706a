package stegpng

// Limits bound allocations made while decoding hostile input. Zero fields
// take their defaults.
type Limits struct {
	MaxChunkDataLen        uint32 // per-chunk data bytes as declared in the length field
	MaxChunks              int    // chunks per file
	MaxPayloadUncompressed uint64 // message bytes after payload decompression
}

func defaultLimits() Limits {
	return Limits{
		MaxChunkDataLen:        1 << 28, // 256 MiB; PNG itself caps the field at 2^31-1
		MaxChunks:              100_000,
		MaxPayloadUncompressed: 256 << 20, // 256 MiB
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxChunkDataLen == 0 {
		l.MaxChunkDataLen = d.MaxChunkDataLen
	}
	if l.MaxChunks == 0 {
		l.MaxChunks = d.MaxChunks
	}
	if l.MaxPayloadUncompressed == 0 {
		l.MaxPayloadUncompressed = d.MaxPayloadUncompressed
	}
	return l
}
