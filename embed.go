package stegpng

import "fmt"

// Embed frames msg with the payload header, wraps it in a chunk of the
// given type, and splices the chunk in front of IEND so the file stays a
// conforming PNG. When no IEND exists the chunk is appended.
//
// The default payload compression is CompZstd; use WithPayloadCompression
// to change it. Embedding the same type twice stores two chunks; Extract
// reads the first.
func Embed(p *PNG, typ ChunkType, msg []byte, opts ...EmbedOption) error {
	cfg := embedConfig{limits: defaultLimits(), compression: CompZstd}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	payload, err := encodePayload(cfg.compression, msg)
	if err != nil {
		return err
	}
	if uint64(len(payload)) > uint64(cfg.limits.MaxChunkDataLen) {
		return fmt.Errorf("%w: framed message is %d bytes", ErrLimitExceeded, len(payload))
	}
	p.InsertBefore(iendChunkName, NewChunk(typ, payload))
	return nil
}

// Extract returns the message stored in the first chunk of the given type,
// or ErrChunkNotFound.
func Extract(p *PNG, typ ChunkType, opts ...ExtractOption) ([]byte, error) {
	cfg := extractConfig{limits: defaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	c := p.ChunkByType(typ.String())
	if c == nil {
		return nil, fmt.Errorf("%w: %q", ErrChunkNotFound, typ)
	}
	return decodePayload(c.Data(), cfg.limits.MaxPayloadUncompressed)
}

// ExtractText is Extract for textual messages.
func ExtractText(p *PNG, typ ChunkType, opts ...ExtractOption) (string, error) {
	b, err := Extract(p, typ, opts...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
