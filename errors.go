package stegpng

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSignature   = errors.New("stegpng: invalid png signature")
	ErrInvalidChunkType   = errors.New("stegpng: invalid chunk type")
	ErrInvalidChunkLength = errors.New("stegpng: invalid chunk length")
	ErrInvalidCRC         = errors.New("stegpng: crc mismatch")
	ErrNotText            = errors.New("stegpng: chunk data is not valid utf-8")
	ErrChunkNotFound      = errors.New("stegpng: chunk not found")
	ErrInvalidPayload     = errors.New("stegpng: invalid payload")
	ErrLimitExceeded      = errors.New("stegpng: limit exceeded")
)

// CRCError reports a checksum mismatch found while decoding a chunk. Stored
// is the value embedded in the stream, Expected the value recomputed over
// the parsed type and data. It matches ErrInvalidCRC under errors.Is.
type CRCError struct {
	Stored   uint32
	Expected uint32
}

func (e *CRCError) Error() string {
	return fmt.Sprintf("stegpng: crc mismatch: stored %d, expected %d", e.Stored, e.Expected)
}

func (e *CRCError) Unwrap() error { return ErrInvalidCRC }
