package stegpng

import "fmt"

// ChunkType is the 4-byte code naming a chunk's semantic type.
//
// PNG restricts type codes to ASCII letters. The case of each byte is a
// property bit: byte 0 ancillary, byte 1 private, byte 2 reserved, byte 3
// safe-to-copy. The codec itself treats the type as opaque; these rules
// only gate construction and inform copy/splice decisions.
type ChunkType [4]byte

// ChunkTypeFromBytes validates b as a chunk type code.
func ChunkTypeFromBytes(b [4]byte) (ChunkType, error) {
	for _, c := range b {
		if !isASCIILetter(c) {
			return ChunkType{}, fmt.Errorf("%w: %q", ErrInvalidChunkType, b[:])
		}
	}
	return ChunkType(b), nil
}

// ChunkTypeFromString validates s as a chunk type code. s must be exactly
// 4 bytes long.
func ChunkTypeFromString(s string) (ChunkType, error) {
	if len(s) != typeFieldSize {
		return ChunkType{}, fmt.Errorf("%w: %q is not %d bytes", ErrInvalidChunkType, s, typeFieldSize)
	}
	var b [4]byte
	copy(b[:], s)
	return ChunkTypeFromBytes(b)
}

// Bytes returns the 4 raw bytes of the type code.
func (t ChunkType) Bytes() [4]byte { return t }

func (t ChunkType) String() string { return string(t[:]) }

// IsCritical reports whether decoders must understand the chunk to render
// the image (first byte uppercase).
func (t ChunkType) IsCritical() bool { return isUpper(t[0]) }

// IsPublic reports whether the type belongs to the public registry (second
// byte uppercase).
func (t ChunkType) IsPublic() bool { return isUpper(t[1]) }

// IsReservedBitValid reports whether the reserved bit is zero (third byte
// uppercase), as required of all conforming type codes.
func (t ChunkType) IsReservedBitValid() bool { return isUpper(t[2]) }

// IsSafeToCopy reports whether editors may carry the chunk across image
// modifications (fourth byte lowercase).
func (t ChunkType) IsSafeToCopy() bool { return !isUpper(t[3]) }

// IsValid reports whether all four bytes are ASCII letters and the reserved
// bit is zero.
func (t ChunkType) IsValid() bool {
	for _, c := range t {
		if !isASCIILetter(c) {
			return false
		}
	}
	return t.IsReservedBitValid()
}

func isASCIILetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isUpper(c byte) bool { return c&0x20 == 0 }
