package stegpng

// Fixed chunk layout. All decode bounds derive from these constants.
const (
	lenFieldSize  = 4
	typeFieldSize = 4
	crcFieldSize  = 4

	dataOffset = lenFieldSize + typeFieldSize

	// chunkOverhead is the metadata cost of every encoded chunk: the
	// length, type, and crc fields.
	chunkOverhead = lenFieldSize + typeFieldSize + crcFieldSize
)

// Signature is the 8-byte PNG file signature.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// iendChunkName is the type code of the image trailer chunk. Embedded
// chunks are spliced in front of it so the file stays a conforming PNG.
const iendChunkName = "IEND"

// Compression selects the algorithm used to compress an embedded payload.
type Compression uint8

const (
	CompNone   Compression = 0x0
	CompZIP    Compression = 0x1
	CompZstd   Compression = 0x2
	CompLZ4    Compression = 0x3
	CompBrotli Compression = 0x4
)

// Payload frame: [version:1][flags:1][uncompressedLen:8, iff compressed][body].
const (
	payloadVersionV1 uint8 = 1

	payloadHeaderSize = 2

	payloadFlagCompressionMask    uint8 = 0x0F
	payloadFlagHasUncompressedLen uint8 = 0x10
)

// CompressionName returns a stable lowercase name for comp, for flags and
// log output.
func CompressionName(comp Compression) string {
	switch comp {
	case CompNone:
		return "none"
	case CompZIP:
		return "zip"
	case CompZstd:
		return "zstd"
	case CompLZ4:
		return "lz4"
	case CompBrotli:
		return "brotli"
	default:
		return "unknown"
	}
}

// CompressionByName is the inverse of CompressionName.
func CompressionByName(name string) (Compression, bool) {
	switch name {
	case "none":
		return CompNone, true
	case "zip":
		return CompZIP, true
	case "zstd":
		return CompZstd, true
	case "lz4":
		return CompLZ4, true
	case "brotli":
		return CompBrotli, true
	default:
		return CompNone, false
	}
}
