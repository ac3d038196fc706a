// Package stegpng hides and extracts arbitrary byte payloads inside PNG
// files by splicing custom chunks into the container.
//
// # Chunk Format
//
// A PNG file is an 8-byte signature followed by a sequence of chunks. Every
// chunk has the same layout, all integers big-endian:
//
//	offset    size    field
//	0         4       length  (byte count of data)
//	4         4       type    (4 ASCII letters)
//	8         length  data
//	8+length  4       crc     (CRC-32/ISO-HDLC over type and data)
//
// The chunk codec ([NewChunk], [DecodeChunk], [Chunk.Bytes]) is usable on
// its own; [Decode] and [Encode] handle whole files.
//
// # Hiding Messages
//
// Messages are framed with a small payload header carrying a version byte
// and a compression flag, optionally compressed with ZIP, Zstandard, LZ4, or
// Brotli, and stored in a chunk whose type names the hidden channel:
//
//	f, _ := os.Open("in.png")
//	img, err := stegpng.Decode(f)
//	f.Close()
//	typ, _ := stegpng.ChunkTypeFromString("ruSt")
//	err = stegpng.Embed(img, typ, []byte("a secret"))
//	out, _ := os.Create("out.png")
//	defer out.Close()
//	err = stegpng.Encode(out, img)
//
// and recovered with:
//
//	msg, err := stegpng.Extract(img, typ)
//
// # Security Considerations
//
// Decoding enforces configurable [Limits] on chunk sizes, chunk counts, and
// decompressed payload sizes, so hostile inputs cannot force oversized
// allocations or decompression bombs. Every chunk's CRC is verified on
// decode; corrupted records are rejected, never repaired.
package stegpng
