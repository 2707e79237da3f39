package snapshot

import (
	"errors"
	"fmt"
)

// ErrUnknownCompression reports an unrecognized compression algorithm,
// either requested by the caller or found in a snapshot envelope.
var ErrUnknownCompression = errors.New("snapshot: unknown compression")

// ErrCorruptSnapshot reports a truncated, checksum-mismatched or
// otherwise malformed snapshot.
var ErrCorruptSnapshot = errors.New("snapshot: corrupt data")

// Compression identifies the payload compression algorithm.
type Compression byte

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = iota
	// CompressionZstd uses Zstandard (cgo or pure Go, by build tag).
	CompressionZstd
	// CompressionS2 uses the S2 snappy derivative.
	CompressionS2
	// CompressionLZ4 uses LZ4 block compression.
	CompressionLZ4
)

// String returns the algorithm name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionS2:
		return "s2"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// Codec compresses and decompresses snapshot payloads.
//
// Implementations must be safe for concurrent use. Returned slices are
// newly allocated except for the no-op codec, which passes data through.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// newCodec returns the Codec for an algorithm.
func newCodec(c Compression) (Codec, error) {
	switch c {
	case CompressionNone:
		return NoopCodec{}, nil
	case CompressionZstd:
		return ZstdCodec{}, nil
	case CompressionS2:
		return S2Codec{}, nil
	case CompressionLZ4:
		return LZ4Codec{}, nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownCompression, byte(c))
	}
}
