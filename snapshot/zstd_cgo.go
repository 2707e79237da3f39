//go:build curvefit_cgo

package snapshot

import "github.com/valyala/gozstd"

const zstdCgoLevel = 3

// Compress compresses the payload with the cgo-backed zstd encoder.
func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdCgoLevel), nil
}

// Decompress decompresses a zstd payload with the cgo-backed decoder.
func (ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
