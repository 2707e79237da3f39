package snapshot

import "github.com/klauspost/compress/s2"

// S2Codec compresses payloads with the S2 snappy derivative: fast with a
// modest ratio, a good default for short-lived intermediate snapshots.
type S2Codec struct{}

var _ Codec = S2Codec{}

// Compress compresses the payload with S2.
func (S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses an S2 payload.
func (S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
