package snapshot

// NoopCodec passes payloads through unmodified. Useful when snapshots
// are tiny or already compressed by the transport.
type NoopCodec struct{}

var _ Codec = NoopCodec{}

// Compress returns the input slice as-is, without copying.
func (NoopCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, without copying.
func (NoopCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
