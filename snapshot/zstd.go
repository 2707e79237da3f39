package snapshot

// ZstdCodec compresses payloads with Zstandard, the best ratio of the
// built-in algorithms and the right choice for archived snapshots.
//
// Two implementations exist behind build tags: the default pure-Go
// encoder from klauspost/compress, and a cgo-backed valyala/gozstd
// variant enabled with -tags curvefit_cgo for callers that already link
// libzstd.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}
