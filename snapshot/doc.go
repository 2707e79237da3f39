// Package snapshot persists observation sets and fit results as compact
// binary payloads with optional compression and an integrity checksum.
//
// A snapshot is a small envelope (magic, payload kind, compression
// algorithm, payload length, xxHash64 checksum) followed by the
// compressed little-endian payload. Checksums cover the compressed
// bytes, so corruption is detected before any decompression work.
//
//	data, err := snapshot.EncodeObservations(obs, snapshot.CompressionZstd)
//	...
//	obs, err := snapshot.DecodeObservations(data)
//
// Fit results are persisted as plain records (parameters, uncertainties,
// covariance, diagnostics, model family name), not as live fit.Result
// values: a live Result is owned by the engine that produced it, and the
// storage layer is a read-only consumer.
//
// Compression algorithms: None, Zstd, S2 and LZ4. The Zstd codec has a
// cgo-backed variant (valyala/gozstd) selected by the curvefit_cgo build
// tag and a pure-Go default (klauspost/compress/zstd).
package snapshot
