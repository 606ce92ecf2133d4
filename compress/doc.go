// Package compress provides the compression codecs used for stored module
// debug data.
//
// Per-module debug information is immutable once produced and is often held
// for many modules at once, so the store keeps it compressed and only
// decompresses on access. Four algorithms are supported:
//   - None: no compression, zero overhead
//   - Zstd: best ratio, for archival stores
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression, for read-heavy stores
//
// Debug subsections compress well: line records and checksum tables are
// highly repetitive, and Zstd typically reaches 4:1 or better on them.
//
// All codecs are stateless values and safe for concurrent use. The Zstd
// codec has two implementations selected at build time: the cgo build binds
// libzstd, the pure-Go build uses klauspost/compress.
package compress
