package compress

// ZstdCodec provides Zstandard compression. It has the best ratio of the
// supported algorithms and suits stores that hold debug data for many
// modules long-term.
//
// The implementation is selected at build time: with cgo the codec binds
// libzstd through valyala/gozstd, without cgo it uses the pure-Go
// klauspost/compress encoder. The two produce interchangeable frames.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a Zstandard codec with the default level.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
