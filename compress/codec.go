package compress

import (
	"fmt"

	"github.com/arloliu/codeview/errs"
	"github.com/arloliu/codeview/format"
)

// Compressor compresses a module's debug data payload.
type Compressor interface {
	// Compress compresses the input and returns the result. The returned
	// slice is owned by the caller; the input is never modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
type Decompressor interface {
	// Decompress decompresses the input and returns the original payload.
	// Corrupted input or input produced by a different algorithm is an
	// error. The returned slice is owned by the caller.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines compression and decompression for one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// ForType returns the codec for the given compression type. An unknown type
// fails with ErrUnknownCompressionType.
func ForType(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionZstd:
		return NewZstdCodec(), nil
	case format.CompressionS2:
		return NewS2Codec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownCompressionType, compressionType)
	}
}
