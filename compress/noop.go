package compress

// NoOpCodec passes payloads through unchanged. It serves stores where the
// debug data is short-lived or where lookup latency outweighs memory.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a pass-through codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns the input slice as-is, without copying. The result
// aliases the input.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, without copying. The result
// aliases the input.
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
