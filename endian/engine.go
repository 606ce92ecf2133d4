// Package endian provides byte order utilities for decoding CodeView debug
// data.
//
// CodeView subsections are little-endian on the wire regardless of the host,
// so decoders default to GetLittleEndianEngine(). The EndianEngine interface
// combines ByteOrder and AppendByteOrder from encoding/binary so the same
// engine value serves both record decoding and test-fixture construction.
package endian

import "encoding/binary"

// EndianEngine combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order
// operations.
//
// The interface is satisfied by binary.LittleEndian and binary.BigEndian,
// making it fully compatible with existing Go code.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine. This is the byte
// order of the CodeView format itself.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
