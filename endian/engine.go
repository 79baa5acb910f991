// Package endian provides byte order helpers for reading and writing BDIO blocks.
//
// BDIO streams are written big-endian by default (network order, the layout
// produced by JVM DataOutputStream based writers). A block may declare little-endian
// columns through its header options, so readers pick an engine per block:
//
//	engine := endian.GetBigEndianEngine()
//	if header.IsLittleEndian() {
//	    engine = endian.GetLittleEndianEngine()
//	}
//	count := engine.Uint32(payload[0:4])
//
// An EndianEngine carries both the ByteOrder and AppendByteOrder method sets, so
// the same value serves decoders (Uint32) and encoders (AppendUint32).
//
// All functions in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.BigEndian and binary.LittleEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness reports the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100: the low-address byte is 0x01 only on big-endian hosts.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetEngine returns the little-endian engine when little is true and the
// big-endian engine otherwise.
func GetEngine(little bool) EndianEngine {
	if little {
		return binary.LittleEndian
	}

	return binary.BigEndian
}
