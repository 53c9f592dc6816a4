// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

// Package bitfield extracts sub-byte bit ranges from a host integer.
//
// Bits are numbered from the least significant bit of the host value, the
// way C compilers on little-endian targets allocate bitfield members.
package bitfield

// Mask returns a mask of the low width bits.
func Mask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

// Extract returns width bits of host starting at bit offset.
func Extract(host uint64, offset, width uint) uint64 {
	if offset >= 64 {
		return 0
	}
	return (host >> offset) & Mask(width)
}

// SignExtend interprets the low width bits of raw as a two's complement
// number and widens it to 64 bits.
func SignExtend(raw uint64, width uint) int64 {
	if width == 0 || width >= 64 {
		return int64(raw)
	}
	raw &= Mask(width)
	if raw&(uint64(1)<<(width-1)) != 0 {
		raw |= ^Mask(width)
	}
	return int64(raw)
}

// Fits reports whether a range of width bits at offset lies within a
// container of size bytes.
func Fits(offset, width, size uint64) bool {
	return width <= size*8 && offset <= size*8-width
}

// Narrow truncates v to its low width bits.
func Narrow(v uint64, width uint) uint64 {
	return v & Mask(width)
}

// NarrowSigned truncates v to width bits and sign-extends the result, the
// same as a C cast to a signed integer of that width.
func NarrowSigned(v int64, width uint) int64 {
	return SignExtend(uint64(v), width)
}
