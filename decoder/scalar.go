// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package decoder

import (
	"math"

	"github.com/minatosato/binary-parser-with-xml/endian"
	"github.com/minatosato/binary-parser-with-xml/schema"
	"github.com/minatosato/binary-parser-with-xml/value"
)

// host reads multi-byte values as the machine lays them out in memory.
var host = endian.Native().ByteOrder()

// scalar decodes one value of kind k at abs.
func (w *walker) scalar(k schema.Kind, abs uint64, path []string) (value.Value, error) {
	if k == schema.KindUnknown {
		return value.Missing{}, nil
	}
	width := k.Width()
	if width == 0 {
		return nil, unsupportedKind(path, k, "scalar")
	}
	n := uint64(len(w.buf))
	if width > n-abs {
		return nil, boundsError(path, abs, width, n)
	}
	return w.read(k, abs), nil
}

// read decodes a numeric kind at off. The caller has checked bounds.
func (w *walker) read(k schema.Kind, off uint64) value.Value {
	switch k {
	case schema.KindUInt8:
		return value.Unsigned{V: uint64(w.buf[off]), Width: 8}
	case schema.KindInt8:
		return value.Signed{V: int64(int8(w.buf[off])), Width: 8}
	case schema.KindUInt16:
		return value.Unsigned{V: uint64(w.u16(off)), Width: 16}
	case schema.KindInt16:
		return value.Signed{V: int64(int16(w.u16(off))), Width: 16}
	case schema.KindUInt32:
		return value.Unsigned{V: uint64(w.u32(off)), Width: 32}
	case schema.KindInt32:
		return value.Signed{V: int64(int32(w.u32(off))), Width: 32}
	case schema.KindUInt64:
		return value.Unsigned{V: w.u64(off), Width: 64}
	case schema.KindInt64:
		return value.Signed{V: int64(w.u64(off)), Width: 64}
	case schema.KindFloat32:
		return value.Float32(math.Float32frombits(w.u32(off)))
	default:
		return value.Float64(math.Float64frombits(w.u64(off)))
	}
}

func (w *walker) u16(off uint64) uint16 {
	v := host.Uint16(w.buf[off:])
	if w.swap {
		v = endian.Swap16(v)
	}
	return v
}

func (w *walker) u32(off uint64) uint32 {
	v := host.Uint32(w.buf[off:])
	if w.swap {
		v = endian.Swap32(v)
	}
	return v
}

func (w *walker) u64(off uint64) uint64 {
	v := host.Uint64(w.buf[off:])
	if w.swap {
		v = endian.Swap64(v)
	}
	return v
}

// readUint reads an unsigned integer of size bytes (1, 2, 4 or 8).
func (w *walker) readUint(off, size uint64) uint64 {
	switch size {
	case 1:
		return uint64(w.buf[off])
	case 2:
		return uint64(w.u16(off))
	case 4:
		return uint64(w.u32(off))
	default:
		return w.u64(off)
	}
}
