// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package decoder

import (
	"github.com/minatosato/binary-parser-with-xml/bitfield"
	"github.com/minatosato/binary-parser-with-xml/schema"
	"github.com/minatosato/binary-parser-with-xml/value"
)

func validContainer(size uint64) bool {
	switch size {
	case 1, 2, 4, 8:
		return true
	default:
		return false
	}
}

// bitfield extracts f.Bits bits at f.BitOffset from the f.Size-byte host
// integer at abs and narrows them to the field's kind. The host integer is
// byte-swapped like any scalar; bit order within it is LSB first.
func (w *walker) bitfield(f *schema.Field, abs uint64, path []string) (value.Value, error) {
	if !validContainer(f.Size) || !bitfield.Fits(f.BitOffset, f.Bits, f.Size) {
		return nil, bitfieldWidth(path, f)
	}
	if !f.Kind.IsInteger() {
		return nil, unsupportedKind(path, f.Kind, "bitfield")
	}

	container := w.readUint(abs, f.Size)
	bits := uint(f.Bits)
	raw := bitfield.Extract(container, uint(f.BitOffset), bits)
	width := uint(f.Kind.Width() * 8)

	if f.Kind.IsSigned() {
		v := int64(raw)
		if bits < width {
			v = bitfield.SignExtend(raw, bits)
		}
		return value.Signed{V: bitfield.NarrowSigned(v, width), Width: uint8(width)}, nil
	}
	return value.Unsigned{V: bitfield.Narrow(raw, width), Width: uint8(width)}, nil
}
