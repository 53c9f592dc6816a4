// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package decoder

import (
	"errors"

	"github.com/minatosato/binary-parser-with-xml/endian"
	"github.com/minatosato/binary-parser-with-xml/schema"
	"github.com/minatosato/binary-parser-with-xml/value"
)

// Decoder decodes buffers in a fixed byte order. It holds no other state
// and is safe for concurrent use.
type Decoder struct {
	order endian.Order
}

// New creates a decoder for data stored in the given byte order.
func New(order endian.Order) *Decoder {
	return &Decoder{order: order}
}

// Order returns the byte order the decoder reads.
func (d *Decoder) Order() endian.Order {
	return d.order
}

// Decode interprets buf as an instance of st.
//
// The buffer must hold at least st.Size bytes. The returned record copies
// every value it holds; neither buf nor st is retained.
func (d *Decoder) Decode(buf []byte, st *schema.Struct) (*value.Record, error) {
	if st == nil {
		return nil, errors.New("decode: nil struct")
	}
	if uint64(len(buf)) < st.Size {
		return nil, sizeError(uint64(len(buf)), st.Size)
	}

	w := walker{
		buf:    buf,
		swap:   d.order.NeedsSwap(),
		repeat: 1,
	}
	return w.record(st.Name, st.Fields, 0, nil)
}

// Decode is shorthand for New(order).Decode(buf, st).
func Decode(buf []byte, st *schema.Struct, order endian.Order) (*value.Record, error) {
	return New(order).Decode(buf, st)
}

// walker carries the per-call state of one decode.
type walker struct {
	buf  []byte
	swap bool
	// repeat is the product of the counts of the record arrays enclosing
	// the field being decoded.
	repeat uint64
}

// record decodes fields against base. base never exceeds len(w.buf).
func (w *walker) record(name string, fields []schema.Field, base uint64, path []string) (*value.Record, error) {
	rec := value.NewRecord(name, len(fields))
	for i := range fields {
		f := &fields[i]
		p := append(path[:len(path):len(path)], f.Name)

		field, err := w.field(f, base, p)
		if err != nil {
			return nil, err
		}
		// Later fields of the same name replace earlier ones
		rec.Set(field)
	}
	return rec, nil
}

func (w *walker) field(f *schema.Field, base uint64, path []string) (*value.Field, error) {
	n := uint64(len(w.buf))
	if f.Offset > n-base || f.Size > n-base-f.Offset {
		return nil, boundsError(path, addSat(base, f.Offset), f.Size, n)
	}
	abs := base + f.Offset

	if !f.Kind.Valid() {
		return nil, unsupportedKind(path, f.Kind, "field")
	}

	switch {
	case f.Kind.IsRecord():
		sub, err := w.record(f.Name, f.Fields, abs, path)
		if err != nil {
			return nil, err
		}
		return value.Nested(f.Name, sub), nil

	case f.IsArray():
		v, err := w.array(f, abs, path)
		if err != nil {
			return nil, err
		}
		return value.Leaf(f.Name, v), nil

	case f.IsBitfield():
		v, err := w.bitfield(f, abs, path)
		if err != nil {
			return nil, err
		}
		return value.Leaf(f.Name, v), nil

	default:
		v, err := w.scalar(f.Kind, abs, path)
		if err != nil {
			return nil, err
		}
		return value.Leaf(f.Name, v), nil
	}
}

func addSat(a, b uint64) uint64 {
	if s := a + b; s >= a {
		return s
	}
	return ^uint64(0)
}

func mulSat(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > ^uint64(0)/b {
		return ^uint64(0)
	}
	return a * b
}
