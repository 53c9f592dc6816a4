// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package decoder

import (
	"math"
	"strconv"

	"github.com/minatosato/binary-parser-with-xml/schema"
	"github.com/minatosato/binary-parser-with-xml/value"
)

// MaxArrayCount bounds the elements one array field may produce in a single
// decode, counted across every element of the record arrays enclosing it.
// The limit applies only once that total also exceeds the buffer length.
const MaxArrayCount = 1 << 20

// array decodes f.Count elements spread evenly over f.Size bytes at abs.
func (w *walker) array(f *schema.Field, abs uint64, path []string) (value.Value, error) {
	count := f.Count
	if total := mulSat(w.repeat, count); total > MaxArrayCount && total > uint64(len(w.buf)) {
		return nil, arrayLayout(path, f, "element count exceeds "+strconv.Itoa(MaxArrayCount))
	}

	if !f.Kind.IsNumeric() && len(f.Fields) == 0 {
		// Element layout unknown: keep the slots, read nothing
		return make(value.MissingArray, count), nil
	}

	if f.Size%count != 0 {
		return nil, arrayLayout(path, f, "size is not a multiple of count")
	}
	elem := f.Size / count

	if !f.Kind.IsNumeric() {
		return w.recordArray(f, abs, elem, path)
	}
	if elem < f.Kind.Width() {
		return nil, arrayLayout(path, f, "element stride "+strconv.FormatUint(elem, 10)+
			" is narrower than "+f.Kind.String())
	}

	at := func(i uint64) uint64 { return abs + i*elem }

	switch f.Kind {
	case schema.KindUInt8:
		out := make(value.ByteArray, count)
		for i := range out {
			out[i] = w.buf[at(uint64(i))]
		}
		return out, nil
	case schema.KindInt8:
		out := make(value.I8Array, count)
		for i := range out {
			out[i] = int8(w.buf[at(uint64(i))])
		}
		return out, nil
	case schema.KindUInt16:
		out := make(value.U16Array, count)
		for i := range out {
			out[i] = w.u16(at(uint64(i)))
		}
		return out, nil
	case schema.KindInt16:
		out := make(value.I16Array, count)
		for i := range out {
			out[i] = int16(w.u16(at(uint64(i))))
		}
		return out, nil
	case schema.KindUInt32:
		out := make(value.U32Array, count)
		for i := range out {
			out[i] = w.u32(at(uint64(i)))
		}
		return out, nil
	case schema.KindInt32:
		out := make(value.I32Array, count)
		for i := range out {
			out[i] = int32(w.u32(at(uint64(i))))
		}
		return out, nil
	case schema.KindUInt64:
		out := make(value.U64Array, count)
		for i := range out {
			out[i] = w.u64(at(uint64(i)))
		}
		return out, nil
	case schema.KindInt64:
		out := make(value.I64Array, count)
		for i := range out {
			out[i] = int64(w.u64(at(uint64(i))))
		}
		return out, nil
	case schema.KindFloat32:
		out := make(value.F32Array, count)
		for i := range out {
			out[i] = math.Float32frombits(w.u32(at(uint64(i))))
		}
		return out, nil
	default:
		out := make(value.F64Array, count)
		for i := range out {
			out[i] = math.Float64frombits(w.u64(at(uint64(i))))
		}
		return out, nil
	}
}

// recordArray decodes f.Fields once per element, each element record named
// by its index.
func (w *walker) recordArray(f *schema.Field, abs, elem uint64, path []string) (value.Value, error) {
	outer := w.repeat
	w.repeat = mulSat(outer, f.Count)
	defer func() { w.repeat = outer }()

	out := make(value.RecordArray, f.Count)
	for i := range out {
		name := strconv.Itoa(i)
		p := append(path[:len(path):len(path)], name)

		rec, err := w.record(name, f.Fields, abs+uint64(i)*elem, p)
		if err != nil {
			return nil, err
		}
		out[i] = rec
	}
	return out, nil
}
