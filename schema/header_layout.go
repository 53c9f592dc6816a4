// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package schema

import (
	"errors"
	"fmt"
)

// layout places members into t as a struct or union and marks t complete.
//
// packed drops all padding. A non-zero pack caps member alignment the way
// #pragma pack does. Bitfields share a container of their declared type
// until the type changes, one does not fit or a zero-width bitfield closes
// the run.
func layout(t *cType, kind Kind, members []member, packed bool, pack uint64) error {
	limit := pack
	if packed {
		limit = 1
	}
	alignOf := func(a uint64) uint64 {
		if a == 0 {
			return 1
		}
		if limit > 0 && a > limit {
			return limit
		}
		return a
	}

	var (
		fields   []Field
		offset   uint64
		size     uint64
		maxAlign uint64 = 1
	)

	// Open bitfield container
	var (
		inRun   bool
		runOff  uint64
		runSize uint64
		runBits uint64
	)

	for _, m := range members {
		if m.anon {
			a := alignOf(m.typ.align)
			at := uint64(0)
			if kind == KindStruct {
				inRun = false
				at = alignUp(offset, a)
				offset = at + m.typ.size
			}
			for _, f := range cloneFields(m.typ.fields) {
				f.Offset += at
				fields = append(fields, f)
			}
			size = max64(size, at+m.typ.size)
			maxAlign = max64(maxAlign, a)
			continue
		}

		d := m.decl
		if d.bitfield {
			ct := m.typ
			if d.pointers > 0 || len(d.dims) > 0 || !ct.complete || !ct.kind.IsInteger() || ct.elems > 1 {
				return fmt.Errorf("bitfield %s must have an integer type", d.name)
			}
			if d.bits > ct.size*8 {
				return fmt.Errorf("bitfield %s is wider than its %d-byte type", d.name, ct.size)
			}
			if d.bits == 0 {
				if d.name != "" {
					return fmt.Errorf("zero-width bitfield %s must be unnamed", d.name)
				}
				inRun = false
				continue
			}

			a := alignOf(ct.align)
			if kind == KindUnion {
				runOff, runSize, runBits = 0, ct.size, 0
			} else if !inRun || runSize != ct.size || runBits+d.bits > runSize*8 {
				runOff = alignUp(offset, a)
				runSize = ct.size
				runBits = 0
				offset = runOff + runSize
				inRun = true
			}
			if d.name != "" {
				fields = append(fields, Field{
					Name:      d.name,
					Kind:      ct.kind,
					Offset:    runOff,
					Size:      runSize,
					Count:     1,
					Bits:      d.bits,
					BitOffset: runBits,
				})
			}
			runBits += d.bits
			size = max64(size, runOff+runSize)
			maxAlign = max64(maxAlign, a)
			continue
		}
		inRun = false

		if d.name == "" {
			return errors.New("member without a name")
		}
		f, align, err := memberField(d, m.typ)
		if err != nil {
			return err
		}
		a := alignOf(align)
		if kind == KindStruct {
			f.Offset = alignUp(offset, a)
			offset = f.Offset + f.Size
		}
		fields = append(fields, f)
		size = max64(size, f.Offset+f.Size)
		maxAlign = max64(maxAlign, a)
	}

	t.kind = kind
	t.size = alignUp(size, maxAlign)
	t.align = maxAlign
	t.elems = 1
	t.fields = fields
	t.packed = packed || pack == 1
	t.complete = true
	return nil
}

// memberField describes a non-bitfield member of type ct at offset 0, with
// the alignment it needs.
func memberField(d declarator, ct *cType) (Field, uint64, error) {
	if d.pointers > 0 {
		ct = pointerType()
	}
	if !ct.complete {
		return Field{}, 0, fmt.Errorf("field %s has incomplete type %s", d.name, ct.name)
	}

	n, ok := product(d.dims)
	if !ok {
		return Field{}, 0, fmt.Errorf("field %s is too large", d.name)
	}
	size, ok := mulSize(ct.size, n)
	if !ok {
		return Field{}, 0, fmt.Errorf("field %s is too large", d.name)
	}
	count, ok := mulSize(ct.elems, n)
	if !ok {
		return Field{}, 0, fmt.Errorf("field %s is too large", d.name)
	}

	f := Field{
		Name:  d.name,
		Kind:  ct.kind,
		Size:  size,
		Count: count,
	}
	if ct.kind.IsRecord() {
		f.Fields = cloneFields(ct.fields)
		if count > 1 {
			// Repeated records decode element by element
			f.Kind = KindUnknown
		}
	}
	return f, ct.align, nil
}

func alignUp(n, a uint64) uint64 {
	if a <= 1 {
		return n
	}
	return (n + a - 1) / a * a
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

func product(dims []uint64) (uint64, bool) {
	n := uint64(1)
	for _, d := range dims {
		var ok bool
		if n, ok = mulSize(n, d); !ok {
			return 0, false
		}
	}
	return n, true
}

func mulSize(a, b uint64) (uint64, bool) {
	if a != 0 && b > ^uint64(0)/a {
		return 0, false
	}
	return a * b, true
}

func cloneFields(in []Field) []Field {
	if in == nil {
		return nil
	}
	out := make([]Field, len(in))
	for i, f := range in {
		f.Fields = cloneFields(f.Fields)
		out[i] = f
	}
	return out
}
