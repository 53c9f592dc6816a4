// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

// Package schema describes C-like memory layouts: structs, unions, fixed
// arrays and bitfields, each field addressed by byte offset and size within
// its enclosing record.
//
// Descriptors are loaded from YAML/JSON (Parse), XML (ParseXML), C headers
// (ParseHeader) or the compiled binary form (UnmarshalBinary), and are
// read-only once built.
package schema

// Field describes one member of a struct or union.
type Field struct {
	Name string `msgpack:"name"`
	// Offset and Size are in bytes, relative to the enclosing record.
	Offset uint64 `msgpack:"offset"`
	Size   uint64 `msgpack:"size"`
	// Count is the number of array elements; 1 means not an array.
	Count uint64 `msgpack:"count"`
	// Bits and BitOffset are zero unless the field is a bitfield inside a
	// Size-byte host integer.
	Bits      uint64  `msgpack:"bits"`
	BitOffset uint64  `msgpack:"bit_offset"`
	Fields    []Field `msgpack:"fields"`
	Kind      Kind    `msgpack:"kind"`
}

// IsArray reports whether f repeats.
func (f *Field) IsArray() bool {
	return f.Count > 1
}

// IsBitfield reports whether f occupies a bit range of its container.
func (f *Field) IsBitfield() bool {
	return f.Bits > 0
}

// Struct is the root of a layout.
type Struct struct {
	Name   string  `msgpack:"name"`
	Size   uint64  `msgpack:"size"`
	Fields []Field `msgpack:"fields"`
	Packed bool    `msgpack:"packed"`
}

// WalkFunc is called for every field of a layout with the path of names
// leading to it.
type WalkFunc func(path []string, f *Field) error

// Walk visits every field depth first, parents before children. It stops at
// the first error returned by fn.
func (s *Struct) Walk(fn WalkFunc) error {
	return walkFields(s.Fields, nil, fn)
}

func walkFields(fields []Field, path []string, fn WalkFunc) error {
	for i := range fields {
		f := &fields[i]
		p := append(path[:len(path):len(path)], f.Name)
		if err := fn(p, f); err != nil {
			return err
		}
		if err := walkFields(f.Fields, p, fn); err != nil {
			return err
		}
	}
	return nil
}

// FieldCount returns the number of fields at every nesting level.
func (s *Struct) FieldCount() int {
	n := 0
	_ = s.Walk(func([]string, *Field) error {
		n++
		return nil
	})
	return n
}

// Depth returns the deepest field nesting level; a struct of scalars has
// depth 1 and an empty struct depth 0.
func (s *Struct) Depth() int {
	depth := 0
	_ = s.Walk(func(path []string, _ *Field) error {
		if len(path) > depth {
			depth = len(path)
		}
		return nil
	})
	return depth
}

// normalize fills defaults the loaders leave implicit: a repeat count of 1
// and, for numeric fields without a size, the kind width times the count.
func normalize(fields []Field) {
	for i := range fields {
		f := &fields[i]
		if f.Count == 0 {
			f.Count = 1
		}
		if f.Size == 0 && f.Kind.IsNumeric() {
			f.Size = f.Kind.Width() * f.Count
		}
		normalize(f.Fields)
	}
}
