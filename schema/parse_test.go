// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package schema

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestParseSingleStruct(t *testing.T) {
	doc := `
name: Header
size: 12
packed: true
fields:
  - {name: magic, type: uint32_t, offset: 0, size: 4}
  - {name: version, type: uint16_t, offset: 4}
  - {name: flags, type: uint8_t, offset: 6, bits: 3, bit_offset: 2, size: 1}
  - {name: samples, type: int16_t, offset: 8, array_size: 2}
`
	structs, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(structs) != 1 {
		t.Fatalf("Parse() returned %d structs, want 1", len(structs))
	}

	s := structs[0]
	if s.Name != "Header" || s.Size != 12 || !s.Packed {
		t.Errorf("struct = {%s %d %v}, want {Header 12 true}", s.Name, s.Size, s.Packed)
	}
	if len(s.Fields) != 4 {
		t.Fatalf("len(Fields) = %d, want 4", len(s.Fields))
	}

	tests := []struct {
		idx    int
		name   string
		kind   Kind
		offset uint64
		size   uint64
		count  uint64
	}{
		{0, "magic", KindUInt32, 0, 4, 1},
		{1, "version", KindUInt16, 4, 2, 1},
		{2, "flags", KindUInt8, 6, 1, 1},
		{3, "samples", KindInt16, 8, 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := s.Fields[tt.idx]
			if f.Name != tt.name || f.Kind != tt.kind || f.Offset != tt.offset || f.Size != tt.size || f.Count != tt.count {
				t.Errorf("field = {%s %v %d %d %d}, want {%s %v %d %d %d}",
					f.Name, f.Kind, f.Offset, f.Size, f.Count,
					tt.name, tt.kind, tt.offset, tt.size, tt.count)
			}
		})
	}

	if f := s.Fields[2]; f.Bits != 3 || f.BitOffset != 2 || !f.IsBitfield() {
		t.Errorf("flags bits = (%d,%d), want (3,2)", f.Bits, f.BitOffset)
	}
	if !s.Fields[3].IsArray() {
		t.Error("samples.IsArray() = false, want true")
	}
}

func TestParseNestedLayouts(t *testing.T) {
	data, err := os.ReadFile("testdata/sensors.yaml")
	if err != nil {
		t.Fatal(err)
	}
	structs, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(structs) != 2 {
		t.Fatalf("Parse() returned %d structs, want 2", len(structs))
	}

	reading := structs[0]
	rng := reading.Fields[4]
	if rng.Kind != KindStruct || len(rng.Fields) != 2 {
		t.Fatalf("range = {%v, %d children}, want {struct, 2 children}", rng.Kind, len(rng.Fields))
	}
	if rng.Fields[1].Name != "max" || rng.Fields[1].Size != 2 {
		t.Errorf("range.max = {%s %d}, want {max 2}", rng.Fields[1].Name, rng.Fields[1].Size)
	}
	if reading.Fields[2].Size != 1 {
		t.Errorf("channel size = %d, want 1", reading.Fields[2].Size)
	}

	frame := structs[1]
	body := frame.Fields[1]
	if body.Kind != KindUnion || len(body.Fields) != 2 {
		t.Fatalf("body = {%v, %d children}, want {union, 2 children}", body.Kind, len(body.Fields))
	}
	if halves := body.Fields[1]; halves.Count != 2 || halves.Size != 8 {
		t.Errorf("halves = {count %d size %d}, want {count 2 size 8}", halves.Count, halves.Size)
	}

	if got := reading.FieldCount(); got != 7 {
		t.Errorf("FieldCount() = %d, want 7", got)
	}
	if got := reading.Depth(); got != 2 {
		t.Errorf("Depth() = %d, want 2", got)
	}
}

func TestParseImplicitStruct(t *testing.T) {
	doc := `
name: Outer
size: 4
fields:
  - name: inner
    offset: 0
    size: 4
    fields:
      - {name: a, type: uint16_t, offset: 0}
      - {name: b, type: uint16_t, offset: 2}
`
	structs, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if k := structs[0].Fields[0].Kind; k != KindStruct {
		t.Errorf("inner kind = %v, want struct", k)
	}
}

func TestParseJSON(t *testing.T) {
	data, err := os.ReadFile("testdata/header.json")
	if err != nil {
		t.Fatal(err)
	}
	structs, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	s := structs[0]
	if s.Name != "Header" || len(s.Fields) != 2 || s.Fields[1].Offset != 4 {
		t.Errorf("Parse() = %+v, want Header with length at offset 4", s)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"not a mapping", "- a\n- b\n", "must be a mapping"},
		{"no name", "size: 4\n", "struct without name"},
		{"field without name", "name: S\nfields:\n  - {type: u8}\n", "field without name"},
		{"fields not a sequence", "name: S\nfields: 3\n", "fields must be a sequence"},
		{"unknown key", "name: S\nfields:\n  - {name: a, type: u8, colour: red}\n", "colour"},
		{"negative offset", "name: S\nfields:\n  - {name: a, type: u8, offset: -1}\n", "offset"},
		{"structs not a list", "structs: 1\n", "structs must be a sequence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("Parse() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseErrorLine(t *testing.T) {
	doc := "name: S\nsize: 4\nfields:\n  - {name: a, type: u8}\n  - {name: b, bogus: 1}\n"
	_, err := Parse([]byte(doc))

	var ve ValueError
	if !errors.As(err, &ve) {
		t.Fatalf("Parse() error = %v, want ValueError", err)
	}
	if ve.Node == nil || ve.Node.Line != 5 {
		t.Errorf("ValueError line = %v, want 5", ve.Node)
	}
	if !strings.HasPrefix(ve.Error(), "line 5:") {
		t.Errorf("Error() = %q, want prefix %q", ve.Error(), "line 5:")
	}
}
