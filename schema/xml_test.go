// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package schema

import (
	"os"
	"strings"
	"testing"
)

func TestParseXMLSimple(t *testing.T) {
	f, err := os.Open("testdata/test_struct.xml")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	s, err := ParseXML(f)
	if err != nil {
		t.Fatalf("ParseXML() error = %v", err)
	}
	if s.Name != "TestStruct" || s.Size != 12 {
		t.Errorf("struct = {%s %d}, want {TestStruct 12}", s.Name, s.Size)
	}

	want := []struct {
		name   string
		kind   Kind
		offset uint64
		size   uint64
	}{
		{"magic", KindUInt32, 0, 4},
		{"version", KindUInt16, 4, 2},
		{"flags", KindUInt8, 6, 1},
		{"padding", KindUInt8, 7, 1},
		{"value", KindFloat32, 8, 4},
	}
	if len(s.Fields) != len(want) {
		t.Fatalf("len(Fields) = %d, want %d", len(s.Fields), len(want))
	}
	for i, w := range want {
		f := s.Fields[i]
		if f.Name != w.name || f.Kind != w.kind || f.Offset != w.offset || f.Size != w.size || f.Count != 1 {
			t.Errorf("field %d = {%s %v %d %d %d}, want {%s %v %d %d 1}",
				i, f.Name, f.Kind, f.Offset, f.Size, f.Count, w.name, w.kind, w.offset, w.size)
		}
	}
}

func TestParseXMLNested(t *testing.T) {
	f, err := os.Open("testdata/packet.xml")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	s, err := ParseXML(f)
	if err != nil {
		t.Fatalf("ParseXML() error = %v", err)
	}
	if !s.Packed {
		t.Error("Packed = false, want true")
	}

	byName := make(map[string]Field)
	for _, f := range s.Fields {
		byName[f.Name] = f
	}

	if lvl := byName["level"]; lvl.Kind != KindInt32 || lvl.Bits != 4 || lvl.BitOffset != 4 {
		t.Errorf("level = {%v %d %d}, want {int32 4 4}", lvl.Kind, lvl.Bits, lvl.BitOffset)
	}
	if h := byName["header"]; h.Kind != KindStruct || len(h.Fields) != 2 {
		t.Errorf("header = {%v, %d children}, want {struct, 2}", h.Kind, len(h.Fields))
	}
	p := byName["payload"]
	if p.Kind != KindUnion || len(p.Fields) != 2 {
		t.Fatalf("payload = {%v, %d children}, want {union, 2}", p.Kind, len(p.Fields))
	}
	if b := p.Fields[1]; b.Count != 4 || b.Kind != KindUInt8 {
		t.Errorf("payload.bytes = {%v count %d}, want {uint8 count 4}", b.Kind, b.Count)
	}
	if smp := byName["samples"]; smp.Count != 3 || smp.Size != 6 {
		t.Errorf("samples = {count %d size %d}, want {3 6}", smp.Count, smp.Size)
	}
	if r := byName["reserved"]; r.Kind != KindUnknown || r.Size != 2 {
		t.Errorf("reserved = {%v %d}, want {unknown 2}", r.Kind, r.Size)
	}
}

func TestParseXMLErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"empty", "", "no struct element"},
		{"wrong root", `<layout name="x"/>`, "failed to parse XML schema"},
		{"no name", `<struct size="4"/>`, "struct element without name"},
		{"field without name", `<struct name="S"><field type="uint8_t"/></struct>`, "field element without name"},
		{"bad number", `<struct name="S" size="four"/>`, "failed to parse XML schema"},
		{"truncated", `<struct name="S"><field name="a"`, "failed to parse XML schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseXML(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("ParseXML() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseXML() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
