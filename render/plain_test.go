// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package render

import (
	"math"
	"math/big"
	"reflect"
	"testing"

	"github.com/minatosato/binary-parser-with-xml/value"
)

func float32PosInf() float32 {
	return float32(math.Inf(1))
}

func TestPlainValue(t *testing.T) {
	tests := []struct {
		name string
		in   value.Value
		want any
	}{
		{"unsigned", value.Unsigned{V: 255, Width: 8}, 255},
		{"signed", value.Signed{V: -3, Width: 16}, -3},
		{"float32 shortest", value.Float32(0.1), 0.1},
		{"float64", value.Float64(2.5), 2.5},
		{"nan", value.Float64(math.NaN()), "NaN"},
		{"-inf", value.Float32(float32(math.Inf(-1))), "-Inf"},
		{"string", value.ByteArray("abc\x00"), "abc"},
		{"bytes", value.ByteArray{0x00, 0x01}, []any{0, 1}},
		{"i8s", value.I8Array{-1, 1}, []any{-1, 1}},
		{"u32s", value.U32Array{7}, []any{7}},
		{"f32s", value.F32Array{0.2}, []any{0.2}},
		{"missing", value.Missing{}, nil},
		{"missing array", make(value.MissingArray, 3), []any{nil, nil, nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainValue(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PlainValue() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestPlainBigUnsigned(t *testing.T) {
	got, ok := PlainValue(value.Unsigned{V: math.MaxUint64, Width: 64}).(*big.Int)
	if !ok {
		t.Fatalf("PlainValue(MaxUint64) type = %T, want *big.Int", got)
	}
	if got.String() != "18446744073709551615" {
		t.Errorf("PlainValue(MaxUint64) = %s", got)
	}
}

func TestPlainRecord(t *testing.T) {
	got := Plain(frameRecord())

	header, ok := got["header"].(map[string]any)
	if !ok || header["length"] != 16 {
		t.Errorf("header = %#v, want map with length 16", got["header"])
	}
	points, ok := got["points"].([]any)
	if !ok || len(points) != 2 {
		t.Fatalf("points = %#v, want 2 entries", got["points"])
	}
	if p := points[1].(map[string]any); p["x"] != 4 {
		t.Errorf("points[1].x = %v, want 4", p["x"])
	}
	if got["label"] != "sensor" {
		t.Errorf("label = %#v, want %q", got["label"], "sensor")
	}
	if v, ok := got["opaque"]; !ok || v != nil {
		t.Errorf("opaque = %#v (present %v), want explicit nil", v, ok)
	}
}
