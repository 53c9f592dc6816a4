// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"
)

func TestSwap(t *testing.T) {
	if got := Swap16(0x1234); got != 0x3412 {
		t.Errorf("Swap16() = %#x, want 0x3412", got)
	}
	if got := Swap32(0xDEADBEEF); got != 0xEFBEADDE {
		t.Errorf("Swap32() = %#x, want 0xefbeadde", got)
	}
	if got := Swap64(0x0102030405060708); got != 0x0807060504030201 {
		t.Errorf("Swap64() = %#x, want 0x0807060504030201", got)
	}
}

func TestSwapInvolution(t *testing.T) {
	values16 := []uint16{0, 1, 0x00FF, 0xFF00, 0x1234, 0xFFFF}
	for _, v := range values16 {
		if got := Swap16(Swap16(v)); got != v {
			t.Errorf("Swap16(Swap16(%#x)) = %#x", v, got)
		}
	}
	values32 := []uint32{0, 1, 0xDEADBEEF, 0x80000000, 0xFFFFFFFF}
	for _, v := range values32 {
		if got := Swap32(Swap32(v)); got != v {
			t.Errorf("Swap32(Swap32(%#x)) = %#x", v, got)
		}
	}
	values64 := []uint64{0, 1, 0x0102030405060708, 1 << 63, ^uint64(0)}
	for _, v := range values64 {
		if got := Swap64(Swap64(v)); got != v {
			t.Errorf("Swap64(Swap64(%#x)) = %#x", v, got)
		}
	}
}

func TestNative(t *testing.T) {
	x := uint32(0x01020304)
	b := *(*[4]byte)(unsafe.Pointer(&x))
	want := Big
	if binary.LittleEndian.Uint32(b[:]) == x {
		want = Little
	}
	if got := Native(); got != want {
		t.Errorf("Native() = %v, want %v", got, want)
	}
	if want.NeedsSwap() {
		t.Errorf("%v.NeedsSwap() = true on a %v host", want, want)
	}
	other := Big
	if want == Big {
		other = Little
	}
	if !other.NeedsSwap() {
		t.Errorf("%v.NeedsSwap() = false on a %v host", other, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Order
		wantErr bool
	}{
		{"", Little, false},
		{"little", Little, false},
		{"LE", Little, false},
		{"big", Big, false},
		{" be ", Big, false},
		{"middle", Little, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOrderText(t *testing.T) {
	var o Order
	if err := o.UnmarshalText([]byte("big")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if o != Big {
		t.Errorf("UnmarshalText() = %v, want big", o)
	}
	text, _ := o.MarshalText()
	if string(text) != "big" {
		t.Errorf("MarshalText() = %s, want big", text)
	}
	if Big.ByteOrder() != binary.BigEndian || Little.ByteOrder() != binary.LittleEndian {
		t.Errorf("ByteOrder() mismatch")
	}
}
