// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

// Package endian provides byte-order detection and the 16/32/64-bit swap
// primitives used when reading multi-byte values from a buffer.
package endian

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"strings"
	"unsafe"
)

// Order is the byte order a buffer is interpreted in.
type Order uint8

const (
	// Little is least significant byte first. It is the default.
	Little Order = iota
	// Big is most significant byte first.
	Big
)

var native = hostOrder()

// hostOrder inspects how a known 16-bit value is laid out in memory.
func hostOrder() Order {
	x := uint16(0x0102)
	b := *(*[2]byte)(unsafe.Pointer(&x))
	if b[0] == 0x02 {
		return Little
	}
	return Big
}

// Native returns the byte order of the host, as detected at startup.
func Native() Order {
	return native
}

// NeedsSwap reports whether values read in host order must be byte-swapped
// to be interpreted in o.
func (o Order) NeedsSwap() bool {
	return o != native
}

// ByteOrder returns the encoding/binary order matching o.
func (o Order) ByteOrder() binary.ByteOrder {
	switch o {
	case Big:
		return binary.BigEndian
	default:
		return binary.LittleEndian
	}
}

func (o Order) String() string {
	switch o {
	case Little:
		return "little"
	case Big:
		return "big"
	default:
		return fmt.Sprintf("Order(%d)", uint8(o))
	}
}

// Parse parses an order name: little, le, big or be (case-insensitive).
// The empty string is Little.
func Parse(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "little", "le":
		return Little, nil
	case "big", "be":
		return Big, nil
	default:
		return Little, fmt.Errorf("unknown endianness %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Order) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (o Order) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Swap16 reverses the byte order of v.
func Swap16(v uint16) uint16 {
	return bits.ReverseBytes16(v)
}

// Swap32 reverses the byte order of v.
func Swap32(v uint32) uint32 {
	return bits.ReverseBytes32(v)
}

// Swap64 reverses the byte order of v.
func Swap64(v uint64) uint64 {
	return bits.ReverseBytes64(v)
}
