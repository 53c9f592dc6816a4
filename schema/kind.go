// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package schema

import "strings"

// Kind is the declared type of a field.
type Kind uint8

const (
	KindUInt8 Kind = iota
	KindInt8
	KindUInt16
	KindInt16
	KindUInt32
	KindInt32
	KindUInt64
	KindInt64
	KindFloat32
	KindFloat64
	KindStruct
	KindUnion
	KindUnknown
)

var kindNames = [...]string{
	KindUInt8:   "uint8",
	KindInt8:    "int8",
	KindUInt16:  "uint16",
	KindInt16:   "int16",
	KindUInt32:  "uint32",
	KindInt32:   "int32",
	KindUInt64:  "uint64",
	KindInt64:   "int64",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindStruct:  "struct",
	KindUnion:   "union",
	KindUnknown: "unknown",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k <= KindUnknown
}

// Width returns the size in bytes of a numeric kind and 0 for the rest.
func (k Kind) Width() uint64 {
	switch k {
	case KindUInt8, KindInt8:
		return 1
	case KindUInt16, KindInt16:
		return 2
	case KindUInt32, KindInt32, KindFloat32:
		return 4
	case KindUInt64, KindInt64, KindFloat64:
		return 8
	default:
		return 0
	}
}

// IsNumeric reports whether k is one of the ten integer and float kinds.
func (k Kind) IsNumeric() bool {
	return k <= KindFloat64
}

// IsInteger reports whether k is an integer kind.
func (k Kind) IsInteger() bool {
	return k <= KindInt64
}

// IsSigned reports whether k is a signed integer kind.
func (k Kind) IsSigned() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether k is a floating-point kind.
func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

// IsRecord reports whether k is struct or union.
func (k Kind) IsRecord() bool {
	return k == KindStruct || k == KindUnion
}

var kindAliases = map[string]Kind{
	"uint8_t":  KindUInt8,
	"uint8":    KindUInt8,
	"u8":       KindUInt8,
	"char":     KindUInt8,
	"uchar":    KindUInt8,
	"byte":     KindUInt8,
	"int8_t":   KindInt8,
	"int8":     KindInt8,
	"s8":       KindInt8,
	"i8":       KindInt8,
	"uint16_t": KindUInt16,
	"uint16":   KindUInt16,
	"u16":      KindUInt16,
	"int16_t":  KindInt16,
	"int16":    KindInt16,
	"s16":      KindInt16,
	"i16":      KindInt16,
	"uint32_t": KindUInt32,
	"uint32":   KindUInt32,
	"u32":      KindUInt32,
	"int32_t":  KindInt32,
	"int32":    KindInt32,
	"s32":      KindInt32,
	"i32":      KindInt32,
	"uint64_t": KindUInt64,
	"uint64":   KindUInt64,
	"u64":      KindUInt64,
	"int64_t":  KindInt64,
	"int64":    KindInt64,
	"s64":      KindInt64,
	"i64":      KindInt64,
	"float":    KindFloat32,
	"float32":  KindFloat32,
	"f32":      KindFloat32,
	"double":   KindFloat64,
	"float64":  KindFloat64,
	"f64":      KindFloat64,
	"struct":   KindStruct,
	"union":    KindUnion,
	"unknown":  KindUnknown,
}

// ParseKind maps a type name to a Kind. C names (uint32_t, float, char),
// short names (u32, s16, f64) and Go-style names (uint32, float64) are
// recognized; anything else is KindUnknown.
func ParseKind(name string) Kind {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k
	}
	return KindUnknown
}
