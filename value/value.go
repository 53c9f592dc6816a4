// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

// Package value defines the decoded value tree: a closed set of scalar and
// array values, and the fields and records that hold them.
//
// A Value is one of the types declared in this package; consumers switch on
// the concrete type (or on Kind) and never need a fallible cast:
//
//	switch v := f.Value.(type) {
//	case value.Unsigned:
//		fmt.Println(v.V, v.Width)
//	case value.F32Array:
//		fmt.Println([]float32(v))
//	case value.Missing:
//		fmt.Println("null")
//	}
package value

// Kind identifies the concrete type of a Value.
type Kind uint8

const (
	KindUnsigned Kind = iota
	KindSigned
	KindFloat32
	KindFloat64
	KindByteArray
	KindI8Array
	KindU16Array
	KindI16Array
	KindU32Array
	KindI32Array
	KindU64Array
	KindI64Array
	KindF32Array
	KindF64Array
	KindRecordArray
	KindMissingArray
	KindMissing
)

var kindNames = [...]string{
	KindUnsigned:     "unsigned",
	KindSigned:       "signed",
	KindFloat32:      "float32",
	KindFloat64:      "float64",
	KindByteArray:    "byte_array",
	KindI8Array:      "i8_array",
	KindU16Array:     "u16_array",
	KindI16Array:     "i16_array",
	KindU32Array:     "u32_array",
	KindI32Array:     "i32_array",
	KindU64Array:     "u64_array",
	KindI64Array:     "i64_array",
	KindF32Array:     "f32_array",
	KindF64Array:     "f64_array",
	KindRecordArray:  "record_array",
	KindMissingArray: "missing_array",
	KindMissing:      "missing",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsArray reports whether values of kind k hold a sequence.
func (k Kind) IsArray() bool {
	return k >= KindByteArray && k <= KindMissingArray
}

// Value is a decoded leaf. The set of implementations is closed.
type Value interface {
	Kind() Kind
	value()
}

// Unsigned is an unsigned integer of Width bits.
type Unsigned struct {
	V     uint64
	Width uint8
}

// Signed is a signed integer of Width bits.
type Signed struct {
	V     int64
	Width uint8
}

type (
	Float32 float32
	Float64 float64

	ByteArray []byte
	I8Array   []int8
	U16Array  []uint16
	I16Array  []int16
	U32Array  []uint32
	I32Array  []int32
	U64Array  []uint64
	I64Array  []int64
	F32Array  []float32
	F64Array  []float64

	// RecordArray holds one record per element of an array of structures.
	RecordArray []*Record

	// MissingArray stands in for an array whose element layout is unknown.
	MissingArray []Missing
)

// Missing marks a value that could not be interpreted. It renders as null,
// never as zero.
type Missing struct{}

func (Unsigned) Kind() Kind     { return KindUnsigned }
func (Signed) Kind() Kind       { return KindSigned }
func (Float32) Kind() Kind      { return KindFloat32 }
func (Float64) Kind() Kind      { return KindFloat64 }
func (ByteArray) Kind() Kind    { return KindByteArray }
func (I8Array) Kind() Kind      { return KindI8Array }
func (U16Array) Kind() Kind     { return KindU16Array }
func (I16Array) Kind() Kind     { return KindI16Array }
func (U32Array) Kind() Kind     { return KindU32Array }
func (I32Array) Kind() Kind     { return KindI32Array }
func (U64Array) Kind() Kind     { return KindU64Array }
func (I64Array) Kind() Kind     { return KindI64Array }
func (F32Array) Kind() Kind     { return KindF32Array }
func (F64Array) Kind() Kind     { return KindF64Array }
func (RecordArray) Kind() Kind  { return KindRecordArray }
func (MissingArray) Kind() Kind { return KindMissingArray }
func (Missing) Kind() Kind      { return KindMissing }

func (Unsigned) value()     {}
func (Signed) value()       {}
func (Float32) value()      {}
func (Float64) value()      {}
func (ByteArray) value()    {}
func (I8Array) value()      {}
func (U16Array) value()     {}
func (I16Array) value()     {}
func (U32Array) value()     {}
func (I32Array) value()     {}
func (U64Array) value()     {}
func (I64Array) value()     {}
func (F32Array) value()     {}
func (F64Array) value()     {}
func (RecordArray) value()  {}
func (MissingArray) value() {}
func (Missing) value()      {}

// Len returns the element count of an array value, or 1 for a scalar.
func Len(v Value) int {
	switch a := v.(type) {
	case ByteArray:
		return len(a)
	case I8Array:
		return len(a)
	case U16Array:
		return len(a)
	case I16Array:
		return len(a)
	case U32Array:
		return len(a)
	case I32Array:
		return len(a)
	case U64Array:
		return len(a)
	case I64Array:
		return len(a)
	case F32Array:
		return len(a)
	case F64Array:
		return len(a)
	case RecordArray:
		return len(a)
	case MissingArray:
		return len(a)
	default:
		return 1
	}
}
