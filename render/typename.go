// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package render

import (
	"strconv"

	"github.com/minatosato/binary-parser-with-xml/value"
)

// TypeName names the decoded type of v: uint32, int8, float64, uint16[],
// char[] for a string-like byte array, record[] or missing.
func TypeName(v value.Value, opts Options) string {
	switch v := v.(type) {
	case value.Unsigned:
		return "uint" + strconv.Itoa(int(v.Width))
	case value.Signed:
		return "int" + strconv.Itoa(int(v.Width))
	case value.Float32:
		return "float32"
	case value.Float64:
		return "float64"
	case value.ByteArray:
		if !opts.RawBytes && IsStringLike(v) {
			return "char[]"
		}
		return "uint8[]"
	case value.I8Array:
		return "int8[]"
	case value.U16Array:
		return "uint16[]"
	case value.I16Array:
		return "int16[]"
	case value.U32Array:
		return "uint32[]"
	case value.I32Array:
		return "int32[]"
	case value.U64Array:
		return "uint64[]"
	case value.I64Array:
		return "int64[]"
	case value.F32Array:
		return "float32[]"
	case value.F64Array:
		return "float64[]"
	case value.RecordArray:
		return "record[]"
	case value.MissingArray:
		return "missing[]"
	default:
		return "missing"
	}
}
