// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package render

import (
	"math"
	"math/big"
	"strconv"

	"github.com/minatosato/binary-parser-with-xml/value"
)

// Plain converts a record into generic JSON values: map[string]any, []any,
// int, *big.Int, float64, string and nil. The result is valid gojq input.
func Plain(rec *value.Record) map[string]any {
	return plainRecord(rec, Options{})
}

// PlainValue converts a single decoded value like Plain does.
func PlainValue(v value.Value) any {
	return plainValue(v, Options{})
}

func plainRecord(rec *value.Record, opts Options) map[string]any {
	out := make(map[string]any, rec.Len())
	for _, f := range rec.Fields() {
		out[f.Name] = plainField(f, opts)
	}
	return out
}

func plainField(f *value.Field, opts Options) any {
	if f.IsRecord() {
		return plainRecord(f.Record, opts)
	}
	return plainValue(f.Value, opts)
}

func plainValue(v value.Value, opts Options) any {
	switch v := v.(type) {
	case value.Unsigned:
		return plainUint(v.V)
	case value.Signed:
		return plainInt(v.V)
	case value.Float32:
		return plainFloat(float64(v), 32)
	case value.Float64:
		return plainFloat(float64(v), 64)
	case value.ByteArray:
		if !opts.RawBytes && IsStringLike(v) {
			return CString(v)
		}
		return plainArray(len(v), func(i int) any { return int(v[i]) })
	case value.I8Array:
		return plainArray(len(v), func(i int) any { return int(v[i]) })
	case value.U16Array:
		return plainArray(len(v), func(i int) any { return int(v[i]) })
	case value.I16Array:
		return plainArray(len(v), func(i int) any { return int(v[i]) })
	case value.U32Array:
		return plainArray(len(v), func(i int) any { return plainUint(uint64(v[i])) })
	case value.I32Array:
		return plainArray(len(v), func(i int) any { return plainInt(int64(v[i])) })
	case value.U64Array:
		return plainArray(len(v), func(i int) any { return plainUint(v[i]) })
	case value.I64Array:
		return plainArray(len(v), func(i int) any { return plainInt(v[i]) })
	case value.F32Array:
		return plainArray(len(v), func(i int) any { return plainFloat(float64(v[i]), 32) })
	case value.F64Array:
		return plainArray(len(v), func(i int) any { return plainFloat(v[i], 64) })
	case value.RecordArray:
		return plainArray(len(v), func(i int) any { return plainRecord(v[i], opts) })
	case value.MissingArray:
		return make([]any, len(v))
	default:
		// value.Missing
		return nil
	}
}

func plainArray(n int, at func(i int) any) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = at(i)
	}
	return out
}

func plainUint(u uint64) any {
	if u <= math.MaxInt {
		return int(u)
	}
	return new(big.Int).SetUint64(u)
}

func plainInt(i int64) any {
	if i >= math.MinInt && i <= math.MaxInt {
		return int(i)
	}
	return big.NewInt(i)
}

// plainFloat keeps the shortest decimal of the source precision, so a
// float32 0.1 stays 0.1 instead of 0.10000000149011612. JSON has no NaN or
// infinities; they become strings.
func plainFloat(f float64, bitSize int) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	if bitSize == 32 {
		f, _ = strconv.ParseFloat(strconv.FormatFloat(f, 'g', -1, 32), 64)
	}
	return f
}
