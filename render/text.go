// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package render

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/minatosato/binary-parser-with-xml/value"
)

// Text writes rec as an indented listing:
//
//	magic = 0x12345678
//	header:
//	  kind = 0x0001
//	samples = [-1, 2, 3]
//
// Unsigned values are zero-padded hex of their width, signed values decimal.
func Text(w io.Writer, rec *value.Record, opts Options) error {
	indent := opts.Indent
	if indent == "" {
		indent = "  "
	}
	t := textWriter{w: bufio.NewWriter(w), indent: indent, opts: opts}
	t.record(rec, 0)
	return t.w.Flush()
}

type textWriter struct {
	w      *bufio.Writer
	indent string
	opts   Options
}

func (t *textWriter) record(rec *value.Record, depth int) {
	fields := rec.Fields()
	if t.opts.SortKeys {
		slices.SortFunc(fields, func(a, b *value.Field) bool { return a.Name < b.Name })
	}
	for _, f := range fields {
		t.field(f, depth)
	}
}

func (t *textWriter) field(f *value.Field, depth int) {
	prefix := strings.Repeat(t.indent, depth)

	if f.IsRecord() {
		t.w.WriteString(prefix + f.Name + ":\n")
		t.record(f.Record, depth+1)
		return
	}
	if recs, ok := f.Value.(value.RecordArray); ok {
		t.w.WriteString(prefix + f.Name + ":\n")
		for _, r := range recs {
			t.w.WriteString(prefix + t.indent + r.Name + ":\n")
			t.record(r, depth+2)
		}
		return
	}

	name := f.Name
	if t.opts.TypeInfo {
		name += " (" + TypeName(f.Value, t.opts) + ")"
	}
	t.w.WriteString(prefix + name + " = " + FormatValue(f.Value, t.opts) + "\n")
}

// FormatValue renders a leaf value the way Text does.
func FormatValue(v value.Value, opts Options) string {
	switch v := v.(type) {
	case value.Unsigned:
		return hex(v.V, int(v.Width))
	case value.Signed:
		return strconv.FormatInt(v.V, 10)
	case value.Float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case value.Float64:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case value.ByteArray:
		if !opts.RawBytes && IsStringLike(v) {
			return strconv.Quote(CString(v))
		}
		return list(len(v), func(i int) string { return hex(uint64(v[i]), 8) })
	case value.I8Array:
		return list(len(v), func(i int) string { return strconv.FormatInt(int64(v[i]), 10) })
	case value.U16Array:
		return list(len(v), func(i int) string { return hex(uint64(v[i]), 16) })
	case value.I16Array:
		return list(len(v), func(i int) string { return strconv.FormatInt(int64(v[i]), 10) })
	case value.U32Array:
		return list(len(v), func(i int) string { return hex(uint64(v[i]), 32) })
	case value.I32Array:
		return list(len(v), func(i int) string { return strconv.FormatInt(int64(v[i]), 10) })
	case value.U64Array:
		return list(len(v), func(i int) string { return hex(v[i], 64) })
	case value.I64Array:
		return list(len(v), func(i int) string { return strconv.FormatInt(v[i], 10) })
	case value.F32Array:
		return list(len(v), func(i int) string { return strconv.FormatFloat(float64(v[i]), 'g', -1, 32) })
	case value.F64Array:
		return list(len(v), func(i int) string { return strconv.FormatFloat(v[i], 'g', -1, 64) })
	case value.RecordArray:
		return "[" + strconv.Itoa(len(v)) + " records]"
	case value.MissingArray:
		return list(len(v), func(int) string { return "<missing>" })
	default:
		return "<missing>"
	}
}

// hex formats u as 0x followed by width/4 zero-padded digits.
func hex(u uint64, width int) string {
	digits := strconv.FormatUint(u, 16)
	if pad := width/4 - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	return "0x" + digits
}

func list(n int, at func(i int) string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(at(i))
	}
	b.WriteByte(']')
	return b.String()
}
