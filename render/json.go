// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package render

import (
	"bytes"
	"encoding/json"
	"io"

	"golang.org/x/exp/slices"

	"github.com/minatosato/binary-parser-with-xml/value"
)

// JSON writes rec as a JSON object followed by a newline. Fields keep their
// layout order unless opts.SortKeys is set.
func JSON(w io.Writer, rec *value.Record, opts Options) error {
	var buf bytes.Buffer
	if err := appendRecord(&buf, rec, opts); err != nil {
		return err
	}
	return writeJSON(w, buf.Bytes(), opts)
}

// Values writes each value as one JSON document per line.
func Values(w io.Writer, vs []any, opts Options) error {
	for _, v := range vs {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if err := writeJSON(w, b, opts); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, compact []byte, opts Options) error {
	out := compact
	if opts.Indent != "" {
		var ind bytes.Buffer
		if err := json.Indent(&ind, compact, "", opts.Indent); err != nil {
			return err
		}
		out = ind.Bytes()
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// appendRecord writes rec compactly. encoding/json sorts map keys, so
// records are written member by member to keep layout order.
func appendRecord(buf *bytes.Buffer, rec *value.Record, opts Options) error {
	fields := rec.Fields()
	if opts.SortKeys {
		slices.SortFunc(fields, func(a, b *value.Field) bool { return a.Name < b.Name })
	}

	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')

		if err := appendField(buf, f, opts); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func appendField(buf *bytes.Buffer, f *value.Field, opts Options) error {
	if f.IsRecord() {
		return appendRecord(buf, f.Record, opts)
	}
	if recs, ok := f.Value.(value.RecordArray); ok {
		buf.WriteByte('[')
		for i, r := range recs {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendRecord(buf, r, opts); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}

	var v any = plainValue(f.Value, opts)
	if opts.TypeInfo {
		v = typedValue{Type: TypeName(f.Value, opts), Value: v}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

type typedValue struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}
