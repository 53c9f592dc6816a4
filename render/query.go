// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/wader/gojq"

	"github.com/minatosato/binary-parser-with-xml/value"
)

// Query runs the jq expression expr against Plain(rec) and returns every
// value it emits.
func Query(rec *value.Record, expr string) ([]any, error) {
	q, err := CompileQuery(expr)
	if err != nil {
		return nil, err
	}
	return q.Run(rec)
}

// CompiledQuery is a parsed jq expression that can be run against many
// records.
type CompiledQuery struct {
	expr string
	code *gojq.Code
}

// CompileQuery parses and compiles a jq expression.
func CompileQuery(expr string) (*CompiledQuery, error) {
	q, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse query %q: %w", expr, err)
	}
	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("compile query %q: %w", expr, err)
	}
	return &CompiledQuery{expr: expr, code: code}, nil
}

// Run evaluates the query against rec.
func (q *CompiledQuery) Run(rec *value.Record) ([]any, error) {
	var out []any
	iter := q.code.Run(Plain(rec))
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("query %q: %w", q.expr, err)
		}
		out = append(out, v)
	}
	return out, nil
}
