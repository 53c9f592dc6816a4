// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

// Package render turns decoded records into JSON, an indented text listing
// or jq query results.
package render

import (
	"fmt"
	"strings"
)

// Format names an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat maps a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatText:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Options control rendering.
type Options struct {
	// Indent is the per-level indent; empty means compact JSON and two
	// spaces for text.
	Indent string
	// SortKeys orders fields by name instead of layout order.
	SortKeys bool
	// RawBytes disables showing string-like byte arrays as text.
	RawBytes bool
	// TypeInfo tags every leaf with its decoded type name. JSON leaves
	// become {"type": ..., "value": ...} objects.
	TypeInfo bool
}
