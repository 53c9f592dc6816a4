// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package decoder

import (
	"fmt"
	"strings"

	"github.com/minatosato/binary-parser-with-xml/schema"
)

// ErrorKind categorizes a decode failure
type ErrorKind string

const (
	KindSize            ErrorKind = "size"                       // buffer shorter than the struct
	KindBounds          ErrorKind = "bounds"                     // field outside the buffer
	KindUnsupportedKind ErrorKind = "unsupported_kind"           // kind the reader cannot decode
	KindBitfieldWidth   ErrorKind = "unsupported_bitfield_width" // bad container or bit range
	KindArrayLayout     ErrorKind = "array_layout"               // size does not divide into elements
)

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrSize            = &Error{Kind: KindSize}
	ErrBounds          = &Error{Kind: KindBounds}
	ErrUnsupportedKind = &Error{Kind: KindUnsupportedKind}
	ErrBitfieldWidth   = &Error{Kind: KindBitfieldWidth}
	ErrArrayLayout     = &Error{Kind: KindArrayLayout}
)

// Error is the structured error returned by Decode
type Error struct {
	Kind   ErrorKind
	Detail string
	Path   []string
	// Offset is absolute; Size is the width of the failing read.
	Offset uint64
	Size   uint64
	// Length is the buffer length.
	Length uint64
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString("[decode] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	return b.String()
}

// Is reports whether target is an *Error of the same kind
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

func sizeError(length, size uint64) *Error {
	return &Error{
		Kind:   KindSize,
		Size:   size,
		Length: length,
		Detail: fmt.Sprintf("buffer of %d bytes is smaller than struct size %d", length, size),
	}
}

func boundsError(path []string, offset, size, length uint64) *Error {
	return &Error{
		Kind:   KindBounds,
		Path:   clonePath(path),
		Offset: offset,
		Size:   size,
		Length: length,
		Detail: fmt.Sprintf("offset %d size %d exceeds buffer length %d", offset, size, length),
	}
}

func unsupportedKind(path []string, kind schema.Kind, what string) *Error {
	return &Error{
		Kind:   KindUnsupportedKind,
		Path:   clonePath(path),
		Detail: fmt.Sprintf("cannot decode %s of kind %s (%d)", what, kind, uint8(kind)),
	}
}

func bitfieldWidth(path []string, f *schema.Field) *Error {
	detail := fmt.Sprintf("container size %d is not 1, 2, 4 or 8 bytes", f.Size)
	if validContainer(f.Size) {
		detail = fmt.Sprintf("bits %d at bit offset %d exceed a %d-bit container", f.Bits, f.BitOffset, f.Size*8)
	}
	return &Error{
		Kind:   KindBitfieldWidth,
		Path:   clonePath(path),
		Size:   f.Size,
		Detail: detail,
	}
}

func arrayLayout(path []string, f *schema.Field, detail string) *Error {
	return &Error{
		Kind:   KindArrayLayout,
		Path:   clonePath(path),
		Size:   f.Size,
		Detail: fmt.Sprintf("size %d count %d: %s", f.Size, f.Count, detail),
	}
}

// clonePath detaches a path from the walker's shared backing array.
func clonePath(path []string) []string {
	if len(path) == 0 {
		return nil
	}
	out := make([]string, len(path))
	copy(out, path)
	return out
}
