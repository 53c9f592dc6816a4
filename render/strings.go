// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package render

import "bytes"

// maxStringLen is the longest unterminated array still shown as text.
const maxStringLen = 256

// IsStringLike reports whether b looks like a C character array: printable
// ASCII (or \t \n \r \b \f) up to an optional NUL, and only NULs after it.
// Arrays without a NUL must be at most 256 bytes. Empty arrays are not
// string-like.
func IsStringLike(b []byte) bool {
	if len(b) == 0 {
		return false
	}

	hasNul := false
	for i, c := range b {
		if c == 0 {
			for _, rest := range b[i+1:] {
				if rest != 0 {
					return false
				}
			}
			hasNul = true
			break
		}
		if c < 32 || c > 126 {
			switch c {
			case '\t', '\n', '\r', '\b', '\f':
			default:
				return false
			}
		}
	}

	return hasNul || len(b) <= maxStringLen
}

// CString returns b up to its first NUL.
func CString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}
