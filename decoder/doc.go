// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

// Package decoder interprets a byte buffer as an instance of a schema.Struct
// and returns the decoded value tree.
//
// Each field is resolved at its absolute offset (the enclosing record's base
// plus the field's own offset) and dispatched in a fixed order:
//
//  1. struct or union: decoded as a nested record
//  2. Count > 1: decoded as a typed array
//  3. Bits > 0: decoded as a bitfield of its host integer
//  4. otherwise: decoded as a scalar
//
// Multi-byte values are read in host order and byte-swapped when the
// configured order differs. Union members share their offsets and are all
// decoded; no member is selected.
//
// Any failure aborts the whole decode and no partial record is returned.
// Errors are *Error values matching the Err* sentinels under errors.Is.
package decoder
