// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package schema

import (
	"fmt"

	msgpack "gopkg.in/vmihailenco/msgpack.v2"
)

// Compiled schema format constants
const (
	BinaryVersion1 = 0x01
	BinaryMagic    = "LS" // Magic header for validation
)

const binaryHeaderLen = len(BinaryMagic) + 1

type binaryDocument struct {
	Structs []*Struct `msgpack:"structs"`
}

// MarshalBinary encodes layouts into the compiled schema format.
// Format v1: magic(2) + version(1) + msgpack body
func MarshalBinary(structs ...*Struct) ([]byte, error) {
	if len(structs) == 0 {
		return nil, fmt.Errorf("no structs to encode")
	}
	for i, s := range structs {
		if s == nil {
			return nil, fmt.Errorf("struct %d is nil", i)
		}
	}

	body, err := msgpack.Marshal(binaryDocument{Structs: structs})
	if err != nil {
		return nil, fmt.Errorf("failed to encode binary schema: %w", err)
	}

	data := make([]byte, 0, binaryHeaderLen+len(body))
	data = append(data, BinaryMagic...)
	data = append(data, BinaryVersion1)
	return append(data, body...), nil
}

// UnmarshalBinary decodes layouts from the compiled schema format.
func UnmarshalBinary(data []byte) ([]*Struct, error) {
	if len(data) < binaryHeaderLen {
		return nil, fmt.Errorf("binary schema too short")
	}
	if string(data[:len(BinaryMagic)]) != BinaryMagic {
		return nil, fmt.Errorf("binary schema magic mismatch: %q", data[:len(BinaryMagic)])
	}
	version := data[len(BinaryMagic)]
	if version != BinaryVersion1 {
		return nil, fmt.Errorf("unsupported binary schema version: %d", version)
	}

	var doc binaryDocument
	if err := msgpack.Unmarshal(data[binaryHeaderLen:], &doc); err != nil {
		return nil, fmt.Errorf("failed to decode binary schema: %w", err)
	}
	if len(doc.Structs) == 0 {
		return nil, fmt.Errorf("binary schema holds no structs")
	}
	for i, s := range doc.Structs {
		if s == nil {
			return nil, fmt.Errorf("binary schema struct %d is empty", i)
		}
		if err := checkKinds(s.Fields); err != nil {
			return nil, fmt.Errorf("struct %s: %w", s.Name, err)
		}
	}
	return doc.Structs, nil
}

func checkKinds(fields []Field) error {
	for i := range fields {
		if !fields[i].Kind.Valid() {
			return fmt.Errorf("field %s has invalid kind %d", fields[i].Name, fields[i].Kind)
		}
		if err := checkKinds(fields[i].Fields); err != nil {
			return err
		}
	}
	return nil
}
