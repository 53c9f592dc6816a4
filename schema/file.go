// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package schema

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// CompiledExt is the file extension of compiled schemas.
const CompiledExt = ".lsc"

// LoadFile reads the layouts defined in path. The loader is chosen by
// extension: .xml, .yaml/.yml/.json, a C header (.h) or the compiled .lsc
// form. A header yields every named struct and union it defines, laid out
// with natural alignment unless marked packed.
func LoadFile(path string) ([]*Struct, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}

	var structs []*Struct
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xml":
		var s *Struct
		s, err = ParseXML(bytes.NewReader(data))
		if s != nil {
			structs = []*Struct{s}
		}
	case ".yaml", ".yml", ".json":
		structs, err = Parse(data)
	case ".h":
		structs, err = parseHeaderStructs(data, path)
	case CompiledExt:
		structs, err = UnmarshalBinary(data)
	default:
		return nil, fmt.Errorf("unsupported schema file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	Logger().Debug("loaded schema",
		zap.String("path", path),
		zap.Int("structs", len(structs)))
	return structs, nil
}
