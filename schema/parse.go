// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ValueError is a schema error tied to the document node it came from.
type ValueError struct {
	Node *yaml.Node
	Err  error
}

func (v ValueError) Unwrap() error { return v.Err }

func (v ValueError) Error() string {
	if v.Node == nil || v.Node.Line == 0 {
		return v.Err.Error()
	}
	return fmt.Sprintf("line %d: %s", v.Node.Line, v.Err)
}

func valueErrorf(n *yaml.Node, format string, a ...any) ValueError {
	return ValueError{
		Node: n,
		Err:  fmt.Errorf(format, a...),
	}
}

type structDef struct {
	Name   string `mapstructure:"name"`
	Size   uint64 `mapstructure:"size"`
	Packed bool   `mapstructure:"packed"`
}

type fieldDef struct {
	Name      string `mapstructure:"name"`
	Type      string `mapstructure:"type"`
	Offset    uint64 `mapstructure:"offset"`
	Size      uint64 `mapstructure:"size"`
	ArraySize uint64 `mapstructure:"array_size"`
	Count     uint64 `mapstructure:"count"`
	Bits      uint64 `mapstructure:"bits"`
	BitOffset uint64 `mapstructure:"bit_offset"`
}

// layoutKeys hold nested layouts and are walked as nodes rather than
// decoded into definitions.
var layoutKeys = []string{"fields", "struct", "union"}

// Parse parses struct layouts from a YAML or JSON document.
//
// A document is either a single struct:
//
//	name: Header
//	size: 12
//	fields:
//	  - {name: magic, type: uint32_t, offset: 0, size: 4}
//	  - name: body
//	    type: union
//	    offset: 4
//	    size: 8
//	    fields: [...]
//
// or a list of them under a "structs" key.
func Parse(data []byte) ([]*Struct, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	if root.Kind != yaml.MappingNode {
		return nil, valueErrorf(root, "schema document must be a mapping")
	}

	if list := mappingValue(root, "structs"); list != nil {
		if list.Kind != yaml.SequenceNode {
			return nil, valueErrorf(list, "structs must be a sequence")
		}
		structs := make([]*Struct, 0, len(list.Content))
		for _, n := range list.Content {
			s, err := parseStructNode(n)
			if err != nil {
				return nil, err
			}
			structs = append(structs, s)
		}
		return structs, nil
	}

	s, err := parseStructNode(root)
	if err != nil {
		return nil, err
	}
	return []*Struct{s}, nil
}

// parseDocument returns the top-level node of a YAML document. Input YAML
// rejects (tab-indented JSON, mostly) is retried as JSON.
func parseDocument(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if yerr := yaml.Unmarshal(data, &doc); yerr != nil {
		var raw any
		if jerr := json.Unmarshal(data, &raw); jerr != nil {
			return nil, fmt.Errorf("failed to parse schema: %w", yerr)
		}
		var n yaml.Node
		if err := n.Encode(raw); err != nil {
			return nil, fmt.Errorf("failed to parse schema: %w", err)
		}
		return &n, nil
	}
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, errors.New("empty schema document")
		}
		return doc.Content[0], nil
	}
	return &doc, nil
}

func parseStructNode(n *yaml.Node) (*Struct, error) {
	if n.Kind != yaml.MappingNode {
		return nil, valueErrorf(n, "struct must be a mapping")
	}

	var def structDef
	if err := decodeDef(n, &def, "structs"); err != nil {
		return nil, err
	}
	if def.Name == "" {
		return nil, valueErrorf(n, "struct without name")
	}

	fields, err := parseFieldNodes(mappingValue(n, "fields"))
	if err != nil {
		return nil, fmt.Errorf("struct %s: %w", def.Name, err)
	}
	normalize(fields)

	return &Struct{
		Name:   def.Name,
		Size:   def.Size,
		Packed: def.Packed,
		Fields: fields,
	}, nil
}

func parseFieldNodes(seq *yaml.Node) ([]Field, error) {
	if seq == nil {
		return nil, nil
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, valueErrorf(seq, "fields must be a sequence")
	}
	fields := make([]Field, 0, len(seq.Content))
	for _, n := range seq.Content {
		f, err := parseFieldNode(n)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func parseFieldNode(n *yaml.Node) (Field, error) {
	if n.Kind != yaml.MappingNode {
		return Field{}, valueErrorf(n, "field must be a mapping")
	}

	var def fieldDef
	if err := decodeDef(n, &def); err != nil {
		return Field{}, err
	}
	if def.Name == "" {
		return Field{}, valueErrorf(n, "field without name")
	}

	f := Field{
		Name:      def.Name,
		Kind:      ParseKind(def.Type),
		Offset:    def.Offset,
		Size:      def.Size,
		Count:     def.ArraySize,
		Bits:      def.Bits,
		BitOffset: def.BitOffset,
	}
	if f.Count == 0 {
		f.Count = def.Count
	}

	children := mappingValue(n, "fields")
	if nested := mappingValue(n, "struct"); nested != nil {
		f.Kind = KindStruct
		children = mappingValue(nested, "fields")
	} else if nested := mappingValue(n, "union"); nested != nil {
		f.Kind = KindUnion
		children = mappingValue(nested, "fields")
	} else if def.Type == "" && children != nil {
		f.Kind = KindStruct
	}

	sub, err := parseFieldNodes(children)
	if err != nil {
		return Field{}, fmt.Errorf("field %s: %w", def.Name, err)
	}
	f.Fields = sub

	return f, nil
}

// decodeDef decodes the scalar keys of a mapping node into out, rejecting
// keys out does not declare.
func decodeDef(n *yaml.Node, out any, skip ...string) error {
	raw := make(map[string]any)
	if err := n.Decode(&raw); err != nil {
		return ValueError{Node: n, Err: err}
	}
	for _, key := range layoutKeys {
		delete(raw, key)
	}
	for _, key := range skip {
		delete(raw, key)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return ValueError{Node: n, Err: err}
	}
	return nil
}

// mappingValue returns the value node stored under key in a mapping node.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(node.Content)-1; i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
