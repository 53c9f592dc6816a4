// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package schema

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

type xmlStruct struct {
	XMLName xml.Name   `xml:"struct"`
	Name    string     `xml:"name,attr"`
	Size    uint64     `xml:"size,attr"`
	Packed  bool       `xml:"packed,attr"`
	Fields  []xmlField `xml:"field"`
}

type xmlLayout struct {
	Fields []xmlField `xml:"field"`
}

type xmlField struct {
	Name      string     `xml:"name,attr"`
	Type      string     `xml:"type,attr"`
	Offset    uint64     `xml:"offset,attr"`
	Size      uint64     `xml:"size,attr"`
	ArraySize uint64     `xml:"array_size,attr"`
	Bits      uint64     `xml:"bits,attr"`
	BitOffset uint64     `xml:"bit_offset,attr"`
	Struct    *xmlLayout `xml:"struct"`
	Union     *xmlLayout `xml:"union"`
	Fields    []xmlField `xml:"field"`
}

// ParseXML parses a struct layout from its XML form:
//
//	<struct name="Packet" size="8" packed="true">
//	  <field name="id" type="uint32_t" offset="0" size="4"/>
//	  <field name="flags" type="uint32_t" offset="4" size="4" bits="3" bit_offset="0"/>
//	  <field name="u" offset="4" size="4">
//	    <union>
//	      <field name="raw" type="uint32_t" offset="0" size="4"/>
//	    </union>
//	  </field>
//	</struct>
//
// A field with neither a type attribute nor a nested struct or union is
// KindUnknown.
func ParseXML(r io.Reader) (*Struct, error) {
	var doc xmlStruct
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no struct element found in XML")
		}
		return nil, fmt.Errorf("failed to parse XML schema: %w", err)
	}
	if doc.Name == "" {
		return nil, errors.New("struct element without name")
	}

	fields, err := convertXMLFields(doc.Fields)
	if err != nil {
		return nil, fmt.Errorf("struct %s: %w", doc.Name, err)
	}
	normalize(fields)

	return &Struct{
		Name:   doc.Name,
		Size:   doc.Size,
		Packed: doc.Packed,
		Fields: fields,
	}, nil
}

func convertXMLFields(in []xmlField) ([]Field, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]Field, 0, len(in))
	for _, xf := range in {
		if xf.Name == "" {
			return nil, errors.New("field element without name")
		}

		f := Field{
			Name:      xf.Name,
			Kind:      KindUnknown,
			Offset:    xf.Offset,
			Size:      xf.Size,
			Count:     xf.ArraySize,
			Bits:      xf.Bits,
			BitOffset: xf.BitOffset,
		}

		children := xf.Fields
		switch {
		case xf.Type != "":
			f.Kind = ParseKind(xf.Type)
			if xf.Struct != nil {
				children = append(children, xf.Struct.Fields...)
			} else if xf.Union != nil {
				children = append(children, xf.Union.Fields...)
			}
		case xf.Struct != nil:
			f.Kind = KindStruct
			children = xf.Struct.Fields
		case xf.Union != nil:
			f.Kind = KindUnion
			children = xf.Union.Fields
		}

		sub, err := convertXMLFields(children)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", xf.Name, err)
		}
		f.Fields = sub
		out = append(out, f)
	}
	return out, nil
}
