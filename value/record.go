// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package value

// Field is one named entry of a record. Exactly one of Value and Record is
// set: a field is either a leaf or a container.
type Field struct {
	Value  Value
	Record *Record
	Name   string
}

// Leaf returns a field holding v.
func Leaf(name string, v Value) *Field {
	return &Field{Name: name, Value: v}
}

// Nested returns a field holding a nested record.
func Nested(name string, r *Record) *Field {
	return &Field{Name: name, Record: r}
}

// IsRecord reports whether f holds a nested record.
func (f *Field) IsRecord() bool {
	return f.Record != nil
}

// Record is the decoded form of one struct or union instance.
type Record struct {
	fields map[string]*Field
	Name   string
	order  []string
}

// NewRecord returns an empty record with room for n fields.
func NewRecord(name string, n int) *Record {
	return &Record{
		Name:   name,
		fields: make(map[string]*Field, n),
		order:  make([]string, 0, n),
	}
}

// Set stores f under its name. A field already stored under that name is
// replaced and keeps its position.
func (r *Record) Set(f *Field) {
	if _, ok := r.fields[f.Name]; !ok {
		r.order = append(r.order, f.Name)
	}
	r.fields[f.Name] = f
}

// Get returns the field stored under name.
func (r *Record) Get(name string) (*Field, bool) {
	f, ok := r.fields[name]
	return f, ok
}

// Lookup walks nested records along path.
func (r *Record) Lookup(path ...string) (*Field, bool) {
	cur := r
	var f *Field
	for i, name := range path {
		var ok bool
		f, ok = cur.fields[name]
		if !ok {
			return nil, false
		}
		if i < len(path)-1 {
			if f.Record == nil {
				return nil, false
			}
			cur = f.Record
		}
	}
	return f, f != nil
}

// Len returns the number of distinct field names.
func (r *Record) Len() int {
	return len(r.order)
}

// Names returns field names in first-insertion order.
func (r *Record) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Fields returns the fields in first-insertion order.
func (r *Record) Fields() []*Field {
	fields := make([]*Field, 0, len(r.order))
	for _, name := range r.order {
		fields = append(fields, r.fields[name])
	}
	return fields
}
