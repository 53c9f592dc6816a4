// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package schema

import (
	"fmt"
	"sync"

	"github.com/mitchellh/copystructure"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Registry holds named layouts and supports replacing them while readers
// are active. Registered layouts are copied in and out, so neither the
// caller's descriptor nor a returned one aliases the registry's.
type Registry struct {
	mu       sync.RWMutex
	schemas  map[string]*Struct
	versions map[string]uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas:  make(map[string]*Struct),
		versions: make(map[string]uint64),
	}
}

// Register adds or replaces the layout stored under s.Name and returns its
// new version, starting at 1.
func (r *Registry) Register(s *Struct) (uint64, error) {
	if s == nil {
		return 0, fmt.Errorf("register nil struct")
	}
	if s.Name == "" {
		return 0, fmt.Errorf("register struct without name")
	}

	// Copy before taking the write lock
	c, err := cloneStruct(s)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.schemas[c.Name] = c
	r.versions[c.Name]++
	version := r.versions[c.Name]

	Logger().Debug("registered struct",
		zap.String("name", c.Name),
		zap.Uint64("version", version))
	return version, nil
}

// Get returns a copy of the named layout and its version.
func (r *Registry) Get(name string) (*Struct, uint64, error) {
	r.mu.RLock()
	s, ok := r.schemas[name]
	version := r.versions[name]
	r.mu.RUnlock()

	if !ok {
		return nil, 0, fmt.Errorf("struct '%s' not found", name)
	}
	c, err := cloneStruct(s)
	if err != nil {
		return nil, 0, err
	}
	return c, version, nil
}

// Version returns the current version of the named layout, 0 if absent.
func (r *Registry) Version(name string) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.versions[name]
}

// Remove deletes the named layout. Its version counter is kept so a later
// Register continues the sequence.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.schemas[name]
	delete(r.schemas, name)
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := maps.Keys(r.schemas)
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Len returns the number of registered layouts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.schemas)
}

// LoadFile registers every layout defined in path and returns their names
// in file order.
func (r *Registry) LoadFile(path string) ([]string, error) {
	structs, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(structs))
	for _, s := range structs {
		if _, err := r.Register(s); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		names = append(names, s.Name)
	}
	return names, nil
}

func cloneStruct(s *Struct) (*Struct, error) {
	v, err := copystructure.Copy(s)
	if err != nil {
		return nil, fmt.Errorf("copy struct %s: %w", s.Name, err)
	}
	return v.(*Struct), nil
}
