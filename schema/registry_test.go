// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package schema

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
)

func TestRegistryVersions(t *testing.T) {
	r := NewRegistry()

	v1 := &Struct{Name: "Header", Size: 4, Fields: []Field{{Name: "a", Kind: KindUInt32, Size: 4, Count: 1}}}
	v2 := &Struct{Name: "Header", Size: 8, Fields: []Field{{Name: "a", Kind: KindUInt64, Size: 8, Count: 1}}}

	for i, s := range []*Struct{v1, v2} {
		version, err := r.Register(s)
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if version != uint64(i+1) {
			t.Errorf("Register() version = %d, want %d", version, i+1)
		}
	}

	got, version, err := r.Get("Header")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if version != 2 || got.Size != 8 {
		t.Errorf("Get() = {size %d, v%d}, want {size 8, v2}", got.Size, version)
	}

	if !r.Remove("Header") {
		t.Error("Remove() = false, want true")
	}
	if r.Remove("Header") {
		t.Error("second Remove() = true, want false")
	}
	if _, _, err := r.Get("Header"); err == nil {
		t.Error("Get() after Remove expected error")
	}
	if version, _ := r.Register(v1); version != 3 {
		t.Errorf("Register() after Remove version = %d, want 3", version)
	}
}

func TestRegistryCopies(t *testing.T) {
	r := NewRegistry()
	s := &Struct{Name: "S", Size: 2, Fields: []Field{{Name: "x", Kind: KindUInt16, Size: 2, Count: 1}}}
	if _, err := r.Register(s); err != nil {
		t.Fatal(err)
	}

	// Mutating the registered descriptor must not leak in
	s.Fields[0].Name = "changed"

	got, _, err := r.Get("S")
	if err != nil {
		t.Fatal(err)
	}
	if got.Fields[0].Name != "x" {
		t.Errorf("registered field = %q, want %q", got.Fields[0].Name, "x")
	}

	// Nor may mutating a returned one
	got.Fields[0].Kind = KindInt8
	again, _, _ := r.Get("S")
	if again.Fields[0].Kind != KindUInt16 {
		t.Errorf("stored kind = %v, want uint16", again.Fields[0].Kind)
	}
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := r.Register(&Struct{Name: name}); err != nil {
			t.Fatal(err)
		}
	}
	want := []string{"alpha", "mid", "zeta"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}

	if _, err := r.Register(nil); err == nil {
		t.Error("Register(nil) expected error")
	}
	if _, err := r.Register(&Struct{}); err == nil {
		t.Error("Register() without name expected error")
	}
}

func TestRegistryLoadFile(t *testing.T) {
	r := NewRegistry()
	names, err := r.LoadFile("testdata/sensors.yaml")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if want := []string{"Reading", "Frame"}; !reflect.DeepEqual(names, want) {
		t.Errorf("LoadFile() = %v, want %v", names, want)
	}
	if r.Version("Frame") != 1 {
		t.Errorf("Version(Frame) = %d, want 1", r.Version("Frame"))
	}
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Register(&Struct{Name: "hot", Size: 1}); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s := &Struct{Name: "hot", Size: uint64(i*100 + j)}
				if _, err := r.Register(s); err != nil {
					t.Error(err)
					return
				}
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, _, err := r.Get("hot"); err != nil {
					t.Error(err)
					return
				}
				_ = r.Names()
				_, _ = r.Register(&Struct{Name: fmt.Sprintf("s%d", i)})
			}
		}(i)
	}
	wg.Wait()

	if v := r.Version("hot"); v != 1+8*50 {
		t.Errorf("Version(hot) = %d, want %d", v, 1+8*50)
	}
}
