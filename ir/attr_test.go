package ir

import (
	"testing"
)

func TestAttrMap_NilReads(t *testing.T) {
	var m AttrMap
	if m.Has("x") {
		t.Error("nil map: Has = true, want false")
	}
	if m.HasUnit("x") {
		t.Error("nil map: HasUnit = true, want false")
	}
	if _, ok := m.GetString("x"); ok {
		t.Error("nil map: GetString ok = true, want false")
	}
	if _, ok := m.GetSymbol("x"); ok {
		t.Error("nil map: GetSymbol ok = true, want false")
	}
}

func TestAttrMap_SetAllocates(t *testing.T) {
	var m AttrMap
	m.SetUnit("gpu.kernel_module")
	if m == nil {
		t.Fatal("map still nil after SetUnit")
	}
	if !m.HasUnit("gpu.kernel_module") {
		t.Error("HasUnit = false after SetUnit")
	}
}

func TestAttrMap_Kinds(t *testing.T) {
	m := make(AttrMap)
	m.SetUnit("marker")
	m.SetString("blob", "\x00\x01CUBIN")
	m.SetSymbol("getter", "kernel_cubin")

	if !m.Has("marker") || !m.Has("blob") || !m.Has("getter") {
		t.Fatal("Has = false for present key")
	}

	if !m.HasUnit("marker") {
		t.Error("HasUnit(marker) = false, want true")
	}
	if m.HasUnit("blob") {
		t.Error("HasUnit(blob) = true for string value")
	}

	s, ok := m.GetString("blob")
	if !ok || s != "\x00\x01CUBIN" {
		t.Errorf("GetString(blob) = %q, %v, want embedded-zero bytes, true", s, ok)
	}
	if _, ok := m.GetString("getter"); ok {
		t.Error("GetString(getter) ok = true for symbol value")
	}

	sym, ok := m.GetSymbol("getter")
	if !ok || sym != "kernel_cubin" {
		t.Errorf("GetSymbol(getter) = %q, %v, want kernel_cubin, true", sym, ok)
	}
	if _, ok := m.GetSymbol("blob"); ok {
		t.Error("GetSymbol(blob) ok = true for string value")
	}
}

func TestAttrMap_Overwrite(t *testing.T) {
	m := make(AttrMap)
	m.SetString("k", "one")
	m.SetSymbol("k", "two")
	if _, ok := m.GetString("k"); ok {
		t.Error("GetString = ok after overwrite with symbol")
	}
	sym, ok := m.GetSymbol("k")
	if !ok || sym != "two" {
		t.Errorf("GetSymbol(k) = %q, %v, want two, true", sym, ok)
	}
}
