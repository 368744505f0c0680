// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package asm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gogpu/gpuir/ir"
)

func TestPrintEmptyModule(t *testing.T) {
	got := Print(&ir.Module{Name: "main"})
	want := "module @main {\n}\n"
	if got != want {
		t.Errorf("Print = %q, want %q", got, want)
	}
}

func TestPrintAnonymousModule(t *testing.T) {
	got := Print(&ir.Module{})
	want := "module {\n}\n"
	if got != want {
		t.Errorf("Print = %q, want %q", got, want)
	}
}

func TestPrintFuncStub(t *testing.T) {
	module := &ir.Module{
		Name: "main",
		Body: []ir.Node{
			&ir.Func{
				Name:   "kernel",
				Params: []ir.Type{ir.PointerType{Elem: ir.FloatType{Bits: 32}}, ir.IntType{Bits: 32}},
			},
		},
	}
	got := Print(module)
	want := "module @main {\n" +
		"  func @kernel(ptr<f32>, i32)\n" +
		"}\n"
	if got != want {
		t.Errorf("Print = %q, want %q", got, want)
	}
}

func TestPrintFuncBody(t *testing.T) {
	module := &ir.Module{
		Name: "main",
		Body: []ir.Node{
			&ir.Func{
				Name:   "get",
				Result: ir.PointerType{Elem: ir.IntType{Bits: 8}},
				Body: ir.Block{
					ir.ReturnStmt{Value: ir.ElemPtrExpr{
						Base:    ir.AddrOfExpr{Symbol: "cst"},
						Indices: []ir.Expr{ir.ConstIntExpr{Value: 0}, ir.ConstIntExpr{Value: 0}},
					}},
				},
			},
		},
	}
	got := Print(module)
	want := "module @main {\n" +
		"  func @get() -> ptr<i8> {\n" +
		"    return elem_ptr(addr_of(@cst), 0, 0)\n" +
		"  }\n" +
		"}\n"
	if got != want {
		t.Errorf("Print = %q, want %q", got, want)
	}
}

func TestPrintGlobal(t *testing.T) {
	module := &ir.Module{
		Name: "main",
		Body: []ir.Node{
			&ir.Global{
				Name:  "cst",
				Const: true,
				Type:  ir.ArrayType{Elem: ir.IntType{Bits: 8}, Count: 3},
				Data:  []byte{0x00, 'a', 0xFF},
			},
		},
	}
	got := Print(module)
	want := "module @main {\n" +
		"  global constant @cst : array<i8, 3> = \"\\00a\\FF\"\n" +
		"}\n"
	if got != want {
		t.Errorf("Print = %q, want %q", got, want)
	}
}

func TestPrintAttrsSorted(t *testing.T) {
	module := &ir.Module{
		Name: "main",
		Body: []ir.Node{
			&ir.Func{
				Name: "kernel",
				Attrs: ir.AttrMap{
					"nvvm.cubingetter": ir.SymbolAttr("kernel_cubin"),
					"gpu.kernel":       ir.UnitAttr{},
					"nvvm.cubin":       ir.StringAttr("BLOB"),
				},
			},
		},
	}
	got := Print(module)
	want := "module @main {\n" +
		"  func @kernel() attributes {gpu.kernel, nvvm.cubin = \"BLOB\", nvvm.cubingetter = @kernel_cubin}\n" +
		"}\n"
	if got != want {
		t.Errorf("Print = %q, want %q", got, want)
	}
}

func TestPrintNestedModule(t *testing.T) {
	module := &ir.Module{
		Name: "main",
		Body: []ir.Node{
			&ir.Module{
				Name:  "kernels",
				Attrs: ir.AttrMap{"gpu.kernel_module": ir.UnitAttr{}},
				Body:  []ir.Node{&ir.Func{Name: "kernel"}},
			},
		},
	}
	got := Print(module)
	want := "module @main {\n" +
		"  module @kernels attributes {gpu.kernel_module} {\n" +
		"    func @kernel()\n" +
		"  }\n" +
		"}\n"
	if got != want {
		t.Errorf("Print = %q, want %q", got, want)
	}
}

func TestPrintEscapes(t *testing.T) {
	tests := []struct {
		data []byte
		want string
	}{
		{[]byte("plain"), `plain`},
		{[]byte{0x00, 0x01, 0x1F}, `\00\01\1F`},
		{[]byte{'"'}, `\"`},
		{[]byte{'\\'}, `\\`},
		{[]byte{0x7E, 0x7F}, `~\7F`},
		{[]byte("a\nb"), `a\0Ab`},
	}
	for _, tt := range tests {
		var out strings.Builder
		writeEscaped(&out, tt.data)
		if got := out.String(); got != tt.want {
			t.Errorf("escape(%q) = %q, want %q", tt.data, got, tt.want)
		}
	}
}

// Roundtrip: parsing canonical output reproduces the same bytes.
func TestPrintParseRoundtrip(t *testing.T) {
	module := &ir.Module{
		Name: "main",
		Body: []ir.Node{
			&ir.Func{
				Name:   "kernel",
				Params: []ir.Type{ir.PointerType{Elem: ir.FloatType{Bits: 32}}},
				Attrs:  ir.AttrMap{"gpu.kernel": ir.UnitAttr{}},
			},
			&ir.Global{
				Name:  "cst",
				Const: true,
				Type:  ir.ArrayType{Elem: ir.IntType{Bits: 8}, Count: 6},
				Data:  []byte{0x00, 0xDE, 0xAD, '"', '\\', 0x7F},
			},
			&ir.Module{
				Name:  "kernels",
				Attrs: ir.AttrMap{"gpu.kernel_module": ir.UnitAttr{}},
				Body: []ir.Node{
					&ir.Func{
						Name:  "kernel",
						Attrs: ir.AttrMap{"nvvm.cubin": ir.StringAttr("\x00\x01CUBIN\xFF")},
					},
				},
			},
		},
	}

	first := Print(module)
	reparsed, err := Parse(first)
	if err != nil {
		t.Fatalf("Parse of printed module failed: %v", err)
	}
	second := Print(reparsed)
	if first != second {
		t.Errorf("roundtrip changed output:\nfirst:\n%s\nsecond:\n%s", first, second)
	}

	// Byte payloads survive exactly.
	g, ok := reparsed.Lookup("cst").(*ir.Global)
	if !ok {
		t.Fatal("cst not found after roundtrip")
	}
	if !bytes.Equal(g.Data, []byte{0x00, 0xDE, 0xAD, '"', '\\', 0x7F}) {
		t.Errorf("cst data changed: %q", g.Data)
	}
	blob, _ := reparsed.Modules()[0].LookupFunc("kernel").Attrs.GetString("nvvm.cubin")
	if blob != "\x00\x01CUBIN\xFF" {
		t.Errorf("blob attr changed: %q", blob)
	}
}
