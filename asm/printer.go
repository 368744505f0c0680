// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package asm

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gogpu/gpuir/ir"
)

// Print returns the canonical textual form of the module.
//
// The output is a pure function of module structure: declarations in
// body order, attribute keys sorted, two-space indentation, and all
// bytes outside printable ASCII escaped as \HH. Structurally equal
// modules print byte-identically.
func Print(module *ir.Module) string {
	w := &Writer{}
	w.module(module)
	return w.out.String()
}

// Writer emits the canonical textual form of IR constructs.
type Writer struct {
	out    strings.Builder
	indent int
}

func (w *Writer) module(m *ir.Module) {
	w.writeIndent()
	w.out.WriteString("module")
	if m.Name != "" {
		w.out.WriteString(" @")
		w.out.WriteString(m.Name)
	}
	w.attrs(m.Attrs)
	w.out.WriteString(" {\n")
	w.pushIndent()
	for _, node := range m.Body {
		switch n := node.(type) {
		case *ir.Func:
			w.function(n)
		case *ir.Global:
			w.global(n)
		case *ir.Module:
			w.module(n)
		}
	}
	w.popIndent()
	w.writeLine("}")
}

func (w *Writer) function(f *ir.Func) {
	w.writeIndent()
	w.out.WriteString("func @")
	w.out.WriteString(f.Name)
	w.out.WriteByte('(')
	for i, param := range f.Params {
		if i > 0 {
			w.out.WriteString(", ")
		}
		w.out.WriteString(typeName(param))
	}
	w.out.WriteByte(')')
	if f.Result != nil {
		w.out.WriteString(" -> ")
		w.out.WriteString(typeName(f.Result))
	}
	w.attrs(f.Attrs)
	if f.IsDecl() {
		w.out.WriteByte('\n')
		return
	}
	w.out.WriteString(" {\n")
	w.pushIndent()
	for _, stmt := range f.Body {
		w.statement(stmt)
	}
	w.popIndent()
	w.writeLine("}")
}

func (w *Writer) global(g *ir.Global) {
	w.writeIndent()
	w.out.WriteString("global ")
	if g.Const {
		w.out.WriteString("constant ")
	}
	w.out.WriteByte('@')
	w.out.WriteString(g.Name)
	w.out.WriteString(" : ")
	w.out.WriteString(typeName(g.Type))
	if g.Data != nil {
		w.out.WriteString(" = \"")
		writeEscaped(&w.out, g.Data)
		w.out.WriteByte('"')
	}
	w.attrs(g.Attrs)
	w.out.WriteByte('\n')
}

func (w *Writer) statement(s ir.Stmt) {
	switch stmt := s.(type) {
	case ir.ReturnStmt:
		w.writeIndent()
		w.out.WriteString("return")
		if stmt.Value != nil {
			w.out.WriteByte(' ')
			w.expression(stmt.Value)
		}
		w.out.WriteByte('\n')
	}
}

func (w *Writer) expression(e ir.Expr) {
	switch expr := e.(type) {
	case ir.ConstIntExpr:
		w.out.WriteString(strconv.FormatInt(expr.Value, 10))
	case ir.AddrOfExpr:
		w.out.WriteString("addr_of(@")
		w.out.WriteString(expr.Symbol)
		w.out.WriteByte(')')
	case ir.ElemPtrExpr:
		w.out.WriteString("elem_ptr(")
		w.expression(expr.Base)
		for _, idx := range expr.Indices {
			w.out.WriteString(", ")
			w.expression(idx)
		}
		w.out.WriteByte(')')
	}
}

// attrs writes an attributes block with keys in sorted order. Empty
// maps are omitted entirely.
func (w *Writer) attrs(m ir.AttrMap) {
	if len(m) == 0 {
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w.out.WriteString(" attributes {")
	for i, k := range keys {
		if i > 0 {
			w.out.WriteString(", ")
		}
		w.out.WriteString(k)
		switch v := m[k].(type) {
		case ir.UnitAttr:
		case ir.StringAttr:
			w.out.WriteString(" = \"")
			writeEscaped(&w.out, []byte(v))
			w.out.WriteByte('"')
		case ir.SymbolAttr:
			w.out.WriteString(" = @")
			w.out.WriteString(string(v))
		}
	}
	w.out.WriteByte('}')
}

// writeLine writes an indented line.
func (w *Writer) writeLine(format string, args ...any) {
	w.writeIndent()
	if len(args) == 0 {
		w.out.WriteString(format)
	} else {
		fmt.Fprintf(&w.out, format, args...)
	}
	w.out.WriteByte('\n')
}

// writeIndent writes the current indentation.
func (w *Writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.out.WriteString("  ")
	}
}

// pushIndent increases indentation.
func (w *Writer) pushIndent() {
	w.indent++
}

// popIndent decreases indentation.
func (w *Writer) popIndent() {
	if w.indent > 0 {
		w.indent--
	}
}

const hexDigits = "0123456789ABCDEF"

// writeEscaped writes string contents with bytes outside printable
// ASCII escaped as \HH. Quotes and backslashes get their short forms.
func writeEscaped(out *strings.Builder, data []byte) {
	for _, b := range data {
		switch {
		case b == '"':
			out.WriteString(`\"`)
		case b == '\\':
			out.WriteString(`\\`)
		case b >= 0x20 && b <= 0x7E:
			out.WriteByte(b)
		default:
			out.WriteByte('\\')
			out.WriteByte(hexDigits[b>>4])
			out.WriteByte(hexDigits[b&0x0F])
		}
	}
}

func typeName(t ir.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
