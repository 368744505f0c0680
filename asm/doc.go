// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package asm provides the textual form of gpuir modules.
//
// The syntax is a small MLIR-flavored assembly with one top-level module
// per source text:
//
//	module @main {
//	  func @kernel(ptr<f32>) attributes {nvvm.cubin = "CUBIN"}
//	  global constant @table : array<i8, 2> = "\00\01"
//	  module @kernels attributes {gpu.kernel_module} {
//	    func @kernel(ptr<f32>)
//	  }
//	}
//
// # Basic Usage
//
//	mod, err := asm.Parse(source)
//	...
//	text := asm.Print(mod)
//
// # Canonical Form
//
// Print emits a canonical form: two-space indentation, one declaration
// per line, attribute keys in sorted order, and bytes outside printable
// ASCII escaped as \HH with uppercase hex digits. Printing is a pure
// function of module structure, so structurally equal modules print
// byte-identically, and Parse(Print(m)) reproduces m.
//
// # String Escapes
//
// String literals carry arbitrary bytes, including NUL. The reader
// accepts \\, \", and \HH (any hex case); the printer emits the shortest
// of these forms.
package asm
