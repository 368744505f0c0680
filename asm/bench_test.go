// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package asm

import (
	"runtime"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Test module sources for lexer/parser benchmarks
// ---------------------------------------------------------------------------

const benchModuleSmall = `
module @app {
  func @saxpy(ptr<f32>, ptr<f32>, f32)
  module @saxpy_kernel attributes {gpu.kernel_module} {
    func @saxpy(ptr<f32>, ptr<f32>, f32) attributes {nvvm.cubin = "CUBIN"}
  }
}
`

const benchModuleMedium = `
module @app {
  global constant @lut : array<i8, 8> = "\00\01\02\03\04\05\06\07"
  func @reduce(ptr<f32>, i32) -> f32
  func @scan(ptr<i32>, i32)
  func @transpose(ptr<f32>, ptr<f32>, i32, i32)
  module @reduce_kernel attributes {gpu.kernel_module} {
    func @reduce(ptr<f32>, i32) -> f32 attributes {nvvm.cubin = "\7FELF\00\01\02"}
  }
  module @scan_kernel attributes {gpu.kernel_module} {
    func @scan(ptr<i32>, i32) attributes {nvvm.cubin = "\7FELF\10\11\12"}
  }
  module @transpose_kernel attributes {gpu.kernel_module} {
    func @transpose(ptr<f32>, ptr<f32>, i32, i32) attributes {nvvm.cubin = "\7FELF\20\21\22"}
  }
}
`

// benchModuleLarge carries a multi-kilobyte escaped payload, the shape
// a real embedded GPU binary takes after printing.
var benchModuleLarge = `
module @app {
  func @gemm(ptr<f32>, ptr<f32>, ptr<f32>, i32, i32, i32)
  module @gemm_kernel attributes {gpu.kernel_module} {
    func @gemm(ptr<f32>, ptr<f32>, ptr<f32>, i32, i32, i32) attributes {nvvm.cubin = "` +
	strings.Repeat(`\7F\45\4C\46\00\DE\AD\BE\EF\FF`, 512) + `"}
  }
}
`

type benchCase struct {
	name   string
	source string
}

var benchModules = []benchCase{
	{"small", benchModuleSmall},
	{"medium", benchModuleMedium},
	{"large", benchModuleLarge},
}

// ---------------------------------------------------------------------------
// Lexer benchmarks
// ---------------------------------------------------------------------------

// BenchmarkLex benchmarks tokenization throughput for modules of
// different sizes. Reports bytes/sec for comparing across sizes.
func BenchmarkLex(b *testing.B) {
	for _, bc := range benchModules {
		b.Run(bc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(bc.source)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				lexer := NewLexer(bc.source)
				tokens, err := lexer.Tokenize()
				if err != nil {
					b.Fatalf("tokenize failed: %v", err)
				}
				runtime.KeepAlive(tokens)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Parser benchmarks
// ---------------------------------------------------------------------------

// BenchmarkParse benchmarks parsing throughput (tokens to IR) for
// modules of different sizes.
func BenchmarkParse(b *testing.B) {
	for _, bc := range benchModules {
		b.Run(bc.name, func(b *testing.B) {
			// Pre-tokenize so we only measure parsing
			lexer := NewLexer(bc.source)
			tokens, err := lexer.Tokenize()
			if err != nil {
				b.Fatalf("tokenize failed: %v", err)
			}

			b.ReportAllocs()
			b.SetBytes(int64(len(bc.source)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				parser := NewParser(tokens)
				module, pErr := parser.Parse()
				if pErr != nil {
					b.Fatalf("parse failed: %v", pErr)
				}
				runtime.KeepAlive(module)
			}
		})
	}
}

// BenchmarkLexAndParse benchmarks the combined lex+parse pipeline
// to measure total frontend throughput.
func BenchmarkLexAndParse(b *testing.B) {
	for _, bc := range benchModules {
		b.Run(bc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(bc.source)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				module, err := Parse(bc.source)
				if err != nil {
					b.Fatalf("parse failed: %v", err)
				}
				runtime.KeepAlive(module)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Printer benchmarks
// ---------------------------------------------------------------------------

// BenchmarkPrint benchmarks canonical printing throughput.
func BenchmarkPrint(b *testing.B) {
	for _, bc := range benchModules {
		b.Run(bc.name, func(b *testing.B) {
			module, err := Parse(bc.source)
			if err != nil {
				b.Fatalf("parse failed: %v", err)
			}

			b.ReportAllocs()
			b.SetBytes(int64(len(bc.source)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				text := Print(module)
				runtime.KeepAlive(text)
			}
		})
	}
}
