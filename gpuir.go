// Package gpuir provides a pure Go toolchain for a GPU kernel IR.
//
// gpuir parses textual IR modules, promotes compiled kernel payloads into
// host-callable accessors, and prints the result in canonical textual form:
//
//	source := `
//	module @main {
//	  func @kernel(ptr<f32>)
//	  module @kernels attributes {gpu.kernel_module} {
//	    func @kernel(ptr<f32>) attributes {nvvm.cubin = "\7FELF\00\01"}
//	  }
//	}
//	`
//	out, diags, err := gpuir.Transform(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range diags {
//	    log.Println(d)
//	}
//
// The package provides a simple, high-level API for the whole pipeline as
// well as access to the individual stages via Parse, GenerateAccessors,
// Verify, and Print.
package gpuir

import (
	"fmt"

	"github.com/gogpu/gpuir/asm"
	"github.com/gogpu/gpuir/cubin"
	"github.com/gogpu/gpuir/ir"
)

// Options configures the transform pipeline.
type Options struct {
	// Verify enables module verification after accessor generation
	Verify bool
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		Verify: true,
	}
}

// Transform runs the full pipeline on source using default options.
//
// This is the simplest way to promote kernel payloads. For more control,
// use TransformWithOptions or the individual Parse, GenerateAccessors,
// Verify, and Print functions.
func Transform(source string) (string, []cubin.Diagnostic, error) {
	return TransformWithOptions(source, DefaultOptions())
}

// TransformWithOptions runs the full pipeline on source with custom options.
//
// The pipeline is:
//  1. Parse source text to a module
//  2. Generate accessors, consuming kernel modules
//  3. Verify the transformed module (if enabled)
//  4. Print the module in canonical form
//
// Diagnostics report kernels whose host stub is missing. They mark the
// run as failed, but the transformed module still prints, so callers can
// inspect how far the pass got.
func TransformWithOptions(source string, opts Options) (string, []cubin.Diagnostic, error) {
	module, err := Parse(source)
	if err != nil {
		return "", nil, err
	}

	diags, err := GenerateAccessors(module)
	if err != nil {
		return "", diags, fmt.Errorf("accessor generation error: %w", err)
	}

	if opts.Verify {
		verifyErrors, err := Verify(module)
		if err != nil {
			return "", diags, fmt.Errorf("verification error: %w", err)
		}
		if len(verifyErrors) > 0 {
			return "", diags, fmt.Errorf("verification failed: %w", &verifyErrors[0])
		}
	}

	return Print(module), diags, nil
}

// Parse parses IR source text into a module.
//
// This is the first stage of the pipeline. The module mirrors the source
// structure one to one; nothing is resolved or rewritten yet.
func Parse(source string) (*ir.Module, error) {
	lexer := asm.NewLexer(source)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, fmt.Errorf("tokenization error: %w", err)
	}

	parser := asm.NewParser(tokens)
	module, err := parser.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return module, nil
}

// GenerateAccessors promotes annotated kernel payloads in module and
// consumes the kernel modules that carried them.
//
// Returned diagnostics report kernels whose host stub is missing; a
// non-empty slice marks the run as failed even though the module stays
// usable. The error reports structural problems such as generated
// symbols colliding with existing ones.
func GenerateAccessors(module *ir.Module) ([]cubin.Diagnostic, error) {
	return cubin.GenerateAccessors(module)
}

// Verify checks an IR module for structural correctness.
//
// Verification checks include:
//   - Symbol uniqueness within each scope
//   - Nesting depth (kernel modules sit directly below the top level)
//   - Initializer sizes against declared types
//   - Return arity and types against function results
//
// Returns a slice of verification errors. If the slice is empty,
// verification passed.
func Verify(module *ir.Module) ([]ir.VerifyError, error) {
	return ir.Verify(module)
}

// Print returns the canonical textual form of module.
//
// Output is deterministic: body order is preserved, attribute keys are
// sorted, and payload bytes outside printable ASCII are hex-escaped.
func Print(module *ir.Module) string {
	return asm.Print(module)
}
