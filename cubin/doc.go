// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package cubin promotes embedded GPU binaries out of kernel modules.
//
// After device-side compilation, each kernel lives in a nested module
// marked gpu.kernel_module, with the compiled binary attached to the
// kernel function as the nvvm.cubin byte-string attribute. The host
// module holds a same-named external stub per kernel. This pass moves
// every binary into host-visible form and drains the nested modules:
//
//   - a constant <kernel>_cubin_cst holding the exact bytes
//   - an accessor <kernel>_cubin() -> ptr<i8> returning the address of
//     the first byte
//   - the nvvm.cubingetter attribute on the stub, naming the accessor
//
// Both generated declarations are inserted directly after the stub, in
// the order accessor then constant. Each processed kernel module is
// removed afterwards, whether or not it contained any annotated
// kernels. Unmarked nested modules are left untouched.
//
// # Basic Usage
//
//	diags, err := cubin.GenerateAccessors(module)
//	if err != nil {
//	    // malformed input or generated-name collision; module may be
//	    // partially rewritten
//	}
//	if len(diags) > 0 {
//	    // some kernels had no host stub; they were skipped
//	}
//
// A kernel without a matching host stub produces a Diagnostic and marks
// the run failed, but the sweep continues so one bad kernel cannot hide
// the rest. Running the pass on its own output is a no-op.
package cubin
