// Package ir defines the intermediate representation for gpuir.
//
// The IR is designed to be:
//   - Small: Only the constructs that host-side GPU plumbing needs
//   - Positional: Module bodies are ordered, and order survives printing
//   - Mutable: Passes edit modules in place through surgery primitives
//
// # Structure
//
// The IR is organized around a Module type that contains a single ordered
// body of nodes:
//   - Func: Function declarations (stubs) and definitions
//   - Global: Module-scope byte constants with length-tracked contents
//   - Module: Nested symbol scopes, permitted below the top level only
//
// Modules, functions, and globals all carry an AttrMap of string-keyed
// annotations: presence markers, raw byte strings, and symbol references.
//
// # Transformation Pipeline
//
// The typical pipeline is:
//
//	Source text → asm.Parse → ir.Module → passes (cubin) → asm.Print
//
// Passes mutate the module through Lookup, InsertAfter, Remove, and the
// other surgery methods on Module. The listing methods (Funcs, Globals,
// Modules) return fresh slices, so a pass can mutate the body while
// ranging over a listing taken before the first edit.
//
// # References
//
// The module and attribute design follows the MLIR LLVM dialect:
//   - MLIR: https://mlir.llvm.org/docs/Dialects/LLVM/
//   - NVVM intrinsics: https://docs.nvidia.com/cuda/nvvm-ir-spec/
package ir
