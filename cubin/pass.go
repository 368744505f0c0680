// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cubin

import (
	"fmt"

	"github.com/gogpu/gpuir/ir"
)

// Annotation keys shared with the device-side compilation pipeline.
const (
	// BlobAttr carries the compiled GPU binary on a kernel function.
	BlobAttr = "nvvm.cubin"

	// GetterAttr names the generated accessor on the promoted stub.
	GetterAttr = "nvvm.cubingetter"

	// KernelModuleAttr marks a nested module as a kernel container.
	KernelModuleAttr = "gpu.kernel_module"
)

// Pass registration strings for driver tooling.
const (
	PassName = "generate-cubin-accessors"
	PassDoc  = "Generate functions that give access to cubin data"
)

const (
	getterSuffix  = "_cubin"
	storageSuffix = "_cubin_cst"
)

// GetterName returns the accessor function name generated for a kernel.
func GetterName(kernel string) string {
	return kernel + getterSuffix
}

// StorageName returns the storage constant name generated for a kernel.
func StorageName(kernel string) string {
	return kernel + storageSuffix
}

// Diagnostic reports a kernel that could not be promoted.
type Diagnostic struct {
	Module  string // enclosing kernel module
	Func    string // payload-bearing kernel
	Message string
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	if d.Module != "" {
		return fmt.Sprintf("in module %s, func %s: %s", d.Module, d.Func, d.Message)
	}
	return fmt.Sprintf("in func %s: %s", d.Func, d.Message)
}

// generator holds the state of one promotion sweep.
type generator struct {
	module *ir.Module
	diags  []Diagnostic
}

// GenerateAccessors promotes every annotated kernel binary in module
// and removes the drained kernel modules.
//
// Diagnostics report kernels whose host stub is missing; those kernels
// are skipped but the sweep continues, and a non-empty slice marks the
// run failed. A non-nil error reports a malformed module or a
// generated-name collision and aborts the sweep where it stands.
func GenerateAccessors(module *ir.Module) ([]Diagnostic, error) {
	if module == nil {
		return nil, fmt.Errorf("module is nil")
	}

	g := &generator{module: module}

	// Modules() is a snapshot, so removing containers mid-loop is safe.
	for _, nested := range module.Modules() {
		if !nested.Attrs.HasUnit(KernelModuleAttr) {
			continue
		}
		for _, fn := range nested.Funcs() {
			blob, ok := fn.Attrs.GetString(BlobAttr)
			if !ok {
				continue
			}
			if err := g.promote(nested, fn, blob); err != nil {
				return g.diags, err
			}
		}
		// Drained whether or not any kernel carried a payload.
		if !module.Remove(nested) {
			return g.diags, fmt.Errorf("kernel module %s vanished during the sweep", nested.Name)
		}
	}

	return g.diags, nil
}

// promote synthesizes the storage constant and accessor for one kernel
// and annotates the host stub with the accessor symbol.
func (g *generator) promote(owner *ir.Module, kernel *ir.Func, blob string) error {
	stub := g.module.LookupFunc(kernel.Name)
	if stub == nil {
		g.diags = append(g.diags, Diagnostic{
			Module:  owner.Name,
			Func:    kernel.Name,
			Message: "corresponding external function not found in parent module",
		})
		return nil
	}

	getterName := GetterName(kernel.Name)
	storageName := StorageName(kernel.Name)

	// Both names are checked before either declaration is inserted, so
	// a collision leaves the parent module untouched.
	if g.module.SymbolInUse(getterName) {
		return fmt.Errorf("generated symbol %s already defined in parent module", getterName)
	}
	if g.module.SymbolInUse(storageName) {
		return fmt.Errorf("generated symbol %s already defined in parent module", storageName)
	}

	data := make([]byte, len(blob))
	copy(data, blob)
	storage := &ir.Global{
		Name:  storageName,
		Type:  ir.ArrayType{Elem: ir.IntType{Bits: 8}, Count: len(blob)},
		Const: true,
		Data:  data,
	}

	getter := &ir.Func{
		Name:   getterName,
		Result: ir.PointerType{Elem: ir.IntType{Bits: 8}},
		Body: ir.Block{
			ir.ReturnStmt{Value: ir.ElemPtrExpr{
				Base:    ir.AddrOfExpr{Symbol: storageName},
				Indices: []ir.Expr{ir.ConstIntExpr{Value: 0}, ir.ConstIntExpr{Value: 0}},
			}},
		},
	}

	if !g.module.InsertAfter(stub, getter) {
		return fmt.Errorf("stub %s vanished during the sweep", stub.Name)
	}
	if !g.module.InsertAfter(getter, storage) {
		return fmt.Errorf("accessor %s vanished during the sweep", getter.Name)
	}
	stub.Attrs.SetSymbol(GetterAttr, getterName)

	return nil
}
