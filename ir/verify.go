package ir

import (
	"fmt"
)

// VerifyError represents a structural error found in a module.
type VerifyError struct {
	Message string
	// Optional context
	Module string
	Symbol string
}

// Error implements the error interface.
func (e VerifyError) Error() string {
	if e.Module != "" {
		if e.Symbol != "" {
			return fmt.Sprintf("in module %s, symbol %s: %s", e.Module, e.Symbol, e.Message)
		}
		return fmt.Sprintf("in module %s: %s", e.Module, e.Message)
	}
	if e.Symbol != "" {
		return fmt.Sprintf("in symbol %s: %s", e.Symbol, e.Message)
	}
	return e.Message
}

// Verifier checks IR modules for structural correctness.
type Verifier struct {
	module  *Module
	errors  []VerifyError
	context verifyContext
}

// verifyContext holds current verification context.
type verifyContext struct {
	scope      *Module
	moduleName string
	symbolName string
}

// Verify checks the IR module for correctness.
// Returns verification errors if any, or nil if the module is valid.
func Verify(module *Module) ([]VerifyError, error) {
	if module == nil {
		return nil, fmt.Errorf("module is nil")
	}

	v := &Verifier{
		module: module,
		errors: make([]VerifyError, 0),
	}

	v.VerifyModule()

	if len(v.errors) > 0 {
		return v.errors, nil
	}
	return nil, nil
}

// VerifyModule verifies the complete module.
func (v *Verifier) VerifyModule() {
	v.verifyScope(v.module, true)
}

// verifyScope verifies one module body. Nested modules are only legal
// directly below the top level.
func (v *Verifier) verifyScope(scope *Module, top bool) {
	v.context.scope = scope
	if top {
		v.context.moduleName = ""
	} else {
		v.context.moduleName = scope.Name
	}
	v.context.symbolName = ""

	seen := make(map[string]bool)
	for _, node := range scope.Body {
		if name := node.SymbolName(); name != "" {
			if seen[name] {
				v.addError(fmt.Sprintf("duplicate symbol %s", name))
			}
			seen[name] = true
		}

		switch n := node.(type) {
		case *Func:
			v.verifyFunc(n)
		case *Global:
			v.verifyGlobal(n)
		case *Module:
			if !top {
				v.addError(fmt.Sprintf("nested module %s below the top level", n.Name))
				continue
			}
			v.verifyScope(n, false)
			v.context.scope = scope
			v.context.moduleName = ""
		}
	}
}

// verifyGlobal validates a single global declaration.
func (v *Verifier) verifyGlobal(g *Global) {
	v.context.symbolName = g.Name
	defer func() { v.context.symbolName = "" }()

	if g.Type == nil {
		v.addErrorInSymbol("global has nil type")
		return
	}

	if g.Data == nil {
		if g.Const {
			v.addErrorInSymbol("constant global has no initializer")
		}
		return
	}

	arr, ok := g.Type.(ArrayType)
	if !ok {
		v.addErrorInSymbol(fmt.Sprintf("byte initializer requires an array type, got %s", g.Type))
		return
	}
	if !TypesEqual(arr.Elem, IntType{Bits: 8}) {
		v.addErrorInSymbol(fmt.Sprintf("byte initializer requires array<i8, N>, got element %s", typeString(arr.Elem)))
		return
	}
	if arr.Count != len(g.Data) {
		v.addErrorInSymbol(fmt.Sprintf("initializer holds %d bytes but type holds %d", len(g.Data), arr.Count))
	}
}

// verifyFunc validates a single function declaration or definition.
func (v *Verifier) verifyFunc(f *Func) {
	v.context.symbolName = f.Name
	defer func() { v.context.symbolName = "" }()

	for i, p := range f.Params {
		if p == nil {
			v.addErrorInSymbol(fmt.Sprintf("parameter %d has nil type", i))
		}
	}

	if f.IsDecl() {
		return
	}

	if len(f.Body) == 0 {
		v.addErrorInSymbol("missing return")
		return
	}
	for i, stmt := range f.Body {
		ret, ok := stmt.(ReturnStmt)
		if !ok {
			v.addErrorInSymbol(fmt.Sprintf("statement %d has unknown kind", i))
			continue
		}
		if i != len(f.Body)-1 {
			v.addErrorInSymbol("unreachable statements after return")
		}
		v.verifyReturn(f, ret)
	}
}

// verifyReturn checks a return statement against the function result.
func (v *Verifier) verifyReturn(f *Func, ret ReturnStmt) {
	if f.Result == nil {
		if ret.Value != nil {
			v.addErrorInSymbol("returns a value but function has no result")
		}
		return
	}
	if ret.Value == nil {
		v.addErrorInSymbol(fmt.Sprintf("missing return value of type %s", f.Result))
		return
	}
	t, ok := v.exprType(ret.Value)
	if ok && !TypesEqual(t, f.Result) {
		v.addErrorInSymbol(fmt.Sprintf("return type mismatch: got %s, want %s", t, f.Result))
	}
}

// exprType computes the type of an expression. The second result is
// false if the expression is invalid; the error is already recorded.
func (v *Verifier) exprType(e Expr) (Type, bool) {
	switch expr := e.(type) {
	case ConstIntExpr:
		return IntType{Bits: 64}, true

	case AddrOfExpr:
		g := v.lookupGlobal(expr.Symbol)
		if g == nil {
			v.addErrorInSymbol(fmt.Sprintf("address of unknown global %s", expr.Symbol))
			return nil, false
		}
		if g.Type == nil {
			return nil, false
		}
		return PointerType{Elem: g.Type}, true

	case ElemPtrExpr:
		base, ok := v.exprType(expr.Base)
		if !ok {
			return nil, false
		}
		ptr, ok := base.(PointerType)
		if !ok {
			v.addErrorInSymbol(fmt.Sprintf("element address base must be a pointer, got %s", base))
			return nil, false
		}
		if len(expr.Indices) == 0 {
			v.addErrorInSymbol("element address requires at least one index")
			return nil, false
		}
		for _, idx := range expr.Indices {
			t, ok := v.exprType(idx)
			if !ok {
				return nil, false
			}
			if _, isInt := t.(IntType); !isInt {
				v.addErrorInSymbol(fmt.Sprintf("element address index must be an integer, got %s", t))
				return nil, false
			}
		}
		// The first index steps the base pointer; each further index
		// steps into the pointed-to aggregate.
		cur := ptr.Elem
		for range expr.Indices[1:] {
			arr, ok := cur.(ArrayType)
			if !ok {
				v.addErrorInSymbol(fmt.Sprintf("element address steps into non-array type %s", typeString(cur)))
				return nil, false
			}
			cur = arr.Elem
		}
		return PointerType{Elem: cur}, true
	}

	v.addErrorInSymbol("expression has unknown kind")
	return nil, false
}

// lookupGlobal resolves a global reference against the enclosing scope
// first and the top-level module second.
func (v *Verifier) lookupGlobal(name string) *Global {
	if v.context.scope != nil {
		if g, ok := v.context.scope.Lookup(name).(*Global); ok {
			return g
		}
	}
	if v.context.scope != v.module {
		if g, ok := v.module.Lookup(name).(*Global); ok {
			return g
		}
	}
	return nil
}

func (v *Verifier) addError(msg string) {
	v.errors = append(v.errors, VerifyError{
		Message: msg,
		Module:  v.context.moduleName,
	})
}

func (v *Verifier) addErrorInSymbol(msg string) {
	v.errors = append(v.errors, VerifyError{
		Message: msg,
		Module:  v.context.moduleName,
		Symbol:  v.context.symbolName,
	})
}
