package ir

// Expr represents an expression in a function body.
type Expr interface {
	exprKind()
}

// ConstIntExpr is an integer literal.
type ConstIntExpr struct {
	Value int64
}

func (ConstIntExpr) exprKind() {}

// AddrOfExpr takes the address of a module-scope global, yielding a
// pointer to the global's value type.
type AddrOfExpr struct {
	Symbol string
}

func (AddrOfExpr) exprKind() {}

// ElemPtrExpr computes an element address from a base pointer and a list
// of constant indices, following the LLVM getelementptr model: the first
// index steps the base pointer itself, each further index steps into the
// pointed-to aggregate.
type ElemPtrExpr struct {
	Base    Expr
	Indices []Expr
}

func (ElemPtrExpr) exprKind() {}
