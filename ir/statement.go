package ir

// Stmt represents a statement in a function body.
// Statements have side effects and do not produce values.
type Stmt interface {
	stmtKind()
}

// Block represents a sequence of statements executed in order.
//
// A nil Block on a Func marks an external declaration; an empty non-nil
// Block is a definition with no statements.
type Block []Stmt

// ReturnStmt returns from the enclosing function with an optional value.
type ReturnStmt struct {
	Value Expr // nil for functions without a result
}

func (ReturnStmt) stmtKind() {}
