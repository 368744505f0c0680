package ir

// Module represents a symbol scope in IR form.
//
// The top-level module of a translation unit may contain nested modules;
// nested modules may not. Body order is meaningful and survives printing.
type Module struct {
	// Name is the module's symbol name. Empty for anonymous modules.
	Name string

	// Attrs holds module-level annotations
	Attrs AttrMap

	// Body holds the module's declarations in order
	Body []Node
}

// SymbolName returns the module's symbol name.
func (m *Module) SymbolName() string { return m.Name }

func (*Module) node() {}

// Node is a declaration in a module body.
type Node interface {
	// SymbolName returns the declaration's symbol name, or "" if the
	// declaration is anonymous.
	SymbolName() string

	node()
}

// Func represents a function declaration or definition.
type Func struct {
	// Name is the function's symbol name
	Name string

	// Params holds the parameter types in order
	Params []Type

	// Result is the result type, or nil for none
	Result Type

	// Attrs holds function-level annotations
	Attrs AttrMap

	// Body holds the function body. A nil body marks an external
	// declaration (a stub); an empty non-nil body is a definition.
	Body Block
}

// SymbolName returns the function's symbol name.
func (f *Func) SymbolName() string { return f.Name }

// IsDecl reports whether the function is an external declaration
// without a body.
func (f *Func) IsDecl() bool { return f.Body == nil }

func (*Func) node() {}

// Global represents a module-scope global.
type Global struct {
	// Name is the global's symbol name
	Name string

	// Type is the global's value type
	Type Type

	// Const marks the global as immutable
	Const bool

	// Data holds the initializer bytes, or nil for none. The byte
	// length must match the type (an array<i8, N> holds N bytes).
	Data []byte

	// Attrs holds global-level annotations
	Attrs AttrMap
}

// SymbolName returns the global's symbol name.
func (g *Global) SymbolName() string { return g.Name }

func (*Global) node() {}
