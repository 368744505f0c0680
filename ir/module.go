package ir

// Append adds nodes to the end of the module body.
func (m *Module) Append(nodes ...Node) {
	m.Body = append(m.Body, nodes...)
}

// Funcs returns the module's functions in body order. The slice is
// freshly allocated on every call, so callers may edit the body while
// ranging over a previously taken listing.
func (m *Module) Funcs() []*Func {
	var funcs []*Func
	for _, n := range m.Body {
		if f, ok := n.(*Func); ok {
			funcs = append(funcs, f)
		}
	}
	return funcs
}

// Globals returns the module's globals in body order in a freshly
// allocated slice.
func (m *Module) Globals() []*Global {
	var globals []*Global
	for _, n := range m.Body {
		if g, ok := n.(*Global); ok {
			globals = append(globals, g)
		}
	}
	return globals
}

// Modules returns the module's directly nested modules in body order in
// a freshly allocated slice.
func (m *Module) Modules() []*Module {
	var modules []*Module
	for _, n := range m.Body {
		if c, ok := n.(*Module); ok {
			modules = append(modules, c)
		}
	}
	return modules
}

// Lookup returns the first declaration in the module body named name,
// or nil if there is none. Anonymous declarations are never found.
func (m *Module) Lookup(name string) Node {
	if name == "" {
		return nil
	}
	for _, n := range m.Body {
		if n.SymbolName() == name {
			return n
		}
	}
	return nil
}

// LookupFunc returns the first function in the module body named name,
// or nil if there is none or the name belongs to another kind of
// declaration.
func (m *Module) LookupFunc(name string) *Func {
	f, _ := m.Lookup(name).(*Func)
	return f
}

// SymbolInUse reports whether any declaration in the module body is
// named name.
func (m *Module) SymbolInUse(name string) bool {
	return m.Lookup(name) != nil
}

// InsertAfter inserts node immediately after anchor in the module body.
// Anchor identity is pointer identity, not name equality. It reports
// whether anchor was found; the body is unchanged otherwise.
func (m *Module) InsertAfter(anchor, node Node) bool {
	for i, n := range m.Body {
		if n == anchor {
			m.Body = append(m.Body, nil)
			copy(m.Body[i+2:], m.Body[i+1:])
			m.Body[i+1] = node
			return true
		}
	}
	return false
}

// Remove removes node from the module body, comparing by pointer
// identity. It reports whether node was found; the body is unchanged
// otherwise.
func (m *Module) Remove(node Node) bool {
	for i, n := range m.Body {
		if n == node {
			m.Body = append(m.Body[:i], m.Body[i+1:]...)
			return true
		}
	}
	return false
}
