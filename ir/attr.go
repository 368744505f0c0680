package ir

// Attr is an annotation value attached to a module, function, or global.
type Attr interface {
	attrValue()
}

// UnitAttr is a presence-only annotation with no payload.
type UnitAttr struct{}

func (UnitAttr) attrValue() {}

// StringAttr is a raw byte-string annotation. The contents are arbitrary
// bytes, not required to be valid UTF-8.
type StringAttr string

func (StringAttr) attrValue() {}

// SymbolAttr is an annotation referencing another symbol by name.
type SymbolAttr string

func (SymbolAttr) attrValue() {}

// AttrMap holds string-keyed annotations. A nil AttrMap behaves like an
// empty one for reads; setters on a nil *AttrMap allocate the map.
type AttrMap map[string]Attr

// Has reports whether key is present, regardless of value kind.
func (m AttrMap) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// HasUnit reports whether key is present as a unit annotation.
func (m AttrMap) HasUnit(key string) bool {
	_, ok := m[key].(UnitAttr)
	return ok
}

// GetString returns the byte-string value for key. The second result is
// false if key is absent or holds another kind of value.
func (m AttrMap) GetString(key string) (string, bool) {
	v, ok := m[key].(StringAttr)
	return string(v), ok
}

// GetSymbol returns the referenced symbol name for key. The second
// result is false if key is absent or holds another kind of value.
func (m AttrMap) GetSymbol(key string) (string, bool) {
	v, ok := m[key].(SymbolAttr)
	return string(v), ok
}

// Set stores value under key, allocating the map if needed.
func (m *AttrMap) Set(key string, value Attr) {
	if *m == nil {
		*m = make(AttrMap)
	}
	(*m)[key] = value
}

// SetUnit stores a presence-only annotation under key.
func (m *AttrMap) SetUnit(key string) {
	m.Set(key, UnitAttr{})
}

// SetString stores a byte-string annotation under key.
func (m *AttrMap) SetString(key, value string) {
	m.Set(key, StringAttr(value))
}

// SetSymbol stores a symbol-reference annotation under key.
func (m *AttrMap) SetSymbol(key, symbol string) {
	m.Set(key, SymbolAttr(symbol))
}
