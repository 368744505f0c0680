package ir

import "strconv"

// Type represents a value type in the IR.
type Type interface {
	typeKind()

	// String returns the canonical textual form of the type.
	String() string
}

// IntType represents an integer type.
type IntType struct {
	Bits uint8 // in bits
}

func (IntType) typeKind() {}

func (t IntType) String() string {
	return "i" + strconv.Itoa(int(t.Bits))
}

// FloatType represents a floating point type.
type FloatType struct {
	Bits uint8 // in bits
}

func (FloatType) typeKind() {}

func (t FloatType) String() string {
	return "f" + strconv.Itoa(int(t.Bits))
}

// PointerType represents a pointer to a value of another type.
type PointerType struct {
	Elem Type
}

func (PointerType) typeKind() {}

func (t PointerType) String() string {
	return "ptr<" + typeString(t.Elem) + ">"
}

// ArrayType represents a fixed-length array.
type ArrayType struct {
	Elem  Type
	Count int
}

func (ArrayType) typeKind() {}

func (t ArrayType) String() string {
	return "array<" + typeString(t.Elem) + ", " + strconv.Itoa(t.Count) + ">"
}

func typeString(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// TypesEqual reports whether two types are structurally identical.
// Two nil types are equal.
func TypesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch at := a.(type) {
	case IntType:
		bt, ok := b.(IntType)
		return ok && at == bt
	case FloatType:
		bt, ok := b.(FloatType)
		return ok && at == bt
	case PointerType:
		bt, ok := b.(PointerType)
		return ok && TypesEqual(at.Elem, bt.Elem)
	case ArrayType:
		bt, ok := b.(ArrayType)
		return ok && at.Count == bt.Count && TypesEqual(at.Elem, bt.Elem)
	}
	return false
}
