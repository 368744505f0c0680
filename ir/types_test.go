package ir

import (
	"testing"
)

func TestType_String(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{IntType{Bits: 8}, "i8"},
		{IntType{Bits: 32}, "i32"},
		{FloatType{Bits: 32}, "f32"},
		{PointerType{Elem: IntType{Bits: 8}}, "ptr<i8>"},
		{ArrayType{Elem: IntType{Bits: 8}, Count: 16}, "array<i8, 16>"},
		{PointerType{Elem: ArrayType{Elem: IntType{Bits: 8}, Count: 4}}, "ptr<array<i8, 4>>"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTypesEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"identical ints", IntType{Bits: 8}, IntType{Bits: 8}, true},
		{"different widths", IntType{Bits: 8}, IntType{Bits: 16}, false},
		{"int vs float", IntType{Bits: 32}, FloatType{Bits: 32}, false},
		{"pointers", PointerType{Elem: IntType{Bits: 8}}, PointerType{Elem: IntType{Bits: 8}}, true},
		{"pointer elems differ", PointerType{Elem: IntType{Bits: 8}}, PointerType{Elem: IntType{Bits: 32}}, false},
		{"arrays", ArrayType{Elem: IntType{Bits: 8}, Count: 4}, ArrayType{Elem: IntType{Bits: 8}, Count: 4}, true},
		{"array counts differ", ArrayType{Elem: IntType{Bits: 8}, Count: 4}, ArrayType{Elem: IntType{Bits: 8}, Count: 5}, false},
		{"both nil", nil, nil, true},
		{"one nil", IntType{Bits: 8}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypesEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("TypesEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := TypesEqual(tt.b, tt.a); got != tt.want {
				t.Errorf("TypesEqual(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}
