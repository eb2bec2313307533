// Package sem defines the semantic type lattice and symbol table that a
// decorated syntax tree carries into the lowering pass. The lexer, parser,
// and name resolver that populate these values live outside this module;
// sem only describes the shapes they produce.
package sem

import "fmt"

// Type is one of the four type classes the lowering pass inspects: Meta
// (scalar int), Array, Struct, Func.
type Type interface {
	implType()
	String() string
}

// Meta is the scalar integer base type.
type Meta struct{}

// Array is a (possibly multi-dimensional) array type. Lens holds the
// declared length of each dimension, outermost first.
type Array struct {
	Elem Type
	Rank int
	Lens []int
}

// Struct is a record type; Members preserves declaration order, which
// member-offset computation depends on.
type Struct struct {
	Name    string
	Members []*Symbol
}

// Func is a function's signature: its formal parameters and return type.
type Func struct {
	Args   []*Symbol
	Return Type
}

func (Meta) implType()   {}
func (Array) implType()  {}
func (Struct) implType() {}
func (Func) implType()   {}

func (Meta) String() string { return "int" }

func (a Array) String() string {
	s := a.Elem.String()
	for i := 0; i < a.Rank; i++ {
		n := 0
		if i < len(a.Lens) {
			n = a.Lens[i]
		}
		s = fmt.Sprintf("%s[%d]", s, n)
	}
	return s
}

func (s Struct) String() string {
	if s.Name != "" {
		return "struct " + s.Name
	}
	return "struct"
}

func (f Func) String() string {
	return fmt.Sprintf("func(%d args) -> %s", len(f.Args), f.Return)
}

// elementCount returns the total number of scalar elements addressed by an
// array type, i.e. the product of its dimension lengths.
func elementCount(a Array) int {
	n := 1
	for i := 0; i < a.Rank; i++ {
		if i < len(a.Lens) {
			n *= a.Lens[i]
		}
	}
	return n
}

// elemBase returns the type of a single element of the array's innermost
// dimension (the non-array base type).
func elemBase(a Array) Type {
	return a.Elem
}

// Sizeof returns the byte size of t: 4 for a scalar, element size times
// total element count for an array, and the sum of member sizes for a
// struct (this language's struct layout has no padding).
func Sizeof(t Type) int {
	switch tp := t.(type) {
	case Meta:
		return 4
	case Array:
		return Sizeof(elemBase(tp)) * elementCount(tp)
	case Struct:
		total := 0
		for _, m := range tp.Members {
			total += Sizeof(m.Type)
		}
		return total
	case Func:
		panic("sem: sizeof of function type is undefined")
	}
	panic(fmt.Sprintf("sem: sizeof of unknown type %T", t))
}

// ElementType returns the type obtained by indexing once into t (an Array),
// i.e. the element type after dropping one rank of dimensions.
func ElementType(t Type) Type {
	a, ok := t.(Array)
	if !ok {
		panic(fmt.Sprintf("sem: cannot index non-array type %T", t))
	}
	if a.Rank <= 1 {
		return a.Elem
	}
	lens := a.Lens
	if len(lens) > 0 {
		lens = lens[1:]
	}
	return Array{Elem: a.Elem, Rank: a.Rank - 1, Lens: lens}
}

// MemberOffset returns the byte offset of the field named name within
// struct type t, by summing the sizes of the members declared before it.
func MemberOffset(t Struct, name string) int {
	offset := 0
	for _, m := range t.Members {
		if m.Name == name {
			return offset
		}
		offset += Sizeof(m.Type)
	}
	panic(fmt.Sprintf("sem: struct %s has no member %q", t.Name, name))
}

// Member looks up a member symbol by name within struct type t.
func Member(t Struct, name string) *Symbol {
	for _, m := range t.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}
