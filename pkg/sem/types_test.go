package sem

import "testing"

func TestSizeofScalar(t *testing.T) {
	if got := Sizeof(Meta{}); got != 4 {
		t.Errorf("Sizeof(Meta{}) = %d, want 4", got)
	}
}

func TestSizeofArray(t *testing.T) {
	tests := []struct {
		name string
		arr  Array
		want int
	}{
		{"int[10]", Array{Elem: Meta{}, Rank: 1, Lens: []int{10}}, 40},
		{"int[3][4]", Array{Elem: Meta{}, Rank: 2, Lens: []int{3, 4}}, 48},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sizeof(tt.arr); got != tt.want {
				t.Errorf("Sizeof(%v) = %d, want %d", tt.arr, got, tt.want)
			}
		})
	}
}

func TestSizeofStruct(t *testing.T) {
	st := Struct{Name: "point", Members: []*Symbol{
		{Name: "x", Type: Meta{}},
		{Name: "y", Type: Meta{}},
		{Name: "tag", Type: Array{Elem: Meta{}, Rank: 1, Lens: []int{2}}},
	}}
	if got := Sizeof(st); got != 16 {
		t.Errorf("Sizeof(point) = %d, want 16", got)
	}
}

func TestMemberOffset(t *testing.T) {
	st := Struct{Name: "point", Members: []*Symbol{
		{Name: "x", Type: Meta{}},
		{Name: "y", Type: Meta{}},
		{Name: "z", Type: Meta{}},
	}}
	tests := []struct {
		field string
		want  int
	}{
		{"x", 0},
		{"y", 4},
		{"z", 8},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := MemberOffset(st, tt.field); got != tt.want {
				t.Errorf("MemberOffset(%s) = %d, want %d", tt.field, got, tt.want)
			}
		})
	}
}

func TestElementType(t *testing.T) {
	arr2d := Array{Elem: Meta{}, Rank: 2, Lens: []int{3, 4}}
	elem := ElementType(arr2d)
	want := Array{Elem: Meta{}, Rank: 1, Lens: []int{4}}
	got, ok := elem.(Array)
	if !ok || got.Rank != want.Rank || got.Lens[0] != want.Lens[0] {
		t.Errorf("ElementType(int[3][4]) = %#v, want %#v", elem, want)
	}

	arr1d := Array{Elem: Meta{}, Rank: 1, Lens: []int{10}}
	if _, ok := ElementType(arr1d).(Meta); !ok {
		t.Errorf("ElementType(int[10]) = %#v, want Meta", ElementType(arr1d))
	}
}

func TestSymbolTableShadowing(t *testing.T) {
	root := NewSymbolTable(nil)
	root.Add(&Symbol{Name: "a", Type: Meta{}})

	inner := NewSymbolTable(root)
	inner.Add(&Symbol{Name: "a", Type: Array{Elem: Meta{}, Rank: 1, Lens: []int{4}}})

	if _, ok := inner.Find("a").Type.(Array); !ok {
		t.Error("inner scope should shadow outer symbol named a")
	}
	if _, ok := root.Find("a").Type.(Meta); !ok {
		t.Error("outer scope symbol a should be untouched")
	}
	if inner.FindOnly("missing") != nil {
		t.Error("FindOnly should not search parent scopes")
	}
}
