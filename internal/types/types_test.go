package types

import "testing"

func TestIdentical(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"same singleton", Int64, Int64, true},
		{"equal widths", &Builtin{Width: 32}, Int32, true},
		{"different widths", Int8, Int16, false},
		{"bool is one bit", Bool, &Builtin{Width: 1}, true},
		{"void", Void, &VoidType{}, true},
		{"void vs int", Void, Int64, false},
		{"lvalue same object", &LValue{Object: Int64}, &LValue{Object: Int64}, true},
		{"lvalue different object", &LValue{Object: Int64}, &LValue{Object: Bool}, false},
		{"lvalue vs object", &LValue{Object: Int64}, Int64, false},
		{
			"func equal",
			&Func{Params: []Type{Int64}, Result: Bool},
			&Func{Params: []Type{Int64}, Result: Bool},
			true,
		},
		{
			"func different arity",
			&Func{Params: []Type{Int64}, Result: Void},
			&Func{Params: []Type{Int64, Int64}, Result: Void},
			false,
		},
		{
			"func different result",
			&Func{Params: []Type{Int64}, Result: Void},
			&Func{Params: []Type{Int64}, Result: Int64},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identical(tt.a, tt.b); got != tt.want {
				t.Errorf("Identical(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDeref(t *testing.T) {
	lv := &LValue{Object: Int32}
	if got := Deref(lv); got != Int32 {
		t.Errorf("Deref(lvalue Int32) = %s", got)
	}
	if got := Deref(Int32); got != Int32 {
		t.Errorf("Deref(Int32) = %s", got)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		t    Type
		want string
	}{
		{Bool, "Bool"},
		{Int64, "Int64"},
		{Void, "Void"},
		{&LValue{Object: Bool}, "lvalue Bool"},
		{&Func{Params: []Type{Int64, Bool}, Result: Void}, "func(Int64, Bool) -> Void"},
		{&Func{Result: Int64}, "func() -> Int64"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
