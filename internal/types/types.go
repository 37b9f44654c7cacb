package types

import (
	"fmt"
	"strings"
)

// Type is the interface implemented by all Sable semantic types.
type Type interface {
	String() string
	typeNode()
}

// Builtin is a fixed-width builtin integer type. Width 1 is the
// boolean-equivalent type used for conditions.
type Builtin struct {
	Width int
}

func (t *Builtin) String() string {
	if t.Width == 1 {
		return "Bool"
	}
	return fmt.Sprintf("Int%d", t.Width)
}

func (*Builtin) typeNode() {}

// VoidType is the unit type of statements and value-less returns.
type VoidType struct{}

func (*VoidType) String() string { return "Void" }
func (*VoidType) typeNode()      {}

// LValue is the type of an expression denoting a storage location. Reading
// the location yields a value of the Object type.
type LValue struct {
	Object Type
}

func (t *LValue) String() string { return "lvalue " + t.Object.String() }
func (*LValue) typeNode()        {}

// Func is a function type.
type Func struct {
	Params []Type
	Result Type
}

func (t *Func) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("func(%s) -> %s", strings.Join(params, ", "), t.Result)
}

func (*Func) typeNode() {}

// Builtin singletons. Bool aliases the one-bit integer type.
var (
	Int1  = &Builtin{Width: 1}
	Int8  = &Builtin{Width: 8}
	Int16 = &Builtin{Width: 16}
	Int32 = &Builtin{Width: 32}
	Int64 = &Builtin{Width: 64}
	Bool  = Int1
	Void  = &VoidType{}
)

// Identical reports whether two types are structurally equal.
func Identical(a, b Type) bool {
	if a == b {
		return true
	}
	switch at := a.(type) {
	case *Builtin:
		bt, ok := b.(*Builtin)
		return ok && at.Width == bt.Width
	case *VoidType:
		_, ok := b.(*VoidType)
		return ok
	case *LValue:
		bt, ok := b.(*LValue)
		return ok && Identical(at.Object, bt.Object)
	case *Func:
		bt, ok := b.(*Func)
		if !ok || len(at.Params) != len(bt.Params) {
			return false
		}
		for i := range at.Params {
			if !Identical(at.Params[i], bt.Params[i]) {
				return false
			}
		}
		return Identical(at.Result, bt.Result)
	}
	return false
}

// IsLValue reports whether t is an addressable reference type.
func IsLValue(t Type) bool {
	_, ok := t.(*LValue)
	return ok
}

// Deref returns the object type of an l-value, or t unchanged otherwise.
func Deref(t Type) Type {
	if lv, ok := t.(*LValue); ok {
		return lv.Object
	}
	return t
}
