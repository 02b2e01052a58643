package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructurallyEqualIgnoresCommutativity(t *testing.T) {
	x := &Value{Name: "x", Type: &IntType{Bits: 32}}
	y := &Value{Name: "y", Type: &IntType{Bits: 32}}
	a := Binary(OpAdd, &IntType{Bits: 32}, x, y)
	b := Binary(OpAdd, &IntType{Bits: 32}, y, x)
	assert.False(t, a.StructurallyEqual(b))

	c := Binary(OpAdd, &IntType{Bits: 32}, x, y)
	assert.True(t, a.StructurallyEqual(c))
}

func TestEraseFromParentIsIdempotent(t *testing.T) {
	fn := NewFunction("f", &VoidType{})
	b := fn.AddBlock("entry")
	x := fn.AddParam("x", &IntType{Bits: 32})
	inst := b.Append(Binary(OpAdd, &IntType{Bits: 32}, x, x))

	inst.EraseFromParent()
	assert.False(t, inst.Parented())
	assert.NotPanics(t, func() { inst.EraseFromParent() })
}

func TestReplaceAllUsesWithRedirectsOperands(t *testing.T) {
	fn := NewFunction("f", &VoidType{})
	b := fn.AddBlock("entry")
	x := fn.AddParam("x", &IntType{Bits: 32})
	a := b.Append(Binary(OpAdd, &IntType{Bits: 32}, x, x))
	r := b.Append(Ret(a.Result))

	y := &Value{Name: "y", Type: &IntType{Bits: 32}}
	a.Result.ReplaceAllUsesWith(y)

	assert.Equal(t, y, r.Operands[0])
	assert.False(t, a.Result.HasUses())
}
