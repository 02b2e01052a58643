package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDominatorTreeDiamond(t *testing.T) {
	fn := NewFunction("f", &VoidType{})
	entry := fn.AddBlock("entry")
	left := fn.AddBlock("left")
	right := fn.AddBlock("right")
	join := fn.AddBlock("join")

	cond := fn.AddParam("c", &IntType{Bits: 1})
	entry.Append(Br(cond, left, right))
	left.Append(Jump(join))
	right.Append(Jump(join))
	join.Append(Ret(nil))
	fn.ConnectCFG()

	dt := BuildDominatorTree(fn)
	assert.True(t, dt.DominatesBlock(entry, join))
	assert.True(t, dt.DominatesBlock(entry, left))
	assert.False(t, dt.DominatesBlock(left, join))
	assert.False(t, dt.DominatesBlock(right, join))

	var order []string
	dt.WalkDepthFirst(func(b *BasicBlock) { order = append(order, b.Label) })
	assert.Equal(t, "entry", order[0])
}

func TestDominatesInstructionSameBlock(t *testing.T) {
	fn := NewFunction("f", &VoidType{})
	b := fn.AddBlock("entry")
	x := fn.AddParam("x", &IntType{Bits: 32})
	a := b.Append(Binary(OpAdd, &IntType{Bits: 32}, x, x))
	r := b.Append(Ret(a.Result))
	fn.ConnectCFG()

	dt := BuildDominatorTree(fn)
	assert.True(t, dt.DominatesInstruction(a, r))
	assert.False(t, dt.DominatesInstruction(r, a))
}
