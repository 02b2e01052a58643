package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromoteMemoryToRegisterSingleBlock(t *testing.T) {
	fn := NewFunction("f", &IntType{Bits: 32})
	b := fn.AddBlock("entry")
	v := fn.AddParam("v", &IntType{Bits: 32})

	alloca := b.Append(Alloca(&IntType{Bits: 32}))
	b.Append(Store(alloca.Result, v, false))
	load := b.Append(Load(&IntType{Bits: 32}, alloca.Result, false))
	ret := b.Append(Ret(load.Result))

	PromoteMemoryToRegister(fn)

	assert.False(t, load.Parented())
	assert.Equal(t, v, ret.Operands[0])
}

func TestPromoteMemoryToRegisterSkipsEscapingUse(t *testing.T) {
	fn := NewFunction("f", &VoidType{})
	b := fn.AddBlock("entry")
	v := fn.AddParam("v", &IntType{Bits: 32})

	alloca := b.Append(Alloca(&IntType{Bits: 32}))
	b.Append(Store(alloca.Result, v, false))
	b.Append(Call(&VoidType{}, "escape", alloca.Result))
	load := b.Append(Load(&IntType{Bits: 32}, alloca.Result, false))
	b.Append(Ret(nil))

	PromoteMemoryToRegister(fn)

	assert.True(t, load.Parented())
}
