package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplifyAddZeroIdentity(t *testing.T) {
	x := &Value{Name: "x", Type: &IntType{Bits: 32}}
	inst := Binary(OpAdd, &IntType{Bits: 32}, x, ConstInt(&IntType{Bits: 32}, 0))
	got := Simplify(inst, DefaultDataLayout)
	require.NotNil(t, got)
	assert.Equal(t, x, got)
}

func TestSimplifyConstantFold(t *testing.T) {
	inst := Binary(OpMul, &IntType{Bits: 32}, ConstInt(&IntType{Bits: 32}, 6), ConstInt(&IntType{Bits: 32}, 7))
	got := Simplify(inst, DefaultDataLayout)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), got.Const.Int)
}

func TestSimplifyICmpSelfEquals(t *testing.T) {
	x := &Value{Name: "x", Type: &IntType{Bits: 32}}
	inst := ICmp(PredEQ, x, x)
	got := Simplify(inst, DefaultDataLayout)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.Const.Int)
}

func TestSimplifySelectIdenticalArms(t *testing.T) {
	cond := &Value{Name: "c", Type: &IntType{Bits: 1}}
	v := &Value{Name: "v", Type: &IntType{Bits: 32}}
	inst := Select(&IntType{Bits: 32}, cond, v, v)
	got := Simplify(inst, DefaultDataLayout)
	require.NotNil(t, got)
	assert.Equal(t, v, got)
}

func TestSimplifyReturnsNilWhenNoRule(t *testing.T) {
	x := &Value{Name: "x", Type: &IntType{Bits: 32}}
	y := &Value{Name: "y", Type: &IntType{Bits: 32}}
	inst := Binary(OpAdd, &IntType{Bits: 32}, x, y)
	assert.Nil(t, Simplify(inst, DefaultDataLayout))
}
