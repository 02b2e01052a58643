package irfmt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ssaopt/internal/ir"
	"ssaopt/internal/irfmt"
)

const addFunc = `
func @add(%x: i32, %y: i32) -> i32 {
entry:
  %a = add i32 %x, %y
  ret i32 %a
}
`

func TestParseSimpleFunction(t *testing.T) {
	m, err := irfmt.Parse("add.ir", addFunc)
	require.NoError(t, err)
	require.Len(t, m.Functions, 1)

	fn := m.Functions[0]
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "x", fn.Params[0].Name)
	require.Len(t, fn.Blocks, 1)

	entry := fn.Blocks[0]
	require.Len(t, entry.Instructions, 2)
	assert.Equal(t, ir.OpAdd, entry.Instructions[0].Op)
	assert.Equal(t, ir.OpRet, entry.Instructions[1].Op)
}

func TestParsePrintRoundTrip(t *testing.T) {
	m, err := irfmt.Parse("add.ir", addFunc)
	require.NoError(t, err)

	printed := irfmt.Print(m)
	reparsed, err := irfmt.Parse("add2.ir", printed)
	require.NoError(t, err)

	require.Len(t, reparsed.Functions, 1)
	assert.Equal(t, m.Functions[0].Name, reparsed.Functions[0].Name)
	assert.Len(t, reparsed.Functions[0].Blocks[0].Instructions, 2)
}

func TestParseControlFlowAndPhi(t *testing.T) {
	src := `
func @pick(%c: i1, %x: i32, %y: i32) -> i32 {
entry:
  br %c, label left, label right
left:
  br label join
right:
  br label join
join:
  %r = phi i32 [%x, left], [%y, right]
  ret i32 %r
}
`
	m, err := irfmt.Parse("pick.ir", src)
	require.NoError(t, err)
	fn := m.Functions[0]
	require.Len(t, fn.Blocks, 4)
	join := fn.Blocks[3]
	require.Len(t, join.Instructions, 2)
	assert.Equal(t, ir.OpPhi, join.Instructions[0].Op)
}

func TestParseMemoryOps(t *testing.T) {
	src := `
func @roundtrip(%v: i32, %p: ptr) -> i32 {
entry:
  store i32 %v, ptr %p
  %x = load i32, ptr %p
  ret i32 %x
}
`
	m, err := irfmt.Parse("mem.ir", src)
	require.NoError(t, err)
	entry := m.Functions[0].Blocks[0]
	require.Len(t, entry.Instructions, 3)
	assert.Equal(t, ir.OpStore, entry.Instructions[0].Op)
	assert.Equal(t, ir.OpLoad, entry.Instructions[1].Op)
}

func TestParseSyntaxErrorReportsPosition(t *testing.T) {
	_, err := irfmt.Parse("bad.ir", "func @broken(")
	require.Error(t, err)
	_, ok := err.(*irfmt.ParseError)
	assert.True(t, ok)
}
