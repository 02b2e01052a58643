package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ssaopt/internal/ir"
	"ssaopt/internal/stats"
)

func i32() ir.Type      { return &ir.IntType{Bits: 32} }
func ptrT() ir.Type     { return &ir.PtrType{Elem: i32()} }
func newModule() *ir.Module { return ir.NewModule("t") }

func newFn(m *ir.Module, name string, params ...string) (*ir.Function, map[string]*ir.Value) {
	fn := ir.NewFunction(name, i32())
	m.AddFunction(fn)
	vals := map[string]*ir.Value{}
	for _, p := range params {
		vals[p] = fn.AddParam(p, i32())
	}
	return fn, vals
}

func run(fn *ir.Function) *stats.Counters {
	fn.ConnectCFG()
	m := ir.NewModule("t")
	m.AddFunction(fn)
	return Run(m, Options{})
}

// 1. Dead arithmetic chain.
func TestDeadArithmeticChain(t *testing.T) {
	fn, v := newFn(newModule(), "f", "x", "y")
	b := fn.AddBlock("entry")
	a := b.Append(ir.Binary(ir.OpAdd, i32(), v["x"], v["y"]))
	mulInst := b.Append(ir.Binary(ir.OpMul, i32(), a.Result, ir.ConstInt(i32(), 2)))
	b.Append(ir.Ret(v["x"]))

	st := run(fn)
	assert.False(t, a.Parented())
	assert.False(t, mulInst.Parented())
	assert.GreaterOrEqual(t, st.Value("CSEDead"), int64(2))
}

// 2. Algebraic simplification: x + 0 -> x.
func TestAlgebraicSimplification(t *testing.T) {
	fn, v := newFn(newModule(), "f", "x")
	b := fn.AddBlock("entry")
	a := b.Append(ir.Binary(ir.OpAdd, i32(), v["x"], ir.ConstInt(i32(), 0)))
	ret := b.Append(ir.Ret(a.Result))

	st := run(fn)
	require.False(t, a.Parented())
	assert.Equal(t, v["x"], ret.Operands[0])
	assert.GreaterOrEqual(t, st.Value("CSESimplify"), int64(1))
}

// 3. Cross-block CSE: entry computes x+y, a dominated block recomputes it.
func TestCrossBlockCSE(t *testing.T) {
	fn, v := newFn(newModule(), "f", "x", "y")
	entry := fn.AddBlock("entry")
	p := entry.Append(ir.Binary(ir.OpAdd, i32(), v["x"], v["y"]))
	// Keep p live so DCE, which runs before CSE, does not erase it first.
	entry.Append(ir.Call(&ir.VoidType{}, "use", p.Result))
	next := fn.AddBlock("next")
	entry.Append(ir.Jump(next))
	q := next.Append(ir.Binary(ir.OpAdd, i32(), v["x"], v["y"]))
	ret := next.Append(ir.Ret(q.Result))

	st := run(fn)
	assert.False(t, q.Parented())
	assert.Equal(t, p.Result, ret.Operands[0])
	assert.GreaterOrEqual(t, st.Value("CSEElim"), int64(1))
}

// 4. Redundant load within a block.
func TestRedundantLoad(t *testing.T) {
	fn, v := newFn(newModule(), "f")
	v["p"] = fn.AddParam("p", ptrT())
	b := fn.AddBlock("entry")
	l1 := b.Append(ir.Load(i32(), v["p"], false))
	l2 := b.Append(ir.Load(i32(), v["p"], false))
	// Keep l1 live so DCE, which runs before RedundantLoad, does not erase
	// it first; the call sits after l2, so it does not block forwarding.
	b.Append(ir.Call(&ir.VoidType{}, "use", l1.Result))
	ret := b.Append(ir.Ret(l2.Result))

	st := run(fn)
	assert.False(t, l2.Parented())
	assert.Equal(t, l1.Result, ret.Operands[0])
	assert.GreaterOrEqual(t, st.Value("CSELdElim"), int64(1))
}

// 5. Store-to-load forwarding.
func TestStoreToLoadForwarding(t *testing.T) {
	fn, v := newFn(newModule(), "f", "v")
	v["p"] = fn.AddParam("p", ptrT())
	b := fn.AddBlock("entry")
	s := b.Append(ir.Store(v["p"], v["v"], false))
	ld := b.Append(ir.Load(i32(), v["p"], false))
	ret := b.Append(ir.Ret(ld.Result))

	st := run(fn)
	assert.False(t, ld.Parented())
	assert.True(t, s.Parented())
	assert.Equal(t, v["v"], ret.Operands[0])
	assert.GreaterOrEqual(t, st.Value("CSEStore2Load"), int64(1))
}

// 6. Dead store: first store to a pointer superseded by a second.
func TestDeadStore(t *testing.T) {
	fn, v := newFn(newModule(), "f", "u", "v")
	v["p"] = fn.AddParam("p", ptrT())
	b := fn.AddBlock("entry")
	s1 := b.Append(ir.Store(v["p"], v["u"], false))
	s2 := b.Append(ir.Store(v["p"], v["v"], false))
	b.Append(ir.Ret(nil))

	st := run(fn)
	assert.False(t, s1.Parented())
	assert.True(t, s2.Parented())
	assert.GreaterOrEqual(t, st.Value("CSEStElim"), int64(1))
}

// 7. Negative: an intervening call blocks redundant load elimination.
func TestInterveningCallBlocksLoadCSE(t *testing.T) {
	fn, v := newFn(newModule(), "f")
	v["p"] = fn.AddParam("p", ptrT())
	b := fn.AddBlock("entry")
	l1 := b.Append(ir.Load(i32(), v["p"], false))
	b.Append(ir.Call(&ir.VoidType{}, "use", l1.Result))
	l2 := b.Append(ir.Load(i32(), v["p"], false))
	b.Append(ir.Ret(l2.Result))

	st := run(fn)
	assert.True(t, l1.Parented())
	assert.True(t, l2.Parented())
	assert.Equal(t, int64(0), st.Value("CSELdElim"))
}

// 8. Negative: a duplicated volatile load in the same block is untouched.
func TestVolatileLoadUntouched(t *testing.T) {
	fn, v := newFn(newModule(), "f")
	v["p"] = fn.AddParam("p", ptrT())
	b := fn.AddBlock("entry")
	l1 := b.Append(ir.Load(i32(), v["p"], true))
	l2 := b.Append(ir.Load(i32(), v["p"], true))
	b.Append(ir.Ret(l2.Result))

	st := run(fn)
	assert.True(t, l1.Parented())
	assert.True(t, l2.Parented())
	assert.Equal(t, int64(0), st.Value("CSELdElim"))
}

// Idempotence: a further run over an already-stable module changes nothing.
// Each Run returns fresh counters, so the second run's counters stay zero.
func TestIdempotentAfterThreeIterations(t *testing.T) {
	fn, v := newFn(newModule(), "f", "x", "y")
	b := fn.AddBlock("entry")
	a := b.Append(ir.Binary(ir.OpAdd, i32(), v["x"], v["y"]))
	b.Append(ir.Ret(a.Result))
	fn.ConnectCFG()

	m := ir.NewModule("t")
	m.AddFunction(fn)
	Run(m, Options{})
	st2 := Run(m, Options{})
	assert.Equal(t, int64(0), st2.Value("CSEDead"))
	assert.Equal(t, int64(0), st2.Value("CSEElim"))
}

// Volatile invariance: volatile loads/stores survive optimization unchanged.
func TestVolatileInvariance(t *testing.T) {
	fn, v := newFn(newModule(), "f", "v")
	v["p"] = fn.AddParam("p", ptrT())
	b := fn.AddBlock("entry")
	s := b.Append(ir.Store(v["p"], v["v"], true))
	l := b.Append(ir.Load(i32(), v["p"], true))
	b.Append(ir.Ret(l.Result))

	run(fn)
	assert.True(t, s.Parented())
	assert.True(t, l.Parented())
}
