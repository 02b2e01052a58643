package optimize

import (
	"ssaopt/internal/ir"
	"ssaopt/internal/stats"
)

// CSE collapses duplicate pure computations to their dominating copy, per
// function, using a fresh dominator tree. Candidates are only scheduled
// while scanning; erasure happens once at the end of each function so an
// instruction already redirected-to earlier in the scan stays valid as a
// surviving duplicate for later matches.
func CSE(m *ir.Module, st *stats.Counters) {
	for _, fn := range m.Functions {
		cseFunction(fn, st)
	}
}

func cseFunction(fn *ir.Function, st *stats.Counters) {
	if len(fn.Blocks) == 0 {
		return
	}
	dt := ir.BuildDominatorTree(fn)
	var toErase []*ir.Instruction

	for _, b := range fn.Blocks {
		dt.WalkDepthFirst(func(d *ir.BasicBlock) {
			if d == b {
				cseIntraBlock(b, &toErase)
				return
			}
			if dt.DominatesBlock(b, d) {
				cseCrossBlock(b, d, &toErase)
			}
		})
	}

	for _, inst := range toErase {
		if inst.Parented() {
			inst.EraseFromParent()
			st.Inc("CSEElim")
		}
	}
}

// cseIntraBlock matches the ordered-pair case within a single block: I
// before J, literal match, redirect J to I.
func cseIntraBlock(b *ir.BasicBlock, toErase *[]*ir.Instruction) {
	for i := 0; i < len(b.Instructions); i++ {
		leader := b.Instructions[i]
		if hasSideEffects(leader) {
			continue
		}
		for j := i + 1; j < len(b.Instructions); j++ {
			dup := b.Instructions[j]
			if isLiteralMatch(leader, dup) {
				dup.Result.ReplaceAllUsesWith(leader.Result)
				*toErase = append(*toErase, dup)
			}
		}
	}
}

// cseCrossBlock matches every instruction in dominating block b against
// every instruction in dominated block d.
func cseCrossBlock(b, d *ir.BasicBlock, toErase *[]*ir.Instruction) {
	for _, leader := range b.Instructions {
		if hasSideEffects(leader) {
			continue
		}
		for _, dup := range d.Instructions {
			if isLiteralMatch(leader, dup) {
				dup.Result.ReplaceAllUsesWith(leader.Result)
				*toErase = append(*toErase, dup)
			}
		}
	}
}
