package optimize

import (
	"ssaopt/internal/ir"
	"ssaopt/internal/stats"
)

// RedundantLoad forwards a load to an earlier load of the same pointer
// within a block when nothing could have changed memory in between. L1
// itself is never erased by this pass. L1 may be volatile: only L2, the
// load being replaced, is required to be non-volatile.
func RedundantLoad(m *ir.Module, st *stats.Counters) {
	for _, fn := range m.Functions {
		for _, b := range fn.Blocks {
			redundantLoadBlock(b, st)
		}
	}
}

func redundantLoadBlock(b *ir.BasicBlock, st *stats.Counters) {
	var toErase []*ir.Instruction
	for i, l1 := range b.Instructions {
		if l1.Op != ir.OpLoad {
			continue
		}
		for _, l2 := range b.Instructions[i+1:] {
			if l2.Op == ir.OpStore {
				break
			}
			if l2.Op != ir.OpLoad {
				continue
			}
			if l2.Volatile || l2.Operands[0] != l1.Operands[0] || !l2.Type.Equal(l1.Type) {
				continue
			}
			if !noInterveningStoreOrCall(l1, l2) {
				continue
			}
			l2.Result.ReplaceAllUsesWith(l1.Result)
			toErase = append(toErase, l2)
		}
	}
	for _, inst := range toErase {
		if inst.Parented() {
			inst.EraseFromParent()
			st.Inc("CSELdElim")
		}
	}
}
