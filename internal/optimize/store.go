package optimize

import (
	"ssaopt/internal/ir"
	"ssaopt/internal/stats"
)

// RedundantStore performs store-to-load forwarding and dead store removal
// within a block.
//
// Forwarding only requires the load to be non-volatile; a volatile S1 can
// still forward its stored value to a later non-volatile load of the same
// pointer, since the volatile store itself is never removed or reordered.
// Dead-store elimination, by contrast, only fires when S1 itself is
// non-volatile: a later same-pointer store (volatile or not) makes a
// non-volatile S1 dead.
//
// Once a later store S2 to the same pointer as S1 is found, S1 is
// scheduled for erasure and the scan for S1 stops immediately. A third
// store to the same pointer later in the block is not reconsidered until
// the driver's next iteration over the module.
func RedundantStore(m *ir.Module, st *stats.Counters) {
	for _, fn := range m.Functions {
		for _, b := range fn.Blocks {
			redundantStoreBlock(b, st)
		}
	}
}

func redundantStoreBlock(b *ir.BasicBlock, st *stats.Counters) {
	var toErase []*ir.Instruction
	for i, s1 := range b.Instructions {
		if s1.Op != ir.OpStore {
			continue
		}
		ptr, val := s1.Operands[0], s1.Operands[1]
		forwarded := false
	scan:
		for _, inst := range b.Instructions[i+1:] {
			switch {
			case inst.Op == ir.OpLoad && !inst.Volatile && inst.Operands[0] == ptr && inst.Type.Equal(val.Type):
				inst.Result.ReplaceAllUsesWith(val)
				toErase = append(toErase, inst)
				forwarded = true
			case inst.Op == ir.OpStore && !s1.Volatile && inst.Operands[0] == ptr && inst.Operands[1].Type.Equal(val.Type):
				toErase = append(toErase, s1)
				break scan
			case hasSideEffects(inst) && !forwarded:
				break scan
			}
		}
	}
	for _, inst := range toErase {
		if inst.Parented() {
			inst.EraseFromParent()
			if inst.Op == ir.OpStore {
				st.Inc("CSEStElim")
			} else {
				st.Inc("CSEStore2Load")
			}
		}
	}
}
