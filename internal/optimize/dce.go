package optimize

import (
	"ssaopt/internal/ir"
	"ssaopt/internal/stats"
)

// DCE removes dead instructions from every block of every function in m.
//
// Each invocation schedules at most the last dead instruction seen in a
// block for erasure, not every dead instruction in that block: dead chains
// longer than one collapse over the driver's repeated passes rather than
// in a single sweep.
func DCE(m *ir.Module, st *stats.Counters) {
	for _, fn := range m.Functions {
		for _, b := range fn.Blocks {
			dceBlock(b, st)
		}
	}
}

func dceBlock(b *ir.BasicBlock, st *stats.Counters) {
	// Reassigns rather than appends: every dead instruction visited
	// replaces, rather than joins, the previous one, so only the last
	// dead instruction seen in this block survives to the erase below.
	var toErase *ir.Instruction
	for _, inst := range b.Instructions {
		if isDead(inst) {
			toErase = inst
		}
	}
	if toErase != nil && toErase.Parented() {
		toErase.EraseFromParent()
		st.Inc("CSEDead")
	}
}
