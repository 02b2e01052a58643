package optimize

import (
	"ssaopt/internal/ir"
	"ssaopt/internal/stats"
)

// Simplify asks the host toolkit's ir.Simplify for a replacement value for
// every instruction in every block; when one comes back, every use is
// redirected to it and the original is scheduled for erasure. Layout is
// threaded through opaquely; the core never interprets it.
func Simplify(m *ir.Module, layout *ir.DataLayout, st *stats.Counters) {
	for _, fn := range m.Functions {
		for _, b := range fn.Blocks {
			simplifyBlock(b, layout, st)
		}
	}
}

func simplifyBlock(b *ir.BasicBlock, layout *ir.DataLayout, st *stats.Counters) {
	var toErase []*ir.Instruction
	for _, inst := range b.Instructions {
		replacement := ir.Simplify(inst, layout)
		if replacement == nil || inst.Result == nil || replacement == inst.Result {
			continue
		}
		inst.Result.ReplaceAllUsesWith(replacement)
		toErase = append(toErase, inst)
	}
	for _, inst := range toErase {
		if inst.Parented() {
			inst.EraseFromParent()
			st.Inc("CSESimplify")
		}
	}
}
