package irfmt

import (
	"fmt"
	"strings"

	"ssaopt/internal/ir"
)

// Print renders m back into the textual IR format by recursing over its
// two levels of nesting: function, then block.
func Print(m *ir.Module) string {
	var b strings.Builder
	for _, fn := range m.Functions {
		writeFunction(&b, fn)
	}
	return b.String()
}

func writeFunction(b *strings.Builder, fn *ir.Function) {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = fmt.Sprintf("%%%s: %s", p.Name, p.Type)
	}
	fmt.Fprintf(b, "func @%s(%s)", fn.Name, strings.Join(params, ", "))
	if _, isVoid := fn.ReturnType.(*ir.VoidType); !isVoid {
		fmt.Fprintf(b, " -> %s", fn.ReturnType)
	}
	b.WriteString(" {\n")
	for _, blk := range fn.Blocks {
		writeBlock(b, blk)
	}
	b.WriteString("}\n")
}

func writeBlock(b *strings.Builder, blk *ir.BasicBlock) {
	fmt.Fprintf(b, "%s:\n", blk.Label)
	for _, inst := range blk.Instructions {
		fmt.Fprintf(b, "  %s\n", inst.String())
	}
}
