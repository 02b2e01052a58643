package ir

import "fmt"

// VerifyError reports a single structural well-formedness violation found
// by Verify. The optimizer's own operations never produce one when every
// pass is correct; seeing one after optimization indicates a pass bug,
// not a user error.
type VerifyError struct {
	Function string
	Block    string
	Message  string
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("%s/%s: %s", e.Function, e.Block, e.Message)
}

// Verify checks every function in m for the structural invariants the
// core's passes are required to preserve: every block ends in exactly one
// terminator, every operand either dominates its use or is a parameter/
// constant, and every phi has exactly one incoming value per predecessor.
// Run once after optimization unless the CLI's -no flag suppresses it.
func Verify(m *Module) error {
	for _, fn := range m.Functions {
		if err := verifyFunction(fn); err != nil {
			return err
		}
	}
	return nil
}

func verifyFunction(fn *Function) error {
	if len(fn.Blocks) == 0 {
		return nil
	}
	dt := BuildDominatorTree(fn)
	for _, b := range fn.Blocks {
		if err := verifyBlock(fn, b, dt); err != nil {
			return err
		}
	}
	return nil
}

func verifyBlock(fn *Function, b *BasicBlock, dt *DominatorTree) error {
	for idx, inst := range b.Instructions {
		isLast := idx == len(b.Instructions)-1
		if inst.IsTerminator() != isLast {
			if inst.IsTerminator() {
				return &VerifyError{fn.Name, b.Label, "terminator is not the last instruction in its block"}
			}
			return &VerifyError{fn.Name, b.Label, "block does not end in a terminator"}
		}
		if inst.Op == OpPhi {
			if len(inst.Incoming) != len(b.Predecessors) {
				return &VerifyError{fn.Name, b.Label, "phi incoming count does not match predecessor count"}
			}
			continue
		}
		for _, o := range inst.Operands {
			if o.Def == nil {
				continue // parameter or constant: always valid
			}
			if !dt.DominatesInstruction(o.Def, inst) {
				return &VerifyError{fn.Name, b.Label, fmt.Sprintf("operand %s does not dominate its use in %s", o, inst)}
			}
		}
	}
	return nil
}
