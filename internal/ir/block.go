package ir

// BasicBlock is a sequence of instructions with no internal branches,
// ending in exactly one terminator once the function is well-formed.
type BasicBlock struct {
	Label        string
	Function     *Function
	Instructions []*Instruction
	Predecessors []*BasicBlock
	Successors   []*BasicBlock

	// idx is the position of this block in Function.Blocks, set by
	// Function.AddBlock.
	idx int
}

// Append adds inst to the end of the block, assigning it an ID and a
// freshly-numbered Result value when the opcode produces one.
func (b *BasicBlock) Append(inst *Instruction) *Instruction {
	inst.Block = b
	inst.ID = b.Function.nextInstID()
	if inst.Op.producesValue() && inst.Result == nil {
		inst.Result = b.Function.newValue(inst.Type, inst)
	}
	for _, o := range inst.Operands {
		o.addUse(inst)
	}
	b.Instructions = append(b.Instructions, inst)
	return inst
}

// removeInstruction deletes inst from the block's instruction list. Called
// only from Instruction.EraseFromParent.
func (b *BasicBlock) removeInstruction(inst *Instruction) {
	for idx, in := range b.Instructions {
		if in == inst {
			b.Instructions = append(b.Instructions[:idx], b.Instructions[idx+1:]...)
			return
		}
	}
}

// Terminator returns the block's terminating instruction, or nil if the
// block is (transiently, mid-construction) missing one.
func (b *BasicBlock) Terminator() *Instruction {
	if len(b.Instructions) == 0 {
		return nil
	}
	last := b.Instructions[len(b.Instructions)-1]
	if last.IsTerminator() {
		return last
	}
	return nil
}

func (b *BasicBlock) addSuccessor(s *BasicBlock) {
	b.Successors = append(b.Successors, s)
	s.Predecessors = append(s.Predecessors, b)
}
