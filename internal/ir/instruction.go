package ir

import (
	"fmt"
	"strings"
)

// Instruction is the IR's single instruction entity: an opcode, a result
// type, an ordered operand sequence, zero or more uses (via Result.Uses),
// a parent block, and two attributes that only some opcodes use: a
// comparison Predicate and a volatility flag. Modeling every opcode with
// one struct (rather than a concrete type per opcode) keeps dispatch a
// switch over Op, never a type hierarchy.
type Instruction struct {
	ID        int
	Op        Opcode
	Type      Type
	Result    *Value
	Operands  []*Value
	Predicate Predicate
	Volatile  bool
	Block     *BasicBlock

	Callee   string        // call/invoke target name
	Targets  []*BasicBlock // br: [then] or [then,else]; invoke: [normal,unwind]; jump: [target]
	Incoming []*BasicBlock // phi: predecessor per Operands[i]
}

// GetOperands returns the ordered operand sequence.
func (i *Instruction) GetOperands() []*Value { return i.Operands }

// IsTerminator reports whether this instruction ends its basic block.
func (i *Instruction) IsTerminator() bool { return i.Op.IsTerminator() }

// replaceOperand swaps old for newVal in every operand slot that held old.
// Called from Value.ReplaceAllUsesWith; not meant to be called directly.
func (i *Instruction) replaceOperand(old, newVal *Value) {
	for idx, o := range i.Operands {
		if o == old {
			i.Operands[idx] = newVal
		}
	}
}

// EraseFromParent removes the instruction from its block and clears its own
// use edges on its operands. Idempotent: erasing an already-erased
// instruction is a no-op. The passes in internal/optimize still check
// Parented before each erase, so that only an actual removal advances a
// statistics counter.
func (i *Instruction) EraseFromParent() {
	if i.Block == nil {
		return
	}
	for _, o := range i.Operands {
		o.removeUse(i)
	}
	i.Block.removeInstruction(i)
	i.Block = nil
}

// Parented reports whether the instruction is still attached to a block.
// Every pass checks this before erasing an entry from a deferred-erase
// list, since an earlier erase in the same pass may already have removed
// it transitively.
func (i *Instruction) Parented() bool { return i.Block != nil }

// String renders the instruction back into the textual form the grammar
// (internal/irfmt) parses. Volatile sits in a different position depending
// on the instruction's textual shape: store and load carry their keyword
// first and volatile second ("store volatile ..."), while every other
// opcode's grammar rule puts volatile before the opcode ("volatile alloca
// ..."), matching GenericInst's field order.
func (i *Instruction) String() string {
	var b strings.Builder
	if i.Result != nil {
		fmt.Fprintf(&b, "%s = ", i.Result.String())
	}
	switch i.Op {
	case OpRet:
		b.WriteString("ret")
		if len(i.Operands) == 0 {
			b.WriteString(" void")
		} else {
			fmt.Fprintf(&b, " %s %s", i.Operands[0].Type, i.Operands[0])
		}
	case OpBr:
		b.WriteString("br")
		if len(i.Operands) == 1 {
			fmt.Fprintf(&b, " %s, label %s, label %s", i.Operands[0], i.Targets[0].Label, i.Targets[1].Label)
		} else {
			fmt.Fprintf(&b, " label %s", i.Targets[0].Label)
		}
	case OpCall, OpInvoke:
		b.WriteString(i.Op.String())
		if i.Type != nil {
			fmt.Fprintf(&b, " %s", i.Type)
		}
		args := make([]string, len(i.Operands))
		for idx, o := range i.Operands {
			args[idx] = o.String()
		}
		fmt.Fprintf(&b, " @%s(%s)", i.Callee, strings.Join(args, ", "))
		if i.Op == OpInvoke {
			fmt.Fprintf(&b, " to label %s unwind label %s", i.Targets[0].Label, i.Targets[1].Label)
		}
	case OpPhi:
		b.WriteString("phi")
		parts := make([]string, len(i.Operands))
		for idx, o := range i.Operands {
			parts[idx] = fmt.Sprintf("[%s, %s]", o, i.Incoming[idx].Label)
		}
		fmt.Fprintf(&b, " %s %s", i.Type, strings.Join(parts, ", "))
	case OpICmp, OpFCmp:
		// i.Type is the i1 result type; the printed type is the operand
		// type, recovered from the first operand.
		fmt.Fprintf(&b, "%s %s %s %s, %s", i.Op, i.Predicate, i.Operands[0].Type, i.Operands[0], i.Operands[1])
	case OpStore:
		b.WriteString("store")
		if i.Volatile {
			b.WriteString(" volatile")
		}
		fmt.Fprintf(&b, " %s %s, %s %s", i.Operands[1].Type, i.Operands[1], i.Operands[0].Type, i.Operands[0])
	case OpLoad:
		b.WriteString("load")
		if i.Volatile {
			b.WriteString(" volatile")
		}
		fmt.Fprintf(&b, " %s, %s %s", i.Type, i.Operands[0].Type, i.Operands[0])
	default:
		if i.Volatile {
			b.WriteString("volatile ")
		}
		b.WriteString(i.Op.String())
		if i.Type != nil {
			fmt.Fprintf(&b, " %s", i.Type)
		}
		parts := make([]string, len(i.Operands))
		for idx, o := range i.Operands {
			parts[idx] = o.String()
		}
		if len(parts) > 0 {
			fmt.Fprintf(&b, " %s", strings.Join(parts, ", "))
		}
	}
	return b.String()
}

// StructurallyEqual reports whether i and j are identical by opcode,
// type, operand identity and order, predicate, and volatility. Used by
// the CSE pass's is-literal-match test. Operand order matters:
// commutative opcodes are never normalized, so `add x, y` never matches
// `add y, x`.
func (i *Instruction) StructurallyEqual(j *Instruction) bool {
	if i.Op != j.Op || i.Predicate != j.Predicate || i.Volatile != j.Volatile {
		return false
	}
	if (i.Type == nil) != (j.Type == nil) {
		return false
	}
	if i.Type != nil && !i.Type.Equal(j.Type) {
		return false
	}
	if len(i.Operands) != len(j.Operands) {
		return false
	}
	for k := range i.Operands {
		if i.Operands[k] != j.Operands[k] {
			return false
		}
	}
	if i.Op == OpCall || i.Op == OpInvoke {
		return i.Callee == j.Callee
	}
	return true
}
