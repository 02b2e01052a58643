package ir

// This file collects small constructors for each instruction family, one
// step up from the bare Instruction struct literal: each constructor just
// fills in the fields that opcode cares about and leaves the rest at their
// zero value.

// Binary builds an arithmetic/bitwise instruction (add, sub, shl, ...).
func Binary(op Opcode, t Type, left, right *Value) *Instruction {
	return &Instruction{Op: op, Type: t, Operands: []*Value{left, right}}
}

// Cast builds a cast instruction (trunc, zext, bitcast, ...).
func Cast(op Opcode, t Type, v *Value) *Instruction {
	return &Instruction{Op: op, Type: t, Operands: []*Value{v}}
}

// ICmp builds an integer comparison.
func ICmp(pred Predicate, left, right *Value) *Instruction {
	return &Instruction{Op: OpICmp, Type: &IntType{Bits: 1}, Predicate: pred, Operands: []*Value{left, right}}
}

// FCmp builds a floating-point comparison.
func FCmp(pred Predicate, left, right *Value) *Instruction {
	return &Instruction{Op: OpFCmp, Type: &IntType{Bits: 1}, Predicate: pred, Operands: []*Value{left, right}}
}

// Select builds a select instruction.
func Select(t Type, cond, trueVal, falseVal *Value) *Instruction {
	return &Instruction{Op: OpSelect, Type: t, Operands: []*Value{cond, trueVal, falseVal}}
}

// GEP builds a getelementptr instruction over base with the given indices.
func GEP(t Type, base *Value, indices ...*Value) *Instruction {
	return &Instruction{Op: OpGetElementPtr, Type: t, Operands: append([]*Value{base}, indices...)}
}

// Alloca builds a stack allocation of allocType.
func Alloca(allocType Type) *Instruction {
	return &Instruction{Op: OpAlloca, Type: &PtrType{Elem: allocType}}
}

// Load builds a load instruction; a volatile load is never dead, CSE'd, or
// replaced by a forwarded value.
func Load(t Type, addr *Value, volatile bool) *Instruction {
	return &Instruction{Op: OpLoad, Type: t, Operands: []*Value{addr}, Volatile: volatile}
}

// Store builds a store instruction; like Load, a volatile store is never
// touched by any pass.
func Store(addr, val *Value, volatile bool) *Instruction {
	return &Instruction{Op: OpStore, Operands: []*Value{addr, val}, Volatile: volatile}
}

// Fence builds a memory fence.
func Fence() *Instruction {
	return &Instruction{Op: OpFence}
}

// Call builds a call to callee with the given type (the function's return
// type; the parser and tests give a void call a *VoidType).
func Call(t Type, callee string, args ...*Value) *Instruction {
	return &Instruction{Op: OpCall, Type: t, Callee: callee, Operands: args}
}

// Phi builds an empty phi node of type t; AddIncoming appends inputs.
func Phi(t Type) *Instruction {
	return &Instruction{Op: OpPhi, Type: t}
}

// AddIncoming appends a (value, predecessor) pair to a phi instruction.
func (i *Instruction) AddIncoming(v *Value, pred *BasicBlock) {
	i.Operands = append(i.Operands, v)
	i.Incoming = append(i.Incoming, pred)
	if i.Block != nil {
		v.addUse(i)
	}
}

// Br builds a conditional branch.
func Br(cond *Value, thenBlock, elseBlock *BasicBlock) *Instruction {
	return &Instruction{Op: OpBr, Operands: []*Value{cond}, Targets: []*BasicBlock{thenBlock, elseBlock}}
}

// Jump builds an unconditional branch.
func Jump(target *BasicBlock) *Instruction {
	return &Instruction{Op: OpBr, Targets: []*BasicBlock{target}}
}

// Ret builds a return, val may be nil for a void return.
func Ret(val *Value) *Instruction {
	if val == nil {
		return &Instruction{Op: OpRet}
	}
	return &Instruction{Op: OpRet, Operands: []*Value{val}}
}

// Invoke builds an invoke: a call with normal/unwind successor blocks.
func Invoke(t Type, callee string, normal, unwind *BasicBlock, args ...*Value) *Instruction {
	return &Instruction{Op: OpInvoke, Type: t, Callee: callee, Operands: args, Targets: []*BasicBlock{normal, unwind}}
}

// Resume builds a resume instruction propagating an in-flight exception value.
func Resume(val *Value) *Instruction {
	return &Instruction{Op: OpResume, Operands: []*Value{val}}
}

// Unreachable builds an unreachable terminator.
func Unreachable() *Instruction {
	return &Instruction{Op: OpUnreachable}
}

// ExtractElement builds a vector element extraction.
func ExtractElement(t Type, vec, idx *Value) *Instruction {
	return &Instruction{Op: OpExtractElement, Type: t, Operands: []*Value{vec, idx}}
}

// InsertElement builds a vector element insertion.
func InsertElement(t Type, vec, elt, idx *Value) *Instruction {
	return &Instruction{Op: OpInsertElement, Type: t, Operands: []*Value{vec, elt, idx}}
}

// ShuffleVector builds a vector shuffle.
func ShuffleVector(t Type, v1, v2, mask *Value) *Instruction {
	return &Instruction{Op: OpShuffleVector, Type: t, Operands: []*Value{v1, v2, mask}}
}

// ConstInt creates an integer constant value of type t.
func ConstInt(t Type, n int64) *Value {
	return &Value{Type: t, Const: &ConstValue{Int: n, IsInt: true}}
}

// ConstFloat creates a floating point constant value of type t.
func ConstFloat(t Type, f float64) *Value {
	return &Value{Type: t, Const: &ConstValue{Float: f}}
}
