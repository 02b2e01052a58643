package ir

// Opcode identifies the operation an Instruction performs. The set mirrors
// a small LLVM-like low-level IR: arithmetic, bitwise, casts, comparisons,
// vector ops, memory ops, and control flow.
//
// Dispatch on Opcode is done with switch statements over this enum rather than
// a hierarchy of instruction types, per the IR's single-struct Instruction
// model (see instruction.go).
type Opcode int

const (
	OpInvalid Opcode = iota

	// Arithmetic
	OpAdd
	OpSub
	OpMul
	OpSDiv
	OpUDiv
	OpSRem
	OpURem
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv

	// Bitwise
	OpAnd
	OpOr
	OpXor
	OpShl
	OpLShr
	OpAShr

	// Casts
	OpTrunc
	OpZExt
	OpSExt
	OpFPTrunc
	OpFPExt
	OpFPToUI
	OpFPToSI
	OpUIToFP
	OpSIToFP
	OpPtrToInt
	OpIntToPtr
	OpBitCast

	// Comparisons (carry a Predicate)
	OpICmp
	OpFCmp

	// Vector
	OpExtractElement
	OpInsertElement
	OpShuffleVector

	// Aggregate / address
	OpGetElementPtr
	OpPhi
	OpSelect
	OpAlloca

	// Memory
	OpLoad
	OpStore
	OpFence

	// Calls
	OpCall

	// Terminators
	OpBr
	OpRet
	OpInvoke
	OpResume
	OpUnreachable
)

var opcodeNames = map[Opcode]string{
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpSDiv: "sdiv", OpUDiv: "udiv",
	OpSRem: "srem", OpURem: "urem", OpFAdd: "fadd", OpFSub: "fsub", OpFMul: "fmul", OpFDiv: "fdiv",
	OpAnd: "and", OpOr: "or", OpXor: "xor", OpShl: "shl", OpLShr: "lshr", OpAShr: "ashr",
	OpTrunc: "trunc", OpZExt: "zext", OpSExt: "sext", OpFPTrunc: "fptrunc", OpFPExt: "fpext",
	OpFPToUI: "fptoui", OpFPToSI: "fptosi", OpUIToFP: "uitofp", OpSIToFP: "sitofp",
	OpPtrToInt: "ptrtoint", OpIntToPtr: "inttoptr", OpBitCast: "bitcast",
	OpICmp: "icmp", OpFCmp: "fcmp",
	OpExtractElement: "extractelement", OpInsertElement: "insertelement", OpShuffleVector: "shufflevector",
	OpGetElementPtr: "getelementptr", OpPhi: "phi", OpSelect: "select", OpAlloca: "alloca",
	OpLoad: "load", OpStore: "store", OpFence: "fence",
	OpCall: "call",
	OpBr:   "br", OpRet: "ret", OpInvoke: "invoke", OpResume: "resume", OpUnreachable: "unreachable",
}

func (op Opcode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return "invalid"
}

// OpcodeByName is the inverse of opcodeNames, built once at init time.
// internal/irfmt uses it to resolve a parsed mnemonic back to an Opcode.
var OpcodeByName = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for op, name := range opcodeNames {
		m[name] = op
	}
	return m
}()

// Predicate is the comparison kind carried by icmp/fcmp instructions.
type Predicate int

const (
	PredNone Predicate = iota
	PredEQ
	PredNE
	PredSLT
	PredSLE
	PredSGT
	PredSGE
	PredULT
	PredULE
	PredUGT
	PredUGE
	PredOEQ
	PredONE
	PredOLT
	PredOLE
	PredOGT
	PredOGE
)

var predicateNames = map[Predicate]string{
	PredNone: "", PredEQ: "eq", PredNE: "ne",
	PredSLT: "slt", PredSLE: "sle", PredSGT: "sgt", PredSGE: "sge",
	PredULT: "ult", PredULE: "ule", PredUGT: "ugt", PredUGE: "uge",
	PredOEQ: "oeq", PredONE: "one", PredOLT: "olt", PredOLE: "ole", PredOGT: "ogt", PredOGE: "oge",
}

func (p Predicate) String() string { return predicateNames[p] }

// PredicateByName is the inverse of predicateNames, used by internal/irfmt
// to resolve a parsed predicate mnemonic back to a Predicate.
var PredicateByName = func() map[string]Predicate {
	m := make(map[string]Predicate, len(predicateNames))
	for p, name := range predicateNames {
		if name != "" {
			m[name] = p
		}
	}
	return m
}()

// producesValue reports whether the opcode defines an SSA result (Result != nil).
// Store, fence, br, ret, resume and unreachable produce no value; invoke,
// like call, does.
func (op Opcode) producesValue() bool {
	switch op {
	case OpStore, OpFence, OpBr, OpRet, OpResume, OpUnreachable:
		return false
	default:
		return true
	}
}

// IsPureValueOp is the exported form of isPureValueOp, used by
// internal/optimize's is-dead predicate.
func (op Opcode) IsPureValueOp() bool { return op.isPureValueOp() }

// HasSideEffectsOp is the exported form of hasSideEffectsOp, used by
// internal/optimize's has-side-effects predicate.
func (op Opcode) HasSideEffectsOp() bool { return op.hasSideEffectsOp() }

// isPureValueOp enumerates the opcodes the dead-instruction predicate
// considers: arithmetic, bitwise, casts, comparisons, vector ops,
// getelementptr, phi, select, alloca, and load (volatility is checked
// separately by the caller). The "no uses" half of that predicate lives
// in internal/optimize/predicates.go.
func (op Opcode) isPureValueOp() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpSDiv, OpUDiv, OpSRem, OpURem,
		OpFAdd, OpFSub, OpFMul, OpFDiv,
		OpAnd, OpOr, OpXor, OpShl, OpLShr, OpAShr,
		OpTrunc, OpZExt, OpSExt, OpFPTrunc, OpFPExt, OpFPToUI, OpFPToSI,
		OpUIToFP, OpSIToFP, OpPtrToInt, OpIntToPtr, OpBitCast,
		OpICmp, OpFCmp,
		OpExtractElement, OpInsertElement, OpShuffleVector,
		OpGetElementPtr, OpPhi, OpSelect, OpAlloca, OpLoad:
		return true
	default:
		return false
	}
}

// hasSideEffectsOp enumerates opcodes that are never CSE candidates and are
// never considered dead regardless of use count (except load/alloca, which
// DCE still removes when unused; see predicates.go for the full story).
func (op Opcode) hasSideEffectsOp() bool {
	switch op {
	case OpCall, OpStore, OpAlloca, OpLoad, OpFence,
		OpBr, OpInvoke, OpResume, OpUnreachable:
		return true
	default:
		return false
	}
}

// IsTerminator reports whether the opcode ends a basic block.
func (op Opcode) IsTerminator() bool {
	switch op {
	case OpBr, OpRet, OpInvoke, OpResume, OpUnreachable:
		return true
	default:
		return false
	}
}

// isCommutative is deliberately unused by StructurallyEqual/isLiteralMatch:
// operand order matters even for these opcodes, so `add x, y` and
// `add y, x` are never treated as duplicates. Kept only as documentation
// of the normalization this optimizer does not perform.
func (op Opcode) isCommutative() bool {
	switch op {
	case OpAdd, OpMul, OpFAdd, OpFMul, OpAnd, OpOr, OpXor:
		return true
	default:
		return false
	}
}
