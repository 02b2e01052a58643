// Package optimize is the core: the safety predicates and the five passes
// (DCE, Simplify, CSE, RedundantLoad, RedundantStore) that the driver runs
// three times over a module. Everything here is pure graph rewriting over
// internal/ir; no I/O, no parsing, no concurrency.
package optimize

import "ssaopt/internal/ir"

// isDead reports whether inst produces a value, has an opcode in the
// pure-value set, and has no remaining uses. Non-volatile load and alloca
// are included in the pure-value set even though they touch memory/stack:
// with zero consumers their only possible effect already has no observer.
func isDead(inst *ir.Instruction) bool {
	if inst.Result == nil {
		return false
	}
	if inst.Result.HasUses() {
		return false
	}
	if inst.Op == ir.OpLoad && inst.Volatile {
		return false
	}
	return isPureValueOp(inst.Op)
}

// hasSideEffects rejects CSE candidates: call, store, alloca, load, fence,
// and every terminator except ret. Loads are excluded here because redundant load
// elimination handles them separately under the stricter no-intervening
// predicate below.
func hasSideEffects(inst *ir.Instruction) bool {
	return hasSideEffectsOp(inst.Op)
}

// isLiteralMatch reports whether i and j are interchangeable CSE duplicates:
// neither has side effects, and they are structurally identical (same
// opcode, type, operand identity and order, predicate, volatility).
// Operand order is never normalized for commutative opcodes.
func isLiteralMatch(i, j *ir.Instruction) bool {
	if hasSideEffects(i) || hasSideEffects(j) {
		return false
	}
	return i.StructurallyEqual(j)
}

// noInterveningStoreOrCall scans the same block strictly between l1 and l2
// (l1 assumed to precede l2) for a store or call. Fences and invokes are
// deliberately not treated as barriers here; only store and call opcodes
// stop a load from being forwarded across them.
func noInterveningStoreOrCall(l1, l2 *ir.Instruction) bool {
	b := l1.Block
	start, end := -1, -1
	for idx, inst := range b.Instructions {
		if inst == l1 {
			start = idx
		}
		if inst == l2 {
			end = idx
			break
		}
	}
	if start == -1 || end == -1 || start >= end {
		return false
	}
	for _, inst := range b.Instructions[start+1 : end] {
		if inst.Op == ir.OpStore || inst.Op == ir.OpCall {
			return false
		}
	}
	return true
}

// isPureValueOp and hasSideEffectsOp defer to ir.Opcode's own classification
// so the core never hardcodes an opcode list independently of the IR
// package that owns the opcode enum.
func isPureValueOp(op ir.Opcode) bool    { return op.IsPureValueOp() }
func hasSideEffectsOp(op ir.Opcode) bool { return op.HasSideEffectsOp() }
