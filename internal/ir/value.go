package ir

import "fmt"

// Value is an SSA value: either the result of an Instruction or a
// standalone constant/argument. Each Value has exactly one definition.
type Value struct {
	ID      int
	Name    string
	Type    Type
	Def     *Instruction // nil for constants/parameters with no defining instruction
	Const   *ConstValue // non-nil for compile-time constants
	Param   bool        // true for function parameters
	Uses    []*Use
}

// ConstValue is the payload of a compile-time constant Value.
type ConstValue struct {
	Int   int64
	Float float64
	IsInt bool
}

func (v *Value) String() string {
	if v.Const != nil {
		if v.Const.IsInt {
			return fmt.Sprintf("%d", v.Const.Int)
		}
		return fmt.Sprintf("%g", v.Const.Float)
	}
	if v.Name != "" {
		return "%" + v.Name
	}
	return fmt.Sprintf("%%v%d", v.ID)
}

// addUse records that Instruction user consumes this value.
func (v *Value) addUse(user *Instruction) *Use {
	u := &Use{Value: v, User: user}
	v.Uses = append(v.Uses, u)
	return u
}

// removeUse drops the use edge pointing at user, if present. Used when an
// instruction is erased.
func (v *Value) removeUse(user *Instruction) {
	for i, u := range v.Uses {
		if u.User == user {
			v.Uses = append(v.Uses[:i], v.Uses[i+1:]...)
			return
		}
	}
}

// HasUses reports whether any instruction still consumes this value.
func (v *Value) HasUses() bool { return len(v.Uses) > 0 }

// ReplaceAllUsesWith redirects every use of v to newVal and clears v's use
// list. This is a pure graph rewrite: the caller (a pass in
// internal/optimize) is responsible for ensuring newVal's definition
// dominates every use site before calling it.
func (v *Value) ReplaceAllUsesWith(newVal *Value) {
	if v == newVal {
		return
	}
	uses := v.Uses
	v.Uses = nil
	for _, u := range uses {
		u.User.replaceOperand(v, newVal)
		newVal.Uses = append(newVal.Uses, u)
		u.Value = newVal
	}
}

// Use is the directed edge from a defining Value to a consumer Instruction.
type Use struct {
	Value *Value
	User  *Instruction
}
