package irfmt

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"ssaopt/internal/ir"
)

// ParseError wraps a participle parse failure with the source position it
// occurred at, so the CLI can report a caret-style syntax error.
type ParseError struct {
	Filename string
	Line     int
	Column   int
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
}

var parser = participle.MustBuild[File](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(4),
)

// Parse reads the textual IR format from src and lowers it into an
// ir.Module. name is used only for error positions and the module's name.
func Parse(name, src string) (*ir.Module, error) {
	file, err := parser.ParseString(name, src)
	if err != nil {
		if pe, ok := err.(participle.Error); ok {
			pos := pe.Position()
			return nil, &ParseError{Filename: pos.Filename, Line: pos.Line, Column: pos.Column, Message: pe.Message()}
		}
		return nil, err
	}
	return lower(name, file)
}

// ReportParseError prints a caret-pointing syntax error to stderr: a red
// banner, the offending source line, then a caret line.
func ReportParseError(src string, err error) {
	red := color.New(color.FgRed)
	pe, ok := err.(*ParseError)
	if !ok {
		red.Fprintf(os.Stderr, "unexpected error: %s\n", err)
		return
	}
	lines := strings.Split(src, "\n")
	red.Fprintf(os.Stderr, "syntax error in %s at line %d, column %d:\n", pe.Filename, pe.Line, pe.Column)
	if pe.Line > 0 && pe.Line <= len(lines) {
		fmt.Fprintln(os.Stderr, lines[pe.Line-1])
		fmt.Fprintln(os.Stderr, strings.Repeat(" ", pe.Column-1)+"^")
	}
	fmt.Fprintf(os.Stderr, "-> %s\n", pe.Message)
}

// lowering state: resolves forward label references and %value names to
// ir.Value pointers within one function, since the textual format allows a
// block to reference a later block's label and a phi to reference a value
// defined later in the same function.
type lowerState struct {
	fn      *ir.Function
	blocks  map[string]*ir.BasicBlock
	values  map[string]*ir.Value
	pending []func() error
}

func lower(moduleName string, file *File) (*ir.Module, error) {
	m := ir.NewModule(moduleName)
	for _, fd := range file.Functions {
		fn, err := lowerFunc(fd)
		if err != nil {
			return nil, err
		}
		m.AddFunction(fn)
	}
	return m, nil
}

func lowerFunc(fd *FuncDecl) (*ir.Function, error) {
	retType := ir.Type(&ir.VoidType{})
	if fd.Ret != nil {
		t, err := parseType(*fd.Ret)
		if err != nil {
			return nil, err
		}
		retType = t
	}
	fn := ir.NewFunction(fd.Name, retType)
	st := &lowerState{fn: fn, blocks: map[string]*ir.BasicBlock{}, values: map[string]*ir.Value{}}

	for _, pd := range fd.Params {
		t, err := parseType(pd.Type)
		if err != nil {
			return nil, err
		}
		st.values[pd.Name] = fn.AddParam(pd.Name, t)
	}
	for _, bd := range fd.Blocks {
		st.blocks[bd.Label] = fn.AddBlock(bd.Label)
	}
	for _, bd := range fd.Blocks {
		b := st.blocks[bd.Label]
		for _, inst := range bd.Insts {
			if err := st.lowerInst(b, inst); err != nil {
				return nil, err
			}
		}
	}
	for _, fixup := range st.pending {
		if err := fixup(); err != nil {
			return nil, err
		}
	}
	fn.ConnectCFG()
	return fn, nil
}

func (st *lowerState) lowerInst(b *ir.BasicBlock, in *Inst) error {
	switch {
	case in.Phi != nil:
		return st.lowerPhi(b, in.Phi)
	case in.Call != nil:
		return st.lowerCall(b, in.Call)
	case in.Invoke != nil:
		return st.lowerInvoke(b, in.Invoke)
	case in.Branch != nil:
		return st.lowerBranch(b, in.Branch)
	case in.Jump != nil:
		return st.lowerJump(b, in.Jump)
	case in.Ret != nil:
		return st.lowerRet(b, in.Ret)
	case in.Store != nil:
		return st.lowerStore(b, in.Store)
	case in.Resume != nil:
		return st.lowerResume(b, in.Resume)
	case in.Unreachable != nil:
		b.Append(&ir.Instruction{Op: ir.OpUnreachable})
		return nil
	case in.Fence != nil:
		b.Append(&ir.Instruction{Op: ir.OpFence})
		return nil
	case in.Cmp != nil:
		return st.lowerCmp(b, in.Cmp)
	case in.LoadI != nil:
		return st.lowerLoad(b, in.LoadI)
	case in.Generic != nil:
		return st.lowerGeneric(b, in.Generic)
	}
	return fmt.Errorf("empty instruction")
}

func (st *lowerState) lowerPhi(b *ir.BasicBlock, p *PhiInst) error {
	t, err := parseType(p.Type)
	if err != nil {
		return err
	}
	inst := b.Append(ir.Phi(t))
	st.values[p.Result] = inst.Result
	for _, in := range p.Inputs {
		pred := st.blocks[in.Label]
		name := in.Value
		st.pending = append(st.pending, func() error {
			v, err := st.resolveValue(name)
			if err != nil {
				return err
			}
			inst.AddIncoming(v, pred)
			return nil
		})
	}
	return nil
}

func (st *lowerState) lowerCall(b *ir.BasicBlock, c *CallInst) error {
	t := ir.Type(&ir.VoidType{})
	if c.Type != nil {
		parsed, err := parseType(*c.Type)
		if err != nil {
			return err
		}
		t = parsed
	}
	args, err := st.resolveRefs(c.Args)
	if err != nil {
		return err
	}
	inst := b.Append(ir.Call(t, c.Callee, args...))
	if c.Result != "" {
		st.values[c.Result] = inst.Result
	}
	return nil
}

func (st *lowerState) lowerInvoke(b *ir.BasicBlock, iv *InvokeInst) error {
	t := ir.Type(&ir.VoidType{})
	if iv.Type != nil {
		parsed, err := parseType(*iv.Type)
		if err != nil {
			return err
		}
		t = parsed
	}
	args, err := st.resolveRefs(iv.Args)
	if err != nil {
		return err
	}
	normal, unwind := st.blocks[iv.Normal], st.blocks[iv.Unwind]
	inst := b.Append(ir.Invoke(t, iv.Callee, normal, unwind, args...))
	if iv.Result != "" {
		st.values[iv.Result] = inst.Result
	}
	return nil
}

func (st *lowerState) lowerBranch(b *ir.BasicBlock, br *BranchInst) error {
	cond, err := st.resolveRef(br.Cond)
	if err != nil {
		return err
	}
	b.Append(ir.Br(cond, st.blocks[br.Then], st.blocks[br.Else]))
	return nil
}

func (st *lowerState) lowerJump(b *ir.BasicBlock, j *JumpInst) error {
	b.Append(ir.Jump(st.blocks[j.Target]))
	return nil
}

func (st *lowerState) lowerRet(b *ir.BasicBlock, r *RetInst) error {
	if r.Void {
		b.Append(ir.Ret(nil))
		return nil
	}
	val, err := st.resolveRef(r.Value)
	if err != nil {
		return err
	}
	b.Append(ir.Ret(val))
	return nil
}

func (st *lowerState) lowerStore(b *ir.BasicBlock, s *StoreInst) error {
	valType, err := parseType(s.Type)
	if err != nil {
		return err
	}
	val, err := st.resolveTypedRef(s.Value, valType)
	if err != nil {
		return err
	}
	addr, err := st.resolveRef(s.Addr)
	if err != nil {
		return err
	}
	b.Append(ir.Store(addr, val, s.Volatile))
	return nil
}

func (st *lowerState) lowerLoad(b *ir.BasicBlock, l *LoadInst) error {
	t, err := parseType(l.Type)
	if err != nil {
		return err
	}
	addr, err := st.resolveRef(l.Addr)
	if err != nil {
		return err
	}
	inst := b.Append(ir.Load(t, addr, l.Volatile))
	if l.Result != "" {
		st.values[l.Result] = inst.Result
	}
	return nil
}

func (st *lowerState) lowerResume(b *ir.BasicBlock, r *ResumeInst) error {
	val, err := st.resolveRef(r.Value)
	if err != nil {
		return err
	}
	b.Append(ir.Resume(val))
	return nil
}

func (st *lowerState) lowerGeneric(b *ir.BasicBlock, g *GenericInst) error {
	op, ok := ir.OpcodeByName[g.Op]
	if !ok {
		return fmt.Errorf("unknown opcode %q", g.Op)
	}
	var t ir.Type
	var err error
	if g.Type != nil {
		t, err = parseType(*g.Type)
		if err != nil {
			return err
		}
	}
	operands, err := st.resolveTypedRefs(g.Operands, t)
	if err != nil {
		return err
	}
	inst := &ir.Instruction{Op: op, Type: t, Operands: operands, Volatile: g.Volatile}
	b.Append(inst)
	if g.Result != "" && inst.Result != nil {
		st.values[g.Result] = inst.Result
	}
	return nil
}

func (st *lowerState) lowerCmp(b *ir.BasicBlock, c *CmpInst) error {
	op, ok := ir.OpcodeByName[c.Op]
	if !ok {
		return fmt.Errorf("unknown opcode %q", c.Op)
	}
	pred, ok := ir.PredicateByName[c.Predicate]
	if !ok {
		return fmt.Errorf("unknown predicate %q", c.Predicate)
	}
	operandType, err := parseType(c.Type)
	if err != nil {
		return err
	}
	operands, err := st.resolveTypedRefs(c.Operands, operandType)
	if err != nil {
		return err
	}
	if len(operands) != 2 {
		return fmt.Errorf("comparison requires exactly two operands")
	}
	var inst *ir.Instruction
	if op == ir.OpICmp {
		inst = b.Append(ir.ICmp(pred, operands[0], operands[1]))
	} else {
		inst = b.Append(ir.FCmp(pred, operands[0], operands[1]))
	}
	if c.Result != "" {
		st.values[c.Result] = inst.Result
	}
	return nil
}

func (st *lowerState) resolveRefs(refs []*ValueRef) ([]*ir.Value, error) {
	out := make([]*ir.Value, len(refs))
	for i, r := range refs {
		v, err := st.resolveRef(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (st *lowerState) resolveRef(r *ValueRef) (*ir.Value, error) {
	return st.resolveTypedRef(r, &ir.IntType{Bits: 64})
}

// resolveTypedRef is like resolveRef but gives an integer literal the
// operand's declared type instead of a fixed default, so constants built
// from the textual format carry the type the instruction actually expects.
func (st *lowerState) resolveTypedRef(r *ValueRef, t ir.Type) (*ir.Value, error) {
	if r.Int != nil {
		return ir.ConstInt(t, *r.Int), nil
	}
	if r.Name != "" {
		return st.resolveValue(r.Name)
	}
	return nil, fmt.Errorf("label operand used where a value was expected: %s", r.Label)
}

func (st *lowerState) resolveTypedRefs(refs []*ValueRef, t ir.Type) ([]*ir.Value, error) {
	out := make([]*ir.Value, len(refs))
	for i, r := range refs {
		v, err := st.resolveTypedRef(r, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// resolveValue looks up a %name value immediately; phi inputs defer lookup
// via st.pending since they may name a value defined later in the function.
func (st *lowerState) resolveValue(name string) (*ir.Value, error) {
	v, ok := st.values[name]
	if !ok {
		return nil, fmt.Errorf("undefined value %%%s", name)
	}
	return v, nil
}

func parseType(name string) (ir.Type, error) {
	switch {
	case name == "ptr":
		return &ir.PtrType{Elem: &ir.IntType{Bits: 8}}, nil
	case name == "void":
		return &ir.VoidType{}, nil
	case name == "label":
		return &ir.LabelType{}, nil
	case strings.HasPrefix(name, "i"):
		if bits, err := strconv.Atoi(name[1:]); err == nil {
			return &ir.IntType{Bits: bits}, nil
		}
	case strings.HasPrefix(name, "f"):
		if bits, err := strconv.Atoi(name[1:]); err == nil {
			return &ir.FloatType{Bits: bits}, nil
		}
	}
	return nil, fmt.Errorf("unknown type %q", name)
}
