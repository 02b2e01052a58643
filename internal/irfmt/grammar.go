package irfmt

// Grammar for the textual IR format, in a declarative participle
// struct-tag style: EBNF-flavored tags — `{ }` for zero-or-more groups,
// `[ ]` for optional groups, bare `|` between fields for alternation with
// no wrapping parens — describing a line-oriented instruction syntax.
//
//   func @add(%x: i32, %y: i32) -> i32 {
//   entry:
//     %a = add i32 %x, %y
//     ret i32 %a
//   }

// File is a whole module: an ordered sequence of function definitions.
type File struct {
	Functions []*FuncDecl `@@*`
}

// FuncDecl is one function: a name, a parameter list, an optional return
// type, and an ordered sequence of labeled blocks.
type FuncDecl struct {
	Name   string       `"func" "@" @Ident "("`
	Params []*ParamDecl `[ @@ { "," @@ } ] ")"`
	Ret    *string      `[ Arrow @Ident ]`
	Blocks []*BlockDecl `"{" @@+ "}"`
}

// ParamDecl is a single "%name: type" function parameter.
type ParamDecl struct {
	Name string `"%" @Ident ":"`
	Type string `@Ident`
}

// BlockDecl is a label followed by its straight-line instruction sequence.
type BlockDecl struct {
	Label string  `@Ident ":"`
	Insts []*Inst `@@*`
}

// Inst is one instruction line. Each alternative matches a distinct
// textual shape; GenericInst is tried last because every other shape has a
// distinguishing leading keyword or structure GenericInst lacks.
type Inst struct {
	Phi         *PhiInst         `  @@`
	Call        *CallInst        `| @@`
	Invoke      *InvokeInst      `| @@`
	Branch      *BranchInst      `| @@`
	Jump        *JumpInst        `| @@`
	Ret         *RetInst         `| @@`
	Store       *StoreInst       `| @@`
	Resume      *ResumeInst      `| @@`
	Unreachable *UnreachableInst `| @@`
	Fence       *FenceInst       `| @@`
	Cmp         *CmpInst         `| @@`
	LoadI       *LoadInst        `| @@`
	Generic     *GenericInst     `| @@`
}

// PhiInst: "%r = phi i32 [%a, bb0], [%b, bb1]"
type PhiInst struct {
	Result string          `"%" @Ident "=" "phi"`
	Type   string          `@Ident`
	Inputs []*PhiInputDecl `"[" @@ "]" { "," "[" @@ "]" }`
}

// PhiInputDecl is "%value, label" inside a phi's bracketed input list.
type PhiInputDecl struct {
	Value string `"%" @Ident ","`
	Label string `@Ident`
}

// CallInst: "[%r = ]call [type ]@callee(%a, %b)"
type CallInst struct {
	Result string      `[ "%" @Ident "=" ] "call"`
	Type   *string     `[ @Ident ]`
	Callee string      `"@" @Ident "("`
	Args   []*ValueRef `[ @@ { "," @@ } ] ")"`
}

// InvokeInst: "[%r = ]invoke [type ]@callee(args) to label N unwind label U"
type InvokeInst struct {
	Result string      `[ "%" @Ident "=" ] "invoke"`
	Type   *string     `[ @Ident ]`
	Callee string      `"@" @Ident "("`
	Args   []*ValueRef `[ @@ { "," @@ } ] ")" "to" "label"`
	Normal string      `@Ident "unwind" "label"`
	Unwind string      `@Ident`
}

// BranchInst: "br %cond, label then, label else"
type BranchInst struct {
	Cond *ValueRef `"br" @@ ","`
	Then string    `"label" @Ident ","`
	Else string    `"label" @Ident`
}

// JumpInst: "br label target" (unconditional)
type JumpInst struct {
	Target string `"br" "label" @Ident`
}

// RetInst: "ret void". The tags read as ("ret" "void") | (Ident value):
// the "ret" keyword belongs to the first alternative only, so a typed
// return such as "ret i32 %a" does not match the second one; it falls
// through to GenericInst, whose lowering yields an OpRet of that type.
type RetInst struct {
	Kw    string    `"ret"`
	Void  bool      `  @"void"`
	Type  *string   `| @Ident`
	Value *ValueRef `  @@`
}

// StoreInst: "store [volatile ]type %val, ptr %addr"
type StoreInst struct {
	Volatile bool      `"store" [ @"volatile" ]`
	Type     string    `@Ident`
	Value    *ValueRef `@@ ","`
	AddrType string    `@Ident`
	Addr     *ValueRef `@@`
}

// ResumeInst: "resume type %value"
type ResumeInst struct {
	Type  string    `"resume" @Ident`
	Value *ValueRef `@@`
}

// UnreachableInst: "unreachable"
type UnreachableInst struct {
	Marker bool `@"unreachable"`
}

// FenceInst: "fence"
type FenceInst struct {
	Marker bool `@"fence"`
}

// CmpInst: "[%r = ](icmp|fcmp) predicate type operand, operand". Split out
// of GenericInst because a comparison's predicate and type are both bare
// identifiers in sequence, so folding them into one optional-Ident-twice
// shape (as GenericInst's type alone does) would be ambiguous about which
// identifier is which.
type CmpInst struct {
	Result    string      `[ "%" @Ident "=" ]`
	Op        string      `@( "icmp" | "fcmp" )`
	Predicate string      `@Ident`
	Type      string      `@Ident`
	Operands  []*ValueRef `[ @@ { "," @@ } ]`
}

// LoadInst: "[%r = ]load [volatile ]type, ptr %addr". Split out of
// GenericInst because load, like store, names two types (the loaded
// value's and the pointer's) separated by a comma rather than a single
// type followed by a value list.
type LoadInst struct {
	Result   string    `[ "%" @Ident "=" ] "load"`
	Volatile bool      `[ @"volatile" ]`
	Type     string    `@Ident ","`
	AddrType string    `@Ident`
	Addr     *ValueRef `@@`
}

// GenericInst covers every opcode whose syntax is
// "[%r = ][volatile ]op type operand, operand, ...": arithmetic, bitwise,
// casts, vector ops, getelementptr, select, and alloca. icmp/fcmp are
// handled by CmpInst, and load by LoadInst, since both carry more than one
// type token. An identifier followed by ":" is a block label, not an
// opcode, so it ends the current block's instruction list.
type GenericInst struct {
	Result   string      `[ "%" @Ident "=" ]`
	Volatile bool        `[ @"volatile" ]`
	Op       string      `@Ident (?! ":")`
	Type     *string     `[ @Ident ]`
	Operands []*ValueRef `[ @@ { "," @@ } ]`
}

// ValueRef is an operand: an SSA reference, an integer literal, or a
// label reference used by getelementptr/phi-adjacent operand positions.
type ValueRef struct {
	Label string `  "label" @Ident`
	Name  string `| "%" @Ident`
	Int   *int64 `| @Int`
}
