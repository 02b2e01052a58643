package ir

// Function is a single function: an ordered list of basic blocks, possibly
// empty (an empty function has no blocks and every pass skips it).
type Function struct {
	Name       string
	Params     []*Value
	ReturnType Type
	Blocks     []*BasicBlock

	valueCounter int
	instCounter  int
}

// NewFunction creates an empty function ready to receive blocks.
func NewFunction(name string, returnType Type) *Function {
	return &Function{Name: name, ReturnType: returnType}
}

// AddBlock appends a new, empty basic block with the given label.
func (f *Function) AddBlock(label string) *BasicBlock {
	b := &BasicBlock{Label: label, Function: f, idx: len(f.Blocks)}
	f.Blocks = append(f.Blocks, b)
	return b
}

// AddParam appends a parameter value of the given type and name.
func (f *Function) AddParam(name string, t Type) *Value {
	v := &Value{ID: f.nextValueID(), Name: name, Type: t, Param: true}
	f.Params = append(f.Params, v)
	return v
}

// Entry returns the function's entry block, or nil for an empty function.
func (f *Function) Entry() *BasicBlock {
	if len(f.Blocks) == 0 {
		return nil
	}
	return f.Blocks[0]
}

// ConnectCFG (re)derives every block's Successors/Predecessors from its
// terminator. Called by the host toolkit after construction or after a
// structural edit that doesn't go through Append on a pre-linked block;
// the optimization passes never change control flow, so this only needs
// to run once per built function.
func (f *Function) ConnectCFG() {
	for _, b := range f.Blocks {
		b.Successors = nil
		b.Predecessors = nil
	}
	for _, b := range f.Blocks {
		term := b.Terminator()
		if term == nil {
			continue
		}
		for _, t := range term.Targets {
			b.addSuccessor(t)
		}
	}
}

func (f *Function) nextValueID() int {
	f.valueCounter++
	return f.valueCounter
}

func (f *Function) nextInstID() int {
	f.instCounter++
	return f.instCounter
}

func (f *Function) newValue(t Type, def *Instruction) *Value {
	return &Value{ID: f.nextValueID(), Type: t, Def: def}
}
