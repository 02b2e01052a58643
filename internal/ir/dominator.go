package ir

// DominatorTree answers dominance queries over a single function's basic
// blocks, built once per CSE pass invocation and dropped at its end. Uses
// the iterative Cooper-Harvey-Kennedy algorithm, which converges quickly
// on the small, mostly-reducible CFGs this optimizer sees and avoids a
// separate graph library dependency for what is, at this scale, a handful
// of array operations.
type DominatorTree struct {
	fn        *Function
	idom      map[*BasicBlock]*BasicBlock
	children  map[*BasicBlock][]*BasicBlock
	postOrder []*BasicBlock
	order     map[*BasicBlock]int // reverse postorder index, for the fast intersect step
}

// BuildDominatorTree computes the dominator tree of fn's entry block. Call
// once per function per CSE pass iteration; the result is invalidated by
// any control-flow edit (the optimizer never performs one).
func BuildDominatorTree(fn *Function) *DominatorTree {
	dt := &DominatorTree{fn: fn, idom: map[*BasicBlock]*BasicBlock{}, children: map[*BasicBlock][]*BasicBlock{}}
	if len(fn.Blocks) == 0 {
		return dt
	}
	entry := fn.Entry()

	var rpo []*BasicBlock
	visited := map[*BasicBlock]bool{}
	var postVisit func(b *BasicBlock)
	postVisit = func(b *BasicBlock) {
		if visited[b] {
			return
		}
		visited[b] = true
		for _, s := range b.Successors {
			postVisit(s)
		}
		dt.postOrder = append(dt.postOrder, b)
	}
	postVisit(entry)
	for i := len(dt.postOrder) - 1; i >= 0; i-- {
		rpo = append(rpo, dt.postOrder[i])
	}

	dt.order = map[*BasicBlock]int{}
	for i, b := range rpo {
		dt.order[b] = i
	}

	dt.idom[entry] = entry
	changed := true
	for changed {
		changed = false
		for _, b := range rpo {
			if b == entry {
				continue
			}
			var newIdom *BasicBlock
			for _, p := range b.Predecessors {
				if dt.idom[p] == nil {
					continue
				}
				if newIdom == nil {
					newIdom = p
					continue
				}
				newIdom = dt.intersect(newIdom, p)
			}
			if newIdom != nil && dt.idom[b] != newIdom {
				dt.idom[b] = newIdom
				changed = true
			}
		}
	}
	delete(dt.idom, entry) // entry has no strict dominator

	for b, idom := range dt.idom {
		dt.children[idom] = append(dt.children[idom], b)
	}
	return dt
}

func (dt *DominatorTree) intersect(a, b *BasicBlock) *BasicBlock {
	for a != b {
		for dt.order[a] > dt.order[b] {
			a = dt.idom[a]
		}
		for dt.order[b] > dt.order[a] {
			b = dt.idom[b]
		}
	}
	return a
}

// DominatesBlock reports whether a dominates b (non-strictly: a block
// dominates itself).
func (dt *DominatorTree) DominatesBlock(a, b *BasicBlock) bool {
	if a == b {
		return true
	}
	cur := dt.idom[b]
	for cur != nil {
		if cur == a {
			return true
		}
		next := dt.idom[cur]
		if next == cur {
			break
		}
		cur = next
	}
	return cur == a
}

// DominatesInstruction reports whether instruction a dominates instruction
// b: either a's block strictly dominates b's block, or they share a block
// and a appears no later than b in program order.
func (dt *DominatorTree) DominatesInstruction(a, b *Instruction) bool {
	if a.Block == b.Block {
		return instructionIndex(a) <= instructionIndex(b)
	}
	return dt.DominatesBlock(a.Block, b.Block)
}

func instructionIndex(inst *Instruction) int {
	for idx, in := range inst.Block.Instructions {
		if in == inst {
			return idx
		}
	}
	return -1
}

// WalkDepthFirst visits every block reachable from the entry in dominator
// tree depth-first order, root first. CSE relies on this order because
// which duplicate survives is observable via the statistics counters.
func (dt *DominatorTree) WalkDepthFirst(visit func(*BasicBlock)) {
	if len(dt.fn.Blocks) == 0 {
		return
	}
	entry := dt.fn.Entry()
	var walk func(b *BasicBlock)
	walk = func(b *BasicBlock) {
		visit(b)
		for _, c := range dt.children[b] {
			walk(c)
		}
	}
	walk(entry)
}
