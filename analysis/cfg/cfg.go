package cfg

// Cfg is the analysis graph of a single function body: basic blocks of
// assignments connected by unconditional or comparison-branch edges,
// with a single entry block.
type Cfg struct {
	name   string
	blocks []*Block
	entry  *Block
	nvars  int
}

// Block is a basic block. It holds straight-line instructions followed
// by one terminator: an unconditional edge, a two-way branch with an
// optional comparison, or nothing (exit).
type Block struct {
	index  int
	instrs []Instr

	cond        *Cond
	next        *Block
	thenB, elsB *Block
	preds       []*Block
}

func NewCfg(name string) *Cfg {
	return &Cfg{name: name}
}

func (g *Cfg) Name() string {
	return g.name
}

// NewVar mints a fresh tracked variable. Distinct calls yield distinct
// variables even under the same display name.
func (g *Cfg) NewVar(name string) Var {
	g.nvars++
	return Var{id: g.nvars, name: name}
}

func (g *Cfg) NewBlock() *Block {
	b := &Block{index: len(g.blocks)}
	g.blocks = append(g.blocks, b)
	return b
}

func (g *Cfg) SetEntry(b *Block) {
	g.entry = b
}

func (g *Cfg) Entry() *Block {
	return g.entry
}

// Blocks lists every block in creation order, including blocks made
// unreachable by compression or branch pruning.
func (g *Cfg) Blocks() []*Block {
	return g.blocks
}

// ForEach executes the given procedure for each block reachable from
// the entry, in depth-first order with the then edge prioritized.
func (g *Cfg) ForEach(do func(*Block)) {
	visited := make(map[*Block]struct{})

	var visit func(*Block)
	visit = func(b *Block) {
		if _, ok := visited[b]; ok {
			return
		}
		visited[b] = struct{}{}

		do(b)

		for _, succ := range b.Succs() {
			visit(succ)
		}
	}

	if g.entry != nil {
		visit(g.entry)
	}
}

// FindAll aggregates all reachable blocks that satisfy the predicate.
func (g *Cfg) FindAll(pred func(*Block) bool) map[*Block]struct{} {
	found := make(map[*Block]struct{})

	g.ForEach(func(b *Block) {
		if pred(b) {
			found[b] = struct{}{}
		}
	})

	return found
}

// Sites lists every division and remainder site reachable from the
// entry, in deterministic order: blocks depth-first, instructions in
// block order, subexpressions left to right, condition last.
func (g *Cfg) Sites() []*BinOp {
	var sites []*BinOp

	var walk func(Expr)
	walk = func(e Expr) {
		b, ok := e.(*BinOp)
		if !ok {
			return
		}
		walk(b.X)
		walk(b.Y)
		if b.Op.IsDivision() {
			sites = append(sites, b)
		}
	}

	g.ForEach(func(b *Block) {
		for _, instr := range b.instrs {
			switch i := instr.(type) {
			case Assign:
				walk(i.Src)
			case Eval:
				walk(i.Src)
			}
		}
		if b.cond != nil {
			walk(b.cond.X)
			walk(b.cond.Y)
		}
	})

	return sites
}

func (b *Block) Index() int {
	return b.index
}

func (b *Block) Instrs() []Instr {
	return b.instrs
}

// Assign appends a variable assignment to the block.
func (b *Block) Assign(dst Var, src Expr) {
	b.instrs = append(b.instrs, Assign{Dst: dst, Src: src})
}

// Eval appends an evaluate-and-discard instruction to the block.
func (b *Block) Eval(src Expr) {
	b.instrs = append(b.instrs, Eval{Src: src})
}

// Cond is the comparison guarding the block's branch, or nil when the
// block does not branch or branches on an untracked condition.
func (b *Block) Cond() *Cond {
	return b.cond
}

// SetNext terminates the block with an unconditional edge.
func (b *Block) SetNext(next *Block) {
	b.unlink()
	b.next = next
	next.preds = append(next.preds, b)
}

// SetBranch terminates the block with a two-way branch. A nil cond
// makes the branch nondeterministic: both edges stay unrefined.
func (b *Block) SetBranch(cond *Cond, then, els *Block) {
	b.unlink()
	b.cond = cond
	b.thenB, b.elsB = then, els
	then.preds = append(then.preds, b)
	if els != then {
		els.preds = append(els.preds, b)
	}
}

// unlink detaches the block's outgoing edges, clearing the matching
// predecessor entries. Terminators may be replaced during lowering
// and compression.
func (b *Block) unlink() {
	for _, succ := range b.Succs() {
		succ.removePred(b)
	}
	b.cond, b.next, b.thenB, b.elsB = nil, nil, nil, nil
}

func (b *Block) removePred(p *Block) {
	for i, q := range b.preds {
		if q == p {
			b.preds = append(b.preds[:i], b.preds[i+1:]...)
			return
		}
	}
}

func (b *Block) Next() *Block {
	return b.next
}

func (b *Block) Then() *Block {
	return b.thenB
}

func (b *Block) Else() *Block {
	return b.elsB
}

func (b *Block) Succs() []*Block {
	switch {
	case b.thenB != nil:
		if b.thenB == b.elsB {
			return []*Block{b.thenB}
		}
		return []*Block{b.thenB, b.elsB}
	case b.next != nil:
		return []*Block{b.next}
	}
	return nil
}

func (b *Block) Preds() []*Block {
	return b.preds
}
