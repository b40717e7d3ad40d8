package absint

import (
	"github.com/slyubomirsky/div-by-zero-checker/analysis/cfg"
	"github.com/slyubomirsky/div-by-zero-checker/analysis/lattice"
	"github.com/slyubomirsky/div-by-zero-checker/utils/worklist"
)

// Analysis is the result of running the sign analysis to a fixpoint
// over one function graph: the entry store of every reachable block,
// and the joined divisor fact of every division site.
type Analysis struct {
	graph *cfg.Cfg
	in    map[*cfg.Block]Store
	facts map[*cfg.BinOp]lattice.Sign
}

// Analyze runs the forward sign analysis on g. The fixpoint exists and
// is reached because stores form a finite-height lattice and every
// transfer is monotone, so each block's entry store can only climb.
func Analyze(g *cfg.Cfg) *Analysis {
	a := &Analysis{
		graph: g,
		in:    make(map[*cfg.Block]Store),
		facts: make(map[*cfg.BinOp]lattice.Sign),
	}
	if g.Entry() == nil {
		return a
	}
	a.in[g.Entry()] = Reaching()
	a.solve()
	a.collect()
	return a
}

func (a *Analysis) Graph() *cfg.Cfg {
	return a.graph
}

// EntryStore is the store describing all executions reaching the start
// of b. Blocks never reached answer the unreachable store.
func (a *Analysis) EntryStore(b *cfg.Block) Store {
	return a.in[b]
}

func (a *Analysis) solve() {
	worklist.Start([]*cfg.Block{a.graph.Entry()}, func(b *cfg.Block, add func(*cfg.Block)) {
		st := a.transferBlock(b, a.in[b], false)

		prop := func(succ *cfg.Block, out Store) {
			joined := a.in[succ].MonoJoin(out)
			if !joined.Eq(a.in[succ]) {
				a.in[succ] = joined
				add(succ)
			}
		}

		switch {
		case b.Cond() != nil:
			thenSt, elsSt := a.refineBranch(st, *b.Cond())
			prop(b.Then(), thenSt)
			prop(b.Else(), elsSt)
		case b.Then() != nil:
			// Branch on an untracked condition: both arms are
			// possible and neither learns anything.
			prop(b.Then(), st)
			prop(b.Else(), st)
		case b.Next() != nil:
			prop(b.Next(), st)
		}
	})
}

// transferBlock pushes the entry store through the block's
// instructions.
func (a *Analysis) transferBlock(b *cfg.Block, st Store, record bool) Store {
	for _, instr := range b.Instrs() {
		switch i := instr.(type) {
		case cfg.Assign:
			st = st.Set(i.Dst, a.eval(st, i.Src, record))
		case cfg.Eval:
			a.eval(st, i.Src, record)
		}
	}
	return st
}

// eval computes the sign of e under st. With record set, the fact of
// every division's divisor is folded into the site's accumulated fact.
func (a *Analysis) eval(st Store, e cfg.Expr, record bool) lattice.Sign {
	switch e := e.(type) {
	case cfg.Lit:
		if !st.Reachable() {
			return lattice.Bot
		}
		return lattice.SignOf(e.Val)
	case cfg.Ref:
		return st.Get(e.V)
	case *cfg.BinOp:
		l := a.eval(st, e.X, record)
		r := a.eval(st, e.Y, record)
		if record && e.Op.IsDivision() {
			if prev, ok := a.facts[e]; ok {
				r = prev.Join(r)
			}
			a.facts[e] = r
		}
		return lattice.Transfer(e.Op, l, r)
	case cfg.Opaque:
		if !st.Reachable() {
			return lattice.Bot
		}
		return lattice.Top
	}
	panic(errUnknownExpr)
}

// refineBranch yields the stores entering the branch arms. Each Ref
// operand is narrowed under the assumption that the comparison held
// (then) or failed (else); a refinement to ⊥ marks the arm infeasible.
func (a *Analysis) refineBranch(st Store, c cfg.Cond) (then, els Store) {
	then, els = st, st
	if !st.Reachable() {
		return
	}

	xf := a.eval(st, c.X, false)
	yf := a.eval(st, c.Y, false)

	if x, ok := c.X.(cfg.Ref); ok {
		then = then.Set(x.V, lattice.Refine(c.Op, xf, yf))
		els = els.Set(x.V, lattice.Refine(c.Op.Negated(), xf, yf))
	}
	if y, ok := c.Y.(cfg.Ref); ok {
		then = then.Set(y.V, lattice.Refine(c.Op.Flipped(), yf, xf))
		els = els.Set(y.V, lattice.Refine(c.Op.Negated().Flipped(), yf, xf))
	}
	return
}

// collect replays each reachable block once over its converged entry
// store, accumulating divisor facts per division site. Sites in
// unreachable blocks are never recorded and stay ⊥.
func (a *Analysis) collect() {
	a.graph.ForEach(func(b *cfg.Block) {
		st := a.in[b]
		if !st.Reachable() {
			return
		}
		st = a.transferBlock(b, st, true)
		if c := b.Cond(); c != nil {
			a.eval(st, c.X, true)
			a.eval(st, c.Y, true)
		}
	})
}
