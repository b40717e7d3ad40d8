package cfg

import (
	uf "github.com/spakin/disjoint"
)

// Compress splices straight-line block chains into single blocks. A
// block with an unconditional edge to a block with no other
// predecessors absorbs that block's instructions and terminator.
// Lowering produces many such chains around merges and loop headers;
// compressing them shrinks the fixpoint iteration space without
// changing any reachable store.
func (g *Cfg) Compress() {
	elems := make(map[*Block]*uf.Element, len(g.blocks))
	for _, b := range g.blocks {
		elems[b] = uf.NewElement()
	}

	straight := func(b *Block) bool {
		return b.cond == nil && b.next != nil &&
			len(b.next.preds) == 1 && b.next != g.entry
	}

	for _, b := range g.blocks {
		if straight(b) {
			uf.Union(elems[b], elems[b.next])
		}
	}

	chains := make(map[*uf.Element][]*Block)
	for _, b := range g.blocks {
		rep := elems[b].Find()
		chains[rep] = append(chains[rep], b)
	}

	merged := make(map[*Block]bool)
	for rep, chain := range chains {
		if len(chain) < 2 {
			continue
		}

		// The head is the unique member with no predecessor inside
		// the chain.
		var head *Block
		for _, b := range chain {
			internal := false
			for _, p := range b.preds {
				if elems[p].Find() == rep {
					internal = true
					break
				}
			}
			if !internal {
				head = b
				break
			}
		}
		if head == nil {
			// A headless chain is an unreachable cycle; nothing to
			// splice.
			continue
		}

		for straight(head) && elems[head.next].Find() == rep {
			n := head.next
			head.unlink()
			head.instrs = append(head.instrs, n.instrs...)

			cond, next, then, els := n.cond, n.next, n.thenB, n.elsB
			n.unlink()
			n.instrs = nil

			switch {
			case then != nil:
				head.SetBranch(cond, then, els)
			case next != nil:
				head.SetNext(next)
			}
			merged[n] = true
		}
	}

	if len(merged) == 0 {
		return
	}

	kept := g.blocks[:0]
	for _, b := range g.blocks {
		if !merged[b] {
			b.index = len(kept)
			kept = append(kept, b)
		}
	}
	g.blocks = kept
}
