package absint

import (
	"github.com/slyubomirsky/div-by-zero-checker/analysis/cfg"
	"github.com/slyubomirsky/div-by-zero-checker/analysis/lattice"
)

// Unsafe decides whether a divisor fact admits zero, or gives no
// usable bound at all. ⊥ is not unsafe: the site is unreachable.
// Undefined is not unsafe either; an undefined divisor is a different
// error, produced upstream of this site, and flagging it here would
// double-report.
func Unsafe(f lattice.Sign) bool {
	switch f {
	case lattice.Top, lattice.AnyInt, lattice.GeqZero, lattice.LeqZero, lattice.Zero:
		return true
	}
	return false
}

// FactAt is the joined fact of the site's divisor over all executions
// reaching it. Sites never reached answer ⊥.
func (a *Analysis) FactAt(site *cfg.BinOp) lattice.Sign {
	if f, ok := a.facts[site]; ok {
		return f
	}
	return lattice.Bot
}

// IsUnsafeDivision checks whether the divisor of site cannot be proven
// non-zero.
func (a *Analysis) IsUnsafeDivision(site *cfg.BinOp) bool {
	return Unsafe(a.FactAt(site))
}

// UnsafeSites lists the division sites to report, in the graph's
// deterministic site order.
func (a *Analysis) UnsafeSites() []*cfg.BinOp {
	var unsafe []*cfg.BinOp
	for _, site := range a.graph.Sites() {
		if a.IsUnsafeDivision(site) {
			unsafe = append(unsafe, site)
		}
	}
	return unsafe
}
