package lattice

import "strings"

// SignLattice is the lattice of sign facts. It is fixed and finite,
// so a single statically-known instance serves every analysis.
type SignLattice struct{}

// signLattice is the singleton instantiation of the sign lattice.
var signLattice = &SignLattice{}

// Signs yields the sign lattice.
func Signs() *SignLattice {
	return signLattice
}

// Top yields ⊤, the element carrying no information.
func (*SignLattice) Top() Sign {
	return Top
}

// Bot yields ⊥, the unreachable element.
func (*SignLattice) Bot() Sign {
	return Bot
}

// All enumerates every element, table-indexable elements first in
// canonical order, then ⊥.
func (*SignLattice) All() []Sign {
	return []Sign{Zero, Neg, Pos, LeqZero, NonZero, GeqZero, AnyInt, Undefined, Top, Bot}
}

func (l *SignLattice) String() string {
	strs := make([]string, 0, 8)
	for _, s := range l.All() {
		if s != Top && s != Bot {
			strs = append(strs, s.String())
		}
	}
	return colorize.Lattice("⊥") + " < {" + strings.Join(strs, ", ") + "} < " + colorize.Lattice("⊤")
}
