package absint

import (
	"testing"

	"github.com/slyubomirsky/div-by-zero-checker/analysis/cfg"
	"github.com/slyubomirsky/div-by-zero-checker/analysis/lattice"
)

func TestStoreDefaults(t *testing.T) {
	g := cfg.NewCfg("t")
	x := g.NewVar("x")

	if f := Reaching().Get(x); f != lattice.Top {
		t.Errorf("unbound variable reads %s, expected ⊤", f)
	}
	if f := Unreachable().Get(x); f != lattice.Bot {
		t.Errorf("unreachable store reads %s, expected ⊥", f)
	}
}

func TestStoreSet(t *testing.T) {
	g := cfg.NewCfg("t")
	x, y := g.NewVar("x"), g.NewVar("y")

	st := Reaching().Set(x, lattice.Pos)
	if st.Get(x) != lattice.Pos || st.Get(y) != lattice.Top {
		t.Error("set must bind only the given variable")
	}

	// Persistence: the original store is unaffected.
	st2 := st.Set(x, lattice.Neg)
	if st.Get(x) != lattice.Pos || st2.Get(x) != lattice.Neg {
		t.Error("stores must be persistent")
	}

	// Binding ⊤ and being unbound are the same state.
	if !st.Set(x, lattice.Top).Eq(Reaching()) {
		t.Error("binding ⊤ must erase the entry")
	}

	// Binding ⊥ collapses the store.
	if st.Set(x, lattice.Bot).Reachable() {
		t.Error("binding ⊥ must make the store unreachable")
	}
}

func TestStoreJoin(t *testing.T) {
	g := cfg.NewCfg("t")
	x, y := g.NewVar("x"), g.NewVar("y")

	a := Reaching().Set(x, lattice.Pos).Set(y, lattice.Zero)
	b := Reaching().Set(x, lattice.Neg)

	j := a.MonoJoin(b)
	if j.Get(x) != lattice.NonZero {
		t.Errorf("x joins to %s, expected ≠0", j.Get(x))
	}
	// y is ⊤ in b, so the join drops it.
	if j.Get(y) != lattice.Top {
		t.Errorf("y joins to %s, expected ⊤", j.Get(y))
	}

	if !a.MonoJoin(Unreachable()).Eq(a) || !Unreachable().MonoJoin(a).Eq(a) {
		t.Error("the unreachable store must be the join unit")
	}
}

func TestStoreEq(t *testing.T) {
	g := cfg.NewCfg("t")
	x := g.NewVar("x")

	a := Reaching().Set(x, lattice.Pos)
	b := Reaching().Set(x, lattice.Pos)
	if !a.Eq(b) {
		t.Error("equal bindings must compare equal")
	}
	if a.Eq(Reaching()) || a.Eq(Unreachable()) {
		t.Error("different bindings must compare unequal")
	}
}
