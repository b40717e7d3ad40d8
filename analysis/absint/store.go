package absint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/benbjohnson/immutable"

	"github.com/slyubomirsky/div-by-zero-checker/analysis/cfg"
	"github.com/slyubomirsky/div-by-zero-checker/analysis/lattice"
)

// varHasher hashes tracked variables by their numeric identity.
type varHasher struct{}

func (varHasher) Hash(v cfg.Var) uint32 {
	return uint32(v.Id())
}

func (varHasher) Equal(a, b cfg.Var) bool {
	return a.Id() == b.Id()
}

// Store is an abstract state: a persistent map from tracked variables
// to sign facts. Variables absent from the map are ⊤, so a fresh store
// answers ⊤ for everything. The zero Store is the unreachable state,
// where every variable is ⊥.
type Store struct {
	m *immutable.Map[cfg.Var, lattice.Sign]
}

// Unreachable yields the store of an unreached program point.
func Unreachable() Store {
	return Store{}
}

// Reaching yields the store binding every variable to ⊤.
func Reaching() Store {
	return Store{m: immutable.NewMap[cfg.Var, lattice.Sign](varHasher{})}
}

func (s Store) Reachable() bool {
	return s.m != nil
}

// Get looks up the fact for v.
func (s Store) Get(v cfg.Var) lattice.Sign {
	if !s.Reachable() {
		return lattice.Bot
	}
	if f, ok := s.m.Get(v); ok {
		return f
	}
	return lattice.Top
}

// Set binds v to f. Binding ⊤ erases the entry, keeping absence and ⊤
// interchangeable. Binding ⊥ collapses the whole store to unreachable:
// no execution can bring a variable to the empty value class.
func (s Store) Set(v cfg.Var, f lattice.Sign) Store {
	if !s.Reachable() {
		return s
	}
	if f.IsBot() {
		return Unreachable()
	}
	if f == lattice.Top {
		return Store{m: s.m.Delete(v)}
	}
	return Store{m: s.m.Set(v, f)}
}

// MonoJoin joins two stores pointwise. The unreachable store is the
// unit. Entries joining to ⊤ are dropped, so only variables bounded in
// both stores survive.
func (s Store) MonoJoin(o Store) Store {
	switch {
	case !s.Reachable():
		return o
	case !o.Reachable():
		return s
	}

	res := Reaching()
	for it := s.m.Iterator(); ; {
		v, f, ok := it.Next()
		if !ok {
			break
		}
		of, bound := o.m.Get(v)
		if !bound {
			continue
		}
		if j := f.Join(of); j != lattice.Top {
			res.m = res.m.Set(v, j)
		}
	}
	return res
}

// Eq checks whether two stores bind exactly the same facts.
func (s Store) Eq(o Store) bool {
	if s.Reachable() != o.Reachable() {
		return false
	}
	if !s.Reachable() {
		return true
	}
	if s.m.Len() != o.m.Len() {
		return false
	}
	for it := s.m.Iterator(); ; {
		v, f, ok := it.Next()
		if !ok {
			return true
		}
		if of, bound := o.m.Get(v); !bound || of != f {
			return false
		}
	}
}

func (s Store) String() string {
	if !s.Reachable() {
		return "unreachable"
	}

	type entry struct {
		v cfg.Var
		f lattice.Sign
	}
	entries := make([]entry, 0, s.m.Len())
	for it := s.m.Iterator(); ; {
		v, f, ok := it.Next()
		if !ok {
			break
		}
		entries = append(entries, entry{v, f})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].v.Id() < entries[j].v.Id()
	})

	strs := make([]string, 0, len(entries))
	for _, e := range entries {
		strs = append(strs, fmt.Sprintf("%s ↦ %s", e.v, e.f))
	}
	return "[ " + strings.Join(strs, ", ") + " ]"
}
