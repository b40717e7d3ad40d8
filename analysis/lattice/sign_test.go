package lattice

import "testing"

func TestSignJoinMeetLaws(t *testing.T) {
	all := Signs().All()

	for _, a := range all {
		if !a.Join(a).Eq(a) {
			t.Errorf("%s ⊔ %s = %s, expected %s", a, a, a.Join(a), a)
		}
		if !a.Meet(a).Eq(a) {
			t.Errorf("%s ⊓ %s = %s, expected %s", a, a, a.Meet(a), a)
		}
		if !a.Join(Top).Eq(Top) {
			t.Errorf("%s ⊔ ⊤ = %s, expected ⊤", a, a.Join(Top))
		}
		if !a.Meet(Bot).Eq(Bot) {
			t.Errorf("%s ⊓ ⊥ = %s, expected ⊥", a, a.Meet(Bot))
		}
		if !a.Join(Bot).Eq(a) {
			t.Errorf("%s ⊔ ⊥ = %s, expected %s", a, a.Join(Bot), a)
		}
		if !a.Meet(Top).Eq(a) {
			t.Errorf("%s ⊓ ⊤ = %s, expected %s", a, a.Meet(Top), a)
		}

		for _, b := range all {
			if !a.Join(b).Eq(b.Join(a)) {
				t.Errorf("join not commutative at %s, %s", a, b)
			}
			if !a.Meet(b).Eq(b.Meet(a)) {
				t.Errorf("meet not commutative at %s, %s", a, b)
			}

			for _, c := range all {
				if !a.Join(b).Join(c).Eq(a.Join(b.Join(c))) {
					t.Errorf("join not associative at %s, %s, %s", a, b, c)
				}
				if !a.Meet(b).Meet(c).Eq(a.Meet(b.Meet(c))) {
					t.Errorf("meet not associative at %s, %s, %s", a, b, c)
				}
			}
		}
	}
}

// Join must yield the unique least element above both arguments, and
// meet the unique greatest element below both.
func TestSignJoinIsLub(t *testing.T) {
	all := Signs().All()

	for _, a := range all {
		for _, b := range all {
			j := a.Join(b)
			if !a.Leq(j) || !b.Leq(j) {
				t.Errorf("%s ⊔ %s = %s is not an upper bound", a, b, j)
			}
			m := a.Meet(b)
			if !m.Leq(a) || !m.Leq(b) {
				t.Errorf("%s ⊓ %s = %s is not a lower bound", a, b, m)
			}

			for _, c := range all {
				if a.Leq(c) && b.Leq(c) && !j.Leq(c) {
					t.Errorf("%s ⊔ %s = %s is above bound %s", a, b, j, c)
				}
				if c.Leq(a) && c.Leq(b) && !c.Leq(m) {
					t.Errorf("%s ⊓ %s = %s is below bound %s", a, b, m, c)
				}
			}
		}
	}
}

func TestSignOrder(t *testing.T) {
	// The immediate subtype edges of the sign hierarchy.
	below := map[Sign][]Sign{
		Zero:      {LeqZero, GeqZero},
		Neg:       {LeqZero, NonZero},
		Pos:       {GeqZero, NonZero},
		LeqZero:   {AnyInt},
		NonZero:   {AnyInt},
		GeqZero:   {AnyInt},
		AnyInt:    {Top},
		Undefined: {Top},
	}
	for sub, supers := range below {
		for _, super := range supers {
			if !sub.Leq(super) {
				t.Errorf("expected %s ⊑ %s", sub, super)
			}
			if super.Leq(sub) {
				t.Errorf("unexpected %s ⊑ %s", super, sub)
			}
		}
	}

	// Siblings directly below ⊤ are incomparable.
	if AnyInt.Leq(Undefined) || Undefined.Leq(AnyInt) {
		t.Error("ℤ and undef must be incomparable")
	}

	for _, a := range Signs().All() {
		if !Bot.Leq(a) || !a.Leq(Top) {
			t.Errorf("%s must sit between ⊥ and ⊤", a)
		}
	}
}

func TestSignFlip(t *testing.T) {
	flips := map[Sign]Sign{
		Zero:      Zero,
		Neg:       Pos,
		Pos:       Neg,
		LeqZero:   GeqZero,
		GeqZero:   LeqZero,
		NonZero:   NonZero,
		AnyInt:    AnyInt,
		Undefined: Undefined,
		Top:       Top,
		Bot:       Bot,
	}
	for a, expected := range flips {
		if got := a.Flip(); got != expected {
			t.Errorf("flip(%s) = %s, expected %s", a, got, expected)
		}
		if a.Flip().Flip() != a {
			t.Errorf("flip not an involution at %s", a)
		}
	}
}

func TestSignHeight(t *testing.T) {
	heights := map[Sign]int{
		Bot: 0, Zero: 1, Neg: 1, Pos: 1, Undefined: 1,
		LeqZero: 2, NonZero: 2, GeqZero: 2,
		AnyInt: 3, Top: 4,
	}
	for a, h := range heights {
		if a.Height() != h {
			t.Errorf("height(%s) = %d, expected %d", a, a.Height(), h)
		}
	}
}

func TestSignOf(t *testing.T) {
	tests := []struct {
		v        int64
		expected Sign
	}{
		{0, Zero}, {1, Pos}, {42, Pos}, {-1, Neg}, {-42, Neg},
	}
	for _, test := range tests {
		if got := SignOf(test.v); got != test.expected {
			t.Errorf("SignOf(%d) = %s, expected %s", test.v, got, test.expected)
		}
	}
}
