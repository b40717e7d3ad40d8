package lattice

import "testing"

// witnesses gives, for each element with a non-empty set of defined
// integer members, a small sample of concrete members exercising every
// value class the element admits.
var witnesses = map[Sign][]int64{
	Zero:    {0},
	Neg:     {-7, -1},
	Pos:     {1, 7},
	LeqZero: {-7, -1, 0},
	NonZero: {-7, -1, 1, 7},
	GeqZero: {0, 1, 7},
	AnyInt:  {-7, -1, 0, 1, 7},
	Top:     {-7, -1, 0, 1, 7},
}

var arithOps = []ArithOp{Add, Sub, Mul, Div, Rem}

func apply(op ArithOp, x, y int64) int64 {
	switch op {
	case Add:
		return x + y
	case Sub:
		return x - y
	case Mul:
		return x * y
	case Div:
		return x / y
	case Rem:
		return x % y
	}
	panic(errPatternMatch(op))
}

// Every concrete outcome of l op r must be admitted by the abstract
// outcome Transfer(op, l, r).
func TestTransferSoundness(t *testing.T) {
	for _, op := range arithOps {
		for l, xs := range witnesses {
			for r, ys := range witnesses {
				res := Transfer(op, l, r)
				for _, x := range xs {
					for _, y := range ys {
						if op.IsDivision() && y == 0 {
							continue
						}
						v := apply(op, x, y)
						if !SignOf(v).Leq(res) {
							t.Errorf("%d %s %d = %d escapes %s %s %s = %s",
								x, op, y, v, l, op, r, res)
						}
					}
				}
			}
		}
	}
}

// More precise operands never yield a less precise result.
func TestTransferMonotone(t *testing.T) {
	all := Signs().All()
	for _, op := range arithOps {
		for _, l1 := range all {
			for _, l2 := range all {
				if !l1.Leq(l2) {
					continue
				}
				for _, r1 := range all {
					for _, r2 := range all {
						if !r1.Leq(r2) {
							continue
						}
						v1, v2 := Transfer(op, l1, r1), Transfer(op, l2, r2)
						if !v1.Leq(v2) {
							t.Errorf("%s not monotone: (%s, %s) ⊑ (%s, %s) but %s ⋢ %s",
								op, l1, r1, l2, r2, v1, v2)
						}
					}
				}
			}
		}
	}
}

func TestTransferBot(t *testing.T) {
	for _, op := range arithOps {
		for _, a := range Signs().All() {
			if !Transfer(op, Bot, a).IsBot() || !Transfer(op, a, Bot).IsBot() {
				t.Errorf("%s with a ⊥ operand must stay ⊥", op)
			}
		}
	}
}

// A divisor known to be exactly zero makes the result undefined; a
// divisor that merely admits zero loses all precision instead.
func TestTransferZeroDivisor(t *testing.T) {
	for _, op := range []ArithOp{Div, Rem} {
		for _, l := range []Sign{Zero, Neg, Pos, LeqZero, NonZero, GeqZero, AnyInt, Top} {
			if got := Transfer(op, l, Zero); got != Undefined {
				t.Errorf("%s %s 0 = %s, expected undef", l, op, got)
			}
			for _, r := range []Sign{LeqZero, GeqZero, AnyInt, Top} {
				if got := Transfer(op, l, r); got != Top {
					t.Errorf("%s %s %s = %s, expected ⊤", l, op, r, got)
				}
			}
		}
	}
}

func TestTransferUndefinedPropagates(t *testing.T) {
	for _, op := range arithOps {
		for _, a := range []Sign{Zero, Neg, Pos, LeqZero, NonZero, GeqZero, AnyInt, Undefined, Top} {
			if got := Transfer(op, Undefined, a); got != Undefined {
				t.Errorf("undef %s %s = %s, expected undef", op, a, got)
			}
			if got := Transfer(op, a, Undefined); got != Undefined {
				t.Errorf("%s %s undef = %s, expected undef", a, op, got)
			}
		}
	}
}

func TestTransferFacts(t *testing.T) {
	tests := []struct {
		op       ArithOp
		l, r     Sign
		expected Sign
	}{
		{Add, Pos, Pos, Pos},
		{Add, Neg, Neg, Neg},
		{Add, Pos, GeqZero, Pos},
		{Add, Neg, Pos, AnyInt},
		{Add, Zero, NonZero, NonZero},
		{Sub, Pos, Neg, Pos},
		{Sub, Neg, Pos, Neg},
		{Sub, Zero, Pos, Neg},
		{Sub, LeqZero, GeqZero, LeqZero},
		{Mul, Neg, Neg, Pos},
		{Mul, Neg, Pos, Neg},
		{Mul, NonZero, NonZero, NonZero},
		{Mul, Zero, Top, Top},
		{Mul, Zero, AnyInt, Zero},
		{Div, Pos, Pos, GeqZero},
		{Div, Pos, Neg, LeqZero},
		{Div, NonZero, NonZero, AnyInt},
		{Rem, Neg, NonZero, LeqZero},
		{Rem, Pos, Neg, GeqZero},
	}
	for _, test := range tests {
		if got := Transfer(test.op, test.l, test.r); got != test.expected {
			t.Errorf("%s %s %s = %s, expected %s",
				test.l, test.op, test.r, got, test.expected)
		}
	}
}
