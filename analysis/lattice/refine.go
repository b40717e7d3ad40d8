package lattice

// CmpOp enumerates the comparison operators branch refinement
// understands.
type CmpOp uint8

const (
	EQ CmpOp = iota
	NE
	LT
	LE
	GT
	GE
)

func (op CmpOp) String() string {
	switch op {
	case EQ:
		return "=="
	case NE:
		return "!="
	case LT:
		return "<"
	case LE:
		return "<="
	case GT:
		return ">"
	case GE:
		return ">="
	}
	panic(errPatternMatch(op))
}

// Flipped swaps the operand roles: x op y ⟺ y op.Flipped() x. It lets
// the left-operand tables refine the right operand too.
func (op CmpOp) Flipped() CmpOp {
	switch op {
	case EQ:
		return EQ
	case NE:
		return NE
	case LT:
		return GT
	case LE:
		return GE
	case GT:
		return LT
	case GE:
		return LE
	}
	panic(errPatternMatch(op))
}

// Negated is the logical negation: x op y ⟺ !(x op.Negated() y). It
// yields the refinement for the else branch.
func (op CmpOp) Negated() CmpOp {
	switch op {
	case EQ:
		return NE
	case NE:
		return EQ
	case LT:
		return GE
	case LE:
		return GT
	case GT:
		return LE
	case GE:
		return LT
	}
	panic(errPatternMatch(op))
}

// The refinement tables give a narrowed element for the left operand
// of l op r under the assumption that the comparison is true. ⊥ cells
// mark operand combinations for which the comparison cannot be true
// at all. Each table result is ⊑ the left operand: refinement only
// ever narrows.

// neTable: inequality only teaches something when the right side is
// exactly 0; not being equal to one specific unknown member of a
// class says nothing about the class. ⊤ compared against UD keeps
// only the defined portion, ℤ.
//
//	l != r | 0  | <0 | >0 | ≤0 | ≠0 | ≥0 | ℤ  | UD | ⊤
//	    0  | ⊥  | 0  | 0  | 0  | 0  | 0  | 0  | 0  | 0
//	   <0  | <0 | <0 | <0 | <0 | <0 | <0 | <0 | <0 | <0
//	   >0  | >0 | >0 | >0 | >0 | >0 | >0 | >0 | >0 | >0
//	   ≤0  | <0 | ≤0 | ≤0 | ≤0 | ≤0 | ≤0 | ≤0 | ≤0 | ≤0
//	   ≠0  | ≠0 | ≠0 | ≠0 | ≠0 | ≠0 | ≠0 | ≠0 | ≠0 | ≠0
//	   ≥0  | >0 | ≥0 | ≥0 | ≥0 | ≥0 | ≥0 | ≥0 | ≥0 | ≥0
//	    ℤ  | ≠0 | ℤ  | ℤ  | ℤ  | ℤ  | ℤ  | ℤ  | ℤ  | ℤ
//	   UD  | UD | UD | UD | UD | UD | UD | UD | UD | UD
//	    ⊤  | ≠0 | ⊤  | ⊤  | ⊤  | ⊤  | ⊤  | ⊤  | ℤ  | ⊤
var neTable = signTable{
	Zero:      {Bot, Zero, Zero, Zero, Zero, Zero, Zero, Zero, Zero},
	Neg:       {Neg, Neg, Neg, Neg, Neg, Neg, Neg, Neg, Neg},
	Pos:       {Pos, Pos, Pos, Pos, Pos, Pos, Pos, Pos, Pos},
	LeqZero:   {Neg, LeqZero, LeqZero, LeqZero, LeqZero, LeqZero, LeqZero, LeqZero, LeqZero},
	NonZero:   {NonZero, NonZero, NonZero, NonZero, NonZero, NonZero, NonZero, NonZero, NonZero},
	GeqZero:   {Pos, GeqZero, GeqZero, GeqZero, GeqZero, GeqZero, GeqZero, GeqZero, GeqZero},
	AnyInt:    {NonZero, AnyInt, AnyInt, AnyInt, AnyInt, AnyInt, AnyInt, AnyInt, AnyInt},
	Undefined: {Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined},
	Top:       {NonZero, Top, Top, Top, Top, Top, Top, AnyInt, Top},
}

// ltTable: the bound is exclusive, so l < (≤0) rules 0 out of l. A
// right side that may be positive (>0, ≠0, ≥0, ℤ, ⊤) teaches nothing:
// some member of the class exceeds any candidate value of l.
//
//	l < r | 0  | <0 | >0 | ≤0 | ≠0 | ≥0 | ℤ  | UD | ⊤
//	   0  | ⊥  | ⊥  | 0  | ⊥  | 0  | 0  | 0  | ⊥  | 0
//	  <0  | <0 | <0 | <0 | <0 | <0 | <0 | <0 | ⊥  | <0
//	  >0  | ⊥  | ⊥  | >0 | ⊥  | >0 | >0 | >0 | ⊥  | >0
//	  ≤0  | <0 | <0 | ≤0 | <0 | ≤0 | ≤0 | ≤0 | ⊥  | ≤0
//	  ≠0  | <0 | <0 | ≠0 | <0 | ≠0 | ≠0 | ≠0 | ⊥  | ≠0
//	  ≥0  | ⊥  | ⊥  | ≥0 | ⊥  | ≥0 | ≥0 | ≥0 | ⊥  | ≥0
//	   ℤ  | <0 | <0 | ℤ  | <0 | ℤ  | ℤ  | ℤ  | ⊥  | ℤ
//	  UD  | UD | UD | UD | UD | UD | UD | UD | UD | UD
//	   ⊤  | <0 | <0 | ℤ  | <0 | ℤ  | ℤ  | ℤ  | UD | ℤ
var ltTable = signTable{
	Zero:      {Bot, Bot, Zero, Bot, Zero, Zero, Zero, Bot, Zero},
	Neg:       {Neg, Neg, Neg, Neg, Neg, Neg, Neg, Bot, Neg},
	Pos:       {Bot, Bot, Pos, Bot, Pos, Pos, Pos, Bot, Pos},
	LeqZero:   {Neg, Neg, LeqZero, Neg, LeqZero, LeqZero, LeqZero, Bot, LeqZero},
	NonZero:   {Neg, Neg, NonZero, Neg, NonZero, NonZero, NonZero, Bot, NonZero},
	GeqZero:   {Bot, Bot, GeqZero, Bot, GeqZero, GeqZero, GeqZero, Bot, GeqZero},
	AnyInt:    {Neg, Neg, AnyInt, Neg, AnyInt, AnyInt, AnyInt, Bot, AnyInt},
	Undefined: {Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined},
	Top:       {Neg, Neg, AnyInt, Neg, AnyInt, AnyInt, AnyInt, Undefined, AnyInt},
}

// leTable: the inclusive bound keeps 0 in play. Notably (≥0) ≤ 0 can
// only hold when l is exactly 0, and (≠0) ≤ (≤0) forces l negative.
//
//	l <= r | 0  | <0 | >0 | ≤0 | ≠0 | ≥0 | ℤ  | UD | ⊤
//	    0  | 0  | 0  | 0  | 0  | 0  | 0  | 0  | ⊥  | 0
//	   <0  | <0 | <0 | <0 | <0 | <0 | <0 | <0 | ⊥  | <0
//	   >0  | ⊥  | ⊥  | >0 | ⊥  | >0 | >0 | >0 | ⊥  | >0
//	   ≤0  | ≤0 | <0 | ≤0 | ≤0 | ≤0 | ≤0 | ≤0 | ⊥  | ≤0
//	   ≠0  | <0 | <0 | ≠0 | <0 | ≠0 | ≠0 | ≠0 | ⊥  | ≠0
//	   ≥0  | 0  | ⊥  | ≥0 | 0  | ≥0 | ≥0 | ≥0 | ⊥  | ≥0
//	    ℤ  | ≤0 | <0 | ℤ  | ≤0 | ℤ  | ℤ  | ℤ  | ⊥  | ℤ
//	   UD  | UD | UD | UD | UD | UD | UD | UD | UD | UD
//	    ⊤  | ≤0 | <0 | ℤ  | ≤0 | ℤ  | ℤ  | ℤ  | UD | ℤ
var leTable = signTable{
	Zero:      {Zero, Zero, Zero, Zero, Zero, Zero, Zero, Bot, Zero},
	Neg:       {Neg, Neg, Neg, Neg, Neg, Neg, Neg, Bot, Neg},
	Pos:       {Bot, Bot, Pos, Bot, Pos, Pos, Pos, Bot, Pos},
	LeqZero:   {LeqZero, Neg, LeqZero, LeqZero, LeqZero, LeqZero, LeqZero, Bot, LeqZero},
	NonZero:   {Neg, Neg, NonZero, Neg, NonZero, NonZero, NonZero, Bot, NonZero},
	GeqZero:   {Zero, Bot, GeqZero, Zero, GeqZero, GeqZero, GeqZero, Bot, GeqZero},
	AnyInt:    {LeqZero, Neg, AnyInt, LeqZero, AnyInt, AnyInt, AnyInt, Bot, AnyInt},
	Undefined: {Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined},
	Top:       {LeqZero, Neg, AnyInt, LeqZero, AnyInt, AnyInt, AnyInt, Undefined, AnyInt},
}

// gtTable mirrors ltTable across zero: the exclusive bound means
// l > (≥0) forces l strictly positive.
//
//	l > r | 0  | <0 | >0 | ≤0 | ≠0 | ≥0 | ℤ  | UD | ⊤
//	   0  | ⊥  | 0  | ⊥  | 0  | 0  | ⊥  | 0  | ⊥  | 0
//	  <0  | ⊥  | <0 | ⊥  | <0 | <0 | ⊥  | <0 | ⊥  | <0
//	  >0  | >0 | >0 | >0 | >0 | >0 | >0 | >0 | ⊥  | >0
//	  ≤0  | ⊥  | ≤0 | ⊥  | ≤0 | ≤0 | ⊥  | ≤0 | ⊥  | ≤0
//	  ≠0  | >0 | ≠0 | >0 | ≠0 | ≠0 | >0 | ≠0 | ⊥  | ≠0
//	  ≥0  | >0 | ≥0 | >0 | ≥0 | ≥0 | >0 | ≥0 | ⊥  | ≥0
//	   ℤ  | >0 | ℤ  | >0 | ℤ  | ℤ  | >0 | ℤ  | ⊥  | ℤ
//	  UD  | UD | UD | UD | UD | UD | UD | UD | UD | UD
//	   ⊤  | >0 | ℤ  | >0 | ℤ  | ℤ  | >0 | ℤ  | UD | ℤ
var gtTable = signTable{
	Zero:      {Bot, Zero, Bot, Zero, Zero, Bot, Zero, Bot, Zero},
	Neg:       {Bot, Neg, Bot, Neg, Neg, Bot, Neg, Bot, Neg},
	Pos:       {Pos, Pos, Pos, Pos, Pos, Pos, Pos, Bot, Pos},
	LeqZero:   {Bot, LeqZero, Bot, LeqZero, LeqZero, Bot, LeqZero, Bot, LeqZero},
	NonZero:   {Pos, NonZero, Pos, NonZero, NonZero, Pos, NonZero, Bot, NonZero},
	GeqZero:   {Pos, GeqZero, Pos, GeqZero, GeqZero, Pos, GeqZero, Bot, GeqZero},
	AnyInt:    {Pos, AnyInt, Pos, AnyInt, AnyInt, Pos, AnyInt, Bot, AnyInt},
	Undefined: {Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined},
	Top:       {Pos, AnyInt, Pos, AnyInt, AnyInt, Pos, AnyInt, Undefined, AnyInt},
}

// geTable mirrors leTable across zero: (≤0) >= 0 can only hold when l
// is exactly 0, and l >= (>0) forces l strictly positive.
//
//	l >= r | 0  | <0 | >0 | ≤0 | ≠0 | ≥0 | ℤ  | UD | ⊤
//	    0  | 0  | 0  | ⊥  | 0  | 0  | 0  | 0  | ⊥  | 0
//	   <0  | ⊥  | <0 | ⊥  | <0 | <0 | ⊥  | <0 | ⊥  | <0
//	   >0  | >0 | >0 | >0 | >0 | >0 | >0 | >0 | ⊥  | >0
//	   ≤0  | 0  | ≤0 | ⊥  | ≤0 | ≤0 | 0  | ≤0 | ⊥  | ≤0
//	   ≠0  | >0 | ≠0 | >0 | ≠0 | ≠0 | >0 | ≠0 | ⊥  | ≠0
//	   ≥0  | ≥0 | ≥0 | >0 | ≥0 | ≥0 | ≥0 | ≥0 | ⊥  | ≥0
//	    ℤ  | ≥0 | ℤ  | >0 | ℤ  | ℤ  | ≥0 | ℤ  | ⊥  | ℤ
//	   UD  | UD | UD | UD | UD | UD | UD | UD | UD | UD
//	    ⊤  | ≥0 | ℤ  | >0 | ℤ  | ℤ  | ≥0 | ℤ  | UD | ℤ
var geTable = signTable{
	Zero:      {Zero, Zero, Bot, Zero, Zero, Zero, Zero, Bot, Zero},
	Neg:       {Bot, Neg, Bot, Neg, Neg, Bot, Neg, Bot, Neg},
	Pos:       {Pos, Pos, Pos, Pos, Pos, Pos, Pos, Bot, Pos},
	LeqZero:   {Zero, LeqZero, Bot, LeqZero, LeqZero, Zero, LeqZero, Bot, LeqZero},
	NonZero:   {Pos, NonZero, Pos, NonZero, NonZero, Pos, NonZero, Bot, NonZero},
	GeqZero:   {GeqZero, GeqZero, Pos, GeqZero, GeqZero, GeqZero, GeqZero, Bot, GeqZero},
	AnyInt:    {GeqZero, AnyInt, Pos, AnyInt, AnyInt, GeqZero, AnyInt, Bot, AnyInt},
	Undefined: {Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined},
	Top:       {GeqZero, AnyInt, Pos, AnyInt, AnyInt, GeqZero, AnyInt, Undefined, AnyInt},
}

// Refine narrows the element for the left operand of l op r, assuming
// the comparison evaluated to true. The result is always ⊑ l. A ⊥
// left operand cannot be refined further; a ⊥ right operand means the
// comparison is unreachable and teaches nothing.
func Refine(op CmpOp, l, r Sign) Sign {
	if l == Bot {
		return Bot
	}
	if r == Bot {
		return l
	}
	switch op {
	case EQ:
		// Equality is exactly the greatest lower bound: the operand
		// must inhabit both classes at once.
		return l.Meet(r)
	case NE:
		return neTable[l][r]
	case LT:
		return ltTable[l][r]
	case LE:
		return leTable[l][r]
	case GT:
		return gtTable[l][r]
	case GE:
		return geTable[l][r]
	}
	panic(errPatternMatch(op))
}
