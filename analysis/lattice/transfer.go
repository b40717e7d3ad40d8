package lattice

// ArithOp enumerates the binary arithmetic operators the sign
// analysis has transfer tables for.
type ArithOp uint8

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
	Rem
)

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Rem:
		return "%"
	}
	panic(errPatternMatch(op))
}

// IsDivision checks whether op is subject to the zero-divisor check.
func (op ArithOp) IsDivision() bool {
	return op == Div || op == Rem
}

// signTable is a total function over the 9×9 space of table-indexable
// elements, row-indexed by the left operand and column-indexed by the
// right operand in canonical order.
type signTable [9][9]Sign

// addTable gives the sign of l + r. Subtraction reuses it through
// Flip on the right operand.
//
//	l + r | 0  | <0 | >0 | ≤0 | ≠0 | ≥0 | ℤ  | UD | ⊤
//	   0  | 0  | <0 | >0 | ≤0 | ≠0 | ≥0 | ℤ  | UD | ⊤
//	  <0  | <0 | <0 | ℤ  | <0 | ℤ  | ℤ  | ℤ  | UD | ⊤
//	  >0  | >0 | ℤ  | >0 | ℤ  | ℤ  | >0 | ℤ  | UD | ⊤
//	  ≤0  | ≤0 | <0 | ℤ  | ≤0 | ℤ  | ℤ  | ℤ  | UD | ⊤
//	  ≠0  | ≠0 | ℤ  | ℤ  | ℤ  | ℤ  | ℤ  | ℤ  | UD | ⊤
//	  ≥0  | ≥0 | ℤ  | >0 | ℤ  | ℤ  | ≥0 | ℤ  | UD | ⊤
//	   ℤ  | ℤ  | ℤ  | ℤ  | ℤ  | ℤ  | ℤ  | ℤ  | UD | ⊤
//	  UD  | UD | UD | UD | UD | UD | UD | UD | UD | UD
//	   ⊤  | ⊤  | ⊤  | ⊤  | ⊤  | ⊤  | ⊤  | ⊤  | UD | ⊤
var addTable = signTable{
	Zero:      {Zero, Neg, Pos, LeqZero, NonZero, GeqZero, AnyInt, Undefined, Top},
	Neg:       {Neg, Neg, AnyInt, Neg, AnyInt, AnyInt, AnyInt, Undefined, Top},
	Pos:       {Pos, AnyInt, Pos, AnyInt, AnyInt, Pos, AnyInt, Undefined, Top},
	LeqZero:   {LeqZero, Neg, AnyInt, LeqZero, AnyInt, AnyInt, AnyInt, Undefined, Top},
	NonZero:   {NonZero, AnyInt, AnyInt, AnyInt, AnyInt, AnyInt, AnyInt, Undefined, Top},
	GeqZero:   {GeqZero, AnyInt, Pos, AnyInt, AnyInt, GeqZero, AnyInt, Undefined, Top},
	AnyInt:    {AnyInt, AnyInt, AnyInt, AnyInt, AnyInt, AnyInt, AnyInt, Undefined, Top},
	Undefined: {Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined},
	Top:       {Top, Top, Top, Top, Top, Top, Top, Undefined, Top},
}

// mulTable gives the sign of l * r. A zero operand absorbs; strict
// signs multiply like signs of nonzero reals. An operand that admits
// zero strips any nonzero claim from the product.
//
//	l * r | 0  | <0 | >0 | ≤0 | ≠0 | ≥0 | ℤ  | UD | ⊤
//	   0  | 0  | 0  | 0  | 0  | 0  | 0  | 0  | UD | ⊤
//	  <0  | 0  | >0 | <0 | ≥0 | ≠0 | ≤0 | ℤ  | UD | ⊤
//	  >0  | 0  | <0 | >0 | ≤0 | ≠0 | ≥0 | ℤ  | UD | ⊤
//	  ≤0  | 0  | ≥0 | ≤0 | ≥0 | ℤ  | ≤0 | ℤ  | UD | ⊤
//	  ≠0  | 0  | ≠0 | ≠0 | ℤ  | ≠0 | ℤ  | ℤ  | UD | ⊤
//	  ≥0  | 0  | ≤0 | ≥0 | ≤0 | ℤ  | ≥0 | ℤ  | UD | ⊤
//	   ℤ  | 0  | ℤ  | ℤ  | ℤ  | ℤ  | ℤ  | ℤ  | UD | ⊤
//	  UD  | UD | UD | UD | UD | UD | UD | UD | UD | UD
//	   ⊤  | ⊤  | ⊤  | ⊤  | ⊤  | ⊤  | ⊤  | ⊤  | UD | ⊤
var mulTable = signTable{
	Zero:      {Zero, Zero, Zero, Zero, Zero, Zero, Zero, Undefined, Top},
	Neg:       {Zero, Pos, Neg, GeqZero, NonZero, LeqZero, AnyInt, Undefined, Top},
	Pos:       {Zero, Neg, Pos, LeqZero, NonZero, GeqZero, AnyInt, Undefined, Top},
	LeqZero:   {Zero, GeqZero, LeqZero, GeqZero, AnyInt, LeqZero, AnyInt, Undefined, Top},
	NonZero:   {Zero, NonZero, NonZero, AnyInt, NonZero, AnyInt, AnyInt, Undefined, Top},
	GeqZero:   {Zero, LeqZero, GeqZero, LeqZero, AnyInt, GeqZero, AnyInt, Undefined, Top},
	AnyInt:    {Zero, AnyInt, AnyInt, AnyInt, AnyInt, AnyInt, AnyInt, Undefined, Top},
	Undefined: {Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined},
	Top:       {Top, Top, Top, Top, Top, Top, Top, Undefined, Top},
}

// divTable gives the sign of l / r (truncating division). Division by
// an exact 0 evaluates to UD: the value is undefined, and flagging the
// site itself is the oracle's job, not the table's. A divisor that
// only may be zero keeps the uncertainty (ℤ/⊤) instead of hiding it.
// |l / r| ≤ |l|, so the quotient may always reach 0.
//
//	l / r | 0  | <0 | >0 | ≤0 | ≠0 | ≥0 | ℤ  | UD | ⊤
//	   0  | UD | 0  | 0  | ⊤  | 0  | ⊤  | ⊤  | UD | ⊤
//	  <0  | UD | ≥0 | ≤0 | ⊤  | ℤ  | ⊤  | ⊤  | UD | ⊤
//	  >0  | UD | ≤0 | ≥0 | ⊤  | ℤ  | ⊤  | ⊤  | UD | ⊤
//	  ≤0  | UD | ≥0 | ≤0 | ⊤  | ℤ  | ⊤  | ⊤  | UD | ⊤
//	  ≠0  | UD | ℤ  | ℤ  | ⊤  | ℤ  | ⊤  | ⊤  | UD | ⊤
//	  ≥0  | UD | ≤0 | ≥0 | ⊤  | ℤ  | ⊤  | ⊤  | UD | ⊤
//	   ℤ  | UD | ℤ  | ℤ  | ⊤  | ℤ  | ⊤  | ⊤  | UD | ⊤
//	  UD  | UD | UD | UD | UD | UD | UD | UD | UD | UD
//	   ⊤  | UD | ⊤  | ⊤  | ⊤  | ⊤  | ⊤  | ⊤  | UD | ⊤
var divTable = signTable{
	Zero:      {Undefined, Zero, Zero, Top, Zero, Top, Top, Undefined, Top},
	Neg:       {Undefined, GeqZero, LeqZero, Top, AnyInt, Top, Top, Undefined, Top},
	Pos:       {Undefined, LeqZero, GeqZero, Top, AnyInt, Top, Top, Undefined, Top},
	LeqZero:   {Undefined, GeqZero, LeqZero, Top, AnyInt, Top, Top, Undefined, Top},
	NonZero:   {Undefined, AnyInt, AnyInt, Top, AnyInt, Top, Top, Undefined, Top},
	GeqZero:   {Undefined, LeqZero, GeqZero, Top, AnyInt, Top, Top, Undefined, Top},
	AnyInt:    {Undefined, AnyInt, AnyInt, Top, AnyInt, Top, Top, Undefined, Top},
	Undefined: {Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined},
	Top:       {Undefined, Top, Top, Top, Top, Top, Top, Undefined, Top},
}

// remTable gives the sign of l % r. It differs from division only in
// sign propagation: with truncating remainder semantics the result's
// sign follows the left operand regardless of the right operand's.
//
//	l % r | 0  | <0 | >0 | ≤0 | ≠0 | ≥0 | ℤ  | UD | ⊤
//	   0  | UD | 0  | 0  | ⊤  | 0  | ⊤  | ⊤  | UD | ⊤
//	  <0  | UD | ≤0 | ≤0 | ⊤  | ≤0 | ⊤  | ⊤  | UD | ⊤
//	  >0  | UD | ≥0 | ≥0 | ⊤  | ≥0 | ⊤  | ⊤  | UD | ⊤
//	  ≤0  | UD | ≤0 | ≤0 | ⊤  | ≤0 | ⊤  | ⊤  | UD | ⊤
//	  ≠0  | UD | ℤ  | ℤ  | ⊤  | ℤ  | ⊤  | ⊤  | UD | ⊤
//	  ≥0  | UD | ≥0 | ≥0 | ⊤  | ≥0 | ⊤  | ⊤  | UD | ⊤
//	   ℤ  | UD | ℤ  | ℤ  | ⊤  | ℤ  | ⊤  | ⊤  | UD | ⊤
//	  UD  | UD | UD | UD | UD | UD | UD | UD | UD | UD
//	   ⊤  | UD | ⊤  | ⊤  | ⊤  | ⊤  | ⊤  | ⊤  | UD | ⊤
var remTable = signTable{
	Zero:      {Undefined, Zero, Zero, Top, Zero, Top, Top, Undefined, Top},
	Neg:       {Undefined, LeqZero, LeqZero, Top, LeqZero, Top, Top, Undefined, Top},
	Pos:       {Undefined, GeqZero, GeqZero, Top, GeqZero, Top, Top, Undefined, Top},
	LeqZero:   {Undefined, LeqZero, LeqZero, Top, LeqZero, Top, Top, Undefined, Top},
	NonZero:   {Undefined, AnyInt, AnyInt, Top, AnyInt, Top, Top, Undefined, Top},
	GeqZero:   {Undefined, GeqZero, GeqZero, Top, GeqZero, Top, Top, Undefined, Top},
	AnyInt:    {Undefined, AnyInt, AnyInt, Top, AnyInt, Top, Top, Undefined, Top},
	Undefined: {Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined, Undefined},
	Top:       {Undefined, Top, Top, Top, Top, Top, Top, Undefined, Top},
}

// Transfer computes the sign of l op r. A ⊥ operand short-circuits to
// ⊥: the operation is unreachable.
func Transfer(op ArithOp, l, r Sign) Sign {
	if l == Bot || r == Bot {
		return Bot
	}
	switch op {
	case Add:
		return addTable[l][r]
	case Sub:
		// l - r is l + (-r), and Flip abstracts negation.
		return addTable[l][r.Flip()]
	case Mul:
		return mulTable[l][r]
	case Div:
		return divTable[l][r]
	case Rem:
		return remTable[l][r]
	}
	panic(errPatternMatch(op))
}
