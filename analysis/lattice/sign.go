package lattice

// Sign is an element of the sign lattice. It conservatively describes
// the sign/zero status of an integer expression at a program point.
type Sign uint8

// The declaration order of the defined (non-⊥) elements is the
// canonical index order of the transfer and refinement tables. Bot
// never indexes a table; it is short-circuited before lookup.
const (
	// Zero is exactly 0.
	Zero Sign = iota
	// Neg is strictly negative.
	Neg
	// Pos is strictly positive.
	Pos
	// LeqZero is less than or equal to 0.
	LeqZero
	// NonZero is any integer except 0.
	NonZero
	// GeqZero is greater than or equal to 0.
	GeqZero
	// AnyInt is any defined integer, sign unknown.
	AnyInt
	// Undefined is a value outside the tracked integers, e.g. the
	// result of a division by zero.
	Undefined
	// Top carries no information; the value may even be undefined.
	Top
	// Bot is the unreachable value, below every other element.
	Bot
)

// Value class atoms. Every element denotes a set of atoms; the order
// relation is subset inclusion on these sets.
const (
	atomNeg uint8 = 1 << iota
	atomZero
	atomPos
	atomUndef
)

// atoms maps each element to the set of value classes it admits.
var atoms = [...]uint8{
	Zero:      atomZero,
	Neg:       atomNeg,
	Pos:       atomPos,
	LeqZero:   atomNeg | atomZero,
	NonZero:   atomNeg | atomPos,
	GeqZero:   atomZero | atomPos,
	AnyInt:    atomNeg | atomZero | atomPos,
	Undefined: atomUndef,
	Top:       atomNeg | atomZero | atomPos | atomUndef,
	Bot:       0,
}

// exact inverts atoms for the representable atom sets. Sets mixing
// undef with a proper subset of the integer atoms have no exact
// element; joins resolve them through lub.
var exact = map[uint8]Sign{
	0:                               Bot,
	atomZero:                        Zero,
	atomNeg:                         Neg,
	atomPos:                         Pos,
	atomNeg | atomZero:              LeqZero,
	atomNeg | atomPos:               NonZero,
	atomZero | atomPos:              GeqZero,
	atomNeg | atomZero | atomPos:    AnyInt,
	atomUndef:                       Undefined,
	atomNeg | atomZero | atomPos | atomUndef: Top,
}

// lub yields the least element whose atom set contains m.
func lub(m uint8) Sign {
	if s, ok := exact[m]; ok {
		return s
	}
	// undef mixed with integer atoms: only Top remains above.
	return Top
}

func (s Sign) mask() uint8 {
	if int(s) >= len(atoms) {
		panic(errPatternMatch(s))
	}
	return atoms[s]
}

// Leq computes s ⊑ o.
func (s Sign) Leq(o Sign) bool {
	return s.mask()&^o.mask() == 0
}

// Geq computes s ⊒ o.
func (s Sign) Geq(o Sign) bool {
	return o.Leq(s)
}

// Eq checks for element equality.
func (s Sign) Eq(o Sign) bool {
	return s == o
}

// Join computes the least upper bound s ⊔ o.
func (s Sign) Join(o Sign) Sign {
	return lub(s.mask() | o.mask())
}

// Meet computes the greatest lower bound s ⊓ o. The element family is
// closed under atom-set intersection, so the result is always exact.
func (s Sign) Meet(o Sign) Sign {
	m, ok := exact[s.mask()&o.mask()]
	if !ok {
		panic(errInternal)
	}
	return m
}

// Flip mirrors the element across zero: it swaps Neg with Pos and
// LeqZero with GeqZero, and is the identity on everything else.
// Flip is an involution.
func (s Sign) Flip() Sign {
	switch s {
	case Neg:
		return Pos
	case Pos:
		return Neg
	case LeqZero:
		return GeqZero
	case GeqZero:
		return LeqZero
	}
	return s
}

// Height is the distance from ⊥ to s. The longest chain in the
// lattice is ⊥ ⊑ 0 ⊑ ≤0 ⊑ ℤ ⊑ ⊤, of height 4.
func (s Sign) Height() (h int) {
	for m := s.mask(); m != 0; m &= m - 1 {
		h++
	}
	return h
}

// IsBot checks whether s is the unreachable element.
func (s Sign) IsBot() bool {
	return s == Bot
}

func (s Sign) String() string {
	switch s {
	case Zero:
		return colorize.Element("0")
	case Neg:
		return colorize.Element("<0")
	case Pos:
		return colorize.Element(">0")
	case LeqZero:
		return colorize.Element("≤0")
	case NonZero:
		return colorize.Element("≠0")
	case GeqZero:
		return colorize.Element("≥0")
	case AnyInt:
		return colorize.Element("ℤ")
	case Undefined:
		return colorize.Element("undef")
	case Top:
		return colorize.Lattice("⊤")
	case Bot:
		return colorize.Lattice("⊥")
	}
	panic(errPatternMatch(s))
}

// SignOf abstracts a concrete integer to its exact sign element.
func SignOf(v int64) Sign {
	switch {
	case v == 0:
		return Zero
	case v < 0:
		return Neg
	}
	return Pos
}
