package cfg

import (
	"fmt"
	"go/token"

	"github.com/slyubomirsky/div-by-zero-checker/analysis/lattice"
)

// Var identifies a tracked integer variable. Identity is the numeric
// id, not the name: two declarations shadowing the same name get
// distinct Vars.
type Var struct {
	id   int
	name string
}

func (v Var) Id() int {
	return v.id
}

func (v Var) Name() string {
	return v.name
}

func (v Var) String() string {
	return v.name
}

// Expr is an expression over tracked variables. The kinds are a sealed
// sum; analyses dispatch on them with exhaustive type switches.
type Expr interface {
	fmt.Stringer
	exprNode()
}

// Lit is an integer literal, or any expression the frontend folded to
// a known constant.
type Lit struct {
	Val int64
}

// Ref reads a tracked variable.
type Ref struct {
	V Var
}

// BinOp is an arithmetic operation on two subexpressions. BinOps are
// allocated once by the frontend and addressed by pointer: a *BinOp
// with a division operator is a checkable site, and Pos locates it in
// the source.
type BinOp struct {
	Op   lattice.ArithOp
	X, Y Expr
	Pos  token.Position
}

// Opaque stands in for any expression the analysis does not track: a
// call result, a non-integer conversion, a channel receive. Its value
// is unknown.
type Opaque struct{}

func (Lit) exprNode()    {}
func (Ref) exprNode()    {}
func (*BinOp) exprNode() {}
func (Opaque) exprNode() {}

func (e Lit) String() string {
	return fmt.Sprintf("%d", e.Val)
}

func (e Ref) String() string {
	return e.V.String()
}

func (e *BinOp) String() string {
	return fmt.Sprintf("(%s %s %s)", e.X, e.Op, e.Y)
}

func (Opaque) String() string {
	return "?"
}

// Instr is a straight-line instruction in a basic block.
type Instr interface {
	fmt.Stringer
	instrNode()
}

// Assign evaluates Src and binds the result to Dst.
type Assign struct {
	Dst Var
	Src Expr
}

// Eval evaluates Src for its division sites only; the result is
// discarded. Subexpressions of untracked statements end up here.
type Eval struct {
	Src Expr
}

func (Assign) instrNode() {}
func (Eval) instrNode()   {}

func (i Assign) String() string {
	return fmt.Sprintf("%s = %s", i.Dst, i.Src)
}

func (i Eval) String() string {
	return i.Src.String()
}

// Cond is a comparison terminating a branching block. The then edge is
// taken when X Op Y holds, the else edge otherwise.
type Cond struct {
	Op   lattice.CmpOp
	X, Y Expr
}

func (c Cond) String() string {
	return fmt.Sprintf("%s %s %s", c.X, c.Op, c.Y)
}
