// Package upfront lowers type-checked Go syntax into the analysis
// graph consumed by the abstract interpreter.
package upfront

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"

	"github.com/slyubomirsky/div-by-zero-checker/analysis/cfg"
	"github.com/slyubomirsky/div-by-zero-checker/analysis/lattice"
)

type builder struct {
	fset  *token.FileSet
	info  *types.Info
	graph *cfg.Cfg

	// vars maps type-checker objects to graph variables, so shadowed
	// names stay distinct.
	vars map[*types.Var]cfg.Var
	// untrackable holds variables whose value can change behind the
	// analysis' back: address-taken, or mutated by a closure.
	untrackable map[*types.Var]bool

	// cur is the block under construction; nil after a terminating
	// statement until the next one opens a block.
	cur *cfg.Block

	// breaks and conts are the targets of unlabeled break/continue.
	// Loops push onto both; switches push a break target only.
	breaks []*cfg.Block
	conts  []*cfg.Block
}

// BuildFunc lowers one function body into an analysis graph. The
// graph models tracked integer locals precisely and everything else
// as the opaque expression kind.
func BuildFunc(fset *token.FileSet, info *types.Info, fn *ast.FuncDecl) *cfg.Cfg {
	g := cfg.NewCfg(fn.Name.Name)
	b := &builder{
		fset:        fset,
		info:        info,
		graph:       g,
		vars:        make(map[*types.Var]cfg.Var),
		untrackable: findUntrackable(info, fn),
	}

	entry := g.NewBlock()
	g.SetEntry(entry)
	b.cur = entry

	// Named results start zero-valued.
	if fn.Type.Results != nil {
		for _, field := range fn.Type.Results.List {
			for _, name := range field.Names {
				if v, ok := b.trackedVar(name); ok {
					b.block().Assign(v, cfg.Lit{Val: 0})
				}
			}
		}
	}

	if fn.Body != nil {
		b.stmtList(fn.Body.List)
	}
	return g
}

// findUntrackable pre-scans the body for variables the flow analysis
// must not track: taking a variable's address or mutating it from a
// function literal lets its value change without a visible
// assignment.
func findUntrackable(info *types.Info, fn *ast.FuncDecl) map[*types.Var]bool {
	res := make(map[*types.Var]bool)
	if fn.Body == nil {
		return res
	}

	mark := func(e ast.Expr) {
		if id, ok := unparen(e).(*ast.Ident); ok {
			if v, ok := info.ObjectOf(id).(*types.Var); ok {
				res[v] = true
			}
		}
	}

	ast.Inspect(fn.Body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.UnaryExpr:
			if n.Op == token.AND {
				mark(n.X)
			}
		case *ast.FuncLit:
			ast.Inspect(n.Body, func(m ast.Node) bool {
				switch m := m.(type) {
				case *ast.AssignStmt:
					for _, lhs := range m.Lhs {
						mark(lhs)
					}
				case *ast.IncDecStmt:
					mark(m.X)
				case *ast.UnaryExpr:
					if m.Op == token.AND {
						mark(m.X)
					}
				}
				return true
			})
			return false
		}
		return true
	})
	return res
}

func unparen(e ast.Expr) ast.Expr {
	for {
		p, ok := e.(*ast.ParenExpr)
		if !ok {
			return e
		}
		e = p.X
	}
}

func isTrackedType(t types.Type) bool {
	if t == nil {
		return false
	}
	basic, ok := t.Underlying().(*types.Basic)
	return ok && basic.Info()&types.IsInteger != 0
}

func (b *builder) typeOf(e ast.Expr) types.Type {
	return b.info.TypeOf(e)
}

// trackedVar resolves e to a graph variable when e names a tracked
// integer local.
func (b *builder) trackedVar(e ast.Expr) (cfg.Var, bool) {
	id, ok := unparen(e).(*ast.Ident)
	if !ok || id.Name == "_" {
		return cfg.Var{}, false
	}
	obj, ok := b.info.ObjectOf(id).(*types.Var)
	if !ok || b.untrackable[obj] || !isTrackedType(obj.Type()) {
		return cfg.Var{}, false
	}
	if v, ok := b.vars[obj]; ok {
		return v, true
	}
	v := b.graph.NewVar(id.Name)
	b.vars[obj] = v
	return v, true
}

// block opens a fresh (unreachable) block when the previous statement
// terminated the flow; statements after a return still lower.
func (b *builder) block() *cfg.Block {
	if b.cur == nil {
		b.cur = b.graph.NewBlock()
	}
	return b.cur
}

// constFold reads the type checker's constant value for e, if any.
// Constant arithmetic thereby collapses before lowering, so an
// expression like n-n with constant n becomes an exact zero literal.
func (b *builder) constFold(e ast.Expr) (int64, bool) {
	tv, ok := b.info.Types[e]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.Int || !isTrackedType(tv.Type) {
		return 0, false
	}
	v, exact := constant.Int64Val(tv.Value)
	if !exact {
		return 0, false
	}
	return v, true
}

func arithOp(tok token.Token) (lattice.ArithOp, bool) {
	switch tok {
	case token.ADD:
		return lattice.Add, true
	case token.SUB:
		return lattice.Sub, true
	case token.MUL:
		return lattice.Mul, true
	case token.QUO:
		return lattice.Div, true
	case token.REM:
		return lattice.Rem, true
	}
	return 0, false
}

func assignOp(tok token.Token) (lattice.ArithOp, bool) {
	switch tok {
	case token.ADD_ASSIGN:
		return lattice.Add, true
	case token.SUB_ASSIGN:
		return lattice.Sub, true
	case token.MUL_ASSIGN:
		return lattice.Mul, true
	case token.QUO_ASSIGN:
		return lattice.Div, true
	case token.REM_ASSIGN:
		return lattice.Rem, true
	}
	return 0, false
}

func cmpOp(tok token.Token) (lattice.CmpOp, bool) {
	switch tok {
	case token.EQL:
		return lattice.EQ, true
	case token.NEQ:
		return lattice.NE, true
	case token.LSS:
		return lattice.LT, true
	case token.LEQ:
		return lattice.LE, true
	case token.GTR:
		return lattice.GT, true
	case token.GEQ:
		return lattice.GE, true
	}
	return 0, false
}

// containsSite reports whether the lowered expression holds a division
// or remainder.
func containsSite(e cfg.Expr) bool {
	bin, ok := e.(*cfg.BinOp)
	if !ok {
		return false
	}
	return bin.Op.IsDivision() || containsSite(bin.X) || containsSite(bin.Y)
}

// evalForSites lowers e and, when the result carries division sites,
// records them in the current block for checking. The value itself is
// discarded.
func (b *builder) evalForSites(e ast.Expr) {
	if le := b.lowerExpr(e); containsSite(le) {
		b.block().Eval(le)
	}
}

// lowerExpr lowers e to a graph expression. Anything outside the
// tracked fragment becomes opaque, after surfacing division sites in
// its subexpressions.
func (b *builder) lowerExpr(e ast.Expr) cfg.Expr {
	if v, ok := b.constFold(e); ok {
		return cfg.Lit{Val: v}
	}

	switch e := e.(type) {
	case *ast.ParenExpr:
		return b.lowerExpr(e.X)

	case *ast.Ident:
		if v, ok := b.trackedVar(e); ok {
			return cfg.Ref{V: v}
		}

	case *ast.BinaryExpr:
		if op, ok := arithOp(e.Op); ok && isTrackedType(b.typeOf(e)) {
			return &cfg.BinOp{
				Op:  op,
				X:   b.lowerExpr(e.X),
				Y:   b.lowerExpr(e.Y),
				Pos: b.fset.Position(e.OpPos),
			}
		}
		// Comparison, shift, bitwise or non-integer arithmetic: the
		// value is untracked but the operands may divide.
		b.evalForSites(e.X)
		b.evalForSites(e.Y)

	case *ast.UnaryExpr:
		switch e.Op {
		case token.ADD:
			return b.lowerExpr(e.X)
		case token.SUB:
			if isTrackedType(b.typeOf(e)) {
				return &cfg.BinOp{
					Op:  lattice.Sub,
					X:   cfg.Lit{Val: 0},
					Y:   b.lowerExpr(e.X),
					Pos: b.fset.Position(e.OpPos),
				}
			}
		}
		b.evalForSites(e.X)

	case *ast.CallExpr:
		for _, arg := range e.Args {
			b.evalForSites(arg)
		}

	case *ast.IndexExpr:
		b.evalForSites(e.X)
		b.evalForSites(e.Index)

	case *ast.SelectorExpr:
		b.evalForSites(e.X)

	case *ast.StarExpr:
		b.evalForSites(e.X)
	}

	return cfg.Opaque{}
}

func (b *builder) stmtList(stmts []ast.Stmt) {
	for _, s := range stmts {
		b.stmt(s)
	}
}

func (b *builder) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.DeclStmt:
		b.declStmt(s)

	case *ast.AssignStmt:
		b.assignStmt(s)

	case *ast.IncDecStmt:
		if v, ok := b.trackedVar(s.X); ok {
			op := lattice.Add
			if s.Tok == token.DEC {
				op = lattice.Sub
			}
			b.block().Assign(v, &cfg.BinOp{
				Op:  op,
				X:   cfg.Ref{V: v},
				Y:   cfg.Lit{Val: 1},
				Pos: b.fset.Position(s.TokPos),
			})
		}

	case *ast.ExprStmt:
		b.evalForSites(s.X)

	case *ast.ReturnStmt:
		for _, res := range s.Results {
			b.evalForSites(res)
		}
		b.cur = nil

	case *ast.BlockStmt:
		b.stmtList(s.List)

	case *ast.IfStmt:
		b.ifStmt(s)

	case *ast.ForStmt:
		b.forStmt(s)

	case *ast.RangeStmt:
		b.rangeStmt(s)

	case *ast.SwitchStmt:
		b.switchStmt(s)

	case *ast.BranchStmt:
		b.branchStmt(s)

	case *ast.GoStmt:
		for _, arg := range s.Call.Args {
			b.evalForSites(arg)
		}

	case *ast.DeferStmt:
		for _, arg := range s.Call.Args {
			b.evalForSites(arg)
		}

	case *ast.LabeledStmt:
		b.stmt(s.Stmt)

	case *ast.EmptyStmt:

	default:
		// Type switches, selects and other unmodeled statements:
		// clobber every tracked variable they assign.
		b.clobberStmt(s)
	}
}

func (b *builder) declStmt(s *ast.DeclStmt) {
	gd, ok := s.Decl.(*ast.GenDecl)
	if !ok || gd.Tok != token.VAR {
		return
	}
	for _, spec := range gd.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}

		// var a, b = f(): one multi-valued initializer.
		if len(vs.Values) == 1 && len(vs.Names) > 1 {
			b.evalForSites(vs.Values[0])
			for _, name := range vs.Names {
				if v, ok := b.trackedVar(name); ok {
					b.block().Assign(v, cfg.Opaque{})
				}
			}
			continue
		}

		for i, name := range vs.Names {
			var src cfg.Expr = cfg.Lit{Val: 0}
			if i < len(vs.Values) {
				src = b.lowerExpr(vs.Values[i])
			}
			if v, ok := b.trackedVar(name); ok {
				b.block().Assign(v, src)
			} else if containsSite(src) {
				b.block().Eval(src)
			}
		}
	}
}

func (b *builder) assignStmt(s *ast.AssignStmt) {
	switch s.Tok {
	case token.ASSIGN, token.DEFINE:
		// x, y := f(): one multi-valued right-hand side.
		if len(s.Rhs) == 1 && len(s.Lhs) > 1 {
			b.evalForSites(s.Rhs[0])
			for _, lhs := range s.Lhs {
				if v, ok := b.trackedVar(lhs); ok {
					b.block().Assign(v, cfg.Opaque{})
				}
			}
			return
		}

		if len(s.Lhs) == 1 {
			rhs := b.lowerExpr(s.Rhs[0])
			if v, ok := b.trackedVar(s.Lhs[0]); ok {
				b.block().Assign(v, rhs)
			} else if containsSite(rhs) {
				b.block().Eval(rhs)
			}
			return
		}

		// Parallel assignment evaluates all right-hand sides before
		// any binding takes effect; temporaries preserve that.
		tmps := make([]cfg.Var, len(s.Rhs))
		for i, rhs := range s.Rhs {
			tmps[i] = b.graph.NewVar(".tmp")
			b.block().Assign(tmps[i], b.lowerExpr(rhs))
		}
		for i, lhs := range s.Lhs {
			if v, ok := b.trackedVar(lhs); ok {
				b.block().Assign(v, cfg.Ref{V: tmps[i]})
			}
		}

	default:
		rhs := b.lowerExpr(s.Rhs[0])
		op, arith := assignOp(s.Tok)
		v, tracked := b.trackedVar(s.Lhs[0])

		switch {
		case tracked && arith:
			b.block().Assign(v, &cfg.BinOp{
				Op:  op,
				X:   cfg.Ref{V: v},
				Y:   rhs,
				Pos: b.fset.Position(s.TokPos),
			})
		case tracked:
			// Shift or bitwise compound assignment: untracked result.
			b.block().Assign(v, cfg.Opaque{})
		case arith && op.IsDivision() && isTrackedType(b.typeOf(s.Lhs[0])):
			// An untracked integer lvalue divided in place is still a
			// checkable site.
			b.block().Eval(&cfg.BinOp{
				Op:  op,
				X:   cfg.Opaque{},
				Y:   rhs,
				Pos: b.fset.Position(s.TokPos),
			})
		case containsSite(rhs):
			b.block().Eval(rhs)
		}
	}
}

// condJump lowers a branch condition, wiring the current flow to t
// when the condition holds and to f otherwise. Logical operators
// lower to block structure; comparisons on tracked integers become
// refinable branch conditions.
func (b *builder) condJump(e ast.Expr, t, f *cfg.Block) {
	// A constant condition selects its arm outright.
	if tv, ok := b.info.Types[e]; ok && tv.Value != nil && tv.Value.Kind() == constant.Bool {
		if constant.BoolVal(tv.Value) {
			b.block().SetNext(t)
		} else {
			b.block().SetNext(f)
		}
		return
	}

	switch e := e.(type) {
	case *ast.ParenExpr:
		b.condJump(e.X, t, f)
		return

	case *ast.UnaryExpr:
		if e.Op == token.NOT {
			b.condJump(e.X, f, t)
			return
		}

	case *ast.BinaryExpr:
		switch e.Op {
		case token.LAND:
			mid := b.graph.NewBlock()
			b.condJump(e.X, mid, f)
			b.cur = mid
			b.condJump(e.Y, t, f)
			return
		case token.LOR:
			mid := b.graph.NewBlock()
			b.condJump(e.X, t, mid)
			b.cur = mid
			b.condJump(e.Y, t, f)
			return
		}
		if op, ok := cmpOp(e.Op); ok && isTrackedType(b.typeOf(e.X)) && isTrackedType(b.typeOf(e.Y)) {
			cond := &cfg.Cond{Op: op, X: b.lowerExpr(e.X), Y: b.lowerExpr(e.Y)}
			b.block().SetBranch(cond, t, f)
			return
		}
	}

	// Untracked condition: both arms possible, nothing refined.
	b.evalForSites(e)
	b.block().SetBranch(nil, t, f)
}

func (b *builder) ifStmt(s *ast.IfStmt) {
	if s.Init != nil {
		b.stmt(s.Init)
	}

	then := b.graph.NewBlock()
	done := b.graph.NewBlock()
	els := done
	if s.Else != nil {
		els = b.graph.NewBlock()
	}

	b.condJump(s.Cond, then, els)

	b.cur = then
	b.stmtList(s.Body.List)
	if b.cur != nil {
		b.cur.SetNext(done)
	}

	if s.Else != nil {
		b.cur = els
		b.stmt(s.Else)
		if b.cur != nil {
			b.cur.SetNext(done)
		}
	}

	b.cur = done
}

func (b *builder) forStmt(s *ast.ForStmt) {
	if s.Init != nil {
		b.stmt(s.Init)
	}

	header := b.graph.NewBlock()
	body := b.graph.NewBlock()
	done := b.graph.NewBlock()

	// Continue runs the post statement before re-testing.
	cont := header
	if s.Post != nil {
		cont = b.graph.NewBlock()
	}

	b.block().SetNext(header)

	b.cur = header
	if s.Cond != nil {
		b.condJump(s.Cond, body, done)
	} else {
		b.block().SetNext(body)
	}

	b.breaks = append(b.breaks, done)
	b.conts = append(b.conts, cont)

	b.cur = body
	b.stmtList(s.Body.List)
	if b.cur != nil {
		b.cur.SetNext(cont)
	}

	b.breaks = b.breaks[:len(b.breaks)-1]
	b.conts = b.conts[:len(b.conts)-1]

	if s.Post != nil {
		b.cur = cont
		b.stmt(s.Post)
		b.block().SetNext(header)
	}

	b.cur = done
}

func (b *builder) rangeStmt(s *ast.RangeStmt) {
	b.evalForSites(s.X)

	header := b.graph.NewBlock()
	body := b.graph.NewBlock()
	done := b.graph.NewBlock()

	b.block().SetNext(header)

	// The iteration count is untracked, so the loop entry is a
	// nondeterministic branch; key and value are fresh each round.
	header.SetBranch(nil, body, done)

	b.breaks = append(b.breaks, done)
	b.conts = append(b.conts, header)

	b.cur = body
	for _, lv := range []ast.Expr{s.Key, s.Value} {
		if lv == nil {
			continue
		}
		if v, ok := b.trackedVar(lv); ok {
			b.block().Assign(v, cfg.Opaque{})
		}
	}
	b.stmtList(s.Body.List)
	if b.cur != nil {
		b.cur.SetNext(header)
	}

	b.breaks = b.breaks[:len(b.breaks)-1]
	b.conts = b.conts[:len(b.conts)-1]

	b.cur = done
}

func (b *builder) switchStmt(s *ast.SwitchStmt) {
	if s.Init != nil {
		b.stmt(s.Init)
	}
	if s.Tag != nil {
		b.evalForSites(s.Tag)
	}

	done := b.graph.NewBlock()

	clauses := make([]*ast.CaseClause, 0, len(s.Body.List))
	for _, raw := range s.Body.List {
		clauses = append(clauses, raw.(*ast.CaseClause))
	}

	// Fan out nondeterministically: no refinement from case guards,
	// and a fall-off-the-end path regardless of a default clause.
	caseBlocks := make([]*cfg.Block, len(clauses))
	for i := range clauses {
		caseBlocks[i] = b.graph.NewBlock()
		next := b.graph.NewBlock()
		b.block().SetBranch(nil, caseBlocks[i], next)
		b.cur = next
	}
	b.block().SetNext(done)

	b.breaks = append(b.breaks, done)

	for i, clause := range clauses {
		b.cur = caseBlocks[i]
		for _, guard := range clause.List {
			b.evalForSites(guard)
		}

		stmts := clause.Body
		fallsThrough := false
		if n := len(stmts); n > 0 {
			if br, ok := stmts[n-1].(*ast.BranchStmt); ok && br.Tok == token.FALLTHROUGH {
				fallsThrough = true
				stmts = stmts[:n-1]
			}
		}

		b.stmtList(stmts)
		if b.cur != nil {
			if fallsThrough && i+1 < len(caseBlocks) {
				b.cur.SetNext(caseBlocks[i+1])
			} else {
				b.cur.SetNext(done)
			}
		}
	}

	b.breaks = b.breaks[:len(b.breaks)-1]
	b.cur = done
}

func (b *builder) branchStmt(s *ast.BranchStmt) {
	if s.Label != nil {
		// Labeled jumps are not modeled; the flow just stops here.
		b.cur = nil
		return
	}
	switch s.Tok {
	case token.BREAK:
		if n := len(b.breaks); n > 0 {
			b.block().SetNext(b.breaks[n-1])
		}
		b.cur = nil
	case token.CONTINUE:
		if n := len(b.conts); n > 0 {
			b.block().SetNext(b.conts[n-1])
		}
		b.cur = nil
	case token.GOTO:
		b.cur = nil
	}
}

// clobberStmt is the conservative fallback for statement kinds the
// lowering does not model: any tracked variable they assign loses its
// fact.
func (b *builder) clobberStmt(s ast.Stmt) {
	ast.Inspect(s, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.AssignStmt:
			for _, lhs := range n.Lhs {
				if v, ok := b.trackedVar(lhs); ok {
					b.block().Assign(v, cfg.Opaque{})
				}
			}
		case *ast.IncDecStmt:
			if v, ok := b.trackedVar(n.X); ok {
				b.block().Assign(v, cfg.Opaque{})
			}
		case *ast.FuncLit:
			return false
		}
		return true
	})
}
