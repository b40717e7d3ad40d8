package upfront

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/slyubomirsky/div-by-zero-checker/analysis/absint"
	"github.com/slyubomirsky/div-by-zero-checker/analysis/cfg"
)

// lower type-checks src (a file body without the package clause) and
// lowers every function declaration.
func lower(t *testing.T, src string) map[string]*cfg.Cfg {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", "package p\n\n"+src, 0)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	info := &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Defs:  make(map[*ast.Ident]types.Object),
		Uses:  make(map[*ast.Ident]types.Object),
	}
	conf := types.Config{}
	if _, err := conf.Check("p", fset, []*ast.File{file}, info); err != nil {
		t.Fatalf("type error: %v", err)
	}

	graphs := make(map[string]*cfg.Cfg)
	for _, decl := range file.Decls {
		if fd, ok := decl.(*ast.FuncDecl); ok {
			graphs[fd.Name.Name] = BuildFunc(fset, info, fd)
		}
	}
	return graphs
}

// analyzeOne lowers src, which must declare exactly one function, and
// runs the sign analysis on it.
func analyzeOne(t *testing.T, src string) *absint.Analysis {
	t.Helper()
	graphs := lower(t, src)
	if len(graphs) != 1 {
		t.Fatalf("expected one function, got %d", len(graphs))
	}
	for _, g := range graphs {
		g.Compress()
		return absint.Analyze(g)
	}
	panic("unreachable")
}

func TestLowerAndAnalyze(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		sites  int
		unsafe int
	}{
		{
			name: "unconstrained divisor",
			src: `func f(x int) int {
				return 10 / x
			}`,
			sites: 1, unsafe: 1,
		},
		{
			name: "nonzero guard",
			src: `func f(x int) int {
				if x != 0 {
					return 10 / x
				}
				return 0
			}`,
			sites: 1, unsafe: 0,
		},
		{
			name: "division under equality with zero",
			src: `func f(x int) int {
				if x == 0 {
					return 10 / x
				}
				return 0
			}`,
			sites: 1, unsafe: 1,
		},
		{
			name: "constant expression folds to zero",
			src: `func f() int {
				const n = 5
				d := n - 5
				x := 1
				return x / d
			}`,
			sites: 1, unsafe: 1,
		},
		{
			name: "safe arithmetic chain",
			src: `func f() int {
				a := 1
				b := 2
				c := a + b
				return 100 / c
			}`,
			sites: 1, unsafe: 0,
		},
		{
			name: "divide-assign by parameter",
			src: `func f(x int) int {
				y := 10
				y /= x
				return y
			}`,
			sites: 1, unsafe: 1,
		},
		{
			name: "divide-assign by constant",
			src: `func f() int {
				y := 10
				y /= 2
				return y
			}`,
			sites: 1, unsafe: 0,
		},
		{
			name: "increment keeps divisor positive",
			src: `func f(n int) int {
				d := 1
				for i := 0; i < n; i++ {
					d++
				}
				return 100 / d
			}`,
			sites: 1, unsafe: 0,
		},
		{
			name: "short-circuit conjunction",
			src: `func f(x, y int) int {
				if x > 0 && y > 0 {
					return x / y
				}
				return 0
			}`,
			sites: 1, unsafe: 0,
		},
		{
			name: "negated condition",
			src: `func f(x int) int {
				if !(x == 0) {
					return 1 / x
				}
				return 0
			}`,
			sites: 1, unsafe: 0,
		},
		{
			name: "branching by sign",
			src: `func f(x int) int {
				if x > 0 {
					return 10 / x
				}
				if x < 0 {
					return 20 / x
				}
				return 0
			}`,
			sites: 2, unsafe: 0,
		},
		{
			name: "remainder of squares",
			src: `func f(x int) int {
				if x != 0 {
					return 100 % (x * x)
				}
				return 0
			}`,
			sites: 1, unsafe: 0,
		},
		{
			name: "loop clobbers the divisor",
			src: `func f(xs []int) int {
				d := 5
				for _, v := range xs {
					d = v
				}
				return 1 / d
			}`,
			sites: 1, unsafe: 1,
		},
		{
			name: "address-taken divisor is untracked",
			src: `func f() int {
				d := 5
				p := &d
				_ = p
				return 1 / d
			}`,
			sites: 1, unsafe: 1,
		},
		{
			name: "constant false branch is unreachable",
			src: `func f() int {
				z := 0
				if false {
					return 1 / z
				}
				return 1
			}`,
			// The arm is pruned outright, so its site is never
			// collected, let alone flagged.
			sites: 0, unsafe: 0,
		},
		{
			name: "sign-flipping loop",
			src: `func f(n int) int {
				x := 1
				for i := 0; i < n; i++ {
					x = -x
				}
				return 10 / x
			}`,
			sites: 1, unsafe: 0,
		},
		{
			name: "division site inside a call argument",
			src: `func g(int) {}
			func f(x int) {
				g(1 / x)
			}`,
			sites: 1, unsafe: 1,
		},
		{
			name: "swap keeps both facts",
			src: `func f() int {
				a, b := 0, 1
				a, b = b, a
				return 10 / a
			}`,
			sites: 1, unsafe: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			graphs := lower(t, test.src)
			g, ok := graphs["f"]
			if !ok {
				t.Fatal("fixture must declare f")
			}
			g.Compress()
			a := absint.Analyze(g)

			if sites := g.Sites(); len(sites) != test.sites {
				t.Fatalf("found %d sites, expected %d", len(sites), test.sites)
			}
			if unsafe := a.UnsafeSites(); len(unsafe) != test.unsafe {
				for _, s := range unsafe {
					t.Logf("flagged %s with divisor %s", s, a.FactAt(s))
				}
				t.Errorf("flagged %d sites, expected %d", len(unsafe), test.unsafe)
			}
		})
	}
}

func TestLowerShadowing(t *testing.T) {
	a := analyzeOne(t, `func f(x int) int {
		if x == 0 {
			x := 5
			_ = x
		}
		return 1 / x
	}`)

	// The inner x is a different variable: the outer one is still
	// zero on the then path, so the join admits zero. Conflating the
	// two would wrongly prove the division safe.
	sites := a.Graph().Sites()
	if len(sites) != 1 || !a.IsUnsafeDivision(sites[0]) {
		t.Error("shadowed assignment must not refine the outer variable")
	}
}

func TestLowerBreakPaths(t *testing.T) {
	a := analyzeOne(t, `func f(n int) int {
		d := 0
		for i := 0; i < n; i++ {
			if i > 2 {
				d = i
				break
			}
		}
		return 1 / d
	}`)

	// d is 0 when the loop falls through, positive via break: the
	// join admits zero.
	sites := a.Graph().Sites()
	if len(sites) != 1 || !a.IsUnsafeDivision(sites[0]) {
		t.Error("the fall-through path must keep zero in the divisor fact")
	}
}

func TestLowerNamedResultStartsAtZero(t *testing.T) {
	a := analyzeOne(t, `func f(x int) (d int) {
		d = 1
		if x > 0 {
			return x / d
		}
		return 0
	}`)

	sites := a.Graph().Sites()
	if len(sites) != 1 || a.IsUnsafeDivision(sites[0]) {
		t.Error("d is reassigned before the division and must be safe")
	}
}
