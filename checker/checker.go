// Package checker orchestrates the divide-by-zero analysis over
// loaded Go packages and renders the findings.
package checker

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"github.com/slyubomirsky/div-by-zero-checker/analysis/absint"
	"github.com/slyubomirsky/div-by-zero-checker/analysis/cfg"
	"github.com/slyubomirsky/div-by-zero-checker/analysis/upfront"
	"github.com/slyubomirsky/div-by-zero-checker/pkgutil"
)

// CheckPackages analyzes every function body of every package and
// returns the issues in deterministic order: packages as given, files
// in package order, functions in file order, sites in graph order.
func CheckPackages(pkgs []*packages.Package, conf Config) ([]Issue, error) {
	var issues []Issue
	for _, pkg := range pkgs {
		found, err := CheckFiles(pkg.Fset, pkg.TypesInfo, pkg.Syntax, conf)
		if err != nil {
			return nil, err
		}
		issues = append(issues, found...)
	}
	return issues, nil
}

// CheckFiles analyzes the function declarations of already
// type-checked files.
func CheckFiles(fset *token.FileSet, info *types.Info, files []*ast.File, conf Config) ([]Issue, error) {
	var issues []Issue
	for _, file := range files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Body == nil || conf.Ignored(fn.Name.Name) {
				continue
			}

			a := analyzeFunc(fset, info, fn)
			for _, site := range a.UnsafeSites() {
				issues = append(issues, Issue{
					Fn:   fn.Name.Name,
					Fact: a.FactAt(site),
					Pos:  site.Pos,
				})
			}

			if conf.Visualize != "" {
				if _, err := visualize(a, conf); err != nil {
					return nil, fmt.Errorf("visualizing %s: %w", fn.Name.Name, err)
				}
			}
		}
	}
	return issues, nil
}

// CheckSource analyzes a single package given as a source string. It
// is mainly useful for testing.
func CheckSource(source string, conf Config) ([]Issue, error) {
	pkgs, err := pkgutil.LoadPackagesFromSource(source)
	if err != nil {
		return nil, err
	}
	return CheckPackages(pkgs, conf)
}

func analyzeFunc(fset *token.FileSet, info *types.Info, fn *ast.FuncDecl) *absint.Analysis {
	g := upfront.BuildFunc(fset, info, fn)
	g.Compress()
	return absint.Analyze(g)
}

// visualize renders the function's graph, annotated with the fixpoint
// entry store of each block, into the configured directory.
func visualize(a *absint.Analysis, conf Config) (string, error) {
	g := a.Graph()
	dot := g.Dot(func(b *cfg.Block) string {
		return a.EntryStore(b).String()
	})
	base := filepath.Join(conf.Visualize, g.Name())
	return cfg.DotToImage(base, conf.visualizeFormat(), dot)
}
