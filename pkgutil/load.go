// Package pkgutil loads Go packages with full syntax and type
// information for analysis.
package pkgutil

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// LoadConfig configures package loading. Dir is the directory from
// which the load is run, typically inside the target module. If
// IncludeTests is true, package loading will also expose test
// functions.
type LoadConfig struct {
	Dir          string
	IncludeTests bool
}

// loadMode avoids deprecation warnings from using packages.LoadAllSyntax.
// It sets every packages.Need* option the analysis consumes.
const loadMode packages.LoadMode = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
	packages.NeedImports | packages.NeedTypes | packages.NeedSyntax |
	packages.NeedTypesInfo | packages.NeedDeps

// cwd is the working directory at invocation.
var cwd = func() string {
	if dir, err := os.Getwd(); err == nil {
		return dir
	} else {
		panic(err)
	}
}()

// relativizingParseFile is a ParseFile implementation that relativizes
// filenames against the CWD. Reported positions stay system agnostic,
// which matters for golden tests involving file paths.
func relativizingParseFile(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
	if rel, err := filepath.Rel(cwd, filename); err == nil {
		filename = rel
	}
	const mode = parser.AllErrors | parser.ParseComments
	return parser.ParseFile(fset, filename, src, mode)
}

// LoadPackages loads the packages matched by the given patterns,
// module-aware, rooted at cfg.Dir.
func LoadPackages(cfg LoadConfig, patterns ...string) ([]*packages.Package, error) {
	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, err
	}

	config := &packages.Config{
		Mode:      loadMode,
		Tests:     cfg.IncludeTests,
		Dir:       dir,
		ParseFile: relativizingParseFile,
	}

	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	return loadPackagesWithConfig(config, patterns...)
}

// LoadPackagesFromSource loads a single package directly from a source
// string. It is mainly useful for testing.
func LoadPackagesFromSource(source string) ([]*packages.Package, error) {
	// The Overlay mechanism lets the loader see a non-existent file.
	config := &packages.Config{
		Mode:  loadMode,
		Tests: false,
		Env:   append(os.Environ(), "GO111MODULE=off", "GOPATH=/fake"),
		Overlay: map[string][]byte{
			"/fake/testpackage/main.go": []byte(source),
		},
	}

	return loadPackagesWithConfig(config, "/fake/testpackage/main.go")
}

// loadPackagesWithConfig wraps packages.Load and performs additional
// filtering when loading includes test packages.
func loadPackagesWithConfig(config *packages.Config, patterns ...string) ([]*packages.Package, error) {
	pkgs, err := packages.Load(config, patterns...)
	if err != nil {
		return nil, err
	} else if packages.PrintErrors(pkgs) > 0 {
		return nil, errors.New("errors encountered while loading packages")
	}

	if config.Tests {
		// Packages with test functions are returned twice, once
		// without tests and once with. Discard the duplicate without
		// tests so every function body is analyzed exactly once.
		packageIDs := map[string]bool{}
		for _, pkg := range pkgs {
			packageIDs[pkg.ID] = true
		}

		filtered := []*packages.Package{}
		for _, pkg := range pkgs {
			if !packageIDs[fmt.Sprintf("%s [%s.test]", pkg.ID, pkg.ID)] {
				filtered = append(filtered, pkg)
			}
		}
		pkgs = filtered
	}

	return pkgs, nil
}
