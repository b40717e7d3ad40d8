package lattice

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
)

// colorize is the pretty-printer palette for lattice-related output.
// Coloring is controlled globally through color.NoColor.
var colorize = struct {
	Lattice func(...interface{}) string
	Element func(...interface{}) string
	Const   func(...interface{}) string
}{
	Lattice: color.New(color.FgHiBlue).SprintFunc(),
	Element: color.New(color.FgCyan).SprintFunc(),
	Const:   color.New(color.FgHiWhite).SprintFunc(),
}

var (
	errInternal     = errors.New("internal error")
	errPatternMatch = func(v interface{}) error {
		return fmt.Errorf("invalid pattern match: %v %T", v, v)
	}
)
