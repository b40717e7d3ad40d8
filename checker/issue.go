package checker

import (
	"fmt"
	"go/token"
	"io"

	"github.com/fatih/color"

	"github.com/slyubomirsky/div-by-zero-checker/analysis/lattice"
)

// Issue is one division or remainder site whose divisor could not be
// proven non-zero.
type Issue struct {
	// Fn is the name of the function holding the site.
	Fn string
	// Fact is the divisor's joined sign fact.
	Fact lattice.Sign
	// Pos locates the operator in the source.
	Pos token.Position
}

func (i Issue) String() string {
	return fmt.Sprintf("%s:%d: possible division by zero in %s (divisor: %s)",
		i.Pos.Filename, i.Pos.Line, i.Fn, i.Fact)
}

// Print writes one line per issue. Severity coloring follows the
// fatih/color global switch, so piped output stays plain.
func Print(w io.Writer, issues []Issue) {
	warn := color.New(color.FgRed, color.Bold).SprintFunc()
	for _, issue := range issues {
		fmt.Fprintf(w, "%s:%d: %s in %s (divisor: %s)\n",
			issue.Pos.Filename, issue.Pos.Line,
			warn("possible division by zero"), issue.Fn, issue.Fact)
	}
}
