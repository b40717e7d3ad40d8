package cfg

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/goccy/go-graphviz"
)

const tmplGraph = `digraph {{.Name}} {
	label="{{.Name}}";
	labeljust="l";
	fontname="Arial";
	fontsize="14";
	rankdir="TB";

	node [shape="box" style="filled" fillcolor="honeydew" fontname="Courier" penwidth="1.0" margin="0.1,0.05"];

{{range .Nodes}}	{{printf "%q [ label=%q ]" .ID .Label}}
{{end}}
{{range .Edges}}	{{printf "%q -> %q [ label=%q ]" .From .To .Label}}
{{end}}}
`

type dotNode struct {
	ID    string
	Label string
}

type dotEdge struct {
	From, To string
	Label    string
}

type dotGraph struct {
	Name  string
	Nodes []dotNode
	Edges []dotEdge
}

// Dot renders the graph in graphviz dot syntax. The optional annotate
// function contributes an extra label line per block, typically the
// block's entry store after a fixpoint.
func (g *Cfg) Dot(annotate func(*Block) string) []byte {
	dg := dotGraph{Name: sanitizeDotId(g.name)}

	id := func(b *Block) string {
		if b == g.entry {
			return fmt.Sprintf("entry %d", b.index)
		}
		return fmt.Sprintf("block %d", b.index)
	}

	g.ForEach(func(b *Block) {
		var lines []string
		for _, instr := range b.instrs {
			lines = append(lines, instr.String())
		}
		if b.cond != nil {
			lines = append(lines, "if "+b.cond.String())
		}
		if len(lines) == 0 {
			lines = append(lines, "·")
		}
		if annotate != nil {
			if extra := annotate(b); extra != "" {
				lines = append(lines, extra)
			}
		}
		dg.Nodes = append(dg.Nodes, dotNode{ID: id(b), Label: strings.Join(lines, "\n")})

		switch {
		case b.thenB != nil && b.cond != nil:
			dg.Edges = append(dg.Edges,
				dotEdge{From: id(b), To: id(b.thenB), Label: "true"},
				dotEdge{From: id(b), To: id(b.elsB), Label: "false"})
		case b.thenB != nil:
			dg.Edges = append(dg.Edges,
				dotEdge{From: id(b), To: id(b.thenB)},
				dotEdge{From: id(b), To: id(b.elsB)})
		case b.next != nil:
			dg.Edges = append(dg.Edges, dotEdge{From: id(b), To: id(b.next)})
		}
	})

	tmpl := template.Must(template.New("cfg").Parse(tmplGraph))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, dg); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func sanitizeDotId(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, name)
}

// DotToImage renders dot source to an image file using the graphviz
// bindings and returns the written filename.
func DotToImage(outfname string, format string, dot []byte) (string, error) {
	g := graphviz.New()
	graph, err := graphviz.ParseBytes(dot)
	if err != nil {
		return "", err
	}
	defer func() {
		graph.Close()
		g.Close()
	}()

	img := fmt.Sprintf("%s.%s", outfname, format)
	if err := g.RenderFilename(graph, graphviz.Format(format), img); err != nil {
		return "", err
	}
	return img, nil
}
