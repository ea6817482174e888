package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/frontier/pkg/dataset"
	"github.com/matzehuels/frontier/pkg/degrees"
)

// ErrTooLarge is returned by [DatasetDOT] when the dataset exceeds
// Options.MaxNodes.
var ErrTooLarge = errors.New("graph too large to draw")

// DefaultMaxNodes bounds whole-dataset drawings.
const DefaultMaxNodes = 2000

// Options configures DOT generation.
type Options struct {
	// Detailed adds birth years and release years to labels.
	Detailed bool
	// MaxNodes caps the people plus productions drawn by [DatasetDOT].
	// Zero means [DefaultMaxNodes]; negative means no limit.
	MaxNodes int
	// HideIsolated omits people without productions from [DatasetDOT].
	HideIsolated bool
	// Source and Path mark a chain to highlight in [DatasetDOT].
	Source string
	Path   degrees.Path
}

const (
	highlightColor = "#d9480f"
	personFill     = "#e7f5ff"
	productionFill = "#fff9db"
)

// ChainDOT draws the chain from source along path, left to right.
func ChainDOT(c degrees.Catalog, source string, path degrees.Path, opts Options) string {
	var buf bytes.Buffer
	writeHeader(&buf, "chain", "LR")

	writePerson(&buf, c, source, opts.Detailed, true)
	prev := source
	for _, step := range path {
		writeProduction(&buf, c, step.ProductionID, opts.Detailed, true)
		writePerson(&buf, c, step.PersonID, opts.Detailed, true)
		writeEdge(&buf, personNode(prev), productionNode(step.ProductionID), true)
		writeEdge(&buf, productionNode(step.ProductionID), personNode(step.PersonID), true)
		prev = step.PersonID
	}

	buf.WriteString("}\n")
	return buf.String()
}

// DatasetDOT draws every person and production of ds. Nodes and edges on
// opts.Path are highlighted.
func DatasetDOT(ds *dataset.Dataset, opts Options) (string, error) {
	limit := opts.MaxNodes
	if limit == 0 {
		limit = DefaultMaxNodes
	}
	people := ds.People()
	if opts.HideIsolated {
		kept := people[:0]
		for _, p := range people {
			if len(p.Productions) > 0 {
				kept = append(kept, p)
			}
		}
		people = kept
	}
	productions := ds.Productions()
	if n := len(people) + len(productions); limit > 0 && n > limit {
		return "", fmt.Errorf("%w: %d nodes, limit %d", ErrTooLarge, n, limit)
	}

	onPath := make(map[string]bool)
	edgeOnPath := make(map[[2]string]bool)
	if len(opts.Path) > 0 {
		onPath[personNode(opts.Source)] = true
		prev := opts.Source
		for _, step := range opts.Path {
			m := productionNode(step.ProductionID)
			onPath[m] = true
			onPath[personNode(step.PersonID)] = true
			edgeOnPath[[2]string{personNode(prev), m}] = true
			edgeOnPath[[2]string{personNode(step.PersonID), m}] = true
			prev = step.PersonID
		}
	}

	var buf bytes.Buffer
	writeHeader(&buf, "dataset", "LR")
	for _, p := range people {
		writePerson(&buf, ds, p.ID, opts.Detailed, onPath[personNode(p.ID)])
	}
	for _, m := range productions {
		writeProduction(&buf, ds, m.ID, opts.Detailed, onPath[productionNode(m.ID)])
	}
	buf.WriteString("\n")
	for _, p := range people {
		for _, mid := range p.Productions {
			from, to := personNode(p.ID), productionNode(mid)
			writeEdge(&buf, from, to, edgeOnPath[[2]string{from, to}])
		}
	}
	buf.WriteString("}\n")
	return buf.String(), nil
}

func writeHeader(buf *bytes.Buffer, name, rankdir string) {
	fmt.Fprintf(buf, "graph %s {\n", name)
	fmt.Fprintf(buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fontname=\"Helvetica\", fontsize=14];\n")
	buf.WriteString("  edge [color=\"#868e96\"];\n")
	buf.WriteString("\n")
}

func personNode(id string) string     { return "p:" + id }
func productionNode(id string) string { return "m:" + id }

func writePerson(buf *bytes.Buffer, c degrees.Catalog, id string, detailed, highlight bool) {
	label := id
	if p, ok := c.Person(id); ok {
		label = p.Name
		if detailed && p.Birth != 0 {
			label = fmt.Sprintf("%s\nb. %d", p.Name, p.Birth)
		}
	}
	attrs := []string{fmt.Sprintf("label=%q", label), "shape=ellipse", fmt.Sprintf("fillcolor=%q", personFill)}
	if highlight {
		attrs = append(attrs, fmt.Sprintf("color=%q", highlightColor), "penwidth=2")
	}
	fmt.Fprintf(buf, "  %q [%s];\n", personNode(id), strings.Join(attrs, ", "))
}

func writeProduction(buf *bytes.Buffer, c degrees.Catalog, id string, detailed, highlight bool) {
	label := id
	if m, ok := c.Production(id); ok {
		label = m.Title
		if detailed && m.Year != 0 {
			label = fmt.Sprintf("%s\n(%d)", m.Title, m.Year)
		}
	}
	attrs := []string{fmt.Sprintf("label=%q", label), "shape=box", fmt.Sprintf("fillcolor=%q", productionFill)}
	if highlight {
		attrs = append(attrs, fmt.Sprintf("color=%q", highlightColor), "penwidth=2")
	}
	fmt.Fprintf(buf, "  %q [%s];\n", productionNode(id), strings.Join(attrs, ", "))
}

func writeEdge(buf *bytes.Buffer, from, to string, highlight bool) {
	if highlight {
		fmt.Fprintf(buf, "  %q -- %q [color=%q, penwidth=2];\n", from, to, highlightColor)
		return
	}
	fmt.Fprintf(buf, "  %q -- %q;\n", from, to)
}
