// Package conflictgraph renders a day's reservation conflicts as a
// node-link diagram.
//
// Each reservation that shares a table with an overlapping reservation
// becomes a node; each overlapping pair on the same table becomes an
// edge labelled with the table key. Hosts use the diagram to untangle
// double-bookings before service.
//
// # Usage
//
//	dot := conflictgraph.ToDOT(layout)
//	svg, err := conflictgraph.RenderSVG(dot)
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package conflictgraph

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/goccy/go-graphviz"

	"github.com/KyleKincer/tableyeah/pkg/timeline"
)

// Edge is one conflicting pair on one table.
type Edge struct {
	A, B     string // reservation IDs, A < B
	TableKey string
}

// Edges extracts the conflicting pairs from a layout. Pairs are reported
// once per table they collide on, in deterministic order.
func Edges(l *timeline.Layout) []Edge {
	var edges []Edge
	for _, row := range l.Rows {
		for i := range row.Bars {
			for j := i + 1; j < len(row.Bars); j++ {
				a, b := row.Bars[i], row.Bars[j]
				if a.StartMinute < b.EndMinute && b.StartMinute < a.EndMinute {
					first, second := a.ReservationID, b.ReservationID
					if second < first {
						first, second = second, first
					}
					edges = append(edges, Edge{A: first, B: second, TableKey: row.Label()})
				}
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		if edges[i].B != edges[j].B {
			return edges[i].B < edges[j].B
		}
		return edges[i].TableKey < edges[j].TableKey
	})
	return edges
}

// ToDOT converts a layout's conflicts to Graphviz DOT format. The
// resulting DOT string can be rendered with [RenderSVG].
func ToDOT(l *timeline.Layout) string {
	edges := Edges(l)

	nodes := map[string]bool{}
	for _, e := range edges {
		nodes[e.A] = true
		nodes[e.B] = true
	}
	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var buf bytes.Buffer
	buf.WriteString("graph conflicts {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, id := range ids {
		fmt.Fprintf(&buf, "  %q;\n", id)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -- %q [label=%q];\n", e.A, e.B, e.TableKey)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
