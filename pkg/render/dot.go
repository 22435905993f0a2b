package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/slotforge/slotforge/pkg/geom/sandbox"
)

// HistoryDOT converts a component's construction history to Graphviz DOT
// format. Features form a chain: each depends on the body state left by
// the previous one, so the graph is a single top-to-bottom path.
func HistoryDOT(features []sandbox.Feature) string {
	var buf bytes.Buffer
	buf.WriteString("digraph history {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for i, f := range features {
		fmt.Fprintf(&buf, "  f%d [label=%q];\n", i, f.Kind+"\n"+f.Detail)
	}
	buf.WriteString("\n")
	for i := 1; i < len(features); i++ {
		fmt.Fprintf(&buf, "  f%d -> f%d;\n", i-1, i)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// HistorySVG renders a DOT history graph to SVG using Graphviz.
func HistorySVG(dot string) ([]byte, error) {
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
