package markdown

import (
	"fmt"
	"strings"
)

// Walk calls visit for n and then, depth-first, for every Node reachable
// through its Children/Items/Header/Cells slices. visit returning false
// stops descent into that Node's own children (siblings are unaffected).
func Walk(nodes []Node, visit func(n *Node, depth int) bool) {
	walk(nodes, 0, visit)
}

func walk(nodes []Node, depth int, visit func(n *Node, depth int) bool) {
	for i := range nodes {
		n := &nodes[i]
		descend := visit(n, depth)
		if !descend {
			continue
		}
		walk(n.Children, depth+1, visit)
		for _, item := range n.Items {
			walk(item, depth+1, visit)
		}
		for _, cell := range n.Header {
			walk(cell, depth+1, visit)
		}
		for _, row := range n.Cells {
			for _, cell := range row {
				walk(cell, depth+1, visit)
			}
		}
	}
}

// Debug renders a Node tree as an indented, human-readable string, in the
// same spirit as the sibling discord-formatting library's Debug function:
// meant for test failure output and manual inspection, not for
// round-tripping back into source.
func Debug(nodes []Node) string {
	var b strings.Builder
	for i := range nodes {
		debugNode(&b, &nodes[i], 0)
	}
	return b.String()
}

func debugNode(b *strings.Builder, n *Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(string(n.Type))
	b.WriteString(debugAttrs(n))
	b.WriteString("\n")

	for i := range n.Children {
		debugNode(b, &n.Children[i], depth+1)
	}
	for itemIdx, item := range n.Items {
		b.WriteString(strings.Repeat("  ", depth+1))
		fmt.Fprintf(b, "item[%d]\n", itemIdx)
		for i := range item {
			debugNode(b, &item[i], depth+2)
		}
	}
	if len(n.Header) > 0 {
		b.WriteString(strings.Repeat("  ", depth+1))
		b.WriteString("header\n")
		for _, cell := range n.Header {
			for i := range cell {
				debugNode(b, &cell[i], depth+2)
			}
		}
	}
	for rowIdx, row := range n.Cells {
		b.WriteString(strings.Repeat("  ", depth+1))
		fmt.Fprintf(b, "row[%d]\n", rowIdx)
		for _, cell := range row {
			for i := range cell {
				debugNode(b, &cell[i], depth+2)
			}
		}
	}
}

func debugAttrs(n *Node) string {
	var parts []string
	if n.Content != "" {
		parts = append(parts, fmt.Sprintf("content=%q", n.Content))
	}
	if n.Target != "" {
		parts = append(parts, fmt.Sprintf("target=%q", n.Target))
	}
	if n.Title != nil {
		parts = append(parts, fmt.Sprintf("title=%q", *n.Title))
	}
	if n.Alt != "" {
		parts = append(parts, fmt.Sprintf("alt=%q", n.Alt))
	}
	if n.Level != 0 {
		parts = append(parts, fmt.Sprintf("level=%d", n.Level))
	}
	if n.Lang != nil {
		parts = append(parts, fmt.Sprintf("lang=%q", *n.Lang))
	}
	if n.Type == NodeList {
		parts = append(parts, fmt.Sprintf("ordered=%t", n.Ordered))
		if n.Start != nil {
			parts = append(parts, fmt.Sprintf("start=%d", *n.Start))
		}
	}
	if n.Def != "" {
		parts = append(parts, fmt.Sprintf("def=%q", n.Def))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, " ") + ")"
}
