package markdown_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	markdown "github.com/cklg/mdcore"
)

func TestDebugRendersNestedStructure(t *testing.T) {
	nodes, err := markdown.Parse("# Title\n\nHello **world**.\n")
	require.NoError(t, err)
	out := markdown.Debug(nodes)

	require.True(t, strings.Contains(out, "heading"))
	require.True(t, strings.Contains(out, "paragraph"))
	require.True(t, strings.Contains(out, "strong"))
	require.True(t, strings.Contains(out, `content="world"`))
}

func TestDebugListRendersItems(t *testing.T) {
	nodes, err := markdown.Parse("* a\n* b\n")
	require.NoError(t, err)
	out := markdown.Debug(nodes)
	require.True(t, strings.Contains(out, "item[0]"))
	require.True(t, strings.Contains(out, "item[1]"))
}

func TestDebugTableRendersHeaderAndRows(t *testing.T) {
	nodes, err := markdown.Parse("| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	out := markdown.Debug(nodes)
	require.True(t, strings.Contains(out, "header"))
	require.True(t, strings.Contains(out, "row[0]"))
}

func TestWalkVisitsEveryNode(t *testing.T) {
	nodes, err := markdown.Parse("# T\n\n*a* and **b**\n")
	require.NoError(t, err)
	count := 0
	markdown.Walk(nodes, func(n *markdown.Node, depth int) bool {
		count++
		return true
	})
	require.Greater(t, count, 3)
}
