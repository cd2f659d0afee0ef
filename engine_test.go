package markdown_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	markdown "github.com/cklg/mdcore"
)

// a custom rule set missing a catch-all, to exercise ErrRuleExhaustion:
// only escape is registered, so any non-backslash input can't be matched.
func noCatchAllRules() []markdown.Rule {
	for _, r := range markdown.DefaultRules() {
		if r.Name == "escape" {
			return []markdown.Rule{r}
		}
	}
	panic("escape rule not found")
}

func TestEngineRuleExhaustion(t *testing.T) {
	eng := markdown.NewEngine(noCatchAllRules())
	_, err := eng.ParseInline("plain text")
	require.Error(t, err)
	require.True(t, errors.Is(err, markdown.ErrRuleExhaustion))
}

func TestEngineCustomRuleSetStillParsesEscape(t *testing.T) {
	eng := markdown.NewEngine(noCatchAllRules())
	nodes, err := eng.ParseInline(`\*`)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Equal(t, markdown.NodeText, nodes[0].Type)
	require.Equal(t, "*", nodes[0].Content)
}

func TestNewEngineIsOrderStable(t *testing.T) {
	// Two engines built from the same rules in different declaration order
	// still dispatch identically once sorted by Order, since DefaultRules
	// has no same-Order ties among rules that could both match one input.
	rules := markdown.DefaultRules()
	reversed := make([]markdown.Rule, len(rules))
	for i, r := range rules {
		reversed[len(rules)-1-i] = r
	}
	a := markdown.NewEngine(rules)
	b := markdown.NewEngine(reversed)

	src := "# heading\n\nparagraph with **bold**.\n"
	na, errA := a.Parse(src)
	nb, errB := b.Parse(src)
	require.NoError(t, errA)
	require.NoError(t, errB)
	require.Equal(t, na, nb)
}
