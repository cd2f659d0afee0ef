// Package mdtest provides test helpers for asserting on markdown.Node trees.
package mdtest

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	markdown "github.com/cklg/mdcore"
)

// reporter is the subset of *testing.T this package needs, so tests can
// pass a *testing.T without this package importing the testing package
// into non-test builds.
type reporter interface {
	Helper()
	Errorf(format string, args ...any)
}

// AssertEqual fails t with a unified tree diff if got and want differ. Node
// is a plain struct with only exported fields, so cmp.Diff needs no custom
// comparer; cmpopts.EquateEmpty treats a nil slice and an empty slice as
// equal, matching the fact that Parse never distinguishes "no children"
// from "nil children".
func AssertEqual(t reporter, got, want []markdown.Node) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("node tree mismatch (-want +got):\n%s", diff)
	}
}

// Text builds a leaf markdown.Node{Type: NodeText}, for building expected
// trees tersely in table-driven tests.
func Text(s string) markdown.Node {
	return markdown.Node{Type: markdown.NodeText, Content: s}
}

// Dump is a convenience wrapper around markdown.Debug for failure messages
// that want the rendered tree inline rather than a struct diff.
func Dump(nodes []markdown.Node) string {
	return fmt.Sprintf("\n%s", markdown.Debug(nodes))
}
