package markdown

import "strings"

// refDef is the resolved target of a link-reference definition.
type refDef struct {
	target string
	title  *string
}

// refTable is a document-scoped mapping from normalized label to refDef. It
// is created per-parse, mutated only during the def-collection pass, and
// consulted read-only during reflink/refimage resolution.
type refTable map[string]refDef

// normalize lowercases ASCII letters and collapses every run of whitespace
// to a single space, preserving a leading or trailing run as one space each.
// It is idempotent: normalize(normalize(x)) == normalize(x).
func normalize(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	inSpace := false
	for _, r := range label {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v' {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
