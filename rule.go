package markdown

// Capture is the successful match result of a Rule at the current position.
// Raw is the exact prefix of the input the rule consumed (used to advance
// the residual input); Groups holds rule-specific submatches, regex-derived
// or hand-built, with Groups[0] conventionally equal to Raw.
type Capture struct {
	Raw    string
	Groups []string

	// Extra carries rule-specific structured data for rules whose capture
	// doesn't fit the flat string-submatch shape (list, table): those
	// rules' hand-written Match populates it, and their own Parse knows
	// how to read it back. Nothing outside a rule's own pair of functions
	// should depend on Extra's concrete type.
	Extra any
}

// Group returns the i-th submatch, or "" if i is out of range or the group
// did not participate in the match.
func (c *Capture) Group(i int) string {
	if c == nil || i < 0 || i >= len(c.Groups) {
		return ""
	}
	return c.Groups[i]
}

// ParseResult is the output of a Rule's Parse function: either exactly one
// Node or a sequence of Nodes spliced into the caller's output in place.
type ParseResult struct {
	nodes []Node
}

// one builds a ParseResult wrapping a single Node.
func one(n Node) ParseResult {
	return ParseResult{nodes: []Node{n}}
}

// many builds a ParseResult wrapping a Node sequence.
func many(ns []Node) ParseResult {
	return ParseResult{nodes: ns}
}

// none builds an empty ParseResult, for rules that consume input without
// emitting a Node (e.g. a blank-line separator).
func none() ParseResult {
	return ParseResult{}
}

// RecurseFunc re-enters the engine on inner text with a mode override. It is
// how blockQuote, list items, heading bodies, link text, and emphasis
// bodies obtain their sub-trees.
type RecurseFunc func(inner string, m Mode) []Node

// MatchFunc attempts a prefix match of a rule against remaining. prevCapture
// is the last successful capture at this recursion level (nil only at the
// very start of that level), available to rules whose legality depends on
// being at a line start after a blank line.
type MatchFunc func(remaining string, st state, prevCapture *Capture) *Capture

// ParseFunc turns a Capture into Node(s), possibly calling recurse to parse
// nested content.
type ParseFunc func(cap *Capture, recurse RecurseFunc, st state) ParseResult

// QualityFunc is an optional tiebreaker: when the first matching rule (by
// Order) has one, the engine keeps scanning later rules and prefers the
// highest-quality match among all quality-bearing matches. A rule with a
// Quality is not considered once an earlier, quality-less rule has matched.
type QualityFunc func(cap *Capture) float64

// Rule is a named, ordered descriptor pairing a matcher with a semantic
// transformer.
type Rule struct {
	// Name identifies the rule for debugging; it has no effect on parsing.
	Name string
	// Order controls dispatch priority: smaller runs first. Ties are
	// broken by declaration order in the slice passed to NewEngine.
	Order int
	// Modes lists the parser modes in which this rule is eligible. A rule
	// with no entries is never eligible (rules must opt in explicitly).
	Modes []Mode
	Match MatchFunc
	Parse ParseFunc
	// Quality is optional; see QualityFunc.
	Quality QualityFunc
}

// appliesTo reports whether the rule is eligible in mode m.
func (r *Rule) appliesTo(m Mode) bool {
	for _, rm := range r.Modes {
		if rm == m {
			return true
		}
	}
	return false
}
