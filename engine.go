package markdown

import (
	"sort"
	"strings"
)

// Engine is a reusable, concurrency-safe parser bound to an ordered Rule
// slice. Engines hold no mutable state beyond the immutable rule slice, so
// one Engine (including the package-level default one used by Parse) can be
// shared across goroutines parsing distinct inputs.
type Engine struct {
	rules []Rule
}

// NewEngine builds an Engine from rules, which need not already be sorted:
// NewEngine stable-sorts a copy by ascending Order, preserving the input's
// relative order for ties.
func NewEngine(rules []Rule) *Engine {
	cp := make([]Rule, len(rules))
	copy(cp, rules)
	sort.SliceStable(cp, func(i, j int) bool {
		return cp[i].Order < cp[j].Order
	})
	return &Engine{rules: cp}
}

var defaultEngine = NewEngine(DefaultRules())

// Parse parses source as a full document and returns the top-level Node
// sequence. It runs the def-collection pre-pass, then the real parse, so
// that every reflink/refimage resolves against the document's final
// reference table, whether the winning def appears before or after it.
//
// Per the §3 top-level invariant, the result is a sequence of block-level
// Nodes, except when source is a single line with no embedded newline at
// all: then it is parsed directly in inline mode and the result is that
// flat inline sequence instead of a paragraph-wrapped one.
func Parse(source string) ([]Node, error) {
	return defaultEngine.Parse(source)
}

// ParseInline parses source directly in inline mode, bypassing block
// dispatch. The def-collection pre-pass still runs over source, so a def
// line inside the fragment resolves reflinks in it.
func ParseInline(source string) ([]Node, error) {
	return defaultEngine.ParseInline(source)
}

// Parse is the Engine-bound equivalent of the package-level Parse.
func (e *Engine) Parse(source string) (nodes []Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(ruleExhaustionPanic); ok {
				err = ErrRuleExhaustion
				return
			}
			panic(r)
		}
	}()

	refs := make(refTable)
	collectDefs(source, refs)

	if !strings.Contains(source, "\n") {
		return e.parseLoop(source, state{mode: Inline, refs: refs}), nil
	}
	return e.parseLoop(source, state{mode: Block, refs: refs}), nil
}

// ParseInline is the Engine-bound equivalent of the package-level
// ParseInline.
func (e *Engine) ParseInline(source string) (nodes []Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(ruleExhaustionPanic); ok {
				err = ErrRuleExhaustion
				return
			}
			panic(r)
		}
	}()
	refs := make(refTable)
	collectDefs(source, refs)
	return e.parseLoop(source, state{mode: Inline, refs: refs}), nil
}

// recurseFor builds a RecurseFunc bound to e and refs, parsing inner with
// the mode passed at the call site.
func (e *Engine) recurseFor(refs refTable) RecurseFunc {
	return func(inner string, m Mode) []Node {
		return e.parseLoop(inner, state{mode: m, refs: refs})
	}
}

// parseLoop is the recursive dispatcher described in §4.3: it repeatedly
// picks the best matching rule, invokes its Parse, and advances remaining
// past the captured prefix, until remaining is empty.
func (e *Engine) parseLoop(remaining string, st state) []Node {
	var out []Node
	var prevCapture *Capture
	recurse := e.recurseFor(st.refs)

	for remaining != "" {
		rule, cap := e.dispatch(remaining, st, prevCapture)
		if rule == nil || len(cap.Raw) == 0 {
			// A zero-width match would never advance the loop; treat it
			// the same as no rule matching. Cannot happen with the
			// built-in rule set, whose every Match consumes >=1 byte.
			panic(ruleExhaustionPanic{remaining: remaining})
		}
		result := rule.Parse(cap, recurse, st)
		out = append(out, result.nodes...)
		remaining = remaining[len(cap.Raw):]
		prevCapture = cap
	}
	return out
}

// dispatch implements the rule-selection algorithm of §4.3 step 2: the
// first matching rule wins, unless it declares a Quality function, in
// which case every subsequent rule that also matches and also declares a
// Quality function is considered, and the highest-quality match wins.
func (e *Engine) dispatch(remaining string, st state, prevCapture *Capture) (*Rule, *Capture) {
	var best *Rule
	var bestCap *Capture
	var bestQuality float64
	consideringQuality := false

	for i := range e.rules {
		r := &e.rules[i]
		if !r.appliesTo(st.mode) {
			continue
		}
		cap := r.Match(remaining, st, prevCapture)
		if cap == nil {
			continue
		}
		if best == nil {
			best, bestCap = r, cap
			if r.Quality != nil {
				bestQuality = r.Quality(cap)
				consideringQuality = true
				continue
			}
			break
		}
		if !consideringQuality {
			break
		}
		if r.Quality == nil {
			continue
		}
		if q := r.Quality(cap); q > bestQuality {
			best, bestCap, bestQuality = r, cap, q
		}
	}
	return best, bestCap
}

// collectDefs scans source line-by-line for reference definitions and
// populates refs with the final value for each label. Only defs at the
// start of a source line (after at most three spaces) are seen; a def
// behind a blockquote's '>' prefix is not collected, even though the def
// rule still emits its node. This is the two-pass mechanism of §4.3: it must run to
// completion before any inline rule resolves a reflink/refimage, since a
// later def in document order can retroactively change an earlier
// reflink's target.
func collectDefs(source string, refs refTable) {
	rest := source
	for len(rest) > 0 {
		idx := defPattern.FindStringSubmatchIndex(rest)
		if idx == nil || idx[0] != 0 {
			nl := strings.IndexByte(rest, '\n')
			if nl < 0 {
				return
			}
			rest = rest[nl+1:]
			continue
		}
		label := submatch(rest, idx, 1)
		target := defTarget(submatch(rest, idx, 2))
		title := defTitleFrom(rest, idx)
		refs[normalize(label)] = refDef{target: target, title: title}
		rest = rest[idx[1]:]
	}
}

func submatch(s string, idx []int, group int) string {
	start, end := idx[group*2], idx[group*2+1]
	if start < 0 || end < 0 {
		return ""
	}
	return s[start:end]
}
