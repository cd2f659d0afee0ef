package markdown

import (
	"regexp"
	"strings"
)

// Inline rule orders. Lower runs first. escape and inlineCode must precede
// every delimiter rule so `` ` `` spans and `\X` escapes are never
// reinterpreted as emphasis markers; strong/u must precede em so a run of
// 2+ asterisks/underscores isn't mistaken for a single-char em open; text
// is the unconditional catch-all and always runs last.
const (
	orderEscape     = 0
	orderInlineCode = 5
	orderBr         = 6
	orderAutolink   = 10
	orderMailto     = 11
	orderURL        = 12
	orderImage      = 20
	orderLink       = 21
	orderRefImage   = 22
	orderRefLink    = 23
	orderStrong     = 30
	orderU          = 31
	orderDel        = 32
	orderEm         = 33
	orderText       = 1000
)

var escapeChars = "`*~|<[{^\\_"
var escapePattern = regexp.MustCompile(`^\\([` + regexp.QuoteMeta(escapeChars) + `])`)

// escapeRule implements §4.5 escape: every escaped character becomes its
// own text node, never merged with neighboring text.
func escapeRule() Rule {
	return Rule{
		Name:  "escape",
		Order: orderEscape,
		Modes: []Mode{Inline, SimpleInline},
		Match: func(remaining string, st state, prev *Capture) *Capture {
			idx := escapePattern.FindStringSubmatchIndex(remaining)
			if idx == nil || idx[0] != 0 {
				return nil
			}
			return &Capture{Raw: remaining[:idx[1]], Groups: []string{remaining[:idx[1]], submatch(remaining, idx, 1)}}
		},
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			return one(Node{Type: NodeText, Content: cap.Group(1)})
		},
	}
}

var autolinkPattern = regexp.MustCompile(`^<([a-zA-Z][a-zA-Z0-9+.\-]*://[^\s<>]*)>`)

func autolinkRule() Rule {
	return Rule{
		Name:  "autolink",
		Order: orderAutolink,
		Modes: []Mode{Inline, SimpleInline},
		Match: regexMatcher(autolinkPattern),
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			url := cap.Group(1)
			return one(Node{Type: NodeLink, Target: url, Children: []Node{{Type: NodeText, Content: url}}})
		},
	}
}

var mailtoPattern = regexp.MustCompile(`^<(?:mailto:)?([^\s<>@]+@[^\s<>]+)>`)

func mailtoRule() Rule {
	return Rule{
		Name:  "mailto",
		Order: orderMailto,
		Modes: []Mode{Inline, SimpleInline},
		Match: regexMatcher(mailtoPattern),
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			addr := cap.Group(1)
			return one(Node{Type: NodeLink, Target: "mailto:" + addr, Children: []Node{{Type: NodeText, Content: addr}}})
		},
	}
}

var urlPattern = regexp.MustCompile(`^(https?://[^\s<]+[^\s<.,:;"')\]])`)

func urlRule() Rule {
	return Rule{
		Name:  "url",
		Order: orderURL,
		Modes: []Mode{Inline, SimpleInline},
		Match: regexMatcher(urlPattern),
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			url := cap.Group(1)
			return one(Node{Type: NodeLink, Target: url, Children: []Node{{Type: NodeText, Content: url}}})
		},
	}
}

// regexMatcher adapts a precompiled, anchored regexp into a MatchFunc,
// requiring the match to start at position 0 (regexps here are all
// "^"-anchored, but FindStringSubmatchIndex still searches, so the check
// guards against the degenerate case of a regex with a non-anchored
// alternative).
func regexMatcher(re *regexp.Regexp) MatchFunc {
	return func(remaining string, st state, prev *Capture) *Capture {
		idx := re.FindStringSubmatchIndex(remaining)
		if idx == nil || idx[0] != 0 {
			return nil
		}
		groups := make([]string, len(idx)/2)
		for g := range groups {
			groups[g] = submatch(remaining, idx, g)
		}
		return &Capture{Raw: remaining[:idx[1]], Groups: groups}
	}
}

// bracketBody matches balanced-ish link/image display text: either nested
// brackets or any non-bracket character.
const bracketBody = `(?:\[[^\]]*\]|[^\]])*`

var linkPattern = regexp.MustCompile(`^\[(` + bracketBody + `)\]\(\s*<?((?:[^\s\\]|\\.)*?)>?(?:\s+(?:"([^"]*)"|'([^']*)'))?\s*\)`)

func linkRule() Rule {
	return Rule{
		Name:  "link",
		Order: orderLink,
		Modes: []Mode{Inline, SimpleInline},
		Match: regexMatcher(linkPattern),
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			text := cap.Group(1)
			target := cap.Group(2)
			var title *string
			if t := cap.Group(3); t != "" {
				title = optionalString(t)
			} else if t := cap.Group(4); t != "" {
				title = optionalString(t)
			}
			return one(Node{Type: NodeLink, Target: target, Title: title, Children: recurse(text, SimpleInline)})
		},
	}
}

var imagePattern = regexp.MustCompile(`^!\[(` + bracketBody + `)\]\(\s*<?((?:[^\s\\]|\\.)*?)>?(?:\s+(?:"([^"]*)"|'([^']*)'))?\s*\)`)

func imageRule() Rule {
	return Rule{
		Name:  "image",
		Order: orderImage,
		Modes: []Mode{Inline, SimpleInline},
		Match: regexMatcher(imagePattern),
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			alt := cap.Group(1)
			target := cap.Group(2)
			var title *string
			if t := cap.Group(3); t != "" {
				title = optionalString(t)
			} else if t := cap.Group(4); t != "" {
				title = optionalString(t)
			}
			return one(Node{Type: NodeImage, Alt: alt, Target: target, Title: title})
		},
	}
}

var reflinkPattern = regexp.MustCompile(`^\[(` + bracketBody + `)\]\[([^\]]*)\]`)

// reflinkFallback reproduces the literal bracketed characters as text nodes
// when a reflink's label doesn't resolve, per §7's UnresolvedReference
// recovery: the raw syntax is kept, visible, rather than silently dropped.
func reflinkFallback(prefix, text, label string, recurse RecurseFunc) []Node {
	nodes := []Node{{Type: NodeText, Content: prefix + "["}}
	nodes = append(nodes, recurse(text, SimpleInline)...)
	nodes = append(nodes, Node{Type: NodeText, Content: "][" + label + "]"})
	return nodes
}

func reflinkRule() Rule {
	return Rule{
		Name:  "reflink",
		Order: orderRefLink,
		Modes: []Mode{Inline, SimpleInline},
		Match: regexMatcher(reflinkPattern),
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			text := cap.Group(1)
			label := cap.Group(2)
			key := label
			if key == "" {
				key = text
			}
			if def, ok := st.refs[normalize(key)]; ok {
				return one(Node{Type: NodeLink, Target: def.target, Title: def.title, Children: recurse(text, SimpleInline)})
			}
			return many(reflinkFallback("", text, label, recurse))
		},
	}
}

var refimagePattern = regexp.MustCompile(`^!\[([^\]]*)\]\[([^\]]*)\]`)

func refimageRule() Rule {
	return Rule{
		Name:  "refimage",
		Order: orderRefImage,
		Modes: []Mode{Inline, SimpleInline},
		Match: regexMatcher(refimagePattern),
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			alt := cap.Group(1)
			label := cap.Group(2)
			key := label
			if key == "" {
				key = alt
			}
			if def, ok := st.refs[normalize(key)]; ok {
				return one(Node{Type: NodeImage, Alt: alt, Target: def.target, Title: def.title})
			}
			return many(reflinkFallback("!", alt, label, recurse))
		},
	}
}

// matchDelimited hand-codes delimiter-span matching (strong, u, del, and
// the shared mechanics behind em): RE2 lacks the lookahead a single regex
// would need to refuse matching a delimiter run shorter than delimLen and
// to avoid re-matching inside a longer run. The algorithm scans past
// escaped characters, finds the first later maximal run of ch with length
// >= delimLen, and closes using that run's LAST delimLen characters —
// leaving any leftover characters at the front of that run as content, so
// a longer run (e.g. the closing "***" of "***x***") degrades into inner
// delimiters for a nested recursive parse rather than being swallowed
// whole. This is what makes "***x***" resolve as strong > em > text and
// "~~~~~" resolve as del wrapping a single "~".
func matchDelimited(remaining string, ch byte, delimLen int) *Capture {
	open := strings.Repeat(string(ch), delimLen)
	if !strings.HasPrefix(remaining, open) {
		return nil
	}
	content := remaining[delimLen:]
	i := 0
	for i < len(content) {
		c := content[i]
		if c == '\\' && i+1 < len(content) {
			i += 2
			continue
		}
		if c == ch {
			j := i
			for j < len(content) && content[j] == ch {
				j++
			}
			runLen := j - i
			if runLen >= delimLen {
				contentEnd := i + (runLen - delimLen)
				closeEnd := i + runLen
				inner := content[:contentEnd]
				raw := remaining[:delimLen+closeEnd]
				return &Capture{Raw: raw, Groups: []string{raw, inner}}
			}
			i = j
			continue
		}
		i++
	}
	return nil
}

func delimitedRule(name string, order int, ch byte, delimLen int, nodeType NodeType, modes []Mode) Rule {
	return Rule{
		Name:  name,
		Order: order,
		Modes: modes,
		Match: func(remaining string, st state, prev *Capture) *Capture {
			return matchDelimited(remaining, ch, delimLen)
		},
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			return one(Node{Type: nodeType, Children: recurse(cap.Group(1), SimpleInline)})
		},
	}
}

func strongRule() Rule {
	return delimitedRule("strong", orderStrong, '*', 2, NodeStrong, []Mode{Inline, SimpleInline})
}

func uRule() Rule {
	return delimitedRule("u", orderU, '_', 2, NodeU, []Mode{Inline, SimpleInline})
}

func delRule() Rule {
	return delimitedRule("del", orderDel, '~', 2, NodeDel, []Mode{Inline, SimpleInline})
}

// emRule handles both "*...*" and "_..._", using whichever character opens
// the span; strong and u run first (lower Order) so a 2+-run is always
// claimed by them before em gets a chance to treat it as a single-char
// open.
func emRule() Rule {
	return Rule{
		Name:  "em",
		Order: orderEm,
		Modes: []Mode{Inline, SimpleInline},
		Match: func(remaining string, st state, prev *Capture) *Capture {
			if remaining == "" {
				return nil
			}
			ch := remaining[0]
			if ch != '*' && ch != '_' {
				return nil
			}
			return matchDelimited(remaining, ch, 1)
		},
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			return one(Node{Type: NodeEm, Children: recurse(cap.Group(1), SimpleInline)})
		},
	}
}

var inlineCodePattern = regexp.MustCompile("^``([^`]*)``|^`([^`]*)`")

func inlineCodeRule() Rule {
	return Rule{
		Name:  "inlineCode",
		Order: orderInlineCode,
		Modes: []Mode{Inline, SimpleInline},
		Match: regexMatcher(inlineCodePattern),
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			content := cap.Group(1)
			if content == "" {
				content = cap.Group(2)
			}
			return one(Node{Type: NodeInlineCode, Content: strings.TrimSpace(content)})
		},
	}
}

var brPattern = regexp.MustCompile(`^ {2,}\n`)

func brRule() Rule {
	return Rule{
		Name:  "br",
		Order: orderBr,
		Modes: []Mode{Inline},
		Match: regexMatcher(brPattern),
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			return one(Node{Type: NodeBr})
		},
	}
}

// isPlainByte reports whether b can be absorbed into a running text match:
// every byte except those that can open another inline rule (escape, inline
// code, autolink/mailto, image, link/reflink, and the emphasis delimiters).
// Bytes of non-ASCII UTF-8 sequences are plain and are not decoded.
func isPlainByte(b byte) bool {
	return strings.IndexByte("\\`<![*_~", b) < 0
}

// matchText is the unconditional inline catch-all of §4.5: it captures the
// longest run of plain bytes, stopping before a later "http://" or
// "https://" so the url rule can claim it, or, if the very next byte is already
// "special" (meaning every more specific rule already declined it this
// pass), exactly that one byte (plus any UTF-8 continuation bytes), so the
// loop always advances.
//
// It stops short of a trailing run of 2+ spaces immediately followed by a
// newline, rather than absorbing it as plain text: both spaces and '\n'
// individually pass isPlainByte, so without this check text would swallow
// straight through a hard-break position and br (tried first, but only at
// the very start of remaining) would never see it.
func matchText(remaining string, st state, prev *Capture) *Capture {
	if remaining == "" {
		return nil
	}
	i := 0
	for i < len(remaining) {
		if i > 0 && (strings.HasPrefix(remaining[i:], "http://") || strings.HasPrefix(remaining[i:], "https://")) {
			break
		}
		if remaining[i] == ' ' {
			j := i
			for j < len(remaining) && remaining[j] == ' ' {
				j++
			}
			if j-i >= 2 && j < len(remaining) && remaining[j] == '\n' {
				break
			}
			i = j
			continue
		}
		if !isPlainByte(remaining[i]) {
			break
		}
		i++
	}
	if i == 0 {
		i = 1
		for i < len(remaining) && remaining[i]&0xC0 == 0x80 {
			i++
		}
	}
	raw := remaining[:i]
	return &Capture{Raw: raw, Groups: []string{raw, raw}}
}

func textRule() Rule {
	return Rule{
		Name:  "text",
		Order: orderText,
		Modes: []Mode{Inline, SimpleInline},
		Match: matchText,
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			return one(Node{Type: NodeText, Content: cap.Group(1)})
		},
	}
}
