package markdown

import (
	"regexp"
	"strings"
)

// Block rule orders. Lower runs first; every block-starting rule here
// outranks paragraph so paragraph's own greedy non-blank-line capture (see
// matchParagraph) never gets a chance to swallow a line that a more
// specific rule claims instead. newline sits lowest so it mops up blank
// separators between blocks before any other rule is tried.
const (
	orderNewline    = 0
	orderFence      = 10
	orderCodeBlock  = 11
	orderHeading    = 20
	orderLHeading   = 21
	orderHR         = 22
	orderBlockQuote = 30
	orderList       = 40
	orderDef        = 50
	orderTable      = 60
	orderParagraph  = 1000
)

// newlineRule consumes one blank line (empty or whitespace-only, as judged
// by isBlankLine), the same test matchParagraph uses to stop.
func newlineRule() Rule {
	return Rule{
		Name:  "newline",
		Order: orderNewline,
		Modes: []Mode{Block},
		Match: func(remaining string, st state, prev *Capture) *Capture {
			line, raw := splitFirstLine(remaining)
			if raw == "" || !isBlankLine(line) {
				return nil
			}
			return &Capture{Raw: raw}
		},
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			return none()
		},
	}
}

// matchParagraph hand-codes the paragraph terminator search described in
// §9: RE2 has no lookahead, so "stop before a blank line" is implemented by
// walking lines directly rather than via a single regex.
func matchParagraph(remaining string, st state, prev *Capture) *Capture {
	rest := remaining
	var consumed []string
	for rest != "" {
		content, raw := splitFirstLine(rest)
		if isBlankLine(content) {
			break
		}
		consumed = append(consumed, raw)
		rest = rest[len(raw):]
	}
	if len(consumed) == 0 {
		return nil
	}
	raw := strings.Join(consumed, "")
	return &Capture{Raw: raw, Groups: []string{raw, raw}}
}

func paragraphRule() Rule {
	return Rule{
		Name:  "paragraph",
		Order: orderParagraph,
		Modes: []Mode{Block},
		Match: matchParagraph,
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			body := strings.TrimRight(cap.Group(1), "\n")
			return one(Node{Type: NodeParagraph, Children: recurse(body, Inline)})
		},
	}
}

var headingPattern = regexp.MustCompile(`^ {0,3}(#+)(?:[ \t]+([^\n]*?))?[ \t]*(?:\n|$)`)

func headingRule() Rule {
	return Rule{
		Name:  "heading",
		Order: orderHeading,
		Modes: []Mode{Block},
		Match: func(remaining string, st state, prev *Capture) *Capture {
			idx := headingPattern.FindStringSubmatchIndex(remaining)
			if idx == nil || idx[0] != 0 {
				return nil
			}
			return &Capture{
				Raw: remaining[idx[0]:idx[1]],
				Groups: []string{
					remaining[idx[0]:idx[1]],
					submatch(remaining, idx, 1),
					submatch(remaining, idx, 2),
				},
			}
		},
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			hashes := cap.Group(1)
			body := cap.Group(2)
			level := len(hashes)
			if level > 6 {
				body = strings.Repeat("#", level-6) + body
				level = 6
			}
			return one(Node{Type: NodeHeading, Level: level, Children: recurse(body, Inline)})
		},
	}
}

// lheadingRule implements the setext heading: a body line followed by a
// line of 3+ '=' (level 1) or 3+ '-' (level 2). Two or fewer underline
// characters do not qualify (paragraph claims those instead; hr also needs
// at least three).
func lheadingRule() Rule {
	return Rule{
		Name:  "lheading",
		Order: orderLHeading,
		Modes: []Mode{Block},
		Match: func(remaining string, st state, prev *Capture) *Capture {
			bodyLine, bodyRaw := splitFirstLine(remaining)
			if isBlankLine(bodyLine) || bodyRaw == remaining {
				return nil
			}
			rest := remaining[len(bodyRaw):]
			underline, underlineRaw := splitFirstLine(rest)
			trimmed := strings.TrimSpace(underline)
			if trimmed == "" {
				return nil
			}
			ch := trimmed[0]
			if ch != '=' && ch != '-' {
				return nil
			}
			for i := 0; i < len(trimmed); i++ {
				if trimmed[i] != ch {
					return nil
				}
			}
			if len(trimmed) < 3 {
				return nil
			}
			raw := bodyRaw + underlineRaw
			levelTag := "2"
			if ch == '=' {
				levelTag = "1"
			}
			return &Capture{Raw: raw, Groups: []string{raw, bodyLine, levelTag}}
		},
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			level := 1
			if cap.Group(2) == "2" {
				level = 2
			}
			return one(Node{Type: NodeHeading, Level: level, Children: recurse(cap.Group(1), Inline)})
		},
	}
}

// matchHR hand-codes the thematic-break line since RE2 has no
// backreference to require the same delimiter character throughout a line.
func matchHR(remaining string, st state, prev *Capture) *Capture {
	line, raw := splitFirstLine(remaining)
	indent := leadingSpaces(line)
	if indent > 3 {
		return nil
	}
	body := strings.TrimSpace(line[indent:])
	if body == "" {
		return nil
	}
	ch := body[0]
	if ch != '-' && ch != '*' && ch != '_' {
		return nil
	}
	count := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case byte(ch):
			count++
		case ' ', '\t':
		default:
			return nil
		}
	}
	if count < 3 {
		return nil
	}
	return &Capture{Raw: raw}
}

func hrRule() Rule {
	return Rule{
		Name:  "hr",
		Order: orderHR,
		Modes: []Mode{Block},
		Match: matchHR,
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			return one(Node{Type: NodeHR})
		},
	}
}

// matchCodeBlock hand-codes the indented-code-block search so that interior
// blank lines are tolerated but trailing ones are stripped, per §4.4.
func matchCodeBlock(remaining string, st state, prev *Capture) *Capture {
	rest := remaining
	var rawLines []string
	for rest != "" {
		content, raw := splitFirstLine(rest)
		if isBlankLine(content) {
			rawLines = append(rawLines, raw)
			rest = rest[len(raw):]
			continue
		}
		if !strings.HasPrefix(content, "    ") {
			break
		}
		rawLines = append(rawLines, raw)
		rest = rest[len(raw):]
	}
	for len(rawLines) > 0 {
		last, _ := splitFirstLine(rawLines[len(rawLines)-1])
		if !isBlankLine(last) {
			break
		}
		rawLines = rawLines[:len(rawLines)-1]
	}
	if len(rawLines) == 0 {
		return nil
	}
	raw := strings.Join(rawLines, "")
	var body strings.Builder
	for _, ln := range rawLines {
		content, hadNL := ln, strings.HasSuffix(ln, "\n")
		if hadNL {
			content = ln[:len(ln)-1]
		}
		if isBlankLine(content) {
			body.WriteString("\n")
			continue
		}
		body.WriteString(strings.TrimPrefix(content, "    "))
		body.WriteString("\n")
	}
	bodyStr := strings.TrimSuffix(body.String(), "\n")
	return &Capture{Raw: raw, Groups: []string{raw, bodyStr}}
}

func codeBlockRule() Rule {
	return Rule{
		Name:  "codeBlock",
		Order: orderCodeBlock,
		Modes: []Mode{Block},
		Match: matchCodeBlock,
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			return one(Node{Type: NodeCodeBlock, Content: cap.Group(1)})
		},
	}
}

var fencePattern = regexp.MustCompile("(?s)^```([^`\n]*)\n(.*?)\n?```[ \t]*(?:\n|$)")

func fenceRule() Rule {
	return Rule{
		Name:  "fence",
		Order: orderFence,
		Modes: []Mode{Block},
		Match: func(remaining string, st state, prev *Capture) *Capture {
			idx := fencePattern.FindStringSubmatchIndex(remaining)
			if idx == nil || idx[0] != 0 {
				return nil
			}
			return &Capture{
				Raw: remaining[idx[0]:idx[1]],
				Groups: []string{
					remaining[idx[0]:idx[1]],
					submatch(remaining, idx, 1),
					submatch(remaining, idx, 2),
				},
			}
		},
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			var lang *string
			if l := strings.TrimSpace(cap.Group(1)); l != "" {
				lang = optionalString(l)
			}
			return one(Node{Type: NodeCodeBlock, Lang: lang, Content: cap.Group(2)})
		},
	}
}

// matchBlockQuote consumes a contiguous run of lines starting with '>'
// (optionally followed by one space), stripping the prefix and leaving the
// remainder to be parsed recursively in block mode.
func matchBlockQuote(remaining string, st state, prev *Capture) *Capture {
	rest := remaining
	var rawLines []string
	var strippedLines []string
	for rest != "" {
		content, raw := splitFirstLine(rest)
		trimmed := strings.TrimLeft(content, " ")
		if !strings.HasPrefix(trimmed, ">") {
			break
		}
		body := trimmed[1:]
		body = strings.TrimPrefix(body, " ")
		rawLines = append(rawLines, raw)
		strippedLines = append(strippedLines, body)
		rest = rest[len(raw):]
		hadNL := strings.HasSuffix(raw, "\n")
		if !hadNL {
			break
		}
	}
	if len(rawLines) == 0 {
		return nil
	}
	raw := strings.Join(rawLines, "")
	inner := strings.Join(strippedLines, "\n")
	return &Capture{Raw: raw, Groups: []string{raw, inner}}
}

func blockQuoteRule() Rule {
	return Rule{
		Name:  "blockQuote",
		Order: orderBlockQuote,
		Modes: []Mode{Block},
		Match: matchBlockQuote,
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			return one(Node{Type: NodeBlockQuote, Children: recurse(cap.Group(1), Block)})
		},
	}
}

// defPattern matches a single-line reference definition: label, target
// (bare or <bracketed>), and an optional "title", 'title', or (title).
var defPattern = regexp.MustCompile(`^ {0,3}\[([^\]]+)\]:[ \t]*(<[^>\n]*>|[^ \t\n]+)(?:[ \t]+(?:"([^"\n]*)"|'([^'\n]*)'|\(([^)\n]*)\)))?[ \t]*(?:\n|$)`)

// defTarget strips the optional angle brackets from a def target capture.
func defTarget(raw string) string {
	if strings.HasPrefix(raw, "<") && strings.HasSuffix(raw, ">") {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// defTitleFrom picks whichever of the three alternative title groups (in
// FindStringSubmatchIndex order: double-quoted, single-quoted, parens)
// participated in the match.
func defTitleFrom(remaining string, idx []int) *string {
	for _, g := range []int{3, 4, 5} {
		start := idx[g*2]
		if start < 0 {
			continue
		}
		t := submatch(remaining, idx, g)
		return optionalString(t)
	}
	return nil
}

func defRule() Rule {
	return Rule{
		Name:  "def",
		Order: orderDef,
		Modes: []Mode{Block},
		Match: func(remaining string, st state, prev *Capture) *Capture {
			idx := defPattern.FindStringSubmatchIndex(remaining)
			if idx == nil || idx[0] != 0 {
				return nil
			}
			raw := remaining[idx[0]:idx[1]]
			label := submatch(remaining, idx, 1)
			target := submatch(remaining, idx, 2)
			groups := []string{raw, label, target}
			return &Capture{Raw: raw, Groups: groups}
		},
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			label := cap.Group(1)
			target := defTarget(cap.Group(2))
			idx := defPattern.FindStringSubmatchIndex(cap.Raw)
			var title *string
			if idx != nil {
				title = defTitleFrom(cap.Raw, idx)
			}
			return one(Node{Type: NodeDef, Def: normalize(label), Target: target, Title: title})
		},
	}
}
