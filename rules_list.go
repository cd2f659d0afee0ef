package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

// bulletPattern recognizes both unordered (*, -, +) and ordered (<digits>.
// or <digits>)) markers, each followed by at least one space or tab. Group
// 1 is the marker's own leading indent (0-3 spaces), group 2 is the marker
// itself, group 3 is the whitespace run separating the marker from item
// content.
var bulletPattern = regexp.MustCompile(`^( {0,3})([*+-]|\d{1,9}[.)])([ \t]+)`)

type rawLine struct {
	content string // line text, excluding the trailing newline
	raw     string // consumed text, including the trailing newline if any
}

func splitAllLines(s string) []rawLine {
	var lines []rawLine
	rest := s
	for rest != "" {
		content, raw := splitFirstLine(rest)
		lines = append(lines, rawLine{content: content, raw: raw})
		rest = rest[len(raw):]
	}
	return lines
}

type listItemScan struct {
	bodyLines []string
	endsBlank bool
}

// listCapture is the Extra payload a matched list Capture carries.
type listCapture struct {
	ordered bool
	start   int
	items   []listItemScan
}

// matchList hand-codes the whole list scan: §9 notes this needs an
// indentation-aware walk rather than a single anchored regex, since
// continuation lines, nested bullets, and blank-line bookkeeping all
// depend on comparing indentation across lines.
func matchList(remaining string, st state, prev *Capture) *Capture {
	lines := splitAllLines(remaining)
	if len(lines) == 0 {
		return nil
	}
	m := bulletPattern.FindStringSubmatch(lines[0].content)
	if m == nil {
		return nil
	}
	ordered := m[2][0] >= '0' && m[2][0] <= '9'
	var start int
	if ordered {
		start, _ = strconv.Atoi(strings.TrimRight(m[2], ".)"))
	}

	var items []listItemScan
	var allRaw strings.Builder
	i := 0
	for i < len(lines) {
		bm := bulletPattern.FindStringSubmatch(lines[i].content)
		if bm == nil {
			break
		}
		itemIndent := len(bm[1]) + len(bm[2]) + len(bm[3])
		body := []string{lines[i].content[len(bm[0]):]}
		allRaw.WriteString(lines[i].raw)
		i++

		blanksTrailing := 0
		for i < len(lines) {
			cur := lines[i]
			if isBlankLine(cur.content) {
				body = append(body, "")
				allRaw.WriteString(cur.raw)
				blanksTrailing++
				i++
				continue
			}
			curIndent := leadingSpaces(cur.content)
			if curIndent < itemIndent {
				break
			}
			stripped := cur.content
			if len(stripped) >= itemIndent {
				stripped = stripped[itemIndent:]
			} else {
				stripped = strings.TrimLeft(stripped, " \t")
			}
			body = append(body, stripped)
			allRaw.WriteString(cur.raw)
			blanksTrailing = 0
			i++
		}
		endsBlank := blanksTrailing > 0
		if blanksTrailing > 0 {
			body = body[:len(body)-blanksTrailing]
		}
		items = append(items, listItemScan{bodyLines: body, endsBlank: endsBlank})
	}

	if len(items) == 0 {
		return nil
	}
	raw := allRaw.String()
	if raw == "" {
		return nil
	}

	return &Capture{
		Raw:   raw,
		Extra: listCapture{ordered: ordered, start: start, items: items},
	}
}

func listRule() Rule {
	return Rule{
		Name:  "list",
		Order: orderList,
		Modes: []Mode{Block},
		Match: matchList,
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			lc := cap.Extra.(listCapture)
			var startPtr *int
			if lc.ordered {
				startPtr = optionalInt(lc.start)
			}
			items := make([][]Node, len(lc.items))
			for idx, it := range lc.items {
				body := strings.Join(it.bodyLines, "\n")
				if it.endsBlank {
					items[idx] = recurse(body, Block)
				} else {
					items[idx] = recurse(body, Inline)
				}
			}
			return one(Node{
				Type:    NodeList,
				Ordered: lc.ordered,
				Start:   startPtr,
				Items:   items,
			})
		},
	}
}
