package markdown

import "strings"

// tableCapture is the Extra payload a matched table Capture carries: raw
// cell text per header/body cell, split on unescaped pipes but otherwise
// unparsed (parsing happens in Parse, where recurse is available).
type tableCapture struct {
	header []string
	align  []Align
	rows   [][]string
}

// splitRow splits a table row on unescaped '|', trimming one optional
// leading/trailing pipe (after surrounding whitespace) and trimming each
// cell's own surrounding whitespace. An escaped pipe ("\|") is kept intact
// in the cell text so the inline escape rule resolves it later, during the
// simpleInline parse of the cell.
func splitRow(line string) []string {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, "|")
	s = strings.TrimSuffix(s, "|")

	var cells []string
	var cur strings.Builder
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			cur.WriteByte(c)
			escaped = false
			continue
		}
		switch c {
		case '\\':
			cur.WriteByte(c)
			escaped = true
		case '|':
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	cells = append(cells, strings.TrimSpace(cur.String()))
	return cells
}

// parseAlignRow validates that line is a table alignment row and returns
// its per-column Align, or nil if line isn't one.
func parseAlignRow(line string) []Align {
	cells := splitRow(line)
	if len(cells) == 0 {
		return nil
	}
	aligns := make([]Align, len(cells))
	for i, c := range cells {
		c = strings.TrimSpace(c)
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		dashes := c
		if left {
			dashes = dashes[1:]
		}
		if right && len(dashes) > 0 {
			dashes = dashes[:len(dashes)-1]
		}
		if dashes == "" {
			return nil
		}
		for j := 0; j < len(dashes); j++ {
			if dashes[j] != '-' {
				return nil
			}
		}
		switch {
		case left && right:
			aligns[i] = AlignCenter
		case left:
			aligns[i] = AlignLeft
		case right:
			aligns[i] = AlignRight
		default:
			aligns[i] = AlignNone
		}
	}
	return aligns
}

// matchTable hand-codes the header/alignment/body scan; cell splitting on
// unescaped '|' has no RE2 equivalent with lookbehind, so it is a plain
// character walk (splitRow) rather than a single regex.
func matchTable(remaining string, st state, prev *Capture) *Capture {
	lines := splitAllLines(remaining)
	if len(lines) < 2 {
		return nil
	}
	if isBlankLine(lines[0].content) {
		return nil
	}
	align := parseAlignRow(lines[1].content)
	if align == nil {
		return nil
	}
	header := splitRow(lines[0].content)
	if len(header) != len(align) {
		return nil
	}

	var raw strings.Builder
	raw.WriteString(lines[0].raw)
	raw.WriteString(lines[1].raw)
	i := 2
	var rows [][]string
	for i < len(lines) {
		if isBlankLine(lines[i].content) {
			break
		}
		rows = append(rows, splitRow(lines[i].content))
		raw.WriteString(lines[i].raw)
		i++
	}

	return &Capture{
		Raw:   raw.String(),
		Extra: tableCapture{header: header, align: align, rows: rows},
	}
}

// tableQuality always returns a fixed positive score: a table match is
// unambiguous (it requires a valid alignment line), so there is nothing to
// rank it against except paragraph, which never supplies a Quality and so
// never enters the comparison (see Engine.dispatch).
func tableQuality(cap *Capture) float64 {
	return 1
}

func tableRule() Rule {
	return Rule{
		Name:  "table",
		Order: orderTable,
		Modes: []Mode{Block},
		Match: matchTable,
		Quality: tableQuality,
		Parse: func(cap *Capture, recurse RecurseFunc, st state) ParseResult {
			tc := cap.Extra.(tableCapture)
			header := make([][]Node, len(tc.header))
			for i, cell := range tc.header {
				header[i] = recurse(cell, SimpleInline)
			}
			cells := make([][][]Node, len(tc.rows))
			for r, row := range tc.rows {
				rowNodes := make([][]Node, len(tc.align))
				for c := range rowNodes {
					if c < len(row) {
						rowNodes[c] = recurse(row[c], SimpleInline)
					}
				}
				cells[r] = rowNodes
			}
			return one(Node{
				Type:   NodeTable,
				Header: header,
				Align:  tc.align,
				Cells:  cells,
			})
		},
	}
}
