/*
Package markdown is a small Go library for parsing a Markdown-like lightweight
markup language into an AST. The goal is a rule-driven, recursive-descent
engine: an ordered set of block-level and inline-level rules are tried in
turn against the residual input, and the first (or highest quality) match
wins and is turned into one or more Nodes.

This is not a CommonMark-conformant parser. It does not sanitize URLs, does
not render HTML, and does not support a plugin ecosystem: those are jobs for
whatever consumes the returned Node tree.

Usage

The main entry points are Parse and ParseInline, which use the built-in rule
set returned by DefaultRules. A caller that wants a different rule set can
build one with NewEngine and call Engine.Parse / Engine.ParseInline instead.

Debugging

Debug renders a Node tree to a human-readable string, in the same spirit as
the sibling discord-formatting library's Debug function.
*/
package markdown

// NodeType identifies the shape of a Node. This is the closed tag set: every
// Node produced by this package has a Type from this list.
type NodeType string

const (
	NodeText       NodeType = "text"
	NodeStrong     NodeType = "strong"
	NodeEm         NodeType = "em"
	NodeU          NodeType = "u"
	NodeDel        NodeType = "del"
	NodeInlineCode NodeType = "inlineCode"
	NodeBr         NodeType = "br"
	NodeLink       NodeType = "link"
	NodeImage      NodeType = "image"
	NodeParagraph  NodeType = "paragraph"
	NodeHeading    NodeType = "heading"
	NodeCodeBlock  NodeType = "codeBlock"
	NodeBlockQuote NodeType = "blockQuote"
	NodeList       NodeType = "list"
	NodeTable      NodeType = "table"
	NodeHR         NodeType = "hr"
	NodeDef        NodeType = "def"
)

// Align is a table column alignment. The zero value, AlignNone, is the
// explicit "null" member of the closed set, not an absent value: a table's
// Align slice always has one entry per header column.
type Align string

const (
	AlignNone   Align = ""
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignCenter Align = "center"
)

// Node is a tagged record over the closed NodeType set. Only the fields
// relevant to Type are meaningful; the rest are left at their zero value.
//
// Optional fields (Title, Lang, Start) use pointers so that "present but
// empty" (e.g. a def whose title is written as "") stays distinguishable from
// "absent" (e.g. a link with no title): tests assert on this distinction
// directly, so Node never collapses absence into the empty string.
type Node struct {
	Type NodeType

	// Content holds raw text for NodeText and NodeInlineCode, and verbatim
	// code for NodeCodeBlock.
	Content string

	// Children holds parsed prose for NodeStrong, NodeEm, NodeU, NodeDel,
	// NodeLink, NodeParagraph, NodeHeading, and NodeBlockQuote.
	Children []Node

	// Target is the link/image/def destination. Never nil; may be empty
	// (a link or def target written as <>).
	Target string
	// Title is the optional link/image/def title.
	Title *string
	// Alt is the raw, unparsed alt text of an image.
	Alt string

	// Level is a heading's level, 1..6.
	Level int

	// Lang is an optional fenced-code-block language tag.
	Lang *string

	// Ordered, Start, and Items describe a list. Start is the first
	// ordered-list marker's integer value, and is absent for unordered
	// lists. Each entry of Items is an independent item sub-tree: either a
	// flat inline sequence (tight item) or one or more block Nodes (loose
	// item).
	Ordered bool
	Start   *int
	Items   [][]Node

	// Header, Align, and Cells describe a table. len(Align) always equals
	// len(Header). Cells is row-major: Cells[row][col] is a cell's inline
	// content.
	Header [][]Node
	Align  []Align
	Cells  [][][]Node

	// Def is a reference definition's normalized label.
	Def string
}

// optionalString returns a pointer to s, for building "present" optional
// string fields.
func optionalString(s string) *string {
	return &s
}

// optionalInt returns a pointer to n, for building "present" optional int
// fields.
func optionalInt(n int) *int {
	return &n
}
