package markdown

// Mode controls which rules are eligible to fire. It is carried explicitly
// on state, never as an implicit global, so that a recursive call can
// restrict or widen the active rule set for its inner text.
type Mode int

const (
	// Block is the top-level mode: block rules and (via recursion) inline
	// rules are both reachable.
	Block Mode = iota
	// Inline is the mode used for prose inside a block (paragraph body,
	// heading body, tight list items). Block quote bodies and loose list
	// items recurse in Block mode instead.
	Inline
	// SimpleInline is a restricted inline mode used inside contexts that
	// must not re-enter block parsing: link/image display text, and the
	// body of an emphasis/strong/u/del span.
	SimpleInline
)

// state carries the residual input, the document's ref table, and the
// current parse mode. It is passed by value down the recursion so each
// recursive call can override mode without affecting its caller, while refs
// is a shared map so all recursion levels see the same, fully-collected
// table.
type state struct {
	mode Mode
	refs refTable
}
