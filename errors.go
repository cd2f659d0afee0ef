package markdown

import "errors"

// ErrRuleExhaustion is returned by Parse/ParseInline when no rule in the
// active set matched the residual input. With the built-in rule set this
// cannot happen, because the text rule is an unconditional catch-all in
// both inline modes and every block-mode residual eventually falls through
// to paragraph. A custom rule set that omits a catch-all can trigger it:
// that is a broken rule set, not a recoverable parse condition, so Engine
// surfaces it as a fatal error rather than silently dropping input.
var ErrRuleExhaustion = errors.New("markdown: no rule matched remaining input")

// ruleExhaustionPanic is the internal signal used to unwind the recursive
// parse loop back to the outermost Parse/ParseInline call, which recovers
// it and returns ErrRuleExhaustion. Recursive calls into RecurseFunc must
// never be wrapped in their own recover: only the top-level entry point
// does, so a single panic unwinds the whole call tree in one pass.
type ruleExhaustionPanic struct {
	remaining string
}
