package markdown

// DefaultRules returns the built-in block and inline rule set, in no
// particular slice order (NewEngine sorts by Order). This is the rule set
// Parse and ParseInline use; callers assembling a custom Engine can start
// from this slice and add to or filter it before calling NewEngine.
func DefaultRules() []Rule {
	return []Rule{
		// Block rules.
		newlineRule(),
		fenceRule(),
		codeBlockRule(),
		headingRule(),
		lheadingRule(),
		hrRule(),
		blockQuoteRule(),
		listRule(),
		defRule(),
		tableRule(),
		paragraphRule(),

		// Inline rules.
		escapeRule(),
		inlineCodeRule(),
		brRule(),
		autolinkRule(),
		mailtoRule(),
		urlRule(),
		imageRule(),
		linkRule(),
		refimageRule(),
		reflinkRule(),
		strongRule(),
		uRule(),
		delRule(),
		emRule(),
		textRule(),
	}
}
