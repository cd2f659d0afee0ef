package markdown

import "strings"

// splitFirstLine splits s at its first newline. content excludes the
// newline; raw is the consumed prefix including the newline when present.
// When s has no newline, content == raw == s (the whole remaining string is
// the "line").
func splitFirstLine(s string) (content, raw string) {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i], s[:i+1]
	}
	return s, s
}

// isBlankLine reports whether a line (without its trailing newline) is
// empty or made up only of spaces/tabs.
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// leadingSpaces counts the leading space/tab run of s, treating a tab as a
// single column (matching the teacher pack's indentation handling).
func leadingSpaces(s string) int {
	n := 0
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	return n
}
