// Package clean strips translator credits and site boilerplate from
// extracted chapter text.
package clean

import "strings"

// Apply runs rules over text in order, each on the previous rule's output.
func Apply(text string, rules []Rule) string {
	for _, r := range rules {
		text = r.Pattern.ReplaceAllString(text, r.Replacement)
	}
	return text
}

// Clean removes every CreditRules match, normalizes whitespace and trims
// the result. The pass repeats until the text is stable, so Clean is
// idempotent even when whitespace collapsing exposes a new credit line
// ("Translated  by:" becoming "Translated by:"). Each changing pass shortens
// the text or turns a tab into a space, so the loop ends.
func Clean(text string) string {
	for {
		next := pass(text)
		if next == text {
			return next
		}
		text = next
	}
}

func pass(text string) string {
	text = Apply(text, CreditRules)
	text = Apply(text, WhitespaceRules)
	return strings.TrimSpace(text)
}
