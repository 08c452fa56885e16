package clean

import "regexp"

// Rule deletes (or rewrites) every match of Pattern.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

func rule(name, expr string) Rule {
	return Rule{Name: name, Pattern: regexp.MustCompile(expr)}
}

// CreditRules remove translator/editor credits and site chrome. Order
// matters: the mid-line spans (translator, editor, noodletown) run before
// the to-end-of-line rules that share their triggers.
var CreditRules = []Rule{
	rule("translator-span", `(?i)Translator:.*?Translations`),
	rule("editor-span", `(?i)Editor:.*?Translations`),
	rule("translated-by", `(?i)Translated by:.*`),
	rule("edited-by", `(?i)Edited by:.*`),
	rule("noodletown", `(?i)Noodletown.*Translations`),
	rule("tl", `(?i)TL:.*`),
	rule("ed", `(?i)ED:.*`),
	rule("translator-line", `(?i)Translator\s*:.*`),
	rule("editor-line", `(?i)Editor\s*:.*`),
	rule("zh-translate", `(?i)翻译:.*`),
	rule("zh-translator", `(?i)译者:.*`),
	rule("zh-editor", `(?i)编辑:.*`),
	rule("read-latest", `(?i)Read latest chapters at.*`),
	rule("support-author", `(?i)Please support the author.*`),
}

// WhitespaceRules collapse horizontal runs and repeated blank lines. A line
// holding only Unicode spaces (NBSP, ideographic space) counts as blank.
var WhitespaceRules = []Rule{
	{Name: "horizontal-space", Pattern: regexp.MustCompile(`[ \t]+`), Replacement: " "},
	{Name: "blank-lines", Pattern: regexp.MustCompile(`\n[\s\p{Zs}\x{85}\x{2028}\x{2029}]*\n`), Replacement: "\n\n"},
}
