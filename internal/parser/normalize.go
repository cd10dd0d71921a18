package parser

import (
	"regexp"
	"strings"
)

var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	thousandsRe     = regexp.MustCompile(`(\d),(\d{3})(\s*[,}\]]|\s*\n|$)`)
	noneRe          = regexp.MustCompile(`\bNone\b`)
	trueRe          = regexp.MustCompile(`\bTrue\b`)
	falseRe         = regexp.MustCompile(`\bFalse\b`)
)

// Normalize is a best-effort, side-effect-free transform of a raw model
// response into a string intended to be valid JSON. It strips markdown
// fences and surrounding chatter, then repairs common formatting defects.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)

	// Fenced code block, optionally tagged "json".
	if strings.HasPrefix(s, "```") {
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "```json")
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(s[:len(s)-3])
	}

	// Preamble chatter before the JSON value, trailing chatter after it.
	if i := strings.IndexAny(s, "{["); i > 0 {
		s = s[i:]
	}
	if j := strings.LastIndexAny(s, "}]"); j >= 0 && j < len(s)-1 {
		s = s[:j+1]
	}

	// Trailing comma directly before a closing bracket.
	s = trailingCommaRe.ReplaceAllString(s, "$1")

	// Thousands-separated numbers: a digit, a comma, exactly three digits,
	// followed by a structural delimiter. Commas separating fields or array
	// elements are not followed by exactly-three-digits-then-delimiter runs,
	// so they survive. Loop for multi-group numbers like 1,234,567.
	for {
		collapsed := thousandsRe.ReplaceAllString(s, "$1$2$3")
		if collapsed == s {
			break
		}
		s = collapsed
	}

	// Bare language literals the model sometimes emits instead of JSON ones.
	s = noneRe.ReplaceAllString(s, "null")
	s = trueRe.ReplaceAllString(s, "true")
	s = falseRe.ReplaceAllString(s, "false")

	return s
}

// IsTruncated reports whether text looks cut off: more opening than closing
// brackets. This counts brackets without parsing nesting, so brackets inside
// string values can misclassify either way. Known limitation, kept as-is so
// error behavior stays predictable.
func IsTruncated(text string) bool {
	opens := strings.Count(text, "{") + strings.Count(text, "[")
	closes := strings.Count(text, "}") + strings.Count(text, "]")
	return opens > closes
}
