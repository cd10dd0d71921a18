package ingest

import (
	"strings"

	"bidtab/internal/domain"
)

// Keyword sets for the per-table prompts of the legacy three-table flow. Each
// filtered context keeps only the lines near the terms that table cares about.
var (
	KeywordsTable1 = []string{
		"compaction", "proctor", "moisture", "plasticity", "PI", "liquid limit", "select fill",
		"flexible base", "TxDOT", "testing", "field density", "lift", "subgrade",
	}
	KeywordsTable2 = []string{
		"concrete", "PCC", "psi", "f'c", "slump", "air", "cylinder", "testing", "thickness",
		"sidewalk", "pavement", "slab", "grade beam", "footing", "curb", "joint",
	}
	KeywordsTables3to5 = []string{
		"#", "rebar", "reinforcing", "bar", "stirrups", "dowel", "weld", "fillet", "CJP", "PJP",
		"bolt", "bolting", "CFMF", "cold formed", "light gauge", "SIP", "panel", "connection",
		"special inspection",
	}
)

// KeywordWindow keeps lines within windowLines of any keyword hit and caps the
// result at maxChars. Keyword matching is case-insensitive substring.
func KeywordWindow(text string, keywords []string, windowLines, maxChars int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	hits := make([]bool, len(lines))

	kws := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if strings.TrimSpace(k) != "" {
			kws = append(kws, strings.ToLower(k))
		}
	}

	for idx, line := range lines {
		low := strings.ToLower(line)
		matched := false
		for _, k := range kws {
			if strings.Contains(low, k) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		start := idx - windowLines
		if start < 0 {
			start = 0
		}
		end := idx + windowLines + 1
		if end > len(lines) {
			end = len(lines)
		}
		for j := start; j < end; j++ {
			hits[j] = true
		}
	}

	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		if hits[i] {
			kept = append(kept, line)
		}
	}

	out := strings.TrimSpace(strings.Join(kept, "\n"))
	if maxChars > 0 && len(out) > maxChars {
		out = out[:maxChars] + "\n...[TRUNCATED]..."
	}
	return out
}

// BuildContext concatenates ingested documents with begin/end delimiters so
// the model can attribute findings to filenames.
func BuildContext(docs []domain.IngestedDoc) string {
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		parts = append(parts, "===== BEGIN DOC: "+d.Filename+" =====\n"+d.Text+"\n===== END DOC: "+d.Filename+" =====\n")
	}
	return strings.Join(parts, "\n")
}

// CapContext truncates an assembled context to maxChars with a marker.
func CapContext(context string, maxChars int) string {
	if maxChars > 0 && len(context) > maxChars {
		return context[:maxChars] + "\n...[TRUNCATED]..."
	}
	return context
}
