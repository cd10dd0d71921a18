package domain

// MaxRefinements is the maximum number of conversational correction turns
// permitted per extraction session. The server recounts user turns from the
// submitted history rather than trusting a client counter.
const MaxRefinements = 3

// ExtractionDocument is the consolidated mapping of extracted sections
// (table1..table10, meta, header, cover_page, quantity_estimation) plus the
// assumptions_or_gaps list. Section schemas are defined by the prompts, not
// enforced here, so the document is a generic JSON tree.
type ExtractionDocument map[string]any

// Section returns the named section as an object, or nil if absent or not an object.
func (d ExtractionDocument) Section(key string) map[string]any {
	if v, ok := d[key].(map[string]any); ok {
		return v
	}
	return nil
}

// Gaps returns the assumptions_or_gaps entries in insertion order.
func (d ExtractionDocument) Gaps() []string {
	raw, ok := d["assumptions_or_gaps"].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Message is one turn of a refinement conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// IngestedDoc holds the extracted text of one uploaded document.
type IngestedDoc struct {
	Filename string
	Text     string
}

// CoverInfo carries the preparer details shown on the workbook cover page.
type CoverInfo struct {
	CreatedBy string `json:"created_by"`
	Company   string `json:"company"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}
