package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bidtab/internal/domain"
)

// Size caps for the refinement system prompt. Overflow is truncated, an
// accepted data loss that keeps the prompt inside model context limits.
const (
	refineDocCap     = 30000
	refineContextCap = 15000
)

// RefineResult carries the replacement document and the turn accounting
// returned to the caller.
type RefineResult struct {
	Document             domain.ExtractionDocument
	RefinementsUsed      int
	RefinementsRemaining int
}

// Refiner applies bounded conversational correction turns against a
// consolidated document. It is stateless: the caller round-trips the
// document and conversation history on every call.
type Refiner struct {
	engine *Engine
}

// NewRefiner creates a Refiner on top of an Engine.
func NewRefiner(engine *Engine) *Refiner {
	return &Refiner{engine: engine}
}

// Refine applies one correction turn. The user-turn count is recomputed from
// history here rather than trusted from the client; at the limit it fails
// with RefinementLimitError before any model call. The model returns the
// complete corrected document, not a diff, and it is passed through without
// field-level patching.
func (r *Refiner) Refine(ctx context.Context, current domain.ExtractionDocument, documentContext string, history []domain.Message, userMessage string) (*RefineResult, error) {
	userTurns := 0
	for _, m := range history {
		if m.Role == "user" {
			userTurns++
		}
	}
	if userTurns >= domain.MaxRefinements {
		return nil, &RefinementLimitError{Limit: domain.MaxRefinements}
	}

	system, err := buildRefineSystemPrompt(current, documentContext)
	if err != nil {
		return nil, err
	}

	var transcript strings.Builder
	for _, m := range history {
		fmt.Fprintf(&transcript, "[%s]: %s\n\n", strings.ToUpper(m.Role), m.Content)
	}
	fmt.Fprintf(&transcript, "[USER]: %s", userMessage)

	updated, err := r.engine.ExtractJSON(ctx, "refinement", system, transcript.String(), DefaultMaxRetries)
	if err != nil {
		return nil, err
	}

	return &RefineResult{
		Document:             domain.ExtractionDocument(updated),
		RefinementsUsed:      userTurns + 1,
		RefinementsRemaining: domain.MaxRefinements - (userTurns + 1),
	}, nil
}

func buildRefineSystemPrompt(current domain.ExtractionDocument, documentContext string) (string, error) {
	docJSON, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling current extraction: %w", err)
	}

	return fmt.Sprintf(`You are an expert construction document analyst helping refine a bid extraction.
You have already extracted data from project documents into a structured JSON.
The user will give you specific correction instructions.
Return the COMPLETE updated JSON with corrections applied.
Return ONLY valid JSON. No markdown fences. No explanation outside the JSON.

Current extraction:
%s

Document context (for reference):
%s
`, truncate(string(docJSON), refineDocCap), truncate(documentContext, refineContextCap)), nil
}
