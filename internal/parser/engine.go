package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"bidtab/internal/port"
)

// DefaultMaxRetries is the corrective-retry budget for one extraction call:
// one retry, two attempts total. Retries are capped to bound latency and cost.
const DefaultMaxRetries = 1

// correctivePreamble is prepended to the original user prompt on each retry.
// It is rebuilt fresh per attempt, never accumulated beyond one copy.
const correctivePreamble = "Your previous response was not valid JSON.\n" +
	"Return ONLY valid JSON that matches the schema. No markdown. No extra keys.\n\n"

// Engine drives one extraction call end to end: model chat, normalization,
// truncation check, JSON parse, and the bounded corrective-retry loop.
type Engine struct {
	client port.ChatClient
}

// NewEngine creates an Engine on top of a chat client.
func NewEngine(client port.ChatClient) *Engine {
	return &Engine{client: client}
}

// ExtractJSON requests JSON from the model and parses it, retrying up to
// maxRetries times with a corrective instruction when the output is malformed.
// Truncated output fails immediately: the generation budget, not the model's
// compliance, is at fault, and re-asking with the same budget is futile.
// Transport errors propagate unretried.
func (e *Engine) ExtractJSON(ctx context.Context, task, system, user string, maxRetries int) (map[string]any, error) {
	original := user
	for attempt := 0; attempt <= maxRetries; attempt++ {
		prompt := original
		if attempt > 0 {
			prompt = correctivePreamble + original
		}

		raw, err := e.client.Chat(ctx, system, prompt)
		if err != nil {
			return nil, fmt.Errorf("%s: chat call failed: %w", task, err)
		}

		normalized := Normalize(raw)
		if IsTruncated(normalized) {
			return nil, &TruncationError{Task: task}
		}

		var doc map[string]any
		if parseErr := json.Unmarshal([]byte(normalized), &doc); parseErr != nil {
			if attempt == maxRetries {
				return nil, &FormatError{Task: task, Preview: truncate(raw, previewLen), Err: parseErr}
			}
			log.Printf("parser.Engine: %s attempt %d returned invalid JSON, retrying with corrective prompt", task, attempt+1)
			continue
		}
		return doc, nil
	}
	// The loop always returns; maxRetries < 0 is a caller bug.
	return nil, fmt.Errorf("%s: no attempts were made (maxRetries=%d)", task, maxRetries)
}
