package parser

import "fmt"

// previewLen bounds how much of a raw model response is kept for error messages.
const previewLen = 2000

// TruncationError indicates a model response was cut off before its JSON
// structure closed. It is not retried: the output budget, not the model's
// formatting, is the problem.
type TruncationError struct {
	Task string
}

func (e *TruncationError) Error() string {
	return fmt.Sprintf("%s: model output was truncated before the JSON closed; raise the max_tokens generation limit", e.Task)
}

// FormatError indicates the model never produced parseable JSON within the
// retry budget. Preview holds a bounded prefix of the last raw response.
type FormatError struct {
	Task    string
	Preview string
	Err     error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: model did not return valid JSON: %v (last response: %s)", e.Task, e.Err, e.Preview)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// RefinementLimitError indicates the conversation has reached the maximum
// permitted correction turns. Checked before any model call.
type RefinementLimitError struct {
	Limit int
}

func (e *RefinementLimitError) Error() string {
	return fmt.Sprintf("maximum %d refinements reached; start a new session", e.Limit)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
