package parser

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChat returns canned responses in sequence and records the prompts it saw.
type stubChat struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	calls     int
	systems   []string
	users     []string
}

func (s *stubChat) Chat(_ context.Context, system, user string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	s.systems = append(s.systems, system)
	s.users = append(s.users, user)
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", errors.New("stub exhausted")
}

func TestEngine_ExtractJSON_FirstAttemptSucceeds(t *testing.T) {
	stub := &stubChat{responses: []string{`{"table1": {"rows": []}}`}}
	eng := NewEngine(stub)

	doc, err := eng.ExtractJSON(context.Background(), "table1", "sys", "user prompt", DefaultMaxRetries)
	require.NoError(t, err)
	assert.Contains(t, doc, "table1")
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, "user prompt", stub.users[0])
}

func TestEngine_ExtractJSON_RetriesWithCorrectivePreamble(t *testing.T) {
	stub := &stubChat{responses: []string{
		"I could not find any tables, sorry.",
		`{"table2": {"rows": []}}`,
	}}
	eng := NewEngine(stub)

	doc, err := eng.ExtractJSON(context.Background(), "table2", "sys", "extract table 2", DefaultMaxRetries)
	require.NoError(t, err)
	assert.Contains(t, doc, "table2")
	require.Equal(t, 2, stub.calls)

	// Retry prompt carries exactly one corrective preamble plus the original.
	assert.Equal(t, "extract table 2", stub.users[0])
	assert.True(t, strings.HasPrefix(stub.users[1], "Your previous response was not valid JSON."))
	assert.True(t, strings.HasSuffix(stub.users[1], "extract table 2"))
	assert.Equal(t, 1, strings.Count(stub.users[1], "Your previous response was not valid JSON."))
}

func TestEngine_ExtractJSON_FormatErrorAfterBudget(t *testing.T) {
	stub := &stubChat{responses: []string{"not json", "still not json"}}
	eng := NewEngine(stub)

	_, err := eng.ExtractJSON(context.Background(), "table3", "sys", "user", DefaultMaxRetries)
	require.Error(t, err)

	var fmtErr *FormatError
	require.ErrorAs(t, err, &fmtErr)
	assert.Equal(t, "table3", fmtErr.Task)
	assert.Equal(t, "still not json", fmtErr.Preview)
	assert.Equal(t, 2, stub.calls)
}

func TestEngine_ExtractJSON_FormatErrorPreviewIsBounded(t *testing.T) {
	long := strings.Repeat("x", 5000)
	stub := &stubChat{responses: []string{long, long}}
	eng := NewEngine(stub)

	_, err := eng.ExtractJSON(context.Background(), "t", "sys", "user", DefaultMaxRetries)
	var fmtErr *FormatError
	require.ErrorAs(t, err, &fmtErr)
	assert.Len(t, fmtErr.Preview, previewLen+len("..."))
}

func TestEngine_ExtractJSON_TruncationFailsImmediately(t *testing.T) {
	stub := &stubChat{responses: []string{`{"a": 1, "b": [1,2`}}
	eng := NewEngine(stub)

	_, err := eng.ExtractJSON(context.Background(), "table1", "sys", "user", DefaultMaxRetries)
	require.Error(t, err)

	var truncErr *TruncationError
	require.ErrorAs(t, err, &truncErr)
	assert.Contains(t, err.Error(), "max_tokens")
	// No retry: truncation is a budget problem, not a compliance problem.
	assert.Equal(t, 1, stub.calls)
}

func TestEngine_ExtractJSON_TransportErrorPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	stub := &stubChat{errs: []error{boom}}
	eng := NewEngine(stub)

	_, err := eng.ExtractJSON(context.Background(), "table1", "sys", "user", DefaultMaxRetries)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, stub.calls)
}

func TestEngine_ExtractJSON_FencedResponseParses(t *testing.T) {
	stub := &stubChat{responses: []string{"Sure! ```json\n{\"table1\": {\"rows\": []}}\n```"}}
	eng := NewEngine(stub)

	doc, err := eng.ExtractJSON(context.Background(), "table1", "sys", "user", DefaultMaxRetries)
	require.NoError(t, err)
	assert.Contains(t, doc, "table1")
	assert.Equal(t, 1, stub.calls)
}
