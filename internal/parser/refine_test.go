package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bidtab/internal/domain"
)

func refineHistory(userTurns int) []domain.Message {
	var h []domain.Message
	for i := 0; i < userTurns; i++ {
		h = append(h,
			domain.Message{Role: "user", Content: "fix something"},
			domain.Message{Role: "assistant", Content: "done"},
		)
	}
	return h
}

func TestRefiner_Refine_LimitReachedFailsBeforeModelCall(t *testing.T) {
	stub := &stubChat{}
	ref := NewRefiner(NewEngine(stub))

	_, err := ref.Refine(context.Background(), domain.ExtractionDocument{}, "ctx", refineHistory(3), "one more fix")
	require.Error(t, err)

	var limitErr *RefinementLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, domain.MaxRefinements, limitErr.Limit)
	assert.Equal(t, 0, stub.calls, "gateway must not be invoked at the limit")
}

func TestRefiner_Refine_LastPermittedTurn(t *testing.T) {
	stub := &stubChat{responses: []string{`{"table1": {"rows": [{"fixed": true}]}}`}}
	ref := NewRefiner(NewEngine(stub))

	current := domain.ExtractionDocument{"table1": map[string]any{"rows": []any{}}}
	res, err := ref.Refine(context.Background(), current, "doc context", refineHistory(2), "fix row 1")
	require.NoError(t, err)

	assert.Equal(t, 3, res.RefinementsUsed)
	assert.Equal(t, 0, res.RefinementsRemaining)
	assert.NotNil(t, res.Document.Section("table1"))
}

func TestRefiner_Refine_PromptEmbedsDocumentAndTranscript(t *testing.T) {
	stub := &stubChat{responses: []string{`{"table1": {}}`}}
	ref := NewRefiner(NewEngine(stub))

	current := domain.ExtractionDocument{"table1": map[string]any{"title": "Geotech Requirements"}}
	history := []domain.Message{
		{Role: "user", Content: "change the title"},
		{Role: "assistant", Content: "updated"},
	}
	res, err := ref.Refine(context.Background(), current, "BEGIN DOC context END DOC", history, "also fix table 2")
	require.NoError(t, err)
	assert.Equal(t, 2, res.RefinementsUsed)
	assert.Equal(t, 1, res.RefinementsRemaining)

	require.Equal(t, 1, stub.calls)
	system := stub.systems[0]
	assert.Contains(t, system, "Geotech Requirements")
	assert.Contains(t, system, "BEGIN DOC context END DOC")
	assert.Contains(t, system, "Return the COMPLETE updated JSON")

	user := stub.users[0]
	assert.Contains(t, user, "[USER]: change the title")
	assert.Contains(t, user, "[ASSISTANT]: updated")
	assert.True(t, strings.HasSuffix(user, "[USER]: also fix table 2"))
}

func TestRefiner_Refine_MalformedThenCorrectedJSON(t *testing.T) {
	stub := &stubChat{responses: []string{"sorry, here is the fix as prose", `{"table1": {}}`}}
	ref := NewRefiner(NewEngine(stub))

	res, err := ref.Refine(context.Background(), domain.ExtractionDocument{}, "", nil, "fix it")
	require.NoError(t, err)
	assert.Equal(t, 1, res.RefinementsUsed)
	assert.Equal(t, 2, res.RefinementsRemaining)
	assert.Equal(t, 2, stub.calls)
}

func TestRefiner_Refine_ContextIsCapped(t *testing.T) {
	stub := &stubChat{responses: []string{`{"table1": {}}`}}
	ref := NewRefiner(NewEngine(stub))

	long := strings.Repeat("y", refineContextCap+500)
	_, err := ref.Refine(context.Background(), domain.ExtractionDocument{}, long, nil, "fix")
	require.NoError(t, err)
	assert.NotContains(t, stub.systems[0], long)
}
