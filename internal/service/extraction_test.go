package service

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bidtab/internal/config"
	"bidtab/internal/domain"
	"bidtab/internal/parser"
	"bidtab/mocks"
)

// tableChat answers each fan-out task with minimal valid JSON for the keys
// that task owns. Tasks run concurrently, so the call count is locked.
type tableChat struct {
	mu    sync.Mutex
	calls int
}

func (c *tableChat) Chat(_ context.Context, _ string, user string) (string, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	switch {
	case strings.Contains(user, "generating Table 1 "):
		return `{"meta": {"project": "Depot"}, "header": {}, "table1": {"title": "Table 1", "columns": ["Construction Element"], "rows": []}, "assumptions_or_gaps": ["no geotech report provided"]}`, nil
	case strings.Contains(user, "generating Table 2 "):
		return `{"table2": {"title": "Table 2", "columns": ["Element / Location"], "rows": []}, "assumptions_or_gaps": []}`, nil
	case strings.Contains(user, "Tables 3, 4, and 5"):
		return `{"table3": {}, "table4": {}, "table5": {}, "assumptions_or_gaps": []}`, nil
	case strings.Contains(user, "Tables 6 and 7"):
		return `{"table6": {}, "table7": {}, "assumptions_or_gaps": []}`, nil
	case strings.Contains(user, "Tables 8, 9, and 10"):
		return `{"table8": {}, "table9": {}, "table10": {}, "assumptions_or_gaps": []}`, nil
	}
	return `{}`, nil
}

func newTestService(client *tableChat) *Extraction {
	engine := parser.NewEngine(client)
	return NewExtraction(
		parser.NewOrchestrator(engine),
		parser.NewRefiner(engine),
		config.ExtractConfig{WindowLines: 4, MaxContextChars: 60000},
	)
}

func TestGenerateRunsAllFiveTasks(t *testing.T) {
	client := &tableChat{}
	svc := newTestService(client)

	res, err := svc.Generate(context.Background(), "North Depot",
		[]UploadedFile{{Name: "notes.txt", Data: []byte("compaction 95% ASTM D698")}},
		domain.CoverInfo{Company: "Atlas"})
	require.NoError(t, err)

	assert.Equal(t, 5, client.calls)
	assert.Equal(t, "North_Depot_Inspection_Testing_Summary.xlsx", res.Filename)
	assert.Contains(t, res.DocumentContext, "===== BEGIN DOC: notes.txt =====")
	assert.Equal(t, []string{"no geotech report provided"}, res.Extraction.Gaps())

	cover := res.Extraction.Section("cover_page")
	require.NotNil(t, cover)
	assert.Equal(t, "Atlas", cover["company"])
	assert.NotEmpty(t, cover["created_by"])
	assert.Equal(t, []any{"notes.txt"}, cover["referenced_documents"])

	f, err := excelize.OpenReader(bytes.NewReader(res.Excel))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Cover Page")
}

func TestGenerateNoFiles(t *testing.T) {
	svc := newTestService(&tableChat{})
	_, err := svc.Generate(context.Background(), "Depot", nil, domain.CoverInfo{})
	assert.ErrorIs(t, err, domain.ErrNoFiles)
}

func TestGenerateLegacyThreeTasksAndAttachment(t *testing.T) {
	client := &tableChat{}
	svc := newTestService(client)

	xlsx, filename, err := svc.GenerateLegacy(context.Background(), "North Depot",
		[]UploadedFile{{Name: "notes.txt", Data: []byte("concrete f'c 4000 psi")}})
	require.NoError(t, err)

	assert.Equal(t, 3, client.calls)
	assert.Equal(t, "North_Depot_Bid_Tables.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(xlsx))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Table 1", "Table 2", "Table 3"}, f.GetSheetList())
}

func TestFilteredContextFallsBackToDocumentHead(t *testing.T) {
	svc := newTestService(&tableChat{})
	docs := []domain.IngestedDoc{{Filename: "irrelevant.txt", Text: "nothing matching any keyword"}}

	ctx := svc.filteredContext(docs, []string{"masonry"})
	assert.Contains(t, ctx, "nothing matching any keyword")
}

func TestRefineReRendersWorkbook(t *testing.T) {
	refineClient := new(mocks.MockChatClient)
	refineClient.On("Chat", mock.Anything, mock.Anything, mock.MatchedBy(func(transcript string) bool {
		return strings.HasSuffix(transcript, "[USER]: also fix gaps")
	})).
		Return(`{"meta": {"project": "Depot"}, "table1": {"title": "T1", "columns": ["Construction Element"], "rows": []}, "assumptions_or_gaps": ["updated"]}`, nil)
	engine := parser.NewEngine(refineClient)
	svc := NewExtraction(parser.NewOrchestrator(engine), parser.NewRefiner(engine), config.ExtractConfig{})

	current := domain.ExtractionDocument{"meta": map[string]any{"project": "Depot"}}
	out, err := svc.Refine(context.Background(), current, "context", []domain.Message{
		{Role: "user", Content: "fix table 1"},
		{Role: "assistant", Content: "done"},
	}, "also fix gaps")
	require.NoError(t, err)

	assert.Equal(t, 2, out.RefinementsUsed)
	assert.Equal(t, 1, out.RefinementsRemaining)
	assert.Equal(t, []string{"updated"}, out.Extraction.Gaps())
	assert.NotEmpty(t, out.Excel)
	refineClient.AssertExpectations(t)
}
