// Package service coordinates ingestion, extraction, refinement, and
// rendering for the HTTP handlers.
package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"bidtab/internal/config"
	"bidtab/internal/domain"
	"bidtab/internal/excel"
	"bidtab/internal/ingest"
	"bidtab/internal/parser"
	"bidtab/internal/prompt"
)

const (
	// contextReturnCap bounds the document context echoed back to the client
	// for refinement turns.
	contextReturnCap = 30000
	// legacyWindowCap bounds each keyword-filtered document in the original
	// three-table flow.
	legacyWindowCap = 60000
	// legacyFallbackCap bounds the head of an unfiltered document when the
	// keyword filter matched nothing.
	legacyFallbackCap = 30000
)

// UploadedFile is one multipart upload, already read into memory.
type UploadedFile struct {
	Name string
	Data []byte
}

// GenerateResult is the outcome of a full ten-table generation.
type GenerateResult struct {
	Extraction      domain.ExtractionDocument
	DocumentContext string
	Excel           []byte
	Filename        string
}

// RefineOutcome is the outcome of one refinement turn.
type RefineOutcome struct {
	Extraction           domain.ExtractionDocument
	Excel                []byte
	RefinementsUsed      int
	RefinementsRemaining int
}

// Extraction runs bid document extractions end to end.
type Extraction struct {
	orch    *parser.Orchestrator
	refiner *parser.Refiner
	extract config.ExtractConfig
}

// NewExtraction creates the extraction service.
func NewExtraction(orch *parser.Orchestrator, refiner *parser.Refiner, extract config.ExtractConfig) *Extraction {
	return &Extraction{orch: orch, refiner: refiner, extract: extract}
}

// Generate ingests the uploaded documents, runs the five-task fan-out for all
// ten tables, and renders the branded workbook.
func (s *Extraction) Generate(ctx context.Context, projectName string, files []UploadedFile, cover domain.CoverInfo) (*GenerateResult, error) {
	docs, names, err := s.ingestAll(files)
	if err != nil {
		return nil, err
	}

	fullContext := ingest.BuildContext(docs)
	capped := ingest.CapContext(fullContext, s.extract.MaxContextChars)

	log.Printf("service.Extraction: starting extraction for %q with %d document(s)", projectName, len(docs))
	doc, err := s.orch.Run(ctx, prompt.Tasks(projectName, names, capped))
	if err != nil {
		return nil, err
	}
	doc["cover_page"] = coverSection(cover, names)

	xlsx, err := excel.BuildWorkbookV2(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}
	log.Printf("service.Extraction: extraction for %q complete (%d bytes of xlsx)", projectName, len(xlsx))

	return &GenerateResult{
		Extraction:      doc,
		DocumentContext: ingest.CapContext(fullContext, contextReturnCap),
		Excel:           xlsx,
		Filename:        strings.ReplaceAll(projectName, " ", "_") + "_Inspection_Testing_Summary.xlsx",
	}, nil
}

// GenerateLegacy runs the original three-table flow with per-table keyword
// filtering and returns the workbook bytes for download.
func (s *Extraction) GenerateLegacy(ctx context.Context, projectName string, files []UploadedFile) ([]byte, string, error) {
	docs, names, err := s.ingestAll(files)
	if err != nil {
		return nil, "", err
	}

	contexts := [3]string{
		s.filteredContext(docs, ingest.KeywordsTable1),
		s.filteredContext(docs, ingest.KeywordsTable2),
		s.filteredContext(docs, ingest.KeywordsTables3to5),
	}

	log.Printf("service.Extraction: starting legacy extraction for %q with %d document(s)", projectName, len(docs))
	doc, err := s.orch.Run(ctx, prompt.LegacyTasks(projectName, names, contexts))
	if err != nil {
		return nil, "", err
	}

	xlsx, err := excel.BuildWorkbook(doc)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}

	filename := strings.ReplaceAll(projectName, " ", "_") + "_Bid_Tables.xlsx"
	return xlsx, filename, nil
}

// Refine applies one conversational correction turn and re-renders the
// workbook from the updated document.
func (s *Extraction) Refine(ctx context.Context, current domain.ExtractionDocument, documentContext string, history []domain.Message, userMessage string) (*RefineOutcome, error) {
	res, err := s.refiner.Refine(ctx, current, documentContext, history, userMessage)
	if err != nil {
		return nil, err
	}

	xlsx, err := excel.BuildWorkbookV2(res.Document)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}

	return &RefineOutcome{
		Extraction:           res.Document,
		Excel:                xlsx,
		RefinementsUsed:      res.RefinementsUsed,
		RefinementsRemaining: res.RefinementsRemaining,
	}, nil
}

func (s *Extraction) ingestAll(files []UploadedFile) ([]domain.IngestedDoc, []string, error) {
	if len(files) == 0 {
		return nil, nil, domain.ErrNoFiles
	}
	docs := make([]domain.IngestedDoc, 0, len(files))
	names := make([]string, 0, len(files))
	for _, f := range files {
		doc, err := ingest.Extract(f.Name, f.Data)
		if err != nil {
			return nil, nil, err
		}
		docs = append(docs, doc)
		names = append(names, doc.Filename)
	}
	return docs, names, nil
}

// filteredContext builds a per-table context, keeping only lines near that
// table's keywords. A document with no keyword hits falls back to its head so
// it is never dropped entirely.
func (s *Extraction) filteredContext(docs []domain.IngestedDoc, keywords []string) string {
	if s.extract.DisableKeywordFilter {
		return ingest.CapContext(ingest.BuildContext(docs), s.extract.MaxContextChars)
	}
	filtered := make([]domain.IngestedDoc, 0, len(docs))
	for _, d := range docs {
		text := ingest.KeywordWindow(d.Text, keywords, s.extract.WindowLines, legacyWindowCap)
		if strings.TrimSpace(text) == "" {
			text = d.Text
			if len(text) > legacyFallbackCap {
				text = text[:legacyFallbackCap]
			}
		}
		filtered = append(filtered, domain.IngestedDoc{Filename: d.Filename, Text: text})
	}
	return ingest.BuildContext(filtered)
}

func coverSection(cover domain.CoverInfo, names []string) map[string]any {
	createdBy := cover.CreatedBy
	if createdBy == "" {
		createdBy = prompt.CreatedByLine
	}
	refs := make([]any, 0, len(names))
	for _, n := range names {
		refs = append(refs, n)
	}
	return map[string]any{
		"created_by":           createdBy,
		"company":              cover.Company,
		"phone":                cover.Phone,
		"email":                cover.Email,
		"date_run":             time.Now().Format("2006-01-02"),
		"referenced_documents": refs,
	}
}
