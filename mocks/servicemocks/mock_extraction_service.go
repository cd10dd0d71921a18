package servicemocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bidtab/internal/domain"
	"bidtab/internal/service"
)

// MockExtractionService is a mock implementation of handler.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) Generate(ctx context.Context, projectName string, files []service.UploadedFile, cover domain.CoverInfo) (*service.GenerateResult, error) {
	args := m.Called(ctx, projectName, files, cover)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenerateResult), args.Error(1)
}

func (m *MockExtractionService) GenerateLegacy(ctx context.Context, projectName string, files []service.UploadedFile) ([]byte, string, error) {
	args := m.Called(ctx, projectName, files)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockExtractionService) Refine(ctx context.Context, current domain.ExtractionDocument, documentContext string, history []domain.Message, userMessage string) (*service.RefineOutcome, error) {
	args := m.Called(ctx, current, documentContext, history, userMessage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RefineOutcome), args.Error(1)
}
