package mocks

import (
	"context"
	"net/http"

	"github.com/newsnotes/internal/service"
)

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	Counts             map[string]int
	CountError         error
	StreamArticlesFunc func(ctx context.Context, w http.ResponseWriter, format string) error
}

// Verify interface compliance
var _ service.ExportService = (*MockExportService)(nil)

func NewMockExportService() *MockExportService {
	return &MockExportService{
		Counts: make(map[string]int),
	}
}

func (m *MockExportService) StreamArticles(ctx context.Context, w http.ResponseWriter, format string) error {
	if m.StreamArticlesFunc != nil {
		return m.StreamArticlesFunc(ctx, w, format)
	}
	return nil
}

func (m *MockExportService) GetCount(ctx context.Context, resource string) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	return m.Counts[resource], nil
}
