package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billscan/internal/domain"
)

// MockBillProcessor is a mock implementation of service.BillProcessor.
type MockBillProcessor struct {
	mock.Mock
}

func (m *MockBillProcessor) ProcessUpload(ctx context.Context, pdfPath string, category domain.BillCategory) (*domain.BillRecord, error) {
	args := m.Called(ctx, pdfPath, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillRecord), args.Error(1)
}
