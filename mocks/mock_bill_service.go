package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"billscan/internal/domain"
	"billscan/internal/service"
)

// MockBillService is a mock implementation of service.BillService.
type MockBillService struct {
	mock.Mock
}

func (m *MockBillService) Upload(ctx context.Context, input service.BillUploadInput) (*domain.BillRecord, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillRecord), args.Error(1)
}

func (m *MockBillService) GetByID(ctx context.Context, category domain.BillCategory, id uuid.UUID) (*service.BillWithDocument, error) {
	args := m.Called(ctx, category, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BillWithDocument), args.Error(1)
}

func (m *MockBillService) List(ctx context.Context, category domain.BillCategory, offset, limit int) ([]*domain.BillRecord, int, error) {
	args := m.Called(ctx, category, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.BillRecord), args.Int(1), args.Error(2)
}

func (m *MockBillService) ExportXLSX(ctx context.Context, category domain.BillCategory) ([]byte, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockBillService) ExportCSV(ctx context.Context, category domain.BillCategory, w io.Writer) error {
	args := m.Called(ctx, category, w)
	return args.Error(0)
}
