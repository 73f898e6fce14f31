package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"billscan/internal/domain"
)

// MockBillRepo is a mock implementation of port.BillRepository.
type MockBillRepo struct {
	mock.Mock
}

func (m *MockBillRepo) Create(ctx context.Context, record *domain.BillRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockBillRepo) GetByID(ctx context.Context, category domain.BillCategory, id uuid.UUID) (*domain.BillRecord, error) {
	args := m.Called(ctx, category, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillRecord), args.Error(1)
}

func (m *MockBillRepo) List(ctx context.Context, category domain.BillCategory, offset, limit int) ([]*domain.BillRecord, int, error) {
	args := m.Called(ctx, category, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.BillRecord), args.Int(1), args.Error(2)
}
