package port

import (
	"context"

	"github.com/google/uuid"

	"billscan/internal/domain"
)

// BillRepository persists finished bill records. Records are append-only.
type BillRepository interface {
	Create(ctx context.Context, record *domain.BillRecord) error
	GetByID(ctx context.Context, category domain.BillCategory, id uuid.UUID) (*domain.BillRecord, error)
	List(ctx context.Context, category domain.BillCategory, offset, limit int) ([]*domain.BillRecord, int, error)
}
