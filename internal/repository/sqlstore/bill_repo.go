package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billscan/internal/domain"
	"billscan/internal/port"
)

type billRepo struct {
	db *sqlx.DB
}

// NewBillRepo creates a sqlx-backed BillRepository.
func NewBillRepo(db *sqlx.DB) port.BillRepository {
	return &billRepo{db: db}
}

// Create inserts record into its category table in a single statement.
func (r *billRepo) Create(ctx context.Context, record *domain.BillRecord) error {
	cat := record.Category()
	cols := domain.Columns(cat)
	if len(cols) == 0 {
		return fmt.Errorf("billRepo.Create: %w", domain.ErrUnsupportedCategory)
	}

	names := append(append([]string{"id"}, cols...), "created_at")
	query := r.db.Rebind(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		cat.TableName(), strings.Join(names, ", "), placeholders(len(names))))

	args := make([]interface{}, 0, len(names))
	args = append(args, record.ID().String())
	for _, v := range record.Values() {
		args = append(args, v)
	}
	args = append(args, record.CreatedAt())

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("billRepo.Create: %w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *billRepo) GetByID(ctx context.Context, category domain.BillCategory, id uuid.UUID) (*domain.BillRecord, error) {
	cols := domain.Columns(category)
	if len(cols) == 0 {
		return nil, fmt.Errorf("billRepo.GetByID: %w", domain.ErrUnsupportedCategory)
	}

	query := r.db.Rebind(fmt.Sprintf("SELECT %s FROM %s WHERE id = ?",
		selectList(cols), category.TableName()))

	rec, err := scanRecord(r.db.QueryRowxContext(ctx, query, id.String()), category, cols)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("billRepo.GetByID: %w", err)
	}
	return rec, nil
}

func (r *billRepo) List(ctx context.Context, category domain.BillCategory, offset, limit int) ([]*domain.BillRecord, int, error) {
	cols := domain.Columns(category)
	if len(cols) == 0 {
		return nil, 0, fmt.Errorf("billRepo.List: %w", domain.ErrUnsupportedCategory)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM "+category.TableName()); err != nil {
		return nil, 0, fmt.Errorf("billRepo.List count: %w", err)
	}

	query := r.db.Rebind(fmt.Sprintf("SELECT %s FROM %s ORDER BY created_at DESC, id LIMIT ? OFFSET ?",
		selectList(cols), category.TableName()))
	rows, err := r.db.QueryxContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("billRepo.List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*domain.BillRecord
	for rows.Next() {
		rec, err := scanRecord(rows, category, cols)
		if err != nil {
			return nil, 0, fmt.Errorf("billRepo.List scan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("billRepo.List rows: %w", err)
	}
	return records, total, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner, category domain.BillCategory, cols []string) (*domain.BillRecord, error) {
	var (
		rawID     string
		createdAt time.Time
	)
	values := make([]string, len(cols))
	dest := make([]interface{}, 0, len(cols)+2)
	dest = append(dest, &rawID)
	for i := range values {
		dest = append(dest, &values[i])
	}
	dest = append(dest, &createdAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("parsing id %q: %w", rawID, err)
	}
	byCol := make(map[string]string, len(cols))
	for i, col := range cols {
		byCol[col] = values[i]
	}
	return domain.NewBillRecord(id, category, byCol, createdAt), nil
}

func selectList(cols []string) string {
	return "id, " + strings.Join(cols, ", ") + ", created_at"
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
