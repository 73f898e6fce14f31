package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"billscan/internal/domain"
	"billscan/internal/export"
)

// exportPageSize is the page size used when reading a whole table for export.
const exportPageSize = 500

// BillUploadInput is the DTO for bill upload requests.
type BillUploadInput struct {
	BillType string
	File     multipart.File
	Header   *multipart.FileHeader
}

// BillWithDocument pairs a stored record with a download link for its source PDF.
type BillWithDocument struct {
	Record      *domain.BillRecord `json:"record"`
	DocumentURL string             `json:"document_url,omitempty"`
}

// BillProcessor runs the extraction pipeline over a PDF on disk.
type BillProcessor interface {
	ProcessUpload(ctx context.Context, pdfPath string, category domain.BillCategory) (*domain.BillRecord, error)
}

// DocumentArchive keeps the source PDF of each stored bill.
type DocumentArchive interface {
	Put(ctx context.Context, category domain.BillCategory, id uuid.UUID, body io.Reader, size int64) (string, error)
	URL(ctx context.Context, category domain.BillCategory, id uuid.UUID) (string, error)
}

// BillReader is the read side of the bill store.
type BillReader interface {
	GetByID(ctx context.Context, category domain.BillCategory, id uuid.UUID) (*domain.BillRecord, error)
	List(ctx context.Context, category domain.BillCategory, offset, limit int) ([]*domain.BillRecord, int, error)
}

// BillService defines the bill upload and retrieval contract.
type BillService interface {
	Upload(ctx context.Context, input BillUploadInput) (*domain.BillRecord, error)
	GetByID(ctx context.Context, category domain.BillCategory, id uuid.UUID) (*BillWithDocument, error)
	List(ctx context.Context, category domain.BillCategory, offset, limit int) ([]*domain.BillRecord, int, error)
	ExportXLSX(ctx context.Context, category domain.BillCategory) ([]byte, error)
	ExportCSV(ctx context.Context, category domain.BillCategory, w io.Writer) error
}

// BillServiceConfig holds the tunables of the bill service.
type BillServiceConfig struct {
	MaxUploadBytes int64
	TempDir        string
}

type billService struct {
	processor BillProcessor
	bills     BillReader
	archive   DocumentArchive
	cfg       BillServiceConfig
	logger    *zap.Logger
}

// NewBillService creates a new BillService. archive may be nil.
func NewBillService(
	processor BillProcessor,
	bills BillReader,
	archive DocumentArchive,
	cfg BillServiceConfig,
	logger *zap.Logger,
) BillService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &billService{
		processor: processor,
		bills:     bills,
		archive:   archive,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *billService) Upload(ctx context.Context, input BillUploadInput) (*domain.BillRecord, error) {
	category, err := domain.ParseBillCategory(input.BillType)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if s.cfg.MaxUploadBytes > 0 && input.Header.Size > s.cfg.MaxUploadBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Sniff the first 512 bytes rather than trusting the client's content type.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if _, ok := domain.AllowedContentTypes[http.DetectContentType(buf[:n])]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	tmp, err := os.CreateTemp(s.cfg.TempDir, "billscan-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	size, err := io.Copy(tmp, input.File)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("writing temp file: %w", err)
	}

	s.logger.Info("billService.Upload: processing bill",
		zap.String("filename", input.Header.Filename),
		zap.String("category", string(category)),
		zap.Int64("bytes", size))

	rec, err := s.processor.ProcessUpload(ctx, tmpPath, category)
	if err != nil {
		s.logger.Error("billService.Upload: pipeline failed", zap.String("filename", input.Header.Filename), zap.Error(err))
		return nil, err
	}

	s.archiveDocument(ctx, rec, tmpPath, size)
	return rec, nil
}

func (s *billService) archiveDocument(ctx context.Context, rec *domain.BillRecord, path string, size int64) {
	if s.archive == nil {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		s.logger.Warn("billService.Upload: reopening document for archive", zap.Error(err))
		return
	}
	defer func() { _ = f.Close() }()

	key, err := s.archive.Put(ctx, rec.Category(), rec.ID(), f, size)
	if err != nil {
		s.logger.Warn("billService.Upload: archive failed", zap.String("id", rec.ID().String()), zap.Error(err))
		return
	}
	if key != "" {
		s.logger.Debug("billService.Upload: document archived", zap.String("key", key))
	}
}

func (s *billService) GetByID(ctx context.Context, category domain.BillCategory, id uuid.UUID) (*BillWithDocument, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}
	rec, err := s.bills.GetByID(ctx, category, id)
	if err != nil {
		return nil, err
	}
	out := &BillWithDocument{Record: rec}
	if s.archive != nil {
		url, err := s.archive.URL(ctx, category, id)
		if err != nil {
			s.logger.Warn("billService.GetByID: presigning document", zap.String("id", id.String()), zap.Error(err))
		}
		out.DocumentURL = url
	}
	return out, nil
}

func (s *billService) List(ctx context.Context, category domain.BillCategory, offset, limit int) ([]*domain.BillRecord, int, error) {
	if err := checkCategory(category); err != nil {
		return nil, 0, err
	}
	return s.bills.List(ctx, category, offset, limit)
}

func (s *billService) ExportXLSX(ctx context.Context, category domain.BillCategory) ([]byte, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}

	var all []*domain.BillRecord
	err := s.eachPage(ctx, category, func(page []*domain.BillRecord) error {
		all = append(all, page...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, category, all); err != nil {
		return nil, fmt.Errorf("billService.ExportXLSX: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportCSV streams every record of category to w, one page at a time.
func (s *billService) ExportCSV(ctx context.Context, category domain.BillCategory, w io.Writer) error {
	if err := checkCategory(category); err != nil {
		return err
	}

	if _, err := w.Write(export.BOM); err != nil {
		return fmt.Errorf("billService.ExportCSV: %w", err)
	}
	cw := export.NewCSVWriter(w, category)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("billService.ExportCSV: %w", err)
	}
	err := s.eachPage(ctx, category, func(page []*domain.BillRecord) error {
		if err := cw.WriteRecords(page); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return fmt.Errorf("billService.ExportCSV: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// eachPage calls fn with successive pages of the category's records.
func (s *billService) eachPage(ctx context.Context, category domain.BillCategory, fn func([]*domain.BillRecord) error) error {
	seen := 0
	for offset := 0; ; offset += exportPageSize {
		page, total, err := s.bills.List(ctx, category, offset, exportPageSize)
		if err != nil {
			return err
		}
		if len(page) > 0 {
			if err := fn(page); err != nil {
				return err
			}
		}
		seen += len(page)
		if len(page) == 0 || seen >= total {
			return nil
		}
	}
}

func checkCategory(c domain.BillCategory) error {
	if len(domain.Columns(c)) == 0 {
		return domain.ErrUnsupportedCategory
	}
	return nil
}
