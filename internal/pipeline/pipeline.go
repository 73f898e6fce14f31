// Package pipeline runs one bill document through text acquisition,
// completion, field extraction and persistence.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"billscan/internal/domain"
	"billscan/internal/extractor"
	"billscan/internal/pdftext"
	"billscan/internal/port"
	"billscan/internal/prompt"
	"billscan/internal/record"
)

// TextAcquirer reads the pages of a PDF.
type TextAcquirer interface {
	ExtractPages(ctx context.Context, path string) ([]pdftext.PageText, error)
}

// SummarySink receives the extracted fields of every persisted bill.
type SummarySink interface {
	Save(summary domain.BillSummary)
}

// Result is the full outcome of a successful run.
type Result struct {
	Record *domain.BillRecord
	Fields domain.FieldMap
	Pages  []pdftext.PageText
	Model  string
}

// Pipeline holds the collaborators of a run. It keeps no per-run state and
// is safe for concurrent use.
type Pipeline struct {
	acquirer TextAcquirer
	oracle   port.CompletionOracle
	repo     port.BillRepository
	logger   *zap.Logger
	metrics  *Metrics
	sink     SummarySink
	now      func() time.Time
	newID    func() uuid.UUID
}

// Option configures optional collaborators.
type Option func(*Pipeline)

// WithMetrics records runs and page methods in m.
func WithMetrics(m *Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithSummarySink hands every persisted bill's fields to s.
func WithSummarySink(s SummarySink) Option {
	return func(p *Pipeline) { p.sink = s }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithIDGenerator overrides record ID generation.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(p *Pipeline) { p.newID = newID }
}

// New creates a Pipeline.
func New(acquirer TextAcquirer, oracle port.CompletionOracle, repo port.BillRepository, logger *zap.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pipeline{
		acquirer: acquirer,
		oracle:   oracle,
		repo:     repo,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.New,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessUpload extracts, structures and persists the bill at pdfPath.
func (p *Pipeline) ProcessUpload(ctx context.Context, pdfPath string, category domain.BillCategory) (*domain.BillRecord, error) {
	res, err := p.Process(ctx, pdfPath, category)
	if err != nil {
		return nil, err
	}
	return res.Record, nil
}

// Process is ProcessUpload returning the intermediate results as well.
//
// Unreadable documents and failed OCR pages are logged and contribute empty
// text. A completion failure aborts the run with an error matching
// domain.ErrCompletionService; a persistence failure aborts it with one
// matching domain.ErrPersistence. Nothing is persisted by a failed run.
func (p *Pipeline) Process(ctx context.Context, pdfPath string, category domain.BillCategory) (*Result, error) {
	if len(domain.Columns(category)) == 0 {
		return nil, domain.ErrUnsupportedCategory
	}
	start := time.Now()
	log := p.logger.With(zap.String("path", pdfPath), zap.String("category", string(category)))

	pages, err := p.acquirer.ExtractPages(ctx, pdfPath)
	if err != nil {
		log.Error("pipeline.Process: error reading PDF", zap.Error(err))
	}
	p.metrics.observePages(pages)
	if pdftext.Failed(pages) {
		log.Warn("pipeline.Process: continuing with partial text")
	}
	text := pdftext.Join(pages)
	log.Debug("pipeline.Process: text acquired", zap.Int("pages", len(pages)), zap.Int("chars", len(text)))

	out, err := p.oracle.Complete(ctx, port.CompletionInput{Prompt: prompt.Build(text, category)})
	if err != nil {
		p.metrics.observeRun(category, OutcomeCompletionFailed, time.Since(start))
		if !errors.Is(err, domain.ErrCompletionService) {
			err = fmt.Errorf("%w: %v", domain.ErrCompletionService, err)
		}
		return nil, fmt.Errorf("pipeline.Process: %w", err)
	}
	log.Debug("pipeline.Process: completion received", zap.String("model", out.ModelUsed), zap.String("response", out.Text))

	fields := extractor.Extract(out.Text, text, category)
	rec := record.BuildWithID(p.newID(), fields, category, p.now())

	if err := p.repo.Create(ctx, rec); err != nil {
		p.metrics.observeRun(category, OutcomePersistFailed, time.Since(start))
		if !errors.Is(err, domain.ErrPersistence) {
			err = fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		return nil, fmt.Errorf("pipeline.Process: %w", err)
	}
	p.metrics.observeRun(category, OutcomeSuccess, time.Since(start))
	log.Info("pipeline.Process: bill details saved", zap.String("id", rec.ID().String()))

	if p.sink != nil {
		p.sink.Save(record.Summary(fields, category, rec.CreatedAt()))
	}

	return &Result{Record: rec, Fields: fields, Pages: pages, Model: out.ModelUsed}, nil
}
