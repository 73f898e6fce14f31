// Package app wires configuration into the collaborators shared by the HTTP
// server and the batch CLI.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"billscan/internal/config"
	"billscan/internal/export"
	"billscan/internal/oracle/providers"
	"billscan/internal/pdftext"
	"billscan/internal/pipeline"
	"billscan/internal/port"
	"billscan/internal/repository/sqlstore"
	s3storage "billscan/internal/storage/s3"
)

// App holds the long-lived collaborators built from one Config.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	DB        *sqlx.DB
	Bills     port.BillRepository
	Acquirer  *pdftext.Acquirer
	Pipeline  *pipeline.Pipeline
	Archive   *s3storage.Archive // nil when s3.bucket is empty
	Summaries *export.JSONFile   // nil when export.json_path is empty
	Registry  *prometheus.Registry
}

// New builds an App. A missing completion credential is reported as
// domain.ErrConfiguration before any connection is opened.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	oracle, err := providers.Build(&cfg.Oracle, logger.Named("oracle"))
	if err != nil {
		return nil, fmt.Errorf("app.New: %w", err)
	}

	if cfg.DB.AutoMigrate {
		if err := sqlstore.Migrate(&cfg.DB, cfg.DB.MigrationsPath); err != nil {
			return nil, fmt.Errorf("app.New: %w", err)
		}
	}
	db, err := sqlstore.NewDB(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("app.New: %w", err)
	}

	a := &App{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Bills:    sqlstore.NewBillRepo(db),
		Acquirer: pdftext.NewAcquirer(AcquirerConfig(cfg.OCR), logger.Named("pdftext")),
		Registry: prometheus.NewRegistry(),
	}
	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if cfg.S3.Bucket != "" {
		store, err := s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("app.New: %w", err)
		}
		a.Archive = s3storage.NewArchive(store, cfg.S3.Bucket, cfg.S3.Prefix)
	}

	opts := []pipeline.Option{pipeline.WithMetrics(pipeline.NewMetrics(a.Registry))}
	if cfg.Export.JSONPath != "" {
		a.Summaries = export.NewJSONFile(cfg.Export.JSONPath, logger.Named("export"))
		opts = append(opts, pipeline.WithSummarySink(a.Summaries))
	}
	a.Pipeline = pipeline.New(a.Acquirer, oracle, a.Bills, logger.Named("pipeline"), opts...)

	logger.Info("app.New: ready",
		zap.String("db_driver", cfg.DB.Driver),
		zap.String("oracle", cfg.Oracle.Primary.Provider),
		zap.Bool("archive", a.Archive != nil),
		zap.String("json_export", cfg.Export.JSONPath))
	return a, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	return a.DB.Close()
}

// AcquirerConfig maps the ocr config section onto pdftext settings.
func AcquirerConfig(c config.OCRConfig) pdftext.Config {
	return pdftext.Config{
		Pdftoppm:      c.Pdftoppm,
		Tesseract:     c.Tesseract,
		TesseractLang: c.Lang,
		TessdataDir:   c.TessdataDir,
		DPI:           c.DPI,
		MaxPages:      c.MaxPages,
	}
}
