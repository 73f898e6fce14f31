// Command billscan extracts bill details from PDFs on disk without the HTTP
// server, storing them exactly as uploads are stored.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"billscan/internal/app"
	"billscan/internal/config"
	"billscan/internal/domain"
	"billscan/internal/export"
	"billscan/internal/logger"
	"billscan/internal/pdftext"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var (
		billType    = flag.String("type", string(domain.DefaultBillCategory), "bill type: electricity or water")
		concurrency = flag.Int("concurrency", cfg.Batch.Concurrency, "number of bills processed at once")
		xlsxOut     = flag.String("xlsx", "", "also write the processed bills to this XLSX file")
		textOnly    = flag.Bool("text", false, "print the acquired document text and exit")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: billscan [flags] file.pdf|dir ...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	files, err := collectPDFs(flag.Args())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		flag.Usage()
		return fmt.Errorf("no PDF files given")
	}

	category, err := domain.ParseBillCategory(*billType)
	if err != nil {
		return fmt.Errorf("--type %q: %w", *billType, err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync(zl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *textOnly {
		acq := pdftext.NewAcquirer(app.AcquirerConfig(cfg.OCR), zl)
		for _, f := range files {
			fmt.Printf("==> %s\n%s\n", f, acq.Extract(ctx, f))
		}
		return nil
	}

	a, err := app.New(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	results := runBatch(ctx, a.Pipeline, files, category, *concurrency)

	var failed int
	var records []*domain.BillRecord
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("FAIL %s: %v\n", r.Path, r.Err)
			continue
		}
		records = append(records, r.Record)
		fmt.Printf("OK   %s -> %s (%s)\n", r.Path, r.Record.ID(), r.Record.Value("bill_amount"))
	}

	if *xlsxOut != "" && len(records) > 0 {
		if err := writeXLSX(*xlsxOut, category, records); err != nil {
			return err
		}
		zl.Info("billscan: workbook written", zap.String("path", *xlsxOut), zap.Int("bills", len(records)))
	}

	fmt.Printf("%d processed, %d failed\n", len(records), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d bills failed", failed, len(results))
	}
	return nil
}

func writeXLSX(path string, category domain.BillCategory, records []*domain.BillRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := export.WriteXLSX(f, category, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
