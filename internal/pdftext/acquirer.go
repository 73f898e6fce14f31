// Package pdftext acquires the full text of a PDF bill, page by page, falling
// back to OCR for pages without an embedded text layer.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"billscan/internal/domain"
	"billscan/internal/textnorm"
)

type Config struct {
	Pdftoppm      string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	TesseractLang string // default "eng"
	TessdataDir   string
	DPI           int // rasterization DPI for scanned pages, default 300
	MaxPages      int // 0 = no limit
}

func (c Config) withDefaults() Config {
	if c.Pdftoppm == "" {
		c.Pdftoppm = "pdftoppm"
	}
	if c.Tesseract == "" {
		c.Tesseract = "tesseract"
	}
	if c.TesseractLang == "" {
		c.TesseractLang = "eng"
	}
	if c.DPI <= 0 {
		c.DPI = 300
	}
	return c
}

// PageText is the outcome of acquiring one page.
type PageText struct {
	Number int
	Text   string
	Method domain.ExtractionMethod
	Err    error // set when OCR failed; Text is then empty
}

// Acquirer implements the per-page text/OCR strategy.
type Acquirer struct {
	cfg    Config
	source PageSource
	ocr    OCREngine
	logger *zap.Logger
}

// NewAcquirer creates an Acquirer reading embedded text with ledongthuc/pdf
// and recognizing scanned pages with pdftoppm + tesseract.
func NewAcquirer(cfg Config, logger *zap.Logger) *Acquirer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return NewAcquirerWith(cfg, LedongthucSource{}, NewCommandOCR(cfg, logger), logger)
}

// NewAcquirerWith creates an Acquirer from explicit collaborators (for testing).
func NewAcquirerWith(cfg Config, source PageSource, ocr OCREngine, logger *zap.Logger) *Acquirer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Acquirer{cfg: cfg.withDefaults(), source: source, ocr: ocr, logger: logger}
}

// ExtractPages returns one PageText per page in order. The returned error is
// non-nil only when the document itself cannot be opened and wraps
// domain.ErrDocumentRead; per-page failures are reported in PageText.Err.
func (a *Acquirer) ExtractPages(ctx context.Context, path string) ([]PageText, error) {
	doc, err := a.source.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDocumentRead, path, err)
	}
	defer func() { _ = doc.Close() }()

	n := doc.NumPage()
	if a.cfg.MaxPages > 0 && n > a.cfg.MaxPages {
		a.logger.Warn("acquirer.ExtractPages: page limit reached",
			zap.String("path", path), zap.Int("pages", n), zap.Int("max_pages", a.cfg.MaxPages))
		n = a.cfg.MaxPages
	}

	pages := make([]PageText, 0, n)
	for i := 1; i <= n; i++ {
		pages = append(pages, a.extractPage(ctx, doc, path, i))
	}
	return pages, nil
}

func (a *Acquirer) extractPage(ctx context.Context, doc Document, path string, n int) PageText {
	text, err := doc.PageText(n)
	if err != nil {
		a.logger.Warn("acquirer.extractPage: embedded text unreadable, trying OCR",
			zap.Int("page", n), zap.Error(err))
	}
	if strings.TrimSpace(text) != "" {
		return PageText{Number: n, Text: text, Method: domain.ExtractionMethodText}
	}

	text, err = a.ocr.RecognizePage(ctx, path, n)
	if err != nil {
		a.logger.Error("acquirer.extractPage: OCR error",
			zap.String("path", path), zap.Int("page", n), zap.Error(err))
		return PageText{Number: n, Method: domain.ExtractionMethodNone, Err: fmt.Errorf("%w: page %d: %v", domain.ErrOCR, n, err)}
	}
	return PageText{Number: n, Text: text, Method: domain.ExtractionMethodOCR}
}

// Extract returns the normalized text of the whole document. Read and OCR
// failures are logged and never returned: an unreadable document yields "".
func (a *Acquirer) Extract(ctx context.Context, path string) string {
	pages, err := a.ExtractPages(ctx, path)
	if err != nil {
		a.logger.Error("acquirer.Extract: error reading PDF", zap.String("path", path), zap.Error(err))
		return ""
	}
	return Join(pages)
}

// Join concatenates page texts, each followed by a line separator, and
// normalizes the result.
func Join(pages []PageText) string {
	var b strings.Builder
	for _, p := range pages {
		b.WriteString(p.Text)
		b.WriteString("\n")
	}
	return textnorm.Normalize(b.String())
}

// Failed reports whether any page lost its text to an OCR error.
func Failed(pages []PageText) bool {
	for _, p := range pages {
		if errors.Is(p.Err, domain.ErrOCR) {
			return true
		}
	}
	return false
}
