package pdftext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
)

// OCREngine renders a single PDF page to an image and recognizes its text.
type OCREngine interface {
	RecognizePage(ctx context.Context, pdfPath string, page int) (string, error)
}

// CommandOCR renders with pdftoppm and recognizes with tesseract.
type CommandOCR struct {
	cfg    Config
	runner Runner
	logger *zap.Logger
}

// NewCommandOCR creates an OCREngine backed by the pdftoppm and tesseract binaries.
func NewCommandOCR(cfg Config, logger *zap.Logger) *CommandOCR {
	if logger == nil {
		logger = zap.NewNop()
	}
	return NewCommandOCRWithRunner(cfg, execRunner{logger: logger}, logger)
}

// NewCommandOCRWithRunner creates a CommandOCR using r to execute commands (for testing).
func NewCommandOCRWithRunner(cfg Config, r Runner, logger *zap.Logger) *CommandOCR {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandOCR{cfg: cfg.withDefaults(), runner: r, logger: logger}
}

func (o *CommandOCR) RecognizePage(ctx context.Context, pdfPath string, page int) (string, error) {
	tmpDir, err := os.MkdirTemp("", "billscan-page-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			o.logger.Warn("commandOCR.RecognizePage: failed to remove temp dir",
				zap.String("dir", tmpDir), zap.Error(rmErr))
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	n := strconv.Itoa(page)
	// pdftoppm -f N -l N -r 300 -png -singlefile <in.pdf> <tmp/page>
	_, errb, err := o.runner.Run(ctx, o.cfg.Pdftoppm,
		"-f", n, "-l", n, "-r", strconv.Itoa(o.cfg.DPI), "-png", "-singlefile", pdfPath, prefix)
	if err != nil {
		return "", fmt.Errorf("pdftoppm page %d: %w (%s)", page, err, truncate(string(errb), 512))
	}

	args := []string{prefix + ".png", "stdout", "-l", o.cfg.TesseractLang}
	if o.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", o.cfg.TessdataDir)
	}
	out, errb, err := o.runner.Run(ctx, o.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract page %d: %w (%s)", page, err, truncate(string(errb), 512))
	}
	return string(out), nil
}
