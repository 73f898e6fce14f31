package pdftext

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/domain"
)

type fakeDoc struct {
	pages  []string
	closed bool
}

func (d *fakeDoc) NumPage() int { return len(d.pages) }

func (d *fakeDoc) PageText(n int) (string, error) {
	return d.pages[n-1], nil
}

func (d *fakeDoc) Close() error {
	d.closed = true
	return nil
}

type fakeSource struct {
	doc *fakeDoc
	err error
}

func (s *fakeSource) Open(string) (Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

type fakeOCR struct {
	text  map[int]string
	fail  map[int]error
	calls []int
}

func (o *fakeOCR) RecognizePage(_ context.Context, _ string, page int) (string, error) {
	o.calls = append(o.calls, page)
	if err, ok := o.fail[page]; ok {
		return "", err
	}
	return o.text[page], nil
}

func TestAcquirer_Extract_EmbeddedText(t *testing.T) {
	doc := &fakeDoc{pages: []string{"Account  Number: 42\n", "**Due Date**: 01-02-2025 (cid:12)"}}
	ocr := &fakeOCR{}
	a := NewAcquirerWith(Config{}, &fakeSource{doc: doc}, ocr, nil)

	got := a.Extract(context.Background(), "bill.pdf")

	assert.Equal(t, "Account Number: 42 Due Date: 01-02-2025", got)
	assert.Empty(t, ocr.calls)
	assert.True(t, doc.closed)
}

func TestAcquirer_Extract_OCRFallbackForBlankPages(t *testing.T) {
	doc := &fakeDoc{pages: []string{"first page", "   \n\t", ""}}
	ocr := &fakeOCR{text: map[int]string{2: "scanned two", 3: ""}}
	a := NewAcquirerWith(Config{}, &fakeSource{doc: doc}, ocr, nil)

	pages, err := a.ExtractPages(context.Background(), "bill.pdf")
	require.NoError(t, err)
	require.Len(t, pages, 3)

	assert.Equal(t, domain.ExtractionMethodText, pages[0].Method)
	assert.Equal(t, domain.ExtractionMethodOCR, pages[1].Method)
	assert.Equal(t, "scanned two", pages[1].Text)
	assert.Equal(t, domain.ExtractionMethodOCR, pages[2].Method)
	assert.Equal(t, []int{2, 3}, ocr.calls)
	assert.Equal(t, "first page scanned two", Join(pages))
}

func TestAcquirer_Extract_PageIsolation(t *testing.T) {
	doc := &fakeDoc{pages: []string{"page one", "", "page three"}}
	ocr := &fakeOCR{fail: map[int]error{2: errors.New("tesseract crashed")}}
	a := NewAcquirerWith(Config{}, &fakeSource{doc: doc}, ocr, nil)

	pages, err := a.ExtractPages(context.Background(), "bill.pdf")
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.ErrorIs(t, pages[1].Err, domain.ErrOCR)
	assert.Equal(t, domain.ExtractionMethodNone, pages[1].Method)
	assert.True(t, Failed(pages))

	assert.Equal(t, "page one page three", a.Extract(context.Background(), "bill.pdf"))
}

func TestAcquirer_Extract_OpenFailureYieldsEmpty(t *testing.T) {
	a := NewAcquirerWith(Config{}, &fakeSource{err: errors.New("not a pdf")}, &fakeOCR{}, nil)

	_, err := a.ExtractPages(context.Background(), "broken.pdf")
	assert.ErrorIs(t, err, domain.ErrDocumentRead)

	assert.Equal(t, "", a.Extract(context.Background(), "broken.pdf"))
}

func TestAcquirer_ExtractPages_MaxPages(t *testing.T) {
	doc := &fakeDoc{pages: []string{"a", "b", "c", "d"}}
	a := NewAcquirerWith(Config{MaxPages: 2}, &fakeSource{doc: doc}, &fakeOCR{}, nil)

	pages, err := a.ExtractPages(context.Background(), "bill.pdf")
	require.NoError(t, err)
	assert.Len(t, pages, 2)
	assert.False(t, Failed(pages))
}

func TestConfig_WithDefaults(t *testing.T) {
	c := Config{}.withDefaults()
	assert.Equal(t, "pdftoppm", c.Pdftoppm)
	assert.Equal(t, "tesseract", c.Tesseract)
	assert.Equal(t, "eng", c.TesseractLang)
	assert.Equal(t, 300, c.DPI)

	c = Config{DPI: 150, TesseractLang: "hin"}.withDefaults()
	assert.Equal(t, 150, c.DPI)
	assert.Equal(t, "hin", c.TesseractLang)
}
