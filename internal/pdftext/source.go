package pdftext

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Document is an opened PDF whose pages can be read one at a time.
type Document interface {
	NumPage() int
	// PageText returns the embedded text of page n (1-based).
	PageText(n int) (string, error)
	Close() error
}

// PageSource opens PDF files for embedded-text extraction.
type PageSource interface {
	Open(path string) (Document, error)
}

// LedongthucSource reads embedded text with github.com/ledongthuc/pdf.
type LedongthucSource struct{}

func (LedongthucSource) Open(path string) (Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	return &ledongthucDoc{closer: f.Close, reader: r}, nil
}

type ledongthucDoc struct {
	closer func() error
	reader *pdf.Reader
}

func (d *ledongthucDoc) NumPage() int { return d.reader.NumPage() }

func (d *ledongthucDoc) PageText(n int) (text string, err error) {
	// the reader panics on some malformed content streams
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading page %d: %v", n, r)
		}
	}()
	page := d.reader.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

func (d *ledongthucDoc) Close() error { return d.closer() }
