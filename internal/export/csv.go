package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"billscan/internal/domain"
)

// BOM is the UTF-8 byte order mark Excel on Windows needs to detect UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes bill records of one category as CSV rows.
type CSVWriter struct {
	csv      *csv.Writer
	category domain.BillCategory
}

// NewCSVWriter creates a CSVWriter for category that writes to w.
func NewCSVWriter(w io.Writer, category domain.BillCategory) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w), category: category}
}

// WriteHeader writes the metadata columns followed by the persisted columns.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(append(append([]string{}, metaColumns...), domain.Columns(w.category)...))
}

// WriteRecords converts a batch of records to CSV rows and writes them.
func (w *CSVWriter) WriteRecords(records []*domain.BillRecord) error {
	for _, rec := range records {
		if rec.Category() != w.category {
			return fmt.Errorf("export: %s record in %s export", rec.Category(), w.category)
		}
		row := append([]string{rec.ID().String(), rec.CreatedAt().Format(time.RFC3339)}, rec.Values()...)
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// BuildFilename returns the Content-Disposition filename of an export:
// {table}_{YYYY-MM-DD}.{ext}
func BuildFilename(category domain.BillCategory, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", category.TableName(), now.Format("2006-01-02"), ext)
}
