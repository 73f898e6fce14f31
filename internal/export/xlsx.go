package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"billscan/internal/domain"
)

// metaColumns precede the bill columns in every exported sheet.
var metaColumns = []string{"ID", "Created At"}

// WriteXLSX writes records of one category as a single-sheet workbook.
// The header row holds the metadata columns followed by the persisted
// column names of category.
func WriteXLSX(w io.Writer, category domain.BillCategory, records []*domain.BillRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := SheetName(category)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	cols := domain.Columns(category)
	header := append(append([]string{}, metaColumns...), cols...)
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for r, rec := range records {
		row := r + 2
		write := func(col int, v any) error {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			return f.SetCellValue(sheet, cell, v)
		}
		if err := write(1, rec.ID().String()); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
		if err := write(2, rec.CreatedAt().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
		for i, v := range rec.Values() {
			if err := write(len(metaColumns)+i+1, v); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
		}
	}

	last, _ := excelize.ColumnNumberToName(len(header))
	_ = f.SetColWidth(sheet, "A", "A", 38)
	_ = f.SetColWidth(sheet, "B", "B", 22)
	_ = f.SetColWidth(sheet, "C", last, 28)
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SheetName returns the sheet title used for category.
func SheetName(category domain.BillCategory) string {
	switch category {
	case domain.BillCategoryElectricity:
		return "Electricity Bills"
	case domain.BillCategoryWater:
		return "Water Bills"
	default:
		return "Bills"
	}
}
