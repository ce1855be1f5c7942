package report

import (
	"fmt"
	"time"

	"github.com/kartika/bujet/internal/currency"
	"github.com/kartika/bujet/internal/model"
	"github.com/xuri/excelize/v2"
)

// ExcelOptions controls the workbook export.
type ExcelOptions struct {
	// BudgetType labels the summary block (e.g. "personal", "custom").
	BudgetType string
	// CurrencyCode is recorded in the summary block.
	CurrencyCode string
	// Quarterly adds a sheet splitting each amount across four quarters.
	Quarterly bool
}

const budgetSheet = "Budget"

// WriteExcel exports the budget as a styled workbook: an item sheet with a
// summary block, and optionally a quarterly breakdown sheet.
func WriteExcel(path string, b *model.Budget, format currency.Formatter, opts ExcelOptions) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	f.SetSheetName("Sheet1", budgetSheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return fmt.Errorf("failed to create bold style: %w", err)
	}

	headers := []string{"Category", "Name", "Amount", "Percentage"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(budgetSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := f.SetCellStyle(budgetSheet, "A1", "D1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for row, item := range b.Items {
		values := []any{
			item.Category,
			item.Name,
			format.Format(item.Amount),
			fmt.Sprintf("%.2f%%", item.Percentage),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(budgetSheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	if err := f.SetColWidth(budgetSheet, "A", "B", 25); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(budgetSheet, "C", "D", 16); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	// Summary block two rows below the items.
	summaryRow := len(b.Items) + 4
	budgetType := opts.BudgetType
	if budgetType == "" {
		budgetType = "custom"
	}
	summary := [][2]any{
		{"Budget Summary", ""},
		{"Total Budget:", format.Format(b.Total())},
		{"Budget Type:", budgetType},
		{"Currency:", opts.CurrencyCode},
		{"Created:", time.Now().Format("2006-01-02 15:04:05")},
	}
	for i, pair := range summary {
		keyCell, _ := excelize.CoordinatesToCellName(1, summaryRow+i)
		if err := f.SetCellValue(budgetSheet, keyCell, pair[0]); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
		if pair[1] != "" {
			valueCell, _ := excelize.CoordinatesToCellName(2, summaryRow+i)
			if err := f.SetCellValue(budgetSheet, valueCell, pair[1]); err != nil {
				return fmt.Errorf("failed to write summary: %w", err)
			}
		}
	}
	titleCell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	if err := f.SetCellStyle(budgetSheet, titleCell, titleCell, boldStyle); err != nil {
		return fmt.Errorf("failed to style summary: %w", err)
	}

	if opts.Quarterly {
		if err := writeQuarterlySheet(f, b, format, headerStyle); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeQuarterlySheet adds an equal four-way split of every item.
func writeQuarterlySheet(f *excelize.File, b *model.Budget, format currency.Formatter, headerStyle int) error {
	const sheet = "Quarterly"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create quarterly sheet: %w", err)
	}

	headers := []string{"Category", "Name", "Q1", "Q2", "Q3", "Q4", "Annual"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write quarterly header: %w", err)
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "G1", headerStyle); err != nil {
		return fmt.Errorf("failed to style quarterly header: %w", err)
	}

	for row, item := range b.Items {
		quarter := item.Amount / 4
		values := []any{
			item.Category,
			item.Name,
			format.Format(quarter),
			format.Format(quarter),
			format.Format(quarter),
			format.Format(quarter),
			format.Format(item.Amount),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write quarterly row %d: %w", row+2, err)
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "B", 25); err != nil {
		return fmt.Errorf("failed to size quarterly columns: %w", err)
	}
	return f.SetColWidth(sheet, "C", "G", 14)
}
