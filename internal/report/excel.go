package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ExcelExporter writes the report as an .xlsx workbook, one file per
// run, as an optional companion to the text output.
type ExcelExporter struct {
	OutputDir string
}

func NewExcelExporter(outputDir string) *ExcelExporter {
	return &ExcelExporter{OutputDir: outputDir}
}

func (e *ExcelExporter) Export(r Report) (string, error) {
	filename := filepath.Join(e.OutputDir, fmt.Sprintf("worklog_%s.xlsx", r.Window.Label))

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Summary"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return "", err
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})

	f.SetCellValue(sheet, "A1", "User:")
	f.SetCellValue(sheet, "B1", r.User.DisplayName)
	f.SetCellValue(sheet, "A2", "Month:")
	f.SetCellValue(sheet, "B2", r.Window.Label)
	f.SetCellValue(sheet, "A3", "Label prefixes:")
	f.SetCellValue(sheet, "B3", strings.Join(r.Prefixes, ", "))
	f.SetCellValue(sheet, "A4", "Business days:")
	f.SetCellValue(sheet, "B4", r.BusinessDays)
	f.SetCellValue(sheet, "A5", "Capacity:")
	f.SetCellValue(sheet, "B5", FormatHMS(r.CapacitySeconds))
	f.SetCellValue(sheet, "A6", "Total:")
	f.SetCellValue(sheet, "B6", FormatHMS(r.TotalSeconds))
	f.SetCellValue(sheet, "A7", "Capacity used:")
	f.SetCellValue(sheet, "B7", FormatPercent(r.CapacityPercent()))

	title := cases.Title(language.English)
	headers := []string{"rank", "issue", "time", "cumulated", "summary"}

	row := 9
	for col, h := range headers {
		cell := cellName(col+1, row)
		f.SetCellValue(sheet, cell, title.String(h))
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for _, line := range r.Rows {
		row++
		f.SetCellValue(sheet, cellName(1, row), line.Rank)
		f.SetCellValue(sheet, cellName(2, row), line.Key)
		f.SetCellValue(sheet, cellName(3, row), FormatHMS(line.Seconds))
		f.SetCellValue(sheet, cellName(4, row), FormatHMS(line.Cumulative))
		f.SetCellValue(sheet, cellName(5, row), line.Summary)
	}

	_ = f.SetColWidth(sheet, "B", "B", 24)
	_ = f.SetColWidth(sheet, "E", "E", 60)

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SaveAs(filename); err != nil {
		return "", fmt.Errorf("failed to save excel file: %w", err)
	}

	return filename, nil
}

func cellName(col, row int) string {
	return fmt.Sprintf("%s%d", columnLetter(col), row)
}

func columnLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
