// =============================================================================
// Order Transformer - Validation Report Writer
// =============================================================================
//
// This module renders the validator's findings for one source unit into an
// XLSX workbook, the artifact operators pick up when a batch needs manual
// attention. The worker writes one workbook per processed unit that had
// findings; clean batches produce none.
//
// =============================================================================

package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nordicerp/order-transformer/internal/model"
)

const sheetName = "Validation Errors"

// Build renders the findings for sourceName into workbook bytes.
//
// Layout: a two-row header naming the source unit and the generation time,
// a column header row, then one row per finding (order id, field path,
// error code, message).
func Build(sourceName string, findings []model.ValidationError, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create report sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	f.SetCellValue(sheetName, "A1", "Source")
	f.SetCellValue(sheetName, "B1", sourceName)
	f.SetCellValue(sheetName, "A2", "Generated")
	f.SetCellValue(sheetName, "B2", generatedAt.UTC().Format(time.RFC3339))

	f.SetCellValue(sheetName, "A4", "OrderId")
	f.SetCellValue(sheetName, "B4", "Field")
	f.SetCellValue(sheetName, "C4", "ErrorCode")
	f.SetCellValue(sheetName, "D4", "Message")

	for i, finding := range findings {
		row := i + 5
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), finding.OrderID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), finding.Field)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), finding.ErrorCode)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), finding.Message)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render report workbook: %w", err)
	}
	return buf.Bytes(), nil
}
