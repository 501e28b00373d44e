package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-survey/pkg/survey"
)

// SheetName is the worksheet holding one row per answer.
const SheetName = "Responses"

var xlsxHeaders = []string{"ID", "Label", "Widget Key", "Value"}

// XLSX renders every record as a row of a spreadsheet, sorted by id.
func XLSX(answers *survey.Answers) ([]byte, error) {
	if answers == nil {
		answers = survey.NewAnswers()
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("export: name sheet: %w", err)
	}

	for col, header := range xlsxHeaders {
		if err := setCell(f, col+1, 1, header); err != nil {
			return nil, err
		}
	}

	for i, id := range answers.IDs() {
		rec, _ := answers.Record(id)
		row := []any{id, rec.Label, rec.WidgetKey, cellValue(rec.Value)}
		for col, value := range row {
			if err := setCell(f, col+1, i+2, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("export: cell name: %w", err)
	}
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		return fmt.Errorf("export: set %s: %w", cell, err)
	}
	return nil
}

func cellValue(value any) any {
	switch typed := value.(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(typed, ", ")
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", ")
	case string, bool, float64, float32, int, int64:
		return typed
	default:
		return fmt.Sprint(typed)
	}
}
