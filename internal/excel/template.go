package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildTemplate produces a minimal two-row workbook: the canonical header
// labels and one illustrative example row. The result is the xlsx binary.
func BuildTemplate(sheetName string, headers, example []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if sheetName != "" && sheetName != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
	} else {
		sheetName = defaultSheet
	}

	if err := writeRow(f, sheetName, 1, headers); err != nil {
		return nil, err
	}
	if err := writeRow(f, sheetName, 2, example); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return fmt.Errorf("cell coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
