// Package excel decodes uploaded workbooks into plain text tables and
// generates the blank import templates offered for download.
//
// Only the first worksheet of a workbook is ever read. All cell values are
// treated as text; numeric and date interpretation happens downstream where
// the target field is known.
package excel

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ErrEmptySheet is returned when the first worksheet has no data rows.
var ErrEmptySheet = errors.New("worksheet has no data rows")

// PreviewRows is the number of rows returned by RawTable.Preview for
// display. It never limits how many rows an import iterates.
const PreviewRows = 100

// Row maps a header label to the cell text under it. Absent or blank cells
// are empty strings.
type Row map[string]string

// RawTable is the decoded first worksheet: the header row plus every data
// row, in sheet order.
type RawTable struct {
	Headers []string
	Rows    []Row
}

// Read decodes a workbook from r and returns its first worksheet as a
// RawTable. A corrupt workbook or a sheet without data rows is a fatal
// error; callers abort the request before any row is processed.
func Read(r io.Reader) (*RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) <= 1 {
		return nil, ErrEmptySheet
	}

	headers := make([]string, len(rows[0]))
	copy(headers, rows[0])

	table := &RawTable{
		Headers: headers,
		Rows:    make([]Row, 0, len(rows)-1),
	}

	for _, raw := range rows[1:] {
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(raw) {
				row[h] = raw[i]
			} else {
				row[h] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// Preview returns at most PreviewRows rows for display. The returned slice
// shares backing storage with the full row set.
func (t *RawTable) Preview() []Row {
	if len(t.Rows) <= PreviewRows {
		return t.Rows
	}
	return t.Rows[:PreviewRows]
}
