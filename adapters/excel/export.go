package excel

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"maridash/domain/table"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the generated workbooks
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// maxSheetName is Excel's limit on sheet title length
const maxSheetName = 31

// Export writes tbl into a single-sheet workbook. Plain decimal cells are
// stored as numbers, everything else stays text as published.
func Export(tbl *table.Table, sheet string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	name := SheetName(sheet)
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(tbl.Columns))
	for i, col := range tbl.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for r, row := range tbl.Rows {
		values := make([]interface{}, len(row))
		for i, cell := range row {
			values[i] = cellValue(cell)
		}
		addr, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(name, addr, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}

	if len(tbl.Columns) > 0 {
		if err := f.SetPanes(name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return nil, fmt.Errorf("failed to freeze header: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// SheetName trims a name to what Excel accepts as a sheet title
func SheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, s)
	if runes := []rune(s); len(runes) > maxSheetName {
		s = string(runes[:maxSheetName])
	}
	if strings.TrimSpace(s) == "" {
		return "Sheet1"
	}
	return s
}

// cellValue stores a cell as a number only when writing the number back
// reproduces the cell, so "01234" or "1.50" keep their published text.
func cellValue(cell string) interface{} {
	v, ok := table.ParseNumber(cell)
	if !ok || strconv.FormatFloat(v, 'f', -1, 64) != strings.TrimSpace(cell) {
		return cell
	}
	return v
}
