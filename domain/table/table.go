package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/montanaflynn/stats"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a comma-separated file as published: header plus rows, unmodified
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnSummary describes a column whose cells are all numeric
type ColumnSummary struct {
	Column string
	Count  int
	Min    float64
	Max    float64
	Mean   float64
}

// Parse reads a UTF-8 CSV with a header row. Every row must have as many
// fields as the header. A header-only file yields a table without rows.
func Parse(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV has no header row")
	}

	for i, record := range records {
		for j, cell := range record {
			if !utf8.ValidString(cell) {
				return nil, fmt.Errorf("row %d column %d is not valid UTF-8", i+1, j+1)
			}
		}
	}

	return &Table{
		Columns: records[0],
		Rows:    records[1:],
	}, nil
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns the cells of column i
func (t *Table) Column(i int) []string {
	cells := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		cells[r] = row[i]
	}
	return cells
}

// Summaries computes count/min/max/mean for columns where every non-empty
// cell is a finite number. Columns with no numeric cells are skipped.
func (t *Table) Summaries() []ColumnSummary {
	var out []ColumnSummary
	for i, name := range t.Columns {
		values, ok := numeric(t.Column(i))
		if !ok || len(values) == 0 {
			continue
		}

		data := stats.Float64Data(values)
		lo, err := data.Min()
		if err != nil {
			continue
		}
		hi, err := data.Max()
		if err != nil {
			continue
		}
		mean, err := data.Mean()
		if err != nil {
			continue
		}
		rounded, err := stats.Round(mean, 4)
		if err != nil {
			rounded = mean
		}

		out = append(out, ColumnSummary{
			Column: name,
			Count:  len(values),
			Min:    lo,
			Max:    hi,
			Mean:   rounded,
		})
	}
	return out
}

func numeric(cells []string) ([]float64, bool) {
	values := make([]float64, 0, len(cells))
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		v, ok := ParseNumber(cell)
		if !ok {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}

// ParseNumber parses a trimmed cell as a finite float. Tokens such as
// "nan" or "Inf" are text, not numbers.
func ParseNumber(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
