// Package tabular renders report tables as HTML fragments or XLSX workbooks.
package tabular

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a rectangular report: a header row plus string cells. Every row
// must have len(Columns) cells.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// AppendRow adds a row, padding or truncating it to the column count.
func (t *Table) AppendRow(cells ...string) {
	row := make([]string, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// HTML renders the table as an HTML fragment suitable for embedding in a
// report page. Cell text is escaped. The class attribute holds the given
// CSS classes, defaulting to "report-table" when none are passed.
func (t *Table) HTML(classes ...string) string {
	if len(classes) == 0 {
		classes = []string{"report-table"}
	}

	var b strings.Builder
	b.WriteString(`<table class="` + html.EscapeString(strings.Join(classes, " ")) + `">` + "\n<thead>\n<tr>")
	for _, col := range t.Columns {
		b.WriteString("<th>")
		b.WriteString(html.EscapeString(col))
		b.WriteString("</th>")
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range t.Rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>")
			b.WriteString(html.EscapeString(cell))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>")
	return b.String()
}

// WriteXLSX writes the table as a single-sheet workbook.
func (t *Table) WriteXLSX(w io.Writer) error {
	return WriteWorkbook(w, []*Table{t})
}

// WriteWorkbook writes several tables as one workbook, one sheet per table.
func WriteWorkbook(w io.Writer, tables []*Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		sheet := t.Name
		if sheet == "" {
			sheet = fmt.Sprintf("Sheet%d", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("new sheet %s: %w", sheet, err)
			}
		}

		header := make([]interface{}, len(t.Columns))
		for j, col := range t.Columns {
			header[j] = col
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for r, row := range t.Rows {
			cells := make([]interface{}, len(row))
			for j, cell := range row {
				cells[j] = cell
			}
			addr, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
				return fmt.Errorf("write row %d: %w", r, err)
			}
		}
	}

	return f.Write(w)
}
