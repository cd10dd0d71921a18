// Package excel renders extraction documents as branded XLSX workbooks.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"bidtab/internal/domain"
)

// builder wraps an excelize file and latches the first write error so sheet
// code can stay linear.
type builder struct {
	f   *excelize.File
	st  styles
	err error
}

func (b *builder) setCell(sheet string, col, row int, v any, style int) {
	if b.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		b.err = err
		return
	}
	if err := b.f.SetCellValue(sheet, cell, v); err != nil {
		b.err = err
		return
	}
	if style != 0 {
		b.err = b.f.SetCellStyle(sheet, cell, cell, style)
	}
}

// merge merges the range and applies the style across it so fills cover all
// merged cells, not just the anchor.
func (b *builder) merge(sheet string, c1, r1, c2, r2, style int) {
	if b.err != nil {
		return
	}
	start, err := excelize.CoordinatesToCellName(c1, r1)
	if err != nil {
		b.err = err
		return
	}
	end, err := excelize.CoordinatesToCellName(c2, r2)
	if err != nil {
		b.err = err
		return
	}
	if err := b.f.MergeCell(sheet, start, end); err != nil {
		b.err = err
		return
	}
	if style != 0 {
		b.err = b.f.SetCellStyle(sheet, start, end, style)
	}
}

func (b *builder) rowHeight(sheet string, row int, height float64) {
	if b.err != nil {
		return
	}
	b.err = b.f.SetRowHeight(sheet, row, height)
}

func (b *builder) colWidth(sheet string, col int, width float64) {
	if b.err != nil {
		return
	}
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		b.err = err
		return
	}
	b.err = b.f.SetColWidth(sheet, name, name, width)
}

func (b *builder) setWidths(sheet string, widths []float64) {
	for i, w := range widths {
		b.colWidth(sheet, i+1, w)
	}
}

// autosize approximates column widths from cell content length.
func (b *builder) autosize(sheet string, maxWidth float64) {
	if b.err != nil {
		return
	}
	rows, err := b.f.GetRows(sheet)
	if err != nil {
		b.err = err
		return
	}
	widths := map[int]float64{}
	for _, row := range rows {
		for c, v := range row {
			if w := float64(len(v)); w > widths[c] {
				widths[c] = w
			}
		}
	}
	for c, w := range widths {
		w += 2
		if w < 12 {
			w = 12
		}
		if w > maxWidth {
			w = maxWidth
		}
		b.colWidth(sheet, c+1, w)
	}
}

func (b *builder) freeze(sheet string, headerRow int) {
	if b.err != nil {
		return
	}
	b.err = b.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
		ActivePane:  "bottomLeft",
	})
}

// titleBlock writes the navy title bar, orange accent strip, and meta rows.
// Returns the next available row after a blank spacer.
func (b *builder) titleBlock(sheet, title string, meta map[string]any, nCols int) int {
	b.merge(sheet, 1, 1, nCols, 1, b.st.title)
	b.setCell(sheet, 1, 1, title, b.st.title)
	b.rowHeight(sheet, 1, 28)

	b.merge(sheet, 1, 2, nCols, 2, b.st.accent)
	b.rowHeight(sheet, 2, 4)

	row := 3
	for _, kv := range []struct{ label, value string }{
		{"Project:", Fmt(meta["project"])},
		{"Created By:", Fmt(meta["created_by"])},
		{"Generated:", Fmt(meta["generated_date"])},
	} {
		if kv.value == "" {
			continue
		}
		b.merge(sheet, 1, row, 4, row, b.st.metaLabel)
		b.merge(sheet, 5, row, nCols, row, b.st.metaValue)
		b.setCell(sheet, 1, row, kv.label, b.st.metaLabel)
		b.setCell(sheet, 5, row, kv.value, b.st.metaValue)
		row++
	}
	return row + 1
}

func (b *builder) headerRow(sheet string, columns []string, row int) {
	for c, label := range columns {
		b.setCell(sheet, c+1, row, label, b.st.header)
	}
	b.rowHeight(sheet, row, 22)
}

func (b *builder) dataRows(sheet string, columns []string, rows []any, startRow int, height float64) {
	for i, raw := range rows {
		rowData := asMap(raw)
		r := startRow + i
		style := b.st.dataOdd
		if i%2 == 0 {
			style = b.st.dataEven
		}
		for c, col := range columns {
			b.setCell(sheet, c+1, r, Fmt(rowData[col]), style)
		}
		b.rowHeight(sheet, r, height)
	}
}

// writeTableBlock writes a complete titled table on a sheet: title block,
// header row, zebra data rows, frozen panes. Nil colWidths autosizes.
func (b *builder) writeTableBlock(sheet string, tbl, meta map[string]any, colWidths []float64, nCols int) {
	columns := stringList(tbl["columns"])
	rows := asList(tbl["rows"])

	hdrRow := b.titleBlock(sheet, Fmt(tbl["title"]), meta, nCols)
	b.headerRow(sheet, columns, hdrRow)
	b.dataRows(sheet, columns, rows, hdrRow+1, 60)
	b.freeze(sheet, hdrRow)

	if colWidths != nil {
		b.setWidths(sheet, colWidths)
	} else {
		b.autosize(sheet, 60)
	}
}

func stringList(v any) []string {
	items := asList(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// tableOr returns the named table section, or a one-row placeholder when the
// extraction produced nothing for it.
func tableOr(doc domain.ExtractionDocument, key, fallbackTitle string) map[string]any {
	if tbl := doc.Section(key); len(tbl) > 0 {
		return tbl
	}
	return map[string]any{
		"title":   fallbackTitle,
		"columns": []any{"Note"},
		"rows":    []any{map[string]any{"Note": "No data extracted."}},
	}
}

// BuildWorkbookV2 renders the six-tab branded workbook:
// Cover Page, T1 Geotech, T2 Flatwork-Foundation, T3 Structural,
// Quantity Estimation, and Gaps & Assumptions.
func BuildWorkbookV2(doc domain.ExtractionDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("workbook styles: %w", err)
	}
	b := &builder{f: f, st: st}

	meta := doc.Section("meta")
	header := doc.Section("header")
	cover := doc.Section("cover_page")

	coverIdx, err := f.NewSheet("Cover Page")
	if err != nil {
		return nil, err
	}
	b.writeCoverPage("Cover Page", cover, meta)

	if _, err := f.NewSheet("T1 - Geotech"); err != nil {
		return nil, err
	}
	b.writeGeotechSheet("T1 - Geotech", tableOr(doc, "table1", "Table 1 - Geotechnical Technical Requirements"), header, meta)

	if _, err := f.NewSheet("T2 - Flatwork-Foundation"); err != nil {
		return nil, err
	}
	b.writeTableBlock("T2 - Flatwork-Foundation",
		tableOr(doc, "table2", "Table 2 - Flatwork/Foundation Technical Requirements"), meta,
		[]float64{22, 16, 14, 12, 14, 16, 16, 16, 28, 20, 20, 24, 20}, 13)

	if _, err := f.NewSheet("T3 - Structural"); err != nil {
		return nil, err
	}
	b.writeTableBlock("T3 - Structural",
		tableOr(doc, "table3", "Table 3 - Structural Technical Requirements"), meta,
		[]float64{24, 18, 20, 24, 20, 28, 22}, 7)

	if _, err := f.NewSheet("Quantity Estimation"); err != nil {
		return nil, err
	}
	b.writeQuantities("Quantity Estimation", doc.Section("quantity_estimation"), meta)

	if gaps := doc.Gaps(); len(gaps) > 0 {
		if _, err := f.NewSheet("Gaps & Assumptions"); err != nil {
			return nil, err
		}
		b.writeGaps("Gaps & Assumptions", gaps)
	}

	if b.err != nil {
		return nil, fmt.Errorf("workbook render: %w", b.err)
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	f.SetActiveSheet(coverIdx)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("workbook save: %w", err)
	}
	return buf.Bytes(), nil
}

// writeGeotechSheet writes Table 1 with its project site information block
// between the title and the table header.
func (b *builder) writeGeotechSheet(sheet string, tbl, header, meta map[string]any) {
	const nCols = 11
	row := b.titleBlock(sheet, Fmt(tbl["title"]), meta, nCols)

	if len(header) > 0 {
		b.merge(sheet, 1, row, nCols, row, b.st.sectionHdr)
		b.setCell(sheet, 1, row, "PROJECT SITE INFORMATION", b.st.sectionHdr)
		row++
		for _, kv := range []struct{ label, value string }{
			{"Project Address", Fmt(header["project_address"])},
			{"County", Fmt(header["county"])},
			{"City", Fmt(header["city"])},
			{"Referenced Docs", joinList(header["referenced_documents"], ", ")},
		} {
			b.merge(sheet, 1, row, 3, row, b.st.metaLabel)
			b.merge(sheet, 4, row, nCols, row, b.st.metaValue)
			b.setCell(sheet, 1, row, kv.label, b.st.metaLabel)
			b.setCell(sheet, 4, row, kv.value, b.st.metaValue)
			b.rowHeight(sheet, row, 18)
			row++
		}
		row++
	}

	columns := stringList(tbl["columns"])
	b.headerRow(sheet, columns, row)
	b.dataRows(sheet, columns, asList(tbl["rows"]), row+1, 60)
	b.freeze(sheet, row)
	b.setWidths(sheet, []float64{22, 18, 20, 14, 16, 16, 18, 28, 28, 28, 20})
}

func (b *builder) writeGaps(sheet string, gaps []string) {
	b.merge(sheet, 1, 1, 4, 1, b.st.gapsTitle)
	b.setCell(sheet, 1, 1, "Assumptions & Gaps Identified by AI", b.st.gapsTitle)
	b.rowHeight(sheet, 1, 26)

	for i, note := range gaps {
		row := i + 2
		style := b.st.gapOdd
		if row%2 == 0 {
			style = b.st.gapEven
		}
		b.setCell(sheet, 1, row, "• "+note, style)
		b.rowHeight(sheet, row, 40)
	}
	b.colWidth(sheet, 1, 120)
}

// BuildWorkbook renders the original three-table workbook, one sheet per
// table, used by the attachment endpoint.
func BuildWorkbook(doc domain.ExtractionDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("workbook styles: %w", err)
	}
	b := &builder{f: f, st: st}

	meta := doc.Section("meta")
	sheets := []struct {
		name, key, fallback string
	}{
		{"Table 1", "table1", "Table 1 - Field Testing Requirements"},
		{"Table 2", "table2", "Table 2 - Concrete Summary"},
		{"Table 3", "table3", "Table 3 - Reinforcement Summary"},
	}

	firstIdx := 0
	for i, s := range sheets {
		idx, err := f.NewSheet(s.name)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			firstIdx = idx
		}
		tbl := tableOr(doc, s.key, s.fallback)
		b.writeTableBlock(s.name, tbl, meta, nil, len(stringList(tbl["columns"])))
	}

	if b.err != nil {
		return nil, fmt.Errorf("workbook render: %w", b.err)
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	f.SetActiveSheet(firstIdx)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("workbook save: %w", err)
	}
	return buf.Bytes(), nil
}
