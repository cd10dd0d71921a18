package excel

import "fmt"

// writeQuantities renders the Quantity Estimation tab: lot size, foundation
// elements, flatwork totals, utilities, structural element table, and any
// validation conflicts.
func (b *builder) writeQuantities(sheet string, qty, meta map[string]any) {
	const nCols = 7
	row := b.titleBlock(sheet, "Quantity Estimation", meta, nCols)

	sectionHdr := func(label string) {
		b.merge(sheet, 1, row, nCols, row, b.st.sectionHdr)
		b.setCell(sheet, 1, row, label, b.st.sectionHdr)
		b.rowHeight(sheet, row, 20)
		row++
	}

	kv := func(label string, value any) {
		labelStyle, valueStyle := b.st.kvLabel, b.st.kvValue
		if row%2 == 0 {
			labelStyle, valueStyle = b.st.metaLabel, b.st.metaValue
		}
		b.merge(sheet, 1, row, 3, row, labelStyle)
		b.merge(sheet, 4, row, nCols, row, valueStyle)
		b.setCell(sheet, 1, row, label, labelStyle)
		b.setCell(sheet, 4, row, Fmt(value), valueStyle)
		b.rowHeight(sheet, row, 22)
		row++
	}

	sectionHdr("SECTION A — LOT SIZE")
	lot := asMap(qty["section_a_lot_size"])
	kv("Total Lot Size (sqft)", lot["total_sqft"])
	kv("Total Lot Size (acres)", lot["total_acres"])
	kv("Source", lot["source"])
	row++

	sectionHdr("SECTION B — FOUNDATION CONSTRUCTION ELEMENTS")
	foundations := asMap(qty["section_b_foundations"])

	if drilled := asList(foundations["drilled_shafts"]); len(drilled) > 0 {
		kv("Drilled Shafts", fmt.Sprintf("%d group(s)", len(drilled)))
		for _, raw := range drilled {
			ds := asMap(raw)
			kv("  Count × Depth", fmt.Sprintf("%s shafts @ %s", orUnknown(ds["count"]), orUnknown(ds["depth"])))
		}
	}
	if footings := asList(foundations["spread_footings"]); len(footings) > 0 {
		kv("Spread Footings", fmt.Sprintf("%d size(s)", len(footings)))
		for _, raw := range footings {
			sf := asMap(raw)
			kv("  "+Fmt(sf["size_label"]), fmt.Sprintf("%s ea | %s × %s × %s",
				orUnknown(sf["count"]), orUnknown(sf["width"]), orUnknown(sf["length"]), orUnknown(sf["thickness"])))
		}
	}
	if lin := asList(foundations["linear_footings"]); len(lin) > 0 {
		kv("Linear Footings", fmt.Sprintf("%d type(s)", len(lin)))
		for _, raw := range lin {
			lf := asMap(raw)
			kv("  Linear Footing", fmt.Sprintf("%s ea, L=%s, W=%s, D=%s",
				orUnknown(lf["count"]), orUnknown(lf["length"]), orUnknown(lf["width"]), orUnknown(lf["depth"])))
		}
	}
	if truthy(foundations["conflicts"]) {
		kv("⚠ Conflicts", foundations["conflicts"])
	}
	row++

	sectionHdr("SECTION C — TOTAL FLATWORK CONSTRUCTION ELEMENTS")
	flat := asMap(qty["section_c_flatwork"])
	kv("Total Pavement (sqft)", flat["total_pavement_sqft"])
	kv("Total Foundation Floor (sqft)", flat["total_foundation_floor_sqft"])
	kv("Total Building (sqft)", flat["total_building_sqft"])
	kv("Source", flat["source"])
	if truthy(flat["conflicts"]) {
		kv("⚠ Conflicts", flat["conflicts"])
	}
	row++

	sectionHdr("SECTION D — TOTAL UTILITIES WORK")
	util := asMap(qty["section_d_utilities"])
	kv("Water Line (LF)", util["water_line_lf"])
	kv("Storm Sewer (LF)", util["storm_sewer_lf"])
	kv("Sanitary Sewer (LF)", util["sanitary_sewer_lf"])
	kv("Utility Depth", util["utility_depth"])
	kv("Source", util["source"])
	row++

	sectionHdr("SECTION E — TOTAL STRUCTURAL ELEMENTS")
	structCols := []string{
		"Structural Element", "Material Type", "Quantity", "Unit",
		"Calculation Basis", "Source",
	}
	colMap := map[string]string{
		"Structural Element": "structural_element",
		"Material Type":      "material_type",
		"Quantity":           "quantity",
		"Unit":               "unit",
		"Calculation Basis":  "calculation_basis",
		"Source":             "source",
	}
	b.headerRow(sheet, structCols, row)
	row++

	items := asList(qty["section_e_structural"])
	mapped := make([]any, 0, len(items))
	for _, raw := range items {
		item := asMap(raw)
		rowData := map[string]any{}
		for _, col := range structCols {
			rowData[col] = item[colMap[col]]
		}
		mapped = append(mapped, rowData)
	}
	b.dataRows(sheet, structCols, mapped, row, 40)
	row += len(mapped)

	if conflicts := asList(qty["conflicts"]); len(conflicts) > 0 {
		row++
		sectionHdr("CONFLICTS / VALIDATION ISSUES")
		for _, conflict := range conflicts {
			b.merge(sheet, 1, row, nCols, row, b.st.conflict)
			b.setCell(sheet, 1, row, "⚠ "+Fmt(conflict), b.st.conflict)
			b.rowHeight(sheet, row, 30)
			row++
		}
	}

	b.setWidths(sheet, []float64{28, 20, 14, 14, 30, 24, 18})
}

func orUnknown(v any) string {
	if s := Fmt(v); s != "" {
		return s
	}
	return "?"
}
