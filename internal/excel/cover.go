package excel

// writeCoverPage renders the summary tab: preparer block, project
// information, referenced documents, and the list of generated tables.
func (b *builder) writeCoverPage(sheet string, cover, meta map[string]any) {
	const nCols = 8

	b.merge(sheet, 1, 1, nCols, 1, b.st.coverTitle)
	b.setCell(sheet, 1, 1, "Project Inspection and Testing Summary", b.st.coverTitle)
	b.rowHeight(sheet, 1, 40)

	b.merge(sheet, 1, 2, nCols, 2, b.st.accent)
	b.rowHeight(sheet, 2, 6)

	row := 3

	sectionHeader := func(label string) {
		b.merge(sheet, 1, row, nCols, row, b.st.sectionHdr)
		b.setCell(sheet, 1, row, label, b.st.sectionHdr)
		b.rowHeight(sheet, row, 20)
		row++
	}

	infoRow := func(label, value string) {
		b.merge(sheet, 1, row, 2, row, b.st.metaLabel)
		b.merge(sheet, 3, row, nCols, row, b.st.metaValue)
		b.setCell(sheet, 1, row, label, b.st.metaLabel)
		b.setCell(sheet, 3, row, value, b.st.metaValue)
		b.rowHeight(sheet, row, 18)
		row++
	}

	bulletRow := func(text string) {
		b.merge(sheet, 1, row, nCols, row, 0)
		style := b.st.gapOdd
		if row%2 == 0 {
			style = b.st.gapEven
		}
		b.setCell(sheet, 1, row, "• "+text, style)
		b.rowHeight(sheet, row, 18)
		row++
	}

	sectionHeader("PREPARED BY")
	infoRow("Name", Fmt(cover["created_by"]))
	infoRow("Company", Fmt(cover["company"]))
	infoRow("Phone", Fmt(cover["phone"]))
	infoRow("Email", Fmt(cover["email"]))
	row++

	sectionHeader("PROJECT INFORMATION")
	infoRow("Project Name", Fmt(meta["project"]))
	infoRow("Project Address", Fmt(cover["project_address"]))
	infoRow("County", Fmt(cover["county"]))
	infoRow("City", Fmt(cover["city"]))
	dateRun := Fmt(cover["date_run"])
	if dateRun == "" {
		dateRun = Fmt(meta["generated_date"])
	}
	infoRow("Date Generated", dateRun)
	row++

	sectionHeader("REFERENCED DOCUMENTS")
	if docs := asList(cover["referenced_documents"]); len(docs) > 0 {
		for _, doc := range docs {
			bulletRow(Fmt(doc))
		}
	} else {
		b.merge(sheet, 1, row, nCols, row, 0)
		b.setCell(sheet, 1, row, "No documents listed", b.st.muted)
		row++
	}
	row++

	sectionHeader("TABLES GENERATED")
	tables := asList(cover["tables_generated"])
	if len(tables) == 0 {
		tables = []any{
			"Geotechnical Requirements",
			"Flatwork/Foundation Requirements",
			"Structural Requirements",
			"Quantity Estimation",
		}
	}
	for _, t := range tables {
		bulletRow(Fmt(t))
	}

	b.colWidth(sheet, 1, 22)
	b.colWidth(sheet, 2, 22)
	for c := 3; c <= nCols; c++ {
		b.colWidth(sheet, c, 18)
	}
}
