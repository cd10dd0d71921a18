package excel

import "github.com/xuri/excelize/v2"

// Brand colours.
const (
	navy      = "1E3347"
	orange    = "D4721A"
	white     = "FFFFFF"
	rowLight  = "F4F6F9"
	borderHex = "DDE3EC"
	sectionBG = "EEF1F5"
)

type styles struct {
	title      int
	coverTitle int
	accent     int
	metaLabel  int
	metaValue  int
	kvLabel    int
	kvValue    int
	header     int
	dataEven   int
	dataOdd    int
	sectionHdr int
	gapsTitle  int
	gapEven    int
	gapOdd     int
	conflict   int
	muted      int
}

func fill(hex string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hex}}
}

func thinBorder() []excelize.Border {
	var borders []excelize.Border
	for _, side := range []string{"left", "right", "top", "bottom"} {
		borders = append(borders, excelize.Border{Type: side, Color: borderHex, Style: 1})
	}
	return borders
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error

	mk := func(s *excelize.Style) int {
		if err != nil {
			return 0
		}
		var id int
		id, err = f.NewStyle(s)
		return id
	}

	st.title = mk(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 13, Color: white, Family: "Calibri"},
		Fill:      fill(navy),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	st.coverTitle = mk(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: white, Family: "Calibri"},
		Fill:      fill(navy),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	st.accent = mk(&excelize.Style{Fill: fill(orange)})
	st.metaLabel = mk(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10, Color: navy, Family: "Calibri"},
		Fill:      fill(sectionBG),
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	st.metaValue = mk(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Family: "Calibri"},
		Fill:      fill(sectionBG),
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	st.kvLabel = mk(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10, Color: navy, Family: "Calibri"},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	st.kvValue = mk(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Family: "Calibri"},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	st.header = mk(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10, Color: white, Family: "Calibri"},
		Fill:      fill(navy),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	})
	st.dataEven = mk(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Family: "Calibri"},
		Fill:      fill(rowLight),
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thinBorder(),
	})
	st.dataOdd = mk(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Family: "Calibri"},
		Fill:      fill(white),
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thinBorder(),
	})
	st.sectionHdr = mk(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: white, Family: "Calibri"},
		Fill:      fill(orange),
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	st.gapsTitle = mk(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: white, Family: "Calibri"},
		Fill:      fill(navy),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	st.gapEven = mk(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Family: "Calibri"},
		Fill:      fill(rowLight),
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	st.gapOdd = mk(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Family: "Calibri"},
		Fill:      fill(white),
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	st.conflict = mk(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Color: "CC0000", Family: "Calibri"},
		Fill:      fill("FFF3F3"),
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	st.muted = mk(&excelize.Style{
		Font: &excelize.Font{Size: 10, Color: "999999", Family: "Calibri"},
	})

	return st, err
}
