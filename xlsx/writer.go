package xlsx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>
<Override PartName="/xl/worksheets/sheet1.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>
</Types>`

// Write stores rows as a single-sheet workbook. Every value is written as
// an inline string so identity numbers keep their leading zeros.
func Write(w io.Writer, sheetName string, rows [][]string) error {
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	zw := zip.NewWriter(w)

	parts := []struct {
		name string
		body string
	}{
		{partContentTypes, contentTypesXML},
		{partRootRels, relsXML("rId1", relTypeDocument, "xl/workbook.xml")},
		{partWorkbook, fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="%s" xmlns:r="%s"><sheets><sheet name="%s" sheetId="1" r:id="rId1"/></sheets></workbook>`,
			nsMain, nsDocRels, escape(sheetName))},
		{partWorkbookRels, relsXML("rId1", relTypeSheet, "worksheets/sheet1.xml")},
		{"xl/worksheets/sheet1.xml", worksheet(rows)},
	}
	for _, p := range parts {
		fw, err := zw.Create(p.name)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(fw, p.body); err != nil {
			return err
		}
	}
	return zw.Close()
}

func relsXML(id, typ, target string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="%s"><Relationship Id="%s" Type="%s" Target="%s"/></Relationships>`,
		nsPackageRels, id, typ, target)
}

func worksheet(rows [][]string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	fmt.Fprintf(&b, `<worksheet xmlns="%s"><sheetData>`, nsMain)
	for r, row := range rows {
		fmt.Fprintf(&b, `<row r="%d">`, r+1)
		for c, v := range row {
			if v == "" {
				continue
			}
			fmt.Fprintf(&b, `<c r="%s" t="inlineStr"><is><t>%s</t></is></c>`, CellRef(c, r), escape(v))
		}
		b.WriteString(`</row>`)
	}
	b.WriteString(`</sheetData></worksheet>`)
	return b.String()
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
