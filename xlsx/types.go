package xlsx

import "encoding/xml"

const (
	nsMain          = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsDocRels       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	relTypeSheet    = nsDocRels + "/worksheet"
	relTypeDocument = nsDocRels + "/officeDocument"
)

// Well-known part names.
const (
	partContentTypes  = "[Content_Types].xml"
	partRootRels      = "_rels/.rels"
	partWorkbook      = "xl/workbook.xml"
	partWorkbookRels  = "xl/_rels/workbook.xml.rels"
	partSharedStrings = "xl/sharedStrings.xml"
)

// xl/workbook.xml
type workbookXML struct {
	XMLName xml.Name      `xml:"workbook"`
	Sheets  []sheetRefXML `xml:"sheets>sheet"`
}

type sheetRefXML struct {
	Name string `xml:"name,attr"`
	RID  string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

// xl/worksheets/sheetN.xml
type worksheetXML struct {
	XMLName xml.Name `xml:"worksheet"`
	Rows    []rowXML `xml:"sheetData>row"`
}

type rowXML struct {
	R     int       `xml:"r,attr"`
	Cells []cellXML `xml:"c"`
}

type cellXML struct {
	R  string        `xml:"r,attr"`
	T  string        `xml:"t,attr"`
	V  string        `xml:"v"`
	Is *inlineStrXML `xml:"is"`
}

// Inline and shared strings share the plain-or-runs shape.
type inlineStrXML struct {
	T    string   `xml:"t"`
	Runs []string `xml:"r>t"`
}

func (s inlineStrXML) text() string {
	if len(s.Runs) == 0 {
		return s.T
	}
	out := s.T
	for _, r := range s.Runs {
		out += r
	}
	return out
}

// xl/sharedStrings.xml
type sharedStringsXML struct {
	XMLName xml.Name       `xml:"sst"`
	Items   []inlineStrXML `xml:"si"`
}

// *.rels
type relationshipsXML struct {
	XMLName xml.Name          `xml:"Relationships"`
	Rels    []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}
