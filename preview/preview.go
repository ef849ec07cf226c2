// Package preview renders paginated cards as an HTML page.
//
// The preview is paginated with the same grid as PDF generation, so a
// card's page and slot match what will be printed.
package preview

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/cardsheet/config"
	"github.com/tsawler/cardsheet/model"
	"github.com/tsawler/cardsheet/pages"
)

// Title is the document title of every preview.
const Title = "Student Card Preview"

// EmptyMessage is shown when no record matches.
const EmptyMessage = "No matching cards found"

const stylesheet = `body{font-family:Helvetica,Arial,sans-serif;background:#eee}
.page{background:#fff;margin:1em auto;padding:1em;width:210mm;display:grid;gap:8mm;grid-template-columns:repeat(var(--cols),85mm)}
.card{display:flex;height:30mm;border:0.5mm solid #0047ab}
.strip{background:#ffc0cb;width:38%;padding:1mm}
.panel{background:#f0fff0;flex:1;padding:1mm}
.id{font-weight:bold;font-size:17pt}`

// Banner formats the summary line above the pages.
func Banner(cards, pages int) string {
	return fmt.Sprintf("Preview: Showing %d cards across %d pages", cards, pages)
}

// Render writes the preview document for records to w. text supplies the
// strings printed on cards, as in the PDF.
func Render(w io.Writer, records []model.StudentRecord, grid pages.Slotter, text config.Text) error {
	return html.Render(w, Build(records, grid, text))
}

// Build returns the preview as a parsed document tree.
func Build(records []model.StudentRecord, grid pages.Slotter, text config.Text) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(withText(element(atom.Title), Title))
	head.AppendChild(withText(element(atom.Style), stylesheet))
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)

	laid := pages.Allocate(records, grid)
	if len(laid) == 0 {
		body.AppendChild(withText(element(atom.P, "class", "empty"), EmptyMessage))
		return doc
	}

	body.AppendChild(withText(element(atom.P, "class", "banner"), Banner(len(records), len(laid))))

	cols := 1
	for i := 0; i < grid.Capacity(); i++ {
		if _, c := grid.Position(i); c+1 > cols {
			cols = c + 1
		}
	}
	for _, p := range laid {
		section := element(atom.Section,
			"class", "page",
			"data-page", strconv.Itoa(p.Number()),
			"style", "--cols:"+strconv.Itoa(cols),
		)
		for _, slot := range p.Slots {
			section.AppendChild(card(slot, text))
		}
		body.AppendChild(section)
	}
	return doc
}

func card(slot model.CardSlot, text config.Text) *html.Node {
	rec := slot.Record
	n := element(atom.Div,
		"class", "card",
		"data-id", rec.ID,
		"style", fmt.Sprintf("grid-row:%d;grid-column:%d", slot.Row+1, slot.Col+1),
	)

	strip := element(atom.Div, "class", "strip")
	strip.AppendChild(withText(element(atom.Div, "class", "batch"), text.Batch(rec.Batch)))
	strip.AppendChild(withText(element(atom.Div, "class", "id"), rec.ID))
	n.AppendChild(strip)

	panel := element(atom.Div, "class", "panel")
	panel.AppendChild(withText(element(atom.Div, "class", "name"), rec.Name))
	panel.AppendChild(withText(element(atom.Div, "class", "quota"), rec.QuotaLine()))
	panel.AppendChild(withText(element(atom.Div, "class", "category"), rec.CategoryLine()))
	n.AppendChild(panel)
	return n
}

// element creates an element node; attrs are key, value pairs.
func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	return n
}
