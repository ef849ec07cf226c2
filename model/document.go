package model

import (
	"bytes"
	"io"
	"time"
)

// Document represents a finished card sheet
type Document struct {
	Metadata Metadata
	Width    float64 // page width in document units
	Height   float64 // page height in document units
	Pages    []Page

	data []byte
}

// Metadata contains document-level information
type Metadata struct {
	Title        string
	Author       string
	Creator      string
	CreationDate time.Time
}

// NewDocument creates a document from its laid out pages and encoded bytes.
func NewDocument(width, height float64, pages []Page, data []byte) *Document {
	return &Document{
		Width:  width,
		Height: height,
		Pages:  pages,
		data:   data,
	}
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// CardCount returns the total number of cards across all pages
func (d *Document) CardCount() int {
	n := 0
	for _, p := range d.Pages {
		n += p.Len()
	}
	return n
}

// GetPage returns a page by number (1-indexed)
func (d *Document) GetPage(number int) *Page {
	if number < 1 || number > len(d.Pages) {
		return nil
	}
	return &d.Pages[number-1]
}

// Bytes returns the encoded document
func (d *Document) Bytes() []byte {
	return d.data
}

// Len returns the size of the encoded document in bytes
func (d *Document) Len() int {
	return len(d.data)
}

// WriteTo writes the encoded document to w
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return bytes.NewReader(d.data).WriteTo(w)
}
