package model

// CardSlot is the position assigned to one record on one page.
// Slots are derived from their owning Page and never stored on their own.
type CardSlot struct {
	Page   int  // 0-indexed page the slot belongs to
	Index  int  // position within the page, i mod capacity
	Row    int  // Index / columns
	Col    int  // Index mod columns
	Box    BBox // card bounds in page coordinates
	Record StudentRecord
}

// Page represents one sheet of cards
type Page struct {
	Index int        // 0-indexed
	Slots []CardSlot // at most capacity slots, in input order
}

// Number returns the 1-indexed page number
func (p Page) Number() int {
	return p.Index + 1
}

// Len returns the number of cards on the page
func (p Page) Len() int {
	return len(p.Slots)
}

// Records returns the records bound to the page, in slot order
func (p Page) Records() []StudentRecord {
	records := make([]StudentRecord, len(p.Slots))
	for i, s := range p.Slots {
		records[i] = s.Record
	}
	return records
}
