package pages

import "github.com/tsawler/cardsheet/model"

// Slotter supplies the geometry for slot indices within a page.
type Slotter interface {
	Capacity() int
	Position(i int) (row, col int)
	Slot(i int) model.BBox
}

// Count returns the number of pages needed for n records at the given
// capacity.
func Count(n, capacity int) int {
	if n <= 0 || capacity <= 0 {
		return 0
	}
	return (n + capacity - 1) / capacity
}

// Allocate groups records into pages of s.Capacity() slots, preserving
// input order. An empty record list yields no pages.
func Allocate(records []model.StudentRecord, s Slotter) []model.Page {
	capacity := s.Capacity()
	result := make([]model.Page, Count(len(records), capacity))

	for i, rec := range records {
		pageIdx := i / capacity
		pos := i % capacity
		row, col := s.Position(pos)

		page := &result[pageIdx]
		if page.Slots == nil {
			page.Index = pageIdx
			page.Slots = make([]model.CardSlot, 0, min(capacity, len(records)-pageIdx*capacity))
		}
		page.Slots = append(page.Slots, model.CardSlot{
			Page:   pageIdx,
			Index:  pos,
			Row:    row,
			Col:    col,
			Box:    s.Slot(pos),
			Record: rec,
		})
	}

	return result
}

// Distribution returns the number of cards on each page.
func Distribution(pages []model.Page) []int {
	counts := make([]int, len(pages))
	for i, p := range pages {
		counts[i] = p.Len()
	}
	return counts
}
