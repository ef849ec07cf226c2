// Package layout computes where cards go on a page.
//
// The [Grid] maps a slot index to a card bounding box. It is a pure
// function of the configured page size, margin, card size, spacing and
// grid shape:
//
//	grid, err := layout.NewGrid(config.Default())
//	if err != nil {
//	    // the configured cards do not fit the page
//	}
//	box := grid.Slot(3) // row 1, column 1
//
// For slot i, row = (i mod capacity) / columns and col = (i mod capacity)
// mod columns. [NewGrid] rejects configurations where any slot would cross
// the page margin with [ErrGeometry]; a Grid that exists always satisfies
// x + cardWidth + margin <= pageWidth and the vertical analogue.
//
// # Text fitting
//
// [WrapName] implements the fixed character-count policy used for names
// on the card's detail panel.
package layout
