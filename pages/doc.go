// Package pages partitions an ordered record list into fixed-capacity
// pages.
//
// [Allocate] binds every record to exactly one [model.CardSlot], in input
// order, using a [Slotter] (normally a *layout.Grid) for geometry:
//
//	grid := layout.MustGrid(config.Default())
//	sheet := pages.Allocate(records, grid)
//
// For N records and capacity P the result has ceil(N/P) pages; every page
// but the last is full and the last holds the remainder without padding.
// Allocation never filters or reorders; search and filtering happen
// upstream.
package pages
