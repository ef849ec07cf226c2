// Package model provides the data structures shared by every stage of card
// sheet generation.
//
// Records flow in as [StudentRecord] values, are bound to [CardSlot]
// positions grouped into [Page] values, and leave as a finished [Document].
//
// # Geometry
//
// All coordinates are in document length units (millimetres for the
// default A4 sheet) with the origin at the top-left corner of the page and
// Y growing downwards, matching the drawing surface:
//
//   - [Point] - 2D point
//   - [BBox] - axis-aligned box with edge, containment and inset helpers
//
// # Ownership
//
// A [Document] is built by exactly one generation call and handed to the
// caller once, when it is complete. Nothing in this package is safe for
// concurrent mutation.
package model
