// Package render draws cards and page decorations onto a drawing surface.
//
// # Surfaces
//
// Drawing goes through the [Canvas] interface rather than a concrete PDF
// library, so the current page is an explicit value passed by the caller
// instead of hidden library state. A [Sheet] is a multi-page Canvas that
// can be serialized:
//
//   - [PDF] - gofpdf-backed sheet producing the final document
//   - [Recorder] - keeps every drawing operation in memory for inspection
//
// # Cards
//
// [CardRenderer] draws one card into a supplied bounding box: two
// decorative frames, a filled identity strip with rotated batch and
// identity text, a filled detail panel with the wrapped name and category
// lines, and a scannable code in the bottom-right corner. The code image
// is requested from a [scancode.Generator] before anything is drawn; if
// that fails the card fails and nothing is drawn for it.
//
// # Page decorations
//
// [DrawWatermark], [DrawHeader] and [DrawFooter] draw the per-page
// elements owned by the document assembler.
package render
