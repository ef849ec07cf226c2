// Package assemble drives a complete card sheet generation pass.
//
// An [Assembler] is built once from a configuration and a code generator
// and may be reused for many Generate calls. Each call runs a strictly
// sequential state machine:
//
//	Initializing -> EmittingCard(i) -> [PageBoundary -> EmittingCard(i)]... -> Finalizing -> Complete
//	                       \-> Failed
//
// Initializing creates the sheet and draws the first page's watermark and
// header. EmittingCard renders one card and waits for its code image.
// PageBoundary starts a new page with a watermark and no header.
// Finalizing revisits every page to add the "Page X of N" footer. Complete
// returns the finished [model.Document].
//
// Any card failure moves the run to Failed: the partly drawn sheet is
// discarded and a single *[GenerationError] is returned. There are no
// retries; callers re-run the whole record list.
//
// An empty record list is a precondition violation ([ErrNoRecords]) and is
// rejected before the state machine starts.
package assemble
