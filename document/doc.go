// Package document implements the semantic document model and its object
// arena.
//
// # Overview
//
// A log entry is represented, before any physical layout happens, as a tree
// of typed nodes: headers, messages, errors, boxes, indentation wrappers,
// rows, maps and lists. Formatters populate the tree, decorators transform
// it in place, and the layout engine consumes it read-only.
//
// # Node model
//
// Node is a closed tagged union: one struct, a Kind discriminant, and a
// documented field-per-variant convention. The layout engine switches over
// Kind exhaustively, which keeps "what does this node mean physically" in
// one reviewable place instead of scattered across virtual methods.
//
// # Arena lifecycle
//
// Every node, document and physical line comes from an Arena and returns to
// it:
//
//	doc := arena.CheckoutDocument(entry)
//	doc.Append(arena.NewHeader("…", segment.TagHeader))
//	// … decorate, lay out, encode …
//	arena.ReleaseDocument(doc)
//
// Release order is strictly bottom-up so a pooled parent never retains a
// live child. Double release panics; use-after-release is a programmer
// error the pool does not guard against on the hot path.
//
// # Trade-offs
//
// Free lists grow without eviction. The steady-state allocation count is
// zero; the memory high-watermark tracks the caller's peak concurrency.
package document
