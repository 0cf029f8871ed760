// Package diag defines the diagnostic model shared by the front-end and the
// driver.
//
// A Diagnostic carries a Severity, a stable numeric Code, a short message, a
// primary span and optional notes. Producers emit through a Reporter so that
// they stay decoupled from storage; BagReporter collects into a Bag, which
// can be sorted and deduplicated before rendering.
//
// Rendering lives in internal/diagfmt. This package performs no IO.
//
// Only errors are fatal for the normalizer: any SevError diagnostic in the
// bag after parsing aborts the invocation before a document is produced.
package diag
