// Package schema is the compiler core: it walks an annotated settings-schema
// document line by line, enforces the grammar and the per-type semantic laws
// in one fail-fast pass, and builds the ordered, immutable model consumed by
// the `codegen` emitters.
//
// Every failure is an hcl.Diagnostic whose subject points at the offending
// 1-based source line; the first violated rule in document order is the one
// reported and no partial model ever escapes.
package schema
