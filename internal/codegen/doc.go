// Package codegen renders the generated artifacts from a validated schema
// model: the record layout header, the bounds-checked field setters, the
// fail-soft parse handler, the defaults restorer, the serializer, and the
// machine-readable schema manifest.
//
// Every emitter is a pure function of the model. Determinism is a hard
// contract: identical models produce byte-identical text, ordered solely by
// section declaration order and per-section entry order.
package codegen
