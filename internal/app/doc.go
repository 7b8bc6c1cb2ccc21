// Package app wires one compiler invocation end to end: it resolves and
// reads the schema document, drives the schema compiler, runs the code
// emitters, and writes the generated artifacts, decoupled from any specific
// entrypoint.
package app
