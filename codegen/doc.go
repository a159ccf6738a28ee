// Package codegen turns introspected table descriptors into deterministic,
// documented type declarations.
//
// The pipeline classifies every raw catalog type into a closed Family
// enumeration with a guaranteed fallback, maps families to target types,
// and emits one declaration per table in catalog order. Three targets are
// supported: TypeScript interfaces, Go structs (rendered with
// dave/jennifer and passed through goimports) and a GraphQL SDL document.
//
// Generate is the outer entry point: it drives a SchemaSource, renders the
// configured output layout (single concatenated document or one document
// per table plus an index) and captures any error into a structured Result
// instead of returning it, so multi-table runs can report failure without
// crashing a host process. Writing the rendered documents anywhere is the
// caller's job; the package never touches the filesystem.
package codegen
