// Package docdex answers natural-language queries against third-party
// library documentation. It discovers documentation sites on demand, crawls
// them with a bounded breadth-first traversal, chunks the cleaned content,
// and indexes the result into named vector collections for semantic search.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, hnsw/, sqlite/).
package docdex
