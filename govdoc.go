// Package govdoc provides a domain-restricted retrieval gatekeeper for
// government sources. It decides whether a URL belongs to an authorized
// government domain before any content is fetched, caches verified documents
// on disk, and annotates every extraction result with a provenance footer or
// a rejection notice.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, pdf/, sqlite/, gemini/).
package govdoc
