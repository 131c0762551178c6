// Package nezamdoc harvests legal documents from JavaScript-rendered
// government portals. It discovers the items a portal publishes, extracts
// and cleans the content of each one, and persists the results as
// right-to-left Word documents, recording per-item outcomes along the way.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/).
package nezamdoc
