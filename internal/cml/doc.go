// Package cml reads Context Mapping Language documents into unlinked
// model documents.
//
// The reader covers the CML subset the serializer prints: imports, the
// context map with its relationship arrows, bounded contexts with modules,
// aggregates and domain objects, domains and subdomains, use cases and
// user stories, stakeholders and value registers. References are returned
// as name references; linking is done by package resolve.
//
// For every root element the byte span it was read from is recorded in
// ContextMappingModel.Spans, so unchanged elements can be written back
// verbatim.
package cml
