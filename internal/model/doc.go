// Package model provides the in-memory graph of linked CML documents.
//
// Nodes are owned by exactly one parent through plain Go slices
// (parent-owns-children trees) and carry a stable ID that survives
// cloning. Cross references are Ref values: they hold the target ID
// and a cached name, and are resolved through an Index built over a Set.
//
// Key types:
//   - ContextMappingModel: one CML document and its root elements
//   - Set: the linked document set (a document plus its import closure)
//   - Ref: non-owning link to another node
//   - RefSlot: a located Ref together with the node kinds it may target
//   - Index: ID, parent and name lookups over a Set
package model
