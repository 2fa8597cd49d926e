// Package serialize turns model documents back into CML text.
//
// Print renders a document canonically. Serializer compares a document set
// before and after a refactoring: root elements whose canonical print did
// not change keep their original text, changed ones are reprinted and new
// ones are inserted after the last element of the same section. The result
// is re-read and diffed against the original text into minimal edits.
//
// Before any text is produced every reference of the new set is resolved
// again by the name that would be printed. Names that would resolve to no
// element, to several elements, or to a different element are reported
// together as a diagnostic.SerializationConflict and no edits are returned.
package serialize
