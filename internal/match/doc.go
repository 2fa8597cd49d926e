// Package match provides name normalization, Levenshtein distance and
// "did you mean" ranking for CML element names.
//
// Key functions:
//   - NormalizeName: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes the edit distance between two names
//   - Suggest: ranks known names against a name that did not resolve
package match
