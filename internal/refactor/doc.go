// Package refactor implements the semantic refactorings of a linked CML
// model set.
//
// A Refactoring is a named command object. Check is a pure guard: nil means
// applicable, ErrNoTarget and ErrAlreadyApplied mean there is nothing to do,
// a *diagnostic.PreconditionViolation means the input breaks an assumption
// of the command. Refactor mutates the set held by the Context.
//
// The Engine runs a refactoring on a private clone of the set, validates the
// result and reports the changes it made; the caller's set is never touched.
// Commands are looked up by name with ordered string parameters through the
// Registry.
package refactor
