// Package diagnostic provides structured diagnostics and the error types
// reported by the CML toolchain.
//
// Key capabilities:
//   - Collect-all diagnostics (errors, warnings, infos) per document/element
//   - LinkError for references that do not resolve after reading
//   - PreconditionViolation for refactoring inputs that break an assumption
//   - SerializationConflict carrying every reason a batch cannot be printed
package diagnostic
