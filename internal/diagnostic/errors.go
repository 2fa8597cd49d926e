package diagnostic

import (
	"fmt"
	"strings"
)

// LinkError reports a cross reference that could not be resolved.
type LinkError struct {
	// Symbol is the unresolved name.
	Symbol string
	// Expected is the kind of element the reference must target.
	Expected string
	// Field names the reference, e.g. "exposedAggregates".
	Field string
	// Document is the URI of the document holding the reference.
	Document string
	Line     int
	Column   int
	// Ambiguous is set when the name matched more than one element.
	Ambiguous bool
	// Suggestions lists similar names that do resolve.
	Suggestions []string
}

func (e *LinkError) Error() string {
	what := "cannot resolve"
	if e.Ambiguous {
		what = "ambiguous"
	}

	msg := fmt.Sprintf("%s:%d:%d: %s %s reference %q (%s)", e.Document, e.Line, e.Column, what, e.Expected, e.Symbol, e.Field)
	if len(e.Suggestions) > 0 {
		msg += "; did you mean " + strings.Join(e.Suggestions, ", ") + "?"
	}

	return msg
}

// LinkErrors is every LinkError found while linking one document set.
type LinkErrors []*LinkError

func (e LinkErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, le := range e {
		parts = append(parts, le.Error())
	}

	return fmt.Sprintf("%d unresolved reference(s): %s", len(e), strings.Join(parts, "; "))
}

// Unwrap exposes the individual link errors to errors.As.
func (e LinkErrors) Unwrap() []error {
	out := make([]error, 0, len(e))
	for _, le := range e {
		out = append(out, le)
	}

	return out
}

// PreconditionViolation reports that a refactoring input broke an
// assumption of the command (a required element is missing, or has the
// wrong shape).
type PreconditionViolation struct {
	// Command is the refactoring name.
	Command string
	// Assumption is the violated assumption in plain words.
	Assumption string
	// Suggestions lists similar element names.
	Suggestions []string
}

func (e *PreconditionViolation) Error() string {
	msg := fmt.Sprintf("%s: precondition violated: %s", e.Command, e.Assumption)
	if len(e.Suggestions) > 0 {
		msg += "; did you mean " + strings.Join(e.Suggestions, ", ") + "?"
	}

	return msg
}

// Violation builds a PreconditionViolation with a formatted assumption.
func Violation(command, format string, args ...any) *PreconditionViolation {
	return &PreconditionViolation{Command: command, Assumption: fmt.Sprintf(format, args...)}
}

// SerializationConflict reports every reason a mutated document set
// cannot be printed unambiguously. No document of the batch is written.
type SerializationConflict struct {
	Reasons []Diagnostic
}

func (e *SerializationConflict) Error() string {
	parts := make([]string, 0, len(e.Reasons))
	for _, r := range e.Reasons {
		parts = append(parts, r.String())
	}

	return fmt.Sprintf("serialization conflict (%d reason(s)): %s", len(e.Reasons), strings.Join(parts, "; "))
}

// Conflict returns a SerializationConflict for the error diagnostics,
// or nil when there are none.
func (d *Diagnostics) Conflict() *SerializationConflict {
	if d.IsValid() {
		return nil
	}

	return &SerializationConflict{Reasons: append([]Diagnostic{}, d.Errors...)}
}
