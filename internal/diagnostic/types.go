package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Location is a place in a document. Line and Column are 1-based; zero
// means the position is not known.
type Location struct {
	Document string
	Line     int
	Column   int
}

// In returns the location of a whole document.
func In(document string) Location {
	return Location{Document: document}
}

// At returns a position in a document.
func At(document string, line, column int) Location {
	return Location{Document: document, Line: line, Column: column}
}

// String returns "document:line:column", dropping unknown parts.
func (l Location) String() string {
	switch {
	case l.Line == 0:
		return l.Document
	case l.Document == "":
		return fmt.Sprintf("line %d", l.Line)
	case l.Column == 0:
		return fmt.Sprintf("%s:%d", l.Document, l.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", l.Document, l.Line, l.Column)
	}
}

// Severity orders diagnostics by how much they block.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is one finding about a CML document or a refactoring input.
type Diagnostic struct {
	Severity Severity
	// Code is a stable snake_case identifier, e.g. "ambiguous_reference".
	Code    string
	Message string
	At      Location
	// Element names the model element, e.g. `Relationship "Feed"`.
	Element     string
	Suggestions []string
}

// String formats the diagnostic like a compiler message:
//
//	main.cml:4:2: Relationship "Feed": [ambiguous_reference] ... (did you mean X?)
func (d Diagnostic) String() string {
	var b strings.Builder

	if where := d.At.String(); where != "" {
		b.WriteString(where)
		b.WriteString(": ")
	}

	if d.Element != "" {
		b.WriteString(d.Element)
		b.WriteString(": ")
	}

	if d.Code != "" {
		fmt.Fprintf(&b, "[%s] ", d.Code)
	}

	b.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		b.WriteString(" (did you mean " + strings.Join(d.Suggestions, ", ") + "?)")
	}

	return b.String()
}

// Diagnostics collects every finding of one pass, split by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Add files d under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// Errorf adds an error with a formatted message.
func (d *Diagnostics) Errorf(at Location, element, code, format string, args ...any) {
	d.Add(Diagnostic{Severity: SeverityError, Code: code, Message: fmt.Sprintf(format, args...), At: at, Element: element})
}

// Warnf adds a warning with a formatted message.
func (d *Diagnostics) Warnf(at Location, element, code, format string, args ...any) {
	d.Add(Diagnostic{Severity: SeverityWarning, Code: code, Message: fmt.Sprintf(format, args...), At: at, Element: element})
}

// Infof adds an info with a formatted message.
func (d *Diagnostics) Infof(at Location, element, code, format string, args ...any) {
	d.Add(Diagnostic{Severity: SeverityInfo, Code: code, Message: fmt.Sprintf(format, args...), At: at, Element: element})
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge appends the findings of other.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid reports whether no error was found. Warnings do not count.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Codes returns the codes of the errors in the order they were found.
func (d *Diagnostics) Codes() []string {
	codes := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		codes = append(codes, e.Code)
	}

	return codes
}

// Error joins every error into one, or returns nil when valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}
