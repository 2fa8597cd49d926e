package resolve

import (
	"strings"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/diagnostic"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/match"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

// Link binds every unlinked name reference of the set. Names are global
// in the set, except exposed aggregates, which are looked up in the
// upstream context first, and repeated domain object names, which resolve
// inside the referencing bounded context or subdomain.
//
// A strict reference that matches no node or more than one node is a
// LinkError; all of them are returned together. Optional references that
// do not match exactly one node stay unlinked.
func Link(set *model.Set) error {
	ix := model.NewIndex(set)

	var errs diagnostic.LinkErrors

	for _, slot := range set.RefSlots(ix) {
		if slot.Ref.IsLinked() {
			continue
		}

		candidates := ix.Lookup(slot.Ref.Name(), slot)
		if len(candidates) == 1 {
			slot.Ref.Bind(candidates[0])
			continue
		}

		if slot.Ref.IsOptional() {
			continue
		}

		errs = append(errs, &diagnostic.LinkError{
			Symbol:      slot.Ref.Name(),
			Expected:    kindNames(slot.Kinds),
			Field:       slot.Field,
			Document:    slot.Document.URI,
			Line:        slot.Ref.At().Line,
			Column:      slot.Ref.At().Column,
			Ambiguous:   len(candidates) > 1,
			Suggestions: match.Suggest(slot.Ref.Name(), ix.Names(slot.Kinds...), match.DefaultMaxSuggestions),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func kindNames(kinds []model.Kind) string {
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.String())
	}

	return strings.Join(names, " or ")
}
