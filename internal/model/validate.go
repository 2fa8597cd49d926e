package model

import (
	"fmt"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/diagnostic"
)

// Validate checks the structural invariants every refactoring must keep:
// no linked reference dangles or targets a node of the wrong kind, every
// strict reference is linked, each bounded context has at most one value
// register, and names are unique where CML resolves them (bounded
// contexts in the whole set, aggregates and modules in their context or
// module, domain objects in their aggregate).
func (s *Set) Validate() *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	ix := NewIndex(s)

	for _, slot := range s.RefSlots(ix) {
		where := fmt.Sprintf("%s %q", slot.Owner.NodeKind(), slot.Owner.NodeName())
		at := diagnostic.At(slot.Document.URI, slot.Ref.At().Line, slot.Ref.At().Column)

		if !slot.Ref.IsLinked() {
			if !slot.Ref.IsOptional() {
				res.Errorf(at, where, "unlinked_reference", "%s reference %q is not linked", slot.Field, slot.Ref.Name())
			}

			continue
		}

		target := ix.Node(slot.Ref.Target())
		if target == nil {
			res.Errorf(at, where, "dangling_reference", "%s reference %q points at a deleted node", slot.Field, slot.Ref.Name())
			continue
		}

		if !slot.Accepts(target.NodeKind()) {
			res.Errorf(at, where, "reference_kind_mismatch", "%s reference %q targets a %s",
				slot.Field, target.NodeName(), target.NodeKind())
		}
	}

	registers := make(map[ID]string)

	for _, vr := range s.ValueRegisters() {
		if !vr.Context.IsLinked() {
			continue
		}

		if other, ok := registers[vr.Context.Target()]; ok {
			res.Errorf(diagnostic.In(ix.Document(vr.ID).URI), vr.Name, "duplicate_value_register",
				"bounded context %q has value registers %q and %q", ix.RefName(vr.Context), other, vr.Name)

			continue
		}

		registers[vr.Context.Target()] = vr.Name
	}

	s.validateNames(ix, res)

	return res
}

func (s *Set) validateNames(ix *Index, res *diagnostic.Diagnostics) {
	report := func(n Node, scope string) {
		res.Errorf(diagnostic.In(ix.Document(n.NodeID()).URI), fmt.Sprintf("%s %q", n.NodeKind(), n.NodeName()),
			"duplicate_name", "%s name %q is used more than once in %s", n.NodeKind(), n.NodeName(), scope)
	}

	contexts := make(map[string]bool)

	for _, bc := range s.BoundedContexts() {
		if contexts[bc.Name] {
			report(bc, "the model")
		}

		contexts[bc.Name] = true

		scope := fmt.Sprintf("BoundedContext %q", bc.Name)
		uniqueAggregates(bc.Aggregates, scope, report)

		modules := make(map[string]bool)

		for _, m := range bc.Modules {
			if modules[m.Name] {
				report(m, scope)
			}

			modules[m.Name] = true

			uniqueAggregates(m.Aggregates, fmt.Sprintf("Module %q", m.Name), report)
		}
	}
}

func uniqueAggregates(aggs []*Aggregate, scope string, report func(Node, string)) {
	names := make(map[string]bool)

	for _, a := range aggs {
		if names[a.Name] {
			report(a, scope)
		}

		names[a.Name] = true

		objects := make(map[string]bool)

		for _, o := range a.DomainObjects {
			if objects[o.Name] {
				report(o, fmt.Sprintf("Aggregate %q", a.Name))
			}

			objects[o.Name] = true
		}
	}
}

// ValueRegisterFor returns the value register for the bounded context, or nil.
func (s *Set) ValueRegisterFor(bc ID) *ValueRegister {
	for _, vr := range s.ValueRegisters() {
		if vr.Context.Points(bc) {
			return vr
		}
	}

	return nil
}
