package model

// RefSlot locates one cross reference in the graph.
type RefSlot struct {
	// Owner is the node holding the reference.
	Owner Node
	// Field names the reference for messages, e.g. "exposedAggregates".
	Field string
	// Ref points into Owner; updating *Ref updates the graph.
	Ref *Ref
	// Kinds lists the node kinds the reference may target.
	Kinds []Kind
	// Scope, when set, is searched before the global namespace.
	Scope *BoundedContext
	// Document owns Owner.
	Document *ContextMappingModel
}

// Accepts reports whether a node of kind k may be targeted by the slot.
func (s RefSlot) Accepts(k Kind) bool {
	for _, want := range s.Kinds {
		if want == k {
			return true
		}
	}

	return false
}

var (
	kindsBoundedContext  = []Kind{KindBoundedContext}
	kindsAggregate       = []Kind{KindAggregate}
	kindsDomainObject    = []Kind{KindDomainObject}
	kindsRequirement     = []Kind{KindUserRequirement}
	kindsSubdomain       = []Kind{KindSubdomain, KindDomain}
	kindsStakeholderItem = []Kind{KindStakeholder, KindStakeholderGroup}
)

// RefSlots returns every non-empty cross reference of the set in walk order.
// Scoped slots (exposed aggregates) carry the upstream context when the
// endpoint can be resolved through ix; ix may be nil before linking.
func (s *Set) RefSlots(ix *Index) []RefSlot {
	var out []RefSlot

	add := func(owner Node, field string, r *Ref, kinds []Kind, doc *ContextMappingModel) {
		if r.IsZero() {
			return
		}

		out = append(out, RefSlot{Owner: owner, Field: field, Ref: r, Kinds: kinds, Document: doc})
	}

	s.Walk(func(n Node, _ Node, doc *ContextMappingModel) {
		switch n := n.(type) {
		case *ContextMap:
			for i := range n.Contains {
				add(n, "contains", &n.Contains[i], kindsBoundedContext, doc)
			}
		case *Relationship:
			add(n, "left", &n.Left, kindsBoundedContext, doc)
			add(n, "right", &n.Right, kindsBoundedContext, doc)

			var scope *BoundedContext
			if ix != nil {
				scope, _ = ix.Deref(n.Upstream(), KindBoundedContext).(*BoundedContext)
			}

			for i := range n.ExposedAggregates {
				if n.ExposedAggregates[i].IsZero() {
					continue
				}

				out = append(out, RefSlot{
					Owner: n, Field: "exposedAggregates", Ref: &n.ExposedAggregates[i],
					Kinds: kindsAggregate, Scope: scope, Document: doc,
				})
			}
		case *BoundedContext:
			for i := range n.Implements {
				add(n, "implements", &n.Implements[i], kindsSubdomain, doc)
			}

			for i := range n.Realizes {
				add(n, "realizes", &n.Realizes[i], kindsBoundedContext, doc)
			}
		case *Aggregate:
			add(n, "owner", &n.Owner, kindsBoundedContext, doc)

			for i := range n.Features {
				add(n, "features", &n.Features[i], kindsRequirement, doc)
			}
		case *DomainObject:
			add(n, "extends", &n.Extends, kindsDomainObject, doc)

			for _, a := range n.Attributes {
				add(n, "attribute "+a.Name, &a.Reference, kindsDomainObject, doc)
			}
		case *Subdomain:
			for i := range n.Supports {
				add(n, "supports", &n.Supports[i], kindsRequirement, doc)
			}
		case *UserRequirement:
			add(n, "split by", &n.SplittingStory, kindsRequirement, doc)
		case *Stakeholders:
			for i := range n.Contexts {
				add(n, "of", &n.Contexts[i], kindsBoundedContext, doc)
			}
		case *ValueRegister:
			add(n, "for", &n.Context, kindsBoundedContext, doc)
		case *ValueElicitation:
			add(n, "stakeholder", &n.Stakeholder, kindsStakeholderItem, doc)
		}
	})

	return out
}

// Redirect points every linked reference to from at to instead and
// returns the number of rewritten references.
func (s *Set) Redirect(from ID, to Node) int {
	n := 0

	for _, slot := range s.RefSlots(nil) {
		if slot.Ref.Points(from) {
			slot.Ref.Bind(to)
			n++
		}
	}

	return n
}

// Referrers returns the slots whose reference is linked to id.
func (s *Set) Referrers(id ID) []RefSlot {
	var out []RefSlot

	for _, slot := range s.RefSlots(nil) {
		if slot.Ref.Points(id) {
			out = append(out, slot)
		}
	}

	return out
}
