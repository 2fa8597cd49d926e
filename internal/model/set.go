package model

// Set is a linked document set: one document plus its transitive imports.
// Documents keep load order; the first document is the one that was opened.
type Set struct {
	Documents []*ContextMappingModel
}

// NewSet creates a set over the given documents.
func NewSet(docs ...*ContextMappingModel) *Set {
	return &Set{Documents: docs}
}

// Document returns the document with the given URI, or nil.
func (s *Set) Document(uri string) *ContextMappingModel {
	for _, d := range s.Documents {
		if d.URI == uri {
			return d
		}
	}

	return nil
}

// Primary returns the first document of the set, or nil.
func (s *Set) Primary() *ContextMappingModel {
	if len(s.Documents) == 0 {
		return nil
	}

	return s.Documents[0]
}

// ContextMaps returns the context maps of all documents in load order.
func (s *Set) ContextMaps() []*ContextMap {
	var out []*ContextMap

	for _, d := range s.Documents {
		if d.ContextMap != nil {
			out = append(out, d.ContextMap)
		}
	}

	return out
}

// Relationships returns the relationships of all context maps.
func (s *Set) Relationships() []*Relationship {
	var out []*Relationship
	for _, cm := range s.ContextMaps() {
		out = append(out, cm.Relationships...)
	}

	return out
}

// BoundedContexts returns the bounded contexts of all documents.
func (s *Set) BoundedContexts() []*BoundedContext {
	var out []*BoundedContext
	for _, d := range s.Documents {
		out = append(out, d.BoundedContexts...)
	}

	return out
}

// UserRequirements returns the use cases and user stories of all documents.
func (s *Set) UserRequirements() []*UserRequirement {
	var out []*UserRequirement
	for _, d := range s.Documents {
		out = append(out, d.UserRequirements...)
	}

	return out
}

// ValueRegisters returns the value registers of all documents.
func (s *Set) ValueRegisters() []*ValueRegister {
	var out []*ValueRegister
	for _, d := range s.Documents {
		out = append(out, d.ValueRegisters...)
	}

	return out
}

// VisitFunc is called for every node with its parent (nil for root
// elements) and owning document.
type VisitFunc func(n Node, parent Node, doc *ContextMappingModel)

// Walk visits every node of the set in document and containment order.
func (s *Set) Walk(fn VisitFunc) {
	for _, d := range s.Documents {
		walkDocument(d, fn)
	}
}

func walkDocument(d *ContextMappingModel, fn VisitFunc) {
	if d.ContextMap != nil {
		fn(d.ContextMap, nil, d)

		for _, r := range d.ContextMap.Relationships {
			fn(r, d.ContextMap, d)
		}
	}

	for _, bc := range d.BoundedContexts {
		fn(bc, nil, d)
		walkAggregates(bc.Aggregates, bc, d, fn)

		for _, m := range bc.Modules {
			fn(m, bc, d)
			walkAggregates(m.Aggregates, m, d, fn)
		}
	}

	for _, dom := range d.Domains {
		fn(dom, nil, d)

		for _, sd := range dom.Subdomains {
			fn(sd, dom, d)

			for _, e := range sd.Entities {
				fn(e, sd, d)
			}
		}
	}

	for _, ur := range d.UserRequirements {
		fn(ur, nil, d)
	}

	for _, sh := range d.Stakeholders {
		fn(sh, nil, d)
		walkStakeholderItems(sh.Items, sh, d, fn)
	}

	for _, vr := range d.ValueRegisters {
		fn(vr, nil, d)

		for _, c := range vr.Clusters {
			fn(c, vr, d)

			for _, v := range c.Values {
				walkValue(v, c, d, fn)
			}

			for _, e := range c.Elicitations {
				fn(e, c, d)
			}
		}

		for _, v := range vr.Values {
			walkValue(v, vr, d, fn)
		}
	}
}

func walkAggregates(aggs []*Aggregate, parent Node, d *ContextMappingModel, fn VisitFunc) {
	for _, a := range aggs {
		fn(a, parent, d)

		for _, o := range a.DomainObjects {
			fn(o, a, d)
		}
	}
}

func walkStakeholderItems(items []StakeholderItem, parent Node, d *ContextMappingModel, fn VisitFunc) {
	for _, it := range items {
		fn(it, parent, d)

		if g, ok := it.(*StakeholderGroup); ok {
			walkStakeholderItems(g.Items, g, d, fn)
		}
	}
}

func walkValue(v *Value, parent Node, d *ContextMappingModel, fn VisitFunc) {
	fn(v, parent, d)

	for _, e := range v.Elicitations {
		fn(e, v, d)
	}
}
