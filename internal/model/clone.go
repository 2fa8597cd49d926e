package model

import "maps"

// Clone returns a deep copy of the set. Node IDs and references are
// preserved, so Refs of the copy point at the copied nodes.
func (s *Set) Clone() *Set {
	out := &Set{Documents: make([]*ContextMappingModel, 0, len(s.Documents))}
	for _, d := range s.Documents {
		out.Documents = append(out.Documents, d.Clone())
	}

	return out
}

// Clone returns a deep copy of the document.
func (m *ContextMappingModel) Clone() *ContextMappingModel {
	out := &ContextMappingModel{
		ID:      m.ID,
		URI:     m.URI,
		Imports: cloneStrings(m.Imports),
		Source:  m.Source,
		Spans:   maps.Clone(m.Spans),
	}

	if m.ContextMap != nil {
		out.ContextMap = m.ContextMap.Clone()
	}

	out.BoundedContexts = cloneAll(m.BoundedContexts, (*BoundedContext).Clone)
	out.Domains = cloneAll(m.Domains, (*Domain).Clone)
	out.UserRequirements = cloneAll(m.UserRequirements, (*UserRequirement).Clone)
	out.Stakeholders = cloneAll(m.Stakeholders, (*Stakeholders).Clone)
	out.ValueRegisters = cloneAll(m.ValueRegisters, (*ValueRegister).Clone)

	return out
}

// Clone returns a deep copy of the context map.
func (c *ContextMap) Clone() *ContextMap {
	out := *c
	out.Contains = cloneRefs(c.Contains)
	out.Relationships = cloneAll(c.Relationships, (*Relationship).Clone)

	return &out
}

// Clone returns a deep copy of the relationship.
func (r *Relationship) Clone() *Relationship {
	out := *r
	out.UpstreamRoles = cloneStrings(r.UpstreamRoles)
	out.DownstreamRoles = cloneStrings(r.DownstreamRoles)
	out.ExposedAggregates = cloneRefs(r.ExposedAggregates)

	return &out
}

// Clone returns a deep copy of the bounded context.
func (b *BoundedContext) Clone() *BoundedContext {
	out := *b
	out.Implements = cloneRefs(b.Implements)
	out.Realizes = cloneRefs(b.Realizes)
	out.Responsibilities = cloneStrings(b.Responsibilities)
	out.Aggregates = cloneAll(b.Aggregates, (*Aggregate).Clone)
	out.Modules = cloneAll(b.Modules, (*Module).Clone)

	return &out
}

// Clone returns a deep copy of the module.
func (m *Module) Clone() *Module {
	out := *m
	out.Aggregates = cloneAll(m.Aggregates, (*Aggregate).Clone)

	return &out
}

// Clone returns a deep copy of the aggregate.
func (a *Aggregate) Clone() *Aggregate {
	out := *a
	out.Features = cloneRefs(a.Features)
	out.Responsibilities = cloneStrings(a.Responsibilities)
	out.DomainObjects = cloneAll(a.DomainObjects, (*DomainObject).Clone)

	return &out
}

// Clone returns a deep copy of the domain object.
func (d *DomainObject) Clone() *DomainObject {
	out := *d
	out.EnumValues = cloneStrings(d.EnumValues)
	out.Attributes = cloneAll(d.Attributes, func(a *Attribute) *Attribute {
		c := *a
		return &c
	})

	return &out
}

// Clone returns a deep copy of the domain.
func (d *Domain) Clone() *Domain {
	out := *d
	out.Subdomains = cloneAll(d.Subdomains, (*Subdomain).Clone)

	return &out
}

// Clone returns a deep copy of the subdomain.
func (s *Subdomain) Clone() *Subdomain {
	out := *s
	out.Supports = cloneRefs(s.Supports)
	out.Entities = cloneAll(s.Entities, (*DomainObject).Clone)

	return &out
}

// Clone returns a deep copy of the user requirement.
func (u *UserRequirement) Clone() *UserRequirement {
	out := *u
	out.Features = cloneAll(u.Features, func(f *Feature) *Feature {
		c := *f
		c.Attributes = cloneStrings(f.Attributes)

		return &c
	})

	return &out
}

// Clone returns a deep copy of the stakeholder tree.
func (s *Stakeholders) Clone() *Stakeholders {
	out := *s
	out.Contexts = cloneRefs(s.Contexts)
	out.Items = cloneStakeholderItems(s.Items)

	return &out
}

func cloneStakeholderItems(items []StakeholderItem) []StakeholderItem {
	if items == nil {
		return nil
	}

	out := make([]StakeholderItem, 0, len(items))

	for _, it := range items {
		switch it := it.(type) {
		case *Stakeholder:
			c := *it
			out = append(out, &c)
		case *StakeholderGroup:
			c := *it
			c.Items = cloneStakeholderItems(it.Items)
			out = append(out, &c)
		}
	}

	return out
}

// Clone returns a deep copy of the value register.
func (v *ValueRegister) Clone() *ValueRegister {
	out := *v
	out.Clusters = cloneAll(v.Clusters, (*ValueCluster).Clone)
	out.Values = cloneAll(v.Values, (*Value).Clone)

	return &out
}

// Clone returns a deep copy of the value cluster.
func (v *ValueCluster) Clone() *ValueCluster {
	out := *v
	out.Demonstrators = cloneStrings(v.Demonstrators)
	out.Values = cloneAll(v.Values, (*Value).Clone)
	out.Elicitations = cloneAll(v.Elicitations, (*ValueElicitation).Clone)

	return &out
}

// Clone returns a deep copy of the value.
func (v *Value) Clone() *Value {
	out := *v
	out.Demonstrators = cloneStrings(v.Demonstrators)
	out.RelatedValues = cloneStrings(v.RelatedValues)
	out.Elicitations = cloneAll(v.Elicitations, (*ValueElicitation).Clone)

	return &out
}

// Clone returns a deep copy of the elicitation.
func (v *ValueElicitation) Clone() *ValueElicitation {
	out := *v
	out.Consequences = cloneAll(v.Consequences, func(c *Consequence) *Consequence {
		cc := *c
		if c.Action != nil {
			a := *c.Action
			cc.Action = &a
		}

		return &cc
	})

	return &out
}

func cloneAll[T any](in []*T, clone func(*T) *T) []*T {
	if in == nil {
		return nil
	}

	out := make([]*T, 0, len(in))
	for _, e := range in {
		out = append(out, clone(e))
	}

	return out
}

func cloneRefs(in []Ref) []Ref {
	if in == nil {
		return nil
	}

	return append([]Ref{}, in...)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}

	return append([]string{}, in...)
}
