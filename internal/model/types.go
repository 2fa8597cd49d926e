package model

// Span is a half-open byte range [Start, End) in a document source.
type Span struct {
	Start int
	End   int
}

// ContextMappingModel is the root of one CML document.
type ContextMappingModel struct {
	ID               ID
	URI              string
	Imports          []string
	ContextMap       *ContextMap
	BoundedContexts  []*BoundedContext
	Domains          []*Domain
	UserRequirements []*UserRequirement
	Stakeholders     []*Stakeholders
	ValueRegisters   []*ValueRegister

	// Source is the text the document was read from (nil for documents
	// created in memory).
	Source []byte
	// Spans maps root element IDs to their text in Source.
	Spans map[ID]Span
}

func (m *ContextMappingModel) NodeID() ID       { return m.ID }
func (m *ContextMappingModel) NodeKind() Kind   { return KindDocument }
func (m *ContextMappingModel) NodeName() string { return m.URI }

// RootElements returns the root elements in printing order:
// context map, bounded contexts, domains, user requirements,
// stakeholders, value registers.
func (m *ContextMappingModel) RootElements() []Node {
	var out []Node
	if m.ContextMap != nil {
		out = append(out, m.ContextMap)
	}

	for _, bc := range m.BoundedContexts {
		out = append(out, bc)
	}

	for _, d := range m.Domains {
		out = append(out, d)
	}

	for _, ur := range m.UserRequirements {
		out = append(out, ur)
	}

	for _, s := range m.Stakeholders {
		out = append(out, s)
	}

	for _, vr := range m.ValueRegisters {
		out = append(out, vr)
	}

	return out
}

// ContextMap is the set of relationships between bounded contexts.
type ContextMap struct {
	ID            ID
	Name          string
	Type          string
	State         string
	Contains      []Ref
	Relationships []*Relationship
}

func (c *ContextMap) NodeID() ID       { return c.ID }
func (c *ContextMap) NodeKind() Kind   { return KindContextMap }
func (c *ContextMap) NodeName() string { return c.Name }

// Relationship connects two bounded contexts.
//
// For directed kinds Left is the upstream and Right the downstream
// context; exposed aggregates are published by the upstream.
type Relationship struct {
	ID                       ID
	Name                     string
	Kind                     RelationshipKind
	Left                     Ref
	Right                    Ref
	UpstreamRoles            []string
	DownstreamRoles          []string
	ExposedAggregates        []Ref
	ImplementationTechnology string
	DownstreamRights         string
}

func (r *Relationship) NodeID() ID       { return r.ID }
func (r *Relationship) NodeKind() Kind   { return KindRelationship }
func (r *Relationship) NodeName() string { return r.Name }

// Upstream returns the upstream context of a directed relationship.
func (r *Relationship) Upstream() Ref { return r.Left }

// Downstream returns the downstream context of a directed relationship.
func (r *Relationship) Downstream() Ref { return r.Right }

// Connects reports whether the relationship is between a and b, in any direction.
func (r *Relationship) Connects(a, b ID) bool {
	return (r.Left.Points(a) && r.Right.Points(b)) || (r.Left.Points(b) && r.Right.Points(a))
}

// Involves reports whether either endpoint is id.
func (r *Relationship) Involves(id ID) bool {
	return r.Left.Points(id) || r.Right.Points(id)
}

// BoundedContext is an explicit model boundary owning aggregates.
type BoundedContext struct {
	ID                       ID
	Name                     string
	Type                     BoundedContextType
	Implements               []Ref
	Realizes                 []Ref
	DomainVisionStatement    string
	Responsibilities         []string
	ImplementationTechnology string
	Aggregates               []*Aggregate
	Modules                  []*Module
}

func (b *BoundedContext) NodeID() ID       { return b.ID }
func (b *BoundedContext) NodeKind() Kind   { return KindBoundedContext }
func (b *BoundedContext) NodeName() string { return b.Name }

// AllAggregates returns the aggregates owned directly and through modules,
// direct aggregates first.
func (b *BoundedContext) AllAggregates() []*Aggregate {
	out := append([]*Aggregate{}, b.Aggregates...)
	for _, m := range b.Modules {
		out = append(out, m.Aggregates...)
	}

	return out
}

// Module groups aggregates inside a bounded context.
type Module struct {
	ID         ID
	Name       string
	Aggregates []*Aggregate
}

func (m *Module) NodeID() ID       { return m.ID }
func (m *Module) NodeKind() Kind   { return KindModule }
func (m *Module) NodeName() string { return m.Name }

// Aggregate is a consistency boundary owning domain objects.
type Aggregate struct {
	ID                  ID
	Name                string
	Owner               Ref
	Features            []Ref
	LikelihoodForChange Volatility
	Responsibilities    []string
	DomainObjects       []*DomainObject
}

func (a *Aggregate) NodeID() ID       { return a.ID }
func (a *Aggregate) NodeKind() Kind   { return KindAggregate }
func (a *Aggregate) NodeName() string { return a.Name }

// Attribute is a field of a domain object. Reference is set for
// references to other domain objects; Type then caches the target name.
type Attribute struct {
	Name       string
	Type       string
	Collection string
	Reference  Ref
	Key        bool
}

// IsReference reports whether the attribute references a domain object.
func (a *Attribute) IsReference() bool {
	return !a.Reference.IsZero()
}

// DomainObject is an entity, value object, event, DTO, trait, enum or basic type.
type DomainObject struct {
	ID            ID
	Kind          DomainObjectKind
	Name          string
	AggregateRoot bool
	Extends       Ref
	Attributes    []*Attribute
	EnumValues    []string
}

func (d *DomainObject) NodeID() ID       { return d.ID }
func (d *DomainObject) NodeKind() Kind   { return KindDomainObject }
func (d *DomainObject) NodeName() string { return d.Name }

// Domain groups subdomains.
type Domain struct {
	ID                    ID
	Name                  string
	DomainVisionStatement string
	Subdomains            []*Subdomain
}

func (d *Domain) NodeID() ID       { return d.ID }
func (d *Domain) NodeKind() Kind   { return KindDomain }
func (d *Domain) NodeName() string { return d.Name }

// Subdomain is a part of a domain, supporting a set of user requirements.
type Subdomain struct {
	ID                    ID
	Name                  string
	Type                  SubdomainType
	DomainVisionStatement string
	Supports              []Ref
	Entities              []*DomainObject
}

func (s *Subdomain) NodeID() ID       { return s.ID }
func (s *Subdomain) NodeKind() Kind   { return KindSubdomain }
func (s *Subdomain) NodeName() string { return s.Name }

// Feature is one "verb an entity with its attributes" interaction.
type Feature struct {
	Verb       string
	Article    string
	Entity     string
	Attributes []string
}

// UserRequirement is a use case or a user story.
type UserRequirement struct {
	ID       ID
	Kind     UserRequirementKind
	Name     string
	Role     string
	Features []*Feature
	Benefit  string
	// SplittingStory is the story this one was split from.
	SplittingStory Ref
}

func (u *UserRequirement) NodeID() ID       { return u.ID }
func (u *UserRequirement) NodeKind() Kind   { return KindUserRequirement }
func (u *UserRequirement) NodeName() string { return u.Name }

// StakeholderItem is a Stakeholder or a StakeholderGroup.
type StakeholderItem interface {
	Node
	stakeholderItem()
}

// Stakeholders is the root of a stakeholder tree.
type Stakeholders struct {
	ID       ID
	Contexts []Ref
	Items    []StakeholderItem
}

func (s *Stakeholders) NodeID() ID       { return s.ID }
func (s *Stakeholders) NodeKind() Kind   { return KindStakeholders }
func (s *Stakeholders) NodeName() string { return "" }

// StakeholderGroup groups stakeholders and nested groups.
type StakeholderGroup struct {
	ID    ID
	Name  string
	Items []StakeholderItem
}

func (g *StakeholderGroup) NodeID() ID       { return g.ID }
func (g *StakeholderGroup) NodeKind() Kind   { return KindStakeholderGroup }
func (g *StakeholderGroup) NodeName() string { return g.Name }
func (g *StakeholderGroup) stakeholderItem() {}

// Stakeholder is a person or role with an interest in the system.
type Stakeholder struct {
	ID          ID
	Name        string
	Influence   string
	Interest    string
	Description string
}

func (s *Stakeholder) NodeID() ID       { return s.ID }
func (s *Stakeholder) NodeKind() Kind   { return KindStakeholder }
func (s *Stakeholder) NodeName() string { return s.Name }
func (s *Stakeholder) stakeholderItem() {}

// ValueRegister records elicited values, optionally for one bounded context.
type ValueRegister struct {
	ID       ID
	Name     string
	Context  Ref
	Clusters []*ValueCluster
	Values   []*Value
}

func (v *ValueRegister) NodeID() ID       { return v.ID }
func (v *ValueRegister) NodeKind() Kind   { return KindValueRegister }
func (v *ValueRegister) NodeName() string { return v.Name }

// ValueCluster groups values around a core value.
type ValueCluster struct {
	ID            ID
	Name          string
	CoreValue     string
	Demonstrators []string
	Values        []*Value
	Elicitations  []*ValueElicitation
}

func (v *ValueCluster) NodeID() ID       { return v.ID }
func (v *ValueCluster) NodeKind() Kind   { return KindValueCluster }
func (v *ValueCluster) NodeName() string { return v.Name }

// Value is a stakeholder value.
type Value struct {
	ID            ID
	Name          string
	IsCore        bool
	Demonstrators []string
	RelatedValues []string
	Elicitations  []*ValueElicitation
}

func (v *Value) NodeID() ID       { return v.ID }
func (v *Value) NodeKind() Kind   { return KindValue }
func (v *Value) NodeName() string { return v.Name }

// ValueElicitation records how a value matters to one stakeholder.
type ValueElicitation struct {
	ID           ID
	Stakeholder  Ref
	Priority     string
	Impact       string
	Consequences []*Consequence
}

func (v *ValueElicitation) NodeID() ID       { return v.ID }
func (v *ValueElicitation) NodeKind() Kind   { return KindValueElicitation }
func (v *ValueElicitation) NodeName() string { return v.Stakeholder.Name() }

// Consequence is a positive, negative or neutral effect of a value.
type Consequence struct {
	Kind   ConsequenceKind
	Text   string
	Action *MitigationAction
}

// MitigationAction names an action taken about a consequence.
type MitigationAction struct {
	Text string
	Type string
}
