package model

// unknownName is printed for out-of-range enum values.
const unknownName = "unknown"

// BoundedContextType is the CML type of a bounded context.
type BoundedContextType string

const (
	BoundedContextUndefined   BoundedContextType = ""
	BoundedContextFeature     BoundedContextType = "FEATURE"
	BoundedContextApplication BoundedContextType = "APPLICATION"
	BoundedContextSystem      BoundedContextType = "SYSTEM"
	BoundedContextTeam        BoundedContextType = "TEAM"
	BoundedContextGeneric     BoundedContextType = "GENERIC"
)

// Valid reports whether t is a known bounded context type.
func (t BoundedContextType) Valid() bool {
	switch t {
	case BoundedContextUndefined, BoundedContextFeature, BoundedContextApplication,
		BoundedContextSystem, BoundedContextTeam, BoundedContextGeneric:
		return true
	}

	return false
}

// DomainObjectKind is the variant of a domain object.
// Values are the CML keywords introducing the object.
type DomainObjectKind string

const (
	Entity             DomainObjectKind = "Entity"
	ValueObject        DomainObjectKind = "ValueObject"
	DomainEvent        DomainObjectKind = "DomainEvent"
	CommandEvent       DomainObjectKind = "CommandEvent"
	DataTransferObject DomainObjectKind = "DataTransferObject"
	Trait              DomainObjectKind = "Trait"
	Enum               DomainObjectKind = "enum"
	BasicType          DomainObjectKind = "BasicType"
)

// DomainObjectKinds lists all domain object keywords.
var DomainObjectKinds = []DomainObjectKind{
	Entity, ValueObject, DomainEvent, CommandEvent, DataTransferObject, Trait, Enum, BasicType,
}

// IsDomainObjectKind reports whether keyword introduces a domain object.
func IsDomainObjectKind(keyword string) bool {
	for _, k := range DomainObjectKinds {
		if string(k) == keyword {
			return true
		}
	}

	return false
}

// Volatility is the likelihood for change of an aggregate.
type Volatility string

const (
	VolatilityUndefined Volatility = ""
	VolatilityRarely    Volatility = "RARELY"
	VolatilityNormal    Volatility = "NORMAL"
	VolatilityOften     Volatility = "OFTEN"
)

// Valid reports whether v is a known volatility.
func (v Volatility) Valid() bool {
	switch v {
	case VolatilityUndefined, VolatilityRarely, VolatilityNormal, VolatilityOften:
		return true
	}

	return false
}

// RelationshipKind is the variant of a context map relationship.
type RelationshipKind int

const (
	Partnership RelationshipKind = iota
	SharedKernel
	UpstreamDownstream
	CustomerSupplier
)

// String returns the CML name of the relationship kind.
func (k RelationshipKind) String() string {
	switch k {
	case Partnership:
		return "Partnership"
	case SharedKernel:
		return "Shared-Kernel"
	case UpstreamDownstream:
		return "Upstream-Downstream"
	case CustomerSupplier:
		return "Customer-Supplier"
	default:
		return unknownName
	}
}

// IsSymmetric reports whether the relationship has no direction.
func (k RelationshipKind) IsSymmetric() bool {
	return k == Partnership || k == SharedKernel
}

// Upstream and downstream role tokens.
const (
	RoleOpenHostService     = "OHS"
	RolePublishedLanguage   = "PL"
	RoleAntiCorruptionLayer = "ACL"
	RoleConformist          = "CF"
	RoleUpstream            = "U"
	RoleDownstream          = "D"
	RoleSupplier            = "S"
	RoleCustomer            = "C"
	RolePartnership         = "P"
	RoleSharedKernel        = "SK"
)

// UserRequirementKind distinguishes use cases from user stories.
type UserRequirementKind string

const (
	UseCase   UserRequirementKind = "UseCase"
	UserStory UserRequirementKind = "UserStory"
)

// SubdomainType is the strategic classification of a subdomain.
type SubdomainType string

const (
	SubdomainUndefined SubdomainType = ""
	CoreDomain         SubdomainType = "CORE_DOMAIN"
	SupportingDomain   SubdomainType = "SUPPORTING_DOMAIN"
	GenericSubdomain   SubdomainType = "GENERIC_SUBDOMAIN"
)

// ConsequenceKind classifies the consequence of a value elicitation.
type ConsequenceKind string

const (
	ConsequenceGood    ConsequenceKind = "good"
	ConsequenceBad     ConsequenceKind = "bad"
	ConsequenceNeutral ConsequenceKind = "neutral"
)
