package model

import (
	"fmt"

	"github.com/google/uuid"
)

// ID identifies a node. IDs are preserved by Set.Clone.
type ID string

// NewID returns a fresh node ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// Kind represents the kind of a node in the graph.
type Kind int

const (
	KindUnknown Kind = iota
	KindDocument
	KindContextMap
	KindRelationship
	KindBoundedContext
	KindModule
	KindAggregate
	KindDomainObject
	KindDomain
	KindSubdomain
	KindUserRequirement
	KindStakeholders
	KindStakeholderGroup
	KindStakeholder
	KindValueRegister
	KindValueCluster
	KindValue
	KindValueElicitation
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "Document"
	case KindContextMap:
		return "ContextMap"
	case KindRelationship:
		return "Relationship"
	case KindBoundedContext:
		return "BoundedContext"
	case KindModule:
		return "Module"
	case KindAggregate:
		return "Aggregate"
	case KindDomainObject:
		return "DomainObject"
	case KindDomain:
		return "Domain"
	case KindSubdomain:
		return "Subdomain"
	case KindUserRequirement:
		return "UserRequirement"
	case KindStakeholders:
		return "Stakeholders"
	case KindStakeholderGroup:
		return "StakeholderGroup"
	case KindStakeholder:
		return "Stakeholder"
	case KindValueRegister:
		return "ValueRegister"
	case KindValueCluster:
		return "ValueCluster"
	case KindValue:
		return "Value"
	case KindValueElicitation:
		return "ValueElicitation"
	default:
		return unknownName
	}
}

// Node is implemented by every identifiable element of the graph.
type Node interface {
	NodeID() ID
	NodeKind() Kind
	NodeName() string
}

// Pos is a 1-based source position.
type Pos struct {
	Line   int
	Column int
}

// String returns "line:column".
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Ref is a non-owning link to another node.
//
// A linked Ref points at its target by ID; the name is a cache used for
// printing and as fallback when the ID is unknown. An optional Ref may
// stay unlinked and then only carries a name (e.g. "extends" of a Java
// class that is not part of the model).
type Ref struct {
	target   ID
	name     string
	optional bool
	at       Pos
}

// RefTo returns a Ref linked to n.
func RefTo(n Node) Ref {
	return Ref{target: n.NodeID(), name: n.NodeName()}
}

// NameRef returns an unlinked Ref that must be resolved by name.
func NameRef(name string, at Pos) Ref {
	return Ref{name: name, at: at}
}

// OptionalNameRef returns an unlinked Ref that may remain unresolved.
func OptionalNameRef(name string, at Pos) Ref {
	return Ref{name: name, at: at, optional: true}
}

// Target returns the ID of the referenced node, or "" if unlinked.
func (r Ref) Target() ID { return r.target }

// Name returns the cached name of the referenced node.
func (r Ref) Name() string { return r.name }

// At returns the source position the reference was read from.
func (r Ref) At() Pos { return r.at }

// IsZero reports whether the Ref references nothing.
func (r Ref) IsZero() bool { return r.target == "" && r.name == "" }

// IsLinked reports whether the Ref points at a node by ID.
func (r Ref) IsLinked() bool { return r.target != "" }

// IsOptional reports whether the Ref may stay unresolved.
func (r Ref) IsOptional() bool { return r.optional }

// Points reports whether the Ref is linked to the node with the given ID.
func (r Ref) Points(id ID) bool { return r.target != "" && r.target == id }

// Bind links r to n, keeping its source position.
func (r *Ref) Bind(n Node) {
	r.target = n.NodeID()
	r.name = n.NodeName()
}

// RefsTo returns linked Refs to each of the given nodes.
func RefsTo[N Node](nodes ...N) []Ref {
	refs := make([]Ref, 0, len(nodes))
	for _, n := range nodes {
		refs = append(refs, RefTo(n))
	}

	return refs
}

// ContainsRef reports whether refs has a Ref linked to id.
func ContainsRef(refs []Ref, id ID) bool {
	for _, r := range refs {
		if r.Points(id) {
			return true
		}
	}

	return false
}
