package cml

import (
	"slices"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

func (p *parser) parseContextMap() *model.ContextMap {
	p.expect("ContextMap")

	cm := &model.ContextMap{ID: model.NewID()}
	if p.peek().kind == tokIdent {
		cm.Name = p.next().text
	}

	p.body(false, func() {
		switch {
		case p.at("type"):
			p.assign("type")
			cm.Type = p.value()
		case p.at("state"):
			p.assign("state")
			cm.State = p.value()
		case p.at("contains"):
			p.assign("contains")
			cm.Contains = append(cm.Contains, p.nameRefs()...)
		case p.peek().kind == tokIdent:
			cm.Relationships = append(cm.Relationships, p.parseRelationship())
		default:
			p.unexpected("ContextMap")
		}
	})

	return cm
}

type arrow int

const (
	arrowRight arrow = iota
	arrowLeft
	arrowBoth
)

// parseRelationship reads the arrow notation:
//
//	A [P]<->[P] B
//	A [SK]<->[SK] B
//	A [U,OHS]->[D,ACL] B
//	A [S]->[C] B
//	B [D,ACL]<-[U,OHS] A
//
// followed by an optional ": Name" and body.
func (p *parser) parseRelationship() *model.Relationship {
	first := p.peek()
	left := p.nameRef()
	leftRoles := p.roles()
	dir := p.arrow()
	rightRoles := p.roles()
	right := p.nameRef()

	rel := &model.Relationship{ID: model.NewID()}

	all := append(slices.Clone(leftRoles), rightRoles...)

	switch {
	case slices.Contains(all, model.RolePartnership):
		rel.Kind = model.Partnership
	case slices.Contains(all, model.RoleSharedKernel):
		rel.Kind = model.SharedKernel
	case slices.Contains(all, model.RoleSupplier), slices.Contains(all, model.RoleCustomer):
		rel.Kind = model.CustomerSupplier
	default:
		rel.Kind = model.UpstreamDownstream
	}

	if rel.Kind.IsSymmetric() != (dir == arrowBoth) {
		p.failf(first, "%s relationship between %s and %s has the wrong arrow", rel.Kind, left.Name(), right.Name())
	}

	upRoles, downRoles := leftRoles, rightRoles
	rel.Left, rel.Right = left, right

	if dir == arrowLeft {
		upRoles, downRoles = rightRoles, leftRoles
		rel.Left, rel.Right = right, left
	}

	if !rel.Kind.IsSymmetric() {
		if slices.Contains(upRoles, model.RoleDownstream) || slices.Contains(upRoles, model.RoleCustomer) ||
			slices.Contains(downRoles, model.RoleUpstream) || slices.Contains(downRoles, model.RoleSupplier) {
			p.failf(first, "upstream and downstream roles of %s and %s are swapped", left.Name(), right.Name())
		}

		rel.UpstreamRoles = withoutFlags(upRoles)
		rel.DownstreamRoles = withoutFlags(downRoles)
	}

	if p.accept(":") {
		rel.Name = p.ident().text
	}

	p.body(true, func() {
		switch {
		case p.at("implementationTechnology"):
			p.assign("implementationTechnology")
			rel.ImplementationTechnology = p.str()
		case p.at("exposedAggregates"):
			p.assign("exposedAggregates")
			rel.ExposedAggregates = append(rel.ExposedAggregates, p.nameRefs()...)
		case p.at("downstreamRights"):
			p.assign("downstreamRights")
			rel.DownstreamRights = p.value()
		default:
			p.unexpected("relationship")
		}
	})

	return rel
}

func (p *parser) roles() []string {
	if !p.accept("[") {
		return nil
	}

	var out []string

	for {
		out = append(out, p.ident().text)
		if !p.accept(",") {
			break
		}
	}

	p.expect("]")

	return out
}

func (p *parser) arrow() arrow {
	switch {
	case p.at("<") && p.atN(1, "-") && p.atN(2, ">"):
		p.i += 3
		return arrowBoth
	case p.at("<") && p.atN(1, "-"):
		p.i += 2
		return arrowLeft
	case p.at("-") && p.atN(1, ">"):
		p.i += 2
		return arrowRight
	default:
		p.failf(p.peek(), "expected relationship arrow, found %s", p.peek().describe())
		return arrowRight
	}
}

// withoutFlags drops the role tokens that only select the relationship
// kind (U, D, S, C).
func withoutFlags(roles []string) []string {
	var out []string

	for _, r := range roles {
		switch r {
		case model.RoleUpstream, model.RoleDownstream, model.RoleSupplier, model.RoleCustomer:
		default:
			out = append(out, r)
		}
	}

	return out
}
