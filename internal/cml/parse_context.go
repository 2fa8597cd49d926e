package cml

import (
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

func (p *parser) parseBoundedContext() *model.BoundedContext {
	p.expect("BoundedContext")

	bc := &model.BoundedContext{ID: model.NewID(), Name: p.ident().text}

	for {
		if p.accept("implements") {
			bc.Implements = append(bc.Implements, p.nameRefs()...)
		} else if p.accept("realizes") {
			bc.Realizes = append(bc.Realizes, p.nameRefs()...)
		} else {
			break
		}
	}

	p.body(true, func() {
		switch {
		case p.at("type"):
			t := p.peek()
			p.assign("type")

			bc.Type = model.BoundedContextType(p.value())
			if !bc.Type.Valid() {
				p.failf(t, "unknown bounded context type %q", bc.Type)
			}
		case p.at("domainVisionStatement"):
			p.assign("domainVisionStatement")
			bc.DomainVisionStatement = p.str()
		case p.at("responsibilities"):
			p.assign("responsibilities")
			bc.Responsibilities = append(bc.Responsibilities, p.strs()...)
		case p.at("implementationTechnology"):
			p.assign("implementationTechnology")
			bc.ImplementationTechnology = p.str()
		case p.at("Aggregate"):
			bc.Aggregates = append(bc.Aggregates, p.parseAggregate())
		case p.at("Module"):
			bc.Modules = append(bc.Modules, p.parseModule())
		default:
			p.unexpected("BoundedContext " + bc.Name)
		}
	})

	return bc
}

func (p *parser) parseModule() *model.Module {
	p.expect("Module")

	m := &model.Module{ID: model.NewID(), Name: p.ident().text}

	p.body(true, func() {
		if !p.at("Aggregate") {
			p.unexpected("Module " + m.Name)
		}

		m.Aggregates = append(m.Aggregates, p.parseAggregate())
	})

	return m
}

func (p *parser) parseAggregate() *model.Aggregate {
	p.expect("Aggregate")

	a := &model.Aggregate{ID: model.NewID(), Name: p.ident().text}

	p.body(true, func() {
		switch {
		case p.at("owner"):
			p.assign("owner")
			a.Owner = p.nameRef()
		case p.at("features"), p.at("useCases"), p.at("userStories"):
			p.next()
			p.accept("=")
			a.Features = append(a.Features, p.nameRefs()...)
		case p.at("likelihoodForChange"):
			t := p.peek()
			p.assign("likelihoodForChange")

			a.LikelihoodForChange = model.Volatility(p.value())
			if !a.LikelihoodForChange.Valid() {
				p.failf(t, "unknown likelihood for change %q", a.LikelihoodForChange)
			}
		case p.at("responsibilities"):
			p.assign("responsibilities")
			a.Responsibilities = append(a.Responsibilities, p.strs()...)
		case p.atDomainObject():
			a.DomainObjects = append(a.DomainObjects, p.parseDomainObject())
		default:
			p.unexpected("Aggregate " + a.Name)
		}
	})

	return a
}

func (p *parser) atDomainObject() bool {
	t := p.peek()
	if t.kind != tokIdent {
		return false
	}

	if t.text == "aggregateRoot" {
		return p.peekN(1).kind == tokIdent && model.IsDomainObjectKind(p.peekN(1).text)
	}

	return model.IsDomainObjectKind(t.text)
}

// parseDomainObject reads
//
//	[aggregateRoot] Entity Name [extends @Parent | extends Parent] { ... }
//	enum Name { A, B }
//
// "extends @Parent" references a domain object of the model; the bare form
// may name a type outside the model and stays unlinked if it does not resolve.
func (p *parser) parseDomainObject() *model.DomainObject {
	root := p.accept("aggregateRoot")
	kind := model.DomainObjectKind(p.ident().text)

	o := &model.DomainObject{ID: model.NewID(), Kind: kind, Name: p.ident().text, AggregateRoot: root}

	if kind == model.Enum {
		p.body(true, func() {
			o.EnumValues = append(o.EnumValues, p.ident().text)
			if !p.at("}") {
				p.expect(",")
			}
		})

		return o
	}

	if p.accept("extends") {
		if p.accept("@") {
			o.Extends = p.nameRef()
		} else {
			t := p.ident()
			o.Extends = model.OptionalNameRef(t.text, t.pos)
		}
	}

	p.body(true, func() {
		switch {
		case p.accept("aggregateRoot"):
			o.AggregateRoot = true
		case p.at("-"):
			o.Attributes = append(o.Attributes, p.parseReferenceAttribute())
		case p.peek().kind == tokIdent:
			o.Attributes = append(o.Attributes, p.parseAttribute())
		default:
			p.unexpected(string(o.Kind) + " " + o.Name)
		}
	})

	return o
}

// parseAttribute reads "Type name [key]" or "List<Type> name".
func (p *parser) parseAttribute() *model.Attribute {
	attr := &model.Attribute{}
	attr.Collection, attr.Type, _ = p.attributeType()
	attr.Name = p.ident().text
	attr.Key = p.accept("key")

	return attr
}

// parseReferenceAttribute reads "- Type name" or "- List<Type> name".
func (p *parser) parseReferenceAttribute() *model.Attribute {
	p.expect("-")

	attr := &model.Attribute{}

	var at model.Pos

	attr.Collection, attr.Type, at = p.attributeType()
	attr.Reference = model.NameRef(attr.Type, at)
	attr.Name = p.ident().text
	attr.Key = p.accept("key")

	return attr
}

func (p *parser) attributeType() (collection, typ string, at model.Pos) {
	if p.peek().kind == tokIdent && p.atN(1, "<") {
		collection = p.next().text
		p.expect("<")
		p.accept("@")

		t := p.ident()
		p.expect(">")

		return collection, t.text, t.pos
	}

	p.accept("@")

	t := p.ident()

	return "", t.text, t.pos
}
