package cml

import (
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

func (p *parser) parseDomain() *model.Domain {
	p.expect("Domain")

	d := &model.Domain{ID: model.NewID(), Name: p.ident().text}

	p.body(true, func() {
		switch {
		case p.at("domainVisionStatement"):
			p.assign("domainVisionStatement")
			d.DomainVisionStatement = p.str()
		case p.at("Subdomain"):
			d.Subdomains = append(d.Subdomains, p.parseSubdomain())
		default:
			p.unexpected("Domain " + d.Name)
		}
	})

	return d
}

func (p *parser) parseSubdomain() *model.Subdomain {
	p.expect("Subdomain")

	s := &model.Subdomain{ID: model.NewID(), Name: p.ident().text}
	if p.accept("supports") {
		s.Supports = p.nameRefs()
	}

	p.body(true, func() {
		switch {
		case p.at("type"):
			p.assign("type")
			s.Type = model.SubdomainType(p.value())
		case p.at("domainVisionStatement"):
			p.assign("domainVisionStatement")
			s.DomainVisionStatement = p.str()
		case p.atDomainObject():
			s.Entities = append(s.Entities, p.parseDomainObject())
		default:
			p.unexpected("Subdomain " + s.Name)
		}
	})

	return s
}

// parseUserRequirement reads a use case
//
//	UseCase Name {
//		actor = "role"
//		interactions = "create" a "Customer" with its "name", "update" an "Address"
//		benefit = "..."
//	}
//
// or a user story
//
//	UserStory Name split by Other {
//		As a "role"
//		I want to "create" a "Customer" with its "name"
//		so that "..."
//	}
func (p *parser) parseUserRequirement() *model.UserRequirement {
	kind := model.UserRequirementKind(p.ident().text)
	ur := &model.UserRequirement{ID: model.NewID(), Kind: kind, Name: p.ident().text}

	if kind == model.UserStory && p.accept("split") {
		p.expect("by")
		ur.SplittingStory = p.nameRef()
	}

	p.body(true, func() {
		switch {
		case kind == model.UseCase && p.at("actor"):
			p.assign("actor")
			ur.Role = p.str()
		case kind == model.UseCase && p.at("interactions"):
			p.assign("interactions")

			ur.Features = append(ur.Features, p.parseFeature())
			for p.accept(",") {
				ur.Features = append(ur.Features, p.parseFeature())
			}
		case kind == model.UseCase && p.at("benefit"):
			p.assign("benefit")
			ur.Benefit = p.str()
		case kind == model.UserStory && p.accept("As"):
			if !p.accept("a") {
				p.accept("an")
			}

			ur.Role = p.str()
		case kind == model.UserStory && p.accept("I"):
			p.expect("want")
			p.expect("to")
			ur.Features = append(ur.Features, p.parseFeature())
		case kind == model.UserStory && p.accept("so"):
			p.expect("that")
			ur.Benefit = p.str()
		default:
			p.unexpected(string(kind) + " " + ur.Name)
		}
	})

	return ur
}

func isArticle(t token) bool {
	return t.kind == tokIdent && (t.text == "a" || t.text == "an" || t.text == "the")
}

// parseFeature reads `"verb" [article] ["Entity" [with its "attr", ...]]`.
func (p *parser) parseFeature() *model.Feature {
	f := &model.Feature{Verb: p.str()}

	if isArticle(p.peek()) && p.peekN(1).kind == tokString {
		f.Article = p.next().text
	}

	if p.peek().kind != tokString {
		return f
	}

	f.Entity = p.next().text

	if !p.accept("with") {
		return f
	}

	if !p.accept("its") {
		p.accept("their")
	}

	f.Attributes = append(f.Attributes, p.str())

	// a comma continues the attribute list unless it starts the next
	// interaction: `"a", "update" an "Address"`.
	for p.at(",") && p.peekN(1).kind == tokString && !p.startsFeature(2) {
		p.next()
		f.Attributes = append(f.Attributes, p.next().text)
	}

	return f
}

// startsFeature reports whether the token at n follows a verb.
func (p *parser) startsFeature(n int) bool {
	t := p.peekN(n)
	return t.kind == tokString || (isArticle(t) && p.peekN(n+1).kind == tokString)
}
