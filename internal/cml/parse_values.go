package cml

import (
	"strings"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

func (p *parser) parseStakeholders() *model.Stakeholders {
	p.expect("Stakeholders")

	s := &model.Stakeholders{ID: model.NewID()}
	if p.accept("of") {
		s.Contexts = p.nameRefs()
	}

	p.body(true, func() {
		s.Items = append(s.Items, p.parseStakeholderItem())
	})

	return s
}

func (p *parser) parseStakeholderItem() model.StakeholderItem {
	switch {
	case p.accept("StakeholderGroup"):
		g := &model.StakeholderGroup{ID: model.NewID(), Name: p.ident().text}

		p.body(true, func() {
			g.Items = append(g.Items, p.parseStakeholderItem())
		})

		return g
	case p.accept("Stakeholder"):
		s := &model.Stakeholder{ID: model.NewID(), Name: p.ident().text}

		p.body(true, func() {
			switch {
			case p.at("influence"):
				p.assign("influence")
				s.Influence = p.value()
			case p.at("interest"):
				p.assign("interest")
				s.Interest = p.value()
			case p.at("description"):
				p.assign("description")
				s.Description = p.str()
			default:
				p.unexpected("Stakeholder " + s.Name)
			}
		})

		return s
	default:
		p.unexpected("Stakeholders")
		return nil
	}
}

func (p *parser) parseValueRegister() *model.ValueRegister {
	p.expect("ValueRegister")

	vr := &model.ValueRegister{ID: model.NewID(), Name: p.ident().text}
	if p.accept("for") {
		vr.Context = p.nameRef()
	}

	p.body(true, func() {
		switch {
		case p.at("ValueCluster"):
			vr.Clusters = append(vr.Clusters, p.parseValueCluster())
		case p.at("Value"):
			vr.Values = append(vr.Values, p.parseValue())
		default:
			p.unexpected("ValueRegister " + vr.Name)
		}
	})

	return vr
}

func (p *parser) parseValueCluster() *model.ValueCluster {
	p.expect("ValueCluster")

	c := &model.ValueCluster{ID: model.NewID(), Name: p.ident().text}

	p.body(true, func() {
		switch {
		case p.at("coreValue"):
			p.assign("coreValue")
			c.CoreValue = p.value()
		case p.at("core"):
			p.assign("core")
			c.CoreValue = p.value()
		case p.at("demonstrator"):
			p.assign("demonstrator")
			c.Demonstrators = append(c.Demonstrators, p.str())
		case p.at("Value"):
			c.Values = append(c.Values, p.parseValue())
		case p.at("Stakeholder"):
			c.Elicitations = append(c.Elicitations, p.parseElicitation())
		default:
			p.unexpected("ValueCluster " + c.Name)
		}
	})

	return c
}

func (p *parser) parseValue() *model.Value {
	p.expect("Value")

	v := &model.Value{ID: model.NewID(), Name: p.ident().text}

	p.body(true, func() {
		switch {
		case p.accept("isCore"):
			v.IsCore = true
		case p.at("demonstrator"):
			p.assign("demonstrator")
			v.Demonstrators = append(v.Demonstrators, p.str())
		case p.at("relatedValue"):
			p.assign("relatedValue")
			v.RelatedValues = append(v.RelatedValues, p.str())
		case p.at("Stakeholder"):
			v.Elicitations = append(v.Elicitations, p.parseElicitation())
		default:
			p.unexpected("Value " + v.Name)
		}
	})

	return v
}

// parseElicitation reads
//
//	Stakeholder Name {
//		priority = HIGH
//		impact = MEDIUM
//		consequences
//			good "..."
//			bad "..." action "..." ACT
//	}
func (p *parser) parseElicitation() *model.ValueElicitation {
	p.expect("Stakeholder")

	e := &model.ValueElicitation{ID: model.NewID(), Stakeholder: p.nameRef()}

	p.body(true, func() {
		switch {
		case p.at("priority"):
			p.assign("priority")
			e.Priority = p.value()
		case p.at("impact"):
			p.assign("impact")
			e.Impact = p.value()
		case p.accept("consequences"):
			for p.atConsequence() {
				e.Consequences = append(e.Consequences, p.parseConsequence())
			}
		default:
			p.unexpected("Stakeholder " + e.Stakeholder.Name())
		}
	})

	return e
}

func (p *parser) atConsequence() bool {
	return p.at(string(model.ConsequenceGood)) || p.at(string(model.ConsequenceBad)) || p.at(string(model.ConsequenceNeutral))
}

func (p *parser) parseConsequence() *model.Consequence {
	c := &model.Consequence{Kind: model.ConsequenceKind(p.next().text), Text: p.str()}

	if p.accept("action") {
		c.Action = &model.MitigationAction{Text: p.str()}
		if t := p.peek(); t.kind == tokIdent && t.text == strings.ToUpper(t.text) {
			c.Action.Type = p.next().text
		}
	}

	return c
}
