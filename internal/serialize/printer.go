package serialize

import (
	"strconv"
	"strings"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

// Print renders the document canonically. Root elements follow the section
// order context map, bounded contexts, domains, user requirements,
// stakeholders, value registers; within a section they keep model order.
func Print(doc *model.ContextMappingModel, set *model.Set) string {
	return printDocument(doc, model.NewIndex(set))
}

func printDocument(doc *model.ContextMappingModel, ix *model.Index) string {
	var parts []string

	if len(doc.Imports) > 0 {
		var b strings.Builder
		for i, imp := range doc.Imports {
			if i > 0 {
				b.WriteByte('\n')
			}

			b.WriteString("import " + strconv.Quote(imp))
		}

		parts = append(parts, b.String())
	}

	for _, n := range doc.RootElements() {
		parts = append(parts, printRoot(n, ix))
	}

	if len(parts) == 0 {
		return ""
	}

	return strings.Join(parts, "\n\n") + "\n"
}

// printRoot renders one root element without a trailing newline.
func printRoot(n model.Node, ix *model.Index) string {
	p := &printer{ix: ix}

	switch n := n.(type) {
	case *model.ContextMap:
		p.contextMap(n)
	case *model.BoundedContext:
		p.boundedContext(n)
	case *model.Domain:
		p.domain(n)
	case *model.UserRequirement:
		p.userRequirement(n)
	case *model.Stakeholders:
		p.stakeholders(n)
	case *model.ValueRegister:
		p.valueRegister(n)
	}

	return strings.TrimSuffix(p.b.String(), "\n")
}

type printer struct {
	ix    *model.Index
	b     strings.Builder
	depth int
	// used tracks, per open body, whether something was printed in it.
	used []bool
}

func (p *printer) line(text string) {
	p.b.WriteString(strings.Repeat("\t", p.depth))
	p.b.WriteString(text)
	p.b.WriteByte('\n')
}

func (p *printer) open(header string) {
	p.line(header + " {")
	p.depth++
	p.used = append(p.used, false)
}

func (p *printer) close() {
	p.depth--
	p.used = p.used[:len(p.used)-1]
	p.line("}")
}

// attr prints one attribute line of the current body.
func (p *printer) attr(text string) {
	p.line(text)
	p.markUsed()
}

// nested prints a child element, separated from preceding content by a
// blank line.
func (p *printer) nested(fn func()) {
	if len(p.used) > 0 && p.used[len(p.used)-1] {
		p.b.WriteByte('\n')
	}

	fn()
	p.markUsed()
}

func (p *printer) markUsed() {
	if len(p.used) > 0 {
		p.used[len(p.used)-1] = true
	}
}

func (p *printer) names(refs []model.Ref) string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, p.ix.RefName(r))
	}

	return strings.Join(out, ", ")
}

func quoteAll(texts []string) string {
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		out = append(out, strconv.Quote(t))
	}

	return strings.Join(out, ", ")
}

func (p *printer) contextMap(cm *model.ContextMap) {
	header := "ContextMap"
	if cm.Name != "" {
		header += " " + cm.Name
	}

	p.open(header)

	if cm.Type != "" {
		p.attr("type = " + cm.Type)
	}

	if cm.State != "" {
		p.attr("state = " + cm.State)
	}

	if len(cm.Contains) > 0 {
		p.attr("contains " + p.names(cm.Contains))
	}

	for _, r := range cm.Relationships {
		p.nested(func() { p.relationship(r) })
	}

	p.close()
}

func (p *printer) relationship(r *model.Relationship) {
	left, right := p.ix.RefName(r.Left), p.ix.RefName(r.Right)

	var header string

	switch r.Kind {
	case model.Partnership:
		header = left + " [P]<->[P] " + right
	case model.SharedKernel:
		header = left + " [SK]<->[SK] " + right
	default:
		up, down := model.RoleUpstream, model.RoleDownstream
		if r.Kind == model.CustomerSupplier {
			up, down = model.RoleSupplier, model.RoleCustomer
		}

		header = left + " " + roleList(up, r.UpstreamRoles) + "->" + roleList(down, r.DownstreamRoles) + " " + right
	}

	if r.Name != "" {
		header += " : " + r.Name
	}

	if r.ImplementationTechnology == "" && len(r.ExposedAggregates) == 0 && r.DownstreamRights == "" {
		p.line(header)
		return
	}

	p.open(header)

	if r.ImplementationTechnology != "" {
		p.attr("implementationTechnology = " + strconv.Quote(r.ImplementationTechnology))
	}

	if len(r.ExposedAggregates) > 0 {
		p.attr("exposedAggregates = " + p.names(r.ExposedAggregates))
	}

	if r.DownstreamRights != "" {
		p.attr("downstreamRights = " + r.DownstreamRights)
	}

	p.close()
}

func roleList(flag string, roles []string) string {
	return "[" + strings.Join(append([]string{flag}, roles...), ",") + "]"
}

func (p *printer) boundedContext(bc *model.BoundedContext) {
	header := "BoundedContext " + bc.Name
	if len(bc.Implements) > 0 {
		header += " implements " + p.names(bc.Implements)
	}

	if len(bc.Realizes) > 0 {
		header += " realizes " + p.names(bc.Realizes)
	}

	if bc.Type == "" && bc.DomainVisionStatement == "" && len(bc.Responsibilities) == 0 &&
		bc.ImplementationTechnology == "" && len(bc.Aggregates) == 0 && len(bc.Modules) == 0 {
		p.line(header)
		return
	}

	p.open(header)

	if bc.Type != "" {
		p.attr("type = " + string(bc.Type))
	}

	if bc.DomainVisionStatement != "" {
		p.attr("domainVisionStatement = " + strconv.Quote(bc.DomainVisionStatement))
	}

	if len(bc.Responsibilities) > 0 {
		p.attr("responsibilities = " + quoteAll(bc.Responsibilities))
	}

	if bc.ImplementationTechnology != "" {
		p.attr("implementationTechnology = " + strconv.Quote(bc.ImplementationTechnology))
	}

	for _, a := range bc.Aggregates {
		p.nested(func() { p.aggregate(a) })
	}

	for _, m := range bc.Modules {
		p.nested(func() { p.module(m) })
	}

	p.close()
}

func (p *printer) module(m *model.Module) {
	if len(m.Aggregates) == 0 {
		p.line("Module " + m.Name)
		return
	}

	p.open("Module " + m.Name)

	for _, a := range m.Aggregates {
		p.nested(func() { p.aggregate(a) })
	}

	p.close()
}

func (p *printer) aggregate(a *model.Aggregate) {
	p.open("Aggregate " + a.Name)

	if !a.Owner.IsZero() {
		p.attr("owner = " + p.ix.RefName(a.Owner))
	}

	if len(a.Features) > 0 {
		p.attr("features = " + p.names(a.Features))
	}

	if a.LikelihoodForChange != "" {
		p.attr("likelihoodForChange = " + string(a.LikelihoodForChange))
	}

	if len(a.Responsibilities) > 0 {
		p.attr("responsibilities = " + quoteAll(a.Responsibilities))
	}

	for _, o := range a.DomainObjects {
		p.nested(func() { p.domainObject(o) })
	}

	p.close()
}

func (p *printer) domainObject(o *model.DomainObject) {
	header := string(o.Kind) + " " + o.Name

	if o.Kind == model.Enum {
		if len(o.EnumValues) == 0 {
			p.line(header)
			return
		}

		p.open(header)
		p.attr(strings.Join(o.EnumValues, ", "))
		p.close()

		return
	}

	if !o.Extends.IsZero() {
		if o.Extends.IsOptional() {
			header += " extends " + p.ix.RefName(o.Extends)
		} else {
			header += " extends @" + p.ix.RefName(o.Extends)
		}
	}

	if !o.AggregateRoot && len(o.Attributes) == 0 {
		p.line(header)
		return
	}

	p.open(header)

	if o.AggregateRoot {
		p.attr("aggregateRoot")
	}

	for _, a := range o.Attributes {
		p.attr(p.attribute(a))
	}

	p.close()
}

func (p *printer) attribute(a *model.Attribute) string {
	typ := a.Type

	var prefix string

	if a.IsReference() {
		typ = p.ix.RefName(a.Reference)
		prefix = "- "
	}

	if a.Collection != "" {
		typ = a.Collection + "<" + typ + ">"
	}

	text := prefix + typ + " " + a.Name
	if a.Key {
		text += " key"
	}

	return text
}

func (p *printer) domain(d *model.Domain) {
	if d.DomainVisionStatement == "" && len(d.Subdomains) == 0 {
		p.line("Domain " + d.Name)
		return
	}

	p.open("Domain " + d.Name)

	if d.DomainVisionStatement != "" {
		p.attr("domainVisionStatement = " + strconv.Quote(d.DomainVisionStatement))
	}

	for _, s := range d.Subdomains {
		p.nested(func() { p.subdomain(s) })
	}

	p.close()
}

func (p *printer) subdomain(s *model.Subdomain) {
	header := "Subdomain " + s.Name
	if len(s.Supports) > 0 {
		header += " supports " + p.names(s.Supports)
	}

	if s.Type == "" && s.DomainVisionStatement == "" && len(s.Entities) == 0 {
		p.line(header)
		return
	}

	p.open(header)

	if s.Type != "" {
		p.attr("type = " + string(s.Type))
	}

	if s.DomainVisionStatement != "" {
		p.attr("domainVisionStatement = " + strconv.Quote(s.DomainVisionStatement))
	}

	for _, o := range s.Entities {
		p.nested(func() { p.domainObject(o) })
	}

	p.close()
}

func (p *printer) userRequirement(ur *model.UserRequirement) {
	header := string(ur.Kind) + " " + ur.Name
	if !ur.SplittingStory.IsZero() {
		header += " split by " + p.ix.RefName(ur.SplittingStory)
	}

	if ur.Role == "" && len(ur.Features) == 0 && ur.Benefit == "" {
		p.line(header)
		return
	}

	p.open(header)

	if ur.Kind == model.UseCase {
		if ur.Role != "" {
			p.attr("actor = " + strconv.Quote(ur.Role))
		}

		if len(ur.Features) > 0 {
			features := make([]string, 0, len(ur.Features))
			for _, f := range ur.Features {
				features = append(features, feature(f))
			}

			p.attr("interactions = " + strings.Join(features, ", "))
		}

		if ur.Benefit != "" {
			p.attr("benefit = " + strconv.Quote(ur.Benefit))
		}
	} else {
		if ur.Role != "" {
			p.attr("As " + article(ur.Role) + " " + strconv.Quote(ur.Role))
		}

		for _, f := range ur.Features {
			p.attr("I want to " + feature(f))
		}

		if ur.Benefit != "" {
			p.attr("so that " + strconv.Quote(ur.Benefit))
		}
	}

	p.close()
}

func feature(f *model.Feature) string {
	text := strconv.Quote(f.Verb)
	if f.Entity == "" {
		return text
	}

	if f.Article != "" {
		text += " " + f.Article
	}

	text += " " + strconv.Quote(f.Entity)

	if len(f.Attributes) > 0 {
		text += " with its " + quoteAll(f.Attributes)
	}

	return text
}

func article(role string) string {
	if role != "" && strings.ContainsRune("AEIOUaeiou", rune(role[0])) {
		return "an"
	}

	return "a"
}

func (p *printer) stakeholders(s *model.Stakeholders) {
	header := "Stakeholders"
	if len(s.Contexts) > 0 {
		header += " of " + p.names(s.Contexts)
	}

	if len(s.Items) == 0 {
		p.line(header)
		return
	}

	p.open(header)
	p.stakeholderItems(s.Items)
	p.close()
}

func (p *printer) stakeholderItems(items []model.StakeholderItem) {
	for _, it := range items {
		p.nested(func() {
			switch it := it.(type) {
			case *model.StakeholderGroup:
				p.stakeholderGroup(it)
			case *model.Stakeholder:
				p.stakeholder(it)
			}
		})
	}
}

func (p *printer) stakeholderGroup(g *model.StakeholderGroup) {
	if len(g.Items) == 0 {
		p.line("StakeholderGroup " + g.Name)
		return
	}

	p.open("StakeholderGroup " + g.Name)
	p.stakeholderItems(g.Items)
	p.close()
}

func (p *printer) stakeholder(s *model.Stakeholder) {
	if s.Influence == "" && s.Interest == "" && s.Description == "" {
		p.line("Stakeholder " + s.Name)
		return
	}

	p.open("Stakeholder " + s.Name)

	if s.Influence != "" {
		p.attr("influence = " + s.Influence)
	}

	if s.Interest != "" {
		p.attr("interest = " + s.Interest)
	}

	if s.Description != "" {
		p.attr("description = " + strconv.Quote(s.Description))
	}

	p.close()
}

func (p *printer) valueRegister(vr *model.ValueRegister) {
	header := "ValueRegister " + vr.Name
	if !vr.Context.IsZero() {
		header += " for " + p.ix.RefName(vr.Context)
	}

	if len(vr.Clusters) == 0 && len(vr.Values) == 0 {
		p.line(header)
		return
	}

	p.open(header)

	for _, c := range vr.Clusters {
		p.nested(func() { p.valueCluster(c) })
	}

	for _, v := range vr.Values {
		p.nested(func() { p.value(v) })
	}

	p.close()
}

func (p *printer) valueCluster(c *model.ValueCluster) {
	if c.CoreValue == "" && len(c.Demonstrators) == 0 && len(c.Values) == 0 && len(c.Elicitations) == 0 {
		p.line("ValueCluster " + c.Name)
		return
	}

	p.open("ValueCluster " + c.Name)

	if c.CoreValue != "" {
		p.attr("coreValue = " + strconv.Quote(c.CoreValue))
	}

	for _, d := range c.Demonstrators {
		p.attr("demonstrator = " + strconv.Quote(d))
	}

	for _, v := range c.Values {
		p.nested(func() { p.value(v) })
	}

	for _, e := range c.Elicitations {
		p.nested(func() { p.elicitation(e) })
	}

	p.close()
}

func (p *printer) value(v *model.Value) {
	if !v.IsCore && len(v.Demonstrators) == 0 && len(v.RelatedValues) == 0 && len(v.Elicitations) == 0 {
		p.line("Value " + v.Name)
		return
	}

	p.open("Value " + v.Name)

	if v.IsCore {
		p.attr("isCore")
	}

	for _, d := range v.Demonstrators {
		p.attr("demonstrator = " + strconv.Quote(d))
	}

	for _, r := range v.RelatedValues {
		p.attr("relatedValue = " + strconv.Quote(r))
	}

	for _, e := range v.Elicitations {
		p.nested(func() { p.elicitation(e) })
	}

	p.close()
}

func (p *printer) elicitation(e *model.ValueElicitation) {
	header := "Stakeholder " + p.ix.RefName(e.Stakeholder)

	if e.Priority == "" && e.Impact == "" && len(e.Consequences) == 0 {
		p.line(header)
		return
	}

	p.open(header)

	if e.Priority != "" {
		p.attr("priority = " + e.Priority)
	}

	if e.Impact != "" {
		p.attr("impact = " + e.Impact)
	}

	if len(e.Consequences) > 0 {
		p.attr("consequences")
		p.depth++

		for _, c := range e.Consequences {
			text := string(c.Kind) + " " + strconv.Quote(c.Text)
			if c.Action != nil {
				text += " action " + strconv.Quote(c.Action.Text)
				if c.Action.Type != "" {
					text += " " + c.Action.Type
				}
			}

			p.line(text)
		}

		p.depth--
	}

	p.close()
}
