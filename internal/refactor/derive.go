package refactor

import (
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/diagnostic"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

// DeriveSubdomainFromUserRequirements creates (or extends) a subdomain
// supporting the given use cases and stories, with one entity per
// feature entity. Requirement names that do not resolve are skipped.
type DeriveSubdomainFromUserRequirements struct {
	Domain       string
	Subdomain    string
	Requirements []string
}

func (r *DeriveSubdomainFromUserRequirements) Name() string { return "DeriveSubdomainFromUserRequirements" }

type subdomainTarget struct {
	domain       *model.Domain
	subdomain    *model.Subdomain
	requirements []*model.UserRequirement
}

func (r *DeriveSubdomainFromUserRequirements) target(c *Context) (*subdomainTarget, error) {
	if err := checkIdentifier(r.Name(), "domain name", r.Domain); err != nil {
		return nil, err
	}

	if err := checkIdentifier(r.Name(), "subdomain name", r.Subdomain); err != nil {
		return nil, err
	}

	t := &subdomainTarget{requirements: findAll[*model.UserRequirement](c, model.KindUserRequirement, r.Requirements)}
	if len(t.requirements) == 0 {
		return nil, fmt.Errorf("none of the requirements %v: %w", r.Requirements, ErrNoTarget)
	}

	d, err := find[*model.Domain](c, r.Name(), model.KindDomain, r.Domain)
	if err != nil && !IsSkip(err) {
		return nil, err
	}

	t.domain = d

	for _, s := range c.Index().ByName(r.Subdomain, model.KindSubdomain) {
		if d == nil || !containsSubdomain(d, s.NodeID()) {
			return nil, diagnostic.Violation(r.Name(), "subdomain %q already exists in another domain", r.Subdomain)
		}

		t.subdomain = s.(*model.Subdomain)
	}

	return t, nil
}

func containsSubdomain(d *model.Domain, id model.ID) bool {
	for _, s := range d.Subdomains {
		if s.ID == id {
			return true
		}
	}

	return false
}

func (r *DeriveSubdomainFromUserRequirements) Check(c *Context) error {
	_, err := r.target(c)
	return err
}

func (r *DeriveSubdomainFromUserRequirements) Refactor(c *Context) error {
	t, err := r.target(c)
	if err != nil {
		return err
	}

	if t.domain == nil {
		t.domain = &model.Domain{ID: model.NewID(), Name: r.Domain}
		c.Document.Domains = append(c.Document.Domains, t.domain)
	}

	if t.subdomain == nil {
		t.subdomain = &model.Subdomain{ID: model.NewID(), Name: r.Subdomain}
		t.domain.Subdomains = append(t.domain.Subdomains, t.subdomain)

		for _, ur := range t.requirements {
			if ur.Role != "" && ur.Benefit != "" {
				t.subdomain.DomainVisionStatement = fmt.Sprintf("Aims at promoting the following benefit for %s %s: %s",
					article(ur.Role), ur.Role, ur.Benefit)

				break
			}
		}
	}

	sd := t.subdomain

	for _, ur := range t.requirements {
		if !model.ContainsRef(sd.Supports, ur.ID) {
			sd.Supports = append(sd.Supports, model.RefTo(ur))
		}

		for _, f := range ur.Features {
			if f.Entity == "" {
				continue
			}

			entity := entityNamed(sd, model.Identifier(f.Entity))

			for _, attr := range f.Attributes {
				addStringAttribute(entity, attributeName(attr))
			}
		}
	}

	c.Logger.Debug("derived subdomain", zap.String("subdomain", sd.Name), zap.Int("entities", len(sd.Entities)))

	return nil
}

// entityNamed returns the entity of sd with the given name, creating it.
func entityNamed(sd *model.Subdomain, name string) *model.DomainObject {
	for _, e := range sd.Entities {
		if e.Name == name {
			return e
		}
	}

	e := &model.DomainObject{ID: model.NewID(), Kind: model.Entity, Name: name}
	sd.Entities = append(sd.Entities, e)

	return e
}

func addStringAttribute(o *model.DomainObject, name string) {
	for _, a := range o.Attributes {
		if a.Name == name {
			return
		}
	}

	o.Attributes = append(o.Attributes, &model.Attribute{Name: name, Type: "String"})
}

// attributeName turns free text into a lowerCamelCase attribute name.
func attributeName(text string) string {
	id := []rune(model.Identifier(text))
	id[0] = unicode.ToLower(id[0])

	return string(id)
}

func article(role string) string {
	if role != "" && strings.ContainsRune("AEIOUaeiou", rune(role[0])) {
		return "an"
	}

	return "a"
}

// DeriveBoundedContextFromSubdomains creates a feature bounded context
// implementing the given subdomains, with one aggregate per subdomain
// holding copies of its entities. Subdomain names that do not resolve are
// skipped.
type DeriveBoundedContextFromSubdomains struct {
	BoundedContext string
	Subdomains     []string
}

func (r *DeriveBoundedContextFromSubdomains) Name() string { return "DeriveBoundedContextFromSubdomains" }

func (r *DeriveBoundedContextFromSubdomains) target(c *Context) ([]*model.Subdomain, error) {
	if err := checkIdentifier(r.Name(), "bounded context name", r.BoundedContext); err != nil {
		return nil, err
	}

	if len(c.Index().ByName(r.BoundedContext, model.KindBoundedContext)) > 0 {
		return nil, diagnostic.Violation(r.Name(), "bounded context %q already exists", r.BoundedContext)
	}

	subdomains := findAll[*model.Subdomain](c, model.KindSubdomain, r.Subdomains)
	if len(subdomains) == 0 {
		return nil, fmt.Errorf("none of the subdomains %v: %w", r.Subdomains, ErrNoTarget)
	}

	return subdomains, nil
}

func (r *DeriveBoundedContextFromSubdomains) Check(c *Context) error {
	_, err := r.target(c)
	return err
}

func (r *DeriveBoundedContextFromSubdomains) Refactor(c *Context) error {
	subdomains, err := r.target(c)
	if err != nil {
		return err
	}

	ix := c.Index()
	names := make([]string, 0, len(subdomains))

	for _, sd := range subdomains {
		names = append(names, sd.Name)
	}

	bc := &model.BoundedContext{
		ID:                    model.NewID(),
		Name:                  r.BoundedContext,
		Type:                  model.BoundedContextFeature,
		Implements:            model.RefsTo(subdomains...),
		DomainVisionStatement: "This Bounded Context realizes the following subdomains: " + strings.Join(names, ", "),
	}

	reserved := make(map[string]bool)

	for _, sd := range subdomains {
		name := model.UniqueName(ix, sd.Name+"Aggregate", reserved, model.KindAggregate)
		reserved[name] = true

		bc.Aggregates = append(bc.Aggregates, &model.Aggregate{
			ID:            model.NewID(),
			Name:          name,
			Features:      append([]model.Ref{}, sd.Supports...),
			DomainObjects: copyObjects(sd.Entities),
		})
	}

	c.Document.BoundedContexts = append(c.Document.BoundedContexts, bc)

	c.Logger.Debug("derived bounded context", zap.String("name", bc.Name), zap.Int("aggregates", len(bc.Aggregates)))

	return nil
}

// copyObjects deep-copies domain objects under fresh IDs. References
// between the copied objects point at the copies.
func copyObjects(objects []*model.DomainObject) []*model.DomainObject {
	copies := make([]*model.DomainObject, 0, len(objects))
	byOld := make(map[model.ID]*model.DomainObject)

	for _, o := range objects {
		cp := o.Clone()
		cp.ID = model.NewID()
		byOld[o.ID] = cp
		copies = append(copies, cp)
	}

	for _, cp := range copies {
		if to, ok := byOld[cp.Extends.Target()]; ok {
			cp.Extends.Bind(to)
		}

		for _, a := range cp.Attributes {
			if to, ok := byOld[a.Reference.Target()]; ok {
				a.Reference.Bind(to)
			}
		}
	}

	return copies
}
