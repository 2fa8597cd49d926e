package refactor

import (
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/diagnostic"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/match"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

// renamable lists the kinds RenameElement can rename.
var renamable = []model.Kind{
	model.KindBoundedContext, model.KindModule, model.KindAggregate, model.KindDomainObject,
	model.KindDomain, model.KindSubdomain, model.KindUserRequirement, model.KindStakeholderGroup,
	model.KindStakeholder, model.KindValueRegister, model.KindValueCluster, model.KindValue,
	model.KindContextMap, model.KindRelationship,
}

// RenameElement renames the single named element. References print the
// live name of their target, so they follow the rename.
type RenameElement struct {
	OldName string
	NewName string
}

func (r *RenameElement) Name() string { return "RenameElement" }

func (r *RenameElement) target(c *Context) (model.Node, error) {
	if err := checkIdentifier(r.Name(), "new name", r.NewName); err != nil {
		return nil, err
	}

	ix := c.Index()

	nodes := ix.ByName(r.OldName, renamable...)
	switch len(nodes) {
	case 0:
		v := diagnostic.Violation(r.Name(), "no element is named %q", r.OldName)
		v.Suggestions = match.Suggest(r.OldName, ix.Names(renamable...), match.DefaultMaxSuggestions)

		return nil, v
	case 1:
	default:
		return nil, diagnostic.Violation(r.Name(), "name %q is ambiguous: %d elements have that name", r.OldName, len(nodes))
	}

	n := nodes[0]
	if len(ix.ByName(r.NewName, n.NodeKind())) > 0 {
		return nil, diagnostic.Violation(r.Name(), "a %s named %q already exists", n.NodeKind(), r.NewName)
	}

	return n, nil
}

func (r *RenameElement) Check(c *Context) error {
	_, err := r.target(c)
	return err
}

func (r *RenameElement) Refactor(c *Context) error {
	n, err := r.target(c)
	if err != nil {
		return err
	}

	switch n := n.(type) {
	case *model.BoundedContext:
		n.Name = r.NewName
	case *model.Module:
		n.Name = r.NewName
	case *model.Aggregate:
		n.Name = r.NewName
	case *model.DomainObject:
		n.Name = r.NewName
	case *model.Domain:
		n.Name = r.NewName
	case *model.Subdomain:
		n.Name = r.NewName
	case *model.UserRequirement:
		n.Name = r.NewName
	case *model.StakeholderGroup:
		n.Name = r.NewName
	case *model.Stakeholder:
		n.Name = r.NewName
	case *model.ValueRegister:
		n.Name = r.NewName
	case *model.ValueCluster:
		n.Name = r.NewName
	case *model.Value:
		n.Name = r.NewName
	case *model.ContextMap:
		n.Name = r.NewName
	case *model.Relationship:
		n.Name = r.NewName
	}

	return nil
}
