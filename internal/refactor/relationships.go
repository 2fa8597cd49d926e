package refactor

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/diagnostic"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/match"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

// Suspension modes of SuspendPartnership.
const (
	ModeMergeBoundedContexts          = "MERGE_BOUNDED_CONTEXTS"
	ModeExtractNewBoundedContext      = "EXTRACT_NEW_BOUNDED_CONTEXT"
	ModeReplaceWithUpstreamDownstream = "REPLACE_RELATIONSHIP_WITH_UPSTREAM_DOWNSTREAM"
)

var suspendModes = []string{ModeMergeBoundedContexts, ModeExtractNewBoundedContext, ModeReplaceWithUpstreamDownstream}

// endpoints is a relationship of one kind between two bounded contexts.
type endpoints struct {
	first, second *model.BoundedContext
	contextMap    *model.ContextMap
	relationship  *model.Relationship
}

// findRelationship resolves both contexts and the first relationship of
// the given kind between them, in either direction.
func findRelationship(c *Context, command string, kind model.RelationshipKind, first, second string) (*endpoints, error) {
	a, b, err := contextPair(c, command, first, second)
	if err != nil {
		return nil, err
	}

	for _, cm := range c.Set.ContextMaps() {
		for _, rel := range cm.Relationships {
			if rel.Kind == kind && rel.Connects(a.ID, b.ID) {
				return &endpoints{first: a, second: b, contextMap: cm, relationship: rel}, nil
			}
		}
	}

	return nil, fmt.Errorf("no %s relationship between %q and %q: %w", kind, a.Name, b.Name, ErrNoTarget)
}

// upstreamOf returns a new directed relationship from upstream to
// downstream carrying the attributes every relationship kind has.
func upstreamOf(from *model.Relationship, upstream, downstream *model.BoundedContext) *model.Relationship {
	return &model.Relationship{
		ID:                       model.NewID(),
		Kind:                     model.UpstreamDownstream,
		Left:                     model.RefTo(upstream),
		Right:                    model.RefTo(downstream),
		ImplementationTechnology: from.ImplementationTechnology,
	}
}

// switchKind replaces rel by a relationship of kind between the same
// contexts, keeping name and implementation technology.
func switchKind(e *endpoints, kind model.RelationshipKind) {
	rel := e.relationship
	e.contextMap.ReplaceRelationship(rel.ID, &model.Relationship{
		ID:                       model.NewID(),
		Name:                     rel.Name,
		Kind:                     kind,
		Left:                     rel.Left,
		Right:                    rel.Right,
		ImplementationTechnology: rel.ImplementationTechnology,
	})
}

// extractCommons creates a bounded context upstream of both endpoints and
// replaces the relationship by two upstream-downstream relationships.
func extractCommons(c *Context, e *endpoints, suffix string) *model.BoundedContext {
	rel := e.relationship
	ix := c.Index()
	left, right := ix.RefName(rel.Left), ix.RefName(rel.Right)

	first, second := e.first, e.second
	if !rel.Left.Points(first.ID) {
		first, second = second, first
	}

	bc := &model.BoundedContext{
		ID:   model.NewID(),
		Name: model.UniqueName(ix, left+"_"+right+"_"+suffix, nil, model.KindBoundedContext),
	}
	addBoundedContext(c, ix.Document(e.contextMap.ID), bc, first)

	toFirst, toSecond := upstreamOf(rel, bc, first), upstreamOf(rel, bc, second)
	toFirst.Name = rel.Name
	e.contextMap.ReplaceRelationship(rel.ID, toFirst, toSecond)

	c.Logger.Debug("extracted bounded context", zap.String("name", bc.Name))

	return bc
}

// ExtractSharedKernel turns the shared kernel between two bounded contexts
// into a new bounded context both depend on.
type ExtractSharedKernel struct {
	First  string
	Second string
}

func (r *ExtractSharedKernel) Name() string { return "ExtractSharedKernel" }

func (r *ExtractSharedKernel) Check(c *Context) error {
	_, err := findRelationship(c, r.Name(), model.SharedKernel, r.First, r.Second)
	return err
}

func (r *ExtractSharedKernel) Refactor(c *Context) error {
	e, err := findRelationship(c, r.Name(), model.SharedKernel, r.First, r.Second)
	if err != nil {
		return err
	}

	extractCommons(c, e, "SharedKernel")

	return nil
}

// SuspendPartnership ends the partnership between two bounded contexts by
// merging them, by extracting their commonalities into a new context, or
// by making one of them the upstream of the other.
type SuspendPartnership struct {
	First    string
	Second   string
	Mode     string
	Upstream string
}

func (r *SuspendPartnership) Name() string { return "SuspendPartnership" }

func (r *SuspendPartnership) target(c *Context) (*endpoints, error) {
	switch r.Mode {
	case ModeMergeBoundedContexts, ModeExtractNewBoundedContext, ModeReplaceWithUpstreamDownstream:
	default:
		v := diagnostic.Violation(r.Name(), "unknown suspension mode %q", r.Mode)
		v.Suggestions = match.Suggest(r.Mode, suspendModes, match.DefaultMaxSuggestions)

		return nil, v
	}

	e, err := findRelationship(c, r.Name(), model.Partnership, r.First, r.Second)
	if err != nil {
		return nil, err
	}

	if r.Mode == ModeReplaceWithUpstreamDownstream && r.Upstream != e.first.Name && r.Upstream != e.second.Name {
		return nil, diagnostic.Violation(r.Name(), "upstream must be %q or %q, got %q", e.first.Name, e.second.Name, r.Upstream)
	}

	return e, nil
}

func (r *SuspendPartnership) Check(c *Context) error {
	_, err := r.target(c)
	return err
}

func (r *SuspendPartnership) Refactor(c *Context) error {
	e, err := r.target(c)
	if err != nil {
		return err
	}

	switch r.Mode {
	case ModeMergeBoundedContexts:
		e.contextMap.RemoveRelationship(e.relationship.ID)
		return mergeContexts(c, e.first, e.second, false)
	case ModeExtractNewBoundedContext:
		extractCommons(c, e, "Commons")
	default:
		up, down := e.first, e.second
		if r.Upstream == e.second.Name {
			up, down = down, up
		}

		rel := upstreamOf(e.relationship, up, down)
		rel.Name = e.relationship.Name
		e.contextMap.ReplaceRelationship(e.relationship.ID, rel)
	}

	return nil
}

// SwitchPartnershipToSharedKernel replaces a partnership by a shared kernel.
type SwitchPartnershipToSharedKernel struct {
	First  string
	Second string
}

func (r *SwitchPartnershipToSharedKernel) Name() string { return "SwitchPartnershipToSharedKernel" }

func (r *SwitchPartnershipToSharedKernel) Check(c *Context) error {
	_, err := findRelationship(c, r.Name(), model.Partnership, r.First, r.Second)
	return err
}

func (r *SwitchPartnershipToSharedKernel) Refactor(c *Context) error {
	e, err := findRelationship(c, r.Name(), model.Partnership, r.First, r.Second)
	if err != nil {
		return err
	}

	switchKind(e, model.SharedKernel)

	return nil
}

// SwitchSharedKernelToPartnership replaces a shared kernel by a partnership.
type SwitchSharedKernelToPartnership struct {
	First  string
	Second string
}

func (r *SwitchSharedKernelToPartnership) Name() string { return "SwitchSharedKernelToPartnership" }

func (r *SwitchSharedKernelToPartnership) Check(c *Context) error {
	_, err := findRelationship(c, r.Name(), model.SharedKernel, r.First, r.Second)
	return err
}

func (r *SwitchSharedKernelToPartnership) Refactor(c *Context) error {
	e, err := findRelationship(c, r.Name(), model.SharedKernel, r.First, r.Second)
	if err != nil {
		return err
	}

	switchKind(e, model.Partnership)

	return nil
}
