package refactor

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/diagnostic"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

// partition is a group of aggregates that moves into one new bounded
// context.
type partition struct {
	label      string
	aggregates []*model.Aggregate
}

// partitionBy groups the aggregates of bc by key, in order of first
// appearance.
func partitionBy(bc *model.BoundedContext, key func(a *model.Aggregate) (id, label string)) []partition {
	var parts []partition

	index := make(map[string]int)

	for _, a := range bc.AllAggregates() {
		id, label := key(a)

		i, ok := index[id]
		if !ok {
			i = len(parts)
			index[id] = i
			parts = append(parts, partition{label: label})
		}

		parts[i].aggregates = append(parts[i].aggregates, a)
	}

	return parts
}

// splitOff moves every partition into a new bounded context created next
// to source, then rehomes the relationships of source. Names are
// source_label, made unique.
func splitOff(c *Context, source *model.BoundedContext, parts []partition) []*model.BoundedContext {
	ix := c.Index()
	doc := ix.Document(source.ID)
	reserved := make(map[string]bool)

	var created []*model.BoundedContext

	for _, part := range parts {
		label := part.label
		if label == "" {
			label = "Unassigned"
		}

		name := model.UniqueName(ix, source.Name+"_"+model.Identifier(label), reserved, model.KindBoundedContext)
		reserved[name] = true

		created = append(created, moveInto(c, doc, source, name, part.aggregates))
	}

	rehomeRelationships(c, source)

	return created
}

// moveInto creates a bounded context named name holding aggregates, which
// are removed from source.
func moveInto(c *Context, doc *model.ContextMappingModel, source *model.BoundedContext, name string,
	aggregates []*model.Aggregate,
) *model.BoundedContext {
	bc := &model.BoundedContext{ID: model.NewID(), Name: name, Type: source.Type}

	for _, a := range aggregates {
		source.RemoveAggregate(a.ID)
		bc.Aggregates = append(bc.Aggregates, a)
	}

	addBoundedContext(c, doc, bc, source)

	c.Logger.Debug("moved aggregates", zap.String("from", source.Name), zap.String("to", name),
		zap.Int("aggregates", len(aggregates)))

	return bc
}

// rehomeRelationships makes every directed relationship whose upstream is
// source start at the context that now owns its exposed aggregates. A
// relationship whose exposed aggregates span several contexts is split
// into parallel relationships, one per owner, with the same roles.
func rehomeRelationships(c *Context, source *model.BoundedContext) {
	ix := c.Index()

	for _, cm := range c.Set.ContextMaps() {
		for _, r := range append([]*model.Relationship{}, cm.Relationships...) {
			if r.Kind.IsSymmetric() || !r.Upstream().Points(source.ID) || len(r.ExposedAggregates) == 0 {
				continue
			}

			var owners []*model.BoundedContext

			exposed := make(map[model.ID][]model.Ref)

			for _, ref := range r.ExposedAggregates {
				owner := ix.OwningContext(ref.Target())
				if owner == nil {
					owner = source
				}

				if _, ok := exposed[owner.ID]; !ok {
					owners = append(owners, owner)
				}

				exposed[owner.ID] = append(exposed[owner.ID], ref)
			}

			if len(owners) == 1 && owners[0].ID == source.ID {
				continue
			}

			parallel := make([]*model.Relationship, 0, len(owners))

			for i, owner := range owners {
				rel := r
				if i > 0 {
					rel = r.Clone()
					rel.ID = model.NewID()
					rel.Name = ""
				}

				rel.Left = model.RefTo(owner)
				rel.ExposedAggregates = exposed[owner.ID]
				parallel = append(parallel, rel)
			}

			cm.ReplaceRelationship(r.ID, parallel...)
		}
	}
}

// SplitBoundedContextByOwner moves the aggregates of each owning team but
// the first into a bounded context of their own.
type SplitBoundedContextByOwner struct {
	BoundedContext string
}

func (r *SplitBoundedContextByOwner) Name() string { return "SplitBoundedContextByOwner" }

func (r *SplitBoundedContextByOwner) partitions(c *Context) (*model.BoundedContext, []partition, error) {
	bc, err := find[*model.BoundedContext](c, r.Name(), model.KindBoundedContext, r.BoundedContext)
	if err != nil {
		return nil, nil, err
	}

	ix := c.Index()
	parts := partitionBy(bc, func(a *model.Aggregate) (string, string) {
		if a.Owner.IsZero() {
			return "", ""
		}

		return string(a.Owner.Target()) + "/" + a.Owner.Name(), ix.RefName(a.Owner)
	})

	if len(parts) < 2 {
		return nil, nil, diagnostic.Violation(r.Name(), "bounded context %q has no aggregates of different owners", bc.Name)
	}

	return bc, parts, nil
}

func (r *SplitBoundedContextByOwner) Check(c *Context) error {
	_, _, err := r.partitions(c)
	return err
}

func (r *SplitBoundedContextByOwner) Refactor(c *Context) error {
	bc, parts, err := r.partitions(c)
	if err != nil {
		return err
	}

	splitOff(c, bc, parts[1:])

	return nil
}

// SplitBoundedContextByFeatures moves the aggregates of each distinct set
// of features but the first into a bounded context of their own.
type SplitBoundedContextByFeatures struct {
	BoundedContext string
}

func (r *SplitBoundedContextByFeatures) Name() string { return "SplitBoundedContextByFeatures" }

func (r *SplitBoundedContextByFeatures) partitions(c *Context) (*model.BoundedContext, []partition, error) {
	bc, err := find[*model.BoundedContext](c, r.Name(), model.KindBoundedContext, r.BoundedContext)
	if err != nil {
		return nil, nil, err
	}

	ix := c.Index()
	parts := partitionBy(bc, func(a *model.Aggregate) (string, string) {
		ids := make([]string, 0, len(a.Features))
		names := make([]string, 0, len(a.Features))

		for _, f := range a.Features {
			ids = append(ids, string(f.Target())+"/"+f.Name())
			names = append(names, ix.RefName(f))
		}

		return strings.Join(ids, ","), strings.Join(names, "_")
	})

	if len(parts) < 2 {
		return nil, nil, diagnostic.Violation(r.Name(), "bounded context %q has no aggregates of different features", bc.Name)
	}

	return bc, parts, nil
}

func (r *SplitBoundedContextByFeatures) Check(c *Context) error {
	_, _, err := r.partitions(c)
	return err
}

func (r *SplitBoundedContextByFeatures) Refactor(c *Context) error {
	bc, parts, err := r.partitions(c)
	if err != nil {
		return err
	}

	splitOff(c, bc, parts[1:])

	return nil
}

// ExtractAggregatesByVolatility moves the aggregates with the given
// likelihood for change into a new bounded context.
type ExtractAggregatesByVolatility struct {
	BoundedContext string
	Volatility     model.Volatility
}

func (r *ExtractAggregatesByVolatility) Name() string { return "ExtractAggregatesByVolatility" }

func (r *ExtractAggregatesByVolatility) selection(c *Context) (*model.BoundedContext, []*model.Aggregate, error) {
	if r.Volatility == model.VolatilityUndefined || !r.Volatility.Valid() {
		return nil, nil, diagnostic.Violation(r.Name(), "%q is not a volatility (RARELY, NORMAL, OFTEN)", r.Volatility)
	}

	bc, err := find[*model.BoundedContext](c, r.Name(), model.KindBoundedContext, r.BoundedContext)
	if err != nil {
		return nil, nil, err
	}

	var selected []*model.Aggregate

	for _, a := range bc.AllAggregates() {
		if a.LikelihoodForChange == r.Volatility {
			selected = append(selected, a)
		}
	}

	if len(selected) == 0 {
		return nil, nil, fmt.Errorf("no %s aggregate in %q: %w", r.Volatility, bc.Name, ErrNoTarget)
	}

	return bc, selected, nil
}

func (r *ExtractAggregatesByVolatility) Check(c *Context) error {
	_, _, err := r.selection(c)
	return err
}

func (r *ExtractAggregatesByVolatility) Refactor(c *Context) error {
	bc, selected, err := r.selection(c)
	if err != nil {
		return err
	}

	splitOff(c, bc, []partition{{label: "Volatility_" + string(r.Volatility), aggregates: selected}})

	return nil
}

// ExtractAggregatesByCohesion moves the named aggregates into a new
// bounded context. Names that match no aggregate of the context are
// skipped.
type ExtractAggregatesByCohesion struct {
	BoundedContext    string
	NewBoundedContext string
	Aggregates        []string
}

func (r *ExtractAggregatesByCohesion) Name() string { return "ExtractAggregatesByCohesion" }

func (r *ExtractAggregatesByCohesion) selection(c *Context) (*model.BoundedContext, []*model.Aggregate, error) {
	if err := checkIdentifier(r.Name(), "bounded context name", r.NewBoundedContext); err != nil {
		return nil, nil, err
	}

	bc, err := find[*model.BoundedContext](c, r.Name(), model.KindBoundedContext, r.BoundedContext)
	if err != nil {
		return nil, nil, err
	}

	if len(c.Index().ByName(r.NewBoundedContext, model.KindBoundedContext)) > 0 {
		return nil, nil, diagnostic.Violation(r.Name(), "bounded context %q already exists", r.NewBoundedContext)
	}

	byName := make(map[string]*model.Aggregate)
	for _, a := range bc.AllAggregates() {
		if _, ok := byName[a.Name]; !ok {
			byName[a.Name] = a
		}
	}

	var selected []*model.Aggregate

	for _, name := range r.Aggregates {
		a, ok := byName[name]
		if !ok {
			c.Logger.Debug("skipping unknown aggregate", zap.String("aggregate", name))
			continue
		}

		delete(byName, name)
		selected = append(selected, a)
	}

	if len(selected) == 0 {
		return nil, nil, fmt.Errorf("none of %v in %q: %w", r.Aggregates, bc.Name, ErrNoTarget)
	}

	return bc, selected, nil
}

func (r *ExtractAggregatesByCohesion) Check(c *Context) error {
	_, _, err := r.selection(c)
	return err
}

func (r *ExtractAggregatesByCohesion) Refactor(c *Context) error {
	bc, selected, err := r.selection(c)
	if err != nil {
		return err
	}

	moveInto(c, c.Index().Document(bc.ID), bc, r.NewBoundedContext, selected)
	rehomeRelationships(c, bc)

	return nil
}

// MergeBoundedContexts merges the second bounded context into the first.
// Attributes come from the first unless TakeAttributesFromSecond is set.
type MergeBoundedContexts struct {
	First                    string
	Second                   string
	TakeAttributesFromSecond bool
}

func (r *MergeBoundedContexts) Name() string { return "MergeBoundedContexts" }

func (r *MergeBoundedContexts) pair(c *Context) (*model.BoundedContext, *model.BoundedContext, error) {
	return contextPair(c, r.Name(), r.First, r.Second)
}

func (r *MergeBoundedContexts) Check(c *Context) error {
	_, _, err := r.pair(c)
	return err
}

func (r *MergeBoundedContexts) Refactor(c *Context) error {
	keep, gone, err := r.pair(c)
	if err != nil {
		return err
	}

	return mergeContexts(c, keep, gone, r.TakeAttributesFromSecond)
}

// contextPair resolves two distinct bounded contexts.
func contextPair(c *Context, command, first, second string) (*model.BoundedContext, *model.BoundedContext, error) {
	a, err := find[*model.BoundedContext](c, command, model.KindBoundedContext, first)
	if err != nil {
		return nil, nil, err
	}

	b, err := find[*model.BoundedContext](c, command, model.KindBoundedContext, second)
	if err != nil {
		return nil, nil, err
	}

	if a.ID == b.ID {
		return nil, nil, diagnostic.Violation(command, "expected two different bounded contexts, got %q twice", a.Name)
	}

	return a, b, nil
}

// mergeContexts moves everything of gone into keep, points every reference
// to gone at keep and deletes gone. Moved aggregates and modules whose
// name keep already uses get a numeric suffix.
func mergeContexts(c *Context, keep, gone *model.BoundedContext, takeSecond bool) error {
	aggregates, modules := nameSet(keep.Aggregates), nameSet(keep.Modules)
	for _, a := range gone.Aggregates {
		if name := freeName(aggregates, a.Name); name != a.Name {
			c.Logger.Debug("renamed merged aggregate", zap.String("from", a.Name), zap.String("to", name))
			a.Name = name
		}
	}

	for _, m := range gone.Modules {
		m.Name = freeName(modules, m.Name)
	}

	keep.Aggregates = append(keep.Aggregates, gone.Aggregates...)
	keep.Modules = append(keep.Modules, gone.Modules...)
	gone.Aggregates, gone.Modules = nil, nil

	keep.Implements = unionRefs(keep.Implements, gone.Implements)
	keep.Realizes = unionRefs(keep.Realizes, gone.Realizes)
	keep.Responsibilities = unionStrings(keep.Responsibilities, gone.Responsibilities)

	if takeSecond {
		if gone.Type != "" {
			keep.Type = gone.Type
		}

		if gone.DomainVisionStatement != "" {
			keep.DomainVisionStatement = gone.DomainVisionStatement
		}

		if gone.ImplementationTechnology != "" {
			keep.ImplementationTechnology = gone.ImplementationTechnology
		}
	}

	// one value register per context: fold the register of gone into keep's
	if kept, folded := c.Set.ValueRegisterFor(keep.ID), c.Set.ValueRegisterFor(gone.ID); kept != nil && folded != nil {
		kept.Clusters = append(kept.Clusters, folded.Clusters...)
		kept.Values = append(kept.Values, folded.Values...)
		folded.Clusters, folded.Values = nil, nil

		if err := c.Set.Delete(folded.ID); err != nil {
			return err
		}
	}

	redirected := c.Set.Redirect(gone.ID, keep)

	for _, cm := range c.Set.ContextMaps() {
		cm.Contains = dedupeRefs(cm.Contains, "")

		for _, rel := range append([]*model.Relationship{}, cm.Relationships...) {
			if rel.Left.Points(keep.ID) && rel.Right.Points(keep.ID) {
				cm.RemoveRelationship(rel.ID)
			}
		}
	}

	keep.Realizes = dedupeRefs(keep.Realizes, keep.ID)
	keep.Implements = dedupeRefs(keep.Implements, "")

	for _, d := range c.Set.Documents {
		for _, s := range d.Stakeholders {
			s.Contexts = dedupeRefs(s.Contexts, "")
		}
	}

	if err := c.Set.Delete(gone.ID); err != nil {
		return err
	}

	c.Logger.Debug("merged bounded contexts", zap.String("into", keep.Name), zap.String("merged", gone.Name),
		zap.Int("redirected", redirected))

	return nil
}
