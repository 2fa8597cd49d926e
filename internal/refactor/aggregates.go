package refactor

import (
	"slices"

	"go.uber.org/zap"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/diagnostic"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

// SplitAggregateByEntities gives every domain object of an aggregate but
// the first an aggregate of its own, named after the object. Relationships
// exposing the aggregate expose all resulting aggregates.
type SplitAggregateByEntities struct {
	Aggregate string
}

func (r *SplitAggregateByEntities) Name() string { return "SplitAggregateByEntities" }

func (r *SplitAggregateByEntities) target(c *Context) (*model.Aggregate, error) {
	agg, err := find[*model.Aggregate](c, r.Name(), model.KindAggregate, r.Aggregate)
	if err != nil {
		return nil, err
	}

	if len(agg.DomainObjects) < 2 {
		return nil, diagnostic.Violation(r.Name(), "aggregate %q must contain at least two domain objects, it has %d",
			agg.Name, len(agg.DomainObjects))
	}

	return agg, nil
}

func (r *SplitAggregateByEntities) Check(c *Context) error {
	_, err := r.target(c)
	return err
}

func (r *SplitAggregateByEntities) Refactor(c *Context) error {
	agg, err := r.target(c)
	if err != nil {
		return err
	}

	ix := c.Index()
	reserved := make(map[string]bool)

	created := make([]*model.Aggregate, 0, len(agg.DomainObjects)-1)

	for _, obj := range agg.DomainObjects[1:] {
		name := model.UniqueName(ix, obj.Name, reserved, model.KindAggregate)
		reserved[name] = true

		created = append(created, &model.Aggregate{
			ID:                  model.NewID(),
			Name:                name,
			Owner:               agg.Owner,
			Features:            slices.Clone(agg.Features),
			LikelihoodForChange: agg.LikelihoodForChange,
			DomainObjects:       []*model.DomainObject{obj},
		})
	}

	agg.DomainObjects = agg.DomainObjects[:1]

	switch parent := ix.Parent(agg.ID).(type) {
	case *model.BoundedContext:
		parent.Aggregates = insertAfter(parent.Aggregates, agg.ID, created)
	case *model.Module:
		parent.Aggregates = insertAfter(parent.Aggregates, agg.ID, created)
	}

	for _, rel := range c.Set.Relationships() {
		i := slices.IndexFunc(rel.ExposedAggregates, func(ref model.Ref) bool { return ref.Points(agg.ID) })
		if i < 0 {
			continue
		}

		rel.ExposedAggregates = slices.Insert(rel.ExposedAggregates, i+1, model.RefsTo(created...)...)
	}

	c.Logger.Debug("split aggregate", zap.String("aggregate", agg.Name), zap.Int("created", len(created)))

	return nil
}

func insertAfter(aggs []*model.Aggregate, id model.ID, extra []*model.Aggregate) []*model.Aggregate {
	i := slices.IndexFunc(aggs, func(a *model.Aggregate) bool { return a.ID == id })
	return slices.Insert(aggs, i+1, extra...)
}

// MergeAggregates merges the second aggregate into the first. Owner and
// likelihood for change come from the first unless TakeAttributesFromSecond
// is set.
type MergeAggregates struct {
	First                    string
	Second                   string
	TakeAttributesFromSecond bool
}

func (r *MergeAggregates) Name() string { return "MergeAggregates" }

func (r *MergeAggregates) pair(c *Context) (*model.Aggregate, *model.Aggregate, error) {
	a, err := find[*model.Aggregate](c, r.Name(), model.KindAggregate, r.First)
	if err != nil {
		return nil, nil, err
	}

	b, err := find[*model.Aggregate](c, r.Name(), model.KindAggregate, r.Second)
	if err != nil {
		return nil, nil, err
	}

	if a.ID == b.ID {
		return nil, nil, diagnostic.Violation(r.Name(), "expected two different aggregates, got %q twice", a.Name)
	}

	return a, b, nil
}

func (r *MergeAggregates) Check(c *Context) error {
	_, _, err := r.pair(c)
	return err
}

func (r *MergeAggregates) Refactor(c *Context) error {
	keep, gone, err := r.pair(c)
	if err != nil {
		return err
	}

	objects := nameSet(keep.DomainObjects)
	for _, o := range gone.DomainObjects {
		if name := freeName(objects, o.Name); name != o.Name {
			c.Logger.Debug("renamed merged domain object", zap.String("from", o.Name), zap.String("to", name))
			o.Name = name
		}
	}

	keep.DomainObjects = append(keep.DomainObjects, gone.DomainObjects...)
	gone.DomainObjects = nil

	keep.Features = unionRefs(keep.Features, gone.Features)
	keep.Responsibilities = unionStrings(keep.Responsibilities, gone.Responsibilities)

	if r.TakeAttributesFromSecond {
		if !gone.Owner.IsZero() {
			keep.Owner = gone.Owner
		}

		if gone.LikelihoodForChange != model.VolatilityUndefined {
			keep.LikelihoodForChange = gone.LikelihoodForChange
		}
	}

	redirected := c.Set.Redirect(gone.ID, keep)

	for _, rel := range c.Set.Relationships() {
		rel.ExposedAggregates = dedupeRefs(rel.ExposedAggregates, "")
	}

	if err := c.Set.Delete(gone.ID); err != nil {
		return err
	}

	c.Logger.Debug("merged aggregates", zap.String("into", keep.Name), zap.String("merged", gone.Name),
		zap.Int("redirected", redirected))

	return nil
}
