package refactor

import (
	"fmt"
	"slices"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/diagnostic"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

// ValueRegisterResponsibility is added to a bounded context that gets a
// value register.
const ValueRegisterResponsibility = "Ethical values are assessed in its value register"

// MoveStakeholderToNewStakeholderGroup wraps a stakeholder into a new group
// at the stakeholder's position.
type MoveStakeholderToNewStakeholderGroup struct {
	Stakeholder string
}

func (r *MoveStakeholderToNewStakeholderGroup) Name() string {
	return "MoveStakeholderToNewStakeholderGroup"
}

func (r *MoveStakeholderToNewStakeholderGroup) Check(c *Context) error {
	_, err := mustFind[*model.Stakeholder](c, r.Name(), model.KindStakeholder, r.Stakeholder)
	return err
}

func (r *MoveStakeholderToNewStakeholderGroup) Refactor(c *Context) error {
	s, err := mustFind[*model.Stakeholder](c, r.Name(), model.KindStakeholder, r.Stakeholder)
	if err != nil {
		return err
	}

	ix := c.Index()
	group := &model.StakeholderGroup{
		ID:    model.NewID(),
		Name:  model.UniqueName(ix, s.Name+"_Group", nil, model.KindStakeholderGroup, model.KindStakeholder),
		Items: []model.StakeholderItem{s},
	}

	var items *[]model.StakeholderItem

	switch p := ix.Parent(s.ID).(type) {
	case *model.Stakeholders:
		items = &p.Items
	case *model.StakeholderGroup:
		items = &p.Items
	default:
		return fmt.Errorf("stakeholder %q has no container", s.Name)
	}

	i := slices.IndexFunc(*items, func(it model.StakeholderItem) bool { return it.NodeID() == s.ID })
	(*items)[i] = group

	return nil
}

// CreateValue4Stakeholder adds a value elicited by the stakeholder to the
// first value register of the document, creating the register if needed.
// It does nothing when the value exists.
type CreateValue4Stakeholder struct {
	Stakeholder string
}

func (r *CreateValue4Stakeholder) Name() string { return "CreateValue4Stakeholder" }

func (r *CreateValue4Stakeholder) target(c *Context) (*model.Stakeholder, string, error) {
	s, err := mustFind[*model.Stakeholder](c, r.Name(), model.KindStakeholder, r.Stakeholder)
	if err != nil {
		return nil, "", err
	}

	name := "ValueFor_" + s.Name
	if len(c.Index().ByName(name, model.KindValue)) > 0 {
		return nil, "", fmt.Errorf("value %q: %w", name, ErrAlreadyApplied)
	}

	return s, name, nil
}

func (r *CreateValue4Stakeholder) Check(c *Context) error {
	_, _, err := r.target(c)
	return err
}

func (r *CreateValue4Stakeholder) Refactor(c *Context) error {
	s, name, err := r.target(c)
	if err != nil {
		return err
	}

	doc := c.Document
	if len(doc.ValueRegisters) == 0 {
		doc.ValueRegisters = append(doc.ValueRegisters, &model.ValueRegister{
			ID:   model.NewID(),
			Name: model.UniqueName(c.Index(), "Values", nil, model.KindValueRegister),
		})
	}

	vr := doc.ValueRegisters[0]
	vr.Values = append(vr.Values, &model.Value{
		ID:   model.NewID(),
		Name: name,
		Elicitations: []*model.ValueElicitation{{
			ID:          model.NewID(),
			Stakeholder: model.RefTo(s),
		}},
	})

	return nil
}

// WrapValueInCluster moves a value of a value register into a new cluster
// whose core value is the value's name.
type WrapValueInCluster struct {
	Value string
}

func (r *WrapValueInCluster) Name() string { return "WrapValueInCluster" }

func (r *WrapValueInCluster) target(c *Context) (*model.ValueRegister, *model.Value, error) {
	v, err := mustFind[*model.Value](c, r.Name(), model.KindValue, r.Value)
	if err != nil {
		return nil, nil, err
	}

	vr, ok := c.Index().Parent(v.ID).(*model.ValueRegister)
	if !ok {
		return nil, nil, diagnostic.Violation(r.Name(), "value %q is already part of a value cluster", v.Name)
	}

	return vr, v, nil
}

func (r *WrapValueInCluster) Check(c *Context) error {
	_, _, err := r.target(c)
	return err
}

func (r *WrapValueInCluster) Refactor(c *Context) error {
	vr, v, err := r.target(c)
	if err != nil {
		return err
	}

	vr.Values = slices.DeleteFunc(vr.Values, func(x *model.Value) bool { return x.ID == v.ID })
	vr.Clusters = append(vr.Clusters, &model.ValueCluster{
		ID:        model.NewID(),
		Name:      model.UniqueName(c.Index(), v.Name+"_Cluster", nil, model.KindValueCluster),
		CoreValue: v.Name,
		Values:    []*model.Value{v},
	})

	return nil
}

// CreateValueRegisterForBoundedContext adds a value register for a bounded
// context that has none.
type CreateValueRegisterForBoundedContext struct {
	BoundedContext string
}

func (r *CreateValueRegisterForBoundedContext) Name() string {
	return "CreateValueRegisterForBoundedContext"
}

func (r *CreateValueRegisterForBoundedContext) target(c *Context) (*model.BoundedContext, error) {
	bc, err := mustFind[*model.BoundedContext](c, r.Name(), model.KindBoundedContext, r.BoundedContext)
	if err != nil {
		return nil, err
	}

	if vr := c.Set.ValueRegisterFor(bc.ID); vr != nil {
		return nil, fmt.Errorf("bounded context %q has value register %q: %w", bc.Name, vr.Name, ErrAlreadyApplied)
	}

	return bc, nil
}

func (r *CreateValueRegisterForBoundedContext) Check(c *Context) error {
	_, err := r.target(c)
	return err
}

func (r *CreateValueRegisterForBoundedContext) Refactor(c *Context) error {
	bc, err := r.target(c)
	if err != nil {
		return err
	}

	ix := c.Index()
	doc := ix.Document(bc.ID)
	doc.ValueRegisters = append(doc.ValueRegisters, &model.ValueRegister{
		ID:      model.NewID(),
		Name:    model.UniqueName(ix, "ValueRegisterFor_"+bc.Name, nil, model.KindValueRegister),
		Context: model.RefTo(bc),
	})

	bc.Responsibilities = append(bc.Responsibilities, ValueRegisterResponsibility)

	return nil
}
