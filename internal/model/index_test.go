package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_Lookups(t *testing.T) {
	s := insuranceSet()
	ix := NewIndex(s)

	require.NotNil(t, ix.BoundedContext("CustomerManagement"))
	assert.Nil(t, ix.BoundedContext("Nope"))
	assert.Equal(t, ID("contracts"), ix.Aggregate("Contracts").ID)

	assert.Equal(t, "contracts", ix.Parent("contracts").NodeName())
	assert.Nil(t, ix.Parent("cm"), "root elements have no parent")
	assert.Equal(t, "file:///insurance.cml", ix.Document("contract").URI)

	assert.Equal(t, ID("pm"), ix.OwningContext("contract").ID)
	assert.Nil(t, ix.OwningContext("cm"))

	assert.Equal(t, []string{"CustomerManagement", "PolicyManagement"}, ix.Names(KindBoundedContext))
	assert.Len(t, ix.All(KindDomainObject), 3)
}

func TestIndex_Deref(t *testing.T) {
	s := insuranceSet()
	ix := NewIndex(s)

	t.Run("by ID", func(t *testing.T) {
		n := ix.Deref(RefTo(s.BoundedContexts()[1]))
		assert.Equal(t, ID("pm"), n.NodeID())
	})

	t.Run("by name fallback", func(t *testing.T) {
		n := ix.Deref(NameRef("Customers", Pos{}), KindAggregate)
		require.NotNil(t, n)
		assert.Equal(t, ID("customers"), n.NodeID())
	})

	t.Run("name of wrong kind", func(t *testing.T) {
		assert.Nil(t, ix.Deref(NameRef("Customers", Pos{}), KindBoundedContext))
	})

	t.Run("ambiguous name", func(t *testing.T) {
		s := insuranceSet()
		s.Primary().BoundedContexts[1].Aggregates = []*Aggregate{{ID: "dup", Name: "Customers"}}
		assert.Nil(t, NewIndex(s).Deref(NameRef("Customers", Pos{}), KindAggregate))
	})

	t.Run("live name", func(t *testing.T) {
		r := RefTo(s.BoundedContexts()[0])
		s.BoundedContexts()[0].Name = "Customers"

		assert.Equal(t, "CustomerManagement", r.Name())
		assert.Equal(t, "Customers", ix.RefName(r))
	})
}

func TestIndex_LookupScoped(t *testing.T) {
	s := insuranceSet()
	s.Primary().BoundedContexts[1].Aggregates = []*Aggregate{{ID: "pm-customers", Name: "Customers"}}
	ix := NewIndex(s)

	var exposed RefSlot

	for _, slot := range s.RefSlots(ix) {
		if slot.Field == "exposedAggregates" {
			exposed = slot
		}
	}

	require.NotNil(t, exposed.Scope)
	assert.Equal(t, "CustomerManagement", exposed.Scope.Name)

	found := ix.Lookup("Customers", exposed)
	require.Len(t, found, 1, "upstream aggregates shadow the global namespace")
	assert.Equal(t, ID("customers"), found[0].NodeID())

	assert.Len(t, ix.ByName("Customers", KindAggregate), 2)
}

func TestIndex_LookupDomainObjectsByHome(t *testing.T) {
	s := insuranceSet()
	pm := s.Primary().BoundedContexts[1]
	contracts := pm.Modules[0].Aggregates[0]

	localAddress := &DomainObject{ID: "pm-address", Kind: ValueObject, Name: "Address"}
	holder := &DomainObject{ID: "holder", Kind: Entity, Name: "Holder"}
	holder.Attributes = []*Attribute{{Name: "address", Type: "Address", Reference: NameRef("Address", Pos{})}}
	contracts.DomainObjects = append(contracts.DomainObjects, localAddress, holder)

	ix := NewIndex(s)

	var slot RefSlot

	for _, sl := range s.RefSlots(ix) {
		if sl.Owner.NodeID() == "holder" {
			slot = sl
		}
	}

	found := ix.Lookup("Address", slot)
	require.Len(t, found, 1)
	assert.Equal(t, ID("pm-address"), found[0].NodeID(), "objects of the same context win")

	var customerSlot RefSlot

	for _, sl := range s.RefSlots(ix) {
		if sl.Owner.NodeID() == "customer" {
			customerSlot = sl
		}
	}

	found = ix.Lookup("Address", customerSlot)
	require.Len(t, found, 1)
	assert.Equal(t, ID("address"), found[0].NodeID())
}
