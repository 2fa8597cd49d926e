package refactor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

func TestSplitAggregateByEntities(t *testing.T) {
	res, ix := apply(t, insurance, &SplitAggregateByEntities{Aggregate: "Customers"})

	bc := ix.BoundedContext("CustomerManagement")
	require.NotNil(t, bc)
	assert.Equal(t, []string{"Customers", "Address", "Account", "Addresses"}, aggregateNames(bc.Aggregates))

	for _, a := range bc.Aggregates[:3] {
		require.Len(t, a.DomainObjects, 1)
		assert.Equal(t, "CustomerTeam", ix.RefName(a.Owner))
		assert.Equal(t, []string{"CreateCustomer"}, names(ix, a.Features))
		assert.Equal(t, model.VolatilityOften, a.LikelihoodForChange)
	}

	assert.Equal(t, "Address", bc.Aggregates[1].DomainObjects[0].Name)

	rel := res.Set.Primary().ContextMap.Relationships[0]
	assert.Equal(t, []string{"Customers", "Address", "Account", "Addresses"}, names(ix, rel.ExposedAggregates))
}

func TestSplitAggregateByEntities_InModule(t *testing.T) {
	src := `BoundedContext A {
	Module m {
		Aggregate Orders {
			Entity Order
			Entity Invoice
		}
	}
}

BoundedContext Invoicing {
	Aggregate Invoice {
		Entity Bill
	}
}
`

	_, ix := apply(t, src, &SplitAggregateByEntities{Aggregate: "Orders"})

	module := ix.BoundedContext("A").Modules[0]
	assert.Equal(t, []string{"Orders", "Invoice2"}, aggregateNames(module.Aggregates))
}

func TestSplitAggregateByEntities_MissingAggregate(t *testing.T) {
	set := load(t, insurance)
	before := set.Clone()

	res, err := NewEngine(nil).Apply(set, "", &SplitAggregateByEntities{Aggregate: "Orders"})
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.True(t, cmp.Equal(before, res.Set, cmp.AllowUnexported(model.Ref{})))
}

func TestMergeAggregates(t *testing.T) {
	tests := []struct {
		name       string
		takeSecond bool
		wantOwner  string
		wantChange model.Volatility
	}{
		{"attributes of first", false, "CustomerTeam", model.VolatilityOften},
		{"attributes of second", true, "AddressTeam", model.VolatilityRarely},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ix := apply(t, insurance, &MergeAggregates{
				First: "Customers", Second: "Addresses", TakeAttributesFromSecond: tt.takeSecond,
			})

			assert.Nil(t, ix.Aggregate("Addresses"))

			merged := ix.Aggregate("Customers")
			require.NotNil(t, merged)
			assert.Len(t, merged.DomainObjects, 4)
			assert.Equal(t, []string{"CreateCustomer", "UpdateAddress"}, names(ix, merged.Features))
			assert.Equal(t, tt.wantOwner, ix.RefName(merged.Owner))
			assert.Equal(t, tt.wantChange, merged.LikelihoodForChange)

			rel := res.Set.Primary().ContextMap.Relationships[0]
			assert.Equal(t, []string{"Customers"}, names(ix, rel.ExposedAggregates))
		})
	}
}
