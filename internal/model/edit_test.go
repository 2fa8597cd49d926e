package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_RedirectAndReferrers(t *testing.T) {
	s := insuranceSet()
	pm := s.BoundedContexts()[1]

	// contains, left, owner and the value register
	assert.Len(t, s.Referrers("cm"), 4)

	n := s.Redirect("cm", pm)
	assert.Equal(t, 4, n)
	assert.Empty(t, s.Referrers("cm"))
	assert.True(t, s.Primary().ValueRegisters[0].Context.Points("pm"))
	assert.Equal(t, "PolicyManagement", s.Primary().ValueRegisters[0].Context.Name())
}

func TestSet_Delete(t *testing.T) {
	t.Run("still referenced", func(t *testing.T) {
		s := insuranceSet()

		err := s.Delete("customers")
		require.ErrorIs(t, err, ErrStillReferenced)
		assert.Contains(t, err.Error(), "exposedAggregates")
		assert.NotNil(t, NewIndex(s).Node("customers"), "nothing detached")
	})

	t.Run("references from inside the subtree", func(t *testing.T) {
		s := insuranceSet()
		s.Primary().ContextMap.Relationships[0].ExposedAggregates = nil

		require.NoError(t, s.Delete("customers"))
		assert.Empty(t, s.BoundedContexts()[0].Aggregates)
	})

	t.Run("nested in module", func(t *testing.T) {
		s := insuranceSet()

		require.NoError(t, s.Delete("contracts"))
		assert.Empty(t, s.BoundedContexts()[1].Modules[0].Aggregates)
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, insuranceSet().Delete("nope"))
	})
}

func TestSet_Detach(t *testing.T) {
	s := insuranceSet()

	assert.True(t, s.Detach("vr"))
	assert.Empty(t, s.Primary().ValueRegisters)

	assert.True(t, s.Detach("map"))
	assert.Nil(t, s.Primary().ContextMap)

	assert.False(t, s.Detach("map"))
}

func TestContextMap_ReplaceRelationship(t *testing.T) {
	s := insuranceSet()
	cmap := s.Primary().ContextMap

	a := &Relationship{ID: "a", Kind: Partnership}
	b := &Relationship{ID: "b", Kind: SharedKernel}

	require.True(t, cmap.ReplaceRelationship("rel", a, b))
	assert.Equal(t, []*Relationship{a, b}, cmap.Relationships)
	assert.False(t, cmap.ReplaceRelationship("rel"))

	assert.True(t, cmap.RemoveRelationship("a"))
	assert.Equal(t, []*Relationship{b}, cmap.Relationships)
}

func TestBoundedContext_RemoveAggregate(t *testing.T) {
	s := insuranceSet()
	pm := s.BoundedContexts()[1]

	assert.True(t, pm.RemoveAggregate("contracts"))
	assert.False(t, pm.RemoveAggregate("contracts"))
	assert.Empty(t, pm.AllAggregates())
}

func TestUniqueName(t *testing.T) {
	ix := NewIndex(insuranceSet())

	assert.Equal(t, "Claims", UniqueName(ix, "Claims", nil, KindBoundedContext))
	assert.Equal(t, "CustomerManagement2", UniqueName(ix, "CustomerManagement", nil, KindBoundedContext))
	assert.Equal(t, "CustomerManagement3",
		UniqueName(ix, "CustomerManagement", map[string]bool{"CustomerManagement2": true}, KindBoundedContext))

	// other namespaces do not collide
	assert.Equal(t, "Customers", UniqueName(ix, "Customers", nil, KindBoundedContext))
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Insurance Employee", "InsuranceEmployee"},
		{"insurance employee", "InsuranceEmployee"},
		{"customer-self service", "CustomerSelfService"},
		{"Policy_Holder", "Policy_Holder"},
		{"2nd level support", "_2ndLevelSupport"},
		{"!!!", "_"},
		{"", "_"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Identifier(tt.input))
		})
	}
}
