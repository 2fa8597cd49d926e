package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_Clone(t *testing.T) {
	s := insuranceSet()
	c := s.Clone()

	require.Len(t, c.Documents, 1)
	assert.NotSame(t, s.Primary(), c.Primary())
	assert.Empty(t, cmp.Diff(s, c, cmp.AllowUnexported(Ref{})), "clone is structurally equal")

	t.Run("IDs are preserved", func(t *testing.T) {
		orig, copied := NewIndex(s), NewIndex(c)
		assert.Equal(t, orig.Len(), copied.Len())

		for _, n := range orig.Nodes() {
			m := copied.Node(n.NodeID())
			require.NotNil(t, m, n.NodeName())
			assert.Equal(t, n.NodeName(), m.NodeName())
		}
	})

	t.Run("mutations do not leak", func(t *testing.T) {
		cbc := c.BoundedContexts()[0]
		cbc.Name = "Renamed"
		cbc.Aggregates[0].DomainObjects[0].Attributes[0].Name = "changed"
		c.Primary().ContextMap.Relationships[0].ExposedAggregates[0] = NameRef("Other", Pos{})
		c.Primary().BoundedContexts = c.Primary().BoundedContexts[:1]

		bc := s.BoundedContexts()[0]
		assert.Equal(t, "CustomerManagement", bc.Name)
		assert.Equal(t, "firstname", bc.Aggregates[0].DomainObjects[0].Attributes[0].Name)
		assert.True(t, s.Primary().ContextMap.Relationships[0].ExposedAggregates[0].Points("customers"))
		assert.Len(t, s.Primary().BoundedContexts, 2)
	})

	t.Run("stakeholder trees", func(t *testing.T) {
		s := NewSet(&ContextMappingModel{ID: "d", Stakeholders: []*Stakeholders{{
			ID: "root",
			Items: []StakeholderItem{
				&StakeholderGroup{ID: "g", Name: "Employees", Items: []StakeholderItem{&Stakeholder{ID: "s", Name: "Clerk"}}},
			},
		}}})

		c := s.Clone()
		c.Primary().Stakeholders[0].Items[0].(*StakeholderGroup).Items[0].(*Stakeholder).Name = "Manager"

		assert.Equal(t, "Clerk", s.Primary().Stakeholders[0].Items[0].(*StakeholderGroup).Items[0].NodeName())
	})
}
