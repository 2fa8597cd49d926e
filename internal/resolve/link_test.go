package resolve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/cml"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/diagnostic"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

func parseSet(t *testing.T, sources ...string) *model.Set {
	t.Helper()

	set := model.NewSet()

	for i, src := range sources {
		doc, err := cml.Parse("mem://doc"+string(rune('a'+i))+".cml", []byte(src))
		require.NoError(t, err)

		set.Documents = append(set.Documents, doc)
	}

	return set
}

func TestLink(t *testing.T) {
	set := parseSet(t, `
ContextMap {
	A [U]->[D] B {
		exposedAggregates = Shared
	}
}

BoundedContext A {
	Aggregate Shared {
		Entity Order extends Base {
			- Item items
		}
		Entity Item extends @Order
	}
}
`, `
BoundedContext B {
	Aggregate Shared
}
`)

	require.NoError(t, Link(set))

	ix := model.NewIndex(set)
	a := ix.BoundedContext("A")
	rel := set.Primary().ContextMap.Relationships[0]

	assert.True(t, rel.Left.Points(a.ID))
	assert.True(t, rel.ExposedAggregates[0].Points(a.Aggregates[0].ID), "upstream aggregate wins over the global namespace")

	order := a.Aggregates[0].DomainObjects[0]
	assert.False(t, order.Extends.IsLinked(), "optional reference to an unknown type stays unlinked")
	assert.True(t, order.Attributes[0].Reference.IsLinked())
	assert.True(t, a.Aggregates[0].DomainObjects[1].Extends.Points(order.ID))
}

func TestLink_Errors(t *testing.T) {
	set := parseSet(t, `
ContextMap {
	contains Customer, Missing
}

BoundedContext Customer {
	Aggregate Orders {
		owner = Shared
	}
}

BoundedContext Shared
`, `
BoundedContext Shared
`)

	err := Link(set)
	require.Error(t, err)

	var errs diagnostic.LinkErrors
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 2, "all unresolved references are reported")

	assert.Equal(t, "Missing", errs[0].Symbol)
	assert.Equal(t, "contains", errs[0].Field)
	assert.Equal(t, 3, errs[0].Line)
	assert.False(t, errs[0].Ambiguous)

	assert.Equal(t, "Shared", errs[1].Symbol)
	assert.True(t, errs[1].Ambiguous)
	assert.Contains(t, errs[1].Error(), "ambiguous BoundedContext reference \"Shared\" (owner)")
}
