package refactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/diagnostic"
)

func TestRenameElement(t *testing.T) {
	res, ix := apply(t, insurance, &RenameElement{OldName: "Customers", NewName: "Clients"})

	assert.Nil(t, ix.Aggregate("Customers"))
	require.NotNil(t, ix.Aggregate("Clients"))

	rel := res.Set.Primary().ContextMap.Relationships[0]
	assert.Equal(t, []string{"Clients", "Addresses"}, names(ix, rel.ExposedAggregates))
	assert.Equal(t, []string{`renamed Aggregate "Clients" (was Customers)`}, changeList(res.Changes))
}

func TestRenameElement_Preconditions(t *testing.T) {
	set := load(t, insurance)

	tests := []struct {
		name    string
		r       *RenameElement
		suggest string
	}{
		{"invalid name", &RenameElement{OldName: "Customers", NewName: "Our Clients"}, ""},
		{"taken", &RenameElement{OldName: "Customers", NewName: "Addresses"}, ""},
		{"missing", &RenameElement{OldName: "Customrs", NewName: "Clients"}, "Customers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(nil).Apply(set, "", tt.r)

			var violation *diagnostic.PreconditionViolation
			require.ErrorAs(t, err, &violation)

			if tt.suggest != "" {
				assert.Contains(t, violation.Suggestions, tt.suggest)
			}
		})
	}
}
