package refactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

func TestRegistry_Names(t *testing.T) {
	names := NewRegistry().Names()

	assert.Len(t, names, 20)
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "SplitAggregateByEntities")
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Refactoring
	}{
		{"SplitAggregateByEntities", []string{"Customers"}, &SplitAggregateByEntities{Aggregate: "Customers"}},
		{"MergeBoundedContexts", []string{"A", "B"}, &MergeBoundedContexts{First: "A", Second: "B"}},
		{"MergeAggregates", []string{"A", "B", "true"}, &MergeAggregates{First: "A", Second: "B", TakeAttributesFromSecond: true}},
		{
			"ExtractAggregatesByVolatility", []string{"A", "often"},
			&ExtractAggregatesByVolatility{BoundedContext: "A", Volatility: model.VolatilityOften},
		},
		{
			"ExtractAggregatesByCohesion", []string{"A", "N", "X", "Y"},
			&ExtractAggregatesByCohesion{BoundedContext: "A", NewBoundedContext: "N", Aggregates: []string{"X", "Y"}},
		},
		{
			"SuspendPartnership", []string{"A", "B", "replace_relationship_with_upstream_downstream", "A"},
			&SuspendPartnership{First: "A", Second: "B", Mode: ModeReplaceWithUpstreamDownstream, Upstream: "A"},
		},
		{"SplitStoryByVerb", []string{"S", "a", "b"}, &SplitStoryByVerb{Story: "S", Verbs: []string{"a", "b"}}},
		{"RenameElement", []string{"A", "B"}, &RenameElement{OldName: "A", NewName: "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Lookup(tt.name, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r)
			assert.Equal(t, tt.name, r.Name())
		})
	}
}

func TestLookup_EveryCommandBuilds(t *testing.T) {
	for _, cmd := range Commands() {
		args := make([]string, cmd.MinArgs)
		for i := range args {
			args[i] = "X"
		}

		if cmd.Name == "ExtractAggregatesByVolatility" {
			args[1] = "RARELY"
		}

		r, err := Lookup(cmd.Name, args)
		require.NoError(t, err, cmd.Name)
		assert.Equal(t, cmd.Name, r.Name())
		assert.NotEmpty(t, cmd.Summary)
	}
}

func TestLookup_Errors(t *testing.T) {
	tests := []struct {
		name    string
		command string
		args    []string
		want    string
	}{
		{"unknown", "SplitAgregateByEntities", nil, "did you mean SplitAggregateByEntities"},
		{"too few", "MergeAggregates", []string{"A"}, "MergeAggregates expects"},
		{"too many", "SplitAggregateByEntities", []string{"A", "B"}, "got 2 parameter(s)"},
		{"bad bool", "MergeBoundedContexts", []string{"A", "B", "maybe"}, "parameter 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lookup(tt.command, tt.args)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
