package serialize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/diagnostic"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

const handwritten = `// customers first
BoundedContext CustomerManagement {
    Aggregate Customers {
        Entity Customer
    }
}

BoundedContext PolicyManagement   // policies

ValueRegister VR for CustomerManagement
`

func TestSerializer_Unchanged(t *testing.T) {
	before := load(t, "mem://a.cml", handwritten)

	changes, err := NewSerializer(nil).Serialize(before, before.Clone())
	require.NoError(t, err)
	assert.Empty(t, changes, "an unchanged set yields no edits")

	after := before.Clone()
	assert.Equal(t, handwritten, splice(before.Primary(), after.Primary(), model.NewIndex(before), model.NewIndex(after)))
}

func TestSerializer_InsertKeepsFormatting(t *testing.T) {
	before := load(t, "mem://a.cml", handwritten)
	after := before.Clone()

	doc := after.Primary()
	doc.BoundedContexts = append(doc.BoundedContexts, &model.BoundedContext{ID: model.NewID(), Name: "Claims"})

	changes, err := NewSerializer(nil).Serialize(before, after)
	require.NoError(t, err)
	require.Len(t, changes, 1)

	c := changes[0]
	assert.Equal(t, "mem://a.cml", c.URI)
	assert.Equal(t, `// customers first
BoundedContext CustomerManagement {
    Aggregate Customers {
        Entity Customer
    }
}

BoundedContext PolicyManagement   // policies

BoundedContext Claims

ValueRegister VR for CustomerManagement
`, c.Text)

	require.Len(t, c.Edits, 1)
	assert.Equal(t, c.Edits[0].StartOffset, c.Edits[0].EndOffset, "pure insertion")
	assert.Equal(t, c.Text, Apply(handwritten, c.Edits))

	fp, err := Fingerprint([]byte(c.Text))
	require.NoError(t, err)
	assert.Equal(t, fp, c.Fingerprint)
}

func TestSerializer_ReprintsChangedElements(t *testing.T) {
	before := load(t, "mem://a.cml", handwritten)
	after := before.Clone()

	after.BoundedContexts()[0].Name = "Customers"

	changes, err := NewSerializer(nil).Serialize(before, after)
	require.NoError(t, err)
	require.Len(t, changes, 1)

	assert.Equal(t, `// customers first
BoundedContext Customers {
	Aggregate Customers {
		Entity Customer
	}
}

BoundedContext PolicyManagement   // policies

ValueRegister VR for Customers
`, changes[0].Text)
	assert.Equal(t, changes[0].Text, Apply(handwritten, changes[0].Edits))
}

func TestSerializer_Deletes(t *testing.T) {
	before := load(t, "mem://a.cml", handwritten)
	after := before.Clone()

	require.NoError(t, after.Delete(after.Primary().ValueRegisters[0].ID))
	require.NoError(t, after.Delete(after.BoundedContexts()[0].ID))

	changes, err := NewSerializer(nil).Serialize(before, after)
	require.NoError(t, err)
	require.Len(t, changes, 1)

	assert.Equal(t, "// customers first\nBoundedContext PolicyManagement   // policies\n", changes[0].Text)
}

func TestSerializer_Conflicts(t *testing.T) {
	before := load(t, "mem://a.cml", handwritten)
	after := before.Clone()

	doc := after.Primary()
	doc.BoundedContexts = append(doc.BoundedContexts, &model.BoundedContext{ID: model.NewID(), Name: "CustomerManagement"})

	changes, err := NewSerializer(nil).Serialize(before, after)
	require.Error(t, err)
	assert.Nil(t, changes, "nothing is returned for a conflicting batch")

	var conflict *diagnostic.SerializationConflict
	require.True(t, errors.As(err, &conflict))
	require.Len(t, conflict.Reasons, 2, "every reason is reported")

	codes := []string{conflict.Reasons[0].Code, conflict.Reasons[1].Code}
	assert.ElementsMatch(t, []string{CodeAmbiguous, CodeDuplicateName}, codes)
}

func TestSerializer_Retargeted(t *testing.T) {
	before := load(t, "mem://a.cml", `
ContextMap {
	A [U]->[D] B {
		exposedAggregates = Orders
	}
}

BoundedContext A {
	Aggregate Orders
}

BoundedContext B {
	Aggregate Orders
}
`)
	after := before.Clone()

	// exposed aggregates resolve inside the upstream context first
	b := after.BoundedContexts()[1]
	after.Primary().ContextMap.Relationships[0].ExposedAggregates[0] = model.RefTo(b.Aggregates[0])

	_, err := NewSerializer(nil).Serialize(before, after)

	var conflict *diagnostic.SerializationConflict
	require.True(t, errors.As(err, &conflict))
	require.Len(t, conflict.Reasons, 1)
	assert.Equal(t, CodeRetargeted, conflict.Reasons[0].Code)
	assert.Equal(t, "mem://a.cml", conflict.Reasons[0].At.Document)
}

func TestSerializer_InMemoryDocuments(t *testing.T) {
	doc := &model.ContextMappingModel{ID: model.NewID(), URI: "mem://new.cml"}
	before := model.NewSet(doc)
	after := before.Clone()
	after.Primary().BoundedContexts = []*model.BoundedContext{{ID: model.NewID(), Name: "A"}}

	changes, err := NewSerializer(nil).Serialize(before, after)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "BoundedContext A\n", changes[0].Text)
	assert.Equal(t, []TextEdit{{NewText: "BoundedContext A\n"}}, changes[0].Edits)
}
