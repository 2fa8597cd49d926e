package refactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/diagnostic"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

func attributeNames(o *model.DomainObject) []string {
	out := make([]string, 0, len(o.Attributes))
	for _, a := range o.Attributes {
		out = append(out, a.Name)
	}

	return out
}

func TestDeriveSubdomainFromUserRequirements(t *testing.T) {
	res, ix := apply(t, insurance, &DeriveSubdomainFromUserRequirements{
		Domain:       "Insurance",
		Subdomain:    "CustomerDomain",
		Requirements: []string{"CreateCustomer", "UpdateAddress", "Missing", "CreateCustomer"},
	})

	doc := res.Set.Primary()
	require.Len(t, doc.Domains, 1)
	assert.Equal(t, "Insurance", doc.Domains[0].Name)

	sd := ix.Subdomain("CustomerDomain")
	require.NotNil(t, sd)
	assert.Equal(t, "Aims at promoting the following benefit for an Insurance Employee: I can manage customers",
		sd.DomainVisionStatement)
	assert.Equal(t, []string{"CreateCustomer", "UpdateAddress"}, names(ix, sd.Supports))

	require.Len(t, sd.Entities, 2)
	assert.Equal(t, "Customer", sd.Entities[0].Name)
	assert.Equal(t, model.Entity, sd.Entities[0].Kind)
	assert.Equal(t, []string{"firstName", "lastName"}, attributeNames(sd.Entities[0]))
	assert.Equal(t, "String", sd.Entities[0].Attributes[0].Type)
	assert.Equal(t, "Address", sd.Entities[1].Name)
	assert.Empty(t, sd.Entities[1].Attributes)
}

func TestDeriveSubdomainFromUserRequirements_ExtendsExisting(t *testing.T) {
	src := `Domain Insurance {
	Subdomain Customers supports A {
		Entity Customer {
			String firstName
		}
	}
}

UserStory A {
	As a "Clerk"
	I want to "create" a "Customer" with its "first name"
	so that "it exists"
}

UserStory B {
	As a "Clerk"
	I want to "delete" a "Customer" with its "reason"
	so that "it is gone"
}
`

	_, ix := apply(t, src, &DeriveSubdomainFromUserRequirements{
		Domain: "Insurance", Subdomain: "Customers", Requirements: []string{"A", "B"},
	})

	sd := ix.Subdomain("Customers")
	require.NotNil(t, sd)
	assert.Empty(t, sd.DomainVisionStatement)
	assert.Equal(t, []string{"A", "B"}, names(ix, sd.Supports))
	require.Len(t, sd.Entities, 1)
	assert.Equal(t, []string{"firstName", "reason"}, attributeNames(sd.Entities[0]))
}

func TestDeriveSubdomainFromUserRequirements_Preconditions(t *testing.T) {
	src := `Domain Other {
	Subdomain Core
}

UseCase U
`
	set := load(t, src)

	_, err := NewEngine(nil).Apply(set, "", &DeriveSubdomainFromUserRequirements{
		Domain: "Insurance", Subdomain: "Core", Requirements: []string{"U"},
	})

	var violation *diagnostic.PreconditionViolation
	assert.ErrorAs(t, err, &violation)

	res, err := NewEngine(nil).Apply(set, "", &DeriveSubdomainFromUserRequirements{
		Domain: "Insurance", Subdomain: "Fresh", Requirements: []string{"Nope"},
	})
	require.NoError(t, err)
	assert.True(t, res.Skipped)
}

func TestDeriveBoundedContextFromSubdomains(t *testing.T) {
	res, err := NewEngine(nil).ApplyAll(load(t, insurance), "",
		&DeriveSubdomainFromUserRequirements{
			Domain: "Insurance", Subdomain: "CustomerDomain", Requirements: []string{"CreateCustomer", "UpdateAddress"},
		},
		&DeriveBoundedContextFromSubdomains{BoundedContext: "CustomerFeatures", Subdomains: []string{"CustomerDomain", "Nope"}},
	)
	require.NoError(t, err)

	ix := model.NewIndex(res.Set)

	bc := ix.BoundedContext("CustomerFeatures")
	require.NotNil(t, bc)
	assert.Equal(t, model.BoundedContextFeature, bc.Type)
	assert.Equal(t, []string{"CustomerDomain"}, names(ix, bc.Implements))
	assert.Equal(t, "This Bounded Context realizes the following subdomains: CustomerDomain", bc.DomainVisionStatement)

	require.Len(t, bc.Aggregates, 1)

	agg := bc.Aggregates[0]
	assert.Equal(t, "CustomerDomainAggregate", agg.Name)
	assert.Equal(t, []string{"CreateCustomer", "UpdateAddress"}, names(ix, agg.Features))

	sd := ix.Subdomain("CustomerDomain")
	require.Len(t, agg.DomainObjects, len(sd.Entities))

	for i, o := range agg.DomainObjects {
		assert.Equal(t, sd.Entities[i].Name, o.Name)
		assert.NotEqual(t, sd.Entities[i].ID, o.ID)
	}
}

func TestCopyObjects_RebindsInternalReferences(t *testing.T) {
	address := &model.DomainObject{ID: "address", Name: "Address"}
	outside := &model.DomainObject{ID: "outside", Name: "Outside"}
	customer := &model.DomainObject{ID: "customer", Name: "Customer", Attributes: []*model.Attribute{
		{Name: "address", Type: "Address", Reference: model.RefTo(address)},
		{Name: "other", Type: "Outside", Reference: model.RefTo(outside)},
	}}

	copies := copyObjects([]*model.DomainObject{customer, address})
	require.Len(t, copies, 2)

	assert.True(t, copies[0].Attributes[0].Reference.Points(copies[1].ID))
	assert.True(t, copies[0].Attributes[1].Reference.Points("outside"))
	assert.True(t, customer.Attributes[0].Reference.Points("address"))
}

func TestDeriveBoundedContextFromSubdomains_Preconditions(t *testing.T) {
	set := load(t, insurance)

	_, err := NewEngine(nil).Apply(set, "", &DeriveBoundedContextFromSubdomains{
		BoundedContext: "Printing", Subdomains: []string{"Anything"},
	})

	var violation *diagnostic.PreconditionViolation
	assert.ErrorAs(t, err, &violation)

	res, err := NewEngine(nil).Apply(set, "", &DeriveBoundedContextFromSubdomains{
		BoundedContext: "Fresh", Subdomains: []string{"Nope"},
	})
	require.NoError(t, err)
	assert.True(t, res.Skipped)
}

func TestAttributeName(t *testing.T) {
	tests := map[string]string{
		"first name": "firstName",
		"Amount":     "amount",
		"zip-code":   "zipCode",
	}

	for in, want := range tests {
		assert.Equal(t, want, attributeName(in), in)
	}
}
