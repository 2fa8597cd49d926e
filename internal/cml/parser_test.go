package cml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

const insurance = `import "./shared.cml"

// the insurance context map
ContextMap Insurance {
	type = SYSTEM_LANDSCAPE
	state = TO_BE
	contains CustomerManagement, PolicyManagement
	contains Printing

	CustomerManagement [U,OHS,PL]->[D,ACL] PolicyManagement : CustomerToPolicy {
		implementationTechnology = "RESTful HTTP"
		exposedAggregates = Customers, Addresses
		downstreamRights = INFLUENCER
	}

	Printing [D]<-[U,OHS] CustomerManagement
	PolicyManagement [P]<->[P] Printing
	CustomerManagement [SK]<->[SK] Printing
	Printing [S]->[C,CF] PolicyManagement
}

BoundedContext CustomerManagement implements CustomerDomain realizes Team1 {
	type = FEATURE
	domainVisionStatement = "Manages customers"
	responsibilities = "Customers", "Addresses"

	Aggregate Customers {
		owner = Team1
		useCases = CreateCustomer
		likelihoodForChange = OFTEN

		aggregateRoot Entity Customer extends @Person {
			String firstname key
			- Address address
			- List<Address> formerAddresses
			List<String> nicknames
		}

		ValueObject Address extends BaseAddress {
			String street
		}

		enum Gender {
			MALE, FEMALE
		}
	}

	Module addressing {
		Aggregate Addresses {
			Entity Person
		}
	}
}

BoundedContext PolicyManagement
BoundedContext Printing
BoundedContext Team1 {
	type = TEAM
}
`

func TestParse_ContextMap(t *testing.T) {
	doc, err := Parse("file:///insurance.cml", []byte(insurance))
	require.NoError(t, err)

	assert.Equal(t, []string{"./shared.cml"}, doc.Imports)

	cm := doc.ContextMap
	require.NotNil(t, cm)
	assert.Equal(t, "Insurance", cm.Name)
	assert.Equal(t, "SYSTEM_LANDSCAPE", cm.Type)
	assert.Equal(t, "TO_BE", cm.State)
	assert.Equal(t, []string{"CustomerManagement", "PolicyManagement", "Printing"}, refNames(cm.Contains))

	require.Len(t, cm.Relationships, 5)

	ud := cm.Relationships[0]
	assert.Equal(t, model.UpstreamDownstream, ud.Kind)
	assert.Equal(t, "CustomerToPolicy", ud.Name)
	assert.Equal(t, "CustomerManagement", ud.Upstream().Name())
	assert.Equal(t, "PolicyManagement", ud.Downstream().Name())
	assert.Equal(t, []string{"OHS", "PL"}, ud.UpstreamRoles)
	assert.Equal(t, []string{"ACL"}, ud.DownstreamRoles)
	assert.Equal(t, "RESTful HTTP", ud.ImplementationTechnology)
	assert.Equal(t, []string{"Customers", "Addresses"}, refNames(ud.ExposedAggregates))
	assert.Equal(t, "INFLUENCER", ud.DownstreamRights)

	reversed := cm.Relationships[1]
	assert.Equal(t, "CustomerManagement", reversed.Upstream().Name(), "reversed arrow is normalized")
	assert.Equal(t, "Printing", reversed.Downstream().Name())
	assert.Equal(t, []string{"OHS"}, reversed.UpstreamRoles)
	assert.Empty(t, reversed.DownstreamRoles)

	assert.Equal(t, model.Partnership, cm.Relationships[2].Kind)
	assert.Equal(t, model.SharedKernel, cm.Relationships[3].Kind)

	cs := cm.Relationships[4]
	assert.Equal(t, model.CustomerSupplier, cs.Kind)
	assert.Equal(t, []string{"CF"}, cs.DownstreamRoles)

	// positions point at the name
	assert.Equal(t, model.Pos{Line: 7, Column: 11}, cm.Contains[0].At())
}

func TestParse_BoundedContext(t *testing.T) {
	doc, err := Parse("file:///insurance.cml", []byte(insurance))
	require.NoError(t, err)
	require.Len(t, doc.BoundedContexts, 4)

	bc := doc.BoundedContexts[0]
	assert.Equal(t, "CustomerManagement", bc.Name)
	assert.Equal(t, model.BoundedContextFeature, bc.Type)
	assert.Equal(t, []string{"CustomerDomain"}, refNames(bc.Implements))
	assert.Equal(t, []string{"Team1"}, refNames(bc.Realizes))
	assert.Equal(t, "Manages customers", bc.DomainVisionStatement)
	assert.Equal(t, []string{"Customers", "Addresses"}, bc.Responsibilities)

	require.Len(t, bc.Aggregates, 1)

	agg := bc.Aggregates[0]
	assert.Equal(t, "Team1", agg.Owner.Name())
	assert.Equal(t, []string{"CreateCustomer"}, refNames(agg.Features))
	assert.Equal(t, model.VolatilityOften, agg.LikelihoodForChange)
	require.Len(t, agg.DomainObjects, 3)

	customer := agg.DomainObjects[0]
	assert.Equal(t, model.Entity, customer.Kind)
	assert.True(t, customer.AggregateRoot)
	assert.Equal(t, "Person", customer.Extends.Name())
	assert.False(t, customer.Extends.IsOptional())
	require.Len(t, customer.Attributes, 4)

	assert.Equal(t, &model.Attribute{Name: "firstname", Type: "String", Key: true}, customer.Attributes[0])
	assert.True(t, customer.Attributes[1].IsReference())
	assert.Equal(t, "Address", customer.Attributes[1].Reference.Name())
	assert.Equal(t, "List", customer.Attributes[2].Collection)
	assert.True(t, customer.Attributes[2].IsReference())
	assert.Equal(t, "List", customer.Attributes[3].Collection)
	assert.False(t, customer.Attributes[3].IsReference())

	address := agg.DomainObjects[1]
	assert.True(t, address.Extends.IsOptional())

	assert.Equal(t, model.Enum, agg.DomainObjects[2].Kind)
	assert.Equal(t, []string{"MALE", "FEMALE"}, agg.DomainObjects[2].EnumValues)

	require.Len(t, bc.Modules, 1)
	assert.Equal(t, "Addresses", bc.Modules[0].Aggregates[0].Name)
	assert.Equal(t, "Person", bc.Modules[0].Aggregates[0].DomainObjects[0].Name)

	assert.Empty(t, doc.BoundedContexts[1].Aggregates)
	assert.Equal(t, model.BoundedContextTeam, doc.BoundedContexts[3].Type)
}

func TestParse_Spans(t *testing.T) {
	doc, err := Parse("file:///insurance.cml", []byte(insurance))
	require.NoError(t, err)

	roots := doc.RootElements()
	require.Len(t, roots, 5)

	for _, n := range roots {
		span, ok := doc.Spans[n.NodeID()]
		require.True(t, ok, n.NodeName())
		assert.Less(t, span.Start, span.End)
	}

	text := func(n model.Node) string {
		s := doc.Spans[n.NodeID()]
		return insurance[s.Start:s.End]
	}

	assert.Equal(t, "BoundedContext PolicyManagement", text(doc.BoundedContexts[1]))
	assert.Equal(t, "BoundedContext Team1 {\n\ttype = TEAM\n}", text(doc.BoundedContexts[3]))
	assert.Regexp(t, `^ContextMap Insurance \{(?s).*\n\}$`, text(doc.ContextMap))
}

func TestParse_Requirements(t *testing.T) {
	src := `
Domain Insurance {
	domainVisionStatement = "Insure things"
	Subdomain Claims supports CreateClaim, US1 {
		type = CORE_DOMAIN
		Entity Claim {
			String id
		}
	}
}

UseCase CreateClaim {
	actor = "Insurance Employee"
	interactions = "create" a "Claim" with its "id", "date", "update" an "Address", "print" "Report", "close"
	benefit = "claims are tracked"
}

UserStory US1 split by US0 {
	As an "Insurance Employee"
	I want to "create" a "Customer" with its "firstname", "lastname"
	I want to "delete" the "Contract"
	so that "I can manage customers"
}

UserStory US0
`

	doc, err := Parse("mem://req.cml", []byte(src))
	require.NoError(t, err)

	require.Len(t, doc.Domains, 1)
	sd := doc.Domains[0].Subdomains[0]
	assert.Equal(t, model.CoreDomain, sd.Type)
	assert.Equal(t, []string{"CreateClaim", "US1"}, refNames(sd.Supports))
	assert.Equal(t, "Claim", sd.Entities[0].Name)

	require.Len(t, doc.UserRequirements, 3)

	uc := doc.UserRequirements[0]
	assert.Equal(t, model.UseCase, uc.Kind)
	assert.Equal(t, "Insurance Employee", uc.Role)
	assert.Equal(t, "claims are tracked", uc.Benefit)
	assert.Equal(t, []*model.Feature{
		{Verb: "create", Article: "a", Entity: "Claim", Attributes: []string{"id", "date"}},
		{Verb: "update", Article: "an", Entity: "Address"},
		{Verb: "print", Entity: "Report"},
		{Verb: "close"},
	}, uc.Features)

	us := doc.UserRequirements[1]
	assert.Equal(t, model.UserStory, us.Kind)
	assert.Equal(t, "US0", us.SplittingStory.Name())
	assert.Equal(t, "Insurance Employee", us.Role)
	assert.Equal(t, "I can manage customers", us.Benefit)
	require.Len(t, us.Features, 2)
	assert.Equal(t, []string{"firstname", "lastname"}, us.Features[0].Attributes)
	assert.Equal(t, "the", us.Features[1].Article)
}

func TestParse_StakeholdersAndValues(t *testing.T) {
	src := `
Stakeholders of CustomerManagement {
	StakeholderGroup Employees {
		Stakeholder Clerk {
			influence = HIGH
			interest = MEDIUM
			description = "handles claims"
		}
		StakeholderGroup Managers
	}
	Stakeholder Customer
}

ValueRegister VR for CustomerManagement {
	ValueCluster Autonomy {
		coreValue = "Autonomy"
		demonstrator = "customer decides"
		Value Freedom
		Stakeholder Customer {
			priority = HIGH
		}
	}
	Value Privacy {
		isCore
		demonstrator = "data stays private"
		relatedValue = "Trust"
		Stakeholder Customer {
			priority = HIGH
			impact = MEDIUM
			consequences
				good "feels safe"
				bad "slower onboarding" action "explain the benefit" ACT
				neutral "nothing"
		}
	}
}
`

	doc, err := Parse("mem://values.cml", []byte(src))
	require.NoError(t, err)

	require.Len(t, doc.Stakeholders, 1)
	sh := doc.Stakeholders[0]
	assert.Equal(t, []string{"CustomerManagement"}, refNames(sh.Contexts))
	require.Len(t, sh.Items, 2)

	group, ok := sh.Items[0].(*model.StakeholderGroup)
	require.True(t, ok)
	require.Len(t, group.Items, 2)
	assert.Equal(t, &model.Stakeholder{
		ID: group.Items[0].NodeID(), Name: "Clerk", Influence: "HIGH", Interest: "MEDIUM", Description: "handles claims",
	}, group.Items[0])
	assert.IsType(t, &model.StakeholderGroup{}, group.Items[1])
	assert.IsType(t, &model.Stakeholder{}, sh.Items[1])

	require.Len(t, doc.ValueRegisters, 1)
	vr := doc.ValueRegisters[0]
	assert.Equal(t, "CustomerManagement", vr.Context.Name())

	cluster := vr.Clusters[0]
	assert.Equal(t, "Autonomy", cluster.CoreValue)
	assert.Equal(t, []string{"customer decides"}, cluster.Demonstrators)
	assert.Equal(t, "Freedom", cluster.Values[0].Name)
	assert.Equal(t, "Customer", cluster.Elicitations[0].Stakeholder.Name())

	privacy := vr.Values[0]
	assert.True(t, privacy.IsCore)
	assert.Equal(t, []string{"Trust"}, privacy.RelatedValues)

	e := privacy.Elicitations[0]
	assert.Equal(t, "HIGH", e.Priority)
	assert.Equal(t, "MEDIUM", e.Impact)
	assert.Equal(t, []*model.Consequence{
		{Kind: model.ConsequenceGood, Text: "feels safe"},
		{Kind: model.ConsequenceBad, Text: "slower onboarding", Action: &model.MitigationAction{Text: "explain the benefit", Type: "ACT"}},
		{Kind: model.ConsequenceNeutral, Text: "nothing"},
	}, e.Consequences)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		pos  model.Pos
		msg  string
	}{
		{
			name: "unknown root element",
			src:  "BoundedContext A\nFoo B",
			pos:  model.Pos{Line: 2, Column: 1},
			msg:  `unexpected "Foo" in document`,
		},
		{
			name: "unterminated body",
			src:  "BoundedContext A {\n\ttype = TEAM\n",
			msg:  "end of file",
		},
		{
			name: "wrong arrow for partnership",
			src:  "ContextMap {\n\tA [P]->[P] B\n}",
			pos:  model.Pos{Line: 2, Column: 2},
			msg:  "wrong arrow",
		},
		{
			name: "swapped roles",
			src:  "ContextMap {\n\tA [D]->[U] B\n}",
			pos:  model.Pos{Line: 2, Column: 2},
			msg:  "swapped",
		},
		{
			name: "two context maps",
			src:  "ContextMap A {\n}\nContextMap B {\n}",
			pos:  model.Pos{Line: 3, Column: 1},
			msg:  "only one ContextMap",
		},
		{
			name: "bad type",
			src:  "BoundedContext A {\n\ttype = BIG\n}",
			pos:  model.Pos{Line: 2, Column: 2},
			msg:  `unknown bounded context type "BIG"`,
		},
		{
			name: "unterminated string",
			src:  "BoundedContext A {\n\tdomainVisionStatement = \"open\n}",
			pos:  model.Pos{Line: 2, Column: 0},
			msg:  "literal not terminated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse("mem://bad.cml", []byte(tt.src))
			require.Error(t, err)
			assert.Nil(t, doc)

			var se *SyntaxError
			require.True(t, errors.As(err, &se))
			assert.Contains(t, se.Msg, tt.msg)

			if tt.pos.Column > 0 {
				assert.Equal(t, tt.pos, se.Pos)
			}

			assert.Contains(t, err.Error(), "mem://bad.cml:")
		})
	}
}

func TestParse_Empty(t *testing.T) {
	doc, err := Parse("mem://empty.cml", []byte("// nothing here\n"))
	require.NoError(t, err)
	assert.Empty(t, doc.RootElements())
	assert.Empty(t, doc.Spans)
}

func refNames(refs []model.Ref) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Name())
	}

	return out
}
