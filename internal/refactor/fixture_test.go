package refactor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/cml"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/resolve"
)

// insurance is the shared fixture of the refactoring tests.
const insurance = `ContextMap Insurance {
	contains CustomerManagement, PolicyManagement, Printing

	CustomerManagement [U,OHS]->[D,ACL] PolicyManagement : CustomersToPolicies {
		implementationTechnology = "RESTful HTTP"
		exposedAggregates = Customers, Addresses
	}

	PolicyManagement [P]<->[P] Printing : Printouts {
		implementationTechnology = "Messaging"
	}

	CustomerManagement [SK]<->[SK] Printing
}

BoundedContext CustomerManagement {
	Aggregate Customers {
		owner = CustomerTeam
		features = CreateCustomer
		likelihoodForChange = OFTEN

		Entity Customer {
			aggregateRoot
			String firstname
			- Address address
		}

		ValueObject Address {
			String street
		}

		Entity Account
	}

	Aggregate Addresses {
		owner = AddressTeam
		features = UpdateAddress
		likelihoodForChange = RARELY

		Entity AddressBook
	}
}

BoundedContext PolicyManagement {
	Aggregate Contracts {
		Entity Contract
	}
}

BoundedContext Printing

BoundedContext CustomerTeam {
	type = TEAM
}

BoundedContext AddressTeam {
	type = TEAM
}

UserStory CreateCustomer {
	As an "Insurance Employee"
	I want to "create" a "Customer" with its "first name", "last name"
	so that "I can manage customers"
}

UserStory UpdateAddress {
	As a "Customer"
	I want to "update" an "Address"
	so that "my mail arrives"
}

UseCase ReportClaims

Stakeholders of CustomerManagement {
	Stakeholder Clerk
}

ValueRegister VR for CustomerManagement {
	Value Privacy
}
`

func load(t *testing.T, src string) *model.Set {
	t.Helper()

	doc, err := cml.Parse("mem://test.cml", []byte(src))
	require.NoError(t, err)

	set := model.NewSet(doc)
	require.NoError(t, resolve.Link(set))

	return set
}

// apply runs r on the fixture and requires it to change the model.
func apply(t *testing.T, src string, r Refactoring) (*Result, *model.Index) {
	t.Helper()

	res, err := NewEngine(nil).Apply(load(t, src), "", r)
	require.NoError(t, err)
	require.False(t, res.Skipped, "%s was skipped", r.Name())

	return res, model.NewIndex(res.Set)
}

// names returns the printed names of refs.
func names(ix *model.Index, refs []model.Ref) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, ix.RefName(r))
	}

	return out
}

func aggregateNames(aggs []*model.Aggregate) []string {
	out := make([]string, 0, len(aggs))
	for _, a := range aggs {
		out = append(out, a.Name)
	}

	return out
}

func changeList(changes []Change) []string {
	out := make([]string, 0, len(changes))
	for _, c := range changes {
		out = append(out, c.String())
	}

	return out
}
