package model

// insuranceSet builds a small linked set:
//
//	ContextMap { CustomerManagement [U,OHS]->[D,ACL] PolicyManagement exposing Customers }
//	BoundedContext CustomerManagement { Aggregate Customers { Entity Customer, ValueObject Address } }
//	BoundedContext PolicyManagement { Module contracts { Aggregate Contracts { Entity Contract } } }
//	ValueRegister VR for CustomerManagement
func insuranceSet() *Set {
	address := &DomainObject{ID: "address", Kind: ValueObject, Name: "Address"}
	customer := &DomainObject{ID: "customer", Kind: Entity, Name: "Customer", AggregateRoot: true}
	customer.Attributes = []*Attribute{
		{Name: "firstname", Type: "String"},
		{Name: "address", Type: "Address", Reference: RefTo(address)},
	}

	customers := &Aggregate{ID: "customers", Name: "Customers", DomainObjects: []*DomainObject{customer, address}}
	cm := &BoundedContext{ID: "cm", Name: "CustomerManagement", Aggregates: []*Aggregate{customers}}

	contract := &DomainObject{ID: "contract", Kind: Entity, Name: "Contract", Extends: OptionalNameRef("BaseEntity", Pos{})}
	contracts := &Aggregate{ID: "contracts", Name: "Contracts", Owner: RefTo(cm), DomainObjects: []*DomainObject{contract}}
	pm := &BoundedContext{
		ID: "pm", Name: "PolicyManagement",
		Modules: []*Module{{ID: "mod", Name: "contracts", Aggregates: []*Aggregate{contracts}}},
	}

	rel := &Relationship{
		ID: "rel", Kind: UpstreamDownstream, Left: RefTo(cm), Right: RefTo(pm),
		UpstreamRoles:     []string{RoleOpenHostService},
		DownstreamRoles:   []string{RoleAntiCorruptionLayer},
		ExposedAggregates: []Ref{RefTo(customers)},
	}

	doc := &ContextMappingModel{
		ID:              "doc",
		URI:             "file:///insurance.cml",
		ContextMap:      &ContextMap{ID: "map", Name: "Insurance", Contains: []Ref{RefTo(cm), RefTo(pm)}, Relationships: []*Relationship{rel}},
		BoundedContexts: []*BoundedContext{cm, pm},
		ValueRegisters:  []*ValueRegister{{ID: "vr", Name: "VR", Context: RefTo(cm)}},
	}

	return NewSet(doc)
}
