package model

// Index provides ID, parent and name lookups over a Set.
// An Index is a snapshot: rebuild it after mutating the set.
type Index struct {
	nodes   map[ID]Node
	parents map[ID]Node
	docs    map[ID]*ContextMappingModel
	names   map[Kind]map[string][]Node
	order   []Node
}

// NewIndex indexes every node of s.
func NewIndex(s *Set) *Index {
	ix := &Index{
		nodes:   make(map[ID]Node),
		parents: make(map[ID]Node),
		docs:    make(map[ID]*ContextMappingModel),
		names:   make(map[Kind]map[string][]Node),
	}

	s.Walk(func(n Node, parent Node, doc *ContextMappingModel) {
		id := n.NodeID()
		ix.nodes[id] = n
		ix.docs[id] = doc
		ix.order = append(ix.order, n)

		if parent != nil {
			ix.parents[id] = parent
		}

		if name := n.NodeName(); name != "" && n.NodeKind() != KindValueElicitation {
			byName := ix.names[n.NodeKind()]
			if byName == nil {
				byName = make(map[string][]Node)
				ix.names[n.NodeKind()] = byName
			}

			byName[name] = append(byName[name], n)
		}
	})

	return ix
}

// Node returns the node with the given ID, or nil.
func (ix *Index) Node(id ID) Node {
	return ix.nodes[id]
}

// Parent returns the containing node, or nil for root elements.
func (ix *Index) Parent(id ID) Node {
	return ix.parents[id]
}

// Document returns the document owning the node.
func (ix *Index) Document(id ID) *ContextMappingModel {
	return ix.docs[id]
}

// Len returns the number of indexed nodes.
func (ix *Index) Len() int {
	return len(ix.nodes)
}

// All returns the nodes of the given kind in walk order.
func (ix *Index) All(kind Kind) []Node {
	var out []Node

	for _, n := range ix.order {
		if n.NodeKind() == kind {
			out = append(out, n)
		}
	}

	return out
}

// Nodes returns every node in walk order.
func (ix *Index) Nodes() []Node {
	return ix.order
}

// ByName returns the nodes of the given kinds with the given name, in kind
// order then walk order.
func (ix *Index) ByName(name string, kinds ...Kind) []Node {
	var out []Node
	for _, k := range kinds {
		out = append(out, ix.names[k][name]...)
	}

	return out
}

// Names returns the distinct names of the given kinds in walk order.
func (ix *Index) Names(kinds ...Kind) []string {
	seen := make(map[string]bool)

	var out []string

	for _, n := range ix.order {
		for _, k := range kinds {
			if n.NodeKind() == k && n.NodeName() != "" && !seen[n.NodeName()] {
				seen[n.NodeName()] = true
				out = append(out, n.NodeName())
			}
		}
	}

	return out
}

// Lookup returns the candidates a printed name resolves to for a slot:
// aggregates of the slot scope first, the global namespace otherwise.
// Domain object names that occur more than once resolve to the objects
// living in the same bounded context or subdomain as the referencing one.
func (ix *Index) Lookup(name string, slot RefSlot) []Node {
	if slot.Scope != nil {
		var scoped []Node

		for _, a := range slot.Scope.AllAggregates() {
			if a.Name == name && slot.Accepts(KindAggregate) {
				scoped = append(scoped, a)
			}
		}

		if len(scoped) > 0 {
			return scoped
		}
	}

	candidates := ix.ByName(name, slot.Kinds...)
	if len(candidates) < 2 || !slot.Accepts(KindDomainObject) || slot.Owner == nil {
		return candidates
	}

	home := ix.home(slot.Owner.NodeID())
	if home == nil {
		return candidates
	}

	var local []Node

	for _, c := range candidates {
		if h := ix.home(c.NodeID()); h != nil && h.NodeID() == home.NodeID() {
			local = append(local, c)
		}
	}

	if len(local) > 0 {
		return local
	}

	return candidates
}

// home returns the bounded context or subdomain containing the node.
func (ix *Index) home(id ID) Node {
	for p := ix.parents[id]; p != nil; p = ix.parents[p.NodeID()] {
		switch p.(type) {
		case *BoundedContext, *Subdomain:
			return p
		}
	}

	return nil
}

// Deref resolves r: by ID first, then by name when the name is unique
// among nodes of the given kinds. It returns nil if r does not resolve.
func (ix *Index) Deref(r Ref, kinds ...Kind) Node {
	if r.IsLinked() {
		if n, ok := ix.nodes[r.Target()]; ok {
			return n
		}
	}

	if r.Name() == "" || len(kinds) == 0 {
		return nil
	}

	candidates := ix.ByName(r.Name(), kinds...)
	if len(candidates) == 1 {
		return candidates[0]
	}

	return nil
}

// RefName returns the name to print for r: the live name of its target when
// linked, the cached name otherwise.
func (ix *Index) RefName(r Ref) string {
	if r.IsLinked() {
		if n, ok := ix.nodes[r.Target()]; ok {
			return n.NodeName()
		}
	}

	return r.Name()
}

// BoundedContext returns the unique bounded context with the given name.
func (ix *Index) BoundedContext(name string) *BoundedContext {
	bc, _ := unique(ix.ByName(name, KindBoundedContext)).(*BoundedContext)
	return bc
}

// Aggregate returns the unique aggregate with the given name.
func (ix *Index) Aggregate(name string) *Aggregate {
	a, _ := unique(ix.ByName(name, KindAggregate)).(*Aggregate)
	return a
}

// UserRequirement returns the unique use case or story with the given name.
func (ix *Index) UserRequirement(name string) *UserRequirement {
	u, _ := unique(ix.ByName(name, KindUserRequirement)).(*UserRequirement)
	return u
}

// Subdomain returns the unique subdomain with the given name.
func (ix *Index) Subdomain(name string) *Subdomain {
	s, _ := unique(ix.ByName(name, KindSubdomain)).(*Subdomain)
	return s
}

// Domain returns the unique domain with the given name.
func (ix *Index) Domain(name string) *Domain {
	d, _ := unique(ix.ByName(name, KindDomain)).(*Domain)
	return d
}

// Stakeholder returns the unique stakeholder with the given name.
func (ix *Index) Stakeholder(name string) *Stakeholder {
	s, _ := unique(ix.ByName(name, KindStakeholder)).(*Stakeholder)
	return s
}

// Value returns the unique value with the given name.
func (ix *Index) Value(name string) *Value {
	v, _ := unique(ix.ByName(name, KindValue)).(*Value)
	return v
}

// OwningContext returns the bounded context that contains the node, walking
// up through modules and aggregates.
func (ix *Index) OwningContext(id ID) *BoundedContext {
	for p := ix.parents[id]; p != nil; p = ix.parents[p.NodeID()] {
		if bc, ok := p.(*BoundedContext); ok {
			return bc
		}
	}

	return nil
}

func unique(nodes []Node) Node {
	if len(nodes) != 1 {
		return nil
	}

	return nodes[0]
}
