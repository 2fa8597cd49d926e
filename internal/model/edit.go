package model

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// ErrStillReferenced is returned when deleting a node that is still the
// target of a cross reference.
var ErrStillReferenced = errors.New("node is still referenced")

// Detach removes the node with the given ID from its container.
// It reports false if the node is unknown or not detachable.
func (s *Set) Detach(id ID) bool {
	ix := NewIndex(s)

	n := ix.Node(id)
	if n == nil {
		return false
	}

	parent := ix.Parent(id)
	if parent == nil {
		return ix.Document(id).removeRoot(n)
	}

	same := func(e Node) bool { return e.NodeID() == id }

	switch p := parent.(type) {
	case *ContextMap:
		return removeFrom(&p.Relationships, same)
	case *BoundedContext:
		return removeFrom(&p.Aggregates, same) || removeFrom(&p.Modules, same)
	case *Module:
		return removeFrom(&p.Aggregates, same)
	case *Aggregate:
		return removeFrom(&p.DomainObjects, same)
	case *Domain:
		return removeFrom(&p.Subdomains, same)
	case *Subdomain:
		return removeFrom(&p.Entities, same)
	case *Stakeholders:
		return removeFrom(&p.Items, same)
	case *StakeholderGroup:
		return removeFrom(&p.Items, same)
	case *ValueRegister:
		return removeFrom(&p.Clusters, same) || removeFrom(&p.Values, same)
	case *ValueCluster:
		return removeFrom(&p.Values, same) || removeFrom(&p.Elicitations, same)
	case *Value:
		return removeFrom(&p.Elicitations, same)
	}

	return false
}

// Delete detaches the node after checking that no reference outside the
// node's own subtree still points at it or at one of its descendants.
func (s *Set) Delete(id ID) error {
	ix := NewIndex(s)
	if ix.Node(id) == nil {
		return fmt.Errorf("delete %s: node not found", id)
	}

	inside := func(n Node) bool {
		for cur := n; cur != nil; cur = ix.Parent(cur.NodeID()) {
			if cur.NodeID() == id {
				return true
			}
		}

		return false
	}

	for _, slot := range s.RefSlots(nil) {
		if !slot.Ref.IsLinked() || inside(slot.Owner) {
			continue
		}

		if target := ix.Node(slot.Ref.Target()); target != nil && inside(target) {
			return fmt.Errorf("delete %s %q: %w by %s %q (%s)", ix.Node(id).NodeKind(), ix.Node(id).NodeName(),
				ErrStillReferenced, slot.Owner.NodeKind(), slot.Owner.NodeName(), slot.Field)
		}
	}

	if !s.Detach(id) {
		return fmt.Errorf("delete %s: node cannot be detached", id)
	}

	return nil
}

func (m *ContextMappingModel) removeRoot(n Node) bool {
	same := func(e Node) bool { return e.NodeID() == n.NodeID() }

	switch n.(type) {
	case *ContextMap:
		if m.ContextMap != nil && m.ContextMap.ID == n.NodeID() {
			m.ContextMap = nil
			return true
		}
	case *BoundedContext:
		return removeFrom(&m.BoundedContexts, same)
	case *Domain:
		return removeFrom(&m.Domains, same)
	case *UserRequirement:
		return removeFrom(&m.UserRequirements, same)
	case *Stakeholders:
		return removeFrom(&m.Stakeholders, same)
	case *ValueRegister:
		return removeFrom(&m.ValueRegisters, same)
	}

	return false
}

func removeFrom[E Node](s *[]E, match func(Node) bool) bool {
	i := slices.IndexFunc(*s, func(e E) bool { return match(e) })
	if i < 0 {
		return false
	}

	*s = slices.Delete(*s, i, i+1)

	return true
}

// RemoveAggregate removes the aggregate from the context or one of its modules.
func (b *BoundedContext) RemoveAggregate(id ID) bool {
	same := func(n Node) bool { return n.NodeID() == id }
	if removeFrom(&b.Aggregates, same) {
		return true
	}

	for _, m := range b.Modules {
		if removeFrom(&m.Aggregates, same) {
			return true
		}
	}

	return false
}

// RemoveRelationship removes the relationship from the context map.
func (c *ContextMap) RemoveRelationship(id ID) bool {
	return removeFrom(&c.Relationships, func(n Node) bool { return n.NodeID() == id })
}

// ReplaceRelationship replaces the relationship with the given ID by the
// given relationships, keeping its position.
func (c *ContextMap) ReplaceRelationship(id ID, with ...*Relationship) bool {
	i := slices.IndexFunc(c.Relationships, func(r *Relationship) bool { return r.ID == id })
	if i < 0 {
		return false
	}

	c.Relationships = slices.Replace(c.Relationships, i, i+1, with...)

	return true
}

// UniqueName returns base if no node of the given kinds is named base,
// otherwise base with the smallest numeric suffix ("base2", "base3", ...)
// that is free. Names in reserved are treated as taken.
func UniqueName(ix *Index, base string, reserved map[string]bool, kinds ...Kind) string {
	taken := func(name string) bool {
		return reserved[name] || len(ix.ByName(name, kinds...)) > 0
	}

	if !taken(base) {
		return base
	}

	for i := 2; ; i++ {
		name := base + strconv.Itoa(i)
		if !taken(name) {
			return name
		}
	}
}

// Identifier turns free text into a CML identifier: words are joined in
// CamelCase, characters outside letters, digits and '_' are dropped, and a
// leading digit is prefixed with '_'.
func Identifier(text string) string {
	var b strings.Builder

	upper := true

	for _, r := range text {
		switch {
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			if upper {
				r = unicode.ToUpper(r)
				upper = false
			}

			b.WriteRune(r)
		default:
			upper = true
		}
	}

	out := b.String()
	if out == "" {
		return "_"
	}

	if unicode.IsDigit([]rune(out)[0]) {
		out = "_" + out
	}

	return out
}
