package refactor

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/diagnostic"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/match"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

var (
	// ErrNoTarget reports that a name-addressed target does not exist.
	ErrNoTarget = errors.New("refactoring target not found")
	// ErrAlreadyApplied reports that a create-if-absent refactoring finds
	// its element already present.
	ErrAlreadyApplied = errors.New("refactoring already applied")
)

// IsSkip reports whether err from Check means "nothing to do".
func IsSkip(err error) bool {
	return errors.Is(err, ErrNoTarget) || errors.Is(err, ErrAlreadyApplied)
}

// Refactoring is one named, parameterized model transformation.
type Refactoring interface {
	// Name returns the command identifier, e.g. "SplitAggregateByEntities".
	Name() string
	// Check reports whether the refactoring can run. It must not mutate.
	Check(c *Context) error
	// Refactor applies the transformation to c.Set.
	Refactor(c *Context) error
}

// Context is the explicit state a refactoring works on.
type Context struct {
	// Set is the linked document set being transformed.
	Set *model.Set
	// Document receives root elements the refactoring creates.
	Document *model.ContextMappingModel
	Logger   *zap.Logger
}

// NewContext creates a Context on set targeting the document with the
// given URI; an empty URI targets the primary document.
func NewContext(set *model.Set, uri string, logger *zap.Logger) (*Context, error) {
	doc := set.Primary()
	if uri != "" {
		doc = set.Document(uri)
	}

	if doc == nil {
		return nil, fmt.Errorf("document %q is not part of the model set", uri)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Context{Set: set, Document: doc, Logger: logger}, nil
}

// Index returns a fresh index of the set.
func (c *Context) Index() *model.Index {
	return model.NewIndex(c.Set)
}

// IsApplicable reports whether r would change the document set.
func IsApplicable(r Refactoring, set *model.Set, uri string) bool {
	c, err := NewContext(set, uri, nil)
	if err != nil {
		return false
	}

	return r.Check(c) == nil
}

// find resolves the single node of the given kind named name. A missing
// name is ErrNoTarget; more than one match is a violation.
func find[N model.Node](c *Context, command string, kind model.Kind, name string) (N, error) {
	var zero N

	nodes := c.Index().ByName(name, kind)

	switch len(nodes) {
	case 0:
		return zero, fmt.Errorf("%s %q: %w", kind, name, ErrNoTarget)
	case 1:
		n, ok := nodes[0].(N)
		if !ok {
			return zero, diagnostic.Violation(command, "%q is a %s", name, nodes[0].NodeKind())
		}

		return n, nil
	default:
		return zero, diagnostic.Violation(command, "%s name %q is ambiguous: %d elements have that name",
			kind, name, len(nodes))
	}
}

// mustFind is find for parameters the command assumes to exist: a missing
// name is a violation suggesting similar names.
func mustFind[N model.Node](c *Context, command string, kind model.Kind, name string) (N, error) {
	n, err := find[N](c, command, kind, name)
	if errors.Is(err, ErrNoTarget) {
		v := diagnostic.Violation(command, "%s %q does not exist", kind, name)
		v.Suggestions = match.Suggest(name, c.Index().Names(kind), match.DefaultMaxSuggestions)

		return n, v
	}

	return n, err
}

// findAll resolves names to nodes of one kind, dropping names that match
// nothing or more than one node. Order and duplicates follow names.
func findAll[N model.Node](c *Context, kind model.Kind, names []string) []N {
	ix := c.Index()
	seen := make(map[model.ID]bool)

	var out []N

	for _, name := range names {
		nodes := ix.ByName(name, kind)
		if len(nodes) != 1 {
			c.Logger.Debug("skipping unresolved name", zap.String("kind", kind.String()), zap.String("name", name))
			continue
		}

		n, ok := nodes[0].(N)
		if !ok || seen[n.NodeID()] {
			continue
		}

		seen[n.NodeID()] = true
		out = append(out, n)
	}

	return out
}

// checkIdentifier rejects names that cannot be printed as CML identifiers.
func checkIdentifier(command, what, name string) error {
	if name == "" || model.Identifier(name) != name {
		return diagnostic.Violation(command, "%s %q is not a valid identifier (try %q)", what, name, model.Identifier(name))
	}

	return nil
}

// addBoundedContext appends bc to doc and to every context map that
// contains sibling.
func addBoundedContext(c *Context, doc *model.ContextMappingModel, bc, sibling *model.BoundedContext) {
	doc.BoundedContexts = append(doc.BoundedContexts, bc)

	if sibling == nil {
		return
	}

	for _, cm := range c.Set.ContextMaps() {
		if model.ContainsRef(cm.Contains, sibling.ID) {
			cm.Contains = append(cm.Contains, model.RefTo(bc))
		}
	}
}

// dedupeRefs drops repeated targets and, when drop is set, refs to drop.
func dedupeRefs(refs []model.Ref, drop model.ID) []model.Ref {
	seen := make(map[model.ID]bool)
	out := refs[:0]

	for _, r := range refs {
		if r.IsLinked() && (seen[r.Target()] || r.Target() == drop) {
			continue
		}

		seen[r.Target()] = true
		out = append(out, r)
	}

	return out
}

// unionRefs appends the refs of extra whose targets are not in refs yet.
func unionRefs(refs, extra []model.Ref) []model.Ref {
	for _, r := range extra {
		if !r.IsLinked() || !model.ContainsRef(refs, r.Target()) {
			refs = append(refs, r)
		}
	}

	return refs
}

func unionStrings(texts, extra []string) []string {
	for _, t := range extra {
		if !slices.Contains(texts, t) {
			texts = append(texts, t)
		}
	}

	return texts
}

func nameSet[N model.Node](nodes []N) map[string]bool {
	names := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		names[n.NodeName()] = true
	}

	return names
}

// freeName returns name, or name with the smallest numeric suffix that is
// not in taken, and marks the result as taken.
func freeName(taken map[string]bool, name string) string {
	free := name
	for i := 2; taken[free]; i++ {
		free = name + strconv.Itoa(i)
	}

	taken[free] = true

	return free
}
