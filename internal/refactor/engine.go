package refactor

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/diagnostic"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

// Op is the kind of a Change.
type Op string

const (
	OpCreated Op = "created"
	OpDeleted Op = "deleted"
	OpMoved   Op = "moved"
	OpRenamed Op = "renamed"
	OpUpdated Op = "updated"
)

// Change describes what happened to one node.
type Change struct {
	Op   Op         `json:"op" yaml:"op"`
	Kind model.Kind `json:"kind" yaml:"kind"`
	ID   model.ID   `json:"id" yaml:"id"`
	Name string     `json:"name" yaml:"name"`
	URI  string     `json:"uri" yaml:"uri"`
	// Was is the previous name of a renamed node or the previous container
	// of a moved one.
	Was string `json:"was,omitempty" yaml:"was,omitempty"`
}

func (c Change) String() string {
	s := fmt.Sprintf("%s %s %q", c.Op, c.Kind, c.Name)
	if c.Was != "" {
		s += " (was " + c.Was + ")"
	}

	return s
}

// Result is the outcome of one engine run.
type Result struct {
	// Set is the transformed set, or the input set when Skipped.
	Set *model.Set
	// Changes lists created, moved, renamed and updated nodes in walk
	// order, then deleted nodes.
	Changes []Change
	// Skipped is set when the refactoring had nothing to do.
	Skipped bool
}

// Engine applies refactorings on scratch copies of a model set.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an Engine. A nil logger logs nothing.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{logger: logger}
}

// Apply runs r against the document with the given URI (the primary
// document when empty). The input set is never mutated: r works on a
// clone, which is returned only when the refactoring succeeded and left
// the set valid.
func (e *Engine) Apply(set *model.Set, uri string, r Refactoring) (*Result, error) {
	scratch := set.Clone()
	logger := e.logger.With(zap.String("refactoring", r.Name()))

	c, err := NewContext(scratch, uri, logger)
	if err != nil {
		return nil, err
	}

	if err := r.Check(c); err != nil {
		if IsSkip(err) {
			logger.Info("refactoring skipped", zap.Error(err))
			return &Result{Set: set, Skipped: true}, nil
		}

		return nil, err
	}

	if err := r.Refactor(c); err != nil {
		var violation *diagnostic.PreconditionViolation
		if errors.As(err, &violation) {
			return nil, err
		}

		return nil, fmt.Errorf("%s: %w", r.Name(), err)
	}

	if res := scratch.Validate(); !res.IsValid() {
		return nil, fmt.Errorf("%s left the model inconsistent: %w", r.Name(), res.Error())
	}

	changes := Diff(set, scratch)
	logger.Info("refactoring applied", zap.Int("changes", len(changes)))

	return &Result{Set: scratch, Changes: changes}, nil
}

// ApplyAll runs the refactorings in order, each on the result of the
// previous one. Any failure discards every step.
func (e *Engine) ApplyAll(set *model.Set, uri string, rs ...Refactoring) (*Result, error) {
	out := &Result{Set: set, Skipped: true}

	for i, r := range rs {
		res, err := e.Apply(out.Set, uri, r)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		if !res.Skipped {
			out.Set = res.Set
			out.Skipped = false
		}
	}

	if !out.Skipped {
		out.Changes = Diff(set, out.Set)
	}

	return out, nil
}

var nodeType = reflect.TypeOf((*model.Node)(nil)).Elem()

// ownFields compares the attributes and references of a node, ignoring the
// child nodes it contains.
var ownFields = cmp.Options{
	cmp.AllowUnexported(model.Ref{}),
	cmp.FilterPath(func(p cmp.Path) bool {
		sf, ok := p.Last().(cmp.StructField)
		if !ok {
			return false
		}

		t := sf.Type()
		if t.Kind() == reflect.Slice {
			t = t.Elem()
		}

		return t.Implements(nodeType)
	}, cmp.Ignore()),
}

// Diff lists the node changes turning before into after. Nodes are
// matched by ID.
func Diff(before, after *model.Set) []Change {
	ixBefore, ixAfter := model.NewIndex(before), model.NewIndex(after)

	var out []Change

	for _, n := range ixAfter.Nodes() {
		if n.NodeKind() == model.KindDocument {
			continue
		}

		id := n.NodeID()
		change := Change{Kind: n.NodeKind(), ID: id, Name: n.NodeName(), URI: ixAfter.Document(id).URI}

		old := ixBefore.Node(id)
		if old == nil {
			change.Op = OpCreated
			out = append(out, change)

			continue
		}

		if from, to := container(ixBefore, id), container(ixAfter, id); from.NodeID() != to.NodeID() {
			change.Op, change.Was = OpMoved, describe(from)
			out = append(out, change)

			continue
		}

		if old.NodeName() != n.NodeName() {
			change.Op, change.Was = OpRenamed, old.NodeName()
			out = append(out, change)

			continue
		}

		if !cmp.Equal(old, n, ownFields) {
			change.Op = OpUpdated
			out = append(out, change)
		}
	}

	for _, n := range ixBefore.Nodes() {
		if n.NodeKind() == model.KindDocument || ixAfter.Node(n.NodeID()) != nil {
			continue
		}

		out = append(out, Change{
			Op: OpDeleted, Kind: n.NodeKind(), ID: n.NodeID(), Name: n.NodeName(),
			URI: ixBefore.Document(n.NodeID()).URI,
		})
	}

	return out
}

// container returns the parent of a node, or its document for root elements.
func container(ix *model.Index, id model.ID) model.Node {
	if p := ix.Parent(id); p != nil {
		return p
	}

	return ix.Document(id)
}

func describe(n model.Node) string {
	if n.NodeKind() == model.KindDocument {
		return n.NodeName()
	}

	return fmt.Sprintf("%s %s", n.NodeKind(), n.NodeName())
}
