// Package workspace ties loading, refactoring and serialization together
// for one open document set.
package workspace

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/viant/afs"
	"go.uber.org/zap"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/cml"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/refactor"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/resolve"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/serialize"
)

const fileMode = 0o644

// Invocation is a refactoring command name with its ordered parameters.
type Invocation struct {
	Command string
	Args    []string
}

// Outcome is what one refactoring run did to the document set.
type Outcome struct {
	// Changes lists the node changes.
	Changes []refactor.Change
	// Documents holds the new text and edits of every changed document.
	Documents []serialize.DocumentChange
	// Skipped is set when no command had anything to do.
	Skipped bool
}

// Workspace is an open document set. Refactorings run one at a time; a
// successful run replaces the set, a failed one leaves it as it was.
type Workspace struct {
	mu         sync.Mutex
	fs         afs.Service
	uri        string
	set        *model.Set
	engine     *refactor.Engine
	serializer *serialize.Serializer
	registry   *refactor.Registry
	logger     *zap.Logger
}

// Open loads and links the document at uri with its imports.
func Open(ctx context.Context, fs afs.Service, uri string, logger *zap.Logger) (*Workspace, error) {
	if fs == nil {
		fs = afs.New()
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	set, err := resolve.NewLoader(fs, logger).Open(ctx, uri)
	if err != nil {
		return nil, err
	}

	return &Workspace{
		fs:         fs,
		uri:        resolve.CanonicalURI(uri),
		set:        set,
		engine:     refactor.NewEngine(logger),
		serializer: serialize.NewSerializer(logger),
		registry:   refactor.NewRegistry(),
		logger:     logger,
	}, nil
}

// URI returns the canonical URI of the opened document.
func (w *Workspace) URI() string {
	return w.uri
}

// Set returns the current document set. Callers must not mutate it.
func (w *Workspace) Set() *model.Set {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.set
}

// Refactor runs one command against the document with the given URI (the
// opened document when empty).
func (w *Workspace) Refactor(target string, inv Invocation) (*Outcome, error) {
	return w.Run(target, inv)
}

// Run applies the commands in order as one batch: either all of them
// take effect or none.
func (w *Workspace) Run(target string, invs ...Invocation) (*Outcome, error) {
	rs := make([]refactor.Refactoring, 0, len(invs))

	for _, inv := range invs {
		r, err := w.registry.Lookup(inv.Command, inv.Args)
		if err != nil {
			return nil, err
		}

		rs = append(rs, r)
	}

	if target != "" {
		target = resolve.CanonicalURI(target)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	res, err := w.engine.ApplyAll(w.set, target, rs...)
	if err != nil {
		return nil, err
	}

	if res.Skipped {
		return &Outcome{Skipped: true}, nil
	}

	docs, err := w.serializer.Serialize(w.set, res.Set)
	if err != nil {
		return nil, err
	}

	next, err := reload(res.Set, docs)
	if err != nil {
		return nil, err
	}

	w.set = next

	return &Outcome{Changes: res.Changes, Documents: docs}, nil
}

// reload reads the set again from the new document texts, so that sources
// and spans match what will be written.
func reload(set *model.Set, docs []serialize.DocumentChange) (*model.Set, error) {
	text := make(map[string]string, len(docs))
	for _, d := range docs {
		text[d.URI] = d.Text
	}

	out := model.NewSet()

	for _, doc := range set.Documents {
		src, ok := text[doc.URI]
		if !ok {
			src = string(doc.Source)
		}

		parsed, err := cml.Parse(doc.URI, []byte(src))
		if err != nil {
			return nil, fmt.Errorf("failed to read back %s: %w", doc.URI, err)
		}

		out.Documents = append(out.Documents, parsed)
	}

	if err := resolve.Link(out); err != nil {
		return nil, fmt.Errorf("failed to link refactored documents: %w", err)
	}

	return out, nil
}

// Format returns the canonical print of every document whose text differs
// from it.
func (w *Workspace) Format() ([]serialize.DocumentChange, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var out []serialize.DocumentChange

	for _, doc := range w.set.Documents {
		text := serialize.Print(doc, w.set)
		if bytes.Equal(doc.Source, []byte(text)) {
			continue
		}

		fp, err := serialize.Fingerprint([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("fingerprint %s: %w", doc.URI, err)
		}

		out = append(out, serialize.DocumentChange{
			URI:         doc.URI,
			Edits:       serialize.Diff(string(doc.Source), text),
			Text:        text,
			Fingerprint: fp,
		})
	}

	return out, nil
}

// Write stores the new text of every changed document.
func (w *Workspace) Write(ctx context.Context, changes []serialize.DocumentChange) error {
	for _, c := range changes {
		if err := w.fs.Upload(ctx, c.URI, fileMode, bytes.NewReader([]byte(c.Text))); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.URI, err)
		}

		w.logger.Info("document written", zap.String("uri", c.URI), zap.Int("edits", len(c.Edits)))
	}

	return nil
}
