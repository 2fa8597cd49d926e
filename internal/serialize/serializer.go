package serialize

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/cml"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/diagnostic"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

// Conflict codes reported in a SerializationConflict.
const (
	CodeUnresolvable  = "unresolvable_reference"
	CodeAmbiguous     = "ambiguous_reference"
	CodeRetargeted    = "retargeted_reference"
	CodeUnlinked      = "unlinked_reference"
	CodeDuplicateName = "duplicate_bounded_context"
	CodeReparse       = "reparse_failed"
	CodeEditMismatch  = "edit_mismatch"
)

// DocumentChange is the new text of one document and the edits that turn
// the old text into it.
type DocumentChange struct {
	URI         string
	Edits       []TextEdit
	Text        string
	Fingerprint uint64
}

// Serializer turns a refactored document set into text edits.
type Serializer struct {
	logger *zap.Logger
}

// NewSerializer creates a Serializer. A nil logger logs nothing.
func NewSerializer(logger *zap.Logger) *Serializer {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Serializer{logger: logger}
}

// Serialize returns the changes of every document of after that differs
// from its counterpart in before, matched by URI. Either all changes are
// returned or none, with a *diagnostic.SerializationConflict listing every
// reason the set cannot be printed.
func (s *Serializer) Serialize(before, after *model.Set) ([]DocumentChange, error) {
	ixBefore, ixAfter := model.NewIndex(before), model.NewIndex(after)

	conflicts := &diagnostic.Diagnostics{}
	checkReferences(after, ixAfter, conflicts)
	checkNames(ixAfter, conflicts)

	var changes []DocumentChange

	for _, doc := range after.Documents {
		old := before.Document(doc.URI)

		oldText, newText := render(old, doc, ixBefore, ixAfter)
		if oldText == newText {
			continue
		}

		if _, err := cml.Parse(doc.URI, []byte(newText)); err != nil {
			conflicts.Errorf(diagnostic.In(doc.URI), "", CodeReparse, "printed document does not read back: %v", err)
			continue
		}

		fp, err := Fingerprint([]byte(newText))
		if err != nil {
			return nil, fmt.Errorf("fingerprint %s: %w", doc.URI, err)
		}

		edits := Diff(oldText, newText)
		if Apply(oldText, edits) != newText {
			conflicts.Errorf(diagnostic.In(doc.URI), "", CodeEditMismatch, "computed edits do not reproduce the printed document")
			continue
		}

		changes = append(changes, DocumentChange{URI: doc.URI, Edits: edits, Text: newText, Fingerprint: fp})
	}

	if c := conflicts.Conflict(); c != nil {
		s.logger.Warn("serialization conflict", zap.Int("reasons", len(c.Reasons)))
		return nil, c
	}

	for _, c := range changes {
		s.logger.Debug("document changed", zap.String("uri", c.URI), zap.Int("edits", len(c.Edits)))
	}

	return changes, nil
}

// checkReferences resolves every reference again by the name it would be
// printed with.
func checkReferences(set *model.Set, ix *model.Index, res *diagnostic.Diagnostics) {
	for _, slot := range set.RefSlots(ix) {
		where := fmt.Sprintf("%s %q", slot.Owner.NodeKind(), slot.Owner.NodeName())
		at := diagnostic.At(slot.Document.URI, slot.Ref.At().Line, slot.Ref.At().Column)

		if !slot.Ref.IsLinked() {
			if !slot.Ref.IsOptional() {
				res.Errorf(at, where, CodeUnlinked, "%s reference %q is not linked", slot.Field, slot.Ref.Name())
			}

			continue
		}

		name := ix.RefName(*slot.Ref)
		candidates := ix.Lookup(name, slot)

		switch {
		case len(candidates) == 0:
			res.Errorf(at, where, CodeUnresolvable, "%s reference %q cannot be printed: no element of that name", slot.Field, name)
		case len(candidates) > 1:
			res.Errorf(at, where, CodeAmbiguous, "%s reference %q is ambiguous: %d elements have that name",
				slot.Field, name, len(candidates))
		case candidates[0].NodeID() != slot.Ref.Target():
			res.Errorf(at, where, CodeRetargeted, "%s reference %q would resolve to another %s",
				slot.Field, name, candidates[0].NodeKind())
		}
	}
}

func checkNames(ix *model.Index, res *diagnostic.Diagnostics) {
	for _, name := range ix.Names(model.KindBoundedContext) {
		nodes := ix.ByName(name, model.KindBoundedContext)
		if len(nodes) < 2 {
			continue
		}

		uris := make([]string, 0, len(nodes))
		for _, n := range nodes {
			uris = append(uris, ix.Document(n.NodeID()).URI)
		}

		res.Errorf(diagnostic.In(uris[0]), "BoundedContext "+name, CodeDuplicateName,
			"bounded context name %q is used %d times (%s)", name, len(nodes), strings.Join(uris, ", "))
	}
}

// render returns the old and the new text of a document.
func render(old, doc *model.ContextMappingModel, ixBefore, ixAfter *model.Index) (string, string) {
	switch {
	case old == nil:
		return "", printDocument(doc, ixAfter)
	case old.Source == nil:
		return printDocument(old, ixBefore), printDocument(doc, ixAfter)
	default:
		return string(old.Source), splice(old, doc, ixBefore, ixAfter)
	}
}

type piece struct {
	gap  string
	text string
}

// splice rebuilds the text of doc from the source of old. Root elements
// that print the same in both keep their original text and the text
// between them; changed elements are reprinted in place; new elements are
// inserted after the nearest preceding kept element of the section order.
func splice(old, doc *model.ContextMappingModel, ixBefore, ixAfter *model.Index) string {
	src := string(old.Source)

	type span struct {
		node model.Node
		model.Span
	}

	var original []span

	for _, n := range old.RootElements() {
		if sp, ok := old.Spans[n.NodeID()]; ok {
			original = append(original, span{node: n, Span: sp})
		}
	}

	sort.Slice(original, func(i, j int) bool { return original[i].Start < original[j].Start })

	current := make(map[model.ID]model.Node)
	for _, n := range doc.RootElements() {
		current[n.NodeID()] = n
	}

	prefix, trailer := src, ""
	if len(original) > 0 {
		prefix = src[:original[0].Start]
		_, trailer = splitLine(src[original[len(original)-1].End:])
	}

	kept := make(map[model.ID]bool)

	var (
		keptPieces []piece
		keptOrder  []model.ID
	)

	for i, o := range original {
		n, ok := current[o.node.NodeID()]
		if !ok {
			continue
		}

		gap := ""
		if i > 0 {
			_, gap = splitLine(src[original[i-1].End:o.Start])
		}

		end := len(src)
		if i+1 < len(original) {
			end = original[i+1].Start
		}

		// a comment on the element's last line stays with the element
		rest, _ := splitLine(src[o.End:end])

		text := src[o.Start:o.End]
		if printed := printRoot(n, ixAfter); printed != printRoot(o.node, ixBefore) {
			text = printed
		}

		kept[n.NodeID()] = true
		keptOrder = append(keptOrder, n.NodeID())
		keptPieces = append(keptPieces, piece{gap: gap, text: text + rest})
	}

	var (
		leading  []piece
		attached = make(map[model.ID][]piece)
		anchor   model.ID
	)

	for _, n := range doc.RootElements() {
		if kept[n.NodeID()] {
			anchor = n.NodeID()
			continue
		}

		p := piece{gap: "\n\n", text: printRoot(n, ixAfter)}
		if anchor == "" {
			leading = append(leading, p)
		} else {
			attached[anchor] = append(attached[anchor], p)
		}
	}

	pieces := append([]piece{}, leading...)

	for i, id := range keptOrder {
		pieces = append(pieces, keptPieces[i])
		pieces = append(pieces, attached[id]...)
	}

	var b strings.Builder

	if len(original) == 0 && len(pieces) > 0 {
		prefix = strings.TrimRight(prefix, "\n")
		if prefix != "" {
			prefix += "\n\n"
		}

		trailer = "\n"
	}

	b.WriteString(prefix)

	for i, p := range pieces {
		switch {
		case i == 0:
		case p.gap == "":
			b.WriteString("\n\n")
		default:
			b.WriteString(p.gap)
		}

		b.WriteString(p.text)
	}

	b.WriteString(trailer)

	return b.String()
}

// splitLine splits text after the rest of the current line. A block
// comment opened on that line is never split.
func splitLine(text string) (string, string) {
	i := strings.IndexByte(text, '\n')
	if i < 0 {
		i = len(text)
	}

	if strings.Contains(text[:i], "/*") {
		return "", text
	}

	return text[:i], text[i:]
}
