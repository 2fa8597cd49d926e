package cml

import (
	"fmt"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

// Parse reads one CML document. The returned document is unlinked: every
// cross reference is a name reference carrying its source position.
func Parse(uri string, src []byte) (doc *model.ContextMappingModel, err error) {
	toks, err := tokenize(uri, src)
	if err != nil {
		return nil, err
	}

	p := &parser{
		uri:  uri,
		toks: toks,
		doc: &model.ContextMappingModel{
			ID:     model.NewID(),
			URI:    uri,
			Source: src,
			Spans:  make(map[model.ID]model.Span),
		},
	}

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}

			doc, err = nil, b.err
		}
	}()

	p.parseDocument()

	return p.doc, nil
}

type parser struct {
	uri  string
	toks []token
	i    int
	doc  *model.ContextMappingModel
}

func (p *parser) peek() token {
	return p.peekN(0)
}

func (p *parser) peekN(n int) token {
	if p.i+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}

	return p.toks[p.i+n]
}

func (p *parser) next() token {
	t := p.peek()
	if t.kind != tokEOF {
		p.i++
	}

	return t
}

// at reports whether the next token is the keyword or symbol text.
func (p *parser) at(text string) bool {
	return p.atN(0, text)
}

func (p *parser) atN(n int, text string) bool {
	t := p.peekN(n)
	return (t.kind == tokIdent || t.kind == tokPunct) && t.text == text
}

func (p *parser) accept(text string) bool {
	if p.at(text) {
		p.next()
		return true
	}

	return false
}

func (p *parser) expect(text string) token {
	if !p.at(text) {
		p.failf(p.peek(), "expected %q, found %s", text, p.peek().describe())
	}

	return p.next()
}

func (p *parser) ident() token {
	if p.peek().kind != tokIdent {
		p.failf(p.peek(), "expected identifier, found %s", p.peek().describe())
	}

	return p.next()
}

func (p *parser) str() string {
	if p.peek().kind != tokString {
		p.failf(p.peek(), "expected string, found %s", p.peek().describe())
	}

	return p.next().text
}

// value reads the right-hand side of an enum-like assignment:
// an identifier, a string or a number.
func (p *parser) value() string {
	switch p.peek().kind {
	case tokIdent, tokString, tokInt:
		return p.next().text
	default:
		p.failf(p.peek(), "expected value, found %s", p.peek().describe())
		return ""
	}
}

func (p *parser) failf(at token, format string, args ...any) {
	panic(bailout{err: &SyntaxError{URI: p.uri, Pos: at.pos, Msg: fmt.Sprintf(format, args...)}})
}

// assign consumes "key =" with an optional "=".
func (p *parser) assign(key string) {
	p.expect(key)
	p.accept("=")
}

func (p *parser) nameRef() model.Ref {
	t := p.ident()
	return model.NameRef(t.text, t.pos)
}

// nameRefs reads "A, B, C".
func (p *parser) nameRefs() []model.Ref {
	refs := []model.Ref{p.nameRef()}
	for p.accept(",") {
		refs = append(refs, p.nameRef())
	}

	return refs
}

// strs reads `"a", "b"`.
func (p *parser) strs() []string {
	out := []string{p.str()}
	for p.peek().kind == tokPunct && p.peek().text == "," && p.peekN(1).kind == tokString {
		p.next()
		out = append(out, p.str())
	}

	return out
}

// body calls fn for each entry between braces. A missing body is accepted
// when optional is set.
func (p *parser) body(optional bool, fn func()) {
	if optional && !p.at("{") {
		return
	}

	p.expect("{")

	for !p.at("}") {
		if p.peek().kind == tokEOF {
			p.failf(p.peek(), "expected \"}\", found end of file")
		}

		fn()
	}

	p.next()
}

func (p *parser) unexpected(where string) {
	p.failf(p.peek(), "unexpected %s in %s", p.peek().describe(), where)
}

func (p *parser) parseDocument() {
	for p.peek().kind != tokEOF {
		start := p.peek()

		var n model.Node

		switch {
		case p.accept("import"):
			p.doc.Imports = append(p.doc.Imports, p.str())
			continue
		case p.at("ContextMap"):
			if p.doc.ContextMap != nil {
				p.failf(start, "a document can have only one ContextMap")
			}

			p.doc.ContextMap = p.parseContextMap()
			n = p.doc.ContextMap
		case p.at("BoundedContext"):
			bc := p.parseBoundedContext()
			p.doc.BoundedContexts = append(p.doc.BoundedContexts, bc)
			n = bc
		case p.at("Domain"):
			d := p.parseDomain()
			p.doc.Domains = append(p.doc.Domains, d)
			n = d
		case p.at("UseCase"), p.at("UserStory"):
			ur := p.parseUserRequirement()
			p.doc.UserRequirements = append(p.doc.UserRequirements, ur)
			n = ur
		case p.at("Stakeholders"):
			s := p.parseStakeholders()
			p.doc.Stakeholders = append(p.doc.Stakeholders, s)
			n = s
		case p.at("ValueRegister"):
			vr := p.parseValueRegister()
			p.doc.ValueRegisters = append(p.doc.ValueRegisters, vr)
			n = vr
		default:
			p.unexpected("document")
		}

		p.doc.Spans[n.NodeID()] = model.Span{Start: start.offset, End: p.toks[p.i-1].end}
	}
}
