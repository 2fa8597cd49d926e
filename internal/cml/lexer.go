package cml

import (
	"bytes"
	"fmt"
	"strconv"
	"text/scanner"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokInt
	tokPunct
)

// String returns a human-readable representation of the tokenKind.
func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of file"
	case tokIdent:
		return "identifier"
	case tokString:
		return "string"
	case tokInt:
		return "number"
	default:
		return "symbol"
	}
}

type token struct {
	kind tokenKind
	// text is the identifier, the unquoted string or the symbol.
	text   string
	pos    model.Pos
	offset int
	end    int
}

func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of file"
	case tokString:
		return strconv.Quote(t.text)
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

// tokenize splits src into tokens. Comments and whitespace are dropped.
func tokenize(uri string, src []byte) ([]token, error) {
	var (
		s        scanner.Scanner
		firstErr error
	)

	s.Init(bytes.NewReader(src))
	s.Filename = uri
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanStrings | scanner.ScanComments | scanner.SkipComments
	s.Error = func(s *scanner.Scanner, msg string) {
		if firstErr == nil {
			firstErr = &SyntaxError{URI: uri, Pos: model.Pos{Line: s.Pos().Line, Column: s.Pos().Column}, Msg: msg}
		}
	}

	var toks []token

	for r := s.Scan(); ; r = s.Scan() {
		if firstErr != nil {
			return nil, firstErr
		}

		t := token{
			pos:    model.Pos{Line: s.Position.Line, Column: s.Position.Column},
			offset: s.Position.Offset,
			end:    s.Pos().Offset,
		}

		switch r {
		case scanner.EOF:
			t.kind = tokEOF
			t.offset = len(src)
			t.end = len(src)
		case scanner.Ident:
			t.kind, t.text = tokIdent, s.TokenText()
		case scanner.Int:
			t.kind, t.text = tokInt, s.TokenText()
		case scanner.String:
			text, err := strconv.Unquote(s.TokenText())
			if err != nil {
				return nil, &SyntaxError{URI: uri, Pos: t.pos, Msg: "malformed string literal"}
			}

			t.kind, t.text = tokString, text
		default:
			t.kind, t.text = tokPunct, string(r)
		}

		toks = append(toks, t)

		if t.kind == tokEOF {
			return toks, nil
		}
	}
}
