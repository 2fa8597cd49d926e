package cml

import (
	"fmt"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
)

// SyntaxError reports the first position the reader could not accept.
type SyntaxError struct {
	URI string
	Pos model.Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%s: %s", e.URI, e.Pos, e.Msg)
}

// bailout unwinds the recursive descent on the first syntax error.
type bailout struct {
	err *SyntaxError
}
