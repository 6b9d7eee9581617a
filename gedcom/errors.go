package gedcom

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput  = errors.New("empty input")
	ErrUndecodable = errors.New("undecodable input")
)

// FatalError is returned by Parse when no document can be produced at all.
// Every other problem is reported as a Diagnostic.
type FatalError struct {
	Err    error
	Detail string
}

func (e *FatalError) Error() string {
	if e.Detail == "" {
		return "gedcom: " + e.Err.Error()
	}
	return fmt.Sprintf("gedcom: %s: %s", e.Err, e.Detail)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// SyntaxError describes a physical line that could not be tokenized.
type SyntaxError struct {
	Line int
	Text string
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}
