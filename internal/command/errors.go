package command

import (
	"errors"
	"fmt"
)

// ErrSyntax is wrapped by every parse failure.
var ErrSyntax = errors.New("could not parse command")

// SyntaxError reports where parsing of a line stopped.
type SyntaxError struct {
	Line   string
	Column int // zero-based byte offset of the first byte not consumed
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Column >= len(e.Line) {
		return fmt.Sprintf("%s: unexpected end of input", ErrSyntax)
	}
	return fmt.Sprintf("%s: unexpected %q at column %d", ErrSyntax, e.Line[e.Column:], e.Column+1)
}

// Unwrap lets errors.Is match ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
