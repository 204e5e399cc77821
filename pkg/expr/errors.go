package expr

import "fmt"

// ParseError is returned by the Lexer and Parser for any malformed
// expression. It is never thrown as fatal — callers attach
// it to the enclosing script's ParserResult.
type ParseError struct {
	Pos     Position
	Token   string
	Message string
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%d:%d: %s (at %q)", e.Pos.Line, e.Pos.Column, e.Message, e.Token)
	}
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}
