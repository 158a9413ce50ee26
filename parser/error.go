package parser

import "fmt"

// TokenizeError reports a lexical failure: a malformed numeral or a character
// the grammar has no use for. Tokenizing aborts at the first such failure.
type TokenizeError struct {
	Text string // the offending lexeme or character
	Pos  Position
	Msg  string
}

func (e *TokenizeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s %q at column %d", e.Msg, e.Text, e.Pos.Column)
}

// ParseError reports a violated grammar expectation. It carries the token the
// parser was looking at plus a fixed diagnostic message. Parsing aborts at the
// first error; no partial AST is ever returned.
type ParseError struct {
	Token Token
	Msg   string
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return e.Msg
}

func newParseError(tok Token, msg string) error {
	return &ParseError{
		Token: tok,
		Msg:   msg,
	}
}
