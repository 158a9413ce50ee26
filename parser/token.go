package parser

import "strconv"

// TokenType enumerates lexical categories recognised by the tokenizer.
type TokenType int

const (
	tokenEOE TokenType = iota // end-of-expression sentinel

	tokenNumber
	tokenIdentifier
	tokenFunc // built-in function name

	// Keywords
	tokenLet
	tokenFn

	// Operators and punctuation
	tokenAssign  // =
	tokenPlus    // +
	tokenMinus   // -
	tokenStar    // *
	tokenSlash   // /
	tokenPercent // %
	tokenCaret   // ^

	tokenComma  // ,
	tokenLParen // (
	tokenRParen // )
	tokenPipe   // |
)

func (tt TokenType) String() string {
	switch tt {
	case tokenEOE:
		return "end of expression"
	case tokenNumber:
		return "number"
	case tokenIdentifier:
		return "identifier"
	case tokenFunc:
		return "function"
	case tokenLet:
		return "let"
	case tokenFn:
		return "fn"
	case tokenAssign:
		return "="
	case tokenPlus:
		return "+"
	case tokenMinus:
		return "-"
	case tokenStar:
		return "*"
	case tokenSlash:
		return "/"
	case tokenPercent:
		return "%"
	case tokenCaret:
		return "^"
	case tokenComma:
		return ","
	case tokenLParen:
		return "("
	case tokenRParen:
		return ")"
	case tokenPipe:
		return "|"
	default:
		return "unknown"
	}
}

// Position tracks a source location within one line of input.
type Position struct {
	Offset int // zero-based byte offset
	Column int // one-based column (rune count)
}

// Token is a single lexical unit produced by the tokenizer.
type Token struct {
	Type   TokenType
	Lexeme string  // raw lexeme for identifiers and built-in names
	Num    float64 // decoded value for number literals
	Pos    Position
}

func (t Token) String() string {
	switch t.Type {
	case tokenNumber:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	case tokenIdentifier, tokenFunc:
		return t.Lexeme
	default:
		return t.Type.String()
	}
}
