package parser

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Built-in function names recognised by the tokenizer.
const (
	funcSin  = "sin"
	funcCos  = "cos"
	funcTan  = "tan"
	funcLog  = "log"
	funcLn   = "ln"
	funcSqrt = "sqrt"
	funcSq   = "sq"
	funcCube = "cube"
	funcCbrt = "cbrt"
)

type lexer struct {
	src    string
	pos    int
	column int
}

func newLexer(src string) *lexer {
	return &lexer{
		src:    src,
		column: 1,
	}
}

// Tokenize scans one line of input into an ordered token slice terminated by
// exactly one end-of-expression sentinel. Whitespace separates tokens and is
// never emitted.
func Tokenize(src string) ([]Token, error) {
	lx := newLexer(src)
	var tokens []Token
	for {
		tok, err := lx.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == tokenEOE {
			return tokens, nil
		}
	}
}

func (lx *lexer) mark() Position {
	return Position{
		Offset: lx.pos,
		Column: lx.column,
	}
}

func (lx *lexer) readRune() (rune, Position, bool) {
	if lx.pos >= len(lx.src) {
		return 0, lx.mark(), false
	}
	start := lx.mark()
	r, w := utf8.DecodeRuneInString(lx.src[lx.pos:])
	lx.pos += w
	lx.column++
	return r, start, true
}

func (lx *lexer) unread(start Position) {
	lx.pos = start.Offset
	lx.column = start.Column
}

func (lx *lexer) skipWhitespace() {
	for {
		r, start, ok := lx.readRune()
		if !ok {
			return
		}
		if !unicode.IsSpace(r) {
			lx.unread(start)
			return
		}
	}
}

func (lx *lexer) nextToken() (Token, error) {
	lx.skipWhitespace()

	r, start, ok := lx.readRune()
	if !ok {
		return Token{
			Type: tokenEOE,
			Pos:  lx.mark(),
		}, nil
	}

	switch {
	case unicode.IsLetter(r):
		lexeme := lx.scanIdentifier(r)
		return makeIdentifierToken(lexeme, start), nil
	case unicode.IsDigit(r) || r == '.':
		return lx.scanNumber(r, start)
	}

	var tt TokenType
	switch r {
	case '+':
		tt = tokenPlus
	case '-':
		tt = tokenMinus
	case '*':
		tt = tokenStar
	case '/':
		tt = tokenSlash
	case '%':
		tt = tokenPercent
	case '^':
		tt = tokenCaret
	case '=':
		tt = tokenAssign
	case ',':
		tt = tokenComma
	case '(':
		tt = tokenLParen
	case ')':
		tt = tokenRParen
	case '|':
		tt = tokenPipe
	default:
		return Token{}, &TokenizeError{
			Text: string(r),
			Pos:  start,
			Msg:  "Unrecognized character",
		}
	}
	return Token{
		Type: tt,
		Pos:  start,
	}, nil
}

func (lx *lexer) scanIdentifier(initial rune) string {
	var builder strings.Builder
	builder.WriteRune(initial)
	for {
		r, start, ok := lx.readRune()
		if !ok {
			break
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			lx.unread(start)
			break
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

// scanNumber consumes a maximal run of digits and decimal points. The run is
// validated as a whole, so a shape like "1.2.3" is a tokenizer error rather
// than two adjacent literals.
func (lx *lexer) scanNumber(initial rune, start Position) (Token, error) {
	var builder strings.Builder
	builder.WriteRune(initial)
	for {
		r, st, ok := lx.readRune()
		if !ok {
			break
		}
		if !unicode.IsDigit(r) && r != '.' {
			lx.unread(st)
			break
		}
		builder.WriteRune(r)
	}
	lexeme := builder.String()
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return Token{}, &TokenizeError{
			Text: lexeme,
			Pos:  start,
			Msg:  "Malformed number",
		}
	}
	return Token{
		Type: tokenNumber,
		Num:  value,
		Pos:  start,
	}, nil
}

func makeIdentifierToken(lexeme string, start Position) Token {
	if keywordType, ok := keywordToken(lexeme); ok {
		return Token{
			Type: keywordType,
			Pos:  start,
		}
	}
	if isBuiltinFunc(lexeme) {
		return Token{
			Type:   tokenFunc,
			Lexeme: lexeme,
			Pos:    start,
		}
	}
	return Token{
		Type:   tokenIdentifier,
		Lexeme: lexeme,
		Pos:    start,
	}
}

func keywordToken(lexeme string) (TokenType, bool) {
	switch lexeme {
	case "let":
		return tokenLet, true
	case "fn":
		return tokenFn, true
	default:
		return tokenEOE, false
	}
}

func isBuiltinFunc(lexeme string) bool {
	switch lexeme {
	case funcSin, funcCos, funcTan, funcLog, funcLn,
		funcSqrt, funcSq, funcCube, funcCbrt:
		return true
	}
	return false
}
