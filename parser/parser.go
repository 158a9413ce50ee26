package parser

import "unicode/utf8"

// parser consumes a tokenized line and produces exactly one statement. The
// optional values map enables the legacy parse-time substitution of
// single-letter variables; the normal path leaves all identifiers to be
// resolved at evaluation time.
type parser struct {
	tokens  []Token
	current int
	values  map[rune]float64
}

func newParser(tokens []Token, values map[rune]float64) *parser {
	return &parser{
		tokens: tokens,
		values: values,
	}
}

func (p *parser) atEnd() bool {
	return p.peek().Type == tokenEOE
}

func (p *parser) peek() Token {
	return p.tokens[p.current]
}

func (p *parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *parser) advance() Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) check(tt TokenType) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Type == tt
}

func (p *parser) match(tt TokenType) bool {
	if !p.check(tt) {
		return false
	}
	p.advance()
	return true
}

func (p *parser) consume(tt TokenType, msg string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return Token{}, newParseError(p.peek(), msg)
}

func (p *parser) parseStatement() (Stmt, error) {
	switch p.peek().Type {
	case tokenLet:
		return p.parseAssign()
	case tokenFn:
		return p.parseFnDecl()
	default:
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expectEnd(); err != nil {
			return nil, err
		}
		return &ExprStmt{Expr: expr}, nil
	}
}

func (p *parser) parseAssign() (Stmt, error) {
	p.advance() // let
	nameTok, err := p.consume(tokenIdentifier, "Expected variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenAssign, "Expected '=' after variable name"); err != nil {
		return nil, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return &AssignStmt{
		Name: nameTok.Lexeme,
		Expr: expr,
	}, nil
}

func (p *parser) parseFnDecl() (Stmt, error) {
	p.advance() // fn
	nameTok, err := p.consume(tokenIdentifier, "Expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenLParen, "Missing opening parentheses"); err != nil {
		return nil, err
	}
	params, err := p.parseParamNames()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenRParen, "Missing closing parentheses"); err != nil {
		return nil, err
	}
	body, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return &FnStmt{
		Name:   nameTok.Lexeme,
		Params: params,
		Body:   body,
	}, nil
}

func (p *parser) parseParamNames() ([]string, error) {
	var params []string
	if p.check(tokenRParen) {
		return params, nil
	}
	for {
		tok, err := p.consume(tokenIdentifier, "Expected parameter name")
		if err != nil {
			return nil, err
		}
		for _, seen := range params {
			if seen == tok.Lexeme {
				return nil, newParseError(tok, "Duplicate parameter name")
			}
		}
		params = append(params, tok.Lexeme)
		if !p.match(tokenComma) {
			break
		}
	}
	return params, nil
}

func (p *parser) expectEnd() error {
	if p.peek().Type != tokenEOE {
		return newParseError(p.peek(), "Expected end of expression")
	}
	return nil
}

func (p *parser) expression() (Expr, error) {
	return p.term()
}

func (p *parser) term() (Expr, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.check(tokenPlus) || p.check(tokenMinus) {
		op := p.advance()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{
			Left:  expr,
			Op:    binOpForToken(op.Type),
			Right: right,
		}
	}
	return expr, nil
}

func (p *parser) factor() (Expr, error) {
	expr, err := p.exponent()
	if err != nil {
		return nil, err
	}
	for p.check(tokenStar) || p.check(tokenSlash) || p.check(tokenPercent) {
		op := p.advance()
		right, err := p.exponent()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{
			Left:  expr,
			Op:    binOpForToken(op.Type),
			Right: right,
		}
	}
	return expr, nil
}

func binOpForToken(tt TokenType) BinOp {
	switch tt {
	case tokenPlus:
		return OpAdd
	case tokenMinus:
		return OpSub
	case tokenStar:
		return OpMul
	case tokenSlash:
		return OpDiv
	default:
		return OpMod
	}
}

// exponent folds a ^ chain from the left, so 2^3^2 parses as (2^3)^2.
func (p *parser) exponent() (Expr, error) {
	expr, err := p.negative()
	if err != nil {
		return nil, err
	}
	for p.check(tokenCaret) {
		p.advance()
		right, err := p.negative()
		if err != nil {
			return nil, err
		}
		expr = &ExponentExpr{
			Base:  expr,
			Power: right,
		}
	}
	return expr, nil
}

func (p *parser) negative() (Expr, error) {
	if p.check(tokenMinus) {
		p.advance()
		right, err := p.negative()
		if err != nil {
			return nil, err
		}
		return &NegativeExpr{Expr: right}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case tokenNumber:
		p.advance()
		return &NumberExpr{Value: tok.Num}, nil
	case tokenLParen:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(tokenRParen, "Missing closing parentheses"); err != nil {
			return nil, err
		}
		return &GroupingExpr{Expr: expr}, nil
	case tokenPipe:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(tokenPipe, "Missing closing pipe"); err != nil {
			return nil, err
		}
		return &AbsExpr{Expr: expr}, nil
	case tokenFunc:
		return p.builtinCall()
	case tokenIdentifier:
		p.advance()
		if p.check(tokenLParen) {
			return p.finishCall(tok)
		}
		return p.variable(tok)
	default:
		return nil, newParseError(tok, "Expected expression")
	}
}

func (p *parser) builtinCall() (Expr, error) {
	tok := p.advance()
	fn, base, err := p.builtinKind(tok)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenLParen, "Missing opening parentheses"); err != nil {
		return nil, err
	}
	arg, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(tokenRParen, "Missing closing parentheses"); err != nil {
		return nil, err
	}
	return &FuncExpr{
		Fn:   fn,
		Base: base,
		Arg:  arg,
	}, nil
}

// builtinKind maps a built-in name token to its kind. The log built-in reads
// its base as a bare numeral token right after the name, not as an expression.
func (p *parser) builtinKind(tok Token) (FuncKind, float64, error) {
	switch tok.Lexeme {
	case funcSin:
		return FuncKindSin, 0, nil
	case funcCos:
		return FuncKindCos, 0, nil
	case funcTan:
		return FuncKindTan, 0, nil
	case funcLn:
		return FuncKindLn, 0, nil
	case funcSqrt:
		return FuncKindSqrt, 0, nil
	case funcSq:
		return FuncKindSq, 0, nil
	case funcCube:
		return FuncKindCube, 0, nil
	case funcCbrt:
		return FuncKindCbrt, 0, nil
	case funcLog:
		if !p.check(tokenNumber) {
			return 0, 0, newParseError(tok, "Missing base for log function")
		}
		base := p.advance()
		return FuncKindLog, base.Num, nil
	default:
		return 0, 0, newParseError(tok, "Unknown function")
	}
}

func (p *parser) finishCall(nameTok Token) (Expr, error) {
	p.advance() // (
	var args []Expr
	if !p.check(tokenRParen) {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(tokenComma) {
				break
			}
		}
	}
	if _, err := p.consume(tokenRParen, "Missing closing parentheses"); err != nil {
		return nil, err
	}
	return &CallExpr{
		Name: nameTok.Lexeme,
		Args: args,
	}, nil
}

// variable resolves an identifier reference. With a substitution map in play,
// a single-letter name is folded to its numeric value at parse time and an
// absent letter is a parse error; otherwise the reference is left for the
// interpreter to resolve against the live environment.
func (p *parser) variable(tok Token) (Expr, error) {
	if p.values != nil && utf8.RuneCountInString(tok.Lexeme) == 1 {
		r, _ := utf8.DecodeRuneInString(tok.Lexeme)
		if num, ok := p.values[r]; ok {
			return &NumberExpr{Value: num}, nil
		}
		return nil, newParseError(tok, "Unknown variable")
	}
	return &VariableExpr{Name: tok.Lexeme}, nil
}
