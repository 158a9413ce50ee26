package parser

// Parse tokenizes one line of input and parses it into a single statement.
// Identifier references in the result are resolved at evaluation time.
func Parse(src string) (Stmt, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return newParser(tokens, nil).parseStatement()
}

// ParseWithValues parses like Parse but eagerly substitutes single-letter
// variables against the supplied snapshot map: a matching letter becomes a
// numeric literal in the tree, a missing one is a parse error. Multi-letter
// identifiers are unaffected.
func ParseWithValues(src string, values map[rune]float64) (Stmt, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return newParser(tokens, values).parseStatement()
}
