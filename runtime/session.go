package runtime

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/sergev/fcalc/lang"
	"github.com/sergev/fcalc/parser"
)

// Session wires the tokenizer, parser and interpreter into the evaluation
// entry point the UI consumes. It also keeps the de-duplicated history of
// successfully evaluated expressions for recall.
type Session struct {
	interp   *lang.Interpreter
	history  []parser.Expr
	selector int
}

// NewSession constructs a session with an empty environment and history.
func NewSession() *Session {
	return &Session{
		interp: lang.NewInterpreter(),
	}
}

// EvalLine evaluates one line of raw input. It returns either a formatted
// numeric result or an error, never both. A failed line leaves the
// environment and the history untouched; a successful scalar evaluation
// rebinds ans to the fresh value.
func (s *Session) EvalLine(line string) (string, error) {
	stmt, err := parser.Parse(line)
	if err != nil {
		return "", err
	}
	switch st := stmt.(type) {
	case *parser.FnStmt:
		s.interp.DeclareFunction(st.Name, st.Params, st.Body)
		return "", nil
	case *parser.AssignStmt:
		val, err := s.interp.Eval(st.Expr)
		if err != nil {
			return "", err
		}
		s.interp.Define(st.Name, lang.NumValue(val))
		return s.finishEval(st.Expr, val), nil
	case *parser.ExprStmt:
		val, err := s.interp.Eval(st.Expr)
		if err != nil {
			return "", err
		}
		return s.finishEval(st.Expr, val), nil
	default:
		return "", fmt.Errorf("unsupported statement %T", stmt)
	}
}

func (s *Session) finishEval(expr parser.Expr, val float64) string {
	s.interp.Define("ans", lang.NumValue(val))
	s.remember(expr)
	return lang.NumValue(val).String()
}

// remember appends an expression to the history unless an equal one is
// already there. Equality is structural, compared through the formatted text.
func (s *Session) remember(expr parser.Expr) {
	text := expr.Format()
	for _, seen := range s.history {
		if seen.Format() == text {
			return
		}
	}
	s.history = append(s.history, expr)
}

// HistorySelect moves the history selector up or down and returns the
// formatted expression at the new position for re-editing. The second result
// is false when the history is empty.
func (s *Session) HistorySelect(up bool) (string, bool) {
	if len(s.history) == 0 {
		return "", false
	}
	if up {
		if s.selector > 0 {
			s.selector--
		}
	} else if s.selector > len(s.history)-1 {
		s.selector--
	} else if s.selector < len(s.history)-1 {
		s.selector++
	}
	return s.history[s.selector].Format(), true
}

// RemoveSelected drops the history entry under the selector.
func (s *Session) RemoveSelected() {
	if s.selector >= len(s.history) {
		return
	}
	s.history = append(s.history[:s.selector], s.history[s.selector+1:]...)
	if len(s.history) > 0 && len(s.history) <= s.selector {
		s.selector--
	}
}

// ClearHistory empties the expression history.
func (s *Session) ClearHistory() {
	s.history = nil
	s.selector = 0
}

// HistoryLen reports the number of remembered expressions.
func (s *Session) HistoryLen() int {
	return len(s.history)
}

// ResetVars drops all variable bindings; function definitions survive.
func (s *Session) ResetVars() {
	s.interp.ResetVars()
}

// EnvLines serializes the environment one binding per line, variables first,
// each line re-parsable with the interactive grammar. The same text serves
// on-screen display and the rc file. NaN and infinite bindings have no
// numeric literal form, so they are left out.
func (s *Session) EnvLines() []string {
	var lines []string
	for _, name := range s.interp.VarNames() {
		val, ok := s.interp.Lookup(name)
		if !ok {
			continue
		}
		if math.IsNaN(val.Num()) || math.IsInf(val.Num(), 0) {
			continue
		}
		stmt := parser.AssignStmt{
			Name: name,
			Expr: &parser.NumberExpr{Value: val.Num()},
		}
		lines = append(lines, stmt.Format())
	}
	for _, name := range s.interp.FuncNames() {
		fn, ok := s.interp.Function(name)
		if !ok {
			continue
		}
		stmt := parser.FnStmt{
			Name:   name,
			Params: fn.Params,
			Body:   fn.Body,
		}
		lines = append(lines, stmt.Format())
	}
	return lines
}

// LoadRC replays a persisted environment, applying each line in file order.
// Only let and fn forms are legal; the file is assumed self-consistent, so
// any failure aborts the load and should be treated as fatal by the caller.
func (s *Session) LoadRC(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stmt, err := parser.Parse(line)
		if err != nil {
			return fmt.Errorf("rc line %d: %w", lineno, err)
		}
		switch st := stmt.(type) {
		case *parser.FnStmt:
			s.interp.DeclareFunction(st.Name, st.Params, st.Body)
		case *parser.AssignStmt:
			val, err := s.interp.Eval(st.Expr)
			if err != nil {
				return fmt.Errorf("rc line %d: %w", lineno, err)
			}
			s.interp.Define(st.Name, lang.NumValue(val))
		default:
			return fmt.Errorf("rc line %d: expected let or fn", lineno)
		}
	}
	return scanner.Err()
}

// LoadRCFile loads the rc file at path. A missing file is an empty
// environment, not an error.
func (s *Session) LoadRCFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	if err := s.LoadRC(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// SaveRC writes the serialized environment to w.
func (s *Session) SaveRC(w io.Writer) error {
	for _, line := range s.EnvLines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// SaveRCFile writes the serialized environment to the rc file at path,
// replacing its previous contents.
func (s *Session) SaveRCFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open rc file: %w", err)
	}
	if err := s.SaveRC(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write rc file: %w", err)
	}
	return f.Close()
}
