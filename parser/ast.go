package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is one node of a parsed expression tree. Each node exclusively owns
// its children; a tree is built once per parse and never mutated afterwards.
type Expr interface {
	// Format renders the node as text the tokenizer accepts, so a formatted
	// expression can be fed back through Parse and yield an equal tree.
	Format() string
	exprNode()
}

// Stmt is the single top-level unit produced by one parse: a bare expression,
// a variable assignment, or a function declaration.
type Stmt interface {
	Format() string
	stmtNode()
}

// FuncKind identifies one of the built-in unary functions.
type FuncKind int

const (
	FuncKindSin FuncKind = iota
	FuncKindCos
	FuncKindTan
	FuncKindLog
	FuncKindLn
	FuncKindSqrt
	FuncKindSq
	FuncKindCube
	FuncKindCbrt
)

func (fk FuncKind) String() string {
	switch fk {
	case FuncKindSin:
		return funcSin
	case FuncKindCos:
		return funcCos
	case FuncKindTan:
		return funcTan
	case FuncKindLog:
		return funcLog
	case FuncKindLn:
		return funcLn
	case FuncKindSqrt:
		return funcSqrt
	case FuncKindSq:
		return funcSq
	case FuncKindCube:
		return funcCube
	case FuncKindCbrt:
		return funcCbrt
	default:
		return "unknown"
	}
}

// BinOp identifies an infix arithmetic operator.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	default:
		return "unknown"
	}
}

// NumberExpr is a numeric literal.
type NumberExpr struct {
	Value float64
}

func (e *NumberExpr) Format() string { return formatNum(e.Value) }
func (*NumberExpr) exprNode()        {}

// VariableExpr refers to a named binding, resolved at evaluation time.
type VariableExpr struct {
	Name string
}

func (e *VariableExpr) Format() string { return e.Name }
func (*VariableExpr) exprNode()        {}

// NegativeExpr negates its operand.
type NegativeExpr struct {
	Expr Expr
}

func (e *NegativeExpr) Format() string { return "-" + e.Expr.Format() }
func (*NegativeExpr) exprNode()        {}

// GroupingExpr is a parenthesized sub-expression.
type GroupingExpr struct {
	Expr Expr
}

func (e *GroupingExpr) Format() string { return "(" + e.Expr.Format() + ")" }
func (*GroupingExpr) exprNode()        {}

// AbsExpr is a pipe-delimited absolute value.
type AbsExpr struct {
	Expr Expr
}

func (e *AbsExpr) Format() string { return "|" + e.Expr.Format() + "|" }
func (*AbsExpr) exprNode()        {}

// BinaryExpr applies an infix arithmetic operator.
type BinaryExpr struct {
	Left  Expr
	Op    BinOp
	Right Expr
}

func (e *BinaryExpr) Format() string {
	return e.Left.Format() + e.Op.String() + e.Right.Format()
}
func (*BinaryExpr) exprNode() {}

// ExponentExpr raises Base to Power.
type ExponentExpr struct {
	Base  Expr
	Power Expr
}

func (e *ExponentExpr) Format() string {
	return e.Base.Format() + "^" + e.Power.Format()
}
func (*ExponentExpr) exprNode() {}

// FuncExpr applies one of the built-in functions. Base is meaningful only for
// the log built-in, whose base is a bare numeral read right after the name.
type FuncExpr struct {
	Fn   FuncKind
	Base float64
	Arg  Expr
}

func (e *FuncExpr) Format() string {
	if e.Fn == FuncKindLog {
		return fmt.Sprintf("%s %s(%s)", funcLog, formatNum(e.Base), e.Arg.Format())
	}
	return fmt.Sprintf("%s(%s)", e.Fn, e.Arg.Format())
}
func (*FuncExpr) exprNode() {}

// CallExpr invokes a user-defined function by name.
type CallExpr struct {
	Name string
	Args []Expr
}

func (e *CallExpr) Format() string {
	args := make([]string, len(e.Args))
	for i, arg := range e.Args {
		args[i] = arg.Format()
	}
	return fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, ", "))
}
func (*CallExpr) exprNode() {}

// ExprStmt evaluates a bare expression.
type ExprStmt struct {
	Expr Expr
}

func (s *ExprStmt) Format() string { return s.Expr.Format() }
func (*ExprStmt) stmtNode()        {}

// AssignStmt binds a named variable to the value of an expression.
type AssignStmt struct {
	Name string
	Expr Expr
}

func (s *AssignStmt) Format() string {
	return fmt.Sprintf("let %s = %s", s.Name, s.Expr.Format())
}
func (*AssignStmt) stmtNode() {}

// FnStmt declares a named single-expression function.
type FnStmt struct {
	Name   string
	Params []string
	Body   Expr
}

func (s *FnStmt) Format() string {
	return fmt.Sprintf("fn %s(%s) %s", s.Name, strings.Join(s.Params, ", "), s.Body.Format())
}
func (*FnStmt) stmtNode() {}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
