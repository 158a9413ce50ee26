package lang

import (
	"fmt"
	"math"
	"sort"

	"github.com/sergev/fcalc/parser"
)

// maxCallDepth bounds nested user-function calls. Function bodies are single
// expressions, so the only way to nest this deep is a self-referential or
// mutually recursive definition, which the language cannot terminate.
const maxCallDepth = 64

// EvalError reports an evaluation failure: an unbound name, an undefined
// function, or a call with the wrong number of arguments. Numeric domain
// issues are not errors; they propagate as IEEE infinities and NaNs.
type EvalError struct {
	Msg string
}

func (e *EvalError) Error() string {
	if e == nil {
		return ""
	}
	return e.Msg
}

func evalErrorf(format string, args ...interface{}) error {
	return &EvalError{Msg: fmt.Sprintf(format, args...)}
}

// Function is a user-defined single-expression function.
type Function struct {
	Params []string
	Body   parser.Expr
}

// Interpreter owns the session environment: the named variable bindings and
// the user-defined function table. One instance is exclusively owned by one
// session and mutated only by its calling goroutine.
type Interpreter struct {
	globals *Env
	funcs   map[string]Function
	depth   int
}

// NewInterpreter constructs an interpreter with an empty environment.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		globals: NewEnv(nil),
		funcs:   make(map[string]Function),
	}
}

// Define binds a variable in the global environment.
func (in *Interpreter) Define(name string, val Value) {
	in.globals.Define(name, val)
}

// Lookup reports the current value of a variable, if bound.
func (in *Interpreter) Lookup(name string) (Value, bool) {
	val, err := in.globals.Get(name)
	if err != nil {
		return Value{}, false
	}
	return val, true
}

// DeclareFunction installs or replaces a function definition.
func (in *Interpreter) DeclareFunction(name string, params []string, body parser.Expr) {
	in.funcs[name] = Function{
		Params: params,
		Body:   body,
	}
}

// Function reports a function definition, if declared.
func (in *Interpreter) Function(name string) (Function, bool) {
	fn, ok := in.funcs[name]
	return fn, ok
}

// ResetVars drops every variable binding. Function definitions survive.
func (in *Interpreter) ResetVars() {
	in.globals = NewEnv(nil)
}

// VarNames enumerates the bound variable names in sorted order.
func (in *Interpreter) VarNames() []string {
	names := in.globals.Names()
	sort.Strings(names)
	return names
}

// FuncNames enumerates the declared function names in sorted order.
func (in *Interpreter) FuncNames() []string {
	names := make([]string, 0, len(in.funcs))
	for name := range in.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Eval walks an expression tree against the current environment and returns
// the numeric result. The tree is never mutated; re-evaluation re-walks it.
func (in *Interpreter) Eval(expr parser.Expr) (float64, error) {
	return in.eval(expr, in.globals)
}

func (in *Interpreter) eval(expr parser.Expr, env *Env) (float64, error) {
	switch e := expr.(type) {
	case *parser.NumberExpr:
		return e.Value, nil
	case *parser.VariableExpr:
		val, err := env.Get(e.Name)
		if err != nil {
			return 0, err
		}
		return val.Num(), nil
	case *parser.NegativeExpr:
		val, err := in.eval(e.Expr, env)
		if err != nil {
			return 0, err
		}
		return -val, nil
	case *parser.GroupingExpr:
		return in.eval(e.Expr, env)
	case *parser.AbsExpr:
		val, err := in.eval(e.Expr, env)
		if err != nil {
			return 0, err
		}
		return math.Abs(val), nil
	case *parser.BinaryExpr:
		return in.evalBinary(e, env)
	case *parser.ExponentExpr:
		base, err := in.eval(e.Base, env)
		if err != nil {
			return 0, err
		}
		power, err := in.eval(e.Power, env)
		if err != nil {
			return 0, err
		}
		return math.Pow(base, power), nil
	case *parser.FuncExpr:
		return in.evalFunc(e, env)
	case *parser.CallExpr:
		return in.evalCall(e, env)
	default:
		return 0, evalErrorf("cannot evaluate %T", expr)
	}
}

func (in *Interpreter) evalBinary(e *parser.BinaryExpr, env *Env) (float64, error) {
	left, err := in.eval(e.Left, env)
	if err != nil {
		return 0, err
	}
	right, err := in.eval(e.Right, env)
	if err != nil {
		return 0, err
	}
	switch e.Op {
	case parser.OpAdd:
		return left + right, nil
	case parser.OpSub:
		return left - right, nil
	case parser.OpMul:
		return left * right, nil
	case parser.OpDiv:
		// IEEE division: x/0 is Inf or NaN, propagated, never trapped.
		return left / right, nil
	case parser.OpMod:
		return math.Mod(left, right), nil
	default:
		return 0, evalErrorf("unsupported operator: %s", e.Op)
	}
}

func (in *Interpreter) evalFunc(e *parser.FuncExpr, env *Env) (float64, error) {
	arg, err := in.eval(e.Arg, env)
	if err != nil {
		return 0, err
	}
	switch e.Fn {
	case parser.FuncKindSin:
		return math.Sin(arg), nil
	case parser.FuncKindCos:
		return math.Cos(arg), nil
	case parser.FuncKindTan:
		return math.Tan(arg), nil
	case parser.FuncKindLn:
		return math.Log(arg), nil
	case parser.FuncKindLog:
		return math.Log(arg) / math.Log(e.Base), nil
	case parser.FuncKindSqrt:
		return math.Sqrt(arg), nil
	case parser.FuncKindSq:
		return arg * arg, nil
	case parser.FuncKindCube:
		return arg * arg * arg, nil
	case parser.FuncKindCbrt:
		return math.Cbrt(arg), nil
	default:
		return 0, evalErrorf("unknown built-in function: %s", e.Fn)
	}
}

// evalCall resolves a user-defined function, evaluates the arguments in the
// caller's environment, and runs the body in a fresh scope layered over the
// globals. The caller's bindings are never mutated by the call.
func (in *Interpreter) evalCall(e *parser.CallExpr, env *Env) (float64, error) {
	fn, ok := in.funcs[e.Name]
	if !ok {
		return 0, evalErrorf("undefined function: %s", e.Name)
	}
	if len(e.Args) != len(fn.Params) {
		return 0, evalErrorf("%s expects %d arguments, got %d",
			e.Name, len(fn.Params), len(e.Args))
	}
	if in.depth >= maxCallDepth {
		return 0, evalErrorf("call depth exceeded calling %s", e.Name)
	}
	scope := NewEnv(in.globals)
	for i, param := range fn.Params {
		arg, err := in.eval(e.Args[i], env)
		if err != nil {
			return 0, err
		}
		scope.Define(param, NumValue(arg))
	}
	in.depth++
	defer func() { in.depth-- }()
	return in.eval(fn.Body, scope)
}
