// Package interpreter implements C5, the tree-walking AST evaluator: a
// recursive MathOp visitor with an explicit call-frame stack for
// user-defined functions, using panic/recover for fatal evaluation
// errors and a visitor per node kind.
package interpreter

import (
	"fmt"
	"math"

	"github.com/Jaycadox/MathJIT/ast"
	"github.com/Jaycadox/MathJIT/environment"
	"github.com/Jaycadox/MathJIT/evalcore"
	"github.com/Jaycadox/MathJIT/intrinsic"
	"github.com/Jaycadox/MathJIT/timings"
)

// frame is one call-frame: the function being executed and the
// already-evaluated argument values bound to its formal parameters.
type frame struct {
	fn     ast.Function
	values []float64
}

// Interpreter is the tree-walking evaluator of C5.
type Interpreter struct {
	env      *environment.Environment
	registry *intrinsic.Registry
	frames   []frame
}

// New creates an interpreter with a fresh environment and the standard
// intrinsic registry.
func New() *Interpreter {
	return &Interpreter{
		env:      environment.New(),
		registry: intrinsic.NewRegistry(),
	}
}

// Eval implements the shared eval(ParseOutput) -> (Response, Timings)
// contract (§2 data flow). A Functions output installs its definitions
// and returns Ok; a Body output is wrapped as _repl, invoked, and its
// result returned as Value.
func (in *Interpreter) Eval(out ast.ParseOutput) (resp evalcore.Response, t *timings.Timings, err error) {
	t = timings.Start()
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", r)
			}
		}
	}()

	switch v := out.(type) {
	case ast.Functions:
		for _, fn := range v.Defs {
			in.env.Define(fn)
		}
		t.Lap("define")
		resp = evalcore.OkResponse()
	case ast.Body:
		fn := ast.WrapAsRepl(v.Op)
		in.env.Define(fn)
		t.Lap("wrap")
		value := in.callFunction(fn, nil)
		t.Lap("eval")
		resp = evalcore.ValueResponse(value)
	default:
		panic(CreateRuntimeError(fmt.Sprintf("unsupported parse output %T", out)))
	}
	return
}

// callFunction pushes a new call frame, evaluates the function body under
// it, and pops the frame on return, including on a failure that
// propagates via panic (§4.4).
func (in *Interpreter) callFunction(fn ast.Function, args []float64) float64 {
	in.frames = append(in.frames, frame{fn: fn, values: args})
	defer func() {
		in.frames = in.frames[:len(in.frames)-1]
	}()
	return in.evaluate(fn.Body)
}

func (in *Interpreter) evaluate(op ast.MathOp) float64 {
	return op.Accept(in).(float64)
}

func (in *Interpreter) currentFrame() frame {
	return in.frames[len(in.frames)-1]
}

func (in *Interpreter) VisitAdd(op ast.Add) any { return in.evaluate(op.Lhs) + in.evaluate(op.Rhs) }
func (in *Interpreter) VisitSub(op ast.Sub) any { return in.evaluate(op.Lhs) - in.evaluate(op.Rhs) }
func (in *Interpreter) VisitMul(op ast.Mul) any { return in.evaluate(op.Lhs) * in.evaluate(op.Rhs) }

// VisitDiv follows IEEE-754 default division-by-zero semantics: the
// result is ±Inf or NaN rather than a raised error (§4.4).
func (in *Interpreter) VisitDiv(op ast.Div) any { return in.evaluate(op.Lhs) / in.evaluate(op.Rhs) }

func (in *Interpreter) VisitExp(op ast.Exp) any {
	return math.Pow(in.evaluate(op.Lhs), in.evaluate(op.Rhs))
}

func (in *Interpreter) VisitNeg(op ast.Neg) any { return -in.evaluate(op.X) }

func (in *Interpreter) VisitNum(op ast.Num) any { return op.Value }

// VisitArg resolves Arg(c) against the active call frame's formal
// parameter list (§3 invariant): a reference to a character absent from
// the enclosing function's args is a fatal evaluation error.
func (in *Interpreter) VisitArg(op ast.Arg) any {
	f := in.currentFrame()
	idx := f.fn.ArgIndex(op.Ch)
	if idx < 0 {
		panic(CreateRuntimeError(fmt.Sprintf("'%c' is not a parameter of '%s'", op.Ch, f.fn.Name)))
	}
	return f.values[idx]
}

// VisitCall resolves a Call node against user functions first, then the
// intrinsic registry (§4.4); an unresolved name is a structured error,
// never a process abort.
func (in *Interpreter) VisitCall(op ast.Call) any {
	if fn, ok := in.env.Lookup(op.Name); ok {
		if len(op.Args) != len(fn.Args) {
			panic(CreateRuntimeError(fmt.Sprintf(
				"'%s' expects %d argument(s), got %d", op.Name, len(fn.Args), len(op.Args))))
		}
		values := make([]float64, len(op.Args))
		for i, a := range op.Args {
			values[i] = in.evaluate(a)
		}
		return in.callFunction(fn, values)
	}

	if desc, ok := in.registry.Lookup(op.Name); ok {
		if len(op.Args) != desc.Proto.ArgCount {
			panic(CreateRuntimeError(fmt.Sprintf(
				"'%s' expects %d argument(s), got %d", op.Name, desc.Proto.ArgCount, len(op.Args))))
		}
		values := make([]float64, len(op.Args))
		for i, a := range op.Args {
			values[i] = in.evaluate(a)
		}
		result, err := desc.EvalInterp(in, values)
		if err != nil {
			panic(CreateRuntimeError(err.Error()))
		}
		return result
	}

	panic(CreateRuntimeError(fmt.Sprintf("unresolved function '%s'", op.Name)))
}

// CallLastSingleArgFunction implements intrinsic.InterpContext for sum
// (§4.3): it resolves and invokes the most recently defined single-argument
// user function, excluding _repl.
func (in *Interpreter) CallLastSingleArgFunction(arg float64) (float64, error) {
	fn, ok := in.env.LastSingleArgDefined()
	if !ok {
		return 0, fmt.Errorf("sum requires a previously defined single-argument function")
	}
	return in.callFunction(fn, []float64{arg}), nil
}
