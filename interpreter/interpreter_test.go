package interpreter

import (
	"math"
	"testing"

	"github.com/Jaycadox/MathJIT/ast"
)

func evalBody(t *testing.T, in *Interpreter, op ast.MathOp) float64 {
	t.Helper()
	resp, _, err := in.Eval(ast.Body{Op: op})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.IsOk() {
		t.Fatalf("expected a value response")
	}
	return resp.Value()
}

func TestArithmetic(t *testing.T) {
	in := New()
	got := evalBody(t, in, ast.Add{
		Lhs: ast.Num{Value: 1},
		Rhs: ast.Mul{Lhs: ast.Num{Value: 2}, Rhs: ast.Num{Value: 3}},
	})
	if got != 7 {
		t.Fatalf("1+2*3 = %v, want 7", got)
	}
}

func TestExponentRightAssociative(t *testing.T) {
	in := New()
	// 2^3^2 should be parsed as 2^(3^2) = 512 upstream; here we directly
	// build that shape and check evaluation.
	got := evalBody(t, in, ast.Exp{
		Lhs: ast.Num{Value: 2},
		Rhs: ast.Exp{Lhs: ast.Num{Value: 3}, Rhs: ast.Num{Value: 2}},
	})
	if got != 512 {
		t.Fatalf("2^(3^2) = %v, want 512", got)
	}
}

func TestDivisionByZeroFollowsIEEE(t *testing.T) {
	in := New()
	got := evalBody(t, in, ast.Div{Lhs: ast.Num{Value: 1}, Rhs: ast.Num{Value: 0}})
	if !math.IsInf(got, 1) {
		t.Fatalf("1/0 = %v, want +Inf", got)
	}
}

func TestUserFunctionCallAndRedefinition(t *testing.T) {
	in := New()
	_, _, err := in.Eval(ast.Functions{Defs: []ast.Function{
		{Name: "f", Args: []rune{'x'}, Body: ast.Arg{Ch: 'x'}},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := evalBody(t, in, ast.Call{Name: "f", Args: []ast.MathOp{ast.Num{Value: 1}}})
	if got != 1 {
		t.Fatalf("f(1) = %v, want 1", got)
	}

	_, _, err = in.Eval(ast.Functions{Defs: []ast.Function{
		{Name: "f", Args: []rune{'x'}, Body: ast.Add{Lhs: ast.Arg{Ch: 'x'}, Rhs: ast.Num{Value: 1}}},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got = evalBody(t, in, ast.Call{Name: "f", Args: []ast.MathOp{ast.Num{Value: 1}}})
	if got != 2 {
		t.Fatalf("f(1) after redefinition = %v, want 2", got)
	}
}

func TestUnresolvedCallIsStructuredError(t *testing.T) {
	in := New()
	_, _, err := in.Eval(ast.Body{Op: ast.Call{Name: "q"}})
	if err == nil {
		t.Fatalf("expected an error for unresolved function")
	}
}

func TestSumUsesLastDefinedSingleArgFunction(t *testing.T) {
	in := New()
	_, _, err := in.Eval(ast.Functions{Defs: []ast.Function{
		{Name: "g", Args: []rune{'x'}, Body: ast.Arg{Ch: 'x'}},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := evalBody(t, in, ast.Call{Name: "sum", Args: []ast.MathOp{
		ast.Num{Value: 1}, ast.Num{Value: 10}, ast.Num{Value: 1},
	}})
	if got != 55 {
		t.Fatalf("sum(1,10,1) over g(x)=x = %v, want 55", got)
	}
}

func TestSqrtIntrinsic(t *testing.T) {
	in := New()
	got := evalBody(t, in, ast.Call{Name: "sqrt", Args: []ast.MathOp{ast.Num{Value: 2}}})
	if math.Abs(got-math.Sqrt2) > 1e-12 {
		t.Fatalf("sqrt(2) = %v, want %v", got, math.Sqrt2)
	}
}
