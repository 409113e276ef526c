package parser

import (
	"testing"

	"github.com/Jaycadox/MathJIT/ast"
	"github.com/Jaycadox/MathJIT/intrinsic"
	"github.com/Jaycadox/MathJIT/lexer"
)

func mustParse(t *testing.T, source string) []ast.ParseOutput {
	t.Helper()
	tokens, err := lexer.New(source).Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	outputs, err := Make(tokens, intrinsic.NewRegistry()).Parse()
	if err != nil {
		t.Fatalf("parse error for %q: %v", source, err)
	}
	return outputs
}

func singleBody(t *testing.T, source string) ast.MathOp {
	t.Helper()
	outputs := mustParse(t, source)
	if len(outputs) != 1 {
		t.Fatalf("expected a single parse output for %q, got %d", source, len(outputs))
	}
	body, ok := outputs[0].(ast.Body)
	if !ok {
		t.Fatalf("expected a Body output for %q, got %T", source, outputs[0])
	}
	return body.Op
}

func TestAdditivePrecedence(t *testing.T) {
	// a+b*c parses as a+(b*c).
	op, ok := singleBody(t, "a+b*c").(ast.Add)
	if !ok {
		t.Fatalf("expected top-level Add, got %T", singleBody(t, "a+b*c"))
	}
	if _, ok := op.Rhs.(ast.Mul); !ok {
		t.Fatalf("expected rhs of Add to be Mul, got %T", op.Rhs)
	}
}

func TestExponentRightAssociative(t *testing.T) {
	op, ok := singleBody(t, "a^b^c").(ast.Exp)
	if !ok {
		t.Fatalf("expected top-level Exp")
	}
	if _, ok := op.Rhs.(ast.Exp); !ok {
		t.Fatalf("expected a^(b^c), got rhs %T", op.Rhs)
	}
}

func TestUnaryMinusWrapsExponent(t *testing.T) {
	// -a^b parses as -(a^b).
	op, ok := singleBody(t, "-a^b").(ast.Neg)
	if !ok {
		t.Fatalf("expected top-level Neg, got %T", singleBody(t, "-a^b"))
	}
	if _, ok := op.X.(ast.Exp); !ok {
		t.Fatalf("expected Neg to wrap Exp, got %T", op.X)
	}
}

func TestImplicitMultiplicationOfBracket(t *testing.T) {
	op, ok := singleBody(t, "2(3+4)").(ast.Mul)
	if !ok {
		t.Fatalf("expected Mul, got %T", singleBody(t, "2(3+4)"))
	}
	if _, ok := op.Lhs.(ast.Num); !ok {
		t.Fatalf("expected lhs Num")
	}
	if _, ok := op.Rhs.(ast.Add); !ok {
		t.Fatalf("expected rhs Add")
	}
}

func TestImplicitMultiplicationBeforeIdentifier(t *testing.T) {
	// 2x parses as 2*x (§8 property 3).
	op, ok := singleBody(t, "2x").(ast.Mul)
	if !ok {
		t.Fatalf("expected Mul, got %T", singleBody(t, "2x"))
	}
	if _, ok := op.Lhs.(ast.Num); !ok {
		t.Fatalf("expected lhs Num, got %T", op.Lhs)
	}
	if _, ok := op.Rhs.(ast.Arg); !ok {
		t.Fatalf("expected rhs Arg, got %T", op.Rhs)
	}
}

func TestChainProducesMultipleOutputs(t *testing.T) {
	outputs := mustParse(t, "f(x)=x+1 & f(3)")
	if len(outputs) != 2 {
		t.Fatalf("expected 2 chained outputs, got %d", len(outputs))
	}
	if _, ok := outputs[0].(ast.Functions); !ok {
		t.Fatalf("expected first output to be Functions, got %T", outputs[0])
	}
	if _, ok := outputs[1].(ast.Body); !ok {
		t.Fatalf("expected second output to be Body, got %T", outputs[1])
	}
}

func TestFunctionDefinitionVsCallDisambiguation(t *testing.T) {
	outputs := mustParse(t, "f(x)=x*x")
	fns, ok := outputs[0].(ast.Functions)
	if !ok || len(fns.Defs) != 1 {
		t.Fatalf("expected a single function definition, got %#v", outputs[0])
	}
	fn := fns.Defs[0]
	if fn.Name != "f" || len(fn.Args) != 1 || fn.Args[0] != 'x' {
		t.Fatalf("unexpected function shape: %#v", fn)
	}
}

func TestIntrinsicArityMismatchIsParseError(t *testing.T) {
	tokens, err := lexer.New("sqrt()").Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	_, err = Make(tokens, intrinsic.NewRegistry()).Parse()
	if err == nil {
		t.Fatalf("expected an arity-mismatch error for sqrt()")
	}

	tokens, err = lexer.New("sqrt(1,2)").Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	_, err = Make(tokens, intrinsic.NewRegistry()).Parse()
	if err == nil {
		t.Fatalf("expected an arity-mismatch error for sqrt(1,2)")
	}
}

func TestUnbalancedBracketsIsParseError(t *testing.T) {
	tokens, err := lexer.New("(1+2").Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	if _, err := Make(tokens, intrinsic.NewRegistry()).Parse(); err == nil {
		t.Fatalf("expected an unbalanced-brackets error")
	}
}

func TestUnexpectedTrailingTokenIsParseError(t *testing.T) {
	tokens, err := lexer.New("1+2)").Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	if _, err := Make(tokens, intrinsic.NewRegistry()).Parse(); err == nil {
		t.Fatalf("expected a trailing-token error")
	}
}

func TestIdentifierNotFollowedByCallIsSingleCharArg(t *testing.T) {
	// "ab" with no operator between them: the parser consumes only "a" as
	// an Arg and leaves "b" as an unconsumed trailing token, which top
	// level rejects (§4.2; §9 open question (c)).
	tokens, err := lexer.New("ab").Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	if _, err := Make(tokens, intrinsic.NewRegistry()).Parse(); err == nil {
		t.Fatalf("expected a trailing-token error for bare 'ab'")
	}
}
