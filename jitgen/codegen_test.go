package jitgen

import (
	"testing"

	"github.com/Jaycadox/MathJIT/ast"
	"github.com/Jaycadox/MathJIT/environment"
	"github.com/Jaycadox/MathJIT/intrinsic"
	"tinygo.org/x/go-llvm"
)

// TestCompileSimpleFunction builds a single LLVM function for f(x) = x*x + 1
// and checks it verifies cleanly. Like the rest of this package, running
// this test requires the system LLVM shared libraries tinygo.org/x/go-llvm
// links against; the reference pack carries no LLVM-backed tests for the
// same reason (hhramberg-go-vslc's transform.go has none either).
func TestCompileSimpleFunction(t *testing.T) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()
	module := ctx.NewModule("test")
	defer module.Dispose()

	env := environment.New()
	registry := intrinsic.NewRegistry()
	cg := New(ctx, module, env, registry)
	defer cg.Dispose()

	fn := ast.Function{
		Name: "f",
		Args: []rune{'x'},
		Body: ast.Add{
			Lhs: ast.Mul{Lhs: ast.Arg{Ch: 'x'}, Rhs: ast.Arg{Ch: 'x'}},
			Rhs: ast.Num{Value: 1},
		},
	}

	llvmFn, err := cg.Compile(fn)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if llvmFn.IsNil() {
		t.Fatalf("Compile() returned a nil function value")
	}
	if err := llvm.VerifyModule(module, llvm.ReturnStatusAction); err != nil {
		t.Fatalf("module failed verification: %v", err)
	}
}

// TestCompileUnresolvedCallFails checks that calling a name with neither a
// prior user definition nor an intrinsic registration surfaces a jitgen.Error
// rather than emitting invalid IR (§7 "JIT").
func TestCompileUnresolvedCallFails(t *testing.T) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()
	module := ctx.NewModule("test")
	defer module.Dispose()

	env := environment.New()
	registry := intrinsic.NewRegistry()
	cg := New(ctx, module, env, registry)
	defer cg.Dispose()

	fn := ast.Function{
		Name: "g",
		Args: nil,
		Body: ast.Call{Name: "nope", Args: nil},
	}

	_, err := cg.Compile(fn)
	if err == nil {
		t.Fatalf("expected an error compiling a call to an unresolved function")
	}
	if _, ok := err.(Error); !ok {
		t.Fatalf("expected a jitgen.Error, got %T: %v", err, err)
	}
}
