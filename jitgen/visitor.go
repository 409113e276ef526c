package jitgen

import (
	"fmt"

	"github.com/Jaycadox/MathJIT/ast"
	"tinygo.org/x/go-llvm"
)

// FunctionGen implements ast.MathOpVisitor, lowering each MathOp variant
// to the LLVM IR instruction for the equivalent expression node, using
// floating point arithmetic throughout (§4.5).

func (g *FunctionGen) VisitAdd(op ast.Add) any {
	lhs, rhs := g.evaluate(op.Lhs), g.evaluate(op.Rhs)
	return g.cg.builder.CreateFAdd(lhs, rhs, "addtmp")
}

func (g *FunctionGen) VisitSub(op ast.Sub) any {
	lhs, rhs := g.evaluate(op.Lhs), g.evaluate(op.Rhs)
	return g.cg.builder.CreateFSub(lhs, rhs, "subtmp")
}

func (g *FunctionGen) VisitMul(op ast.Mul) any {
	lhs, rhs := g.evaluate(op.Lhs), g.evaluate(op.Rhs)
	return g.cg.builder.CreateFMul(lhs, rhs, "multmp")
}

func (g *FunctionGen) VisitDiv(op ast.Div) any {
	lhs, rhs := g.evaluate(op.Lhs), g.evaluate(op.Rhs)
	return g.cg.builder.CreateFDiv(lhs, rhs, "divtmp")
}

// VisitExp lowers exponentiation to a call against the LLVM llvm.pow.f64
// intrinsic, declared lazily the same way the sqrt/sin/cos intrinsics
// are (§4.5).
func (g *FunctionGen) VisitExp(op ast.Exp) any {
	lhs, rhs := g.evaluate(op.Lhs), g.evaluate(op.Rhs)
	fn := g.DeclareBinaryLLVMIntrinsic("llvm.pow.f64")
	return g.cg.builder.CreateCall(fn, []llvm.Value{lhs, rhs}, "powtmp")
}

func (g *FunctionGen) VisitNeg(op ast.Neg) any {
	return g.cg.builder.CreateFNeg(g.evaluate(op.X), "negtmp")
}

func (g *FunctionGen) VisitNum(op ast.Num) any {
	return g.ConstFloat(op.Value)
}

// VisitArg resolves a formal parameter reference to the corresponding
// LLVM function parameter. An Arg whose character is not one of the
// enclosing function's formals (for example a bare `x` in a top-level
// expression) panics with an Error, which Compile recovers and returns.
func (g *FunctionGen) VisitArg(op ast.Arg) any {
	index := g.fn.ArgIndex(op.Ch)
	if index < 0 {
		panic(CreateError(fmt.Sprintf("unresolved argument '%c' in function %q", op.Ch, g.fn.Name)))
	}
	return g.llvmFn.Param(index)
}

// VisitCall resolves a call by name against already-compiled user
// functions in the module first, then the intrinsic registry, mirroring
// the reference JIT's get_function order. A name resolving to neither
// is a genuine forward-reference limitation carried over from the
// reference implementation (§9): a user function can only call a name
// defined earlier in the same environment.
func (g *FunctionGen) VisitCall(op ast.Call) any {
	if target := g.cg.module.NamedFunction(op.Name); !target.IsNil() {
		args := make([]llvm.Value, len(op.Args))
		for i, a := range op.Args {
			args[i] = g.evaluate(a)
		}
		return g.cg.builder.CreateCall(target, args, "calltmp")
	}

	if desc, ok := g.cg.registry.Lookup(op.Name); ok {
		value, err := desc.EmitJIT(g, op.Args)
		if err != nil {
			panic(err)
		}
		return value
	}

	panic(CreateError(fmt.Sprintf("could not find function %q", op.Name)))
}

// DeclareBinaryLLVMIntrinsic lazily declares a two-argument f64 LLVM
// intrinsic such as "llvm.pow.f64", reusing any existing declaration.
func (g *FunctionGen) DeclareBinaryLLVMIntrinsic(llvmName string) llvm.Value {
	if existing := g.cg.module.NamedFunction(llvmName); !existing.IsNil() {
		return existing
	}
	f64 := g.cg.ctx.DoubleType()
	fnType := llvm.FunctionType(f64, []llvm.Type{f64, f64}, false)
	return llvm.AddFunction(g.cg.module, llvmName, fnType)
}
