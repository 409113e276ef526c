// Package intrinsic implements the built-in function registry (C4):
// sqrt/1, sin/1, cos/1, pi/0 and the higher-order sum/3. Each descriptor
// carries two semantically matching implementations, one for the
// tree-walking interpreter and one for the JIT code generator, behind the
// minimal interfaces below. Neither backend package needs to be imported
// here; InterpContext and JITContext are satisfied by interpreter.Interpreter
// and jitgen.FunctionGen respectively, which keeps the registry a leaf
// dependency of both (§9 "Intrinsic polymorphism").
package intrinsic

import (
	"github.com/Jaycadox/MathJIT/ast"
	"tinygo.org/x/go-llvm"
)

// InterpContext is the surface an intrinsic needs to evaluate itself
// under the tree-walking interpreter: resolving and calling whichever
// user function sum targets.
type InterpContext interface {
	// CallLastSingleArgFunction invokes the most-recently-defined
	// single-argument user function (excluding _repl) with arg, returning
	// its result.
	CallLastSingleArgFunction(arg float64) (float64, error)
}

// JITContext is the surface an intrinsic needs to emit LLVM IR for
// itself. It is implemented by the JIT code generator's per-function
// state (jitgen.FunctionGen).
type JITContext interface {
	Context() llvm.Context
	Module() llvm.Module
	Builder() llvm.Builder
	CurrentFunction() llvm.Value
	DoubleType() llvm.Type
	ConstFloat(v float64) llvm.Value

	// EmitOperand recursively lowers an arbitrary MathOp (an intrinsic's
	// argument expression) to an LLVM value.
	EmitOperand(op ast.MathOp) (llvm.Value, error)

	// DeclareLLVMIntrinsic lazily declares (or returns the existing
	// declaration for) a single-argument LLVM intrinsic function such as
	// "llvm.sqrt.f64" on the current module.
	DeclareLLVMIntrinsic(llvmName string) llvm.Value

	// CallLastSingleArgFunction emits a call to the most-recently-defined
	// single-argument user function (excluding _repl), declaring it on the
	// module first if it isn't already present.
	CallLastSingleArgFunction(arg llvm.Value) (llvm.Value, error)
}
