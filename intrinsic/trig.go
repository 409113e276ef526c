package intrinsic

import (
	"math"

	"github.com/Jaycadox/MathJIT/ast"
	"tinygo.org/x/go-llvm"
)

func sinDescriptor() *Descriptor {
	return &Descriptor{
		Name:  "sin",
		Proto: Proto{ArgCount: 1},
		EvalInterp: func(ctx InterpContext, args []float64) (float64, error) {
			return math.Sin(args[0]), nil
		},
		EmitJIT: unaryLLVMIntrinsic("llvm.sin.f64", "sintmp"),
	}
}

func cosDescriptor() *Descriptor {
	return &Descriptor{
		Name:  "cos",
		Proto: Proto{ArgCount: 1},
		EvalInterp: func(ctx InterpContext, args []float64) (float64, error) {
			return math.Cos(args[0]), nil
		},
		EmitJIT: unaryLLVMIntrinsic("llvm.cos.f64", "costmp"),
	}
}

// unaryLLVMIntrinsic builds an EmitJIT for a single-argument intrinsic
// backed directly by an LLVM math intrinsic declaration.
func unaryLLVMIntrinsic(llvmName, valueName string) func(JITContext, []ast.MathOp) (llvm.Value, error) {
	return func(ctx JITContext, args []ast.MathOp) (llvm.Value, error) {
		x, err := ctx.EmitOperand(args[0])
		if err != nil {
			return llvm.Value{}, err
		}
		fn := ctx.DeclareLLVMIntrinsic(llvmName)
		return ctx.Builder().CreateCall(fn, []llvm.Value{x}, valueName), nil
	}
}
