package intrinsic

import (
	"math"

	"github.com/Jaycadox/MathJIT/ast"
	"tinygo.org/x/go-llvm"
)

func sqrtDescriptor() *Descriptor {
	return &Descriptor{
		Name:  "sqrt",
		Proto: Proto{ArgCount: 1},
		EvalInterp: func(ctx InterpContext, args []float64) (float64, error) {
			return math.Sqrt(args[0]), nil
		},
		EmitJIT: func(ctx JITContext, args []ast.MathOp) (llvm.Value, error) {
			x, err := ctx.EmitOperand(args[0])
			if err != nil {
				return llvm.Value{}, err
			}
			fn := ctx.DeclareLLVMIntrinsic("llvm.sqrt.f64")
			return ctx.Builder().CreateCall(fn, []llvm.Value{x}, "sqrttmp"), nil
		},
	}
}
