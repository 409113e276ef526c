package intrinsic

import (
	"math"

	"github.com/Jaycadox/MathJIT/ast"
	"tinygo.org/x/go-llvm"
)

func piDescriptor() *Descriptor {
	return &Descriptor{
		Name:  "pi",
		Proto: Proto{ArgCount: 0},
		EvalInterp: func(ctx InterpContext, args []float64) (float64, error) {
			return math.Pi, nil
		},
		EmitJIT: func(ctx JITContext, args []ast.MathOp) (llvm.Value, error) {
			return ctx.ConstFloat(math.Pi), nil
		},
	}
}
