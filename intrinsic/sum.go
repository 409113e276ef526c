package intrinsic

import (
	"github.com/Jaycadox/MathJIT/ast"
	"tinygo.org/x/go-llvm"
)

// sumDescriptor implements the higher-order sum(start, stop, step)
// intrinsic of §4.3/§4.5: it repeatedly invokes the most recently defined
// single-argument user function over the inclusive range
// [start, stop] stepping by step, and returns the running total.
func sumDescriptor() *Descriptor {
	return &Descriptor{
		Name:  "sum",
		Proto: Proto{ArgCount: 3},
		EvalInterp: func(ctx InterpContext, args []float64) (float64, error) {
			start, stop, step := args[0], args[1], args[2]
			total := 0.0
			for i := start; i <= stop; i += step {
				v, err := ctx.CallLastSingleArgFunction(i)
				if err != nil {
					return 0, err
				}
				total += v
			}
			return total, nil
		},
		EmitJIT: emitSumLoop,
	}
}

// emitSumLoop builds a counted loop in the current function: an alloca'd
// accumulator and induction variable, a header block that tests the loop
// condition, a body block that calls the target function and updates both,
// and an exit block holding the final accumulator load. The induction
// variable and accumulator are kept in allocas rather than PHI nodes on
// purpose, so that mem2reg has real promotion work to do during
// optimization.
func emitSumLoop(ctx JITContext, args []ast.MathOp) (llvm.Value, error) {
	start, err := ctx.EmitOperand(args[0])
	if err != nil {
		return llvm.Value{}, err
	}
	stop, err := ctx.EmitOperand(args[1])
	if err != nil {
		return llvm.Value{}, err
	}
	step, err := ctx.EmitOperand(args[2])
	if err != nil {
		return llvm.Value{}, err
	}

	b := ctx.Builder()
	dt := ctx.DoubleType()
	fn := ctx.CurrentFunction()

	accPtr := b.CreateAlloca(dt, "sum.acc")
	b.CreateStore(ctx.ConstFloat(0), accPtr)
	ivPtr := b.CreateAlloca(dt, "sum.iv")
	b.CreateStore(start, ivPtr)

	headerBlock := llvm.AddBasicBlock(fn, "sum.header")
	bodyBlock := llvm.AddBasicBlock(fn, "sum.body")
	exitBlock := llvm.AddBasicBlock(fn, "sum.exit")

	b.CreateBr(headerBlock)

	b.SetInsertPointAtEnd(headerBlock)
	iv := b.CreateLoad(ivPtr, "sum.iv.cur")
	cond := b.CreateFCmp(llvm.FloatOLE, iv, stop, "sum.cond")
	b.CreateCondBr(cond, bodyBlock, exitBlock)

	b.SetInsertPointAtEnd(bodyBlock)
	iv = b.CreateLoad(ivPtr, "sum.iv.body")
	called, err := ctx.CallLastSingleArgFunction(iv)
	if err != nil {
		return llvm.Value{}, err
	}
	acc := b.CreateLoad(accPtr, "sum.acc.cur")
	acc = b.CreateFAdd(acc, called, "sum.acc.next")
	b.CreateStore(acc, accPtr)
	next := b.CreateFAdd(iv, step, "sum.iv.next")
	b.CreateStore(next, ivPtr)
	b.CreateBr(headerBlock)

	b.SetInsertPointAtEnd(exitBlock)
	return b.CreateLoad(accPtr, "sum.result"), nil
}
