// Package jitgen implements C6, the LLVM IR code generator: one LLVM
// function per user ast.Function, lowering MathOp nodes through the
// builder and delegating to intrinsic.Descriptor.EmitJIT for built-ins.
// A per-function FunctionGen implements the AST's visitor interface, using
// tinygo.org/x/go-llvm's pre-opaque-pointer call surface (CreateCall/
// CreateLoad take no explicit type argument).
package jitgen

import (
	"fmt"

	"github.com/Jaycadox/MathJIT/ast"
	"github.com/Jaycadox/MathJIT/environment"
	"github.com/Jaycadox/MathJIT/intrinsic"
	"tinygo.org/x/go-llvm"
)

// functionAttributes are applied to every compiled user function (§4.5):
// they tell LLVM user math functions are pure and safe to aggressively
// inline.
var functionAttributes = []string{
	"nofree", "nocallback", "nounwind", "speculatable",
	"willreturn", "alwaysinline", "hot", "inlinehint",
}

// CodeGen holds the LLVM context and module for one compilation round
// (both owned by the caller), its own builder, and the environment and
// intrinsic registry functions are resolved against.
type CodeGen struct {
	ctx      llvm.Context
	module   llvm.Module
	builder  llvm.Builder
	env      *environment.Environment
	registry *intrinsic.Registry
}

// New creates a code generator targeting an existing module under ctx.
func New(ctx llvm.Context, module llvm.Module, env *environment.Environment, registry *intrinsic.Registry) *CodeGen {
	return &CodeGen{
		ctx:      ctx,
		module:   module,
		builder:  ctx.NewBuilder(),
		env:      env,
		registry: registry,
	}
}

// Dispose releases the builder. The context and module outlive the
// CodeGen and are disposed by their own owner (jitsession.Session).
func (cg *CodeGen) Dispose() {
	cg.builder.Dispose()
}

// Module returns the module functions are being compiled into.
func (cg *CodeGen) Module() llvm.Module { return cg.module }

// Compile lowers fn into a new LLVM function named fn.Name, with one f64
// parameter per formal argument, body, and a single `entry` block. It
// returns the declared llvm.Value, or an error produced by a failure
// lowering the body (§7 "JIT" error taxonomy).
func (cg *CodeGen) Compile(fn ast.Function) (result llvm.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", r)
			}
		}
	}()

	f64 := cg.ctx.DoubleType()
	paramTypes := make([]llvm.Type, len(fn.Args))
	for i := range paramTypes {
		paramTypes[i] = f64
	}
	fnType := llvm.FunctionType(f64, paramTypes, false)
	llvmFn := llvm.AddFunction(cg.module, fn.Name, fnType)
	addFunctionAttributes(cg.ctx, llvmFn)

	entry := llvm.AddBasicBlock(llvmFn, "entry")
	cg.builder.SetInsertPointAtEnd(entry)

	gen := &FunctionGen{cg: cg, fn: fn, llvmFn: llvmFn}
	body := gen.evaluate(fn.Body)
	cg.builder.CreateRet(body)

	return llvmFn, nil
}

func addFunctionAttributes(ctx llvm.Context, fn llvm.Value) {
	for _, name := range functionAttributes {
		kind := llvm.AttributeKindID(name)
		attr := ctx.CreateEnumAttribute(kind, 0)
		fn.AddAttributeAtIndex(llvm.AttributeFunctionIndex, attr)
	}
}

// FunctionGen is the per-function codegen state: it implements
// ast.MathOpVisitor (returning llvm.Value boxed as any) and
// intrinsic.JITContext, so intrinsic descriptors can emit IR against the
// function currently being built.
type FunctionGen struct {
	cg     *CodeGen
	fn     ast.Function
	llvmFn llvm.Value
}

func (g *FunctionGen) evaluate(op ast.MathOp) llvm.Value {
	return op.Accept(g).(llvm.Value)
}

// EmitOperand implements intrinsic.JITContext.
func (g *FunctionGen) EmitOperand(op ast.MathOp) (llvm.Value, error) {
	return g.evaluate(op), nil
}

func (g *FunctionGen) Context() llvm.Context       { return g.cg.ctx }
func (g *FunctionGen) Module() llvm.Module         { return g.cg.module }
func (g *FunctionGen) Builder() llvm.Builder       { return g.cg.builder }
func (g *FunctionGen) CurrentFunction() llvm.Value { return g.llvmFn }
func (g *FunctionGen) DoubleType() llvm.Type       { return g.cg.ctx.DoubleType() }

func (g *FunctionGen) ConstFloat(v float64) llvm.Value {
	return llvm.ConstFloat(g.cg.ctx.DoubleType(), v)
}

// DeclareLLVMIntrinsic lazily declares a single-argument f64 LLVM
// intrinsic (sqrt/sin/cos) on the module, reusing any existing
// declaration (§4.5).
func (g *FunctionGen) DeclareLLVMIntrinsic(llvmName string) llvm.Value {
	if existing := g.cg.module.NamedFunction(llvmName); !existing.IsNil() {
		return existing
	}
	f64 := g.cg.ctx.DoubleType()
	fnType := llvm.FunctionType(f64, []llvm.Type{f64}, false)
	return llvm.AddFunction(g.cg.module, llvmName, fnType)
}

// CallLastSingleArgFunction implements intrinsic.JITContext for sum: it
// resolves the most recently defined single-argument user function and
// emits a call to it, declaring/compiling it on the module first if
// needed.
func (g *FunctionGen) CallLastSingleArgFunction(arg llvm.Value) (llvm.Value, error) {
	fn, ok := g.cg.env.LastSingleArgDefined()
	if !ok {
		return llvm.Value{}, fmt.Errorf("sum requires a previously defined single-argument function")
	}
	target := g.cg.module.NamedFunction(fn.Name)
	if target.IsNil() {
		block := g.cg.builder.GetInsertBlock()
		var err error
		target, err = g.cg.Compile(fn)
		if err != nil {
			return llvm.Value{}, err
		}
		g.cg.builder.SetInsertPointAtEnd(block)
	}
	return g.cg.builder.CreateCall(target, []llvm.Value{arg}, "sum.call"), nil
}
