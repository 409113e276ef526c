// interfaces.go contains MathOpVisitor, the visitor interface every
// backend that traverses a MathOp tree must implement (the interpreter,
// the JIT code generator, and the debug printer).

package ast

// MathOpVisitor is implemented once per backend. Each Visit method
// corresponds to one MathOp variant; the interpreter's methods return
// float64 boxed as any, the JIT generator's return an llvm.Value boxed as
// any.
type MathOpVisitor interface {
	VisitAdd(op Add) any
	VisitSub(op Sub) any
	VisitMul(op Mul) any
	VisitDiv(op Div) any
	VisitExp(op Exp) any
	VisitNeg(op Neg) any
	VisitNum(op Num) any
	VisitArg(op Arg) any
	VisitCall(op Call) any
}
