package jitgen

import "fmt"

// Error is raised for LLVM IR verification failures, missing intrinsic
// declarations, pass-pipeline failures, and symbol lookup failures
// during code generation or optimization (§7 "JIT"). Like
// interpreter.RuntimeError, it carries no source byte span: by the time
// a MathOp tree reaches codegen, position information from the original
// token stream is gone.
type Error struct {
	Message string
}

func CreateError(message string) Error {
	return Error{Message: message}
}

func (e Error) Error() string {
	return fmt.Sprintf("💥 JIT error: %s", e.Message)
}
