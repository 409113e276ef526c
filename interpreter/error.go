package interpreter

import "fmt"

// RuntimeError is raised for unresolved function names, unresolved
// argument references, and arity mismatches discovered during
// tree-walking evaluation (§7). Unlike parser.SyntaxError, it carries no
// source offset: MathOp nodes are stripped of position information once
// the parser has finished with the token stream (§3).
type RuntimeError struct {
	Message string
}

func CreateRuntimeError(message string) RuntimeError {
	return RuntimeError{Message: message}
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("💥 runtime error: %s", e.Message)
}
