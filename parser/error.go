package parser

import "fmt"

// SyntaxError is raised for unbalanced brackets, unexpected tokens,
// missing primaries, intrinsic arity mismatches, and unexpected trailing
// tokens (§7). It carries the byte offset of the offending token so the
// diagnostics package can highlight it within the source string.
type SyntaxError struct {
	Offset  int
	Message string
}

func CreateSyntaxError(offset int, message string) SyntaxError {
	return SyntaxError{Offset: offset, Message: message}
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("💥 syntax error at offset %d: %s", e.Offset, e.Message)
}

// SpanOffset implements diagnostics.Spanned.
func (e SyntaxError) SpanOffset() int {
	return e.Offset
}
