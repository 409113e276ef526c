package lexer

import "fmt"

// Error is raised for an unexpected character during scanning (§7
// "Tokenizer"). It carries the byte offset of the offending character so
// diagnostics can highlight it.
type Error struct {
	Offset int
	Ch     rune
}

func (e Error) Error() string {
	return fmt.Sprintf("💥 unexpected token '%c'", e.Ch)
}

// SpanOffset implements diagnostics.Spanned.
func (e Error) SpanOffset() int {
	return e.Offset
}
