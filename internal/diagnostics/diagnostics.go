// Package diagnostics renders the ANSI source-span error format named by
// §6: "<message>\n<prefix>\x1b[31m<span>\x1b[39m<suffix>". It is
// deliberately decoupled from parser/interpreter/jitgen — any error type
// that implements Spanned gets a highlighted source range; everything
// else falls back to its own Error() string unchanged (parser/error.go,
// interpreter/error.go already carry their own emoji-prefixed messages,
// which this package renders rather than replaces).
package diagnostics

import "fmt"

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[39m"
)

// Spanned is implemented by error types that carry a source byte offset
// (currently parser.SyntaxError and lexer.Error; interpreter.RuntimeError and
// jitgen.Error carry no source position, per §7, and are rendered
// without a highlighted span).
type Spanned interface {
	SpanOffset() int
}

// Render produces the `"<message>\n<prefix>ESC[31m<span>ESC[39m<suffix>"`
// diagnostic for err against source. If err does not implement Spanned,
// only the message is returned.
func Render(source string, err error) string {
	spanned, ok := err.(Spanned)
	if !ok {
		return err.Error()
	}
	return RenderSpan(source, spanned.SpanOffset(), 1, err.Error())
}

// RenderSpan highlights source[offset:offset+length] in red, preceded and
// followed by the rest of the line it sits on.
func RenderSpan(source string, offset, length int, message string) string {
	runes := []rune(source)
	byteOffsets := make([]int, len(runes)+1)
	b := 0
	for i, r := range runes {
		byteOffsets[i] = b
		b += len(string(r))
	}
	byteOffsets[len(runes)] = b

	pos := 0
	for pos < len(runes) && byteOffsets[pos] < offset {
		pos++
	}
	end := pos
	for end < len(runes) && byteOffsets[end] < offset+length {
		end++
	}
	if end <= pos {
		end = pos + 1
	}
	if end > len(runes) {
		end = len(runes)
	}
	if pos > len(runes) {
		pos = len(runes)
	}

	lineStart := pos
	for lineStart > 0 && runes[lineStart-1] != '\n' {
		lineStart--
	}
	lineEnd := end
	for lineEnd < len(runes) && runes[lineEnd] != '\n' {
		lineEnd++
	}

	prefix := string(runes[lineStart:pos])
	span := string(runes[pos:end])
	suffix := string(runes[end:lineEnd])

	return fmt.Sprintf("%s\n%s%s%s%s%s", message, prefix, ansiRed, span, ansiReset, suffix)
}
