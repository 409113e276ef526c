package diagnostics

import (
	"errors"
	"strings"
	"testing"

	"github.com/Jaycadox/MathJIT/parser"
)

func TestRenderHighlightsSpannedError(t *testing.T) {
	source := "1 + % 2"
	err := parser.CreateSyntaxError(4, "unexpected token '%'")

	got := Render(source, err)
	if !strings.Contains(got, "\x1b[31m%\x1b[39m") {
		t.Fatalf("Render() = %q, want a red-highlighted '%%'", got)
	}
	if !strings.HasPrefix(got, err.Error()+"\n") {
		t.Fatalf("Render() = %q, want it to start with the error message", got)
	}
}

func TestRenderFallsBackWithoutSpan(t *testing.T) {
	err := errors.New("boom")
	if got := Render("1+2", err); got != "boom" {
		t.Fatalf("Render() = %q, want the bare message", got)
	}
}
