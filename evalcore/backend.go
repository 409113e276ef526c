package evalcore

import (
	"github.com/Jaycadox/MathJIT/ast"
	"github.com/Jaycadox/MathJIT/timings"
)

// Backend is implemented by both execution backends (interpreter.Interpreter
// and jitsession.Session), letting the CLI dispatch to whichever mode was
// selected without depending on either package directly.
type Backend interface {
	Eval(out ast.ParseOutput) (Response, *timings.Timings, error)
}
