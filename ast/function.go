package ast

// Function is a user-defined named function: name, ordered formal
// parameters, and a body expression. ReplFunctionName is the name given to
// the anonymous wrapper around a top-level expression body (§3/GLOSSARY).
const ReplFunctionName = "_repl"

type Function struct {
	Name string
	Args []rune
	Body MathOp
}

// ArgIndex returns the position of ch in the function's formal parameter
// list, or -1 if ch is not a formal parameter of this function.
func (f Function) ArgIndex(ch rune) int {
	for i, a := range f.Args {
		if a == ch {
			return i
		}
	}
	return -1
}

// ParseOutput is either a bare expression Body or a set of Functions to
// install into the environment (§3). A parse of chained input yields a
// []ParseOutput.
type ParseOutput interface {
	isParseOutput()
}

// Body wraps a top-level expression to be evaluated.
type Body struct {
	Op MathOp
}

func (Body) isParseOutput() {}

// Functions wraps a set of function definitions to be installed.
type Functions struct {
	Defs []Function
}

func (Functions) isParseOutput() {}

// WrapAsRepl wraps a bare expression as an anonymous, zero-argument
// _repl function, the representation the evaluators operate on uniformly.
func WrapAsRepl(op MathOp) Function {
	return Function{Name: ReplFunctionName, Args: nil, Body: op}
}
