// Package evalcore defines the shared contract both execution backends
// (the tree-walking interpreter of C5 and the LLVM JIT of C6/C7) expose to
// callers: eval(ParseOutput) -> (Response, Timings). Neither backend
// package imports the other; a caller such as the REPL depends only on
// this package and the Backend interface to stay agnostic of which one is
// active (§ data flow).
package evalcore

import "fmt"

// Response is the result of evaluating one ast.ParseOutput: either the
// numeric value of an expression body, or Ok for an installed function
// definition.
type Response struct {
	isOk  bool
	value float64
}

// ValueResponse wraps a computed expression result.
func ValueResponse(v float64) Response {
	return Response{value: v}
}

// OkResponse is returned after a definition is installed.
func OkResponse() Response {
	return Response{isOk: true}
}

// IsOk reports whether this is the Ok variant rather than a Value.
func (r Response) IsOk() bool {
	return r.isOk
}

// Value returns the numeric result. Only meaningful when !IsOk().
func (r Response) Value() float64 {
	return r.value
}

// String renders the response the way the REPL prints it: the default
// double formatting of the value, or the literal "Ok".
func (r Response) String() string {
	if r.isOk {
		return "Ok"
	}
	return fmt.Sprintf("%v", r.value)
}
