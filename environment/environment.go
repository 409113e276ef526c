// Package environment holds the user-function table shared by both
// evaluation backends (§3 "Evaluator environment"). A single instance
// models "newer definitions replace older ones in-place": at most one
// Function per name is stored, but a separate append-only definition log
// lets callers resolve "the most recently defined single-argument
// function" for the sum intrinsic (§4.3), independent of where that
// function's entry happens to live.
package environment

import "github.com/Jaycadox/MathJIT/ast"

type Environment struct {
	functions map[string]*ast.Function

	// defSeq records every (re)definition event, in order. It may contain
	// the same name multiple times; only the most recent occurrence of a
	// name matters when resolving "last defined".
	defSeq []string
}

func New() *Environment {
	return &Environment{functions: make(map[string]*ast.Function)}
}

// Define installs fn, replacing any prior function of the same name
// in-place and recording a new definition event for that name.
func (e *Environment) Define(fn ast.Function) {
	f := fn
	e.functions[fn.Name] = &f
	e.defSeq = append(e.defSeq, fn.Name)
}

// Lookup returns the function with the given name, if any.
func (e *Environment) Lookup(name string) (ast.Function, bool) {
	fn, ok := e.functions[name]
	if !ok {
		return ast.Function{}, false
	}
	return *fn, true
}

// Remove deletes the named function, if present, together with its
// definition history, so a later Define of the same name places it last
// in OrderedNames. Used by the JIT session to drop the prior evaluation's
// _repl wrapper (§4.6 step 1).
func (e *Environment) Remove(name string) {
	delete(e.functions, name)
	kept := e.defSeq[:0]
	for _, n := range e.defSeq {
		if n != name {
			kept = append(kept, n)
		}
	}
	e.defSeq = kept
}

// LastSingleArgDefined returns the most-recently-defined user function
// (by definition event order, not storage position) that takes exactly
// one argument, excluding the _repl wrapper. This is the target of the
// sum intrinsic (§4.3, §9 "last defined" semantics).
func (e *Environment) LastSingleArgDefined() (ast.Function, bool) {
	seen := make(map[string]bool, len(e.defSeq))
	for i := len(e.defSeq) - 1; i >= 0; i-- {
		name := e.defSeq[i]
		if seen[name] {
			continue
		}
		seen[name] = true
		if name == ast.ReplFunctionName {
			continue
		}
		fn, ok := e.functions[name]
		if !ok {
			continue
		}
		if len(fn.Args) == 1 {
			return *fn, true
		}
	}
	return ast.Function{}, false
}

// Names returns every currently-defined function name, in no particular
// order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.functions))
	for name := range e.functions {
		names = append(names, name)
	}
	return names
}

// OrderedNames returns every currently-defined function name ordered by
// first definition. The JIT code generator compiles functions in this
// order so that a function referencing an earlier-named one by call can
// find it already declared in the module (§4.5/§4.6): a function can only
// call names defined before it, mirroring the environment's Vec-with-
// replace-in-place ordering in the reference implementation.
func (e *Environment) OrderedNames() []string {
	seen := make(map[string]bool, len(e.functions))
	var names []string
	for _, name := range e.defSeq {
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := e.functions[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
