package main

import (
	"fmt"
	"strings"

	"github.com/Jaycadox/MathJIT/ast"
	"github.com/Jaycadox/MathJIT/evalcore"
	"github.com/Jaycadox/MathJIT/intrinsic"
	"github.com/Jaycadox/MathJIT/interpreter"
	"github.com/Jaycadox/MathJIT/jitsession"
	"github.com/Jaycadox/MathJIT/lexer"
	"github.com/Jaycadox/MathJIT/parser"
	"github.com/Jaycadox/MathJIT/timings"
)

// backend wraps an evalcore.Backend together with whatever teardown it
// needs (the JIT session owns LLVM resources; the interpreter owns
// none).
type backend struct {
	evalcore.Backend
	close func()
}

// selectBackend resolves the -m/--mode flag to a concrete backend
// (§4.3/§6).
func selectBackend(mode string) (*backend, error) {
	switch strings.ToLower(mode) {
	case "interpret", "i", "interpreter", "":
		return &backend{Backend: interpreter.New(), close: func() {}}, nil
	case "jit", "j":
		session := jitsession.New()
		return &backend{Backend: session, close: session.Close}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q (want interpret|i|interpreter|jit|j|JIT)", mode)
	}
}

// evaluateSource lexes and parses source, runs each resulting
// ast.ParseOutput through b in textual order (§5 "Ordering guarantees"),
// and returns the per-statement responses plus accumulated timings.
// verbose, when true, prints the AST the parser produced.
func evaluateSource(source string, b evalcore.Backend, verbose bool) ([]evalcore.Response, *timings.Timings, error) {
	total := timings.Start()

	lex := lexer.New(source)
	tokens, err := lex.Scan()
	if err != nil {
		return nil, total, err
	}
	total.Lap("lex")

	p := parser.Make(tokens, intrinsic.NewRegistry())
	outputs, err := p.Parse()
	if err != nil {
		return nil, total, err
	}
	total.Lap("parse")

	if verbose {
		p.Print(outputs)
	}

	responses := make([]evalcore.Response, 0, len(outputs))
	for _, out := range outputs {
		resp, stepTimings, err := b.Eval(out)
		if err != nil {
			return responses, total, err
		}
		responses = append(responses, resp)
		total.Append(stepTimings, labelFor(out))
	}
	return responses, total, nil
}

func labelFor(out ast.ParseOutput) string {
	switch out.(type) {
	case ast.Body:
		return "eval body"
	case ast.Functions:
		return "eval defs"
	default:
		return "eval"
	}
}
