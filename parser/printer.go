package parser

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Jaycadox/MathJIT/ast"
)

const (
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

// astPrinter implements ast.MathOpVisitor and builds a JSON-friendly
// representation of a MathOp tree using maps and slices.
type astPrinter struct{}

func (p astPrinter) VisitAdd(op ast.Add) any { return p.binary("Add", op.Lhs, op.Rhs) }
func (p astPrinter) VisitSub(op ast.Sub) any { return p.binary("Sub", op.Lhs, op.Rhs) }
func (p astPrinter) VisitMul(op ast.Mul) any { return p.binary("Mul", op.Lhs, op.Rhs) }
func (p astPrinter) VisitDiv(op ast.Div) any { return p.binary("Div", op.Lhs, op.Rhs) }
func (p astPrinter) VisitExp(op ast.Exp) any { return p.binary("Exp", op.Lhs, op.Rhs) }

func (p astPrinter) binary(kind string, lhs, rhs ast.MathOp) any {
	return map[string]any{
		"type": kind,
		"lhs":  lhs.Accept(p),
		"rhs":  rhs.Accept(p),
	}
}

func (p astPrinter) VisitNeg(op ast.Neg) any {
	return map[string]any{"type": "Neg", "x": op.X.Accept(p)}
}

func (p astPrinter) VisitNum(op ast.Num) any {
	return map[string]any{"type": "Num", "value": op.Value}
}

func (p astPrinter) VisitArg(op ast.Arg) any {
	return map[string]any{"type": "Arg", "ch": string(op.Ch)}
}

func (p astPrinter) VisitCall(op ast.Call) any {
	args := make([]any, 0, len(op.Args))
	for _, a := range op.Args {
		args = append(args, a.Accept(p))
	}
	return map[string]any{"type": "Call", "name": op.Name, "args": args}
}

func printParseOutput(out ast.ParseOutput) any {
	printer := astPrinter{}
	switch v := out.(type) {
	case ast.Body:
		return map[string]any{"type": "Body", "op": v.Op.Accept(printer)}
	case ast.Functions:
		defs := make([]any, 0, len(v.Defs))
		for _, fn := range v.Defs {
			defs = append(defs, map[string]any{
				"name": fn.Name,
				"args": string(fn.Args),
				"body": fn.Body.Accept(printer),
			})
		}
		return map[string]any{"type": "Functions", "defs": defs}
	default:
		return nil
	}
}

// PrintASTJSON converts a chained parse result into a prettified JSON
// string and prints it, used by -v/--verbose.
func PrintASTJSON(outputs []ast.ParseOutput) (string, error) {
	out := make([]any, 0, len(outputs))
	for _, o := range outputs {
		out = append(out, printParseOutput(o))
	}
	bytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}

	jsonStr := string(bytes)
	fmt.Println(colorYellow + "----- AST JSON -----")
	fmt.Println(colorYellow + jsonStr)
	fmt.Println(colorYellow + "-----" + colorReset)
	fmt.Println("")
	return jsonStr, nil
}

// WriteASTJSONToFile writes the prettified AST JSON to the given file path.
func WriteASTJSONToFile(outputs []ast.ParseOutput, path string) error {
	s, err := PrintASTJSON(outputs)
	if err != nil {
		return err
	}
	fDescriptor, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating AST file: %s", err.Error())
	}
	defer fDescriptor.Close()

	if _, err := fDescriptor.Write([]byte(s)); err != nil {
		return fmt.Errorf("error writing AST to file: %s", err.Error())
	}
	return nil
}
