package parser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Jaycadox/MathJIT/ast"
)

func TestPrintASTJSON_Body(t *testing.T) {
	outputs := []ast.ParseOutput{
		ast.Body{Op: ast.Num{Value: 42}},
	}

	jsonString, err := PrintASTJSON(outputs)
	if err != nil {
		t.Fatalf("PrintASTJSON error: %v", err)
	}

	var out []map[string]any
	if err := json.Unmarshal([]byte(jsonString), &out); err != nil {
		t.Fatalf("unmarshal json: %v", err)
	}

	if len(out) != 1 {
		t.Fatalf("expected 1 output, got %d", len(out))
	}

	node := out[0]
	if typ, _ := node["type"].(string); typ != "Body" {
		t.Fatalf("expected type Body, got %v", node["type"])
	}

	op, ok := node["op"].(map[string]any)
	if !ok || op["type"] != "Num" || op["value"] != float64(42) {
		t.Fatalf("expected Num(42), got %v", node["op"])
	}
}

func TestPrintASTJSON_Functions(t *testing.T) {
	outputs := []ast.ParseOutput{
		ast.Functions{Defs: []ast.Function{
			{Name: "f", Args: []rune{'x'}, Body: ast.Add{Lhs: ast.Arg{Ch: 'x'}, Rhs: ast.Num{Value: 1}}},
		}},
	}

	jsonStr, err := PrintASTJSON(outputs)
	if err != nil {
		t.Fatalf("PrintASTJSON error: %v", err)
	}

	var out []map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &out); err != nil {
		t.Fatalf("unmarshal json: %v", err)
	}

	node := out[0]
	if typ, _ := node["type"].(string); typ != "Functions" {
		t.Fatalf("expected type Functions, got %v", node["type"])
	}

	defs, ok := node["defs"].([]any)
	if !ok || len(defs) != 1 {
		t.Fatalf("expected 1 function def, got %v", node["defs"])
	}

	def := defs[0].(map[string]any)
	if def["name"] != "f" || def["args"] != "x" {
		t.Fatalf("expected f(x), got %v", def)
	}
}

func TestWriteASTJSONToFile(t *testing.T) {
	outputs := []ast.ParseOutput{
		ast.Body{Op: ast.Num{Value: 7}},
	}

	filePath := filepath.Join(os.TempDir(), "mathjit_ast_printer_test.json")
	defer os.Remove(filePath)

	if err := WriteASTJSONToFile(outputs, filePath); err != nil {
		t.Fatalf("WriteASTJSONToFile error: %v", err)
	}

	bytes, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	var out []map[string]any
	if err := json.Unmarshal(bytes, &out); err != nil {
		t.Fatalf("unmarshal json: %v", err)
	}

	if len(out) != 1 {
		t.Fatalf("expected 1 output, got %d", len(out))
	}
}
