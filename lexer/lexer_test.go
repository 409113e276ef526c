package lexer

import (
	"reflect"
	"testing"

	"github.com/Jaycadox/MathJIT/token"
)

func runTestSuccess(t *testing.T, scanner *Lexer, expected []token.Token) {
	t.Run("ValidTokenScan", func(t *testing.T) {
		got, err := scanner.Scan()
		if err != nil {
			t.Errorf("scanner.Scan() raised an error: %v", err)
		}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("scanner.Scan() = %v, want %v", got, expected)
		}
	})
}

func TestOperatorsSuccess(t *testing.T) {
	expected := []token.Token{
		token.CreateToken(token.DIV, 0),
		token.CreateToken(token.EQ, 1),
		token.CreateToken(token.MUL, 2),
		token.CreateToken(token.ADD, 3),
		token.CreateToken(token.SUB, 4),
		token.CreateToken(token.EXP, 5),
		token.CreateToken(token.DELIM, 6),
		token.CreateToken(token.EOF, 7),
	}
	scanner := CreateLexer("/=*+-^,")
	runTestSuccess(t, scanner, expected)
}

func TestScanSuccess(t *testing.T) {
	expected := []token.Token{
		token.CreateToken(token.OPEN, 0),
		token.CreateToken(token.CLOSE, 1),
		token.CreateToken(token.MUL, 2),
		token.CreateToken(token.MUL, 3),
		token.CreateToken(token.ADD, 4),
		token.CreateToken(token.CHAIN, 5),
		token.CreateToken(token.EOF, 6),
	}
	scanner := CreateLexer("()**+&")
	runTestSuccess(t, scanner, expected)
}

func TestImplicitMultiplication(t *testing.T) {
	expected := []token.Token{
		token.CreateNumToken(2, 0),
		token.CreateToken(token.MUL, 1),
		token.CreateToken(token.OPEN, 1),
		token.CreateNumToken(3, 2),
		token.CreateToken(token.CLOSE, 3),
		token.CreateToken(token.EOF, 4),
	}
	scanner := CreateLexer("2(3)")
	runTestSuccess(t, scanner, expected)
}

func TestImplicitMultiplicationBeforeIdentifier(t *testing.T) {
	expected := []token.Token{
		token.CreateNumToken(2, 0),
		token.CreateToken(token.MUL, 1),
		token.CreateIdToken('x', 1),
		token.CreateToken(token.EOF, 2),
	}
	scanner := CreateLexer("2x")
	runTestSuccess(t, scanner, expected)
}

func TestIdentifiersAreSingleCharacter(t *testing.T) {
	expected := []token.Token{
		token.CreateIdToken('a', 0),
		token.CreateIdToken('b', 1),
		token.CreateToken(token.OPEN, 2),
		token.CreateIdToken('x', 3),
		token.CreateToken(token.CLOSE, 4),
		token.CreateToken(token.EOF, 5),
	}
	scanner := CreateLexer("ab(x)")
	runTestSuccess(t, scanner, expected)
}

func TestUnexpectedCharacter(t *testing.T) {
	scanner := CreateLexer("1 % 2")
	_, err := scanner.Scan()
	if err == nil {
		t.Fatalf("expected an error for unexpected character '%%'")
	}
}

func TestNumberLexeme(t *testing.T) {
	scanner := CreateLexer("3.14")
	tokens, err := scanner.Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 2 || tokens[0].Value != 3.14 {
		t.Fatalf("got %v, want a single Num(3.14) token", tokens)
	}
}
