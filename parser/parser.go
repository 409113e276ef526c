// Recursive descent parser
// https://en.wikipedia.org/wiki/Recursive_descent_parser
//
// A recursive descent parser is a top-down parser because it starts from
// the top grammar rule and works its way down into nested sub-expressions
// before reaching the leaves of the syntax tree (terminal rules).
//
// Precedence, lowest to highest: chain ('&') < additive ('+ -') <
// multiplicative ('* /') < unary '-' < exponent ('^', right-associative)
// < primary (§4.2). A leading unary '-' applies to the whole exponent
// chain that follows it, not just the next primary.
package parser

import (
	"fmt"

	"github.com/Jaycadox/MathJIT/ast"
	"github.com/Jaycadox/MathJIT/intrinsic"
	"github.com/Jaycadox/MathJIT/token"
)

// Parser consumes a flat token queue and produces a sequence of
// ast.ParseOutput. registry is consulted only to validate intrinsic call
// arity (§4.2); user-function arity is checked at evaluation time since
// the parser has no environment.
type Parser struct {
	tokens   []token.Token
	position int
	registry *intrinsic.Registry
}

// NOTE: the parser's position always refers to the next unconsumed token.

// Make constructs a new Parser over tokens, using registry to validate
// intrinsic call arity at parse time.
func Make(tokens []token.Token, registry *intrinsic.Registry) *Parser {
	return &Parser{tokens: tokens, registry: registry}
}

// Print prints the parsed outputs as prettified JSON to standard output.
func (p *Parser) Print(outputs []ast.ParseOutput) {
	_, err := PrintASTJSON(outputs)
	if err != nil {
		fmt.Println("error producing AST JSON:", err)
	}
}

// PrintToFile writes the AST for the provided outputs to a .json file at
// the given path.
func (p *Parser) PrintToFile(outputs []ast.ParseOutput, path string) error {
	return WriteASTJSONToFile(outputs, path)
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.position]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.position-1]
}

func (p *Parser) isFinished() bool {
	return p.peek().TokenType == token.EOF
}

func (p *Parser) checkType(tokenType token.TokenType) bool {
	return p.peek().TokenType == tokenType
}

func (p *Parser) advance() token.Token {
	if !p.isFinished() {
		p.position++
	}
	return p.previous()
}

// isMatch advances and returns true if the current token's type is
// tokenType.
func (p *Parser) isMatch(tokenType token.TokenType) bool {
	if p.checkType(tokenType) {
		p.advance()
		return true
	}
	return false
}

// consume advances past the current token if it has the given type,
// otherwise produces a SyntaxError carrying errorMessage and the
// offending token's offset.
func (p *Parser) consume(tokenType token.TokenType, errorMessage string) (token.Token, error) {
	if p.checkType(tokenType) {
		return p.advance(), nil
	}
	current := p.peek()
	return token.Token{}, CreateSyntaxError(current.Offset, errorMessage)
}

// Parse parses the whole token stream into a sequence of ParseOutput,
// following program := stmt ('&' stmt)* (§6 grammar). Each '&'-separated
// segment is attempted first as a function definition, backtracking to an
// expression body on failure (§4.2 chaining). Unconsumed tokens after a
// complete top-level parse are an error unless the next token is '&'.
func (p *Parser) Parse() ([]ast.ParseOutput, error) {
	var outputs []ast.ParseOutput

	for {
		out, err := p.statement()
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)

		if !p.isMatch(token.CHAIN) {
			break
		}
	}

	if !p.isFinished() {
		current := p.peek()
		return nil, CreateSyntaxError(current.Offset,
			fmt.Sprintf("unexpected trailing token '%s'", current.Lexeme()))
	}

	return outputs, nil
}

// statement parses one '&'-separated segment: a function definition if
// the token shape matches, otherwise an expression body.
func (p *Parser) statement() (ast.ParseOutput, error) {
	start := p.position

	fn, matched, err := p.tryFunctionDefinition()
	if err != nil {
		return nil, err
	}
	if matched {
		return ast.Functions{Defs: []ast.Function{fn}}, nil
	}
	p.position = start

	op, err := p.expr()
	if err != nil {
		return nil, err
	}
	return ast.Body{Op: op}, nil
}

// tryFunctionDefinition attempts name '(' [id (',' id)*] ')' '=' expr
// (§6 funcdef). It backtracks silently (matched=false, err=nil) whenever
// the token shape diverges from a definition before the '=' is reached;
// once '=' is consumed the parse is committed, and any further failure is
// a real error.
func (p *Parser) tryFunctionDefinition() (ast.Function, bool, error) {
	if !p.checkType(token.ID) {
		return ast.Function{}, false, nil
	}

	var name []rune
	for p.checkType(token.ID) {
		name = append(name, p.peek().Ch)
		p.advance()
	}

	if !p.checkType(token.OPEN) {
		return ast.Function{}, false, nil
	}
	p.advance()

	var args []rune
	if !p.checkType(token.CLOSE) {
		for {
			if !p.checkType(token.ID) {
				return ast.Function{}, false, nil
			}
			args = append(args, p.peek().Ch)
			p.advance()
			if !p.isMatch(token.DELIM) {
				break
			}
		}
	}

	if !p.checkType(token.CLOSE) {
		return ast.Function{}, false, nil
	}
	p.advance()

	if !p.checkType(token.EQ) {
		return ast.Function{}, false, nil
	}
	p.advance() // committed: this can only be a function definition now

	body, err := p.expr()
	if err != nil {
		return ast.Function{}, false, err
	}

	return ast.Function{Name: string(name), Args: args, Body: body}, true, nil
}

// expr := term (('+' | '-') term)*
func (p *Parser) expr() (ast.MathOp, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.checkType(token.ADD) || p.checkType(token.SUB) {
		opType := p.advance().TokenType
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		if opType == token.ADD {
			left = ast.Add{Lhs: left, Rhs: right}
		} else {
			left = ast.Sub{Lhs: left, Rhs: right}
		}
	}
	return left, nil
}

// term := unary (('*' | '/') unary)*
func (p *Parser) term() (ast.MathOp, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.checkType(token.MUL) || p.checkType(token.DIV) {
		opType := p.advance().TokenType
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		if opType == token.MUL {
			left = ast.Mul{Lhs: left, Rhs: right}
		} else {
			left = ast.Div{Lhs: left, Rhs: right}
		}
	}
	return left, nil
}

// unary := '-' unary | exponent
//
// A leading '-' negates the entire exponent chain that follows it, not
// just the next primary, so -(2+3)^2 parses as -((2+3)^2) = -25 rather
// than (-(2+3))^2 (§8 scenario).
func (p *Parser) unary() (ast.MathOp, error) {
	if p.isMatch(token.SUB) {
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.Neg{X: x}, nil
	}
	return p.exponent()
}

// exponent := primary ('^' unary)? — right-recursive through unary so
// that a^b^c parses as a^(b^c) (§8 property 2) and a negative exponent
// like 2^-3 is accepted.
func (p *Parser) exponent() (ast.MathOp, error) {
	left, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.isMatch(token.EXP) {
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.Exp{Lhs: left, Rhs: right}, nil
	}
	return left, nil
}

// primary := NUM | NUM '(' expr ')' | name '(' [expr (',' expr)*] ')' |
// id | '(' expr ')' (§6 grammar).
func (p *Parser) primary() (ast.MathOp, error) {
	tok := p.peek()

	switch tok.TokenType {
	case token.NUM:
		p.advance()
		var left ast.MathOp = ast.Num{Value: tok.Value}
		// Defensive: the tokenizer already inserts a synthetic Mul before
		// any '(' that directly follows a Num (§4.1), so a bare Num-Open
		// pair should not reach here; kept for parse-level robustness.
		if p.checkType(token.OPEN) {
			p.advance()
			right, err := p.bracketed(tok.Offset)
			if err != nil {
				return nil, err
			}
			return ast.Mul{Lhs: left, Rhs: right}, nil
		}
		return left, nil

	case token.OPEN:
		p.advance()
		return p.bracketed(tok.Offset)

	case token.ID:
		return p.identifierOrCall()

	default:
		return nil, CreateSyntaxError(tok.Offset, fmt.Sprintf("expected a value, found '%s'", tok.Lexeme()))
	}
}

// identifierOrCall implements the dual role of Id tokens in primary
// position: greedily concatenate consecutive Ids into a candidate name,
// and if an Open immediately follows, parse it as a call; otherwise
// backtrack to consuming just the first Id as an Arg reference (§4.2).
func (p *Parser) identifierOrCall() (ast.MathOp, error) {
	start := p.position
	first := p.peek()

	var name []rune
	for p.checkType(token.ID) {
		name = append(name, p.peek().Ch)
		p.advance()
	}

	if p.checkType(token.OPEN) {
		p.advance()
		args, err := p.callArguments()
		if err != nil {
			return nil, err
		}
		fullName := string(name)
		if err := p.checkIntrinsicArity(fullName, len(args), first.Offset); err != nil {
			return nil, err
		}
		return ast.Call{Name: fullName, Args: args}, nil
	}

	p.position = start + 1
	return ast.Arg{Ch: first.Ch}, nil
}

// callArguments parses comma-separated expression arguments up to a
// closing ')', which has not yet been consumed by the caller's matching
// Open.
func (p *Parser) callArguments() ([]ast.MathOp, error) {
	var args []ast.MathOp
	if p.checkType(token.CLOSE) {
		p.advance()
		return args, nil
	}

	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.isMatch(token.DELIM) {
			break
		}
	}

	if _, err := p.consume(token.CLOSE, "expected ')' to close call arguments"); err != nil {
		return nil, err
	}
	return args, nil
}

// checkIntrinsicArity enforces proto.ArgCount for names that resolve to a
// known intrinsic (§4.2); user-function names are left unchecked here
// since the parser has no environment.
func (p *Parser) checkIntrinsicArity(name string, argCount int, offset int) error {
	desc, ok := p.registry.Lookup(name)
	if !ok {
		return nil
	}
	if argCount != desc.Proto.ArgCount {
		return CreateSyntaxError(offset, fmt.Sprintf(
			"'%s' expects %d argument(s), got %d", name, desc.Proto.ArgCount, argCount))
	}
	return nil
}

// bracketed parses the contents of a parenthesized group. Per §4.2,
// bracket contents are re-tokenized into a sub-parser: the token span up
// to the balancing Close is extracted and parsed independently, so an
// extra trailing Close inside it cannot leak past the boundary.
func (p *Parser) bracketed(openOffset int) (ast.MathOp, error) {
	start := p.position
	depth := 1
	for {
		if p.isFinished() {
			return nil, CreateSyntaxError(openOffset, "brackets not balanced")
		}
		switch p.peek().TokenType {
		case token.OPEN:
			depth++
		case token.CLOSE:
			depth--
			if depth == 0 {
				inner := p.tokens[start:p.position]
				p.advance() // consume the matching Close
				return p.parseSubExpression(inner, openOffset)
			}
		}
		p.advance()
	}
}

// parseSubExpression parses tokens (with a synthesized EOF appended) as a
// standalone expression, failing if anything is left unconsumed.
func (p *Parser) parseSubExpression(tokens []token.Token, openOffset int) (ast.MathOp, error) {
	sub := &Parser{
		tokens:   append(append([]token.Token{}, tokens...), token.CreateToken(token.EOF, openOffset)),
		registry: p.registry,
	}
	op, err := sub.expr()
	if err != nil {
		return nil, err
	}
	if !sub.isFinished() {
		current := sub.peek()
		return nil, CreateSyntaxError(current.Offset,
			fmt.Sprintf("unexpected token '%s' inside brackets", current.Lexeme()))
	}
	return op, nil
}
