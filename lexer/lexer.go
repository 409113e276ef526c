// Package lexer implements the tokenizer (C1): a left-to-right byte-offset
// tagged scanner over the raw expression string.
package lexer

import (
	"strconv"

	"github.com/Jaycadox/MathJIT/token"
)

func isLetter(char rune) bool {
	return 'a' <= char && char <= 'z' || 'A' <= char && char <= 'Z'
}

func isDigit(char rune) bool {
	return '0' <= char && char <= '9'
}

// Lexer scans a source string into a flat slice of tokens, each tagged
// with the byte offset where it begins.
type Lexer struct {
	// runes of the input string being scanned.
	characters []rune

	// byte offsets of each rune in characters, so Offset reflects the
	// original byte position even though scanning proceeds rune-by-rune.
	offsets []int

	totalChars int

	// the index into characters of the character currently being examined.
	position int

	tokens []token.Token
}

// New constructs a new Lexer over the given source string.
func New(input string) *Lexer {
	runes := []rune(input)
	offsets := make([]int, len(runes)+1)
	byteOffset := 0
	for i, r := range runes {
		offsets[i] = byteOffset
		byteOffset += len(string(r))
	}
	offsets[len(runes)] = byteOffset

	return &Lexer{
		characters: runes,
		offsets:    offsets,
		totalChars: len(runes),
	}
}

// CreateLexer is an alias for New, kept for call-site parity with the
// REPL's historical naming.
func CreateLexer(input string) *Lexer {
	return New(input)
}

func (l *Lexer) isFinished() bool {
	return l.position >= l.totalChars
}

func (l *Lexer) current() rune {
	if l.isFinished() {
		return rune(0)
	}
	return l.characters[l.position]
}

func (l *Lexer) offsetAt(pos int) int {
	return l.offsets[pos]
}

func (l *Lexer) lastEmittedIsNum() bool {
	if len(l.tokens) == 0 {
		return false
	}
	return l.tokens[len(l.tokens)-1].TokenType == token.NUM
}

// handleNumber scans a maximal digit-and-dot lexeme starting at the
// current position and emits a Num token.
func (l *Lexer) handleNumber() {
	start := l.position
	sawDot := false
	for !l.isFinished() {
		c := l.current()
		if isDigit(c) {
			l.position++
			continue
		}
		if c == '.' && !sawDot {
			sawDot = true
			l.position++
			continue
		}
		break
	}
	lexeme := string(l.characters[start:l.position])
	value, _ := strconv.ParseFloat(lexeme, 64)
	l.tokens = append(l.tokens, token.CreateNumToken(value, l.offsetAt(start)))
}

// handleIdentifier emits one Id token per letter, per the language's
// "one character per identifier" rule (§3); multi-character names are
// reassembled by the parser from consecutive Id tokens.
func (l *Lexer) handleIdentifier() {
	ch := l.current()
	offset := l.offsetAt(l.position)
	l.tokens = append(l.tokens, token.CreateIdToken(ch, offset))
	l.position++
}

// Scan performs lexical analysis over the whole input and returns the
// resulting token slice, or the first unexpected-character error
// encountered.
func (l *Lexer) Scan() ([]token.Token, error) {
	for !l.isFinished() {
		c := l.current()
		offset := l.offsetAt(l.position)

		switch {
		case c == ' ':
			l.position++

		case c == '(':
			// Implicit multiplication insertion: a '(' directly following a
			// Num synthesizes a Mul token at this offset before the Open.
			if l.lastEmittedIsNum() {
				l.tokens = append(l.tokens, token.CreateToken(token.MUL, offset))
			}
			l.tokens = append(l.tokens, token.CreateToken(token.OPEN, offset))
			l.position++

		case c == ')':
			l.tokens = append(l.tokens, token.CreateToken(token.CLOSE, offset))
			l.position++

		case c == '+':
			l.tokens = append(l.tokens, token.CreateToken(token.ADD, offset))
			l.position++

		case c == '-':
			l.tokens = append(l.tokens, token.CreateToken(token.SUB, offset))
			l.position++

		case c == '*':
			l.tokens = append(l.tokens, token.CreateToken(token.MUL, offset))
			l.position++

		case c == '/':
			l.tokens = append(l.tokens, token.CreateToken(token.DIV, offset))
			l.position++

		case c == '^':
			l.tokens = append(l.tokens, token.CreateToken(token.EXP, offset))
			l.position++

		case c == ',':
			l.tokens = append(l.tokens, token.CreateToken(token.DELIM, offset))
			l.position++

		case c == '=':
			l.tokens = append(l.tokens, token.CreateToken(token.EQ, offset))
			l.position++

		case c == '&':
			l.tokens = append(l.tokens, token.CreateToken(token.CHAIN, offset))
			l.position++

		case isLetter(c):
			// Implicit multiplication insertion: an identifier directly
			// following a Num synthesizes a Mul token at this offset, so
			// "2x" lexes the same as "2*x" (§8 property 3).
			if l.lastEmittedIsNum() {
				l.tokens = append(l.tokens, token.CreateToken(token.MUL, offset))
			}
			l.handleIdentifier()

		case isDigit(c) || c == '.':
			l.handleNumber()

		default:
			return l.tokens, Error{Offset: offset, Ch: c}
		}
	}

	l.tokens = append(l.tokens, token.CreateToken(token.EOF, l.offsetAt(l.totalChars)))
	return l.tokens, nil
}
