package token

import "testing"

func TestCreateToken(t *testing.T) {
	tests := []struct {
		name string
		got  Token
		want Token
	}{
		{
			name: "Create ADD token",
			got:  CreateToken(ADD, 3),
			want: Token{TokenType: ADD, Offset: 3},
		},
		{
			name: "Create OPEN token",
			got:  CreateToken(OPEN, 0),
			want: Token{TokenType: OPEN, Offset: 0},
		},
		{
			name: "Create Num token",
			got:  CreateNumToken(42.5, 7),
			want: Token{TokenType: NUM, Offset: 7, Value: 42.5},
		},
		{
			name: "Create Id token",
			got:  CreateIdToken('f', 1),
			want: Token{TokenType: ID, Offset: 1, Ch: 'f'},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLexeme(t *testing.T) {
	if got := CreateToken(MUL, 0).Lexeme(); got != "*" {
		t.Errorf("Lexeme() = %q, want %q", got, "*")
	}
	if got := CreateIdToken('x', 0).Lexeme(); got != "x" {
		t.Errorf("Lexeme() = %q, want %q", got, "x")
	}
}
