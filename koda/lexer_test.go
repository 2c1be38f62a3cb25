package koda

import "testing"

func tokenize(t *testing.T, input string) ([]Token, error) {
	t.Helper()
	lex := NewLexer(input)
	var toks []Token
	for {
		tok := lex.Current()
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			break
		}
		lex.Advance()
	}
	return toks, lex.Err()
}

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenType
	}{
		{"punctuation", "{}[]:,", []TokenType{
			TokenLBrace, TokenRBrace, TokenLBracket, TokenRBracket, TokenColon, TokenComma, TokenEOF,
		}},
		{"keywords", "true false null", []TokenType{
			TokenTrue, TokenFalse, TokenNull, TokenEOF,
		}},
		{"identifier", "foo_bar", []TokenType{TokenIdentifier, TokenEOF}},
		{"double quoted string", `"hello"`, []TokenType{TokenString, TokenEOF}},
		{"single quoted string", `'hello'`, []TokenType{TokenString, TokenEOF}},
		{"integer", "42", []TokenType{TokenInteger, TokenEOF}},
		{"negative integer", "-7", []TokenType{TokenInteger, TokenEOF}},
		{"float", "3.5", []TokenType{TokenFloat, TokenEOF}},
		{"exponent float", "1e10", []TokenType{TokenFloat, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := tokenize(t, tt.input)
			if err != nil {
				t.Fatalf("unexpected lex error: %v", err)
			}
			if len(toks) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d (%v)", len(toks), len(tt.want), toks)
			}
			for i, tok := range toks {
				if tok.Type != tt.want[i] {
					t.Errorf("token %d: got %v, want %v", i, tok.Type, tt.want[i])
				}
			}
		})
	}
}

func TestLexerStringEscapes(t *testing.T) {
	lex := NewLexer(`"a\nb\tc\\d\"e"`)
	tok := lex.Current()
	if tok.Type != TokenString {
		t.Fatalf("expected string token, got %v", tok.Type)
	}
	want := "a\nb\tc\\d\"e"
	if tok.Text != want {
		t.Fatalf("got %q, want %q", tok.Text, want)
	}
}

func TestLexerLineComment(t *testing.T) {
	toks, err := tokenize(t, "1 // trailing comment\n2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 3 || toks[0].Type != TokenInteger || toks[1].Type != TokenInteger {
		t.Fatalf("unexpected tokens: %v", toks)
	}
}

func TestLexerNestedBlockComment(t *testing.T) {
	toks, err := tokenize(t, "1 /* outer /* inner */ still outer */ 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 3 || toks[0].Int != 1 || toks[1].Int != 2 {
		t.Fatalf("unexpected tokens: %v", toks)
	}
}

func TestLexerUnclosedBlockCommentErrors(t *testing.T) {
	_, err := tokenize(t, "1 /* never closed")
	if err == nil {
		t.Fatal("expected error for unclosed block comment")
	}
	if _, ok := err.(*LexError); !ok {
		t.Fatalf("expected *LexError, got %T", err)
	}
}

func TestLexerRejectsLeadingZero(t *testing.T) {
	_, err := tokenize(t, "012")
	if err == nil {
		t.Fatal("expected error for leading zero")
	}
}

func TestLexerAllowsBareZero(t *testing.T) {
	toks, err := tokenize(t, "0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Type != TokenInteger || toks[0].Int != 0 {
		t.Fatalf("expected integer 0, got %v", toks[0])
	}
}

func TestLexerRejectsControlCharacterInString(t *testing.T) {
	_, err := tokenize(t, "\"a\x01b\"")
	if err == nil {
		t.Fatal("expected error for control character in string")
	}
}

func TestLexerRejectsUnterminatedString(t *testing.T) {
	_, err := tokenize(t, `"unterminated`)
	if err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestLexerPositionTracking(t *testing.T) {
	lex := NewLexer("a\nb")
	first := lex.Current()
	if first.Pos.Line != 1 || first.Pos.Column != 1 {
		t.Fatalf("expected first token at 1:1, got %s", first.Pos)
	}
	lex.Advance()
	second := lex.Current()
	if second.Pos.Line != 2 || second.Pos.Column != 1 {
		t.Fatalf("expected second token at 2:1, got %s", second.Pos)
	}
}
