package koda

import "fmt"

// Default resource bounds for parsing.
const (
	DefaultMaxDepth    = 256
	DefaultMaxInputLen = 1000000
)

// Parser recursively assembles a Value from a Lexer's token stream
// under bounded recursion.
type Parser struct {
	lex      *Lexer
	maxDepth int
}

// Parse parses text into a Value using the default bounds.
func Parse(text string) (Value, error) {
	return ParseBounded(text, DefaultMaxDepth, DefaultMaxInputLen)
}

// ParseBounded parses text into a Value, rejecting input over
// maxInputLen before lexing and nesting over maxDepth during parsing.
func ParseBounded(text string, maxDepth, maxInputLen int) (Value, error) {
	if len(text) > maxInputLen {
		return Value{}, &SizeError{Message: fmt.Sprintf("input exceeds maximum length of %d bytes", maxInputLen)}
	}

	p := &Parser{lex: NewLexer(text), maxDepth: maxDepth}
	if err := p.lex.Err(); err != nil {
		return Value{}, err
	}

	v, err := p.parseDocument()
	if err != nil {
		return Value{}, err
	}
	if p.lex.Current().Type != TokenEOF {
		return Value{}, &ParseError{Message: "expected end of input", Pos: p.lex.Current().Pos}
	}
	if err := p.lex.Err(); err != nil {
		return Value{}, err
	}
	return v, nil
}

// parseDocument disambiguates the two document shapes: a single bare
// string/identifier value versus a brace-less implicit-root object.
// The lookahead is a value-copy snapshot of the lexer (cheap: Lexer
// holds only the input string, an offset, line/column counters, the
// current token and any error), not a buffered token queue.
func (p *Parser) parseDocument() (Value, error) {
	tok := p.lex.Current()
	if tok.Type == TokenIdentifier || tok.Type == TokenString {
		snapshot := *p.lex
		snapshot.Advance()
		if snapshot.Current().Type != TokenEOF {
			return p.parseImplicitRootObject()
		}
	}
	return p.parseValue(0)
}

// parseImplicitRootObject parses a brace-less "key value ..." sequence
// that runs to end-of-input.
func (p *Parser) parseImplicitRootObject() (Value, error) {
	var entries []Entry
	for p.lex.Current().Type == TokenIdentifier || p.lex.Current().Type == TokenString {
		keyPos := p.lex.Current().Pos
		entry, err := p.parseEntry(0)
		if err != nil {
			return Value{}, err
		}
		if err := checkDuplicate(entries, entry.Key, keyPos); err != nil {
			return Value{}, err
		}
		entries = append(entries, entry)
		if p.lex.Current().Type == TokenComma {
			p.lex.Advance()
			if err := p.lex.Err(); err != nil {
				return Value{}, err
			}
		}
	}
	return Object(entries...), nil
}

// parseValue parses any value at the given nesting depth.
func (p *Parser) parseValue(depth int) (Value, error) {
	if depth > p.maxDepth {
		return Value{}, &DepthError{Message: "maximum nesting depth exceeded"}
	}
	tok := p.lex.Current()
	switch tok.Type {
	case TokenLBrace:
		return p.parseObject(depth)
	case TokenLBracket:
		return p.parseArray(depth)
	case TokenString:
		p.lex.Advance()
		return String(tok.Text), p.lex.Err()
	case TokenIdentifier:
		p.lex.Advance()
		return String(tok.Text), p.lex.Err()
	case TokenInteger:
		p.lex.Advance()
		return Int(tok.Int), p.lex.Err()
	case TokenFloat:
		p.lex.Advance()
		return Float(tok.Float), p.lex.Err()
	case TokenTrue:
		p.lex.Advance()
		return Bool(true), p.lex.Err()
	case TokenFalse:
		p.lex.Advance()
		return Bool(false), p.lex.Err()
	case TokenNull:
		p.lex.Advance()
		return Null(), p.lex.Err()
	default:
		return Value{}, &ParseError{Message: "unexpected token", Pos: tok.Pos}
	}
}

// parseObject parses a brace-delimited object body.
func (p *Parser) parseObject(depth int) (Value, error) {
	p.lex.Advance() // consume {
	if err := p.lex.Err(); err != nil {
		return Value{}, err
	}

	var entries []Entry
	for p.lex.Current().Type != TokenRBrace {
		if p.lex.Current().Type == TokenEOF {
			return Value{}, &ParseError{Message: "unterminated object", Pos: p.lex.Current().Pos}
		}
		keyPos := p.lex.Current().Pos
		entry, err := p.parseEntry(depth)
		if err != nil {
			return Value{}, err
		}
		if err := checkDuplicate(entries, entry.Key, keyPos); err != nil {
			return Value{}, err
		}
		entries = append(entries, entry)
		if p.lex.Current().Type == TokenComma {
			p.lex.Advance()
			if err := p.lex.Err(); err != nil {
				return Value{}, err
			}
		}
	}
	p.lex.Advance() // consume }
	return Object(entries...), p.lex.Err()
}

// parseEntry parses a single "key [:] value" entry, used by both
// braced and implicit-root objects.
func (p *Parser) parseEntry(depth int) (Entry, error) {
	keyTok := p.lex.Current()
	if keyTok.Type != TokenIdentifier && keyTok.Type != TokenString {
		return Entry{}, &ParseError{Message: "expected key", Pos: keyTok.Pos}
	}
	key := keyTok.Text
	p.lex.Advance()
	if err := p.lex.Err(); err != nil {
		return Entry{}, err
	}
	if p.lex.Current().Type == TokenColon {
		p.lex.Advance()
		if err := p.lex.Err(); err != nil {
			return Entry{}, err
		}
	}
	value, err := p.parseValue(depth + 1)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Key: key, Value: value}, nil
}

// checkDuplicate reports a ParseError at keyPos if key already appears
// among entries. The position cited is always the duplicate
// occurrence, not the first.
func checkDuplicate(entries []Entry, key string, keyPos Position) error {
	for _, e := range entries {
		if e.Key == key {
			return &ParseError{Message: fmt.Sprintf("duplicate key %q", key), Pos: keyPos}
		}
	}
	return nil
}

// parseArray parses a bracket-delimited array body.
func (p *Parser) parseArray(depth int) (Value, error) {
	p.lex.Advance() // consume [
	if err := p.lex.Err(); err != nil {
		return Value{}, err
	}

	var elems []Value
	for p.lex.Current().Type != TokenRBracket {
		if p.lex.Current().Type == TokenEOF {
			return Value{}, &ParseError{Message: "unterminated array", Pos: p.lex.Current().Pos}
		}
		elem, err := p.parseValue(depth + 1)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, elem)
		if p.lex.Current().Type == TokenComma {
			p.lex.Advance()
			if err := p.lex.Err(); err != nil {
				return Value{}, err
			}
		}
	}
	p.lex.Advance() // consume ]
	return Array(elems...), p.lex.Err()
}
