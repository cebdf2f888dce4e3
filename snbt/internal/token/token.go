package token

import (
	"errors"
	"strings"
)

type Type int

const (
	LBrace Type = iota
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Semicolon
	String
	Literal
)

func (t Type) String() string {
	switch t {
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case LBracket:
		return "'['"
	case RBracket:
		return "']'"
	case Comma:
		return "','"
	case Colon:
		return "':'"
	case Semicolon:
		return "';'"
	case String:
		return "string"
	case Literal:
		return "literal"
	}
	return "unknown"
}

// Token is one lexical element of SNBT input. Offset is the byte position of
// the token's first character; quoted strings carry their unescaped value.
type Token struct {
	Value  string
	Type   Type
	Offset int
}

// ErrUnterminated is returned for a quoted string with no closing quote.
var ErrUnterminated = errors.New("unterminated quoted string")

// Tokenize splits SNBT input into tokens. Unquoted runs of letters, digits
// and number punctuation become Literal tokens; classification into numbers
// and bare strings is the parser's job.
func Tokenize(input string) ([]Token, error) {
	var tokens []Token

	for i := 0; i < len(input); i++ {
		c := input[i]

		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			tokens = append(tokens, Token{"{", LBrace, i})
			continue
		case '}':
			tokens = append(tokens, Token{"}", RBrace, i})
			continue
		case '[':
			tokens = append(tokens, Token{"[", LBracket, i})
			continue
		case ']':
			tokens = append(tokens, Token{"]", RBracket, i})
			continue
		case ',':
			tokens = append(tokens, Token{",", Comma, i})
			continue
		case ':':
			tokens = append(tokens, Token{":", Colon, i})
			continue
		case ';':
			tokens = append(tokens, Token{";", Semicolon, i})
			continue
		}

		// Quoted string, single or double
		if c == '"' || c == '\'' {
			quote := c
			start := i
			var b strings.Builder
			i++
			for {
				if i >= len(input) {
					return nil, ErrUnterminated
				}
				if input[i] == quote {
					break
				}
				if input[i] == '\\' && i+1 < len(input) {
					i++
				}
				b.WriteByte(input[i])
				i++
			}
			tokens = append(tokens, Token{b.String(), String, start})
			continue
		}

		// Unquoted literal
		start := i
		for i < len(input) && isLiteralChar(input[i]) {
			i++
		}
		if i == start {
			return nil, errors.New("unexpected character " + string(c))
		}
		tokens = append(tokens, Token{input[start:i], Literal, start})
		i--
	}

	return tokens, nil
}

func isLiteralChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_' || c == '-' || c == '.' || c == '+':
		return true
	}
	return false
}
