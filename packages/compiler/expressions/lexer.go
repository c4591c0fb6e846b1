package expressions

import (
	"strconv"
	"strings"

	"dtc-go/packages/compiler/core"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenTypeCharacter TokenType = iota
	TokenTypeIdentifier
	TokenTypeAlias
	TokenTypeAttribute
	TokenTypeKeyword
	TokenTypeString
	TokenTypeOperator
	TokenTypeNumber
	TokenTypeError
)

var keywords = []string{
	"null",
	"undefined",
	"true",
	"false",
	"this",
}

// Token represents a token in the expression
type Token struct {
	Index    int
	End      int
	Type     TokenType
	NumValue float64
	StrValue string
}

// NewToken creates a new Token
func NewToken(index, end int, typ TokenType, numValue float64, strValue string) *Token {
	return &Token{
		Index:    index,
		End:      end,
		Type:     typ,
		NumValue: numValue,
		StrValue: strValue,
	}
}

// IsCharacter checks if the token is a character with the given code
func (t *Token) IsCharacter(code int) bool {
	return t.Type == TokenTypeCharacter && int(t.NumValue) == code
}

// IsOperator checks if the token is an operator with the given value
func (t *Token) IsOperator(operator string) bool {
	return t.Type == TokenTypeOperator && t.StrValue == operator
}

// IsKeyword checks if the token is the given keyword
func (t *Token) IsKeyword(keyword string) bool {
	return t.Type == TokenTypeKeyword && t.StrValue == keyword
}

// IsError checks if the token is an error
func (t *Token) IsError() bool {
	return t.Type == TokenTypeError
}

// String returns the string representation of the token
func (t *Token) String() string {
	switch t.Type {
	case TokenTypeNumber:
		return strconv.FormatFloat(t.NumValue, 'f', -1, 64)
	default:
		return t.StrValue
	}
}

// Lexer tokenizes expressions
type Lexer struct{}

// NewLexer creates a new Lexer
func NewLexer() *Lexer {
	return &Lexer{}
}

// Tokenize tokenizes the given text. Lexing problems are reported as
// TokenTypeError tokens in the returned slice.
func (l *Lexer) Tokenize(text string) []*Token {
	s := newScanner(text)
	return s.scan()
}

type scanner struct {
	input  string
	length int
	peek   int
	index  int
	tokens []*Token
}

func newScanner(input string) *scanner {
	s := &scanner{
		input:  input,
		length: len(input),
		index:  -1,
	}
	s.advance()
	return s
}

func (s *scanner) advance() {
	s.index++
	if s.index >= s.length {
		s.peek = core.CharEOF
	} else {
		s.peek = int(s.input[s.index])
	}
}

func (s *scanner) scan() []*Token {
	token := s.scanToken()
	for token != nil {
		s.tokens = append(s.tokens, token)
		if token.IsError() {
			break
		}
		token = s.scanToken()
	}
	return s.tokens
}

func (s *scanner) scanToken() *Token {
	for s.index < s.length && core.IsWhitespace(s.peek) {
		s.advance()
	}
	if s.index >= s.length {
		return nil
	}

	if core.IsIdentifierStart(s.peek) {
		return s.scanIdentifier()
	}
	if core.IsDigit(s.peek) {
		return s.scanNumber(s.index)
	}

	start := s.index
	switch s.peek {
	case core.CharPERIOD:
		s.advance()
		if core.IsDigit(s.peek) {
			return s.scanNumber(start)
		}
		return newCharacterToken(start, s.index, core.CharPERIOD)
	case core.CharLPAREN, core.CharRPAREN, core.CharLBRACKET, core.CharRBRACKET,
		core.CharLBRACE, core.CharRBRACE, core.CharCOMMA, core.CharCOLON:
		code := s.peek
		s.advance()
		return newCharacterToken(start, s.index, code)
	case core.CharSQ, core.CharDQ:
		return s.scanString()
	case core.CharHASH:
		return s.scanPrefixedIdentifier(TokenTypeAlias, "#")
	case core.CharAT:
		return s.scanPrefixedIdentifier(TokenTypeAttribute, "@")
	case core.CharPLUS, core.CharMINUS, core.CharSTAR, core.CharSLASH, core.CharPERCENT, core.CharQUESTION:
		return s.scanOperator(start, string(rune(s.peek)))
	case core.CharLT, core.CharGT:
		return s.scanComplexOperator(start, string(rune(s.peek)), core.CharEQ, "=")
	case core.CharBANG, core.CharEQ:
		return s.scanComplexOperator(start, string(rune(s.peek)), core.CharEQ, "=", core.CharEQ)
	case core.CharAMPERSAND:
		return s.scanComplexOperator(start, "&", core.CharAMPERSAND, "&")
	case core.CharBAR:
		return s.scanComplexOperator(start, "|", core.CharBAR, "|")
	}

	s.advance()
	return s.error("Unexpected character ["+string(s.input[start])+"]", -1)
}

func (s *scanner) scanOperator(start int, str string) *Token {
	s.advance()
	return newOperatorToken(start, s.index, str)
}

func (s *scanner) scanComplexOperator(start int, one string, twoCode int, two string, threeCode ...int) *Token {
	s.advance()
	str := one
	if s.peek == twoCode {
		s.advance()
		str += two
	}
	if len(threeCode) > 0 && s.peek == threeCode[0] {
		s.advance()
		str += string(rune(threeCode[0]))
	}
	return newOperatorToken(start, s.index, str)
}

func (s *scanner) scanIdentifier() *Token {
	start := s.index
	s.advance()
	for core.IsIdentifierPart(s.peek) {
		s.advance()
	}
	str := s.input[start:s.index]
	for _, keyword := range keywords {
		if str == keyword {
			return NewToken(start, s.index, TokenTypeKeyword, 0, str)
		}
	}
	return NewToken(start, s.index, TokenTypeIdentifier, 0, str)
}

// scanPrefixedIdentifier scans `#alias` and `@attribute` tokens. The prefix is
// kept in StrValue for aliases and dropped for attributes.
func (s *scanner) scanPrefixedIdentifier(typ TokenType, prefix string) *Token {
	start := s.index
	s.advance()
	if !core.IsIdentifierStart(s.peek) {
		return s.error("Invalid character ["+prefix+"]", -1)
	}
	for core.IsIdentifierPart(s.peek) {
		s.advance()
	}
	name := s.input[start:s.index]
	if typ == TokenTypeAttribute {
		name = name[1:]
	}
	return NewToken(start, s.index, typ, 0, name)
}

func (s *scanner) scanNumber(start int) *Token {
	simple := s.index == start && s.peek != core.CharPERIOD
	s.advance()
	for {
		if core.IsDigit(s.peek) {
			// Do nothing
		} else if s.peek == core.CharPERIOD {
			simple = false
		} else if s.peek == core.CharE || s.peek == core.CharLowerE {
			s.advance()
			if s.peek == core.CharPLUS || s.peek == core.CharMINUS {
				s.advance()
			}
			if !core.IsDigit(s.peek) {
				return s.error("Invalid exponent", -1)
			}
			simple = false
		} else {
			break
		}
		s.advance()
	}

	str := s.input[start:s.index]
	var value float64
	if simple {
		val, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return s.error("Invalid number ["+str+"]", 0)
		}
		value = float64(val)
	} else {
		val, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return s.error("Invalid number ["+str+"]", 0)
		}
		value = val
	}
	return NewToken(start, s.index, TokenTypeNumber, value, "")
}

func (s *scanner) scanString() *Token {
	start := s.index
	quote := s.peek
	s.advance() // Skip initial quote

	var buffer strings.Builder
	marker := s.index
	for s.peek != quote {
		if s.peek == core.CharBACKSLASH {
			buffer.WriteString(s.input[marker:s.index])
			s.advance()
			if s.index >= s.length {
				return s.error("Unterminated quote", 0)
			}
			buffer.WriteByte(unescape(s.input[s.index]))
			s.advance()
			marker = s.index
		} else if s.index >= s.length {
			return s.error("Unterminated quote", 0)
		} else {
			s.advance()
		}
	}
	buffer.WriteString(s.input[marker:s.index])
	s.advance() // Skip terminating quote
	return NewToken(start, s.index, TokenTypeString, 0, buffer.String())
}

func (s *scanner) error(message string, offset int) *Token {
	position := s.index + offset
	return NewToken(
		position,
		s.index,
		TokenTypeError,
		0,
		"Lexer Error: "+message+" at column "+strconv.Itoa(position)+" in expression ["+s.input+"]",
	)
}

func newCharacterToken(index, end int, code int) *Token {
	return NewToken(index, end, TokenTypeCharacter, float64(code), string(rune(code)))
}

func newOperatorToken(index, end int, operator string) *Token {
	return NewToken(index, end, TokenTypeOperator, 0, operator)
}

func unescape(code byte) byte {
	switch code {
	case 'n':
		return '\n'
	case 'f':
		return '\f'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'v':
		return '\v'
	default:
		return code
	}
}
