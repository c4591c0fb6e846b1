package expressions

import (
	"maps"
	"slices"
	"strconv"

	"dtc-go/packages/compiler/core"
	"dtc-go/packages/compiler/util"
)

// Grammar turns an expression path string into an Expression
type Grammar interface {
	ParsePath(source string) (Expression, error)
}

// Parser parses expression paths
type Parser struct {
	lexer *Lexer
}

// NewParser creates a new Parser
func NewParser(lexer *Lexer) *Parser {
	return &Parser{lexer: lexer}
}

var defaultParser = NewParser(NewLexer())

// ParsePath parses source with the default parser
func ParsePath(source string) (Expression, error) {
	return defaultParser.ParsePath(source)
}

// ParsePath parses a complete expression. Trailing input is an error.
func (p *Parser) ParsePath(source string) (Expression, error) {
	ast := &parseAST{
		input:  source,
		tokens: p.lexer.Tokenize(source),
	}
	expr, err := ast.parseSequence()
	if err != nil {
		return nil, err
	}
	if !ast.atEOF() {
		return nil, ast.error("Unexpected token '" + ast.next().String() + "'")
	}
	return expr, nil
}

var eofToken = NewToken(-1, -1, TokenTypeCharacter, 0, "")

type parseAST struct {
	input  string
	tokens []*Token
	index  int
}

func (p *parseAST) peek(offset int) *Token {
	i := p.index + offset
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	return eofToken
}

func (p *parseAST) next() *Token {
	return p.peek(0)
}

func (p *parseAST) atEOF() bool {
	return p.index >= len(p.tokens)
}

func (p *parseAST) inputIndex() int {
	if p.atEOF() {
		return len(p.input)
	}
	return p.next().Index
}

func (p *parseAST) advance() {
	p.index++
}

func (p *parseAST) consumeOptionalCharacter(code int) bool {
	if p.next().IsCharacter(code) {
		p.advance()
		return true
	}
	return false
}

func (p *parseAST) consumeOptionalOperator(op string) bool {
	if p.next().IsOperator(op) {
		p.advance()
		return true
	}
	return false
}

func (p *parseAST) expectCharacter(code int) error {
	if p.consumeOptionalCharacter(code) {
		return nil
	}
	return p.error("Missing expected " + string(rune(code)))
}

func (p *parseAST) error(message string) error {
	location := "the end of the expression"
	if !p.atEOF() {
		location = "column " + strconv.Itoa(p.inputIndex()+1)
	}
	return util.Errorf(util.ErrorKindGrammar, "Parser Error: %s at %s in [%s]", message, location, p.input)
}

func (p *parseAST) parseSequence() (Expression, error) {
	first, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	if !p.next().IsCharacter(core.CharCOMMA) {
		return first, nil
	}
	args := []Expression{first}
	for p.consumeOptionalCharacter(core.CharCOMMA) {
		arg, err := p.parseConditional()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return NewSequenceExpression(args), nil
}

func (p *parseAST) parseConditional() (Expression, error) {
	result, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if !p.consumeOptionalOperator("?") {
		return result, nil
	}
	yes, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	if err := p.expectCharacter(core.CharCOLON); err != nil {
		return nil, err
	}
	no, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	return NewOperatorExpression("?:", []Expression{result, yes, no}), nil
}

// binaryLevels lists binary operators from the loosest to the tightest binding
var binaryLevels = [][]string{
	{"||"},
	{"&&"},
	{"==", "!=", "===", "!=="},
	{"<", ">", "<=", ">="},
	{"+", "-"},
	{"*", "/", "%"},
}

func (p *parseAST) parseLogicalOr() (Expression, error) {
	return p.parseBinary(0)
}

func (p *parseAST) parseBinary(level int) (Expression, error) {
	if level == len(binaryLevels) {
		return p.parsePrefix()
	}
	result, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		operator := p.matchOperator(binaryLevels[level])
		if operator == "" {
			return result, nil
		}
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		result = NewOperatorExpression(operator, []Expression{result, right})
	}
}

func (p *parseAST) matchOperator(operators []string) string {
	for _, op := range operators {
		if p.consumeOptionalOperator(op) {
			return op
		}
	}
	return ""
}

func (p *parseAST) parsePrefix() (Expression, error) {
	tok := p.next()
	if tok.Type == TokenTypeOperator {
		switch tok.StrValue {
		case "!", "+", "-":
			p.advance()
			arg, err := p.parsePrefix()
			if err != nil {
				return nil, err
			}
			if literal, ok := arg.(*LiteralExpression); ok {
				if n, ok := literal.Value.(float64); ok && tok.StrValue != "!" {
					if tok.StrValue == "-" {
						n = -n
					}
					return NewLiteralExpression(n), nil
				}
			}
			return NewOperatorExpression(tok.StrValue, []Expression{arg}), nil
		}
	}
	return p.parseCallChain()
}

func (p *parseAST) parseCallChain() (Expression, error) {
	result, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.consumeOptionalCharacter(core.CharPERIOD):
			name := p.next()
			if name.Type != TokenTypeIdentifier && name.Type != TokenTypeKeyword {
				return nil, p.error("Expected identifier for property access")
			}
			p.advance()
			result, err = p.extendPath(result, name.StrValue)
			if err != nil {
				return nil, err
			}
		case p.consumeOptionalCharacter(core.CharLBRACKET):
			inside, err := p.parseSequence()
			if err != nil {
				return nil, err
			}
			if err := p.expectCharacter(core.CharRBRACKET); err != nil {
				return nil, err
			}
			result = NewBracketsExpression(result, inside, nil)
		case p.next().IsCharacter(core.CharLPAREN):
			path, ok := result.(*PathExpression)
			if !ok {
				return nil, p.error("Only named functions can be called")
			}
			p.advance()
			args, err := p.parseExpressionList(core.CharRPAREN)
			if err != nil {
				return nil, err
			}
			result = NewFnExpression(path.Segments, args, nil)
		default:
			return result, nil
		}
	}
}

func (p *parseAST) extendPath(receiver Expression, name string) (Expression, error) {
	switch expr := receiver.(type) {
	case *PathExpression:
		expr.Segments = append(expr.Segments, name)
	case *RelativePathExpression:
		expr.Segments = append(expr.Segments, name)
	case *AliasPathExpression:
		expr.Segments = append(expr.Segments, name)
	case *AttributePathExpression:
		expr.Segments = append(expr.Segments, name)
	case *BracketsExpression:
		expr.AfterSegments = append(expr.AfterSegments, name)
	case *FnExpression:
		expr.AfterSegments = append(expr.AfterSegments, name)
	default:
		return nil, p.error("Unexpected property access '" + name + "'")
	}
	return receiver, nil
}

func (p *parseAST) parsePrimary() (Expression, error) {
	tok := p.next()
	switch {
	case p.atEOF():
		return nil, p.error("Unexpected end of expression")
	case tok.IsError():
		return nil, util.NewParseError(util.ErrorKindGrammar, tok.StrValue)
	case tok.IsCharacter(core.CharLPAREN):
		p.advance()
		result, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		if err := p.expectCharacter(core.CharRPAREN); err != nil {
			return nil, err
		}
		return result, nil
	case tok.IsCharacter(core.CharLBRACKET):
		p.advance()
		items, err := p.parseExpressionList(core.CharRBRACKET)
		if err != nil {
			return nil, err
		}
		return foldArray(items), nil
	case tok.IsCharacter(core.CharLBRACE):
		return p.parseLiteralMap()
	case tok.IsKeyword("true"):
		p.advance()
		return NewLiteralExpression(true), nil
	case tok.IsKeyword("false"):
		p.advance()
		return NewLiteralExpression(false), nil
	case tok.IsKeyword("null"), tok.IsKeyword("undefined"):
		p.advance()
		return NewLiteralExpression(nil), nil
	case tok.IsKeyword("this"):
		p.advance()
		return NewRelativePathExpression(nil), nil
	case tok.Type == TokenTypeIdentifier:
		p.advance()
		return NewPathExpression([]string{tok.StrValue}), nil
	case tok.Type == TokenTypeAlias:
		p.advance()
		return NewAliasPathExpression(tok.StrValue, nil), nil
	case tok.Type == TokenTypeAttribute:
		p.advance()
		return NewAttributePathExpression(tok.StrValue, nil), nil
	case tok.Type == TokenTypeNumber:
		p.advance()
		return NewLiteralExpression(tok.NumValue), nil
	case tok.Type == TokenTypeString:
		p.advance()
		return NewLiteralExpression(tok.StrValue), nil
	default:
		return nil, p.error("Unexpected token '" + tok.String() + "'")
	}
}

func (p *parseAST) parseExpressionList(terminator int) ([]Expression, error) {
	var result []Expression
	if p.consumeOptionalCharacter(terminator) {
		return result, nil
	}
	for {
		expr, err := p.parseConditional()
		if err != nil {
			return nil, err
		}
		result = append(result, expr)
		if !p.consumeOptionalCharacter(core.CharCOMMA) {
			break
		}
	}
	if err := p.expectCharacter(terminator); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *parseAST) parseLiteralMap() (Expression, error) {
	if err := p.expectCharacter(core.CharLBRACE); err != nil {
		return nil, err
	}
	var keys []string
	var values []Expression
	if !p.consumeOptionalCharacter(core.CharRBRACE) {
		for {
			key := p.next()
			switch key.Type {
			case TokenTypeIdentifier, TokenTypeKeyword, TokenTypeString, TokenTypeNumber:
				p.advance()
			default:
				return nil, p.error("Expected identifier, keyword, or string as object key")
			}
			if err := p.expectCharacter(core.CharCOLON); err != nil {
				return nil, err
			}
			value, err := p.parseConditional()
			if err != nil {
				return nil, err
			}
			keys = append(keys, key.String())
			values = append(values, value)
			if !p.consumeOptionalCharacter(core.CharCOMMA) {
				break
			}
		}
		if err := p.expectCharacter(core.CharRBRACE); err != nil {
			return nil, err
		}
	}
	return foldObject(keys, values), nil
}

func foldArray(items []Expression) Expression {
	values := make([]any, 0, len(items))
	for _, item := range items {
		literal, ok := item.(*LiteralExpression)
		if !ok {
			return NewOperatorExpression("[]", items)
		}
		values = append(values, literal.Value)
	}
	return NewLiteralExpression(values)
}

func foldObject(keys []string, values []Expression) Expression {
	object := make(map[string]any, len(keys))
	literal := true
	for i, value := range values {
		lit, ok := value.(*LiteralExpression)
		if !ok {
			literal = false
			break
		}
		object[keys[i]] = lit.Value
	}
	if literal {
		return NewLiteralExpression(object)
	}
	args := make([]Expression, 0, len(keys)*2)
	for i, key := range keys {
		args = append(args, NewLiteralExpression(key), values[i])
	}
	return NewOperatorExpression("{}", args)
}

// SortedKeys returns the keys of a literal object in a stable order
func SortedKeys(object map[string]any) []string {
	return slices.Sorted(maps.Keys(object))
}
