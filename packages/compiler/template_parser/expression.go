package template_parser

import (
	"regexp"
	"strings"

	"dtc-go/packages/compiler/expressions"
	"dtc-go/packages/compiler/templates"
	"dtc-go/packages/compiler/util"
)

var (
	blockRegexp = regexp.MustCompile(`^(if|unless|else if|each|with)\s+([\s\S]+?)(?:\s+as\s+(\S+))?$`)
	valueRegexp = regexp.MustCompile(`^(?:(view|unbound|bound|unescaped)\s+)?([\s\S]*)`)
)

// CreateExpression classifies an expression body and parses its path.
//
// Block starts and `else if` take a keyword, a path and an optional
// `as #alias`. The bare words `else`, `unbound` and `bound` set the block
// type without a path. A body starting with `/` ends a block; `{{/}}` ends
// any block. Anything else is a value expression with any number of leading
// `view`, `unbound`, `bound` or `unescaped` keywords. Repeated bind keywords
// are not rejected: the last one wins.
func (p *Parser) CreateExpression(source string) (expressions.Expression, error) {
	source = strings.TrimSpace(source)
	meta := expressions.NewExpressionMeta(source)

	var path string
	if match := blockRegexp.FindStringSubmatch(source); match != nil {
		meta.BlockType = match[1]
		path = match[2]
		meta.As = match[3]
	} else if source == "else" || source == "unbound" || source == "bound" {
		meta.BlockType = source
	} else if strings.HasPrefix(source, "/") {
		meta.IsEnd = true
		meta.BlockType = strings.TrimSpace(source[1:])
		if meta.BlockType == "" {
			meta.BlockType = "end"
		}
	} else {
		path = source
		for {
			match := valueRegexp.FindStringSubmatch(path)
			keyword := match[1]
			path = match[2]
			if keyword == "" {
				break
			}
			switch keyword {
			case "unescaped":
				meta.Unescaped = true
			case "unbound", "bound":
				meta.BindType = keyword
			default:
				meta.ValueType = keyword
			}
		}
	}

	var expr expressions.Expression
	if path == "" {
		expr = expressions.NewEmptyExpression()
	} else {
		var err error
		expr, err = p.config.Grammar.ParsePath(path)
		if err != nil {
			return nil, util.AppendErrorMessage(err, "\n\nWithin expression: "+source)
		}
	}
	expr.SetMeta(meta)
	return expr, nil
}

func (s *parseState) parseTextLiteral(data string) error {
	s.node.push(templates.NewText(data))
	return nil
}

func (s *parseState) parseTextExpression(expr expressions.Expression) error {
	meta := expr.Meta()
	switch {
	case meta.BlockType != "":
		return s.parseBlockExpression(expr)
	case meta.ValueType == "view":
		return s.parseViewExpression(expr)
	default:
		s.node.push(templates.NewDynamicText(expr))
		return nil
	}
}

func unexpected(source string) error {
	return util.Errorf(util.ErrorKindStructural, "Error parsing template: %s", source)
}
