package template_parser

import (
	"strings"

	"dtc-go/packages/compiler/util"
)

// ScanText splits data into literal spans and `{{ }}` expression bodies,
// calling onLiteral and onExpression in source order. Expression bodies may
// contain balanced braces. Empty literal spans and empty bodies are skipped.
func ScanText(data string, onLiteral func(string) error, onExpression func(string) error) error {
	current := data
	last := ""
	for started := false; current != ""; started = true {
		if started && current == last {
			return util.Errorf(util.ErrorKindLexical, "Error parsing template text: %s", data)
		}
		last = current

		start := strings.Index(current, "{{")
		if start == -1 {
			return onLiteral(current)
		}

		end := matchBraces(current, 2, start, '{', '}')
		if end == -1 {
			return util.Errorf(util.ErrorKindLexical, "Mismatched braces in: %s", data)
		}

		if start > 0 {
			if err := onLiteral(current[:start]); err != nil {
				return err
			}
		}

		if inside := current[start+2 : end-2]; inside != "" {
			if err := onExpression(inside); err != nil {
				return err
			}
		}

		current = current[end:]
	}
	return nil
}

// matchBraces returns the index just past the close of num open characters
// starting at i, or -1 when they are never balanced
func matchBraces(text string, num, i int, openChar, closeChar byte) int {
	i += num
	for num > 0 {
		closeIndex := indexFrom(text, closeChar, i)
		openIndex := indexFrom(text, openChar, i)
		hasClose := closeIndex != -1
		hasOpen := openIndex != -1
		switch {
		case hasClose && (!hasOpen || closeIndex < openIndex):
			i = closeIndex + 1
			num--
		case hasOpen:
			i = openIndex + 1
			num++
		default:
			return -1
		}
	}
	return i
}

func indexFrom(text string, c byte, from int) int {
	if from >= len(text) {
		return -1
	}
	i := strings.IndexByte(text[from:], c)
	if i == -1 {
		return -1
	}
	return from + i
}

func (s *parseState) parseText(data string) error {
	return ScanText(data, s.parseTextLiteral, func(inside string) error {
		expr, err := s.parser.CreateExpression(inside)
		if err != nil {
			return err
		}
		return s.parseTextExpression(expr)
	})
}
