package ml_parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"dtc-go/packages/compiler/util"
)

// Attribute is a single attribute of a start tag. Value is a string when it
// comes from markup; callers driving a Handler directly may pass any
// literal value, which is used untouched.
type Attribute struct {
	Name  string
	Value any
}

// Handler receives lexical events in source order. Text data and attribute
// values are delivered with character references already decoded. An error
// returned by a handler stops tokenizing and is returned from Tokenize.
type Handler interface {
	Start(tag, tagName string, attributes []Attribute, selfClosing bool) error
	End(tag, tagName string) error
	Text(data string) error
	Comment(tag, data string) error
	Other(tag string) error
}

// Tokenize splits source into HTML lexical events and dispatches them to h.
// Tag and attribute names are lower cased. A repeated attribute on one tag
// is a structural error.
func Tokenize(source string, h Handler) error {
	z := html.NewTokenizer(strings.NewReader(source))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return fmt.Errorf("tokenize template: %w", err)
			}
			return nil
		}
		raw := string(z.Raw())

		var err error
		switch tt {
		case html.TextToken:
			err = h.Text(string(z.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tagName := string(name)
			var attrs []Attribute
			attrs, err = readAttributes(z, tagName, hasAttr)
			if err == nil {
				err = h.Start(raw, tagName, attrs, tt == html.SelfClosingTagToken)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			err = h.End(raw, string(name))
		case html.CommentToken:
			// Processing instructions and CDATA sections are tokenized as
			// bogus comments.
			if strings.HasPrefix(raw, "<!--") {
				err = h.Comment(raw, string(z.Text()))
			} else {
				err = h.Other(raw)
			}
		case html.DoctypeToken:
			err = h.Other(raw)
		}
		if err != nil {
			return err
		}
	}
}

func readAttributes(z *html.Tokenizer, tagName string, hasAttr bool) ([]Attribute, error) {
	var attrs []Attribute
	seen := map[string]bool{}
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		name := string(key)
		if seen[name] {
			return nil, util.Errorf(util.ErrorKindStructural, "Duplicate attribute %q on <%s>", name, tagName)
		}
		seen[name] = true
		attrs = append(attrs, Attribute{Name: name, Value: string(val)})
	}
	return attrs, nil
}
