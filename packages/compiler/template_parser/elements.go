package template_parser

import (
	"regexp"
	"strings"

	"dtc-go/packages/compiler/expressions"
	"dtc-go/packages/compiler/ml_parser"
	"dtc-go/packages/compiler/templates"
	"dtc-go/packages/compiler/util"
)

var doctypeRegexp = regexp.MustCompile(`(?i)^<!DOCTYPE\s+([^\s]+)(?:\s+(PUBLIC|SYSTEM)\s+"([^"]+)"(?:\s+"([^"]+)")?)?\s*>`)

// Start opens an element. Void and self-closing elements are finished right
// away; any other element gets a child frame that collects its content.
func (s *parseState) Start(tag, tagName string, attributes []ml_parser.Attribute, selfClosing bool) error {
	attributesMap, err := s.parseAttributes(attributes)
	if err != nil {
		return err
	}
	// Hooks on view elements become component hooks once the element is
	// converted into a view pointer.
	var hooks []templates.Hook
	if !s.isViewTag(tagName) {
		hooks, err = s.elementHooks(attributesMap)
		if err != nil {
			return err
		}
	}

	if selfClosing || ml_parser.IsVoidElement(tagName) {
		element := templates.NewElement(tagName, attributesMap, nil, selfClosing, hooks)
		s.node.push(element)
		return s.parseElementClose(tagName)
	}

	element := templates.NewElement(tagName, attributesMap, nil, false, hooks)
	s.node.push(element)
	s.node = s.node.child(frameElement, tag, func(content []templates.Node) {
		element.Content = content
	})
	return nil
}

// End closes the current element frame. The element that opened it must be
// the last item of the parent frame and carry the same tag name.
func (s *parseState) End(tag, tagName string) error {
	frame := s.node
	if frame.kind != frameElement || frame.parent == nil {
		return mismatchedElementEnd(tag)
	}
	element, ok := frame.parent.last().(*templates.Element)
	if !ok || element.TagName != tagName {
		return mismatchedElementEnd(tag)
	}
	frame.close()
	s.node = frame.parent
	return s.parseElementClose(tagName)
}

func mismatchedElementEnd(tag string) error {
	return util.Errorf(util.ErrorKindStructural, "Mismatched closing HTML tag: %s", tag)
}

// Text scans character data for embedded expressions
func (s *parseState) Text(data string) error {
	return s.parseText(data)
}

// Comment keeps conditional comments and drops everything else
func (s *parseState) Comment(tag, data string) error {
	if !ml_parser.IsConditionalComment(tag) {
		return nil
	}
	s.node.push(templates.NewComment(data))
	return nil
}

// Other accepts a doctype declaration. Any other markup is an error.
func (s *parseState) Other(tag string) error {
	match := doctypeRegexp.FindStringSubmatch(tag)
	if match == nil {
		return unexpected(tag)
	}
	var publicID, systemID string
	switch strings.ToLower(match[2]) {
	case "public":
		publicID = match[3]
		systemID = match[4]
	case "system":
		systemID = match[3]
	}
	s.node.push(templates.NewDoctype(match[1], publicID, systemID))
	return nil
}

// parseElementClose runs once the last pushed element is final. View
// elements are replaced by a view pointer; other elements are handed to the
// observers.
func (s *parseState) parseElementClose(tagName string) error {
	if tagName == "view" {
		element := s.node.pop().(*templates.Element)
		return s.parseViewElement(element)
	}
	if view := s.elementView(tagName); view != nil {
		element := s.node.pop().(*templates.Element)
		return s.parseNamedViewElement(element, view)
	}
	element := s.node.last().(*templates.Element)
	return s.parser.config.Observers.Notify(element)
}

func (s *parseState) elementView(tagName string) *templates.View {
	if s.view == nil || s.view.Views == nil {
		return nil
	}
	return s.view.Views.ElementView(tagName)
}

func (s *parseState) isViewTag(tagName string) bool {
	return tagName == "view" || s.elementView(tagName) != nil
}

// parseAttributes builds the attribute map of a start tag. Each string value
// is scanned in its own frame: a single literal span stays literal, a single
// expression becomes a dynamic attribute (or a literal when the expression
// is constant) and anything else becomes a dynamic sub-template.
func (s *parseState) parseAttributes(attributes []ml_parser.Attribute) (*templates.AttributesMap, error) {
	if len(attributes) == 0 {
		return nil, nil
	}
	attributesMap := templates.NewAttributesMap()
	for _, attr := range attributes {
		value, ok := attr.Value.(string)
		if !ok || value == "" {
			attributesMap.Set(attr.Name, templates.NewAttribute(attr.Value))
			continue
		}

		parent := s.node
		frame := parent.child(frameAttribute, attr.Name, nil)
		s.node = frame
		if err := s.parseText(value); err != nil {
			return nil, err
		}
		if s.node != frame {
			return nil, s.node.unclosedError()
		}
		s.node = parent

		switch content := frame.content; len(content) {
		case 0:
			return nil, util.Errorf(util.ErrorKindStructural, "Error parsing %s attribute: %s", attr.Name, value)
		case 1:
			attributesMap.Set(attr.Name, attributeFromNode(content[0]))
		default:
			attributesMap.Set(attr.Name, templates.NewDynamicTemplateAttribute(templates.NewTemplate(content)))
		}
	}
	return attributesMap, nil
}

func attributeFromNode(node templates.Node) templates.AttributeValue {
	switch n := node.(type) {
	case *templates.Text:
		return templates.NewAttribute(n.Data)
	case *templates.DynamicText:
		if literal, ok := n.Expression.(*expressions.LiteralExpression); ok {
			return templates.NewAttribute(literal.Get())
		}
		return templates.NewDynamicAttribute(n.Expression)
	default:
		return templates.NewDynamicTemplateAttribute(templates.NewTemplate([]templates.Node{node}))
	}
}
