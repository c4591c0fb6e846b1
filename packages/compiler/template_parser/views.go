package template_parser

import (
	"dtc-go/packages/compiler/expressions"
	"dtc-go/packages/compiler/templates"
	"dtc-go/packages/compiler/util"
)

// parseViewElement converts a closed <view> element into a view pointer. A
// literal name is resolved now; a dynamic name is left to the renderer.
func (s *parseState) parseViewElement(element *templates.Element) error {
	var nameAttribute templates.AttributeValue
	if element.Attributes != nil {
		nameAttribute, _ = element.Attributes.Get("name")
	}
	if nameAttribute == nil {
		return util.Errorf(util.ErrorKindStructural, "The <view> element requires a name attribute")
	}
	element.Attributes.Delete("name")

	switch name := nameAttribute.(type) {
	case *templates.DynamicAttribute:
		viewAttributes := viewAttributesFromElement(element)
		hooks, err := s.componentHooks(viewAttributes)
		if err != nil {
			return err
		}
		pointer := templates.NewDynamicViewPointer(name, viewAttributes, hooks)
		s.finishParseViewElement(viewAttributes, element.Content, pointer)
		return nil
	case *templates.Attribute:
		literal, ok := name.String()
		if !ok {
			return util.Errorf(util.ErrorKindStructural, "The <view> element requires a name attribute")
		}
		view, err := s.findView(literal)
		if err != nil {
			return err
		}
		return s.parseNamedViewElement(element, view)
	}
	return unexpected(element.TagName)
}

func (s *parseState) findView(name string) (*templates.View, error) {
	var view *templates.View
	if s.view != nil && s.view.Views != nil {
		view = s.view.Views.Find(name, s.view.At)
	}
	if view == nil {
		return nil, util.Errorf(util.ErrorKindResolution, "No view found for %q", name)
	}
	return view, nil
}

func (s *parseState) parseNamedViewElement(element *templates.Element, view *templates.View) error {
	viewAttributes := viewAttributesFromElement(element)
	hooks, err := s.componentHooks(viewAttributes)
	if err != nil {
		return err
	}
	remaining, err := parseContentAttributes(element.Content, view, viewAttributes)
	if err != nil {
		return err
	}
	pointer := templates.NewViewPointer(view.Name, viewAttributes, hooks, view)
	s.finishParseViewElement(viewAttributes, remaining, pointer)
	return nil
}

func (s *parseState) finishParseViewElement(viewAttributes *templates.ViewAttributes, remaining []templates.Node, pointer templates.Node) {
	if !viewAttributes.Has("content") && len(remaining) > 0 {
		viewAttributes.Set("content", templates.NewParentWrapper(templates.NewTemplate(remaining), nil))
	}
	s.node.push(pointer)
}

// viewAttributesFromElement camelCases the element's attribute names.
// Dynamic values are wrapped so they render against the parent scope.
func viewAttributesFromElement(element *templates.Element) *templates.ViewAttributes {
	viewAttributes := templates.NewViewAttributes()
	if element.Attributes == nil {
		return viewAttributes
	}
	for _, key := range element.Attributes.Keys() {
		value, _ := element.Attributes.Get(key)
		name := util.DashToCamelCase(key)
		switch attr := value.(type) {
		case *templates.DynamicAttribute:
			if attr.Template != nil {
				viewAttributes.Set(name, templates.NewParentWrapper(attr.Template, nil))
			} else {
				viewAttributes.Set(name, templates.NewParentWrapper(templates.NewDynamicText(attr.Expression), attr.Expression))
			}
		case *templates.Attribute:
			viewAttributes.Set(name, templates.NewLiteralValue(attr.Data))
		}
	}
	return viewAttributes
}

// parseContentAttributes splits a view element's content into attribute
// and array sub-elements and the remaining body content.
func parseContentAttributes(content []templates.Node, view *templates.View, viewAttributes *templates.ViewAttributes) ([]templates.Node, error) {
	var remaining []templates.Node
	for _, item := range content {
		element, ok := item.(*templates.Element)
		if !ok {
			remaining = append(remaining, item)
			continue
		}
		switch tagName := element.TagName; {
		case tagName == "attribute":
			name, err := parseNameAttribute(element)
			if err != nil {
				return nil, err
			}
			parseAttributeElement(element, name, viewAttributes)
		case view.IsAttribute(tagName):
			parseAttributeElement(element, tagName, viewAttributes)
		case tagName == "array":
			name, err := parseNameAttribute(element)
			if err != nil {
				return nil, err
			}
			if err := parseArrayElement(element, name, viewAttributes); err != nil {
				return nil, err
			}
		default:
			name, isArray := view.ArrayAttribute(tagName)
			if !isArray {
				remaining = append(remaining, item)
				continue
			}
			if err := parseArrayElement(element, name, viewAttributes); err != nil {
				return nil, err
			}
		}
	}
	return remaining, nil
}

func parseNameAttribute(element *templates.Element) (string, error) {
	var name string
	if element.Attributes != nil {
		if value, ok := element.Attributes.Get("name"); ok {
			if attr, isLiteral := value.(*templates.Attribute); isLiteral {
				name, _ = attr.String()
			}
		}
	}
	if name == "" {
		return "", util.Errorf(util.ErrorKindStructural, "The <%s> element requires a literal name attribute", element.TagName)
	}
	element.Attributes.Delete("name")
	return name, nil
}

func parseAttributeElement(element *templates.Element, name string, viewAttributes *templates.ViewAttributes) {
	content := element.Content
	if content == nil {
		content = []templates.Node{}
	}
	viewAttributes.Set(name, templates.NewParentWrapper(templates.NewTemplate(content), nil))
}

func parseArrayElement(element *templates.Element, name string, viewAttributes *templates.ViewAttributes) error {
	item := viewAttributesFromElement(element)
	if !item.Has("content") && len(element.Content) > 0 {
		item.Set("content", templates.NewParentWrapper(templates.NewTemplate(element.Content), nil))
	}
	existing, ok := viewAttributes.Get(name)
	if !ok {
		array := templates.NewAttributeArray()
		array.Append(item)
		viewAttributes.Set(name, array)
		return nil
	}
	array, ok := existing.(*templates.AttributeArray)
	if !ok {
		return util.Errorf(util.ErrorKindStructural, "Error parsing %s attribute: <%s> entries conflict with a non-array value", name, element.TagName)
	}
	array.Append(item)
	return nil
}

// parseViewExpression handles `{{view name, {attrs}}}`. The name and the
// attribute object arrive as the first two members of a sequence.
func (s *parseState) parseViewExpression(expr expressions.Expression) error {
	nameExpression := expr
	var attributesExpression expressions.Expression
	if sequence, ok := expr.(*expressions.SequenceExpression); ok {
		nameExpression = sequence.Args[0]
		if len(sequence.Args) > 1 {
			attributesExpression = sequence.Args[1]
		}
	}

	viewAttributes, err := attributesFromExpression(attributesExpression, expr.Meta().Source)
	if err != nil {
		return err
	}
	hooks, err := s.componentHooks(viewAttributes)
	if err != nil {
		return err
	}

	literal, ok := nameExpression.(*expressions.LiteralExpression)
	if !ok {
		s.node.push(templates.NewDynamicViewPointer(templates.NewDynamicAttribute(nameExpression), viewAttributes, hooks))
		return nil
	}
	name, ok := literal.Get().(string)
	if !ok {
		return unexpected(expr.Meta().Source)
	}
	view, err := s.findView(name)
	if err != nil {
		return err
	}
	s.node.push(templates.NewViewPointer(view.Name, viewAttributes, hooks, view))
	return nil
}

func attributesFromExpression(expr expressions.Expression, source string) (*templates.ViewAttributes, error) {
	if expr == nil {
		return nil, nil
	}
	keys, values, err := objectFromObjectExpression(expr, source)
	if err != nil {
		return nil, err
	}
	viewAttributes := templates.NewViewAttributes()
	for i, key := range keys {
		if literal, ok := values[i].(*expressions.LiteralExpression); ok {
			viewAttributes.Set(key, templates.NewLiteralValue(literal.Get()))
			continue
		}
		viewAttributes.Set(key, templates.NewParentWrapper(templates.NewDynamicText(values[i]), nil))
	}
	return viewAttributes, nil
}
