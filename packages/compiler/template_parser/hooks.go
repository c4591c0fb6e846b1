package template_parser

import (
	"strings"

	"dtc-go/packages/compiler/expressions"
	"dtc-go/packages/compiler/templates"
	"dtc-go/packages/compiler/util"
)

// elementHooks removes `as` and `on` from an element's attributes and
// returns the hooks they declare.
func (s *parseState) elementHooks(attributes *templates.AttributesMap) ([]templates.Hook, error) {
	if attributes == nil {
		return nil, nil
	}
	var as, on *string
	for _, key := range []string{"as", "on"} {
		value, ok := attributes.Get(key)
		if !ok {
			continue
		}
		data, err := literalHookAttribute(key, value)
		if err != nil {
			return nil, err
		}
		if key == "as" {
			as = &data
		} else {
			on = &data
		}
		attributes.Delete(key)
	}
	return s.createHooks(templates.HookKindElement, as, on)
}

// componentHooks does the same for the attributes of a view pointer
func (s *parseState) componentHooks(attributes *templates.ViewAttributes) ([]templates.Hook, error) {
	if attributes == nil {
		return nil, nil
	}
	var as, on *string
	for _, key := range []string{"as", "on"} {
		value, ok := attributes.Get(key)
		if !ok {
			continue
		}
		literal, isLiteral := value.(*templates.LiteralValue)
		if !isLiteral {
			return nil, invalidHookAttribute(key)
		}
		data, err := literalHookAttribute(key, templates.NewAttribute(literal.Value))
		if err != nil {
			return nil, err
		}
		if key == "as" {
			as = &data
		} else {
			on = &data
		}
		attributes.Delete(key)
	}
	return s.createHooks(templates.HookKindComponent, as, on)
}

func literalHookAttribute(key string, value templates.AttributeValue) (string, error) {
	attr, ok := value.(*templates.Attribute)
	if !ok {
		return "", invalidHookAttribute(key)
	}
	data, ok := attr.String()
	if !ok {
		return "", invalidHookAttribute(key)
	}
	return data, nil
}

func invalidHookAttribute(key string) error {
	return util.Errorf(util.ErrorKindStructural, "The %s attribute requires a literal value", key)
}

func (s *parseState) createHooks(kind templates.HookKind, as, on *string) ([]templates.Hook, error) {
	var hooks []templates.Hook
	if as != nil {
		hooks = append(hooks, templates.NewMarkupAs(strings.Split(*as, ".")))
	}
	if on != nil {
		source := "{" + *on + "}"
		expr, err := s.parser.config.Grammar.ParsePath(source)
		if err != nil {
			return nil, util.AppendErrorMessage(err, "\n\nWithin expression: "+source)
		}
		keys, values, err := objectFromObjectExpression(expr, source)
		if err != nil {
			return nil, err
		}
		for i, name := range keys {
			hooks = append(hooks, templates.NewEventHook(kind, name, values[i]))
		}
	}
	return hooks, nil
}

// objectFromObjectExpression flattens an object literal into its keys and
// value expressions. A constant object yields its entries in key order as
// literal expressions. An object with dynamic members keeps source order.
func objectFromObjectExpression(expr expressions.Expression, source string) ([]string, []expressions.Expression, error) {
	switch e := expr.(type) {
	case *expressions.LiteralExpression:
		object, ok := e.Get().(map[string]any)
		if !ok {
			return nil, nil, unexpected(source)
		}
		keys := expressions.SortedKeys(object)
		values := make([]expressions.Expression, len(keys))
		for i, key := range keys {
			values[i] = expressions.NewLiteralExpression(object[key])
		}
		return keys, values, nil
	case *expressions.OperatorExpression:
		if e.Name != "{}" || len(e.Args)%2 != 0 {
			return nil, nil, unexpected(source)
		}
		keys := make([]string, 0, len(e.Args)/2)
		values := make([]expressions.Expression, 0, len(e.Args)/2)
		for i := 0; i < len(e.Args); i += 2 {
			literal, ok := e.Args[i].(*expressions.LiteralExpression)
			if !ok {
				return nil, nil, unexpected(source)
			}
			key, ok := literal.Get().(string)
			if !ok {
				return nil, nil, unexpected(source)
			}
			keys = append(keys, key)
			values = append(values, e.Args[i+1])
		}
		return keys, values, nil
	default:
		return nil, nil, unexpected(source)
	}
}
