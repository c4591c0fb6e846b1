package templates

import (
	"strings"

	"dtc-go/packages/compiler/expressions"
)

// Humanize converts a template into nested []interface{} values that are
// easy to compare in tests and to encode as JSON. Absent parts (a void
// element's content, missing hooks) are nil.
func Humanize(template *Template) []interface{} {
	return humanizeContent(template.Content)
}

type humanizer struct{}

func humanizeContent(nodes []Node) []interface{} {
	return VisitAll(humanizer{}, nodes, nil)
}

func (h humanizer) VisitTemplate(template *Template, context interface{}) interface{} {
	return []interface{}{"Template", humanizeContent(template.Content)}
}

func (h humanizer) VisitElement(element *Element, context interface{}) interface{} {
	var content interface{}
	if element.Content != nil {
		content = humanizeContent(element.Content)
	}
	return []interface{}{"Element", element.TagName, humanizeAttributes(element.Attributes), content, humanizeHooks(element.Hooks)}
}

func (h humanizer) VisitText(text *Text, context interface{}) interface{} {
	return []interface{}{"Text", text.Data}
}

func (h humanizer) VisitDynamicText(text *DynamicText, context interface{}) interface{} {
	return []interface{}{"DynamicText", humanizeExpression(text.Expression)}
}

func (h humanizer) VisitComment(comment *Comment, context interface{}) interface{} {
	return []interface{}{"Comment", comment.Data}
}

func (h humanizer) VisitDoctype(doctype *Doctype, context interface{}) interface{} {
	return []interface{}{"Doctype", doctype.Name, doctype.PublicID, doctype.SystemID}
}

func (h humanizer) VisitConditionalBlock(block *ConditionalBlock, context interface{}) interface{} {
	branches := []interface{}{}
	for i, expr := range block.Expressions {
		var content []Node
		if i < len(block.Contents) {
			content = block.Contents[i]
		}
		branches = append(branches, []interface{}{blockSource(expr), humanizeContent(content)})
	}
	return []interface{}{"ConditionalBlock", branches}
}

func (h humanizer) VisitEachBlock(block *EachBlock, context interface{}) interface{} {
	var elseContent interface{}
	if block.ElseContent != nil {
		elseContent = humanizeContent(block.ElseContent)
	}
	return []interface{}{"EachBlock", blockSource(block.Expression), humanizeContent(block.Content), elseContent}
}

func (h humanizer) VisitBlock(block *Block, context interface{}) interface{} {
	return []interface{}{"Block", blockSource(block.Expression), humanizeContent(block.Content)}
}

func (h humanizer) VisitViewPointer(pointer *ViewPointer, context interface{}) interface{} {
	return []interface{}{"ViewPointer", pointer.Name, humanizeViewAttributes(pointer.Attributes), humanizeHooks(pointer.Hooks)}
}

func (h humanizer) VisitDynamicViewPointer(pointer *DynamicViewPointer, context interface{}) interface{} {
	var name interface{}
	if pointer.NameTemplate != nil {
		name = humanizeContent(pointer.NameTemplate.Content)
	} else {
		name = humanizeExpression(pointer.NameExpression)
	}
	return []interface{}{"DynamicViewPointer", name, humanizeViewAttributes(pointer.Attributes), humanizeHooks(pointer.Hooks)}
}

func blockSource(expr expressions.Expression) string {
	if expr == nil {
		return ""
	}
	if meta := expr.Meta(); meta != nil {
		return meta.Source
	}
	return expr.String()
}

func humanizeExpression(expr expressions.Expression) interface{} {
	if expr == nil {
		return nil
	}
	if literal, ok := expr.(*expressions.LiteralExpression); ok {
		return literal.Value
	}
	return expr.String()
}

func humanizeAttributes(attrs *AttributesMap) interface{} {
	if attrs == nil || attrs.Len() == 0 {
		return nil
	}
	result := []interface{}{}
	for _, key := range attrs.Keys() {
		value, _ := attrs.Get(key)
		switch v := value.(type) {
		case *Attribute:
			result = append(result, []interface{}{key, v.Data})
		case *DynamicAttribute:
			result = append(result, []interface{}{key, humanizeDynamic(v)})
		}
	}
	return result
}

func humanizeDynamic(attr *DynamicAttribute) interface{} {
	if attr.Template != nil {
		return []interface{}{"Dynamic", humanizeContent(attr.Template.Content)}
	}
	return []interface{}{"Dynamic", humanizeExpression(attr.Expression)}
}

func humanizeViewAttributes(attrs *ViewAttributes) interface{} {
	if attrs == nil || attrs.Len() == 0 {
		return nil
	}
	result := []interface{}{}
	for _, key := range attrs.Keys() {
		value, _ := attrs.Get(key)
		result = append(result, []interface{}{key, humanizeViewAttributeValue(value)})
	}
	return result
}

func humanizeViewAttributeValue(value ViewAttributeValue) interface{} {
	switch v := value.(type) {
	case *LiteralValue:
		return v.Value
	case *ParentWrapper:
		switch t := v.Template.(type) {
		case *Template:
			return []interface{}{"Parent", humanizeContent(t.Content)}
		case *DynamicText:
			return []interface{}{"Parent", humanizeExpression(t.Expression)}
		}
		return []interface{}{"Parent", nil}
	case *AttributeArray:
		items := []interface{}{}
		for _, item := range v.Items {
			items = append(items, humanizeViewAttributes(item))
		}
		return []interface{}{"Array", items}
	}
	return nil
}

func humanizeHooks(hooks []Hook) interface{} {
	if len(hooks) == 0 {
		return nil
	}
	result := []interface{}{}
	for _, hook := range hooks {
		switch h := hook.(type) {
		case *MarkupAs:
			result = append(result, []interface{}{"MarkupAs", strings.Join(h.Segments, ".")})
		case *ElementOn:
			result = append(result, []interface{}{"ElementOn", h.Name, humanizeExpression(h.Expression)})
		case *ComponentOn:
			result = append(result, []interface{}{"ComponentOn", h.Name, humanizeExpression(h.Expression)})
		}
	}
	return result
}
