package templates

import "dtc-go/packages/compiler/expressions"

// orderedMap keeps insertion order so attributes serialize in source order
type orderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// Get returns the value stored under key
func (m *orderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is set
func (m *orderedMap[V]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Set stores value under key. Replacing a key keeps its original position.
func (m *orderedMap[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key
func (m *orderedMap[V]) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order
func (m *orderedMap[V]) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of entries
func (m *orderedMap[V]) Len() int {
	return len(m.keys)
}

// AttributeValue is implemented by *Attribute and *DynamicAttribute
type AttributeValue interface {
	isAttributeValue()
}

// Attribute is an attribute whose value is known at parse time. Data is
// usually a string but literal expressions may produce any literal value.
type Attribute struct {
	Data any
}

// NewAttribute creates a new Attribute
func NewAttribute(data any) *Attribute {
	return &Attribute{Data: data}
}

// String returns Data when it is a string
func (a *Attribute) String() (string, bool) {
	s, ok := a.Data.(string)
	return s, ok
}

func (a *Attribute) isAttributeValue() {}

// DynamicAttribute is evaluated at render time. Exactly one of Expression
// and Template is set.
type DynamicAttribute struct {
	Expression expressions.Expression
	Template   *Template
}

// NewDynamicAttribute creates a DynamicAttribute wrapping a bare expression
func NewDynamicAttribute(expression expressions.Expression) *DynamicAttribute {
	return &DynamicAttribute{Expression: expression}
}

// NewDynamicTemplateAttribute creates a DynamicAttribute wrapping a sub-template
func NewDynamicTemplateAttribute(template *Template) *DynamicAttribute {
	return &DynamicAttribute{Template: template}
}

func (a *DynamicAttribute) isAttributeValue() {}

// AttributesMap maps element attribute names to values in source order
type AttributesMap struct {
	orderedMap[AttributeValue]
}

// NewAttributesMap creates a new AttributesMap
func NewAttributesMap() *AttributesMap {
	return &AttributesMap{}
}

// ViewAttributeValue is implemented by *LiteralValue, *ParentWrapper and
// *AttributeArray
type ViewAttributeValue interface {
	isViewAttributeValue()
}

// LiteralValue is a view attribute passed through unchanged
type LiteralValue struct {
	Value any
}

// NewLiteralValue creates a new LiteralValue
func NewLiteralValue(value any) *LiteralValue {
	return &LiteralValue{Value: value}
}

func (v *LiteralValue) isViewAttributeValue() {}

// ParentWrapper marks a view attribute that renders against the scope
// enclosing the view reference instead of the view's own scope. Template is
// a *Template or a *DynamicText. Expression is set when the attribute was a
// bare expression.
type ParentWrapper struct {
	Template   Node
	Expression expressions.Expression
}

// NewParentWrapper creates a new ParentWrapper
func NewParentWrapper(template Node, expression expressions.Expression) *ParentWrapper {
	return &ParentWrapper{Template: template, Expression: expression}
}

func (w *ParentWrapper) isViewAttributeValue() {}

// AttributeArray collects the entries of a repeated array sub-element
type AttributeArray struct {
	Items []*ViewAttributes
}

// NewAttributeArray creates a new AttributeArray
func NewAttributeArray() *AttributeArray {
	return &AttributeArray{}
}

// Append adds an entry
func (a *AttributeArray) Append(item *ViewAttributes) {
	a.Items = append(a.Items, item)
}

func (a *AttributeArray) isViewAttributeValue() {}

// ViewAttributes maps camelCased view attribute names to values
type ViewAttributes struct {
	orderedMap[ViewAttributeValue]
}

// NewViewAttributes creates a new ViewAttributes
func NewViewAttributes() *ViewAttributes {
	return &ViewAttributes{}
}
