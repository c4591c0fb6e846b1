// Package templates defines the template AST produced by the template parser
// and the view registry it resolves view references against.
package templates

import "dtc-go/packages/compiler/expressions"

// Node represents a node in the template AST
type Node interface {
	Visit(visitor Visitor, context interface{}) interface{}
}

// Template is an ordered content list. The parser returns one per parse and
// also uses it for sub-templates held by attributes.
type Template struct {
	Content []Node
}

// NewTemplate creates a new Template
func NewTemplate(content []Node) *Template {
	return &Template{Content: content}
}

// Visit implements the Node interface
func (t *Template) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitTemplate(t, context)
}

// Element represents an HTML element. Content is nil only for void and
// self-closing elements.
type Element struct {
	TagName     string
	Attributes  *AttributesMap
	Content     []Node
	SelfClosing bool
	Hooks       []Hook
}

// NewElement creates a new Element
func NewElement(tagName string, attributes *AttributesMap, content []Node, selfClosing bool, hooks []Hook) *Element {
	return &Element{
		TagName:     tagName,
		Attributes:  attributes,
		Content:     content,
		SelfClosing: selfClosing,
		Hooks:       hooks,
	}
}

// Visit implements the Node interface
func (e *Element) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitElement(e, context)
}

// Text represents literal text
type Text struct {
	Data string
}

// NewText creates a new Text node
func NewText(data string) *Text {
	return &Text{Data: data}
}

// Visit implements the Node interface
func (t *Text) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitText(t, context)
}

// DynamicText outputs the value of an expression at render time
type DynamicText struct {
	Expression expressions.Expression
}

// NewDynamicText creates a new DynamicText node
func NewDynamicText(expression expressions.Expression) *DynamicText {
	return &DynamicText{Expression: expression}
}

// Visit implements the Node interface
func (t *DynamicText) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitDynamicText(t, context)
}

// Comment represents a preserved conditional comment
type Comment struct {
	Data string
}

// NewComment creates a new Comment node
func NewComment(data string) *Comment {
	return &Comment{Data: data}
}

// Visit implements the Node interface
func (c *Comment) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitComment(c, context)
}

// Doctype represents a document type declaration
type Doctype struct {
	Name     string
	PublicID string
	SystemID string
}

// NewDoctype creates a new Doctype node
func NewDoctype(name, publicID, systemID string) *Doctype {
	return &Doctype{Name: name, PublicID: publicID, SystemID: systemID}
}

// Visit implements the Node interface
func (d *Doctype) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitDoctype(d, context)
}

// ConditionalBlock holds one expression and one content list per branch.
// A trailing `else` branch has an expression without a path.
type ConditionalBlock struct {
	Expressions []expressions.Expression
	Contents    [][]Node
}

// NewConditionalBlock creates a new ConditionalBlock
func NewConditionalBlock(exprs []expressions.Expression, contents [][]Node) *ConditionalBlock {
	return &ConditionalBlock{Expressions: exprs, Contents: contents}
}

// Visit implements the Node interface
func (b *ConditionalBlock) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitConditionalBlock(b, context)
}

// EachBlock repeats Content for every item. ElseContent renders when there
// are no items and is only set through an `{{else}}` continuation.
type EachBlock struct {
	Expression  expressions.Expression
	Content     []Node
	ElseContent []Node
}

// NewEachBlock creates a new EachBlock
func NewEachBlock(expression expressions.Expression, content []Node) *EachBlock {
	return &EachBlock{Expression: expression, Content: content}
}

// Visit implements the Node interface
func (b *EachBlock) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitEachBlock(b, context)
}

// Block is a generic scoped block such as `with`, `bound` or `unbound`
type Block struct {
	Expression expressions.Expression
	Content    []Node
}

// NewBlock creates a new Block
func NewBlock(expression expressions.Expression, content []Node) *Block {
	return &Block{Expression: expression, Content: content}
}

// Visit implements the Node interface
func (b *Block) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitBlock(b, context)
}

// ViewPointer references a view resolved by name at parse time
type ViewPointer struct {
	Name       string
	Attributes *ViewAttributes
	Hooks      []Hook
	View       *View
}

// NewViewPointer creates a new ViewPointer
func NewViewPointer(name string, attributes *ViewAttributes, hooks []Hook, view *View) *ViewPointer {
	return &ViewPointer{Name: name, Attributes: attributes, Hooks: hooks, View: view}
}

// Visit implements the Node interface
func (v *ViewPointer) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitViewPointer(v, context)
}

// DynamicViewPointer references a view whose name is computed at render
// time. Exactly one of NameExpression and NameTemplate is set.
type DynamicViewPointer struct {
	NameExpression expressions.Expression
	NameTemplate   *Template
	Attributes     *ViewAttributes
	Hooks          []Hook
}

// NewDynamicViewPointer creates a new DynamicViewPointer
func NewDynamicViewPointer(name *DynamicAttribute, attributes *ViewAttributes, hooks []Hook) *DynamicViewPointer {
	return &DynamicViewPointer{
		NameExpression: name.Expression,
		NameTemplate:   name.Template,
		Attributes:     attributes,
		Hooks:          hooks,
	}
}

// Visit implements the Node interface
func (v *DynamicViewPointer) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitDynamicViewPointer(v, context)
}

// BlockExpression returns the expression that opened a block node, or nil
// when node is not a block.
func BlockExpression(node Node) expressions.Expression {
	switch n := node.(type) {
	case *ConditionalBlock:
		if len(n.Expressions) > 0 {
			return n.Expressions[0]
		}
	case *EachBlock:
		return n.Expression
	case *Block:
		return n.Expression
	}
	return nil
}
