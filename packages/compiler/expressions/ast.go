// Package expressions implements the embedded expression dialect used inside
// template `{{ }}` delimiters: the expression metadata the template parser
// attaches, the expression node kinds, and a recursive-descent path parser.
package expressions

import (
	"strconv"
	"strings"
)

// ExpressionMeta carries the template-level classification of an expression
type ExpressionMeta struct {
	// Source is the trimmed expression body, kept for error messages
	Source string
	// BlockType is set for block starts, continuations and ends
	BlockType string
	// IsEnd marks a block end such as `{{/if}}` or `{{/}}`
	IsEnd bool
	// As is the optional alias bound by `as #name`
	As string
	// Unescaped is set by the `unescaped` keyword
	Unescaped bool
	// BindType is "bound" or "unbound" when one of those keywords was given
	BindType string
	// ValueType is "view" for view expressions
	ValueType string
}

// NewExpressionMeta creates a new ExpressionMeta for source
func NewExpressionMeta(source string) *ExpressionMeta {
	return &ExpressionMeta{Source: source}
}

// Expression is implemented by every expression node kind
type Expression interface {
	Meta() *ExpressionMeta
	SetMeta(meta *ExpressionMeta)
	String() string
	isExpression()
}

type expressionBase struct {
	meta *ExpressionMeta
}

// Meta returns the template metadata, or nil when none was attached
func (e *expressionBase) Meta() *ExpressionMeta {
	return e.meta
}

// SetMeta attaches template metadata
func (e *expressionBase) SetMeta(meta *ExpressionMeta) {
	e.meta = meta
}

func (e *expressionBase) isExpression() {}

// EmptyExpression is produced for bodies without a path, such as `{{else}}`
type EmptyExpression struct {
	expressionBase
}

// NewEmptyExpression creates a new EmptyExpression
func NewEmptyExpression() *EmptyExpression {
	return &EmptyExpression{}
}

func (e *EmptyExpression) String() string {
	return ""
}

// LiteralExpression is a value known at compile time. Value holds a string,
// float64, bool, nil, []any or map[string]any.
type LiteralExpression struct {
	expressionBase
	Value any
}

// NewLiteralExpression creates a new LiteralExpression
func NewLiteralExpression(value any) *LiteralExpression {
	return &LiteralExpression{Value: value}
}

// Get returns the literal value
func (e *LiteralExpression) Get() any {
	return e.Value
}

func (e *LiteralExpression) String() string {
	return formatLiteral(e.Value)
}

// PathExpression reads a model path such as `user.name`
type PathExpression struct {
	expressionBase
	Segments []string
}

// NewPathExpression creates a new PathExpression
func NewPathExpression(segments []string) *PathExpression {
	return &PathExpression{Segments: segments}
}

func (e *PathExpression) String() string {
	return strings.Join(e.Segments, ".")
}

// RelativePathExpression reads a path relative to the current context (`this.x`)
type RelativePathExpression struct {
	expressionBase
	Segments []string
}

// NewRelativePathExpression creates a new RelativePathExpression
func NewRelativePathExpression(segments []string) *RelativePathExpression {
	return &RelativePathExpression{Segments: segments}
}

func (e *RelativePathExpression) String() string {
	return joinSegments("this", e.Segments)
}

// AliasPathExpression reads a path through an alias (`#item.name`)
type AliasPathExpression struct {
	expressionBase
	Alias    string
	Segments []string
}

// NewAliasPathExpression creates a new AliasPathExpression
func NewAliasPathExpression(alias string, segments []string) *AliasPathExpression {
	return &AliasPathExpression{Alias: alias, Segments: segments}
}

func (e *AliasPathExpression) String() string {
	return joinSegments(e.Alias, e.Segments)
}

// AttributePathExpression reads a view attribute (`@title.text`)
type AttributePathExpression struct {
	expressionBase
	Attribute string
	Segments  []string
}

// NewAttributePathExpression creates a new AttributePathExpression
func NewAttributePathExpression(attribute string, segments []string) *AttributePathExpression {
	return &AttributePathExpression{Attribute: attribute, Segments: segments}
}

func (e *AttributePathExpression) String() string {
	return joinSegments("@"+e.Attribute, e.Segments)
}

// BracketsExpression is a computed member read: `before[inside].after`
type BracketsExpression struct {
	expressionBase
	Before        Expression
	Inside        Expression
	AfterSegments []string
}

// NewBracketsExpression creates a new BracketsExpression
func NewBracketsExpression(before, inside Expression, afterSegments []string) *BracketsExpression {
	return &BracketsExpression{Before: before, Inside: inside, AfterSegments: afterSegments}
}

func (e *BracketsExpression) String() string {
	return joinSegments(e.Before.String()+"["+e.Inside.String()+"]", e.AfterSegments)
}

// FnExpression calls a function found at Segments
type FnExpression struct {
	expressionBase
	Segments      []string
	Args          []Expression
	AfterSegments []string
}

// NewFnExpression creates a new FnExpression
func NewFnExpression(segments []string, args []Expression, afterSegments []string) *FnExpression {
	return &FnExpression{Segments: segments, Args: args, AfterSegments: afterSegments}
}

func (e *FnExpression) String() string {
	return joinSegments(strings.Join(e.Segments, ".")+"("+joinExpressions(e.Args, ", ")+")", e.AfterSegments)
}

// OperatorExpression applies a named operator to Args. Array and object
// literals with non-literal members use the names "[]" and "{}"; an object
// literal's Args alternate literal keys and values.
type OperatorExpression struct {
	expressionBase
	Name string
	Args []Expression
}

// NewOperatorExpression creates a new OperatorExpression
func NewOperatorExpression(name string, args []Expression) *OperatorExpression {
	return &OperatorExpression{Name: name, Args: args}
}

func (e *OperatorExpression) String() string {
	switch {
	case e.Name == "[]":
		return "[" + joinExpressions(e.Args, ", ") + "]"
	case e.Name == "{}":
		parts := make([]string, 0, len(e.Args)/2)
		for i := 0; i+1 < len(e.Args); i += 2 {
			parts = append(parts, e.Args[i].String()+": "+e.Args[i+1].String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case e.Name == "?:" && len(e.Args) == 3:
		return "(" + e.Args[0].String() + " ? " + e.Args[1].String() + " : " + e.Args[2].String() + ")"
	case len(e.Args) == 1:
		return e.Name + e.Args[0].String()
	default:
		return "(" + joinExpressions(e.Args, " "+e.Name+" ") + ")"
	}
}

// SequenceExpression is a comma separated list such as `'card', {title: x}`
type SequenceExpression struct {
	expressionBase
	Args []Expression
}

// NewSequenceExpression creates a new SequenceExpression
func NewSequenceExpression(args []Expression) *SequenceExpression {
	return &SequenceExpression{Args: args}
}

func (e *SequenceExpression) String() string {
	return joinExpressions(e.Args, ", ")
}

func joinSegments(head string, segments []string) string {
	if len(segments) == 0 {
		return head
	}
	return head + "." + strings.Join(segments, ".")
}

func joinExpressions(exprs []Expression, separator string) string {
	parts := make([]string, len(exprs))
	for i, expr := range exprs {
		parts[i] = expr.String()
	}
	return strings.Join(parts, separator)
}

func formatLiteral(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = formatLiteral(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := SortedKeys(v)
		parts := make([]string, len(keys))
		for i, key := range keys {
			parts[i] = key + ": " + formatLiteral(v[key])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "<literal>"
	}
}
