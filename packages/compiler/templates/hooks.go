package templates

import "dtc-go/packages/compiler/expressions"

// Hook annotates an element or view pointer for the render-time runtime
type Hook interface {
	isHook()
}

// MarkupAs binds the rendered element or component to a path
type MarkupAs struct {
	Segments []string
}

// NewMarkupAs creates a new MarkupAs hook
func NewMarkupAs(segments []string) *MarkupAs {
	return &MarkupAs{Segments: segments}
}

func (h *MarkupAs) isHook() {}

// ElementOn binds a DOM event on an element
type ElementOn struct {
	Name       string
	Expression expressions.Expression
}

// NewElementOn creates a new ElementOn hook
func NewElementOn(name string, expression expressions.Expression) *ElementOn {
	return &ElementOn{Name: name, Expression: expression}
}

func (h *ElementOn) isHook() {}

// ComponentOn binds a component event on a view pointer
type ComponentOn struct {
	Name       string
	Expression expressions.Expression
}

// NewComponentOn creates a new ComponentOn hook
func NewComponentOn(name string, expression expressions.Expression) *ComponentOn {
	return &ComponentOn{Name: name, Expression: expression}
}

func (h *ComponentOn) isHook() {}

// HookKind selects which event hook type NewEventHook builds
type HookKind int

const (
	HookKindElement HookKind = iota
	HookKindComponent
)

// NewEventHook creates an ElementOn or ComponentOn hook
func NewEventHook(kind HookKind, name string, expression expressions.Expression) Hook {
	if kind == HookKindComponent {
		return NewComponentOn(name, expression)
	}
	return NewElementOn(name, expression)
}
