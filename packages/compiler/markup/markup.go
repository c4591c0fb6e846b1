// Package markup runs post-parse observers over finished elements. Observers
// are registered per tag and run synchronously, in registration order, right
// after an element's content is final.
package markup

import (
	"fmt"
	"sync"

	"dtc-go/packages/compiler/expressions"
	"dtc-go/packages/compiler/templates"
)

// Observer may inspect a finished element and change its hooks in place
type Observer func(element *templates.Element) error

// Observers is an ordered registry of observers keyed by tag name
type Observers struct {
	mu        sync.RWMutex
	observers map[string][]Observer
}

// NewObservers creates an empty registry
func NewObservers() *Observers {
	return &Observers{observers: make(map[string][]Observer)}
}

// On registers fn for elements named tagName
func (o *Observers) On(tagName string, fn Observer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observers[tagName] = append(o.observers[tagName], fn)
}

// Notify runs the observers registered for element's tag. It stops at the
// first error.
func (o *Observers) Notify(element *templates.Element) error {
	if o == nil {
		return nil
	}
	o.mu.RLock()
	fns := o.observers[element.TagName]
	o.mu.RUnlock()
	for _, fn := range fns {
		if err := fn(element); err != nil {
			return fmt.Errorf("element:%s observer: %w", element.TagName, err)
		}
	}
	return nil
}

// PreventDefaultSource is the handler attached to forms with a submit hook
const PreventDefaultSource = "$preventDefault()"

// Default returns a registry with the built-in form policy: a <form> that
// declares a submit event hook also gets a $preventDefault() submit hook,
// unless it already has one.
func Default(grammar expressions.Grammar) *Observers {
	o := NewObservers()
	o.On("form", func(element *templates.Element) error {
		if !HasListenerFor(element, "submit") || hasPreventDefault(element, "submit") {
			return nil
		}
		return AddListener(grammar, element, "submit", PreventDefaultSource)
	})
	return o
}

// HasListenerFor reports whether element has an ElementOn hook for eventName
func HasListenerFor(element *templates.Element, eventName string) bool {
	for _, hook := range element.Hooks {
		if on, ok := hook.(*templates.ElementOn); ok && on.Name == eventName {
			return true
		}
	}
	return false
}

func hasPreventDefault(element *templates.Element, eventName string) bool {
	for _, hook := range element.Hooks {
		on, ok := hook.(*templates.ElementOn)
		if !ok || on.Name != eventName {
			continue
		}
		if fn, ok := on.Expression.(*expressions.FnExpression); ok &&
			len(fn.Segments) == 1 && fn.Segments[0] == "$preventDefault" && len(fn.Args) == 0 {
			return true
		}
	}
	return false
}

// AddListener parses source and appends it to element as an ElementOn hook
func AddListener(grammar expressions.Grammar, element *templates.Element, eventName, source string) error {
	expr, err := grammar.ParsePath(source)
	if err != nil {
		return err
	}
	element.Hooks = append(element.Hooks, templates.NewElementOn(eventName, expr))
	return nil
}
