package markup_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dtc-go/packages/compiler/expressions"
	"dtc-go/packages/compiler/markup"
	"dtc-go/packages/compiler/templates"
)

func form(hooks ...templates.Hook) *templates.Element {
	return templates.NewElement("form", nil, []templates.Node{}, false, hooks)
}

func hookSources(element *templates.Element) []string {
	sources := []string{}
	for _, hook := range element.Hooks {
		if on, ok := hook.(*templates.ElementOn); ok {
			sources = append(sources, on.Name+":"+on.Expression.String())
		}
	}
	return sources
}

func mustParse(t *testing.T, source string) expressions.Expression {
	t.Helper()
	expr, err := expressions.ParsePath(source)
	if err != nil {
		t.Fatal(err)
	}
	return expr
}

func TestDefaultObservers(t *testing.T) {
	grammar := expressions.NewParser(expressions.NewLexer())

	t.Run("should add preventDefault to submit forms", func(t *testing.T) {
		el := form(templates.NewElementOn("submit", mustParse(t, "save()")))
		if err := markup.Default(grammar).Notify(el); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"submit:save()", "submit:$preventDefault()"}, hookSources(el)); diff != "" {
			t.Errorf("hooks mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should keep an existing preventDefault hook", func(t *testing.T) {
		el := form(
			templates.NewElementOn("submit", mustParse(t, "save()")),
			templates.NewElementOn("submit", mustParse(t, "$preventDefault()")),
		)
		if err := markup.Default(grammar).Notify(el); err != nil {
			t.Fatal(err)
		}
		if len(el.Hooks) != 2 {
			t.Errorf("got %d hooks, want 2", len(el.Hooks))
		}
	})

	t.Run("should ignore forms without submit hooks", func(t *testing.T) {
		el := form(templates.NewElementOn("reset", mustParse(t, "clear()")), templates.NewMarkupAs([]string{"f"}))
		if err := markup.Default(grammar).Notify(el); err != nil {
			t.Fatal(err)
		}
		if len(el.Hooks) != 2 {
			t.Errorf("got %d hooks, want 2", len(el.Hooks))
		}
	})

	t.Run("should ignore other tags", func(t *testing.T) {
		el := templates.NewElement("div", nil, nil, false, []templates.Hook{
			templates.NewElementOn("submit", mustParse(t, "save()")),
		})
		if err := markup.Default(grammar).Notify(el); err != nil {
			t.Fatal(err)
		}
		if len(el.Hooks) != 1 {
			t.Errorf("got %d hooks, want 1", len(el.Hooks))
		}
	})
}

func TestObservers(t *testing.T) {
	t.Run("should run observers in registration order", func(t *testing.T) {
		o := markup.NewObservers()
		calls := []string{}
		o.On("p", func(*templates.Element) error { calls = append(calls, "first"); return nil })
		o.On("p", func(*templates.Element) error { calls = append(calls, "second"); return nil })
		o.On("div", func(*templates.Element) error { calls = append(calls, "div"); return nil })

		if err := o.Notify(templates.NewElement("p", nil, nil, false, nil)); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"first", "second"}, calls); diff != "" {
			t.Errorf("calls mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should stop at the first error", func(t *testing.T) {
		o := markup.NewObservers()
		boom := errors.New("boom")
		ran := false
		o.On("p", func(*templates.Element) error { return boom })
		o.On("p", func(*templates.Element) error { ran = true; return nil })

		err := o.Notify(templates.NewElement("p", nil, nil, false, nil))
		if !errors.Is(err, boom) {
			t.Errorf("Notify() error = %v, want boom", err)
		}
		if err.Error() != "element:p observer: boom" {
			t.Errorf("Notify() error = %q", err.Error())
		}
		if ran {
			t.Error("second observer ran after an error")
		}
	})

	t.Run("should accept a nil registry", func(t *testing.T) {
		var o *markup.Observers
		if err := o.Notify(form()); err != nil {
			t.Errorf("Notify() on nil = %v", err)
		}
	})

	t.Run("should report listeners by event", func(t *testing.T) {
		el := form(templates.NewElementOn("submit", mustParse(t, "x")))
		if !markup.HasListenerFor(el, "submit") || markup.HasListenerFor(el, "click") {
			t.Error("HasListenerFor() returned the wrong result")
		}
	})

	t.Run("should fail to add unparsable listeners", func(t *testing.T) {
		el := form()
		if err := markup.AddListener(expressions.NewParser(expressions.NewLexer()), el, "submit", "a +"); err == nil {
			t.Error("AddListener() succeeded, want an error")
		}
		if len(el.Hooks) != 0 {
			t.Errorf("got %d hooks, want 0", len(el.Hooks))
		}
	})
}
