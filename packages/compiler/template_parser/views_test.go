package template_parser_test

import (
	"testing"

	"dtc-go/packages/compiler/templates"
	"dtc-go/packages/compiler/template_parser"
	"dtc-go/packages/compiler/util"
)

func viewPointer(name string, attrs interface{}, hooks interface{}) []interface{} {
	return []interface{}{"ViewPointer", name, attrs, hooks}
}

func parent(content interface{}) []interface{} {
	return []interface{}{"Parent", content}
}

func TestViewElements(t *testing.T) {
	t.Run("should resolve a named view relative to the current namespace", func(t *testing.T) {
		expectTemplate(t, `<view name="card"></view>`, list(viewPointer("app:card", nil, nil)))
		expectTemplate(t, `<view name="list"></view>`, list(viewPointer("app:list:index", nil, nil)))
		expectTemplate(t, `<view name="shared:icon"/>`, list(viewPointer("shared:icon", nil, nil)))
	})

	t.Run("should point at the resolved view", func(t *testing.T) {
		views, view := newViews()
		template, err := template_parser.NewParser(nil).CreateTemplate(`<view name="card"></view>`, view)
		if err != nil {
			t.Fatal(err)
		}
		pointer := template.Content[0].(*templates.ViewPointer)
		if pointer.View != views.Find("card", "app") {
			t.Errorf("pointer.View = %v, want app:card", pointer.View)
		}
	})

	t.Run("should fail when a named view is not registered", func(t *testing.T) {
		expectError(t, `<view name="missing"></view>`, util.ErrorKindResolution, `No view found for "missing"`)
	})

	t.Run("should fail without a view context", func(t *testing.T) {
		_, err := template_parser.NewParser(nil).CreateTemplate(`<view name="card"></view>`, nil)
		if kind, _ := util.KindOf(err); kind != util.ErrorKindResolution {
			t.Errorf("error = %v, want a resolution error", err)
		}
	})

	t.Run("should require a name attribute", func(t *testing.T) {
		expectError(t, `<view></view>`, util.ErrorKindStructural, "The <view> element requires a name attribute")
		expectError(t, `<view title="x"/>`, util.ErrorKindStructural, "The <view> element requires a name attribute")
	})

	t.Run("should defer dynamic names", func(t *testing.T) {
		expectTemplate(t, `<view name="{{kind}}" title="t"></view>`, list(
			[]interface{}{"DynamicViewPointer", "kind", list([]interface{}{"title", "t"}), nil},
		))
		expectTemplate(t, `<view name="icon-{{kind}}">x</view>`, list(
			[]interface{}{"DynamicViewPointer", list(text("icon-"), []interface{}{"DynamicText", "kind"}), list(
				[]interface{}{"content", parent(list(text("x")))},
			), nil},
		))
	})

	t.Run("should camelCase attributes and wrap dynamic values", func(t *testing.T) {
		expectTemplate(t, `<view name="card" title="Hi" data-item-id="{{id}}" label="a {{b}}"></view>`, list(
			viewPointer("app:card", list(
				[]interface{}{"title", "Hi"},
				[]interface{}{"dataItemId", parent("id")},
				[]interface{}{"label", parent(list(text("a "), []interface{}{"DynamicText", "b"}))},
			), nil),
		))
	})

	t.Run("should split attribute and array sub-elements from content", func(t *testing.T) {
		source := `<view name="card" title="Hi">` +
			`<footer>F</footer>` +
			`<tab label="A">a</tab>` +
			`<tab label="B">b</tab>` +
			`Body` +
			`<attribute name="header"><b>H</b></attribute>` +
			`<array name="links" href="/x"></array>` +
			`</view>`
		expectTemplate(t, source, list(
			viewPointer("app:card", list(
				[]interface{}{"title", "Hi"},
				[]interface{}{"footer", parent(list(text("F")))},
				[]interface{}{"tabs", []interface{}{"Array", list(
					list(
						[]interface{}{"label", "A"},
						[]interface{}{"content", parent(list(text("a")))},
					),
					list(
						[]interface{}{"label", "B"},
						[]interface{}{"content", parent(list(text("b")))},
					),
				)}},
				[]interface{}{"header", parent(list(element("b", nil, list(text("H")), nil)))},
				[]interface{}{"links", []interface{}{"Array", list(
					list([]interface{}{"href", "/x"}),
				)}},
				[]interface{}{"content", parent(list(text("Body")))},
			), nil),
		))
	})

	t.Run("should keep an explicit content attribute", func(t *testing.T) {
		expectTemplate(t, `<view name="card" content="given">Body</view>`, list(
			viewPointer("app:card", list([]interface{}{"content", "given"}), nil),
		))
	})

	t.Run("should require literal names on attribute and array elements", func(t *testing.T) {
		expectError(t, `<view name="card"><attribute>x</attribute></view>`, util.ErrorKindStructural,
			"The <attribute> element requires a literal name attribute")
		expectError(t, `<view name="card"><array name="{{n}}">x</array></view>`, util.ErrorKindStructural,
			"The <array> element requires a literal name attribute")
	})

	t.Run("should reject array entries for a non-array attribute", func(t *testing.T) {
		err := parseError(t, `<view name="card" tabs="x"><tab>a</tab></view>`)
		if kind, _ := util.KindOf(err); kind != util.ErrorKindStructural {
			t.Errorf("error = %v, want a structural error", err)
		}
	})

	t.Run("should turn hooks into component hooks", func(t *testing.T) {
		expectTemplate(t, `<view name="card" as="card" on="close: done()"></view>`, list(
			viewPointer("app:card", nil, list(
				[]interface{}{"MarkupAs", "card"},
				[]interface{}{"ComponentOn", "close", "done()"},
			)),
		))
	})

	t.Run("should not run element observers for view elements", func(t *testing.T) {
		parser := template_parser.NewParser(nil)
		calls := 0
		parser.Config().Observers.On("view", func(*templates.Element) error {
			calls++
			return nil
		})
		_, view := newViews()
		if _, err := parser.CreateTemplate(`<view name="card"></view>`, view); err != nil {
			t.Fatal(err)
		}
		if calls != 0 {
			t.Errorf("observer ran %d times, want 0", calls)
		}
	})
}

func TestCustomElements(t *testing.T) {
	t.Run("should convert tags mapped to a view", func(t *testing.T) {
		expectTemplate(t, `<card title="x"><footer>f</footer>body</card>`, list(
			viewPointer("app:card", list(
				[]interface{}{"title", "x"},
				[]interface{}{"footer", parent(list(text("f")))},
				[]interface{}{"content", parent(list(text("body")))},
			), nil),
		))
	})

	t.Run("should convert self-closing mapped tags", func(t *testing.T) {
		expectTemplate(t, `<p><card/></p>`, list(
			element("p", nil, list(viewPointer("app:card", nil, nil)), nil),
		))
	})

	t.Run("should keep hooks on mapped tags as component hooks", func(t *testing.T) {
		expectTemplate(t, `<card as="c"></card>`, list(
			viewPointer("app:card", nil, list([]interface{}{"MarkupAs", "c"})),
		))
	})
}

func TestViewExpressions(t *testing.T) {
	t.Run("should resolve literal names", func(t *testing.T) {
		expectTemplate(t, `{{view "card"}}`, list(viewPointer("app:card", nil, nil)))
	})

	t.Run("should convert the attribute object", func(t *testing.T) {
		expectTemplate(t, `{{view "card", {title: x, size: 2, on: "close: done()"}}}`, list(
			viewPointer("app:card", list(
				[]interface{}{"title", parent("x")},
				[]interface{}{"size", 2.0},
			), list(
				[]interface{}{"ComponentOn", "close", "done()"},
			)),
		))
	})

	t.Run("should defer dynamic names", func(t *testing.T) {
		expectTemplate(t, `{{view kind, {a: 1}}}`, list(
			[]interface{}{"DynamicViewPointer", "kind", list([]interface{}{"a", 1.0}), nil},
		))
	})

	t.Run("should fail when a literal name is not registered", func(t *testing.T) {
		expectError(t, `{{view "missing"}}`, util.ErrorKindResolution, `No view found for "missing"`)
	})

	t.Run("should reject non-object attributes", func(t *testing.T) {
		expectError(t, `{{view "card", 3}}`, util.ErrorKindStructural, `Error parsing template: view "card", 3`)
	})
}
