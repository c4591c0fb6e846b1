package templates_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"dtc-go/packages/compiler/expressions"
	"dtc-go/packages/compiler/templates"
)

func path(segments ...string) expressions.Expression {
	return expressions.NewPathExpression(segments)
}

func blockExpression(source, blockType string, segments ...string) expressions.Expression {
	var expr expressions.Expression = expressions.NewEmptyExpression()
	if len(segments) > 0 {
		expr = path(segments...)
	}
	meta := expressions.NewExpressionMeta(source)
	meta.BlockType = blockType
	expr.SetMeta(meta)
	return expr
}

func TestHumanize(t *testing.T) {
	t.Run("should humanize elements and attributes", func(t *testing.T) {
		attrs := templates.NewAttributesMap()
		attrs.Set("id", templates.NewAttribute("main"))
		attrs.Set("class", templates.NewDynamicAttribute(path("cls")))
		attrs.Set("title", templates.NewDynamicTemplateAttribute(templates.NewTemplate([]templates.Node{
			templates.NewText("a "),
			templates.NewDynamicText(path("b")),
		})))
		hooks := []templates.Hook{
			templates.NewMarkupAs([]string{"page", "main"}),
			templates.NewElementOn("click", path("go")),
		}
		template := templates.NewTemplate([]templates.Node{
			templates.NewDoctype("html", "", ""),
			templates.NewElement("div", attrs, []templates.Node{templates.NewComment("[if IE]")}, false, hooks),
			templates.NewElement("br", nil, nil, false, nil),
		})

		expected := []interface{}{
			[]interface{}{"Doctype", "html", "", ""},
			[]interface{}{"Element", "div",
				[]interface{}{
					[]interface{}{"id", "main"},
					[]interface{}{"class", []interface{}{"Dynamic", "cls"}},
					[]interface{}{"title", []interface{}{"Dynamic", []interface{}{
						[]interface{}{"Text", "a "},
						[]interface{}{"DynamicText", "b"},
					}}},
				},
				[]interface{}{[]interface{}{"Comment", "[if IE]"}},
				[]interface{}{
					[]interface{}{"MarkupAs", "page.main"},
					[]interface{}{"ElementOn", "click", "go"},
				},
			},
			[]interface{}{"Element", "br", nil, nil, nil},
		}
		if diff := cmp.Diff(expected, templates.Humanize(template)); diff != "" {
			t.Errorf("Humanize() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should humanize blocks by their source", func(t *testing.T) {
		conditional := templates.NewConditionalBlock(
			[]expressions.Expression{blockExpression("if a", "if", "a"), blockExpression("else", "else")},
			[][]templates.Node{{templates.NewText("x")}, {}},
		)
		each := templates.NewEachBlock(blockExpression("each items", "each", "items"), []templates.Node{})
		each.ElseContent = []templates.Node{templates.NewText("none")}
		with := templates.NewBlock(blockExpression("with u", "with", "u"), []templates.Node{})

		expected := []interface{}{
			[]interface{}{"ConditionalBlock", []interface{}{
				[]interface{}{"if a", []interface{}{[]interface{}{"Text", "x"}}},
				[]interface{}{"else", []interface{}{}},
			}},
			[]interface{}{"EachBlock", "each items", []interface{}{}, []interface{}{[]interface{}{"Text", "none"}}},
			[]interface{}{"Block", "with u", []interface{}{}},
		}
		template := templates.NewTemplate([]templates.Node{conditional, each, with})
		if diff := cmp.Diff(expected, templates.Humanize(template)); diff != "" {
			t.Errorf("Humanize() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should humanize view pointers", func(t *testing.T) {
		item := templates.NewViewAttributes()
		item.Set("label", templates.NewLiteralValue("A"))
		array := templates.NewAttributeArray()
		array.Append(item)

		attrs := templates.NewViewAttributes()
		attrs.Set("size", templates.NewLiteralValue(2.0))
		attrs.Set("title", templates.NewParentWrapper(templates.NewDynamicText(path("t")), path("t")))
		attrs.Set("content", templates.NewParentWrapper(templates.NewTemplate([]templates.Node{templates.NewText("c")}), nil))
		attrs.Set("tabs", array)

		views := templates.NewViews()
		view := views.Register("app:card", "", nil)
		pointer := templates.NewViewPointer(view.Name, attrs, []templates.Hook{
			templates.NewComponentOn("close", path("done")),
		}, view)
		dynamic := templates.NewDynamicViewPointer(templates.NewDynamicAttribute(path("kind")), nil, nil)

		expected := []interface{}{
			[]interface{}{"ViewPointer", "app:card",
				[]interface{}{
					[]interface{}{"size", 2.0},
					[]interface{}{"title", []interface{}{"Parent", "t"}},
					[]interface{}{"content", []interface{}{"Parent", []interface{}{[]interface{}{"Text", "c"}}}},
					[]interface{}{"tabs", []interface{}{"Array", []interface{}{
						[]interface{}{[]interface{}{"label", "A"}},
					}}},
				},
				[]interface{}{[]interface{}{"ComponentOn", "close", "done"}},
			},
			[]interface{}{"DynamicViewPointer", "kind", nil, nil},
		}
		template := templates.NewTemplate([]templates.Node{pointer, dynamic})
		if diff := cmp.Diff(expected, templates.Humanize(template)); diff != "" {
			t.Errorf("Humanize() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestAttributesMap(t *testing.T) {
	t.Run("should keep insertion order across replace and delete", func(t *testing.T) {
		attrs := templates.NewAttributesMap()
		attrs.Set("a", templates.NewAttribute("1"))
		attrs.Set("b", templates.NewAttribute("2"))
		attrs.Set("c", templates.NewAttribute("3"))
		attrs.Set("a", templates.NewAttribute("4"))
		attrs.Delete("b")
		attrs.Delete("missing")

		if diff := cmp.Diff([]string{"a", "c"}, attrs.Keys()); diff != "" {
			t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
		}
		value, ok := attrs.Get("a")
		if !ok {
			t.Fatal("Get(a) missing")
		}
		if data, _ := value.(*templates.Attribute).String(); data != "4" {
			t.Errorf("Get(a) = %q, want 4", data)
		}
		if attrs.Has("b") || attrs.Len() != 2 {
			t.Errorf("Has(b) = %v, Len() = %d", attrs.Has("b"), attrs.Len())
		}
	})

	t.Run("should find the opening expression of blocks", func(t *testing.T) {
		expr := blockExpression("each xs", "each", "xs")
		if templates.BlockExpression(templates.NewEachBlock(expr, nil)) != expr {
			t.Error("BlockExpression(EachBlock) did not return its expression")
		}
		if templates.BlockExpression(templates.NewText("x")) != nil {
			t.Error("BlockExpression(Text) != nil")
		}
	})
}
