package template_parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"dtc-go/packages/compiler/template_parser"
	"dtc-go/packages/compiler/util"
)

func scan(t *testing.T, data string) ([]interface{}, error) {
	t.Helper()
	spans := []interface{}{}
	err := template_parser.ScanText(data,
		func(literal string) error {
			spans = append(spans, []interface{}{"literal", literal})
			return nil
		},
		func(inside string) error {
			spans = append(spans, []interface{}{"expression", inside})
			return nil
		})
	return spans, err
}

func TestScanText(t *testing.T) {
	t.Run("should emit literal-only input unchanged", func(t *testing.T) {
		for _, data := range []string{"hello", " a { b } c ", "}}", "{ {x} }"} {
			spans, err := scan(t, data)
			if err != nil {
				t.Fatalf("ScanText(%q) failed: %v", data, err)
			}
			expected := []interface{}{[]interface{}{"literal", data}}
			if diff := cmp.Diff(expected, spans); diff != "" {
				t.Errorf("ScanText(%q) mismatch (-want +got):\n%s", data, diff)
			}
		}
	})

	t.Run("should split literals and expressions in order", func(t *testing.T) {
		spans, err := scan(t, "a {{x}} b{{y}}")
		if err != nil {
			t.Fatal(err)
		}
		expected := []interface{}{
			[]interface{}{"literal", "a "},
			[]interface{}{"expression", "x"},
			[]interface{}{"literal", " b"},
			[]interface{}{"expression", "y"},
		}
		if diff := cmp.Diff(expected, spans); diff != "" {
			t.Errorf("ScanText() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should match nested braces", func(t *testing.T) {
		spans, err := scan(t, "{{ {a: {b: 1}} }}!")
		if err != nil {
			t.Fatal(err)
		}
		expected := []interface{}{
			[]interface{}{"expression", " {a: {b: 1}} "},
			[]interface{}{"literal", "!"},
		}
		if diff := cmp.Diff(expected, spans); diff != "" {
			t.Errorf("ScanText() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should skip empty expression bodies", func(t *testing.T) {
		spans, err := scan(t, "a{{}}b")
		if err != nil {
			t.Fatal(err)
		}
		expected := []interface{}{
			[]interface{}{"literal", "a"},
			[]interface{}{"literal", "b"},
		}
		if diff := cmp.Diff(expected, spans); diff != "" {
			t.Errorf("ScanText() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should emit nothing for empty input", func(t *testing.T) {
		spans, err := scan(t, "")
		if err != nil {
			t.Fatal(err)
		}
		if len(spans) != 0 {
			t.Errorf("ScanText(\"\") = %v, want no spans", spans)
		}
	})

	t.Run("should fail on unbalanced braces", func(t *testing.T) {
		for _, data := range []string{"{{if x", "a {{b} c", "{{ {a: 1} }"} {
			_, err := scan(t, data)
			if err == nil {
				t.Fatalf("ScanText(%q) succeeded, want an error", data)
			}
			if kind, _ := util.KindOf(err); kind != util.ErrorKindLexical {
				t.Errorf("ScanText(%q) error kind = %v, want lexical", data, kind)
			}
			if err.Error() != "Mismatched braces in: "+data {
				t.Errorf("ScanText(%q) error = %q", data, err.Error())
			}
		}
	})

	t.Run("should stop at the first callback error", func(t *testing.T) {
		calls := 0
		err := template_parser.ScanText("a{{b}}c",
			func(string) error { calls++; return nil },
			func(string) error { return util.Errorf(util.ErrorKindGrammar, "boom") })
		if err == nil || err.Error() != "boom" {
			t.Fatalf("ScanText() error = %v, want boom", err)
		}
		if calls != 1 {
			t.Errorf("literal callback ran %d times, want 1", calls)
		}
	})
}
