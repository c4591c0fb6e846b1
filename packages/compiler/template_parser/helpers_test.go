package template_parser_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dtc-go/packages/compiler/templates"
	"dtc-go/packages/compiler/template_parser"
	"dtc-go/packages/compiler/util"
)

// newViews registers the views shared by the parser tests. The returned
// view is the context templates are parsed in.
func newViews() (*templates.Views, *templates.View) {
	views := templates.NewViews()
	views.Register("app:card", "<div>{{@title}}</div>", &templates.ViewOptions{
		Element:    "card",
		Attributes: "footer",
		Arrays:     "tab/tabs",
	})
	views.Register("app:list:index", "<ul>{{@content}}</ul>", nil)
	views.Register("shared:icon", "<i></i>", nil)
	view := views.Register("app:index", "", nil)
	return views, view
}

func parseTemplate(t *testing.T, source string) []interface{} {
	t.Helper()
	_, view := newViews()
	template, err := template_parser.NewParser(nil).CreateTemplate(source, view)
	if err != nil {
		t.Fatalf("CreateTemplate(%q) failed: %v", source, err)
	}
	return templates.Humanize(template)
}

func parseError(t *testing.T, source string) error {
	t.Helper()
	_, view := newViews()
	_, err := template_parser.NewParser(nil).CreateTemplate(source, view)
	if err == nil {
		t.Fatalf("CreateTemplate(%q) succeeded, want an error", source)
	}
	return err
}

func expectTemplate(t *testing.T, source string, expected []interface{}) {
	t.Helper()
	if diff := cmp.Diff(expected, parseTemplate(t, source)); diff != "" {
		t.Errorf("CreateTemplate(%q) mismatch (-want +got):\n%s", source, diff)
	}
}

func expectError(t *testing.T, source string, kind util.ErrorKind, message string) {
	t.Helper()
	err := parseError(t, source)
	var parseErr *util.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("CreateTemplate(%q) error %v is not a ParseError", source, err)
	}
	if parseErr.Kind != kind {
		t.Errorf("CreateTemplate(%q) error kind = %v, want %v", source, parseErr.Kind, kind)
	}
	if parseErr.Msg != message {
		t.Errorf("CreateTemplate(%q) error = %q, want %q", source, parseErr.Msg, message)
	}
}

func text(data string) []interface{} {
	return []interface{}{"Text", data}
}

func element(tagName string, attrs interface{}, content interface{}, hooks interface{}) []interface{} {
	return []interface{}{"Element", tagName, attrs, content, hooks}
}

func list(items ...interface{}) []interface{} {
	if items == nil {
		return []interface{}{}
	}
	return items
}
