package util_test

import (
	"errors"
	"fmt"
	"testing"

	"dtc-go/packages/compiler/util"
)

func TestDashToCamelCase(t *testing.T) {
	cases := map[string]string{
		"title":        "title",
		"data-id":      "dataId",
		"on-click-now": "onClickNow",
		"a--b":         "a-b",
		"trailing-":    "trailing-",
	}
	for input, want := range cases {
		if got := util.DashToCamelCase(input); got != want {
			t.Errorf("DashToCamelCase(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseError(t *testing.T) {
	t.Run("should format messages", func(t *testing.T) {
		err := util.Errorf(util.ErrorKindResolution, "No view found for %q", "x")
		if err.Error() != `No view found for "x"` {
			t.Errorf("Error() = %q", err.Error())
		}
		if err.Kind.String() != "resolution" {
			t.Errorf("Kind = %v, want resolution", err.Kind)
		}
	})

	t.Run("should keep identity when appending messages", func(t *testing.T) {
		base := util.NewParseError(util.ErrorKindLexical, "Mismatched braces in: {{")
		err := util.AppendErrorMessage(util.AppendErrorMessage(base, "\n\nA"), "\n\nB")
		if err.Error() != "Mismatched braces in: {{\n\nA\n\nB" {
			t.Errorf("Error() = %q", err.Error())
		}
		var parseErr *util.ParseError
		if !errors.As(err, &parseErr) || parseErr != base {
			t.Error("appended error does not unwrap to the original")
		}
		if kind, ok := util.KindOf(err); !ok || kind != util.ErrorKindLexical {
			t.Errorf("KindOf() = %v, %v", kind, ok)
		}
	})

	t.Run("should pass nil through", func(t *testing.T) {
		if util.AppendErrorMessage(nil, "x") != nil {
			t.Error("AppendErrorMessage(nil) != nil")
		}
	})

	t.Run("should report no kind for foreign errors", func(t *testing.T) {
		if _, ok := util.KindOf(fmt.Errorf("plain")); ok {
			t.Error("KindOf(plain) reported a kind")
		}
	})
}
