package util

import (
	"regexp"
	"strings"
)

var dashCaseRegexp = regexp.MustCompile(`-.`)

// DashToCamelCase converts a dash-case attribute name to camelCase. Every dash
// is dropped and the character after it is upper cased.
func DashToCamelCase(input string) string {
	return dashCaseRegexp.ReplaceAllStringFunc(input, func(match string) string {
		return strings.ToUpper(match[1:])
	})
}

// SplitWords splits a space separated declaration list, dropping empty entries
func SplitWords(input string) []string {
	return strings.Fields(input)
}
