package ml_parser

import "strings"

// HtmlTagDefinition describes how the template parser treats an HTML tag
type HtmlTagDefinition struct {
	isVoid bool
}

// IsVoid returns whether this tag never has content or an end tag
func (h *HtmlTagDefinition) IsVoid() bool {
	return h.isVoid
}

var (
	defaultTagDefinition = &HtmlTagDefinition{}
	tagDefinitions       map[string]*HtmlTagDefinition
)

func init() {
	tagDefinitions = make(map[string]*HtmlTagDefinition)

	// Void elements
	voidTags := []string{
		"area", "base", "br", "col", "embed", "hr", "img", "input", "keygen",
		"link", "menuitem", "meta", "param", "source", "track", "wbr",
	}
	for _, tag := range voidTags {
		tagDefinitions[tag] = &HtmlTagDefinition{isVoid: true}
	}
}

// GetHtmlTagDefinition returns the definition for tagName, falling back to
// a non-void default for unknown and custom tags
func GetHtmlTagDefinition(tagName string) *HtmlTagDefinition {
	if def, ok := tagDefinitions[strings.ToLower(tagName)]; ok {
		return def
	}
	return defaultTagDefinition
}

// IsVoidElement reports whether tagName is an HTML void element
func IsVoidElement(tagName string) bool {
	return GetHtmlTagDefinition(tagName).IsVoid()
}

// IsConditionalComment reports whether a raw comment tag uses the
// `<!--[ ... ]-->` conditional comment syntax
func IsConditionalComment(tag string) bool {
	return strings.HasPrefix(tag, "<!--[") && strings.HasSuffix(tag, "]-->")
}
