// Package compiler groups the packages that turn Derby-style templates into
// template trees.
//
// The parser reads HTML with embedded {{ }} expressions and produces a tree of
// elements, text, blocks and view pointers that a runtime can render.
//
// Main sub-packages:
//
//   - template_parser: the template parser (text scanning, expression
//     classification, block nesting, view resolution) and batch view parsing
//   - templates: template tree node types, attributes, hooks, the view registry
//     and the Humanize serializer
//   - expressions: the path expression grammar (lexer and parser)
//   - ml_parser: HTML tokenizer adapter and the void element table
//   - markup: post-parse element observers, including the default form policy
//   - config: compiler options and the YAML view manifest
//   - metrics: Prometheus instruments for view parsing
//   - util: parse errors and string helpers
//   - core: character codes used by the expression lexer
//
// Example:
//
//	views := templates.NewViews()
//	views.Register("app:card", "<div>{{@title}}</div>", nil)
//	page := views.Register("app:index", `<view name="card" title="Hi"></view>`, nil)
//	parser := template_parser.NewParser(config.NewCompilerConfig())
//	template, err := page.Parse(parser)
package compiler
