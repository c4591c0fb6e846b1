// Package template_parser turns template sources into template trees. A
// Parser is safe for concurrent use: every parse owns its frame stack.
package template_parser

import (
	"strings"
	"time"

	"dtc-go/packages/compiler/config"
	"dtc-go/packages/compiler/ml_parser"
	"dtc-go/packages/compiler/templates"
	"dtc-go/packages/compiler/util"
)

// Parser parses HTML and string templates
type Parser struct {
	config *config.CompilerConfig
}

// NewParser creates a new Parser. A nil config uses the defaults.
func NewParser(cfg *config.CompilerConfig) *Parser {
	if cfg == nil {
		cfg = config.NewCompilerConfig()
	}
	return &Parser{config: cfg}
}

// Config returns the parser configuration
func (p *Parser) Config() *config.CompilerConfig {
	return p.config
}

// CreateTemplate parses HTML source. view supplies the registry used to
// resolve view references and may be nil.
func (p *Parser) CreateTemplate(source string, view *templates.View) (*templates.Template, error) {
	state := newParseState(p, view)
	if err := ml_parser.Tokenize(source, state); err != nil {
		return nil, err
	}
	return state.finish()
}

// CreateStringTemplate parses source as plain text with embedded
// expressions. Markup is kept as literal text.
func (p *Parser) CreateStringTemplate(source string, view *templates.View) (*templates.Template, error) {
	state := newParseState(p, view)
	if err := state.parseText(source); err != nil {
		return nil, err
	}
	return state.finish()
}

// ParseView parses a registered view. Failures carry the view name and
// source.
func (p *Parser) ParseView(view *templates.View) (*templates.Template, error) {
	start := time.Now()
	template, err := p.parseView(view)
	elapsed := time.Since(start)
	if err != nil {
		kind := "unknown"
		if k, ok := util.KindOf(err); ok {
			kind = k.String()
		}
		p.config.Metrics.RecordFailure(elapsed, kind)
		return nil, util.AppendErrorMessage(err, "\n\nWithin template \""+view.Name+"\":\n"+view.Source)
	}
	p.config.Metrics.RecordSuccess(elapsed, len(template.Content))
	p.config.Logger.Debug("parsed view",
		"view", view.Name,
		"nodes", len(template.Content),
		"duration", elapsed)
	return template, nil
}

func (p *Parser) parseView(view *templates.View) (*templates.Template, error) {
	if view.IsString {
		return p.CreateStringTemplate(view.Source, view)
	}
	source := view.Source
	if !view.Unminified && p.config.Minify != nil {
		source = strings.ReplaceAll(p.config.Minify(source), "&sp;", " ")
	}
	return p.CreateTemplate(source, view)
}
