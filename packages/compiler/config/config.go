// Package config holds the template parser options and the YAML view manifest.
package config

import (
	"log/slog"

	"dtc-go/packages/compiler/expressions"
	"dtc-go/packages/compiler/markup"
	"dtc-go/packages/compiler/metrics"
)

// Minifier compresses markup before it is parsed
type Minifier func(source string) string

// CompilerConfig represents the template parser configuration
type CompilerConfig struct {
	Logger    *slog.Logger
	Grammar   expressions.Grammar
	Observers *markup.Observers
	Minify    Minifier
	Metrics   *metrics.Metrics
}

// NewCompilerConfig creates a new CompilerConfig with optional parameters.
// Unset fields get defaults after the options ran, so the default observers
// are built with the configured grammar.
func NewCompilerConfig(opts ...CompilerConfigOption) *CompilerConfig {
	config := &CompilerConfig{}

	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.Grammar == nil {
		config.Grammar = expressions.NewParser(expressions.NewLexer())
	}
	if config.Observers == nil {
		config.Observers = markup.Default(config.Grammar)
	}

	return config
}

// CompilerConfigOption is a function that modifies CompilerConfig
type CompilerConfigOption func(*CompilerConfig)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.Logger = logger
	}
}

// WithGrammar sets the expression grammar
func WithGrammar(grammar expressions.Grammar) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.Grammar = grammar
	}
}

// WithObservers replaces the element observers
func WithObservers(observers *markup.Observers) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.Observers = observers
	}
}

// WithMinifier sets the minifier applied to views that are not unminified
func WithMinifier(minify Minifier) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.Minify = minify
	}
}

// WithMetrics enables metric recording
func WithMetrics(m *metrics.Metrics) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.Metrics = m
	}
}
