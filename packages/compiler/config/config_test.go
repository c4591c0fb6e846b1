package config

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dtc-go/packages/compiler/expressions"
	"dtc-go/packages/compiler/markup"
	"dtc-go/packages/compiler/metrics"
	"dtc-go/packages/compiler/templates"
)

type fixedGrammar struct{}

func (fixedGrammar) ParsePath(source string) (expressions.Expression, error) {
	return expressions.NewPathExpression([]string{"fixed"}), nil
}

func TestNewCompilerConfig(t *testing.T) {
	t.Run("should fill defaults", func(t *testing.T) {
		c := NewCompilerConfig()
		assert.NotNil(t, c.Logger)
		assert.NotNil(t, c.Grammar)
		assert.NotNil(t, c.Observers)
		assert.Nil(t, c.Minify)
		assert.Nil(t, c.Metrics)
	})

	t.Run("should apply options", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		observers := markup.NewObservers()
		m := metrics.New(nil)
		c := NewCompilerConfig(
			WithLogger(logger),
			WithObservers(observers),
			WithMinifier(func(s string) string { return s }),
			WithMetrics(m),
		)
		assert.Same(t, logger, c.Logger)
		assert.Same(t, observers, c.Observers)
		assert.Same(t, m, c.Metrics)
		assert.NotNil(t, c.Minify)
	})

	t.Run("should build default observers with the configured grammar", func(t *testing.T) {
		c := NewCompilerConfig(WithGrammar(fixedGrammar{}))

		attrs := templates.NewAttributesMap()
		submit := expressions.NewPathExpression([]string{"save"})
		form := templates.NewElement("form", attrs, []templates.Node{}, false, []templates.Hook{
			templates.NewElementOn("submit", submit),
		})
		require.NoError(t, c.Observers.Notify(form))
		require.Len(t, form.Hooks, 2)
		added := form.Hooks[1].(*templates.ElementOn)
		assert.Equal(t, "fixed", added.Expression.String())
	})
}
