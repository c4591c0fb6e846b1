package template_parser

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"dtc-go/packages/compiler/templates"
)

// ParsedView pairs a view with its parsed template
type ParsedView struct {
	View     *templates.View
	Template *templates.Template
}

// ParseViews parses every registered view concurrently and returns the
// results in registration order. It stops at the first failure.
func ParseViews(ctx context.Context, parser *Parser, views *templates.Views) ([]ParsedView, error) {
	all := views.All()
	results := make([]ParsedView, len(all))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, view := range all {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			template, err := parser.ParseView(view)
			if err != nil {
				parser.config.Logger.Warn("view parse failed", "view", view.Name, "error", err)
				return err
			}
			results[i] = ParsedView{View: view, Template: template}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
