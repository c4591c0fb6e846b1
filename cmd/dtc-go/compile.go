package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"dtc-go/packages/compiler/config"
	"dtc-go/packages/compiler/template_parser"
	"dtc-go/packages/compiler/templates"
)

func (c *cli) newCompileCmd() *cobra.Command {
	var withMetrics bool
	cmd := &cobra.Command{
		Use:   "compile <manifest>",
		Short: "Parse every view of a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var reg *prometheus.Registry
			if withMetrics {
				reg = prometheus.NewRegistry()
			}
			if err := c.compile(cmd.Context(), args[0], reg); err != nil {
				return err
			}
			if reg != nil {
				return c.writeMetrics(reg)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "print parser metrics in Prometheus text format")
	return cmd
}

// compile loads the manifest and parses all of its views. reg may be nil.
func (c *cli) compile(ctx context.Context, manifestPath string, reg *prometheus.Registry) error {
	manifest, err := config.LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	views := templates.NewViews()
	if err := manifest.Register(views); err != nil {
		return err
	}

	var registerer prometheus.Registerer
	if reg != nil {
		registerer = reg
	}
	parsed, err := template_parser.ParseViews(ctx, c.newParser(registerer), views)
	if err != nil {
		return err
	}
	for _, result := range parsed {
		fmt.Fprintf(c.out, "  %s: %d node(s)\n", result.View.Name, len(result.Template.Content))
	}
	fmt.Fprintf(c.out, "Compiled %d view(s)\n", len(parsed))
	return nil
}

func (c *cli) writeMetrics(reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(c.out, family); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
