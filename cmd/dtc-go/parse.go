package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dtc-go/packages/compiler/config"
	"dtc-go/packages/compiler/templates"
)

type parseOptions struct {
	manifest string
	name     string
	isString bool
}

func (c *cli) newParseCmd() *cobra.Command {
	opts := &parseOptions{}
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse one template file and print its tree as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.parse(args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.manifest, "views", "", "manifest of the views the template may reference")
	cmd.Flags().StringVar(&opts.name, "name", "", "view name (defaults to the file name without extension)")
	cmd.Flags().BoolVar(&opts.isString, "string", false, "parse as a plain string template")
	return cmd
}

func (c *cli) parse(file string, opts *parseOptions) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}
	views := templates.NewViews()
	if opts.manifest != "" {
		manifest, err := config.LoadManifest(opts.manifest)
		if err != nil {
			return err
		}
		if err := manifest.Register(views); err != nil {
			return err
		}
	}
	name := opts.name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	view := views.Register(name, string(data), &templates.ViewOptions{String: opts.isString, File: file})

	template, err := view.Parse(c.newParser(nil))
	if err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(templates.Humanize(template), "", "  ")
	if err != nil {
		return fmt.Errorf("encode template: %w", err)
	}
	_, err = fmt.Fprintln(c.out, string(encoded))
	return err
}
