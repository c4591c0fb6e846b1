// Command dtc-go parses Derby-style templates and view manifests.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"dtc-go/packages/compiler/config"
	"dtc-go/packages/compiler/metrics"
	"dtc-go/packages/compiler/template_parser"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// cli holds the state shared by all subcommands
type cli struct {
	out      io.Writer
	errOut   io.Writer
	logLevel string
	logger   *slog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut, logger: slog.New(slog.DiscardHandler)}
	root := &cobra.Command{
		Use:          "dtc-go",
		Short:        "Parse Derby-style templates into template trees",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(c.logLevel)); err != nil {
				return fmt.Errorf("invalid --log-level %q", c.logLevel)
			}
			c.logger = slog.New(slog.NewTextHandler(c.errOut, &slog.HandlerOptions{Level: level}))
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	root.AddCommand(c.newParseCmd(), c.newCompileCmd(), c.newWatchCmd())
	return root
}

// newParser builds a parser logging through the CLI logger. Metrics are
// recorded only when reg is non-nil.
func (c *cli) newParser(reg prometheus.Registerer) *template_parser.Parser {
	opts := []config.CompilerConfigOption{config.WithLogger(c.logger)}
	if reg != nil {
		opts = append(opts, config.WithMetrics(metrics.New(reg)))
	}
	return template_parser.NewParser(config.NewCompilerConfig(opts...))
}
